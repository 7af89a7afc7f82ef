package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// ServiceItem is a row of the shop's service catalog. Invoice lines may
// reference one; free-text lines do not.
type ServiceItem struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	Name         string       `gorm:"size:100;not null;index" json:"name"`
	Description  string       `gorm:"size:500" json:"description,omitempty"`
	DefaultPrice int64        `gorm:"not null" json:"default_price_cents"`
	Active       bool         `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (ServiceItem) TableName() string {
	return "service_items"
}
