// Package domain contains the customer model and contracts.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Customer is the owning entity for the email and phone identity fields.
// Email and Phone hold the logical plaintext in memory; the repository
// routes them through the field cipher on write and back on read. The hash
// sidecars are recomputed from plaintext on every write and are what search
// queries compare against.
type Customer struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	Name         string       `gorm:"size:100;not null;index" json:"name"`
	AddressLine1 string       `gorm:"size:200" json:"address_line1,omitempty"`
	Phone        string       `gorm:"size:256" json:"phone,omitempty"`
	Email        string       `gorm:"size:256" json:"email,omitempty"`
	PhoneHash    *string      `gorm:"size:64;index" json:"-"`
	EmailHash    *string      `gorm:"size:64;index" json:"-"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Customer) TableName() string { return "customers" }
