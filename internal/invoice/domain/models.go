package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Invoice is a completed service visit. ServiceDay is the calendar date of
// ServiceDate; together with the customer and vehicle it forms the
// duplicate-admission key.
type Invoice struct {
	ID          snowflake.ID      `gorm:"primaryKey" json:"id"`
	CustomerID  snowflake.ID      `gorm:"not null;index;uniqueIndex:ux_invoice_admission" json:"customer_id"`
	VehicleID   snowflake.ID      `gorm:"not null;index;uniqueIndex:ux_invoice_admission" json:"vehicle_id"`
	ServiceDate time.Time         `gorm:"not null;index" json:"service_date"`
	ServiceDay  datatypes.Date    `gorm:"not null;uniqueIndex:ux_invoice_admission" json:"service_day"`
	Mileage     *int              `json:"mileage,omitempty"`
	Notes       string            `gorm:"size:1000" json:"notes,omitempty"`
	Subtotal    int64             `gorm:"not null" json:"subtotal_cents"`
	GstAmount   int64             `gorm:"not null" json:"gst_cents"`
	PstAmount   int64             `gorm:"not null" json:"pst_cents"`
	Total       int64             `gorm:"not null" json:"total_cents"`
	LineItems   []InvoiceLineItem `gorm:"foreignKey:InvoiceID" json:"line_items"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func (Invoice) TableName() string {
	return "invoices"
}

type InvoiceLineItem struct {
	ID            snowflake.ID  `gorm:"primaryKey" json:"id"`
	InvoiceID     snowflake.ID  `gorm:"not null;index" json:"invoice_id"`
	ServiceItemID *snowflake.ID `gorm:"index" json:"service_item_id,omitempty"`
	Description   string        `gorm:"size:200;not null" json:"description"`
	PriceCents    int64         `gorm:"not null" json:"price_cents"`
	Quantity      int           `gorm:"not null;default:1" json:"quantity"`
	CreatedAt     time.Time     `json:"created_at"`
}

func (InvoiceLineItem) TableName() string {
	return "invoice_line_items"
}

// LineKey identifies what was done, independent of free-text noise. Lines
// referencing the catalog key on the catalog id; free-text lines key on the
// lowercased description plus the unit price at two decimals.
func (l InvoiceLineItem) LineKey() string {
	if l.ServiceItemID != nil && *l.ServiceItemID != 0 {
		return fmt.Sprintf("ID:%d", *l.ServiceItemID)
	}
	return fmt.Sprintf("DESC:%s|P:%.2f",
		strings.ToLower(strings.TrimSpace(l.Description)),
		float64(l.PriceCents)/100,
	)
}

// DuplicateServiceMatch reports a prior invoice in the advisory window that
// shares at least one line key with a proposed invoice.
type DuplicateServiceMatch struct {
	InvoiceID   snowflake.ID `json:"invoice_id"`
	ServiceDate time.Time    `json:"service_date"`
	SharedKeys  []string     `json:"shared_keys"`
}
