// Package domain contains the vehicle model and contracts.
package domain

import (
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Vehicle owns the license-plate and VIN identity fields and the mileage
// ledger (ledger rows cascade-delete with the vehicle). The hash sidecars
// back the duplicate-admission guard: among live rows no two vehicles may
// share a non-null LicensePlateHash, and independently no two may share a
// non-null VinHash. Vehicles with neither plate nor VIN are unconstrained.
type Vehicle struct {
	ID               snowflake.ID `gorm:"primaryKey" json:"id"`
	CustomerID       snowflake.ID `gorm:"not null;index" json:"customer_id"`
	Make             string       `gorm:"size:50" json:"make,omitempty"`
	Model            string       `gorm:"size:50" json:"model,omitempty"`
	Year             *int         `json:"year,omitempty"`
	Color            string       `gorm:"size:30" json:"color,omitempty"`
	LicensePlate     string       `gorm:"size:256" json:"license_plate,omitempty"`
	VIN              string       `gorm:"size:256" json:"vin,omitempty"`
	LicensePlateHash *string      `gorm:"size:64" json:"-"`
	VinHash          *string      `gorm:"size:64" json:"-"`
	CreatedAt        time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Vehicle) TableName() string { return "vehicles" }

// DisplayName renders a short label for logs and invoices.
func (v Vehicle) DisplayName() string {
	if v.Year != nil {
		return fmt.Sprintf("%d %s %s", *v.Year, v.Make, v.Model)
	}
	return fmt.Sprintf("%s %s", v.Make, v.Model)
}
