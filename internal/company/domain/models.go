// Package domain contains the company profile used on invoice headers.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Company is the single shop profile. The GST number is the only protected
// field; LogoPath is an explicit column rather than a probed optional
// property. Rates are fractions (0.05 == 5%).
type Company struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	Name          string       `gorm:"size:100;not null" json:"name"`
	Tagline       string       `gorm:"size:100" json:"tagline,omitempty"`
	AddressLine1  string       `gorm:"size:200" json:"address_line1,omitempty"`
	AddressLine2  string       `gorm:"size:200" json:"address_line2,omitempty"`
	Phone1        string       `gorm:"size:20" json:"phone1,omitempty"`
	Phone2        string       `gorm:"size:20" json:"phone2,omitempty"`
	Email         string       `gorm:"size:100" json:"email,omitempty"`
	Website       string       `gorm:"size:100" json:"website,omitempty"`
	LogoPath      string       `gorm:"size:255" json:"logo_path,omitempty"`
	GstNumber     string       `gorm:"size:256" json:"gst_number,omitempty"`
	GstNumberHash *string      `gorm:"size:64" json:"-"`
	GstRate       float64      `gorm:"not null;default:0" json:"gst_rate"`
	PstRate       float64      `gorm:"not null;default:0" json:"pst_rate"`
	ReviewQrText  string       `gorm:"size:500" json:"review_qr_text,omitempty"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Company) TableName() string { return "companies" }
