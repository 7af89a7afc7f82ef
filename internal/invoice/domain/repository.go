package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	// Insert writes the invoice and its line items in one transaction.
	Insert(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Invoice, error)
	ListByCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]Invoice, error)
	ListByVehicle(ctx context.Context, db *gorm.DB, vehicleID snowflake.ID) ([]Invoice, error)
	ListByDateRange(ctx context.Context, db *gorm.DB, from, to time.Time) ([]Invoice, error)

	// ExistsForAdmissionKey reports whether an invoice already exists for
	// the (customer, vehicle, calendar day) triple.
	ExistsForAdmissionKey(ctx context.Context, db *gorm.DB, customerID, vehicleID snowflake.ID, day time.Time) (bool, error)

	// FindByVehicleBetween returns the vehicle's invoices with line items
	// whose service date falls in the closed interval [from, to].
	FindByVehicleBetween(ctx context.Context, db *gorm.DB, vehicleID snowflake.ID, from, to time.Time) ([]Invoice, error)
}
