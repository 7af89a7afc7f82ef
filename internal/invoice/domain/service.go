package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type LineItemInput struct {
	ServiceItemID *snowflake.ID
	Description   string
	PriceCents    int64
	Quantity      int
}

type CreateInvoiceRequest struct {
	CustomerID  snowflake.ID
	VehicleID   snowflake.ID
	ServiceDate time.Time
	Mileage     *int
	Notes       string
	LineItems   []LineItemInput
}

type Service interface {
	// Create validates the lines, runs the admission guard and the
	// duplicate-service advisory, then writes the invoice and records the
	// mileage snapshot. force acknowledges a prior advisory and lets the
	// save proceed.
	Create(ctx context.Context, req CreateInvoiceRequest, force bool) (Invoice, error)

	// FindRecentDuplicateServices reports prior invoices for the vehicle
	// inside the advisory lookback window ending at when that share a line
	// key with lines.
	FindRecentDuplicateServices(ctx context.Context, vehicleID snowflake.ID, lines []LineItemInput, when time.Time) ([]DuplicateServiceMatch, error)

	Delete(ctx context.Context, id snowflake.ID) error
	GetByID(ctx context.Context, id snowflake.ID) (Invoice, error)
	ListByCustomer(ctx context.Context, customerID snowflake.ID) ([]Invoice, error)
	ListByVehicle(ctx context.Context, vehicleID snowflake.ID) ([]Invoice, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]Invoice, error)
}

var (
	// ErrDuplicateInvoice rejects a second invoice for the same customer,
	// vehicle and calendar day.
	ErrDuplicateInvoice = errors.New("duplicate_invoice")
	// ErrDuplicateServicesNeedConfirm aborts a save whose lines overlap a
	// recent invoice until the caller retries with force.
	ErrDuplicateServicesNeedConfirm = errors.New("duplicate_services_need_confirm")
	ErrInvalidCustomer              = errors.New("invalid_customer")
	ErrInvalidVehicle               = errors.New("invalid_vehicle")
	ErrNoLineItems                  = errors.New("no_line_items")
	ErrInvalidLineItem              = errors.New("invalid_line_item")
	ErrInvalidID                    = errors.New("invalid_id")
	ErrNotFound                     = errors.New("not_found")
)
