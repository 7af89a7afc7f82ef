package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type CreateVehicleRequest struct {
	CustomerID   snowflake.ID
	Make         string
	Model        string
	Year         *int
	Color        string
	LicensePlate string
	VIN          string
}

type UpdateVehicleRequest struct {
	ID           snowflake.ID
	CustomerID   snowflake.ID
	Make         string
	Model        string
	Year         *int
	Color        string
	LicensePlate string
	VIN          string
}

type Service interface {
	Create(ctx context.Context, req CreateVehicleRequest) (Vehicle, error)
	Update(ctx context.Context, req UpdateVehicleRequest) (Vehicle, error)
	Delete(ctx context.Context, id snowflake.ID) error
	GetByID(ctx context.Context, id snowflake.ID) (Vehicle, error)
	ListByCustomer(ctx context.Context, customerID snowflake.ID) ([]Vehicle, error)
	List(ctx context.Context) ([]Vehicle, error)
	ExistsByPlateOrVin(ctx context.Context, licensePlate, vin string) (bool, error)
}

var (
	// ErrDuplicateVehicle rejects a write whose plate or VIN hash collides
	// with another vehicle.
	ErrDuplicateVehicle = errors.New("duplicate_vehicle")
	// ErrInsufficientIdentity requires a VIN, a plate, or make+model.
	ErrInsufficientIdentity = errors.New("insufficient_identity")
	ErrInvalidCustomer      = errors.New("invalid_customer")
	ErrInvalidID            = errors.New("invalid_id")
	ErrNotFound             = errors.New("not_found")
)
