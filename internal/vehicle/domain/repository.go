package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, vehicle *Vehicle) error
	Update(ctx context.Context, db *gorm.DB, vehicle *Vehicle) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Vehicle, error)
	ListByCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]Vehicle, error)
	List(ctx context.Context, db *gorm.DB) ([]Vehicle, error)

	// ExistsByPlateOrVin is the duplicate-admission probe. It compares hash
	// sidecars computed from the given plaintext values; a match on either
	// non-absent hash, on any row other than excludeID, reports true.
	ExistsByPlateOrVin(ctx context.Context, db *gorm.DB, licensePlate, vin string, excludeID snowflake.ID) (bool, error)
}
