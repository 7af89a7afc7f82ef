package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	// Add appends an entry. It performs no policy checks; callers go
	// through the service unless they are the service itself.
	Add(ctx context.Context, db *gorm.DB, entry *MileageEntry) error

	// GetByVehicle returns the vehicle's ledger, newest first.
	GetByVehicle(ctx context.Context, db *gorm.DB, vehicleID snowflake.ID) ([]MileageEntry, error)

	// GetLatestOnOrBefore returns the entry with the greatest recorded_at
	// not after ref. Ties on recorded_at break toward the greater id, so
	// the most recently inserted entry wins. Nil when no entry qualifies.
	GetLatestOnOrBefore(ctx context.Context, db *gorm.DB, vehicleID snowflake.ID, ref time.Time) (*MileageEntry, error)

	// GetLatestRecordedAtOnOrBefore is the timestamp-only form of
	// GetLatestOnOrBefore.
	GetLatestRecordedAtOnOrBefore(ctx context.Context, db *gorm.DB, vehicleID snowflake.ID, ref time.Time) (*time.Time, error)

	// Update and Delete support rare operator corrections.
	Update(ctx context.Context, db *gorm.DB, entry *MileageEntry) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
