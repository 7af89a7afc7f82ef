package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// Record validates range and monotonicity, then appends. recordedAt is
	// caller-supplied so invoices dated in the past record at their
	// service time rather than wall clock.
	Record(ctx context.Context, vehicleID snowflake.ID, mileage int, recordedAt time.Time, source, notes string) (snowflake.ID, error)

	// RecordOnSave appends with source "invoice" unless an entry already
	// exists within the lock window ending at when, in which case it skips
	// without error and reports recorded=false. The skip de-duplicates the
	// typing trigger and the save trigger firing for one user action.
	RecordOnSave(ctx context.Context, vehicleID snowflake.ID, mileage int, when time.Time) (recorded bool, err error)

	// ApplyEditChange runs the edit-lock policy for a live mileage edit.
	// Locked and Reverted outcomes are returned on the EditOutcome, not as
	// errors.
	ApplyEditChange(ctx context.Context, vehicleID snowflake.ID, proposed int, now time.Time) (EditOutcome, error)

	// Import appends backdated history, bypassing the lock window and the
	// regression check. Range is still enforced.
	Import(ctx context.Context, vehicleID snowflake.ID, mileage int, recordedAt time.Time, notes string) (snowflake.ID, error)

	GetByVehicle(ctx context.Context, vehicleID snowflake.ID) ([]MileageEntry, error)
	GetLatestOnOrBefore(ctx context.Context, vehicleID snowflake.ID, ref time.Time) (*MileageEntry, error)

	// GetLatestForDay returns the latest entry recorded on or before the
	// end of day's calendar date, UTC.
	GetLatestForDay(ctx context.Context, vehicleID snowflake.ID, day time.Time) (*MileageEntry, error)
}

var (
	ErrMileageOutOfRange = errors.New("mileage_out_of_range")
	ErrMileageRegression = errors.New("mileage_regression")
	ErrVehicleRequired   = errors.New("vehicle_required")
	ErrNotFound          = errors.New("not_found")
)
