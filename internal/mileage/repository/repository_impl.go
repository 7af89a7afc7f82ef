package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/motorbill/motorbill/internal/mileage/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Add(ctx context.Context, db *gorm.DB, entry *domain.MileageEntry) error {
	return db.WithContext(ctx).Create(entry).Error
}

func (r *repo) GetByVehicle(ctx context.Context, db *gorm.DB, vehicleID snowflake.ID) ([]domain.MileageEntry, error) {
	var entries []domain.MileageEntry
	err := db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("recorded_at DESC, id DESC").
		Find(&entries).Error
	return entries, err
}

func (r *repo) GetLatestOnOrBefore(ctx context.Context, db *gorm.DB, vehicleID snowflake.ID, ref time.Time) (*domain.MileageEntry, error) {
	var entry domain.MileageEntry
	err := db.WithContext(ctx).
		Where("vehicle_id = ? AND recorded_at <= ?", vehicleID, ref).
		Order("recorded_at DESC, id DESC").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repo) GetLatestRecordedAtOnOrBefore(ctx context.Context, db *gorm.DB, vehicleID snowflake.ID, ref time.Time) (*time.Time, error) {
	entry, err := r.GetLatestOnOrBefore(ctx, db, vehicleID, ref)
	if err != nil || entry == nil {
		return nil, err
	}
	ts := entry.RecordedAt
	return &ts, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, entry *domain.MileageEntry) error {
	return db.WithContext(ctx).
		Model(&domain.MileageEntry{}).
		Where("id = ?", entry.ID).
		Updates(map[string]any{
			"mileage":     entry.Mileage,
			"recorded_at": entry.RecordedAt,
			"notes":       entry.Notes,
		}).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.MileageEntry{}, "id = ?", id).Error
}
