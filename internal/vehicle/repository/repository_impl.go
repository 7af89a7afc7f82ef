package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/motorbill/motorbill/internal/identity"
	"github.com/motorbill/motorbill/internal/sidecar"
	"github.com/motorbill/motorbill/internal/vehicle/domain"
	"gorm.io/gorm"
)

type repo struct {
	guard *sidecar.Guard
}

func Provide(guard *sidecar.Guard) domain.Repository {
	return &repo{guard: guard}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, vehicle *domain.Vehicle) error {
	row := *vehicle
	r.guard.SealVehicle(&row)
	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	vehicle.ID = row.ID
	vehicle.CreatedAt = row.CreatedAt
	vehicle.UpdatedAt = row.UpdatedAt
	vehicle.LicensePlateHash = row.LicensePlateHash
	vehicle.VinHash = row.VinHash
	return nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, vehicle *domain.Vehicle) error {
	row := *vehicle
	r.guard.SealVehicle(&row)
	if err := db.WithContext(ctx).
		Model(&domain.Vehicle{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"customer_id":        row.CustomerID,
			"make":               row.Make,
			"model":              row.Model,
			"year":               row.Year,
			"color":              row.Color,
			"license_plate":      row.LicensePlate,
			"vin":                row.VIN,
			"license_plate_hash": row.LicensePlateHash,
			"vin_hash":           row.VinHash,
		}).Error; err != nil {
		return err
	}
	vehicle.LicensePlateHash = row.LicensePlateHash
	vehicle.VinHash = row.VinHash
	return nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Vehicle{}, "id = ?", id).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	err := db.WithContext(ctx).First(&vehicle, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.guard.OpenVehicle(&vehicle)
	return &vehicle, nil
}

func (r *repo) ListByCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]domain.Vehicle, error) {
	var vehicles []domain.Vehicle
	if err := db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("make asc, model asc, year asc").
		Find(&vehicles).Error; err != nil {
		return nil, err
	}
	for i := range vehicles {
		r.guard.OpenVehicle(&vehicles[i])
	}
	return vehicles, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Vehicle, error) {
	var vehicles []domain.Vehicle
	if err := db.WithContext(ctx).
		Order("make asc, model asc, year asc").
		Find(&vehicles).Error; err != nil {
		return nil, err
	}
	for i := range vehicles {
		r.guard.OpenVehicle(&vehicles[i])
	}
	return vehicles, nil
}

// ExistsByPlateOrVin checks the hash sidecars for another row carrying the
// same plate or VIN. Either non-absent hash matching rejects; both absent
// never matches.
func (r *repo) ExistsByPlateOrVin(ctx context.Context, db *gorm.DB, licensePlate, vin string, excludeID snowflake.ID) (bool, error) {
	plateHash := identity.UpperHash(licensePlate)
	vinHash := identity.UpperHash(vin)
	if plateHash == nil && vinHash == nil {
		return false, nil
	}

	query := db.WithContext(ctx).Model(&domain.Vehicle{})
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	switch {
	case plateHash != nil && vinHash != nil:
		query = query.Where("license_plate_hash = ? OR vin_hash = ?", *plateHash, *vinHash)
	case plateHash != nil:
		query = query.Where("license_plate_hash = ?", *plateHash)
	default:
		query = query.Where("vin_hash = ?", *vinHash)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
