package repository

import (
	"context"
	"errors"

	"github.com/motorbill/motorbill/internal/company/domain"
	"github.com/motorbill/motorbill/internal/sidecar"
	"gorm.io/gorm"
)

type repo struct {
	guard *sidecar.Guard
}

func Provide(guard *sidecar.Guard) domain.Repository {
	return &repo{guard: guard}
}

func (r *repo) Get(ctx context.Context, db *gorm.DB) (*domain.Company, error) {
	var company domain.Company
	err := db.WithContext(ctx).Order("id ASC").First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.guard.OpenCompany(&company)
	return &company, nil
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, company *domain.Company) error {
	row := *company
	r.guard.SealCompany(&row)
	if err := db.WithContext(ctx).Save(&row).Error; err != nil {
		return err
	}
	company.ID = row.ID
	company.CreatedAt = row.CreatedAt
	company.UpdatedAt = row.UpdatedAt
	company.GstNumberHash = row.GstNumberHash
	return nil
}
