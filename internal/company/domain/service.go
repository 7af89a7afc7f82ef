package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Get(ctx context.Context, db *gorm.DB) (*Company, error)
	Save(ctx context.Context, db *gorm.DB, company *Company) error
}

type UpdateCompanyRequest struct {
	Name         string
	Tagline      string
	AddressLine1 string
	AddressLine2 string
	Phone1       string
	Phone2       string
	Email        string
	Website      string
	LogoPath     string
	GstNumber    string
	GstRate      float64
	PstRate      float64
	ReviewQrText string
}

type Service interface {
	Get(ctx context.Context) (Company, error)
	Update(ctx context.Context, req UpdateCompanyRequest) (Company, error)
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidRate = errors.New("invalid_rate")
	ErrNotFound    = errors.New("not_found")
)
