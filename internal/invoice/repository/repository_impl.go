package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/motorbill/motorbill/internal/invoice/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	// Create cascades into the line items through the association.
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(invoice).Error
	})
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.InvoiceLineItem{}, "invoice_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Invoice{}, "id = ?", id).Error
	})
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).
		Preload("LineItems").
		Where("id = ?", id).
		First(&invoice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *repo) ListByCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := db.WithContext(ctx).
		Preload("LineItems").
		Where("customer_id = ?", customerID).
		Order("service_date DESC, id DESC").
		Find(&invoices).Error
	return invoices, err
}

func (r *repo) ListByVehicle(ctx context.Context, db *gorm.DB, vehicleID snowflake.ID) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := db.WithContext(ctx).
		Preload("LineItems").
		Where("vehicle_id = ?", vehicleID).
		Order("service_date DESC, id DESC").
		Find(&invoices).Error
	return invoices, err
}

func (r *repo) ListByDateRange(ctx context.Context, db *gorm.DB, from, to time.Time) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := db.WithContext(ctx).
		Preload("LineItems").
		Where("service_date >= ? AND service_date <= ?", from, to).
		Order("service_date DESC, id DESC").
		Find(&invoices).Error
	return invoices, err
}

func (r *repo) ExistsForAdmissionKey(ctx context.Context, db *gorm.DB, customerID, vehicleID snowflake.ID, day time.Time) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("customer_id = ? AND vehicle_id = ? AND service_day = ?",
			customerID, vehicleID, datatypes.Date(day)).
		Count(&n).Error
	return n > 0, err
}

func (r *repo) FindByVehicleBetween(ctx context.Context, db *gorm.DB, vehicleID snowflake.ID, from, to time.Time) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := db.WithContext(ctx).
		Preload("LineItems").
		Where("vehicle_id = ? AND service_date >= ? AND service_date <= ?", vehicleID, from, to).
		Order("service_date DESC, id DESC").
		Find(&invoices).Error
	return invoices, err
}
