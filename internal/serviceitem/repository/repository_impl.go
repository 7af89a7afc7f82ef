package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/motorbill/motorbill/internal/serviceitem/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, item *domain.ServiceItem) error {
	return db.WithContext(ctx).Create(item).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, item *domain.ServiceItem) error {
	return db.WithContext(ctx).
		Model(&domain.ServiceItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"name":          item.Name,
			"description":   item.Description,
			"default_price": item.DefaultPrice,
			"active":        item.Active,
		}).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.ServiceItem{}, "id = ?", id).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.ServiceItem, error) {
	var item domain.ServiceItem
	err := db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repo) FindByName(ctx context.Context, db *gorm.DB, name string) (*domain.ServiceItem, error) {
	var item domain.ServiceItem
	err := db.WithContext(ctx).Where("name = ?", name).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, activeOnly bool) ([]domain.ServiceItem, error) {
	q := db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var items []domain.ServiceItem
	err := q.Find(&items).Error
	return items, err
}

func (r *repo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.ServiceItem{}).Count(&n).Error
	return n, err
}
