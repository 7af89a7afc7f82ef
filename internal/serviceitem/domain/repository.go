package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, item *ServiceItem) error
	Update(ctx context.Context, db *gorm.DB, item *ServiceItem) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ServiceItem, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) (*ServiceItem, error)
	List(ctx context.Context, db *gorm.DB, activeOnly bool) ([]ServiceItem, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}
