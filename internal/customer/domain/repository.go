package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, customer *Customer) error
	Update(ctx context.Context, db *gorm.DB, customer *Customer) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Customer, error)
	List(ctx context.Context, db *gorm.DB) ([]Customer, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) ([]Customer, error)
	FindByPhone(ctx context.Context, db *gorm.DB, phone string) ([]Customer, error)
}
