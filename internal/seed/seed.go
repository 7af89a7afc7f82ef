// Package seed bootstraps a fresh database with the default service
// catalog so the first invoice can be written without setup work.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	serviceitemdomain "github.com/motorbill/motorbill/internal/serviceitem/domain"
	"gorm.io/gorm"
)

var defaultCatalog = []struct {
	name  string
	price int64
}{
	{"Oil Change", 7999},
	{"Tire Rotation", 2999},
	{"Brake Inspection", 4999},
	{"Wheel Alignment", 9999},
	{"Battery Replacement", 17999},
	{"Engine Diagnostic", 8999},
	{"Air Filter Replacement", 2499},
	{"Coolant Flush", 10999},
}

// EnsureDefaultCatalog inserts the stock service items when the catalog is
// empty. A catalog the operator has touched is left alone.
func EnsureDefaultCatalog(db *gorm.DB, node *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&serviceitemdomain.ServiceItem{}).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		now := time.Now().UTC()
		for _, entry := range defaultCatalog {
			item := serviceitemdomain.ServiceItem{
				ID:           node.Generate(),
				Name:         entry.name,
				DefaultPrice: entry.price,
				Active:       true,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
