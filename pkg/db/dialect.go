package db

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/motorbill/motorbill/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Dialect picks the gorm dialector for the configured database type.
// SQLite is the shipped default (single-user desktop install); postgres is
// supported for shop networks that already run one. MySQL is not: the
// identity sidecar scheme depends on partial unique indexes.
func Dialect(cfg config.Config) (gorm.Dialector, error) {
	switch cfg.DBType {
	case "sqlite":
		return sqlite.Open(cfg.DatabasePath()), nil
	case "postgres":
		return postgres.Open(fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.DBHost,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBName,
			cfg.DBPort,
			cfg.DBSSLMode,
		)), nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.DBType)
	}
}
