package migration

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/motorbill/motorbill/internal/auth"
	"github.com/motorbill/motorbill/internal/config"
	"github.com/motorbill/motorbill/internal/seed"
	"github.com/motorbill/motorbill/internal/sidecar"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Module runs at startup, before the server accepts traffic: schema first,
// then the sidecar backfill over legacy rows, then the seed data.
var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, guard *sidecar.Guard, authSvc *auth.Service, node *snowflake.Node) error {
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}

		if err := RunMigrations(sqlDB, cfg.DBType); err != nil {
			return err
		}

		ctx := context.Background()
		if err := guard.Backfill(ctx, conn); err != nil {
			return err
		}

		if err := seed.EnsureDefaultCatalog(conn, node); err != nil {
			return err
		}
		return authSvc.EnsureDefault(ctx, cfg.AdminUsername, cfg.AdminPassword)
	}),
)
