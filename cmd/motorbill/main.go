package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/motorbill/motorbill/internal/config"
	"github.com/motorbill/motorbill/internal/migration"
	"github.com/motorbill/motorbill/internal/privacy"
	"github.com/motorbill/motorbill/internal/server"
	"github.com/motorbill/motorbill/pkg/db"
	"github.com/motorbill/motorbill/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		config.SettingsModule,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		privacy.Module,
		server.Module,
		migration.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
