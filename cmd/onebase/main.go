package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/onebase/onebase/internal/config"
	"github.com/onebase/onebase/internal/migration"
	"github.com/onebase/onebase/internal/observability"
	"github.com/onebase/onebase/internal/server"
	"github.com/onebase/onebase/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
