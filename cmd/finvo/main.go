package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/finvo/finvo/internal/clock"
	"github.com/finvo/finvo/internal/config"
	"github.com/finvo/finvo/internal/migration"
	"github.com/finvo/finvo/internal/observability"
	"github.com/finvo/finvo/internal/server"
	"github.com/finvo/finvo/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
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
