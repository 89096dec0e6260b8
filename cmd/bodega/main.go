package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/bodega/internal/clock"
	"github.com/smallbiznis/bodega/internal/config"
	"github.com/smallbiznis/bodega/internal/customer"
	"github.com/smallbiznis/bodega/internal/migration"
	"github.com/smallbiznis/bodega/internal/product"
	"github.com/smallbiznis/bodega/internal/reporting"
	"github.com/smallbiznis/bodega/internal/sales"
	"github.com/smallbiznis/bodega/internal/server"
	"github.com/smallbiznis/bodega/pkg/db"
	"github.com/smallbiznis/bodega/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		clock.Module,
		db.Module,
		migration.Module,

		// Functional domains
		product.Module,
		customer.Module,
		sales.Module,
		reporting.Module,

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
