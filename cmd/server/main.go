package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/citylingua/citylingua/migrations"
	"github.com/citylingua/citylingua/modules"
	"github.com/citylingua/citylingua/pkg/application"
	"github.com/citylingua/citylingua/pkg/configuration"
	"github.com/citylingua/citylingua/pkg/eventbus"
	"github.com/citylingua/citylingua/pkg/server"
)

func main() {
	conf := configuration.Use()
	logger := conf.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}
	defer pool.Close()

	if err := application.RunMigrations(ctx, pool, migrations.FS); err != nil {
		logger.WithError(err).Fatal("failed to run migrations")
	}

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	if err := modules.Load(app); err != nil {
		logger.WithError(err).Fatal("failed to register modules")
	}

	if err := server.New(conf, app).Start(ctx); err != nil {
		logger.WithError(err).Fatal("http server failed")
	}
}
