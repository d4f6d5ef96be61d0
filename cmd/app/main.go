package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cowork/config"
	"cowork/di"
	"cowork/helper"
	"cowork/shared/logger"

	"github.com/rs/zerolog/log"
)

const schedulerStopTimeout = 30 * time.Second

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := di.InitializeScheduler()
	if err := scheduler.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to start job scheduler")
	}

	http := di.InitializeService()
	if err := http.Serve(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server stopped")
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), schedulerStopTimeout)
	defer cancel()

	scheduler.Stop(stopCtx)
}
