package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"cowork/config"
	"cowork/di"
	"cowork/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := di.InitializeWorker().Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Notification worker stopped")
	}

	log.Info().Msg("Notification worker shut down.")
}
