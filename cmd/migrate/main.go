package main

import (
	"os"

	"cowork/config"
	"cowork/helper"
	"cowork/shared/logger"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

var runners = map[string]func(*config.Config) error{
	"up":      helper.Up,
	"down":    helper.Down,
	"drop":    helper.Drop,
	"step-up": helper.StepUp,
	"version": helper.Version,
}

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration action is required")
	}

	run, ok := runners[os.Args[1]]
	if !ok {
		log.Fatal().Str("direction", os.Args[1]).Msg("Invalid direction. Use up, down, drop, step-up or version")
	}

	if err := run(config.Get()); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
