package logger

import (
	"io"
	"os"
	"time"

	"cowork/config"
	"cowork/shared/constant"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Output is where the global logger writes. Tests swap it for a buffer.
var Output io.Writer = os.Stdout

// InitLogger sets up a human-readable logger at trace level. SetLogLevel
// narrows it once the configuration is known.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: Output, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
	log.Trace().Msg("Zerolog initialized.")
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// SetLogLevel applies the configured level. Outside development the logger
// switches to JSON lines tagged with the app name and environment.
func SetLogLevel(cfg *config.Config) {
	if cfg.Server.Env != "" && cfg.Server.Env != constant.ServerEnvDevelopment {
		log.Logger = zerolog.New(Output).With().
			Timestamp().
			Str("app", cfg.App.Name).
			Str("env", cfg.Server.Env).
			Logger()
	}

	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil || cfg.Server.LogLevel == "" {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}
