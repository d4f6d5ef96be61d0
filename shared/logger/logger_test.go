package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"cowork/config"
	"cowork/shared/logger"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()

	buf := &bytes.Buffer{}
	previousOutput, previousLogger, previousLevel := logger.Output, log.Logger, zerolog.GlobalLevel()

	logger.Output = buf

	t.Cleanup(func() {
		logger.Output = previousOutput
		log.Logger = previousLogger
		zerolog.SetGlobalLevel(previousLevel)
	})

	return buf
}

func TestInitLogger(t *testing.T) {
	buf := capture(t)

	logger.InitLogger()

	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
	assert.Contains(t, buf.String(), "Zerolog initialized.")
}

func TestErrorWithStack(t *testing.T) {
	buf := capture(t)
	logger.InitLogger()

	logger.ErrorWithStack(errors.New("space not found"))

	assert.Contains(t, buf.String(), "space not found")
	assert.Contains(t, buf.String(), "logger_test.go")
}

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		want     zerolog.Level
	}{
		{name: "debug", logLevel: "debug", want: zerolog.DebugLevel},
		{name: "warn", logLevel: "warn", want: zerolog.WarnLevel},
		{name: "disabled", logLevel: "disabled", want: zerolog.Disabled},
		{name: "unknown falls back to trace", logLevel: "verbose", want: zerolog.TraceLevel},
		{name: "empty falls back to trace", logLevel: "", want: zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			capture(t)
			logger.InitLogger()

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.logLevel

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestSetLogLevel_ProductionWritesJSON(t *testing.T) {
	buf := capture(t)
	logger.InitLogger()

	cfg := &config.Config{}
	cfg.App.Name = "cowork"
	cfg.Server.Env = "production"
	cfg.Server.LogLevel = "info"

	logger.SetLogLevel(cfg)
	buf.Reset()

	log.Info().Str("bookingId", "b-1").Msg("Booking confirmed.")
	log.Debug().Msg("hidden")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))

	assert.Equal(t, "cowork", line["app"])
	assert.Equal(t, "production", line["env"])
	assert.Equal(t, "b-1", line["bookingId"])
	assert.Equal(t, "Booking confirmed.", line["message"])
}
