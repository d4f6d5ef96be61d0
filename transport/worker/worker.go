package worker

import (
	"context"
	"fmt"

	"cowork/config"
	"cowork/infras/kafka"
	"cowork/infras/otel"
	"cowork/internal/domains/notification/service"
	"cowork/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Worker drains the notification topic and hands each message to the notifier for delivery.
type Worker struct {
	cfg      *config.Config
	kafka    kafka.Client
	notifier service.Notifier
	otel     otel.Otel
}

func New(cfg *config.Config, kafka kafka.Client, notifier service.Notifier, otel otel.Otel) *Worker {
	return &Worker{
		cfg:      cfg,
		kafka:    kafka,
		notifier: notifier,
		otel:     otel,
	}
}

// Run blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	if !w.kafka.Enabled() {
		return kafka.ErrDisabled
	}

	topic := w.cfg.Kafka.Topics.Notification

	log.Info().Str("topic", topic).Str("group", w.cfg.Kafka.ConsumerGroup).Msg("Starting notification worker.")

	defer func() {
		if err := w.kafka.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close kafka client.")
		}
	}()

	if err := w.kafka.Subscribe(ctx, w.cfg.Kafka.ConsumerGroup, topic, w.Handle); err != nil {
		return fmt.Errorf("notification subscription stopped: %w", err)
	}

	return nil
}

// Handle delivers one notification event. Failures are returned to the subscription, which logs and commits them.
func (w *Worker) Handle(ctx context.Context, message kafkaGo.Message) (err error) {
	ctx, scope := w.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Handle")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return w.notifier.Deliver(ctx, message)
}
