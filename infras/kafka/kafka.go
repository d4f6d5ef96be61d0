package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cowork/config"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const writeTimeout = 10 * time.Second

var ErrDisabled = errors.New("kafka is disabled")

// Message is a keyed JSON event. The key keeps events of one recipient on one partition.
type Message struct {
	Key   string
	Value any
}

func (m Message) encode(topic string) (kafkaGo.Message, error) {
	value, err := json.Marshal(m.Value)
	if err != nil {
		return kafkaGo.Message{}, fmt.Errorf("failed to marshal %s event: %w", topic, err)
	}

	return kafkaGo.Message{
		Topic: topic,
		Key:   []byte(m.Key),
		Value: value,
	}, nil
}

// Decode unmarshals the JSON value of a consumed message.
func Decode[T any](msg kafkaGo.Message) (value T, err error) {
	if err = json.Unmarshal(msg.Value, &value); err != nil {
		return value, fmt.Errorf("failed to unmarshal %s event: %w", msg.Topic, err)
	}

	return value, nil
}

// Handler processes one consumed message. The message is committed whatever the result;
// a failed handler is logged and the subscription moves on.
type Handler func(ctx context.Context, message kafkaGo.Message) error

type Client interface {
	Enabled() bool
	Publish(ctx context.Context, topic string, messages ...Message) error
	Subscribe(ctx context.Context, group, topic string, handler Handler) error
	Close() error
}

type kafkaClientImpl struct {
	cfg    *config.Config
	dialer *kafkaGo.Dialer
	writer *kafkaGo.Writer
}

func New(cfg *config.Config) Client {
	var mechanism sasl.Mechanism
	if cfg.Kafka.SASL.Username != "" {
		mechanism = plain.Mechanism{
			Username: cfg.Kafka.SASL.Username,
			Password: cfg.Kafka.SASL.Password,
		}
	}

	client := &kafkaClientImpl{
		cfg: cfg,
		dialer: &kafkaGo.Dialer{
			DualStack:     true,
			SASLMechanism: mechanism,
		},
	}

	if client.Enabled() {
		client.writer = &kafkaGo.Writer{
			Addr:                   kafkaGo.TCP(cfg.Kafka.Brokers...),
			Transport:              &kafkaGo.Transport{SASL: mechanism},
			Balancer:               &kafkaGo.Hash{},
			RequiredAcks:           kafkaGo.RequireOne,
			WriteTimeout:           writeTimeout,
			AllowAutoTopicCreation: true,
		}
	}

	log.Info().Bool("enabled", client.Enabled()).Strs("brokers", cfg.Kafka.Brokers).Msg("Kafka client initialized")

	return client
}

func (k *kafkaClientImpl) Enabled() bool {
	return k.cfg.Kafka.Enable && len(k.cfg.Kafka.Brokers) > 0
}

func (k *kafkaClientImpl) Publish(ctx context.Context, topic string, messages ...Message) error {
	if k.writer == nil {
		return ErrDisabled
	}

	encoded := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		msg, err := message.encode(topic)
		if err != nil {
			return err
		}

		encoded = append(encoded, msg)
	}

	if err := k.writer.WriteMessages(ctx, encoded...); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	log.Debug().Str("topic", topic).Int("count", len(encoded)).Msg("Published events.")

	return nil
}

// Subscribe consumes topic with the consumer group until ctx is cancelled.
func (k *kafkaClientImpl) Subscribe(ctx context.Context, group, topic string, handler Handler) error {
	if !k.Enabled() {
		return ErrDisabled
	}

	if group == "" {
		group = k.cfg.Kafka.ConsumerGroup
	}

	reader := kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers:     k.cfg.Kafka.Brokers,
		Topic:       topic,
		GroupID:     group,
		Dialer:      k.dialer,
		StartOffset: kafkaGo.FirstOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("Failed to close Kafka reader.")
		}
	}()

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			return fmt.Errorf("failed to fetch from %s: %w", topic, err)
		}

		if err = handler(ctx, msg); err != nil {
			log.Error().Err(err).Str("topic", topic).Str("key", string(msg.Key)).Int64("offset", msg.Offset).Msg("Failed to handle event.")
		}

		if err = reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Str("topic", topic).Int64("offset", msg.Offset).Msg("Failed to commit event.")
		}
	}
}

func (k *kafkaClientImpl) Close() error {
	if k.writer == nil {
		return nil
	}

	if err := k.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer: %w", err)
	}

	return nil
}
