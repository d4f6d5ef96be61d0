package worker_test

import (
	"context"
	"errors"
	"testing"

	"cowork/config"
	"cowork/infras/kafka"
	kafkaMocks "cowork/infras/kafka/mocks"
	otelMocks "cowork/infras/otel/mocks"
	notificationMocks "cowork/internal/domains/notification/mocks"
	"cowork/transport/worker"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Kafka.ConsumerGroup = "cowork"
	cfg.Kafka.Topics.Notification = "notifications"

	return cfg
}

var errBroker = errors.New("broker unreachable")

func TestWorker_Run(t *testing.T) {
	message := kafkaGo.Message{Key: []byte("asha@example.com"), Value: []byte(`{"to":"asha@example.com"}`)}

	tests := []struct {
		name      string
		setupMock func(client *kafkaMocks.MockClient, notifier *notificationMocks.MockNotifier)
		wantErr   error
	}{
		{
			name: "kafka disabled",
			setupMock: func(client *kafkaMocks.MockClient, _ *notificationMocks.MockNotifier) {
				client.EXPECT().Enabled().Return(false)
			},
			wantErr: kafka.ErrDisabled,
		},
		{
			name: "delivers consumed messages",
			setupMock: func(client *kafkaMocks.MockClient, notifier *notificationMocks.MockNotifier) {
				client.EXPECT().Enabled().Return(true)
				client.EXPECT().
					Subscribe(gomock.Any(), "cowork", "notifications", gomock.Any()).
					DoAndReturn(func(ctx context.Context, _, _ string, handler kafka.Handler) error {
						assert.NoError(t, handler(ctx, message))

						return nil
					})
				client.EXPECT().Close().Return(nil)
				notifier.EXPECT().Deliver(gomock.Any(), message).Return(nil)
			},
		},
		{
			name: "delivery failure is handed back to the subscription",
			setupMock: func(client *kafkaMocks.MockClient, notifier *notificationMocks.MockNotifier) {
				client.EXPECT().Enabled().Return(true)
				client.EXPECT().
					Subscribe(gomock.Any(), "cowork", "notifications", gomock.Any()).
					DoAndReturn(func(ctx context.Context, _, _ string, handler kafka.Handler) error {
						assert.Error(t, handler(ctx, message))
						assert.Error(t, handler(ctx, message))

						return nil
					})
				client.EXPECT().Close().Return(nil)
				notifier.EXPECT().Deliver(gomock.Any(), message).Return(errors.New("smtp down")).Times(2)
			},
		},
		{
			name: "broker failure stops the worker",
			setupMock: func(client *kafkaMocks.MockClient, _ *notificationMocks.MockNotifier) {
				client.EXPECT().Enabled().Return(true)
				client.EXPECT().
					Subscribe(gomock.Any(), "cowork", "notifications", gomock.Any()).
					Return(errBroker)
				client.EXPECT().Close().Return(nil)
			},
			wantErr: errBroker,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := kafkaMocks.NewMockClient(ctrl)
			notifier := notificationMocks.NewMockNotifier(ctrl)
			tt.setupMock(client, notifier)

			w := worker.New(testConfig(), client, notifier, otelMocks.NewOtel())

			err := w.Run(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
		})
	}
}
