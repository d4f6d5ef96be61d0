package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"

	"cowork/config"
	"cowork/infras/kafka"
	"cowork/infras/mailer"
	"cowork/infras/otel"
	"cowork/internal/domains/notification/model"
	"cowork/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

//go:embed templates.html
var templatesHTML string

var templates = template.Must(template.New("notification").Parse(templatesHTML))

var ErrNoRecipient = errors.New("notification has no recipient")

// Notifier sends emails without making the caller wait for, or fail on, delivery.
type Notifier interface {
	Notify(ctx context.Context, notification model.Notification)
	NotifyAdmin(ctx context.Context, notification model.Notification)
	Deliver(ctx context.Context, message kafkaGo.Message) error
}

type serviceImpl struct {
	cfg    *config.Config
	kafka  kafka.Client
	mailer mailer.Mailer
	otel   otel.Otel
}

func New(cfg *config.Config, kafka kafka.Client, mailer mailer.Mailer, otel otel.Otel) Notifier {
	return &serviceImpl{
		cfg:    cfg,
		kafka:  kafka,
		mailer: mailer,
		otel:   otel,
	}
}

func Render(notification model.Notification) (model.Mail, error) {
	if notification.To == constant.Empty {
		return model.Mail{}, ErrNoRecipient
	}

	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, notification.Template, notification.Data); err != nil {
		return model.Mail{}, fmt.Errorf("failed to render %s: %w", notification.Template, err)
	}

	return model.Mail{
		To:      notification.To,
		Subject: notification.Subject,
		HTML:    body.String(),
	}, nil
}

func (s *serviceImpl) Notify(ctx context.Context, notification model.Notification) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Notify")
	defer scope.End()

	mail, err := Render(notification)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("template", notification.Template).Msg("failed to prepare notification")

		return
	}

	c := context.WithoutCancel(ctx)

	if s.kafka.Enabled() {
		go func() {
			err := s.kafka.Publish(c, s.cfg.Kafka.Topics.Notification, kafka.Message{Key: mail.To, Value: mail})
			if err == nil {
				return
			}

			log.Warn().Err(err).Str("template", notification.Template).Msg("failed to publish notification, sending directly")
			s.send(c, mail)
		}()

		return
	}

	go s.send(c, mail)
}

func (s *serviceImpl) NotifyAdmin(ctx context.Context, notification model.Notification) {
	notification.To = s.cfg.Mail.AdminAddress

	s.Notify(ctx, notification)
}

// Deliver sends a mail read from the notification topic.
func (s *serviceImpl) Deliver(ctx context.Context, message kafkaGo.Message) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Deliver")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	mail, err := kafka.Decode[model.Mail](message)
	if err != nil {
		return fmt.Errorf("failed to decode notification: %w", err)
	}

	if mail.To == constant.Empty {
		return ErrNoRecipient
	}

	if err = s.mailer.Send(ctx, mail.To, mail.Subject, mail.HTML); err != nil {
		return fmt.Errorf("failed to deliver notification: %w", err)
	}

	return nil
}

func (s *serviceImpl) send(ctx context.Context, mail model.Mail) {
	if err := s.mailer.Send(ctx, mail.To, mail.Subject, mail.HTML); err != nil {
		log.Error().Err(err).Str("to", mail.To).Str("subject", mail.Subject).Msg("failed to send notification")
	}
}
