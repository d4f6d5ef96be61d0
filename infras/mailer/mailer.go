package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"cowork/config"
	"cowork/infras/otel"
	"cowork/shared/constant"

	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"
)

var ErrDisabled = errors.New("mail is disabled")

type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

type mailerImpl struct {
	config *config.Config
	otel   otel.Otel
}

func New(config *config.Config, otel otel.Otel) Mailer {
	log.Info().
		Bool("enabled", config.Mail.Enable).
		Str("host", config.Mail.Host).
		Int("port", config.Mail.Port).
		Msg("Mailer initialized")

	return &mailerImpl{
		config: config,
		otel:   otel,
	}
}

func (m *mailerImpl) client() (*mail.Client, error) {
	options := []mail.Option{mail.WithPort(m.config.Mail.Port)}

	if m.config.Mail.Username != "" {
		options = append(options,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.config.Mail.Username),
			mail.WithPassword(m.config.Mail.Password),
		)
	}

	client, err := mail.NewClient(m.config.Mail.Host, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return client, nil
}

func (m *mailerImpl) Send(ctx context.Context, to, subject, html string) (err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelMailScopeName, constant.OtelMailScopeName+".Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !m.config.Mail.Enable {
		log.Warn().Str("to", to).Str("subject", subject).Msg("mail disabled, message dropped")

		return ErrDisabled
	}

	scope.SetAttributes(map[string]any{
		"mail.to":      to,
		"mail.subject": subject,
	})

	msg := mail.NewMsg()
	if err = msg.FromFormat(m.config.Mail.FromName, m.config.Mail.FromAddress); err != nil {
		return fmt.Errorf("failed to set from address: %w", err)
	}

	if err = msg.To(to); err != nil {
		return fmt.Errorf("failed to set to address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, html)

	client, err := m.client()
	if err != nil {
		return err
	}

	if err = client.DialAndSendWithContext(ctx, msg); err != nil {
		log.Error().Err(err).Str("to", to).Msg("failed to send mail")

		return fmt.Errorf("failed to send mail: %w", err)
	}

	log.Info().Str("to", to).Str("subject", subject).Msg("mail sent")

	return nil
}
