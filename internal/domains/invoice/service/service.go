package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"cowork/infras/invoice"
	"cowork/infras/otel"
	"cowork/shared/constant"
	"cowork/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	paramStatus   = "status"
	statusUnpaid  = "unpaid"
	entityInvoice = "invoice"
)

// Invoice proxies the accounting API and translates its failures.
type Invoice interface {
	List(ctx context.Context, query url.Values) (json.RawMessage, error)
	Pending(ctx context.Context) (json.RawMessage, error)
	Get(ctx context.Context, id string) (json.RawMessage, error)
	Create(ctx context.Context, body json.RawMessage) (json.RawMessage, error)
	Update(ctx context.Context, id string, body json.RawMessage) (json.RawMessage, error)
	Delete(ctx context.Context, id string) (json.RawMessage, error)
	Email(ctx context.Context, id string, body json.RawMessage) (json.RawMessage, error)
	PDF(ctx context.Context, id string) ([]byte, error)
}

type serviceImpl struct {
	client invoice.Client
	otel   otel.Otel
}

func New(client invoice.Client, otel otel.Otel) Invoice {
	return &serviceImpl{
		client: client,
		otel:   otel,
	}
}

func (s *serviceImpl) List(ctx context.Context, query url.Values) (res json.RawMessage, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.client.List(ctx, query)

	return res, translate(err, "list invoices")
}

func (s *serviceImpl) Pending(ctx context.Context) (res json.RawMessage, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Pending")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.client.List(ctx, url.Values{paramStatus: []string{statusUnpaid}})

	return res, translate(err, "list pending invoices")
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res json.RawMessage, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.client.Get(ctx, id)

	return res, translate(err, "get invoice")
}

func (s *serviceImpl) Create(ctx context.Context, body json.RawMessage) (res json.RawMessage, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !json.Valid(body) {
		return nil, failure.BadRequestFromString("invoice body must be valid json") // nolint:wrapcheck
	}

	res, err = s.client.Create(ctx, body)

	return res, translate(err, "create invoice")
}

func (s *serviceImpl) Update(ctx context.Context, id string, body json.RawMessage) (res json.RawMessage, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !json.Valid(body) {
		return nil, failure.BadRequestFromString("invoice body must be valid json") // nolint:wrapcheck
	}

	res, err = s.client.Update(ctx, id, body)

	return res, translate(err, "update invoice")
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (res json.RawMessage, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.client.Delete(ctx, id)

	return res, translate(err, "delete invoice")
}

func (s *serviceImpl) Email(ctx context.Context, id string, body json.RawMessage) (res json.RawMessage, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Email")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if len(body) == 0 {
		body = json.RawMessage("{}")
	}

	res, err = s.client.Email(ctx, id, body)

	return res, translate(err, "email invoice")
}

func (s *serviceImpl) PDF(ctx context.Context, id string) (res []byte, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PDF")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.client.PDF(ctx, id)

	return res, translate(err, "download invoice pdf")
}

// translate maps upstream status codes onto failures the handlers understand.
func translate(err error, action string) error {
	if err == nil {
		return nil
	}

	log.Error().Err(err).Msg("failed to " + action)

	var upstream *invoice.Error
	if !errors.As(err, &upstream) {
		return failure.BadGateway(fmt.Sprintf("failed to %s: invoice service unreachable", action)) // nolint:wrapcheck
	}

	switch upstream.StatusCode {
	case http.StatusNotFound:
		return failure.NotFound(entityInvoice + " not found") // nolint:wrapcheck
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return failure.BadRequestFromString(upstream.Body) // nolint:wrapcheck
	default:
		return failure.BadGateway(fmt.Sprintf("failed to %s: upstream returned %d", action, upstream.StatusCode)) // nolint:wrapcheck
	}
}
