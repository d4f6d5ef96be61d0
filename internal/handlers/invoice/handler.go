package invoice

import (
	"encoding/json"
	"io"
	"net/http"

	"cowork/infras/otel"
	"cowork/internal/domains/invoice/service"
	"cowork/shared/constant"
	"cowork/shared/failure"
	"cowork/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	maxBodyBytes   = 1 << 20
	contentTypePDF = "application/pdf"
)

type Handler struct {
	service service.Invoice
	otel    otel.Otel
}

func New(service service.Invoice, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/invoices", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.ListInvoices)
		routerGroup.Post("/", handler.CreateInvoice)
		routerGroup.Get("/pending", handler.PendingInvoices)
		routerGroup.Get("/{id}", handler.GetInvoice)
		routerGroup.Put("/{id}", handler.UpdateInvoice)
		routerGroup.Delete("/{id}", handler.DeleteInvoice)
		routerGroup.Post("/{id}/email", handler.EmailInvoice)
		routerGroup.Get("/{id}/pdf", handler.InvoicePDF)
	})
}

// ListInvoices proxies the invoice list. Query parameters are passed through.
// @Summary List invoices
// @Tags Invoice
// @Produce json
// @Success 200 {object} response.Data[any] "Invoices"
// @Failure 502 {object} response.Error
// @Router /v1/invoices [get]
// @Security BearerAuth
func (handler *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ListInvoices")
	defer scope.End()

	res, err := handler.service.List(ctx, r.URL.Query())
	handler.reply(w, scope, res, err, "Invoices retrieved successfully")
}

// PendingInvoices lists unpaid invoices.
// @Summary List pending invoices
// @Tags Invoice
// @Produce json
// @Success 200 {object} response.Data[any] "Invoices"
// @Failure 502 {object} response.Error
// @Router /v1/invoices/pending [get]
// @Security BearerAuth
func (handler *Handler) PendingInvoices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PendingInvoices")
	defer scope.End()

	res, err := handler.service.Pending(ctx)
	handler.reply(w, scope, res, err, "Pending invoices retrieved successfully")
}

// GetInvoice returns one invoice.
// @Summary Get an invoice
// @Tags Invoice
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.Data[any] "Invoice"
// @Failure 404 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/invoices/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInvoice")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	handler.reply(w, scope, res, err, "Invoice retrieved successfully")
}

// CreateInvoice creates an invoice from the request body as is.
// @Summary Create an invoice
// @Tags Invoice
// @Accept json
// @Produce json
// @Param request body object true "Invoice"
// @Success 200 {object} response.Data[any] "Invoice"
// @Failure 400 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/invoices [post]
// @Security BearerAuth
func (handler *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateInvoice")
	defer scope.End()

	body, err := readBody(w, r)
	if err != nil {
		handler.reply(w, scope, nil, err, constant.Empty)

		return
	}

	res, err := handler.service.Create(ctx, body)
	handler.reply(w, scope, res, err, "Invoice created successfully")
}

// UpdateInvoice replaces an invoice.
// @Summary Update an invoice
// @Tags Invoice
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param request body object true "Invoice"
// @Success 200 {object} response.Data[any] "Invoice"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/invoices/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateInvoice")
	defer scope.End()

	body, err := readBody(w, r)
	if err != nil {
		handler.reply(w, scope, nil, err, constant.Empty)

		return
	}

	res, err := handler.service.Update(ctx, chi.URLParam(r, constant.RequestParamID), body)
	handler.reply(w, scope, res, err, "Invoice updated successfully")
}

// DeleteInvoice deletes an invoice.
// @Summary Delete an invoice
// @Tags Invoice
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.Data[any] "Invoice deleted"
// @Failure 404 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/invoices/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteInvoice")
	defer scope.End()

	res, err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID))
	handler.reply(w, scope, res, err, "Invoice deleted successfully")
}

// EmailInvoice emails an invoice to its customer.
// @Summary Email an invoice
// @Tags Invoice
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param request body object false "Email options"
// @Success 200 {object} response.Data[any] "Invoice emailed"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/invoices/{id}/email [post]
// @Security BearerAuth
func (handler *Handler) EmailInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".EmailInvoice")
	defer scope.End()

	body, err := readBody(w, r)
	if err != nil {
		handler.reply(w, scope, nil, err, constant.Empty)

		return
	}

	res, err := handler.service.Email(ctx, chi.URLParam(r, constant.RequestParamID), body)
	handler.reply(w, scope, res, err, "Invoice emailed successfully")
}

// InvoicePDF downloads an invoice as PDF.
// @Summary Download invoice PDF
// @Tags Invoice
// @Produce application/pdf
// @Param id path string true "Invoice ID"
// @Success 200 {file} binary "Invoice PDF"
// @Failure 404 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/invoices/{id}/pdf [get]
// @Security BearerAuth
func (handler *Handler) InvoicePDF(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".InvoicePDF")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	content, err := handler.service.PDF(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to download invoice pdf")

		response.WithError(w, err)

		return
	}

	response.WithFile(w, contentTypePDF, "invoice-"+id+".pdf", content)
}

func (handler *Handler) reply(w http.ResponseWriter, scope otel.Scope, res json.RawMessage, err error, message string) {
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("invoice request failed")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, message, res)
}

func readBody(w http.ResponseWriter, r *http.Request) (json.RawMessage, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, failure.BadRequest(err) // nolint:wrapcheck
	}

	return body, nil
}
