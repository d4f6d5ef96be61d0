package kyc

import (
	"net/http"

	"cowork/infras/otel"
	"cowork/internal/domains/kyc/model"
	"cowork/internal/domains/kyc/model/dto"
	"cowork/internal/domains/kyc/service"
	"cowork/shared/constant"
	gDto "cowork/shared/dto"
	"cowork/shared/upload"
	"cowork/shared/validator"
	"cowork/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Kyc
	otel    otel.Otel
}

func New(service service.Kyc, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/kyc", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.SubmitKyc)
		routerGroup.Get("/", handler.GetKycs)
		routerGroup.Get("/me", handler.GetMyKyc)
		routerGroup.Get("/{id}", handler.GetKycByID)
		routerGroup.Patch("/{id}/verify", handler.VerifyKyc)
	})
}

// SubmitKyc handles a KYC submission.
// @Summary Submit KYC
// @Description Submit freelancer or company KYC documents. A rejected submission can be sent again.
// @Tags KYC
// @Accept multipart/form-data
// @Produce json
// @Param type formData string true "Freelancer or Company"
// @Param name formData string true "Full name"
// @Param email formData string true "Email"
// @Param mobile formData string true "Mobile"
// @Param booking_id formData string false "Booking the KYC belongs to"
// @Param gst_number formData string false "GST number"
// @Param id_front formData file false "ID front (freelancer)"
// @Param id_back formData file false "ID back (freelancer)"
// @Param pan formData file false "PAN card (freelancer)"
// @Param photo formData file false "Photo (freelancer)"
// @Param payment_screenshot formData file false "Payment screenshot"
// @Param company_name formData string false "Company name (company)"
// @Param certificate_of_incorporation formData file false "Certificate of incorporation (company)"
// @Param company_pan formData file false "Company PAN (company)"
// @Param director_name formData string false "Director name (company)"
// @Param din formData string false "Director identification number (company)"
// @Param director_pan formData file false "Director PAN (company)"
// @Param director_photo formData file false "Director photo (company)"
// @Param director_id_front formData file false "Director ID front (company)"
// @Param director_id_back formData file false "Director ID back (company)"
// @Success 201 {object} response.Data[dto.KycResponse] "KYC submitted successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/kyc [post]
// @Security BearerAuth
func (handler *Handler) SubmitKyc(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SubmitKyc")
	defer scope.End()

	if err := upload.ParseForm(r); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req := dto.SubmitKycRequest{
		Type:                       model.Type(r.FormValue("type")),
		BookingID:                  r.FormValue("booking_id"),
		Name:                       r.FormValue("name"),
		Email:                      r.FormValue("email"),
		Mobile:                     r.FormValue("mobile"),
		GSTNumber:                  r.FormValue("gst_number"),
		IDFront:                    upload.FormFile(r, "id_front"),
		IDBack:                     upload.FormFile(r, "id_back"),
		PAN:                        upload.FormFile(r, "pan"),
		Photo:                      upload.FormFile(r, "photo"),
		PaymentScreenshot:          upload.FormFile(r, "payment_screenshot"),
		CompanyName:                r.FormValue("company_name"),
		CertificateOfIncorporation: upload.FormFile(r, "certificate_of_incorporation"),
		CompanyPAN:                 upload.FormFile(r, "company_pan"),
		DirectorName:               r.FormValue("director_name"),
		DIN:                        r.FormValue("din"),
		DirectorPAN:                upload.FormFile(r, "director_pan"),
		DirectorPhoto:              upload.FormFile(r, "director_photo"),
		DirectorIDFront:            upload.FormFile(r, "director_id_front"),
		DirectorIDBack:             upload.FormFile(r, "director_id_back"),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Submit(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to submit kyc")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("KYC submitted successfully")

	response.WithJSON(w, http.StatusCreated, "KYC submitted successfully", res)
}

// GetMyKyc returns the caller's submission.
// @Summary Get my KYC
// @Tags KYC
// @Produce json
// @Success 200 {object} response.Data[dto.KycResponse] "KYC details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/kyc/me [get]
// @Security BearerAuth
func (handler *Handler) GetMyKyc(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyKyc")
	defer scope.End()

	res, err := handler.service.GetMine(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get my kyc")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "KYC retrieved successfully", res)
}

// GetKycs lists submissions.
// @Summary Get all KYC submissions
// @Description Retrieve KYC submissions with optional filtering and pagination.
// @Tags KYC
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Pending, Approved or Rejected"
// @Param type query string false "Freelancer or Company"
// @Success 200 {object} response.Data[dto.GetKycsResponse] "List of KYC submissions"
// @Failure 500 {object} response.Error
// @Router /v1/kyc [get]
// @Security BearerAuth
func (handler *Handler) GetKycs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetKycs")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FromQuery(r, model.TableName, model.FieldStatus, model.FieldType, model.FieldUserID)

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get kyc list")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "KYC submissions retrieved successfully", res)
}

// GetKycByID returns one submission.
// @Summary Get KYC by ID
// @Tags KYC
// @Produce json
// @Param id path string true "KYC ID"
// @Success 200 {object} response.Data[dto.KycResponse] "KYC details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/kyc/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetKycByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetKycByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get kyc")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "KYC retrieved successfully", res)
}

// VerifyKyc approves or rejects a submission.
// @Summary Verify KYC
// @Description Approve or reject a pending KYC submission. The applicant is notified by email.
// @Tags KYC
// @Accept json
// @Produce json
// @Param id path string true "KYC ID"
// @Param request body dto.VerifyKycRequest true "Verify KYC Request"
// @Success 200 {object} response.Data[dto.KycResponse] "KYC verified successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/kyc/{id}/verify [patch]
// @Security BearerAuth
func (handler *Handler) VerifyKyc(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".VerifyKyc")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.VerifyKycRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Verify(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to verify kyc")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("KYC verified by user " + user)

	response.WithJSON(w, http.StatusOK, "KYC verified successfully", res)
}
