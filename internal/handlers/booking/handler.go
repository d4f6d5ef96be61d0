package booking

import (
	"net/http"
	"strings"

	"cowork/infras/otel"
	"cowork/internal/domains/booking/model"
	"cowork/internal/domains/booking/model/dto"
	"cowork/internal/domains/booking/service"
	"cowork/shared"
	"cowork/shared/constant"
	gDto "cowork/shared/dto"
	"cowork/shared/failure"
	"cowork/shared/upload"
	"cowork/shared/validator"
	"cowork/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/me", handler.GetMyBookings)
		routerGroup.Get("/notices/pending", handler.GetPendingNotices)
		routerGroup.Get("/notices/active", handler.GetActiveNotices)
		routerGroup.Get("/{id}", handler.GetBookingDetails)
		routerGroup.Post("/{id}/payment", handler.UploadPayment)
		routerGroup.Patch("/{id}/verify", handler.VerifyBooking)
		routerGroup.Post("/{id}/notice", handler.SubmitNotice)
		routerGroup.Get("/{id}/notice", handler.GetNotice)
	})
}

// CreateBooking handles the creation of a new booking.
// @Summary Create a new booking
// @Description Request a space for a date range. The booking starts as Pending until an admin verifies it.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse] "Booking created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, "Booking created successfully", res)
}

// UploadPayment attaches the payment proof to a booking.
// @Summary Upload payment screenshot
// @Description Attach a payment screenshot to the caller's booking.
// @Tags Booking
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Booking ID"
// @Param payment_screenshot formData file true "Payment screenshot"
// @Success 200 {object} response.Data[dto.BookingResponse] "Payment uploaded successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/payment [post]
// @Security BearerAuth
func (handler *Handler) UploadPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadPayment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := upload.ParseForm(r); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req := dto.UploadPaymentRequest{
		PaymentScreenshot: upload.FormFile(r, model.FieldPaymentScreenshot),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.UploadPayment(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload payment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Payment uploaded successfully", res)
}

// VerifyBooking confirms or rejects a pending booking.
// @Summary Verify a booking
// @Description Confirm or reject a pending booking. The member is notified by email.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.VerifyBookingRequest true "Verify Booking Request"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking verified successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/verify [patch]
// @Security BearerAuth
func (handler *Handler) VerifyBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".VerifyBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.VerifyBookingRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Verify(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to verify booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking verified by user " + user)

	response.WithJSON(w, http.StatusOK, "Booking verified successfully", res)
}

// SubmitNotice records the member's notice to vacate.
// @Summary Submit notice
// @Description Give notice on a confirmed booking. Accepts JSON, or multipart when a notice PDF is attached.
// @Tags Booking
// @Accept json,mpfd
// @Produce json
// @Param id path string true "Booking ID"
// @Param notice_submitted_date formData string false "YYYY-MM-DD, defaults to today"
// @Param notice_period_days formData integer false "Notice period in days"
// @Param notice_pdf formData file false "Signed notice"
// @Success 200 {object} response.Data[dto.BookingResponse] "Notice submitted successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/notice [post]
// @Security BearerAuth
func (handler *Handler) SubmitNotice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SubmitNotice")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req, err := noticeRequest(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.SubmitNotice(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to submit notice")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Notice submitted successfully", res)
}

func noticeRequest(r *http.Request) (dto.SubmitNoticeRequest, error) {
	req := dto.SubmitNoticeRequest{}

	if !strings.HasPrefix(r.Header.Get(constant.RequestHeaderContentType), constant.ContentTypeMultipartFormData) {
		return req, validator.Validate(r.Body, &req) // nolint:wrapcheck
	}

	if err := upload.ParseForm(r); err != nil {
		return req, err // nolint:wrapcheck
	}

	req.NoticeSubmittedDate = r.FormValue(model.FieldNoticeSubmittedDate)
	req.NoticePDF = upload.FormFile(r, model.FieldNoticePDF)

	if days := r.FormValue(model.FieldNoticePeriodDays); days != constant.Empty {
		value, err := shared.ConvertStringToInt(days)
		if err != nil {
			return req, failure.BadRequestFromString("notice_period_days must be a whole number") // nolint:wrapcheck
		}

		req.NoticePeriodDays = value
	}

	return req, validator.ValidateStruct(&req) // nolint:wrapcheck
}

// GetNotice returns the notice window of a booking.
// @Summary Get notice
// @Description Notice dates and remaining days for a booking that has notice on file.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.NoticeResponse] "Notice details"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/notice [get]
// @Security BearerAuth
func (handler *Handler) GetNotice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetNotice")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.GetNotice(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get notice")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Notice retrieved successfully", res)
}

// GetMyBookings lists the caller's bookings.
// @Summary Get my bookings
// @Description Bookings of the authenticated user, newest first.
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 500 {object} response.Error
// @Router /v1/bookings/me [get]
// @Security BearerAuth
func (handler *Handler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	bookings, err := handler.service.GetMine(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get my bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

// GetBookingDetails returns a booking with its space, member and KYC.
// @Summary Get booking details
// @Description Members may only read their own bookings.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingDetailsResponse] "Booking details"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingDetails(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingDetails")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.GetDetails(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking details")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Booking retrieved successfully", booking)
}

// GetBookings lists all bookings.
// @Summary Get all bookings
// @Description Retrieve bookings with optional filtering and pagination.
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Param user_id query string false "Filter by user"
// @Param space_id query string false "Filter by space"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FromQuery(r, model.TableName, model.FieldStatus, model.FieldUserID, model.FieldSpaceID)

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

// GetPendingNotices lists bookings with notice awaiting action.
// @Summary Get pending notices
// @Description Bookings in Notice Given status.
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 500 {object} response.Error
// @Router /v1/bookings/notices/pending [get]
// @Security BearerAuth
func (handler *Handler) GetPendingNotices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPendingNotices")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	bookings, err := handler.service.GetPendingNotices(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get pending notices")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Pending notices retrieved successfully", bookings)
}

// GetActiveNotices lists bookings still inside their notice period.
// @Summary Get active notices
// @Description Bookings whose notice period has not ended yet.
// @Tags Booking
// @Produce json
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 500 {object} response.Error
// @Router /v1/bookings/notices/active [get]
// @Security BearerAuth
func (handler *Handler) GetActiveNotices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActiveNotices")
	defer scope.End()

	bookings, err := handler.service.GetActiveNotices(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get active notices")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Active notices retrieved successfully", bookings)
}
