package meetingroom

import (
	"net/http"
	"strings"

	"cowork/infras/otel"
	"cowork/internal/domains/meetingroom/model"
	"cowork/internal/domains/meetingroom/model/dto"
	"cowork/internal/domains/meetingroom/service"
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

const (
	queryDate  = "date"
	queryYear  = "year"
	queryMonth = "month"
	formSlots  = "time_slots"
)

type Handler struct {
	service service.MeetingRoom
	otel    otel.Otel
}

func New(service service.MeetingRoom, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/meeting-rooms", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetMeetingRooms)
		routerGroup.Post("/", handler.CreateMeetingRoom)
		routerGroup.Patch("/{id}", handler.UpdateMeetingRoom)

		routerGroup.Get("/room-types", handler.catalog(func(c dto.CatalogResponse) dto.CatalogResponse {
			return dto.CatalogResponse{RoomTypes: c.RoomTypes}
		}))
		routerGroup.Get("/booking-types", handler.catalog(func(c dto.CatalogResponse) dto.CatalogResponse {
			return dto.CatalogResponse{BookingTypes: c.BookingTypes}
		}))
		routerGroup.Get("/member-types", handler.catalog(func(c dto.CatalogResponse) dto.CatalogResponse {
			return dto.CatalogResponse{MemberTypes: c.MemberTypes}
		}))
		routerGroup.Get("/amenities", handler.catalog(func(c dto.CatalogResponse) dto.CatalogResponse {
			return dto.CatalogResponse{Amenities: c.Amenities}
		}))

		routerGroup.Get("/pricing", handler.GetPricing)
		routerGroup.Get("/available-slots", handler.GetAvailableSlots)
		routerGroup.Get("/available-days", handler.GetAvailableDays)

		routerGroup.Route("/bookings", func(bookings chi.Router) {
			bookings.Post("/", handler.BookMeetingRoom)
			bookings.Get("/", handler.GetRoomBookings)
			bookings.Get("/me", handler.GetMyRoomBookings)
			bookings.Patch("/{id}/verify", handler.VerifyRoomBooking)
		})
	})
}

// catalog serves one part of the static catalog.
// @Summary Meeting room catalog
// @Description Room types, booking types, member types or amenities, one list per route.
// @Tags MeetingRoom
// @Produce json
// @Success 200 {object} response.Data[dto.CatalogResponse] "Catalog"
// @Router /v1/meeting-rooms/room-types [get]
// @Router /v1/meeting-rooms/booking-types [get]
// @Router /v1/meeting-rooms/member-types [get]
// @Router /v1/meeting-rooms/amenities [get]
func (handler *Handler) catalog(pick func(dto.CatalogResponse) dto.CatalogResponse) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Catalog")
		defer scope.End()

		response.WithJSON(w, http.StatusOK, "Catalog retrieved successfully", pick(handler.service.Catalog(ctx)))
	}
}

// GetMeetingRooms lists the meeting rooms.
// @Summary Get meeting rooms
// @Tags MeetingRoom
// @Produce json
// @Success 200 {object} response.Data[dto.GetMeetingRoomsResponse] "List of meeting rooms"
// @Failure 500 {object} response.Error
// @Router /v1/meeting-rooms [get]
func (handler *Handler) GetMeetingRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMeetingRooms")
	defer scope.End()

	res, err := handler.service.List(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get meeting rooms")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Meeting rooms retrieved successfully", res)
}

// CreateMeetingRoom adds a meeting room.
// @Summary Create a meeting room
// @Tags MeetingRoom
// @Accept json
// @Produce json
// @Param request body dto.CreateMeetingRoomRequest true "Create Meeting Room Request"
// @Success 201 {object} response.Message "Meeting room created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/meeting-rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateMeetingRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateMeetingRoom")
	defer scope.End()

	req := dto.CreateMeetingRoomRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create meeting room")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusCreated, "Meeting room created successfully")
}

// UpdateMeetingRoom changes rates or hours of a meeting room.
// @Summary Update a meeting room
// @Tags MeetingRoom
// @Accept json
// @Produce json
// @Param id path string true "Meeting room ID"
// @Param request body dto.UpdateMeetingRoomRequest true "Update Meeting Room Request"
// @Success 200 {object} response.Message "Meeting room updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/meeting-rooms/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateMeetingRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateMeetingRoom")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateMeetingRoomRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update meeting room")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Meeting room updated successfully")
}

// GetPricing quotes a meeting room.
// @Summary Get meeting room pricing
// @Description Price for a room type, booking type and member type. Hourly quotes include the 30 minute rate.
// @Tags MeetingRoom
// @Produce json
// @Param capacity_type query string true "Room type"
// @Param booking_type query string true "Hourly or Full Day"
// @Param member_type query string true "Member or Non-Member"
// @Success 200 {object} response.Data[dto.PricingResponse] "Pricing"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/meeting-rooms/pricing [get]
func (handler *Handler) GetPricing(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPricing")
	defer scope.End()

	query := r.URL.Query()
	req := dto.PricingRequest{
		CapacityType: query.Get(model.FieldCapacityType),
		BookingType:  model.BookingType(query.Get(model.FieldBookingType)),
		MemberType:   model.MemberType(query.Get(model.FieldMemberType)),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Pricing(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get pricing")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Pricing retrieved successfully", res)
}

// GetAvailableSlots lists free and booked half hour slots of a day.
// @Summary Get available slots
// @Tags MeetingRoom
// @Produce json
// @Param capacity_type query string true "Room type"
// @Param date query string true "YYYY-MM-DD"
// @Param member_type query string false "Member or Non-Member"
// @Success 200 {object} response.Data[dto.AvailableSlotsResponse] "Slots"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/meeting-rooms/available-slots [get]
func (handler *Handler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailableSlots")
	defer scope.End()

	query := r.URL.Query()
	req := dto.AvailableSlotsRequest{
		CapacityType: query.Get(model.FieldCapacityType),
		Date:         query.Get(queryDate),
		MemberType:   model.MemberType(query.Get(model.FieldMemberType)),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.AvailableSlots(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get available slots")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Available slots retrieved successfully", res)
}

// GetAvailableDays lists the free and fully booked dates of a month.
// @Summary Get available days
// @Tags MeetingRoom
// @Produce json
// @Param capacity_type query string true "Room type"
// @Param year query integer true "Year"
// @Param month query integer true "Month, 1 to 12"
// @Success 200 {object} response.Data[dto.AvailableDaysResponse] "Days"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/meeting-rooms/available-days [get]
func (handler *Handler) GetAvailableDays(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailableDays")
	defer scope.End()

	query := r.URL.Query()
	req := dto.AvailableDaysRequest{CapacityType: query.Get(model.FieldCapacityType)}

	year, err := shared.ConvertStringToInt(query.Get(queryYear))
	if err != nil {
		response.WithError(w, failure.BadRequestFromString("year must be a whole number"))

		return
	}

	month, err := shared.ConvertStringToInt(query.Get(queryMonth))
	if err != nil {
		response.WithError(w, failure.BadRequestFromString("month must be a whole number"))

		return
	}

	req.Year = year
	req.Month = month

	if err = validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.AvailableDays(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get available days")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Available days retrieved successfully", res)
}

// BookMeetingRoom books a meeting room for slots or a full day.
// @Summary Book a meeting room
// @Description Accepts JSON, or multipart when documents are attached. time_slots may be a JSON array or a comma separated list.
// @Tags MeetingRoom
// @Accept json,mpfd
// @Produce json
// @Param capacity_type formData string true "Room type"
// @Param booking_date formData string true "YYYY-MM-DD"
// @Param booking_type formData string true "Hourly or Full Day"
// @Param member_type formData string true "Member or Non-Member"
// @Param time_slots formData string false "Slots such as 10:00 AM - 10:30 AM"
// @Param duration formData string false "Slot duration for hourly bookings"
// @Param notes formData string false "Notes"
// @Param gst_number formData string false "GST number"
// @Param id_proof formData file false "ID proof"
// @Param payment_screenshot formData file false "Payment screenshot"
// @Param coi formData file false "Certificate of incorporation"
// @Success 201 {object} response.Data[dto.BookRoomResponse] "Meeting room booked successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/meeting-rooms/bookings [post]
// @Security BearerAuth
func (handler *Handler) BookMeetingRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BookMeetingRoom")
	defer scope.End()

	req, err := bookRequest(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Book(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to book meeting room")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Meeting room booked by user " + user)

	response.WithJSON(w, http.StatusCreated, "Meeting room booked successfully", res)
}

func bookRequest(r *http.Request) (dto.BookRoomRequest, error) {
	req := dto.BookRoomRequest{}

	if !strings.HasPrefix(r.Header.Get(constant.RequestHeaderContentType), constant.ContentTypeMultipartFormData) {
		return req, validator.Validate(r.Body, &req) // nolint:wrapcheck
	}

	if err := upload.ParseForm(r); err != nil {
		return req, err // nolint:wrapcheck
	}

	req.CapacityType = r.FormValue(model.FieldCapacityType)
	req.BookingDate = r.FormValue(model.FieldBookingDate)
	req.BookingType = model.BookingType(r.FormValue(model.FieldBookingType))
	req.MemberType = model.MemberType(r.FormValue(model.FieldMemberType))
	req.Duration = model.Duration(r.FormValue("duration"))
	req.Notes = r.FormValue("notes")
	req.GSTNumber = r.FormValue("gst_number")
	req.IDProof = upload.FormFile(r, model.FieldIDProof)
	req.PaymentScreenshot = upload.FormFile(r, model.FieldPaymentScreenshot)
	req.COI = upload.FormFile(r, "coi")

	if values, ok := upload.FormValues(r, formSlots); ok {
		if len(values) == 1 {
			req.TimeSlots = shared.SplitList(values[0])
		} else {
			req.TimeSlots = values
		}
	}

	return req, validator.ValidateStruct(&req) // nolint:wrapcheck
}

// VerifyRoomBooking confirms or rejects a meeting room booking.
// @Summary Verify a meeting room booking
// @Tags MeetingRoom
// @Accept json
// @Produce json
// @Param id path string true "Room booking ID"
// @Param request body dto.VerifyRoomBookingRequest true "Verify Request"
// @Success 200 {object} response.Data[dto.RoomBookingResponse] "Room booking verified successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/meeting-rooms/bookings/{id}/verify [patch]
// @Security BearerAuth
func (handler *Handler) VerifyRoomBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".VerifyRoomBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.VerifyRoomBookingRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Verify(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to verify room booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Room booking verified successfully", res)
}

// GetMyRoomBookings lists the caller's meeting room bookings.
// @Summary Get my meeting room bookings
// @Tags MeetingRoom
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetRoomBookingsResponse] "List of room bookings"
// @Failure 500 {object} response.Error
// @Router /v1/meeting-rooms/bookings/me [get]
// @Security BearerAuth
func (handler *Handler) GetMyRoomBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyRoomBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.service.GetMine(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get my room bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Room bookings retrieved successfully", res)
}

// GetRoomBookings lists all meeting room bookings.
// @Summary Get all meeting room bookings
// @Tags MeetingRoom
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Param booking_date query string false "Filter by date, YYYY-MM-DD"
// @Param meeting_room_id query string false "Filter by room"
// @Success 200 {object} response.Data[dto.GetRoomBookingsResponse] "List of room bookings"
// @Failure 500 {object} response.Error
// @Router /v1/meeting-rooms/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetRoomBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FromQuery(r, model.TableRoomBooking, model.FieldStatus, model.FieldBookingDate, model.FieldMeetingRoomID, model.FieldUserID)

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Room bookings retrieved successfully", res)
}
