package space

import (
	"net/http"

	"cowork/infras/otel"
	"cowork/internal/domains/space/model"
	"cowork/internal/domains/space/model/dto"
	"cowork/internal/domains/space/service"
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
	formImages         = "images"
	formAvailableDates = "available_dates"
)

type Handler struct {
	service service.Space
	otel    otel.Otel
}

func New(service service.Space, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/spaces", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateSpace)
		routerGroup.Get("/", handler.GetSpaces)
		routerGroup.Get("/{id}", handler.GetSpaceByID)
		routerGroup.Patch("/{id}", handler.UpdateSpace)
		routerGroup.Delete("/{id}", handler.DeleteSpace)
	})
}

// CreateSpace handles the creation of a new space.
// @Summary Create a new space
// @Description Create a rentable space with its images and the dates it can be booked.
// @Tags Space
// @Accept multipart/form-data
// @Produce json
// @Param space_name formData string true "Space name"
// @Param room_number formData string false "Room number"
// @Param cabin_number formData string false "Cabin number"
// @Param seater formData integer false "Seats"
// @Param price formData number true "Monthly price before GST"
// @Param availability formData string false "Available, Available Soon or Not Available"
// @Param available_dates formData string false "JSON array or comma separated YYYY-MM-DD dates"
// @Param images formData file true "Space images"
// @Success 201 {object} response.Data[dto.SpaceResponse] "Space created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/spaces [post]
// @Security BearerAuth
func (handler *Handler) CreateSpace(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateSpace")
	defer scope.End()

	if err := upload.ParseForm(request); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, err)

		return
	}

	req := dto.CreateSpaceRequest{
		RoomNumber:   request.FormValue("room_number"),
		CabinNumber:  request.FormValue("cabin_number"),
		SpaceName:    request.FormValue("space_name"),
		Availability: model.Availability(request.FormValue("availability")),
		Images:       upload.FormFiles(request, formImages),
	}

	if values, ok := upload.FormValues(request, formAvailableDates); ok {
		req.AvailableDates = formDates(values)
	}

	if seater := request.FormValue("seater"); seater != constant.Empty {
		value, err := shared.ConvertStringToInt(seater)
		if err != nil {
			response.WithError(writer, failure.BadRequestFromString("seater must be a whole number"))

			return
		}

		req.Seater = value
	}

	if price := request.FormValue("price"); price != constant.Empty {
		value, err := shared.ConvertStringToFloat(price)
		if err != nil {
			response.WithError(writer, failure.BadRequestFromString("price must be a number"))

			return
		}

		req.Price = value
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create space")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Space created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, "Space created successfully", res)
}

// GetSpaces retrieves all spaces based on query parameters.
// @Summary Get all spaces
// @Description Retrieve spaces with optional filtering and pagination.
// @Tags Space
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param space_name query string false "Filter by name"
// @Param availability query string false "Filter by availability"
// @Success 200 {object} response.Data[dto.GetSpacesResponse] "List of spaces"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/spaces [get]
func (handler *Handler) GetSpaces(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSpaces")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FromQuery(r, model.TableName, model.FieldAvailability)

	if name := r.URL.Query().Get(model.FieldSpaceName); name != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldSpaceName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	spaces, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get spaces")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Spaces retrieved successfully")

	response.WithJSON(w, http.StatusOK, "Spaces retrieved successfully", spaces)
}

// GetSpaceByID retrieves a space by its ID.
// @Summary Get a space by ID
// @Description Retrieve a space with its available dates.
// @Tags Space
// @Produce json
// @Param id path string true "Space ID"
// @Success 200 {object} response.Data[dto.SpaceResponse] "Space details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/spaces/{id} [get]
func (handler *Handler) GetSpaceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSpaceByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	space, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get space by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Space retrieved successfully", space)
}

// UpdateSpace updates an existing space by its ID.
// @Summary Update a space by ID
// @Description Update a space. Sending images replaces the stored ones, sending available_dates replaces the date set.
// @Tags Space
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Space ID"
// @Param space_name formData string false "Space name"
// @Param room_number formData string false "Room number"
// @Param cabin_number formData string false "Cabin number"
// @Param seater formData integer false "Seats"
// @Param price formData number false "Monthly price before GST"
// @Param availability formData string false "Available, Available Soon or Not Available"
// @Param available_dates formData string false "JSON array or comma separated YYYY-MM-DD dates"
// @Param images formData file false "Space images"
// @Success 200 {object} response.Message "Space updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/spaces/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateSpace(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateSpace")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := upload.ParseForm(r); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req := dto.UpdateSpaceRequest{
		RoomNumber:   r.FormValue("room_number"),
		CabinNumber:  r.FormValue("cabin_number"),
		SpaceName:    r.FormValue("space_name"),
		Availability: model.Availability(r.FormValue("availability")),
		Images:       upload.FormFiles(r, formImages),
	}

	if values, ok := upload.FormValues(r, formAvailableDates); ok {
		dates := formDates(values)
		req.AvailableDates = &dates
	}

	if seater := r.FormValue("seater"); seater != constant.Empty {
		value, err := shared.ConvertStringToInt(seater)
		if err != nil {
			response.WithError(w, failure.BadRequestFromString("seater must be a whole number"))

			return
		}

		req.Seater = &value
	}

	if price := r.FormValue("price"); price != constant.Empty {
		value, err := shared.ConvertStringToFloat(price)
		if err != nil {
			response.WithError(w, failure.BadRequestFromString("price must be a number"))

			return
		}

		req.Price = &value
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update space")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Space updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Space updated successfully")
}

// DeleteSpace deletes a space by its ID.
// @Summary Delete a space by ID
// @Description Delete a space, its dates and its images. Spaces with running bookings cannot be deleted.
// @Tags Space
// @Produce json
// @Param id path string true "Space ID"
// @Success 200 {object} response.Message "Space deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/spaces/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteSpace(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteSpace")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete space")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Space deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Space deleted successfully")
}

// formDates accepts one field holding a list, or the field repeated once per date.
func formDates(values []string) []string {
	if len(values) == 1 {
		return dto.ParseDates(values[0])
	}

	return values
}
