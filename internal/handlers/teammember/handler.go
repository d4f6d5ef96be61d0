package teammember

import (
	"net/http"

	"cowork/infras/otel"
	"cowork/internal/domains/teammember/model"
	"cowork/internal/domains/teammember/model/dto"
	"cowork/internal/domains/teammember/service"
	"cowork/shared/constant"
	gDto "cowork/shared/dto"
	"cowork/shared/upload"
	"cowork/shared/validator"
	"cowork/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.TeamMember
	otel    otel.Otel
}

func New(service service.TeamMember, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/team-members", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.AddTeamMember)
		routerGroup.Get("/", handler.GetTeamMembers)
		routerGroup.Delete("/{id}", handler.DeleteTeamMember)
	})
}

// AddTeamMember adds a person to one of the caller's bookings.
// @Summary Add a team member
// @Description Add a team member to a booking owned by the caller, bounded by the booked seats.
// @Tags TeamMember
// @Accept multipart/form-data
// @Produce json
// @Param booking_id formData string true "Booking ID"
// @Param full_name formData string true "Full name"
// @Param email formData string true "Email"
// @Param phone formData string false "Phone"
// @Param role formData string false "Role"
// @Param desk_number formData string false "Desk number"
// @Param photo formData file false "Photo"
// @Success 201 {object} response.Data[dto.TeamMemberResponse] "Team member added successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/team-members [post]
// @Security BearerAuth
func (handler *Handler) AddTeamMember(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddTeamMember")
	defer scope.End()

	if err := upload.ParseForm(r); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req := dto.AddTeamMemberRequest{
		BookingID:  r.FormValue(model.FieldBookingID),
		FullName:   r.FormValue(model.FieldFullName),
		Email:      r.FormValue(model.FieldEmail),
		Phone:      r.FormValue(model.FieldPhone),
		Role:       model.Role(r.FormValue(model.FieldRole)),
		DeskNumber: r.FormValue(model.FieldDeskNumber),
		Photo:      upload.FormFile(r, model.FieldPhoto),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Add(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add team member")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, "Team member added successfully", res)
}

// GetTeamMembers lists the team across the caller's bookings.
// @Summary Get team members
// @Tags TeamMember
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param booking_id query string false "Only members of this booking"
// @Success 200 {object} response.Data[dto.GetTeamMembersResponse] "List of team members"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/team-members [get]
// @Security BearerAuth
func (handler *Handler) GetTeamMembers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTeamMembers")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.service.GetAll(ctx, queryParams, r.URL.Query().Get(model.FieldBookingID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get team members")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Team members retrieved successfully", res)
}

// DeleteTeamMember removes a team member.
// @Summary Delete a team member
// @Tags TeamMember
// @Produce json
// @Param id path string true "Team member ID"
// @Success 200 {object} response.Message "Team member deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/team-members/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTeamMember(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTeamMember")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete team member")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Team member deleted successfully")
}
