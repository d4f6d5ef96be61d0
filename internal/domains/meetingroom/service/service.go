package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cowork/config"
	"cowork/infras/otel"
	"cowork/infras/s3"
	kycModel "cowork/internal/domains/kyc/model"
	kycRepo "cowork/internal/domains/kyc/repository"
	"cowork/internal/domains/meetingroom/model"
	"cowork/internal/domains/meetingroom/model/dto"
	"cowork/internal/domains/meetingroom/repository"
	"cowork/internal/domains/meetingroom/slot"
	notificationModel "cowork/internal/domains/notification/model"
	"cowork/internal/domains/notification/service"
	userModel "cowork/internal/domains/user/model"
	userRepo "cowork/internal/domains/user/repository"
	"cowork/shared"
	"cowork/shared/cache"
	"cowork/shared/constant"
	gDto "cowork/shared/dto"
	"cowork/shared/failure"
	"cowork/shared/pricing"
	gRepo "cowork/shared/repository"
	"cowork/shared/timezone"
	"cowork/shared/upload"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllMeetingRoom = "meeting_room:gets"

	noteHourly   = "GST will be added to the hourly rate"
	noteWholeDay = "GST is included in the day rate"
)

type MeetingRoom interface {
	Catalog(ctx context.Context) dto.CatalogResponse
	List(ctx context.Context) (dto.GetMeetingRoomsResponse, error)
	Create(ctx context.Context, req dto.CreateMeetingRoomRequest) error
	Update(ctx context.Context, req dto.UpdateMeetingRoomRequest, id string) error
	Pricing(ctx context.Context, req dto.PricingRequest) (dto.PricingResponse, error)
	AvailableSlots(ctx context.Context, req dto.AvailableSlotsRequest) (dto.AvailableSlotsResponse, error)
	AvailableDays(ctx context.Context, req dto.AvailableDaysRequest) (dto.AvailableDaysResponse, error)
	Book(ctx context.Context, req dto.BookRoomRequest) (dto.BookRoomResponse, error)
	Verify(ctx context.Context, req dto.VerifyRoomBookingRequest, id string) (dto.RoomBookingResponse, error)
	GetMine(ctx context.Context, req gDto.QueryParams) (dto.GetRoomBookingsResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomBookingsResponse, error)
}

type serviceImpl struct {
	rooms    repository.MeetingRoom
	bookings repository.RoomBooking
	kycs     kycRepo.Kyc
	users    userRepo.User
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	s3       s3.S3
	notifier service.Notifier
}

func New(
	rooms repository.MeetingRoom,
	bookings repository.RoomBooking,
	kycs kycRepo.Kyc,
	users userRepo.User,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
	notifier service.Notifier,
) MeetingRoom {
	return &serviceImpl{
		rooms:    rooms,
		bookings: bookings,
		kycs:     kycs,
		users:    users,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		s3:       s3,
		notifier: notifier,
	}
}

func (s *serviceImpl) Catalog(_ context.Context) dto.CatalogResponse {
	return dto.CatalogResponse{
		RoomTypes:    model.RoomTypes,
		BookingTypes: model.BookingTypes,
		MemberTypes:  model.MemberTypes,
		Amenities:    model.Amenities,
	}
}

func (s *serviceImpl) List(ctx context.Context) (res dto.GetMeetingRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.cache.Get(ctx, cacheGetAllMeetingRoom, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheGetAllMeetingRoom).Msg("cache hit for meeting rooms")

		return res, nil
	}

	rooms, err := s.rooms.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldHourlyRate, SortDir: gDto.SortDirAsc}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get meeting rooms")

		return res, fmt.Errorf("failed to get meeting rooms: %w", err)
	}

	res.FromModels(rooms)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheGetAllMeetingRoom, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save meeting rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateMeetingRoomRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	room := req.ToModel(user)
	if err = validateHours(room.OpenTime, room.CloseTime); err != nil {
		return err
	}

	if err = s.rooms.Insert(ctx, room); err != nil {
		log.Error().Err(err).Msg("failed to create meeting room")

		return failure.FromUniqueViolation(fmt.Errorf("failed to create meeting room: %w", err), "capacity type already exists")
	}

	go func() {
		if err := s.cache.Delete(context.WithoutCancel(ctx), cacheGetAllMeetingRoom); err != nil {
			log.Error().Err(err).Msg("failed to delete meeting rooms cache")
		}
	}()

	return nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateMeetingRoomRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableMeetingRoom)

	room, err := s.rooms.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get meeting room")

		return fmt.Errorf("failed to get meeting room: %w", err)
	}

	if room.ID == constant.Empty {
		return failure.NotFound("meeting room not found") // nolint:wrapcheck
	}

	openTime, closeTime := room.OpenTime, room.CloseTime
	if req.OpenTime != constant.Empty {
		openTime = req.OpenTime
	}

	if req.CloseTime != constant.Empty {
		closeTime = req.CloseTime
	}

	if err = validateHours(openTime, closeTime); err != nil {
		return err
	}

	if err = s.rooms.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update meeting room")

		return fmt.Errorf("failed to update meeting room: %w", err)
	}

	go func() {
		if err := s.cache.Delete(context.WithoutCancel(ctx), cacheGetAllMeetingRoom); err != nil {
			log.Error().Err(err).Msg("failed to delete meeting rooms cache")
		}
	}()

	return nil
}

func (s *serviceImpl) Pricing(ctx context.Context, req dto.PricingRequest) (res dto.PricingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Pricing")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.roomByCapacity(ctx, req.CapacityType)
	if err != nil {
		return res, err
	}

	wholeDay := req.BookingType == model.BookingTypeWholeDay
	member := req.MemberType.IsMember()
	price := room.Rates().Rate(wholeDay, member)

	res = dto.PricingResponse{
		Price:        price,
		OpenTime:     room.OpenTime,
		CloseTime:    closingFor(room, member),
		BookingType:  req.BookingType,
		MemberType:   req.MemberType,
		CapacityType: room.CapacityType,
		IncludesGST:  wholeDay,
		Note:         noteHourly,
	}

	if wholeDay {
		res.Note = noteWholeDay
	}

	if member && !wholeDay {
		half := pricing.Round2(price / 2)
		res.PricePerThirtyMin = &half
	}

	return res, nil
}

func (s *serviceImpl) AvailableSlots(ctx context.Context, req dto.AvailableSlotsRequest) (res dto.AvailableSlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AvailableSlots")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	memberType := req.MemberType
	if memberType == constant.Empty {
		memberType = model.MemberTypeNonMember
	}

	room, err := s.roomByCapacity(ctx, req.CapacityType)
	if err != nil {
		return res, err
	}

	member := memberType.IsMember()
	minutes := slotMinutes(member)
	closeTime := closingFor(room, member)

	candidates, err := slot.Generate(room.OpenTime, closeTime, minutes)
	if err != nil {
		log.Error().Err(err).Str("room", room.ID).Msg("invalid opening hours")

		return res, fmt.Errorf("failed to generate slots: %w", err)
	}

	bookings, err := s.bookings.GetAll(ctx, gDto.QueryParams{}, repository.ActiveOn(room.ID, req.Date))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room bookings")

		return res, fmt.Errorf("failed to get room bookings: %w", err)
	}

	available, booked := slot.Partition(candidates, reservations(bookings))

	return dto.AvailableSlotsResponse{
		Date:           req.Date,
		CapacityType:   room.CapacityType,
		MemberType:     memberType,
		OpenTime:       room.OpenTime,
		CloseTime:      closeTime,
		SlotDuration:   fmt.Sprintf("%d Minutes", minutes),
		AvailableSlots: available,
		BookedSlots:    booked,
	}, nil
}

func (s *serviceImpl) AvailableDays(ctx context.Context, req dto.AvailableDaysRequest) (res dto.AvailableDaysResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AvailableDays")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.roomByCapacity(ctx, req.CapacityType)
	if err != nil {
		return res, err
	}

	first := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, timezone.GetLocation())
	last := first.AddDate(0, 1, -1)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldMeetingRoomID, Value: room.ID, Operator: gDto.FilterOperatorEq, Table: model.TableRoomBooking},
			gDto.Filter{Field: model.FieldBookingDate, Value: first.Format(constant.DayFormat), Operator: gDto.FilterOperatorGreaterEq, Table: model.TableRoomBooking, ArgName: "from_date"},
			gDto.Filter{Field: model.FieldBookingDate, Value: last.Format(constant.DayFormat), Operator: gDto.FilterOperatorLessEq, Table: model.TableRoomBooking, ArgName: "to_date"},
			gDto.Filter{Field: model.FieldStatus, Value: model.ActiveStatuses, Operator: gDto.FilterOperatorIn, Table: model.TableRoomBooking},
		},
	}

	bookings, err := s.bookings.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room bookings")

		return res, fmt.Errorf("failed to get room bookings: %w", err)
	}

	bookedDates := make(map[string]struct{}, len(bookings))
	for _, booking := range bookings {
		bookedDates[booking.BookingDate.Format(constant.DayFormat)] = struct{}{}
	}

	free, booked := slot.Month(first.Year(), first.Month(), bookedDates)

	return dto.AvailableDaysResponse{
		RoomID:       room.ID,
		CapacityType: room.CapacityType,
		Year:         req.Year,
		Month:        req.Month,
		FreeDates:    free,
		BookedDates:  booked,
	}, nil
}

func (s *serviceImpl) Book(ctx context.Context, req dto.BookRoomRequest) (res dto.BookRoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Book")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := shared.UserFromContext(ctx)

	user, err := s.users.Get(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.Unauthorized("user not found") // nolint:wrapcheck
	}

	room, err := s.roomByCapacity(ctx, req.CapacityType)
	if err != nil {
		return res, err
	}

	bookingDate, err := timezone.Parse(constant.DayFormat, req.BookingDate)
	if err != nil {
		return res, failure.BadRequestFromString("booking_date must be formatted as YYYY-MM-DD") // nolint:wrapcheck
	}

	if bookingDate.Before(timezone.Today()) {
		return res, failure.BadRequestFromString("booking date cannot be in the past") // nolint:wrapcheck
	}

	member := req.MemberType.IsMember()
	if err = s.checkMemberType(ctx, user.ID, req); err != nil {
		return res, err
	}

	wholeDay := req.BookingType == model.BookingTypeWholeDay
	if !wholeDay {
		if req.TimeSlots, err = normalizeSlots(req.TimeSlots, room.OpenTime, closingFor(room, member), req.Duration.Minutes()); err != nil {
			return res, err
		}
	}

	total := pricing.RoomTotal(room.Rates().Rate(wholeDay, member), wholeDay, len(req.TimeSlots), req.Duration.Minutes())

	status := model.StatusPending
	if member {
		status = model.StatusConfirmed
	}

	booking := req.ToModel(room, dto.Booker{ID: user.ID, Username: user.Username, Email: user.Email, Mobile: user.Mobile}, total, status)

	batch := upload.NewBatch(s.s3, model.EntityRoomBooking)

	if booking.IDProof, err = batch.Put(ctx, req.IDProof); err == nil {
		if booking.PaymentScreenshot, err = batch.Put(ctx, req.PaymentScreenshot); err == nil {
			booking.CertificateOfIncorporation, err = batch.Put(ctx, req.COI)
		}
	}

	if err != nil {
		batch.Rollback(ctx)
		log.Error().Err(err).Msg("failed to upload booking documents")

		return res, fmt.Errorf("failed to upload booking documents: %w", err)
	}

	conflicts, err := s.bookings.InsertExclusive(ctx, booking, func(existing []model.RoomBooking) []string {
		return slot.Conflicts(booking.TimeSlots, wholeDay, reservations(existing))
	})
	if err != nil {
		batch.Rollback(ctx)

		switch {
		case errors.Is(err, repository.ErrSlotConflict):
			return res, failure.Conflict("The following time slots are already booked: " + strings.Join(conflicts, ", ")) // nolint:wrapcheck
		case errors.Is(err, repository.ErrRoomNotFound):
			return res, failure.NotFound("meeting room not found") // nolint:wrapcheck
		default:
			log.Error().Err(err).Msg("failed to book meeting room")

			return res, fmt.Errorf("failed to book meeting room: %w", err)
		}
	}

	s.notifier.NotifyAdmin(ctx, notificationModel.Notification{
		Subject:  "New meeting room booking",
		Template: notificationModel.TemplateRoomBookingCreated,
		Data: map[string]any{
			"Username":     booking.Username,
			"Email":        booking.Email,
			"Mobile":       booking.Mobile,
			"CapacityType": room.CapacityType,
			"BookingDate":  req.BookingDate,
			"BookingType":  booking.BookingType,
			"MemberType":   booking.MemberType,
			"TimeSlots":    []string(booking.TimeSlots),
			"TotalAmount":  booking.TotalAmount,
			"Status":       booking.Status,
		},
	})

	res.Booking.FromModel(booking)
	res.RoomName = room.Name
	res.RoomType = room.CapacityType
	res.TotalAmount = booking.TotalAmount
	res.Status = booking.Status

	return res, nil
}

func (s *serviceImpl) Verify(ctx context.Context, req dto.VerifyRoomBookingRequest, id string) (res dto.RoomBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Verify")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	status, ok := model.ParseStatus(req.Status)
	if !ok || status == model.StatusPending {
		return res, failure.BadRequestFromString("status must be either 'Confirmed' or 'Rejected'") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableRoomBooking)

	booking, err := s.bookings.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room booking")

		return res, fmt.Errorf("failed to get room booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if !booking.Status.CanTransition(status) {
		return res, failure.Conflict(fmt.Sprintf("booking is already %s", booking.Status)) // nolint:wrapcheck
	}

	now := timezone.Now()
	update := map[string]any{
		model.FieldStatus:        status,
		model.FieldRemarks:       req.Remarks,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	err = s.bookings.UpdateStrict(ctx, update, shared.FilterByIDInStatus(id, model.FieldID, model.FieldStatus, model.StatusPending, model.TableRoomBooking))
	if errors.Is(err, gRepo.ErrNoRowsAffected) {
		return res, failure.Conflict("booking has already been verified") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to verify room booking")

		return res, fmt.Errorf("failed to verify room booking: %w", err)
	}

	booking.Status = status
	booking.Remarks = req.Remarks
	booking.ModifiedAt = now
	booking.ModifiedBy = user

	capacityType := constant.Empty
	if room, err := s.rooms.Get(ctx, shared.FilterByID(booking.MeetingRoomID, model.FieldID, model.TableMeetingRoom)); err == nil {
		capacityType = room.CapacityType
	}

	s.notifier.Notify(ctx, notificationModel.Notification{
		To:       booking.Email,
		Subject:  "Meeting room booking " + strings.ToLower(string(status)),
		Template: notificationModel.TemplateRoomBookingVerified,
		Data: map[string]any{
			"Username":     booking.Username,
			"CapacityType": capacityType,
			"BookingDate":  booking.BookingDate.Format(constant.DayFormat),
			"Status":       status,
			"Remarks":      req.Remarks,
		},
	})

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams) (res dto.GetRoomBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := shared.UserFromContext(ctx)

	return s.list(ctx, req, shared.FilterByField(model.FieldUserID, userID, model.TableRoomBooking))
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.list(ctx, req, filter)
}

func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomBookingsResponse, err error) {
	total, err := s.bookings.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count room bookings")

		return res, fmt.Errorf("failed to count room bookings: %w", err)
	}

	bookings, err := s.bookings.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room bookings")

		return res, fmt.Errorf("failed to get room bookings: %w", err)
	}

	res.FromModels(bookings, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) roomByCapacity(ctx context.Context, capacityType string) (model.MeetingRoom, error) {
	room, err := s.rooms.Get(ctx, shared.FilterByField(model.FieldCapacityType, capacityType, model.TableMeetingRoom))
	if err != nil {
		log.Error().Err(err).Msg("failed to get meeting room")

		return room, fmt.Errorf("failed to get meeting room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.NotFound("meeting room not found") // nolint:wrapcheck
	}

	return room, nil
}

// checkMemberType trusts the Member type only for users with an approved KYC
// and enforces the documents and slot length required from everyone else.
func (s *serviceImpl) checkMemberType(ctx context.Context, userID string, req dto.BookRoomRequest) error {
	if req.MemberType.IsMember() {
		kyc, err := s.kycs.Get(ctx, shared.FilterByField(kycModel.FieldUserID, userID, kycModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get kyc")

			return fmt.Errorf("failed to get kyc: %w", err)
		}

		if kyc.Status != kycModel.StatusApproved {
			return failure.Forbidden("member bookings require an approved KYC") // nolint:wrapcheck
		}

		return nil
	}

	if req.BookingType == model.BookingTypeHourly && req.Duration != model.DurationHour {
		return failure.BadRequestFromString("non-members can only book 1 Hour slots") // nolint:wrapcheck
	}

	if req.IDProof == nil {
		return failure.BadRequestFromString("ID proof is required for non-members") // nolint:wrapcheck
	}

	if req.PaymentScreenshot == nil {
		return failure.BadRequestFromString("payment screenshot is required for non-members") // nolint:wrapcheck
	}

	return nil
}

// normalizeSlots rewrites the requested slots in canonical form and rejects
// anything that is not on the room's slot grid or is requested twice.
func normalizeSlots(values []string, openTime, closeTime string, minutes int) ([]string, error) {
	if len(values) == 0 {
		return nil, failure.BadRequestFromString("at least one time slot is required for hourly bookings") // nolint:wrapcheck
	}

	seen := make(map[string]struct{}, len(values))
	slots := make([]string, 0, len(values))

	for _, value := range values {
		if !slot.OnGrid(value, openTime, closeTime, minutes) {
			return nil, failure.BadRequestFromString(fmt.Sprintf("invalid time slot: %s", value)) // nolint:wrapcheck
		}

		interval, _ := slot.Parse(value)
		canonical := interval.String()

		if _, ok := seen[canonical]; ok {
			return nil, failure.BadRequestFromString(fmt.Sprintf("duplicate time slot: %s", value)) // nolint:wrapcheck
		}

		seen[canonical] = struct{}{}
		slots = append(slots, canonical)
	}

	return slots, nil
}

func reservations(bookings []model.RoomBooking) []slot.Reservation {
	res := make([]slot.Reservation, 0, len(bookings))
	for _, booking := range bookings {
		res = append(res, slot.Reservation{WholeDay: booking.IsWholeDay(), Slots: booking.TimeSlots})
	}

	return res
}

func slotMinutes(member bool) int {
	if member {
		return slot.MemberMinutes
	}

	return slot.NonMemberMinutes
}

// closingFor trims the default closing time for one hour slots.
func closingFor(room model.MeetingRoom, member bool) string {
	if member {
		return room.CloseTime
	}

	closing, err := slot.To24Hour(room.CloseTime)
	if err != nil {
		return room.CloseTime
	}

	if defaultClose, _ := slot.To24Hour(slot.DefaultClose); closing == defaultClose {
		return slot.NonMemberClose
	}

	return room.CloseTime
}

func validateHours(openTime, closeTime string) error {
	slots, err := slot.Generate(openTime, closeTime, slot.MemberMinutes)
	if err != nil || len(slots) == 0 {
		return failure.BadRequestFromString("open_time and close_time must describe a valid opening window") // nolint:wrapcheck
	}

	return nil
}
