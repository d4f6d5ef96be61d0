package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cowork/config"
	"cowork/infras/otel"
	"cowork/infras/s3"
	"cowork/internal/domains/booking/model"
	"cowork/internal/domains/booking/model/dto"
	"cowork/internal/domains/booking/repository"
	kycModel "cowork/internal/domains/kyc/model"
	kycRepo "cowork/internal/domains/kyc/repository"
	notificationModel "cowork/internal/domains/notification/model"
	notification "cowork/internal/domains/notification/service"
	spaceModel "cowork/internal/domains/space/model"
	spaceDto "cowork/internal/domains/space/model/dto"
	spaceRepo "cowork/internal/domains/space/repository"
	userModel "cowork/internal/domains/user/model"
	userRepo "cowork/internal/domains/user/repository"
	"cowork/shared"
	"cowork/shared/cache"
	"cowork/shared/constant"
	gDto "cowork/shared/dto"
	"cowork/shared/failure"
	gRepo "cowork/shared/repository"
	"cowork/shared/timezone"
	"cowork/shared/upload"

	"github.com/rs/zerolog/log"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	UploadPayment(ctx context.Context, req dto.UploadPaymentRequest, id string) (dto.BookingResponse, error)
	Verify(ctx context.Context, req dto.VerifyBookingRequest, id string) (dto.BookingResponse, error)
	SubmitNotice(ctx context.Context, req dto.SubmitNoticeRequest, id string) (dto.BookingResponse, error)
	GetNotice(ctx context.Context, id string) (dto.NoticeResponse, error)
	GetMine(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	GetDetails(ctx context.Context, id string) (dto.BookingDetailsResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	GetPendingNotices(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	GetActiveNotices(ctx context.Context) (dto.GetBookingsResponse, error)
}

type serviceImpl struct {
	repo     repository.Booking
	spaces   spaceRepo.Space
	users    userRepo.User
	kycs     kycRepo.Kyc
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	s3       s3.S3
	notifier notification.Notifier
}

func New(
	repo repository.Booking,
	spaces spaceRepo.Space,
	users userRepo.User,
	kycs kycRepo.Kyc,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
	notifier notification.Notifier,
) Booking {
	return &serviceImpl{
		repo:     repo,
		spaces:   spaces,
		users:    users,
		kycs:     kycs,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		s3:       s3,
		notifier: notifier,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.UserFromContext(ctx)

	booking, err := req.ToModel(user)
	if err != nil {
		return res, failure.BadRequestFromString("dates must be formatted as YYYY-MM-DD") // nolint:wrapcheck
	}

	if booking.EndDate.Before(booking.StartDate) {
		return res, failure.BadRequestFromString("end_date cannot be before start_date") // nolint:wrapcheck
	}

	space, err := s.spaces.Get(ctx, shared.FilterByID(req.SpaceID, spaceModel.FieldID, spaceModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get space")

		return res, fmt.Errorf("failed to get space: %w", err)
	}

	if space.ID == constant.Empty {
		return res, failure.NotFound("space not found") // nolint:wrapcheck
	}

	if space.Availability == spaceModel.AvailabilityNotAvailable {
		return res, failure.Conflict("space is not available") // nolint:wrapcheck
	}

	if booking.NoticePeriodDays = s.cfg.Booking.DefaultNoticeDays; booking.NoticePeriodDays <= 0 {
		booking.NoticePeriodDays = model.DefaultNoticeDays
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	res.FromModel(booking, timezone.Now())

	return res, nil
}

func (s *serviceImpl) UploadPayment(ctx context.Context, req dto.UploadPaymentRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadPayment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := shared.UserFromContext(ctx)

	booking, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	if booking.UserID != userID {
		return res, failure.Forbidden("you can only upload payments for your own bookings") // nolint:wrapcheck
	}

	if booking.Status != model.StatusPending {
		return res, failure.Conflict(fmt.Sprintf("payment can only be uploaded for Pending bookings, booking is %s", booking.Status)) // nolint:wrapcheck
	}

	batch := upload.NewBatch(s.s3, model.EntityName)

	url, err := batch.Put(ctx, req.PaymentScreenshot)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload payment screenshot")

		return res, fmt.Errorf("failed to upload payment screenshot: %w", err)
	}

	now := timezone.Now()
	update := map[string]any{
		model.FieldPaymentScreenshot: url,
		constant.FieldModifiedAt:     now,
		constant.FieldModifiedBy:     userID,
	}

	if err = s.repo.Update(ctx, update, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		batch.Rollback(ctx)
		log.Error().Err(err).Msg("failed to save payment screenshot")

		return res, fmt.Errorf("failed to save payment screenshot: %w", err)
	}

	if booking.PaymentScreenshot != constant.Empty {
		go upload.Remove(context.WithoutCancel(ctx), s.s3, booking.PaymentScreenshot)
	}

	booking.PaymentScreenshot = url
	booking.ModifiedAt = now
	booking.ModifiedBy = userID

	user := s.user(ctx, booking.UserID)

	s.notifier.NotifyAdmin(ctx, notificationModel.Notification{
		Subject:  "Payment screenshot uploaded",
		Template: notificationModel.TemplatePaymentUploaded,
		Data: map[string]any{
			"Username":          user.Username,
			"Email":             user.Email,
			"BookingID":         booking.ID,
			"PaymentScreenshot": url,
		},
	})

	res.FromModel(booking, now)

	return res, nil
}

func (s *serviceImpl) Verify(ctx context.Context, req dto.VerifyBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Verify")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	admin, _ := shared.UserFromContext(ctx)

	status, ok := model.ParseStatus(req.Status)
	if !ok || (status != model.StatusConfirm && status != model.StatusRejected) {
		return res, failure.BadRequestFromString("status must be either 'Confirm' or 'Rejected'") // nolint:wrapcheck
	}

	booking, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	if !booking.Status.CanVerify() {
		return res, failure.Conflict(fmt.Sprintf("booking is already %s", booking.Status)) // nolint:wrapcheck
	}

	now := timezone.Now()
	update := map[string]any{
		model.FieldStatus:        status,
		model.FieldRemarks:       req.Remarks,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: admin,
	}

	filter := shared.FilterByIDInStatus(id, model.FieldID, model.FieldStatus, model.StatusPending, model.TableName)

	if status == model.StatusConfirm {
		err = s.repo.UpdateWithSpace(ctx, update, filter, booking.SpaceID, spaceModel.AvailabilityNotAvailable)
	} else {
		err = s.repo.UpdateStrict(ctx, update, filter)
	}

	if errors.Is(err, gRepo.ErrNoRowsAffected) {
		return res, failure.Conflict("booking has already been verified") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to verify booking")

		return res, fmt.Errorf("failed to verify booking: %w", err)
	}

	booking.Status = status
	booking.Remarks = req.Remarks
	booking.ModifiedAt = now
	booking.ModifiedBy = admin

	if status == model.StatusConfirm {
		s.invalidateSpaces(ctx, booking.SpaceID)
	}

	user := s.user(ctx, booking.UserID)
	space, _ := s.spaces.Get(ctx, shared.FilterByID(booking.SpaceID, spaceModel.FieldID, spaceModel.TableName))

	s.notifier.Notify(ctx, notificationModel.Notification{
		To:       user.Email,
		Subject:  "Booking " + strings.ToLower(string(status)),
		Template: notificationModel.TemplateBookingVerified,
		Data: map[string]any{
			"Username":  user.Username,
			"SpaceName": space.SpaceName,
			"StartDate": booking.StartDate.Format(constant.DayFormat),
			"EndDate":   booking.EndDate.Format(constant.DayFormat),
			"Status":    status,
			"Remarks":   req.Remarks,
		},
	})

	res.FromModel(booking, now)

	return res, nil
}

func (s *serviceImpl) SubmitNotice(ctx context.Context, req dto.SubmitNoticeRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SubmitNotice")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, role := shared.UserFromContext(ctx)

	booking, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	if booking.UserID != userID && !shared.IsAdmin(role) {
		return res, failure.Forbidden("you can only give notice on your own bookings") // nolint:wrapcheck
	}

	if booking.Status != model.StatusConfirm {
		return res, failure.Conflict(fmt.Sprintf("notice can only be given on confirmed bookings, booking is %s", booking.Status)) // nolint:wrapcheck
	}

	submitted := timezone.Today()
	if req.NoticeSubmittedDate != constant.Empty {
		if submitted, err = timezone.Parse(constant.DayFormat, req.NoticeSubmittedDate); err != nil {
			return res, failure.BadRequestFromString("notice_submitted_date must be formatted as YYYY-MM-DD") // nolint:wrapcheck
		}
	}

	days := req.NoticePeriodDays
	if days == 0 {
		days = s.cfg.Booking.DefaultNoticeDays
	}

	if days < model.MinNoticeDays || days > model.MaxNoticeDays {
		days = model.DefaultNoticeDays
	}

	batch := upload.NewBatch(s.s3, model.EntityName)

	pdf, err := batch.Put(ctx, req.NoticePDF)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload notice pdf")

		return res, fmt.Errorf("failed to upload notice pdf: %w", err)
	}

	now := timezone.Now()
	update := map[string]any{
		model.FieldStatus:              model.StatusNoticeGiven,
		model.FieldNoticeGiven:         true,
		model.FieldNoticeSubmittedDate: submitted,
		model.FieldNoticePeriodDays:    days,
		constant.FieldModifiedAt:       now,
		constant.FieldModifiedBy:       userID,
	}

	if pdf != constant.Empty {
		update[model.FieldNoticePDF] = pdf
	}

	filter := shared.FilterByIDInStatus(id, model.FieldID, model.FieldStatus, model.StatusConfirm, model.TableName)

	err = s.repo.UpdateWithSpace(ctx, update, filter, booking.SpaceID, spaceModel.AvailabilityAvailableSoon)
	if errors.Is(err, gRepo.ErrNoRowsAffected) {
		batch.Rollback(ctx)

		return res, failure.Conflict("notice has already been given on this booking") // nolint:wrapcheck
	}

	if err != nil {
		batch.Rollback(ctx)
		log.Error().Err(err).Msg("failed to submit notice")

		return res, fmt.Errorf("failed to submit notice: %w", err)
	}

	booking.Status = model.StatusNoticeGiven
	booking.NoticeGiven = true
	booking.NoticeSubmittedDate = &submitted
	booking.NoticePeriodDays = days
	booking.ModifiedAt = now
	booking.ModifiedBy = userID

	if pdf != constant.Empty {
		booking.NoticePDF = pdf
	}

	s.invalidateSpaces(ctx, booking.SpaceID)

	notice, _ := booking.Notice()
	user := s.user(ctx, booking.UserID)
	space, _ := s.spaces.Get(ctx, shared.FilterByID(booking.SpaceID, spaceModel.FieldID, spaceModel.TableName))

	s.notifier.NotifyAdmin(ctx, notificationModel.Notification{
		Subject:  "Notice submitted",
		Template: notificationModel.TemplateNoticeSubmitted,
		Data: map[string]any{
			"Username":         user.Username,
			"Email":            user.Email,
			"BookingID":        booking.ID,
			"SpaceName":        space.SpaceName,
			"NoticePeriodDays": days,
			"SubmittedDate":    submitted.Format(constant.DayFormat),
			"ExpireDate":       notice.ExpireDate().Format(constant.DayFormat),
		},
	})

	res.FromModel(booking, now)

	return res, nil
}

func (s *serviceImpl) GetNotice(ctx context.Context, id string) (res dto.NoticeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetNotice")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.accessible(ctx, id)
	if err != nil {
		return res, err
	}

	var full dto.BookingResponse

	full.FromModel(booking, timezone.Now())

	if full.Notice == nil {
		return res, failure.NotFound("no notice has been given for this booking") // nolint:wrapcheck
	}

	return *full.Notice, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := shared.UserFromContext(ctx)

	return s.list(ctx, req, shared.FilterByField(model.FieldUserID, userID, model.TableName))
}

func (s *serviceImpl) GetDetails(ctx context.Context, id string) (res dto.BookingDetailsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetDetails")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.accessible(ctx, id)
	if err != nil {
		return res, err
	}

	res.Booking.FromModel(booking, timezone.Now())

	space, err := s.spaces.Get(ctx, shared.FilterByID(booking.SpaceID, spaceModel.FieldID, spaceModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get space")

		return res, fmt.Errorf("failed to get space: %w", err)
	}

	if space.ID != constant.Empty {
		res.Space = &spaceDto.SpaceResponse{}
		res.Space.FromModel(space)
	}

	if user := s.user(ctx, booking.UserID); user.ID != constant.Empty {
		res.User = &dto.UserSummary{ID: user.ID, Username: user.Username, Email: user.Email, Mobile: user.Mobile}
	}

	kyc, err := s.kycs.Get(ctx, shared.FilterByField(kycModel.FieldUserID, booking.UserID, kycModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get kyc")

		return res, fmt.Errorf("failed to get kyc: %w", err)
	}

	if kyc.ID != constant.Empty {
		res.Kyc = &dto.KycSummary{ID: kyc.ID, Type: string(kyc.Type), Name: kyc.DisplayName(), Status: string(kyc.Status)}
	}

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.list(ctx, req, filter)
}

// GetPendingNotices lists occupants that have not given notice yet.
func (s *serviceImpl) GetPendingNotices(ctx context.Context, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetPendingNotices")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusConfirm, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldNoticeGiven, Value: false, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	return s.list(ctx, req, filter)
}

// GetActiveNotices lists bookings whose notice period is still running.
func (s *serviceImpl) GetActiveNotices(ctx context.Context) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetActiveNotices")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bookings, err := s.repo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByField(model.FieldStatus, model.StatusNoticeGiven, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings in notice")

		return res, fmt.Errorf("failed to get bookings in notice: %w", err)
	}

	now := timezone.Now()
	active := make([]model.Booking, 0, len(bookings))

	for _, booking := range bookings {
		if notice, ok := booking.Notice(); ok && notice.InNotice(now) {
			active = append(active, booking)
		}
	}

	res.FromModels(active, len(active), len(active), now)

	return res, nil
}

func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(bookings, total, req.Limit, timezone.Now())

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

// accessible returns the booking when the caller owns it or is an admin.
func (s *serviceImpl) accessible(ctx context.Context, id string) (model.Booking, error) {
	userID, role := shared.UserFromContext(ctx)

	booking, err := s.get(ctx, id)
	if err != nil {
		return booking, err
	}

	if booking.UserID != userID && !shared.IsAdmin(role) {
		return model.Booking{}, failure.Forbidden("you do not have access to this booking") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) user(ctx context.Context, id string) userModel.User {
	user, err := s.users.Get(ctx, shared.FilterByID(id, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("user", id).Msg("failed to get booking owner")
	}

	return user
}

func (s *serviceImpl) invalidateSpaces(ctx context.Context, spaceID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(spaceModel.CacheGet, spaceID)); err != nil {
			log.Error().Err(err).Msg("failed to delete space cache")
		}

		shared.InvalidateCaches(c, s.cache, spaceModel.CacheGetAll)
	}()
}
