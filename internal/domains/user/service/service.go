package service

import (
	"context"
	"fmt"
	"net/http"

	"cowork/config"
	"cowork/infras/otel"
	bookingModel "cowork/internal/domains/booking/model"
	bookingRepo "cowork/internal/domains/booking/repository"
	kycModel "cowork/internal/domains/kyc/model"
	kycRepo "cowork/internal/domains/kyc/repository"
	teamModel "cowork/internal/domains/teammember/model"
	teamRepo "cowork/internal/domains/teammember/repository"
	"cowork/internal/domains/user/model"
	"cowork/internal/domains/user/model/dto"
	"cowork/internal/domains/user/repository"
	"cowork/shared"
	"cowork/shared/cache"
	"cowork/shared/constant"
	gDto "cowork/shared/dto"
	"cowork/shared/failure"
	"cowork/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetUser    = "user:get"
	cacheGetAllUser = "user:gets"
	cacheCountUser  = "user:count"
)

type User interface {
	GetProfile(ctx context.Context) (dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (dto.UserResponse, error)
	GetMembership(ctx context.Context) (dto.MembershipResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsersResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
}

type serviceImpl struct {
	repo     repository.User
	bookings bookingRepo.Booking
	kycs     kycRepo.Kyc
	members  teamRepo.TeamMember
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(
	repo repository.User,
	bookings bookingRepo.Booking,
	kycs kycRepo.Kyc,
	members teamRepo.TeamMember,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) User {
	return &serviceImpl{
		repo:     repo,
		bookings: bookings,
		kycs:     kycs,
		members:  members,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

// GetProfile returns the caller with their KYC standing and the size of their team.
func (s *serviceImpl) GetProfile(ctx context.Context) (res dto.ProfileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetProfile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := shared.UserFromContext(ctx)

	user, err := s.get(ctx, userID)
	if err != nil {
		return res, err
	}

	res.User.FromModel(user)

	kyc, err := s.kycs.Get(ctx, shared.FilterByField(kycModel.FieldUserID, userID, kycModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get kyc")

		return res, fmt.Errorf("failed to get kyc: %w", err)
	}

	res.WithKyc(kyc)

	bookings, err := s.bookings.GetAll(ctx, gDto.QueryParams{}, holding(userID), bookingModel.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	if len(bookings) == 0 {
		return res, nil
	}

	ids := make([]string, len(bookings))
	for i, booking := range bookings {
		ids[i] = booking.ID
	}

	res.TeamSize, err = s.members.Count(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: teamModel.FieldBookingID, Value: ids, Operator: gDto.FilterOperatorIn, Table: teamModel.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to count team members")

		return res, fmt.Errorf("failed to count team members: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateProfile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateProfileRequest{}) {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	userID, _ := shared.UserFromContext(ctx)

	if _, err = s.get(ctx, userID); err != nil {
		return res, err
	}

	if err = s.unique(ctx, userID, model.FieldEmail, req.Email, "email is already in use"); err != nil {
		return res, err
	}

	if err = s.unique(ctx, userID, model.FieldUsername, req.Username, "username is already taken"); err != nil {
		return res, err
	}

	filter := shared.FilterByID(userID, model.FieldID, model.TableName)

	if err = s.repo.Update(ctx, shared.TransformFields(req, userID), filter); err != nil {
		log.Error().Err(err).Msg("failed to update profile")

		if conflict := failure.FromUniqueViolation(err, "email or username is already in use"); failure.IsCode(conflict, http.StatusConflict) {
			return res, conflict
		}

		return res, fmt.Errorf("failed to update profile: %w", err)
	}

	s.invalidate(ctx, userID)

	user, err := s.get(ctx, userID)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	return res, nil
}

// GetMembership derives the caller's membership from their latest occupied booking.
func (s *serviceImpl) GetMembership(ctx context.Context) (res dto.MembershipResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMembership")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := shared.UserFromContext(ctx)

	latest := gDto.QueryParams{Limit: 1, SortBy: bookingModel.FieldStartDate, SortDir: gDto.SortDirDesc}

	bookings, err := s.bookings.GetAll(ctx, latest, holding(userID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	if len(bookings) == 0 {
		res.Status = dto.MembershipInactive

		return res, nil
	}

	booking := bookings[0]
	validUntil := booking.EndDate

	if notice, ok := booking.Notice(); ok && notice.ExpireDate().Before(validUntil) {
		validUntil = notice.ExpireDate()
	}

	now := timezone.Now()

	res.BookingID = booking.ID
	res.SpaceID = booking.SpaceID
	res.ValidFrom = booking.StartDate.Format(constant.DayFormat)
	res.ValidUntil = validUntil.Format(constant.DayFormat)
	res.DaysRemaining = bookingModel.DaysUntil(validUntil, now)
	res.NoticeGiven = booking.NoticeGiven
	res.Status = dto.MembershipExpired

	if now.Before(validUntil) {
		res.Status = dto.MembershipActive
	}

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllUser, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for users")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, fmt.Errorf("failed to get users: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save users to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountUser, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for user count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetUser, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for user")

		return res, nil
	}

	user, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.User, error) {
	user, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return user, failure.NotFound("user not found") // nolint:wrapcheck
	}

	return user, nil
}

// unique fails with a conflict when another user already holds value in field.
func (s *serviceImpl) unique(ctx context.Context, userID, field, value, message string) error {
	if value == constant.Empty {
		return nil
	}

	taken, err := s.repo.Exist(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: field, Value: value, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldID, Value: userID, Operator: gDto.FilterOperatorNotEq, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Str("field", field).Msg("failed to check user uniqueness")

		return fmt.Errorf("failed to check %s: %w", field, err)
	}

	if taken {
		return failure.Conflict(message) // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetUser, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete user from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllUser)
		shared.InvalidateCaches(c, s.cache, cacheCountUser)
	}()
}

func holding(userID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldUserID, Value: userID, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
			gDto.Filter{Field: bookingModel.FieldStatus, Value: bookingModel.HoldingStatuses, Operator: gDto.FilterOperatorIn, Table: bookingModel.TableName},
		},
	}
}
