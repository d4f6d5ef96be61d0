package service

import (
	"context"
	"fmt"

	"cowork/config"
	"cowork/infras/otel"
	"cowork/infras/s3"
	bookingModel "cowork/internal/domains/booking/model"
	bookingRepo "cowork/internal/domains/booking/repository"
	"cowork/internal/domains/space/model"
	"cowork/internal/domains/space/model/dto"
	"cowork/internal/domains/space/repository"
	"cowork/shared"
	"cowork/shared/cache"
	"cowork/shared/constant"
	gDto "cowork/shared/dto"
	"cowork/shared/failure"
	"cowork/shared/pricing"
	"cowork/shared/upload"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type Space interface {
	Create(ctx context.Context, req dto.CreateSpaceRequest) (dto.SpaceResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetSpacesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.SpaceResponse, error)
	Update(ctx context.Context, req dto.UpdateSpaceRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Space
	bookings bookingRepo.Booking
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	s3       s3.S3
}

func New(repo repository.Space, bookings bookingRepo.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Space {
	return &serviceImpl{
		repo:     repo,
		bookings: bookings,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		s3:       s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateSpaceRequest) (res dto.SpaceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.UserFromContext(ctx)

	batch := upload.NewBatch(s.s3, model.EntityName)

	images, err := batch.PutAll(ctx, req.Images)
	if err != nil {
		batch.Rollback(ctx)
		log.Error().Err(err).Msg("failed to upload space images")

		return res, fmt.Errorf("failed to upload space images: %w", err)
	}

	space := req.ToModel(user, images)
	dates := dto.NewAvailableDates(space.ID, user, req.AvailableDates)

	if err = s.repo.CreateWithDates(ctx, space, dates); err != nil {
		batch.Rollback(ctx)
		log.Error().Err(err).Msg("failed to create space")

		return res, fmt.Errorf("failed to create space: %w", err)
	}

	s.invalidate(ctx, constant.Empty)

	res.FromModel(space)
	res.WithDates(dates)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetSpacesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAll, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for spaces")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count spaces")

		return res, fmt.Errorf("failed to count spaces: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get spaces")

		return res, fmt.Errorf("failed to get spaces: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save spaces to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheCount, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count spaces")

		return res, fmt.Errorf("failed to count spaces: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save space count to cache")
		}
	}()

	return res, nil
}

// Get returns the space together with its available dates.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.SpaceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(model.CacheGet, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for space")

		return res, nil
	}

	space, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	dates, err := s.repo.GetDates(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get available dates")

		return res, fmt.Errorf("failed to get available dates: %w", err)
	}

	res.FromModel(space)
	res.WithDates(dates)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save space to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateSpaceRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.UserFromContext(ctx)

	current, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if req.Availability != constant.Empty {
		req.Availability = req.Availability.OrDefault()
	}

	fields := shared.TransformFields(req, user)

	if req.Price != nil {
		fields[model.FieldGST] = model.GSTPercent
		fields[model.FieldFinalPrice] = pricing.SpaceFinalPrice(*req.Price)
	}

	batch := upload.NewBatch(s.s3, model.EntityName)

	if len(req.Images) > 0 {
		images, err := batch.PutAll(ctx, req.Images)
		if err != nil {
			batch.Rollback(ctx)
			log.Error().Err(err).Msg("failed to upload space images")

			return fmt.Errorf("failed to upload space images: %w", err)
		}

		fields[model.FieldImages] = pq.StringArray(images)
	}

	var dates []model.AvailableDate
	if req.AvailableDates != nil {
		dates = dto.NewAvailableDates(id, user, *req.AvailableDates)
	}

	if err = s.repo.UpdateWithDates(ctx, id, fields, dates, req.AvailableDates != nil); err != nil {
		batch.Rollback(ctx)
		log.Error().Err(err).Msg("failed to update space")

		return fmt.Errorf("failed to update space: %w", err)
	}

	if len(req.Images) > 0 {
		go upload.Remove(context.WithoutCancel(ctx), s.s3, current.Images...)
	}

	s.invalidate(ctx, id)

	return nil
}

// Delete refuses while the space still has an active booking.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	space, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	active, err := s.bookings.Exist(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldSpaceID, Value: id, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
			gDto.Filter{Field: bookingModel.FieldStatus, Value: bookingModel.ActiveStatuses, Operator: gDto.FilterOperatorIn, Table: bookingModel.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check space bookings")

		return fmt.Errorf("failed to check space bookings: %w", err)
	}

	if active {
		return failure.Conflict("space has active bookings") // nolint:wrapcheck
	}

	if err = s.repo.DeleteWithDates(ctx, id); err != nil {
		log.Error().Err(err).Msg("failed to delete space")

		return fmt.Errorf("failed to delete space: %w", err)
	}

	go upload.Remove(context.WithoutCancel(ctx), s.s3, space.Images...)

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Space, error) {
	space, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get space")

		return space, fmt.Errorf("failed to get space: %w", err)
	}

	if space.ID == constant.Empty {
		return space, failure.NotFound("space not found") // nolint:wrapcheck
	}

	return space, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheGet, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete space cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, model.CacheGetAll)
		shared.InvalidateCaches(c, s.cache, model.CacheCount)
	}()
}
