package jobs

import (
	"context"
	"fmt"
	"time"

	"cowork/config"
	"cowork/infras/otel"
	bookingModel "cowork/internal/domains/booking/model"
	bookingRepo "cowork/internal/domains/booking/repository"
	spaceModel "cowork/internal/domains/space/model"
	spaceRepo "cowork/internal/domains/space/repository"
	"cowork/shared"
	"cowork/shared/cache"
	"cowork/shared/constant"
	gDto "cowork/shared/dto"
	"cowork/shared/timezone"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const systemUser = "system"

// Scheduler runs the periodic maintenance jobs.
type Scheduler struct {
	cron     *cron.Cron
	cfg      *config.Config
	bookings bookingRepo.Booking
	spaces   spaceRepo.Space
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(cfg *config.Config, bookings bookingRepo.Booking, spaces spaceRepo.Space, cache cache.RedisCache, otel otel.Otel) *Scheduler {
	logger := cronLogger{}

	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(timezone.GetLocation()),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		cfg:      cfg,
		bookings: bookings,
		spaces:   spaces,
		cache:    cache,
		otel:     otel,
	}
}

// Start registers the jobs and starts the cron loop in the background.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.cfg.Jobs.NoticeSweepCron, func() {
		if err := s.NoticeSweep(ctx); err != nil {
			log.Error().Err(err).Msg("notice sweep failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule notice sweep: %w", err)
	}

	s.cron.Start()

	log.Info().Str("schedule", s.cfg.Jobs.NoticeSweepCron).Msg("job scheduler started")

	return nil
}

// Stop waits for running jobs to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		log.Warn().Msg("job scheduler stopped before running jobs finished")
	}
}

// NoticeSweep marks spaces of occupants serving notice as Available Soon and frees them once the notice expired.
// A running notice outranks an expired one on the same space, and a space that has been let again
// (a Confirm booking exists) is left alone.
func (s *Scheduler) NoticeSweep(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelJobScopeName, constant.OtelJobScopeName+".NoticeSweep")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bookings, err := s.bookings.GetAll(ctx, gDto.QueryParams{}, shared.FilterByField(bookingModel.FieldStatus, bookingModel.StatusNoticeGiven, bookingModel.TableName))
	if err != nil {
		return fmt.Errorf("failed to get bookings in notice: %w", err)
	}

	now := timezone.Now()
	spaceIDs, targets := noticeTargets(bookings, now)
	swept := 0

	for _, spaceID := range spaceIDs {
		occupied, err := s.bookings.Exist(ctx, confirmedOn(spaceID))
		if err != nil {
			log.Error().Err(err).Str("space_id", spaceID).Msg("failed to check space occupancy")

			continue
		}

		if occupied {
			log.Debug().Str("space_id", spaceID).Msg("space let again, availability kept")

			continue
		}

		availability := targets[spaceID]
		filter := gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{Field: spaceModel.FieldID, Value: spaceID, Operator: gDto.FilterOperatorEq, Table: spaceModel.TableName},
				gDto.Filter{Field: spaceModel.FieldAvailability, Value: availability, Operator: gDto.FilterOperatorNotEq, Table: spaceModel.TableName},
			},
		}

		update := map[string]any{
			spaceModel.FieldAvailability: availability,
			constant.FieldModifiedAt:     now,
			constant.FieldModifiedBy:     systemUser,
		}

		if err = s.spaces.Update(ctx, update, filter); err != nil {
			log.Error().Err(err).Str("space_id", spaceID).Msg("failed to update space availability")

			continue
		}

		if err = s.cache.Delete(ctx, shared.BuildCacheKey(spaceModel.CacheGet, spaceID)); err != nil {
			log.Warn().Err(err).Str("space_id", spaceID).Msg("failed to delete space cache")
		}

		swept++
	}

	if swept > 0 {
		shared.InvalidateCaches(ctx, s.cache, spaceModel.CacheGetAll)
	}

	log.Info().Int("bookings", len(bookings)).Int("spaces", swept).Msg("notice sweep finished")

	return nil
}

// noticeTargets folds the notices per space, in first-seen order.
func noticeTargets(bookings []bookingModel.Booking, now time.Time) ([]string, map[string]spaceModel.Availability) {
	spaceIDs := make([]string, 0, len(bookings))
	targets := make(map[string]spaceModel.Availability, len(bookings))

	for _, booking := range bookings {
		notice, ok := booking.Notice()
		if !ok {
			continue
		}

		availability := spaceModel.AvailabilityAvailable
		if notice.InNotice(now) {
			availability = spaceModel.AvailabilityAvailableSoon
		}

		if _, seen := targets[booking.SpaceID]; !seen {
			spaceIDs = append(spaceIDs, booking.SpaceID)
			targets[booking.SpaceID] = availability
		} else if availability == spaceModel.AvailabilityAvailableSoon {
			targets[booking.SpaceID] = availability
		}
	}

	return spaceIDs, targets
}

func confirmedOn(spaceID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldSpaceID, Value: spaceID, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
			gDto.Filter{Field: bookingModel.FieldStatus, Value: bookingModel.StatusConfirm, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
		},
	}
}

// cronLogger routes cron's internal logging through zerolog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
