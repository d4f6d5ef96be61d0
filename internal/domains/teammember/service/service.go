package service

import (
	"context"
	"fmt"

	"cowork/config"
	"cowork/infras/otel"
	"cowork/infras/s3"
	bookingModel "cowork/internal/domains/booking/model"
	bookingRepo "cowork/internal/domains/booking/repository"
	"cowork/internal/domains/teammember/model"
	"cowork/internal/domains/teammember/model/dto"
	"cowork/internal/domains/teammember/repository"
	"cowork/shared"
	"cowork/shared/constant"
	gDto "cowork/shared/dto"
	"cowork/shared/failure"
	"cowork/shared/upload"

	"github.com/rs/zerolog/log"
)

type TeamMember interface {
	Add(ctx context.Context, req dto.AddTeamMemberRequest) (dto.TeamMemberResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, bookingID string) (dto.GetTeamMembersResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.TeamMember
	bookings bookingRepo.Booking
	cfg      *config.Config
	otel     otel.Otel
	s3       s3.S3
}

func New(repo repository.TeamMember, bookings bookingRepo.Booking, cfg *config.Config, otel otel.Otel, s3 s3.S3) TeamMember {
	return &serviceImpl{
		repo:     repo,
		bookings: bookings,
		cfg:      cfg,
		otel:     otel,
		s3:       s3,
	}
}

// Add attaches a member to one of the caller's occupied bookings.
func (s *serviceImpl) Add(ctx context.Context, req dto.AddTeamMemberRequest) (res dto.TeamMemberResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Add")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.UserFromContext(ctx)

	owned, err := s.bookings.Exist(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldID, Value: req.BookingID, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
			gDto.Filter{Field: bookingModel.FieldUserID, Value: user, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
			gDto.Filter{Field: bookingModel.FieldStatus, Value: bookingModel.HoldingStatuses, Operator: gDto.FilterOperatorIn, Table: bookingModel.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking")

		return res, fmt.Errorf("failed to check booking: %w", err)
	}

	if !owned {
		return res, failure.NotFound("no confirmed booking found for team member") // nolint:wrapcheck
	}

	batch := upload.NewBatch(s.s3, model.EntityName)

	photo, err := batch.Put(ctx, req.Photo)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload team member photo")

		return res, fmt.Errorf("failed to upload team member photo: %w", err)
	}

	member := req.ToModel(user, photo)

	if err = s.repo.Insert(ctx, member); err != nil {
		batch.Rollback(ctx)
		log.Error().Err(err).Msg("failed to add team member")

		return res, fmt.Errorf("failed to add team member: %w", err)
	}

	res.FromModel(member)

	return res, nil
}

// GetAll lists members of the caller's bookings, optionally narrowed to one booking.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, bookingID string) (res dto.GetTeamMembersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.UserFromContext(ctx)

	ownership := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldUserID, Value: user, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
		},
	}

	if bookingID != constant.Empty {
		ownership.Filters = append(ownership.Filters, gDto.Filter{Field: bookingModel.FieldID, Value: bookingID, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName})
	}

	bookings, err := s.bookings.GetAll(ctx, gDto.QueryParams{}, ownership, bookingModel.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	if bookingID != constant.Empty && len(bookings) == 0 {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	ids := make([]string, len(bookings))
	for i, booking := range bookings {
		ids[i] = booking.ID
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldBookingID, Value: ids, Operator: gDto.FilterOperatorIn, Table: model.TableName},
		},
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count team members")

		return res, fmt.Errorf("failed to count team members: %w", err)
	}

	members, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get team members")

		return res, fmt.Errorf("failed to get team members: %w", err)
	}

	res.FromModels(members, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.UserFromContext(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	member, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get team member")

		return fmt.Errorf("failed to get team member: %w", err)
	}

	if member.ID == constant.Empty {
		return failure.NotFound("team member not found") // nolint:wrapcheck
	}

	owned, err := s.bookings.Exist(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldID, Value: member.BookingID, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
			gDto.Filter{Field: bookingModel.FieldUserID, Value: user, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking")

		return fmt.Errorf("failed to check booking: %w", err)
	}

	if !owned {
		return failure.Forbidden("you can only remove members of your own bookings") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete team member")

		return fmt.Errorf("failed to delete team member: %w", err)
	}

	if member.Photo != constant.Empty {
		go upload.Remove(context.WithoutCancel(ctx), s.s3, member.Photo)
	}

	return nil
}
