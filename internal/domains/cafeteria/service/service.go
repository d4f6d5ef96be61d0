package service

import (
	"context"
	"fmt"
	"strings"

	"cowork/config"
	"cowork/infras/otel"
	"cowork/infras/s3"
	bookingModel "cowork/internal/domains/booking/model"
	bookingRepo "cowork/internal/domains/booking/repository"
	"cowork/internal/domains/cafeteria/model"
	"cowork/internal/domains/cafeteria/model/dto"
	"cowork/internal/domains/cafeteria/repository"
	"cowork/shared"
	"cowork/shared/constant"
	gDto "cowork/shared/dto"
	"cowork/shared/failure"
	"cowork/shared/timezone"
	"cowork/shared/upload"

	"github.com/rs/zerolog/log"
)

type Cafeteria interface {
	Menu(ctx context.Context) dto.MenuResponse
	PlaceOrder(ctx context.Context, req dto.PlaceOrderRequest) (dto.OrderResponse, error)
	GetMine(ctx context.Context, req gDto.QueryParams) (dto.GetOrdersResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetOrdersResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateOrderStatusRequest, id string) (dto.OrderResponse, error)
}

type serviceImpl struct {
	repo     repository.Order
	bookings bookingRepo.Booking
	cfg      *config.Config
	otel     otel.Otel
	s3       s3.S3
}

func New(repo repository.Order, bookings bookingRepo.Booking, cfg *config.Config, otel otel.Otel, s3 s3.S3) Cafeteria {
	return &serviceImpl{
		repo:     repo,
		bookings: bookings,
		cfg:      cfg,
		otel:     otel,
		s3:       s3,
	}
}

func (s *serviceImpl) Menu(_ context.Context) dto.MenuResponse {
	return dto.NewMenuResponse()
}

func (s *serviceImpl) PlaceOrder(ctx context.Context, req dto.PlaceOrderRequest) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PlaceOrder")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.UserFromContext(ctx)

	item, ok := model.Lookup(req.OrderType, req.ItemName)
	if !ok {
		return res, failure.BadRequestFromString(fmt.Sprintf("%s is not on the %s menu", req.ItemName, strings.ToLower(string(req.OrderType)))) // nolint:wrapcheck
	}

	spaceID := req.SpaceID

	if !req.IsPersonal && spaceID == constant.Empty {
		spaceID, err = s.occupiedSpace(ctx, user)
		if err != nil {
			return res, err
		}
	}

	batch := upload.NewBatch(s.s3, model.EntityName)

	screenshot, err := batch.Put(ctx, req.PaymentScreenshot)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload payment screenshot")

		return res, fmt.Errorf("failed to upload payment screenshot: %w", err)
	}

	order := req.ToModel(user, item, spaceID, screenshot)

	if err = s.repo.Insert(ctx, order); err != nil {
		batch.Rollback(ctx)
		log.Error().Err(err).Msg("failed to place order")

		return res, fmt.Errorf("failed to place order: %w", err)
	}

	res.FromModel(order)

	return res, nil
}

// occupiedSpace is the space of the caller's latest running booking, empty when there is none.
func (s *serviceImpl) occupiedSpace(ctx context.Context, user string) (string, error) {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldUserID, Value: user, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
			gDto.Filter{Field: bookingModel.FieldStatus, Value: bookingModel.HoldingStatuses, Operator: gDto.FilterOperatorIn, Table: bookingModel.TableName},
		},
	}

	params := gDto.QueryParams{Limit: 1, SortBy: bookingModel.FieldStartDate, SortDir: gDto.SortDirDesc}

	bookings, err := s.bookings.GetAll(ctx, params, filter, bookingModel.FieldSpaceID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get occupied space")

		return constant.Empty, fmt.Errorf("failed to get occupied space: %w", err)
	}

	if len(bookings) == 0 {
		return constant.Empty, nil
	}

	return bookings[0].SpaceID, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams) (res dto.GetOrdersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.UserFromContext(ctx)

	return s.list(ctx, req, shared.FilterByField(model.FieldUserID, user, model.TableName))
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetOrdersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.list(ctx, req, filter)
}

// UpdateStatus moves an open order along. Delivered and Cancelled orders are final.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateOrderStatusRequest, id string) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	admin, _ := shared.UserFromContext(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	order, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get order")

		return res, fmt.Errorf("failed to get order: %w", err)
	}

	if order.ID == constant.Empty {
		return res, failure.NotFound("order not found") // nolint:wrapcheck
	}

	if order.Status.Terminal() {
		return res, failure.Conflict(fmt.Sprintf("order is already %s", strings.ToLower(string(order.Status)))) // nolint:wrapcheck
	}

	now := timezone.Now()
	update := map[string]any{
		model.FieldStatus:        req.Status,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: admin,
	}

	if err = s.repo.Update(ctx, update, filter); err != nil {
		log.Error().Err(err).Msg("failed to update order status")

		return res, fmt.Errorf("failed to update order status: %w", err)
	}

	order.Status = req.Status
	order.ModifiedAt = now
	order.ModifiedBy = admin

	res.FromModel(order)

	return res, nil
}

func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetOrdersResponse, err error) {
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count orders")

		return res, fmt.Errorf("failed to count orders: %w", err)
	}

	orders, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get orders")

		return res, fmt.Errorf("failed to get orders: %w", err)
	}

	res.FromModels(orders, total, req.Limit)

	return res, nil
}
