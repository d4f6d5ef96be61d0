package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"cowork/infras/otel"
	"cowork/infras/postgres"
	"cowork/internal/domains/booking/model"
	spaceModel "cowork/internal/domains/space/model"
	"cowork/shared"
	"cowork/shared/constant"
	gDto "cowork/shared/dto"
	gRepo "cowork/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateStrict(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateWithSpace(ctx context.Context, req map[string]any, filter gDto.FilterGroup, spaceID string, availability spaceModel.Availability) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	spaces gRepo.Repository[spaceModel.Space]
	db     *postgres.Connection
	otel   otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		spaces:     gRepo.NewRepository[spaceModel.Space](spaceModel.EntityName, spaceModel.TableName, spaceModel.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// UpdateWithSpace changes the booking and the availability of its space together. Nothing is
// written when filter matches no booking; the error then wraps gRepo.ErrNoRowsAffected.
func (r *repositoryImpl) UpdateWithSpace(
	ctx context.Context,
	req map[string]any,
	filter gDto.FilterGroup,
	spaceID string,
	availability spaceModel.Availability,
) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.UpdateWithSpace")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := r.UpdateStrictTx(ctx, tx, req, filter); err != nil {
			return err
		}

		return r.spaces.UpdateTx(ctx, tx, map[string]any{
			spaceModel.FieldAvailability: availability,
			constant.FieldModifiedAt:     req[constant.FieldModifiedAt],
			constant.FieldModifiedBy:     req[constant.FieldModifiedBy],
		}, shared.FilterByID(spaceID, spaceModel.FieldID, spaceModel.TableName))
	})
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	return nil
}
