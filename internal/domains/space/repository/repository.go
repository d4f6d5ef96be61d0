package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"cowork/infras/otel"
	"cowork/infras/postgres"
	"cowork/internal/domains/space/model"
	"cowork/shared"
	"cowork/shared/constant"
	gDto "cowork/shared/dto"
	gRepo "cowork/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Space interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Space, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Space, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	GetDates(ctx context.Context, spaceID string) ([]model.AvailableDate, error)
	CreateWithDates(ctx context.Context, space model.Space, dates []model.AvailableDate) error
	UpdateWithDates(ctx context.Context, spaceID string, req map[string]any, dates []model.AvailableDate, replaceDates bool) error
	DeleteWithDates(ctx context.Context, spaceID string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Space]
	dates gRepo.Repository[model.AvailableDate]
	db    *postgres.Connection
	otel  otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Space {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Space](model.EntityName, model.TableName, model.FieldID, db, otel),
		dates:      gRepo.NewRepository[model.AvailableDate](model.EntityAvailableDate, model.TableAvailableDate, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) GetDates(ctx context.Context, spaceID string) ([]model.AvailableDate, error) {
	dates, err := r.dates.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldDate, SortDir: gDto.SortDirAsc}, bySpace(spaceID))
	if err != nil {
		return nil, fmt.Errorf("failed to get available dates: %w", err)
	}

	return dates, nil
}

func (r *repositoryImpl) CreateWithDates(ctx context.Context, space model.Space, dates []model.AvailableDate) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".space.CreateWithDates")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := r.InsertTx(ctx, tx, space); err != nil {
			return err
		}

		if len(dates) == 0 {
			return nil
		}

		return r.dates.InsertBulkTx(ctx, tx, dates)
	})
	if err != nil {
		return fmt.Errorf("failed to create space: %w", err)
	}

	return nil
}

// UpdateWithDates applies the field changes and, when replaceDates is set,
// swaps the whole list of available dates in the same transaction.
func (r *repositoryImpl) UpdateWithDates(ctx context.Context, spaceID string, req map[string]any, dates []model.AvailableDate, replaceDates bool) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".space.UpdateWithDates")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if len(req) > 0 {
			if err := r.UpdateTx(ctx, tx, req, shared.FilterByID(spaceID, model.FieldID, model.TableName)); err != nil {
				return err
			}
		}

		if !replaceDates {
			return nil
		}

		if err := r.dates.DeleteTx(ctx, tx, bySpace(spaceID)); err != nil {
			return err
		}

		if len(dates) == 0 {
			return nil
		}

		return r.dates.InsertBulkTx(ctx, tx, dates)
	})
	if err != nil {
		return fmt.Errorf("failed to update space: %w", err)
	}

	return nil
}

func (r *repositoryImpl) DeleteWithDates(ctx context.Context, spaceID string) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".space.DeleteWithDates")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := r.dates.DeleteTx(ctx, tx, bySpace(spaceID)); err != nil {
			return err
		}

		return r.DeleteTx(ctx, tx, shared.FilterByID(spaceID, model.FieldID, model.TableName))
	})
	if err != nil {
		return fmt.Errorf("failed to delete space: %w", err)
	}

	return nil
}

func bySpace(spaceID string) gDto.FilterGroup {
	return shared.FilterByField(model.FieldSpaceID, spaceID, model.TableAvailableDate)
}
