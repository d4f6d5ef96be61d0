package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"cowork/infras/otel"
	"cowork/infras/postgres"
	"cowork/internal/domains/kyc/model"
	"cowork/shared"
	"cowork/shared/constant"
	gDto "cowork/shared/dto"
	gRepo "cowork/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Kyc interface {
	Insert(ctx context.Context, model model.Kyc) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Kyc, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Kyc, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateStrict(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	Replace(ctx context.Context, previousID string, model model.Kyc) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Kyc]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Kyc {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Kyc](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Replace swaps a previous submission for a new one.
func (r *repositoryImpl) Replace(ctx context.Context, previousID string, kyc model.Kyc) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".kyc.Replace")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := r.DeleteTx(ctx, tx, shared.FilterByID(previousID, model.FieldID, model.TableName)); err != nil {
			return err
		}

		return r.InsertTx(ctx, tx, kyc)
	})
	if err != nil {
		return fmt.Errorf("failed to replace kyc: %w", err)
	}

	return nil
}
