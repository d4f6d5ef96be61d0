package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"cowork/infras/otel"
	"cowork/infras/postgres"
	"cowork/internal/domains/teammember/model"
	gDto "cowork/shared/dto"
	gRepo "cowork/shared/repository"
)

type TeamMember interface {
	Insert(ctx context.Context, model model.TeamMember) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.TeamMember, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.TeamMember, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.TeamMember]
}

func New(db *postgres.Connection, otel otel.Otel) TeamMember {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.TeamMember](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
