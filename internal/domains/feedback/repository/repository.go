package repository

import (
	"context"

	"lakeside/infras/otel"
	"lakeside/infras/postgres"
	"lakeside/internal/domains/feedback/model"
	gDto "lakeside/shared/dto"
	gRepo "lakeside/shared/repository"
)

type Feedback interface {
	Insert(ctx context.Context, model model.Feedback) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Feedback, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Feedback, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Feedback]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Feedback {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Feedback](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
