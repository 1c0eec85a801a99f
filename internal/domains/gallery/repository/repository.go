package repository

import (
	"context"

	"lakeside/infras/otel"
	"lakeside/infras/postgres"
	"lakeside/internal/domains/gallery/model"
	gDto "lakeside/shared/dto"
	gRepo "lakeside/shared/repository"
)

type Gallery interface {
	Insert(ctx context.Context, model model.GalleryImage) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.GalleryImage, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.GalleryImage, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.GalleryImage]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Gallery {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.GalleryImage](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
