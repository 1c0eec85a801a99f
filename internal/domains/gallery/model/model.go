package model

import "lakeside/shared/model"

const (
	TableName  = "gallery_images"
	EntityName = "gallery"

	FieldID       = "id"
	FieldURL      = "url"
	FieldCaption  = "caption"
	FieldCategory = "category"
)

type GalleryImage struct {
	ID       string `db:"id"`
	URL      string `db:"url"`
	Caption  string `db:"caption"`
	Category string `db:"category"`
	model.Metadata
}
