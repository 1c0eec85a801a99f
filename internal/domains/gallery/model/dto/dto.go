package dto

import (
	"mime/multipart"

	"github.com/google/uuid"

	"lakeside/internal/domains/gallery/model"
	"lakeside/shared"
	gDto "lakeside/shared/dto"
	gModel "lakeside/shared/model"
	"lakeside/shared/timezone"
)

type CreateGalleryImageRequest struct {
	URL       string                `json:"url"      validate:"omitempty,url"`
	Caption   string                `json:"caption"  validate:"omitempty,max=200"`
	Category  string                `json:"category" validate:"omitempty,max=50"`
	Image     *multipart.FileHeader `json:"image"    swaggerignore:"true"        validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2"`
	ImageFile multipart.File        `json:"-"`
}

// ToModel builds the stored image. url wins over the request URL so the
// caller can pass the S3 location of an uploaded file.
func (c *CreateGalleryImageRequest) ToModel(user, url string) model.GalleryImage {
	if url == "" {
		url = c.URL
	}

	return model.GalleryImage{
		ID:       uuid.NewString(),
		URL:      url,
		Caption:  c.Caption,
		Category: c.Category,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateGalleryImageRequest struct {
	Caption  string `db:"caption"  json:"caption"  validate:"omitempty,max=200"`
	Category string `db:"category" json:"category" validate:"omitempty,max=50"`
}

type GalleryImageResponse struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Caption  string `json:"caption,omitempty"`
	Category string `json:"category,omitempty"`
	gDto.Metadata
}

func (r *GalleryImageResponse) FromModel(model model.GalleryImage) {
	r.ID = model.ID
	r.URL = model.URL
	r.Caption = model.Caption
	r.Category = model.Category
	r.Metadata.FromModel(model.Metadata)
}

type GetGalleryImagesResponse struct {
	Images    []GalleryImageResponse `json:"images"`
	TotalPage int                    `json:"total_page"`
	TotalData int                    `json:"total_data"`
}

func (r *GetGalleryImagesResponse) FromModels(models []model.GalleryImage, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Images = make([]GalleryImageResponse, len(models))
	for i, m := range models {
		r.Images[i].FromModel(m)
	}
}
