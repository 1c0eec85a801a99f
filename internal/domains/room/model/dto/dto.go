package dto

import (
	"mime/multipart"

	"github.com/google/uuid"

	"lakeside/internal/domains/room/model"
	"lakeside/shared"
	gDto "lakeside/shared/dto"
	gModel "lakeside/shared/model"
	"lakeside/shared/timezone"
)

type CreateRoomRequest struct {
	Name        string                `json:"name"        validate:"required,max=100"`
	Description string                `json:"description" validate:"omitempty,max=2000"`
	Price       int64                 `json:"price"       validate:"required,min=0"`
	Capacity    int                   `json:"capacity"    validate:"omitempty,min=1"`
	Amenities   string                `json:"amenities"   validate:"omitempty,max=1000"`
	Image       *multipart.FileHeader `json:"image"       validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=2"`
	ImageFile   multipart.File        `json:"-"`
	IsAvailable *bool                 `json:"is_available" validate:"omitempty"`
}

func (c *CreateRoomRequest) ToModel(user string, imageURL string) model.Room {
	available := true
	if c.IsAvailable != nil {
		available = *c.IsAvailable
	}

	capacity := c.Capacity
	if capacity == 0 {
		capacity = 2
	}

	return model.Room{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Description: c.Description,
		Price:       c.Price,
		Capacity:    capacity,
		Amenities:   c.Amenities,
		Image:       imageURL,
		IsAvailable: available,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Name        string                `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Description string                `db:"description" json:"description" validate:"omitempty,max=2000"`
	Price       *int64                `db:"price"       json:"price"       validate:"omitempty,min=0"`
	Capacity    *int                  `db:"capacity"    json:"capacity"    validate:"omitempty,min=1"`
	Amenities   string                `db:"amenities"   json:"amenities"   validate:"omitempty,max=1000"`
	Image       *multipart.FileHeader `json:"image" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=2"`
	ImageFile   multipart.File        `json:"-"`
	IsAvailable *bool                 `db:"is_available" json:"is_available" validate:"omitempty"`
}

type RoomResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Capacity    int      `json:"capacity"`
	Amenities   string   `json:"amenities"`
	Image       string   `json:"image"`
	IsAvailable bool     `json:"is_available"`
	Photos      []string `json:"photos,omitempty"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Price = model.Price
	r.Capacity = model.Capacity
	r.Amenities = model.Amenities
	r.Image = model.Image
	r.IsAvailable = model.IsAvailable
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

type AddPhotoRequest struct {
	URL       string                `json:"url"        validate:"omitempty,url"`
	SortOrder int                   `json:"sort_order" validate:"omitempty,min=0"`
	Image     *multipart.FileHeader `json:"image"      validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=2"`
	ImageFile multipart.File        `json:"-"`
}

func (a *AddPhotoRequest) ToModel(roomID, user, url string) model.RoomPhoto {
	if url == "" {
		url = a.URL
	}

	return model.RoomPhoto{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		URL:       url,
		SortOrder: a.SortOrder,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type PhotoResponse struct {
	ID        string `json:"id"`
	RoomID    string `json:"room_id"`
	URL       string `json:"url"`
	SortOrder int    `json:"sort_order"`
}

func (p *PhotoResponse) FromModel(model model.RoomPhoto) {
	p.ID = model.ID
	p.RoomID = model.RoomID
	p.URL = model.URL
	p.SortOrder = model.SortOrder
}

type GetPhotosResponse struct {
	Photos []PhotoResponse `json:"photos"`
}

func (r *GetPhotosResponse) FromModels(models []model.RoomPhoto) {
	r.Photos = make([]PhotoResponse, len(models))
	for i, mod := range models {
		r.Photos[i].FromModel(mod)
	}
}
