package model

import "lakeside/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldCapacity    = "capacity"
	FieldAmenities   = "amenities"
	FieldImage       = "image"
	FieldIsAvailable = "is_available"
)

// Room is a bookable hotel room. Price is the nightly rate in the
// smallest currency unit. IsAvailable is a manual listing switch, not
// a statement about bookings.
type Room struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Price       int64  `db:"price"`
	Capacity    int    `db:"capacity"`
	Amenities   string `db:"amenities"`
	Image       string `db:"image"`
	IsAvailable bool   `db:"is_available"`
	model.Metadata
}
