package model

import (
	"time"

	"lakeside/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldRoomID          = "room_id"
	FieldUserID          = "user_id"
	FieldFullName        = "full_name"
	FieldPhone           = "phone"
	FieldEmail           = "email"
	FieldCheckIn         = "check_in"
	FieldCheckOut        = "check_out"
	FieldStatus          = "status"
	FieldSpecialRequests = "special_requests"
)

// Booking holds one stay request. CheckIn/CheckOut are dates with
// half-open semantics: the guest leaves on CheckOut morning, so a stay
// ending on a date does not collide with one starting on it.
type Booking struct {
	ID              string    `db:"id"`
	RoomID          string    `db:"room_id"`
	UserID          *string   `db:"user_id"`
	FullName        string    `db:"full_name"`
	Phone           string    `db:"phone"`
	Email           string    `db:"email"`
	CheckIn         time.Time `db:"check_in"`
	CheckOut        time.Time `db:"check_out"`
	Status          Status    `db:"status"`
	SpecialRequests string    `db:"special_requests"`
	model.Metadata
}

// Nights returns the length of the stay.
func (b *Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}

// OwnedBy reports whether the booking belongs to the given user.
func (b *Booking) OwnedBy(userID string) bool {
	return b.UserID != nil && userID != "" && *b.UserID == userID
}
