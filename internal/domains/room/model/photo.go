package model

import "lakeside/shared/model"

const (
	PhotoTableName  = "room_photos"
	PhotoEntityName = "room_photo"

	PhotoFieldID        = "id"
	PhotoFieldRoomID    = "room_id"
	PhotoFieldURL       = "url"
	PhotoFieldSortOrder = "sort_order"
)

// RoomPhoto is one entry of a room's ordered photo set.
type RoomPhoto struct {
	ID        string `db:"id"`
	RoomID    string `db:"room_id"`
	URL       string `db:"url"`
	SortOrder int    `db:"sort_order"`
	model.Metadata
}
