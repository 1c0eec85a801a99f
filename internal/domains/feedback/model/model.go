package model

import "lakeside/shared/model"

const (
	TableName  = "feedback"
	EntityName = "feedback"

	FieldID       = "id"
	FieldFullName = "full_name"
	FieldPhone    = "phone"
	FieldEmail    = "email"
	FieldMessage  = "message"
)

type Feedback struct {
	ID       string `db:"id"`
	FullName string `db:"full_name"`
	Phone    string `db:"phone"`
	Email    string `db:"email"`
	Message  string `db:"message"`
	model.Metadata
}
