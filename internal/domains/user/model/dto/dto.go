package dto

import (
	"github.com/google/uuid"

	"lakeside/internal/domains/user/model"
	"lakeside/shared"
	"lakeside/shared/constant"
	gDto "lakeside/shared/dto"
	gModel "lakeside/shared/model"
	"lakeside/shared/timezone"
)

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin user"`
}

func (r *CreateUserRequest) ToModel(createdBy, hashedPassword string) model.User {
	role := r.Role
	if role == "" {
		role = constant.RoleUser
	}

	if createdBy == "" {
		createdBy = constant.ContextGuest
	}

	return model.User{
		ID:       uuid.NewString(),
		Username: r.Username,
		Email:    r.Email,
		Password: hashedPassword,
		Role:     role,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  createdBy,
			ModifiedBy: createdBy,
		},
	}
}

type UpdateUserRequest struct {
	Role   *string `db:"role"   json:"role,omitempty"   validate:"omitempty,oneof=admin user"`
	Active *bool   `db:"active" json:"active,omitempty"`
}

type UserResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	LastLogin *string `json:"last_login,omitempty"`
	Active    bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Username = model.Username
	r.Email = model.Email
	r.Role = model.Role
	r.LastLogin = model.LastLogin
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, m := range models {
		r.Users[i].FromModel(m)
	}
}
