package dto

import (
	"github.com/google/uuid"

	"lakeside/internal/domains/feedback/model"
	"lakeside/shared"
	"lakeside/shared/constant"
	gDto "lakeside/shared/dto"
	gModel "lakeside/shared/model"
	"lakeside/shared/timezone"
)

type CreateFeedbackRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Phone    string `json:"phone"     validate:"required,min=7,max=20"`
	Email    string `json:"email"     validate:"omitempty,email"`
	Message  string `json:"message"   validate:"required,min=5,max=2000"`
}

func (c *CreateFeedbackRequest) ToModel(user string) model.Feedback {
	if user == "" {
		user = constant.ContextGuest
	}

	return model.Feedback{
		ID:       uuid.NewString(),
		FullName: c.FullName,
		Phone:    c.Phone,
		Email:    c.Email,
		Message:  c.Message,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type FeedbackResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
	Message  string `json:"message"`
	gDto.Metadata
}

func (r *FeedbackResponse) FromModel(model model.Feedback) {
	r.ID = model.ID
	r.FullName = model.FullName
	r.Phone = model.Phone
	r.Email = model.Email
	r.Message = model.Message
	r.Metadata.FromModel(model.Metadata)
}

type GetFeedbackResponse struct {
	Feedback  []FeedbackResponse `json:"feedback"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetFeedbackResponse) FromModels(models []model.Feedback, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Feedback = make([]FeedbackResponse, len(models))
	for i, m := range models {
		r.Feedback[i].FromModel(m)
	}
}
