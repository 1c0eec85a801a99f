package dto

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"lakeside/internal/domains/booking/model"
	"lakeside/shared"
	"lakeside/shared/constant"
	gDto "lakeside/shared/dto"
	gModel "lakeside/shared/model"
	"lakeside/shared/timezone"
)

var (
	ErrInvalidDate      = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidDateRange = errors.New("check_out must be after check_in")
)

// ParseDateRange parses half-open check-in/check-out dates and rejects
// empty or inverted ranges.
func ParseDateRange(checkIn, checkOut string) (in, out time.Time, err error) {
	in, err = timezone.Parse(constant.DateOnlyFormat, checkIn)
	if err != nil {
		return in, out, ErrInvalidDate
	}

	out, err = timezone.Parse(constant.DateOnlyFormat, checkOut)
	if err != nil {
		return in, out, ErrInvalidDate
	}

	if !out.After(in) {
		return in, out, ErrInvalidDateRange
	}

	return in, out, nil
}

type CreateBookingRequest struct {
	RoomID          string `json:"room_id"          validate:"required"`
	FullName        string `json:"full_name"        validate:"required,max=100"`
	Phone           string `json:"phone"            validate:"required,max=20"`
	Email           string `json:"email"            validate:"omitempty,email,max=100"`
	CheckIn         string `json:"check_in"         validate:"required,datetime=2006-01-02"`
	CheckOut        string `json:"check_out"        validate:"required,datetime=2006-01-02"`
	SpecialRequests string `json:"special_requests" validate:"omitempty,max=1000"`
}

func (c *CreateBookingRequest) ToModel(userID string) (model.Booking, error) {
	checkIn, checkOut, err := ParseDateRange(c.CheckIn, c.CheckOut)
	if err != nil {
		return model.Booking{}, err
	}

	var owner *string
	if userID != "" {
		owner = &userID
	}

	createdBy := userID
	if createdBy == "" {
		createdBy = constant.ContextGuest
	}

	return model.Booking{
		ID:              uuid.NewString(),
		RoomID:          c.RoomID,
		UserID:          owner,
		FullName:        c.FullName,
		Phone:           c.Phone,
		Email:           c.Email,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Status:          model.StatusPending,
		SpecialRequests: c.SpecialRequests,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  createdBy,
			ModifiedBy: createdBy,
		},
	}, nil
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

type BookingResponse struct {
	ID              string `json:"id"`
	RoomID          string `json:"room_id"`
	UserID          string `json:"user_id,omitempty"`
	FullName        string `json:"full_name"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	CheckIn         string `json:"check_in"`
	CheckOut        string `json:"check_out"`
	Nights          int    `json:"nights"`
	Status          string `json:"status"`
	SpecialRequests string `json:"special_requests"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.FullName = model.FullName
	r.Phone = model.Phone
	r.Email = model.Email
	r.CheckIn = model.CheckIn.Format(constant.DateOnlyFormat)
	r.CheckOut = model.CheckOut.Format(constant.DateOnlyFormat)
	r.Nights = model.Nights()
	r.Status = model.Status.String()
	r.SpecialRequests = model.SpecialRequests

	if model.UserID != nil {
		r.UserID = *model.UserID
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type AvailabilityResponse struct {
	RoomID    string `json:"room_id"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	Available bool   `json:"available"`
}

// BookingStatusEvent is published to the event stream after a committed
// status change. A created booking carries an empty FromStatus.
type BookingStatusEvent struct {
	BookingID  string `json:"booking_id"`
	RoomID     string `json:"room_id"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
	At         string `json:"at"`
}
