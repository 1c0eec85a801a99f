package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lakeside/internal/domains/booking/model"
)

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		wantErr  error
	}{
		{name: "valid range", checkIn: "2026-09-01", checkOut: "2026-09-04"},
		{name: "single night", checkIn: "2026-09-01", checkOut: "2026-09-02"},
		{name: "equal dates", checkIn: "2026-09-01", checkOut: "2026-09-01", wantErr: ErrInvalidDateRange},
		{name: "inverted range", checkIn: "2026-09-04", checkOut: "2026-09-01", wantErr: ErrInvalidDateRange},
		{name: "bad check in", checkIn: "01-09-2026", checkOut: "2026-09-04", wantErr: ErrInvalidDate},
		{name: "bad check out", checkIn: "2026-09-01", checkOut: "next friday", wantErr: ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, out, err := ParseDateRange(tt.checkIn, tt.checkOut)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
			assert.True(t, out.After(in))
		})
	}
}

func TestCreateBookingRequest_ToModel(t *testing.T) {
	req := CreateBookingRequest{
		RoomID:          "room-1",
		FullName:        "Jane Walker",
		Phone:           "+4915112345678",
		Email:           "jane@example.com",
		CheckIn:         "2026-09-01",
		CheckOut:        "2026-09-04",
		SpecialRequests: "late arrival",
	}

	booking, err := req.ToModel("user-1")
	assert.NoError(t, err)

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, "room-1", booking.RoomID)
	assert.Equal(t, model.StatusPending, booking.Status)
	assert.Equal(t, 3, booking.Nights())
	assert.NotNil(t, booking.UserID)
	assert.Equal(t, "user-1", *booking.UserID)
	assert.Equal(t, "user-1", booking.CreatedBy)
}

func TestCreateBookingRequest_ToModel_Guest(t *testing.T) {
	req := CreateBookingRequest{
		RoomID:   "room-1",
		FullName: "Walk In",
		Phone:    "+4915112345678",
		CheckIn:  "2026-09-01",
		CheckOut: "2026-09-02",
	}

	booking, err := req.ToModel("")
	assert.NoError(t, err)
	assert.Nil(t, booking.UserID)
	assert.Equal(t, "guest", booking.CreatedBy)
}

func TestCreateBookingRequest_ToModel_InvalidRange(t *testing.T) {
	req := CreateBookingRequest{
		RoomID:   "room-1",
		FullName: "Jane Walker",
		Phone:    "+4915112345678",
		CheckIn:  "2026-09-04",
		CheckOut: "2026-09-01",
	}

	_, err := req.ToModel("user-1")
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}
