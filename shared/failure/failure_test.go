package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"lakeside/shared/failure"
)

func TestFailureCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "bad request from string",
			err:      failure.BadRequestFromString("check_in must be before check_out"),
			wantCode: http.StatusBadRequest,
			wantMsg:  "check_in must be before check_out",
		},
		{
			name:     "not found",
			err:      failure.NotFound("booking not found"),
			wantCode: http.StatusNotFound,
			wantMsg:  "booking not found",
		},
		{
			name:     "conflict",
			err:      failure.Conflict("room already booked for the selected dates"),
			wantCode: http.StatusConflict,
			wantMsg:  "room already booked for the selected dates",
		},
		{
			name:     "invalid transition",
			err:      failure.InvalidTransition("cannot confirm a cancelled booking"),
			wantCode: http.StatusUnprocessableEntity,
			wantMsg:  "cannot confirm a cancelled booking",
		},
		{
			name:     "unauthorized",
			err:      failure.Unauthorized("missing token"),
			wantCode: http.StatusUnauthorized,
			wantMsg:  "missing token",
		},
		{
			name:     "forbidden",
			err:      failure.Forbidden("admins only"),
			wantCode: http.StatusForbidden,
			wantMsg:  "admins only",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, failure.GetCode(tt.err))
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestGetCodeWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("confirming booking: %w", failure.Conflict("overlap"))

	assert.Equal(t, http.StatusConflict, failure.GetCode(wrapped))
	assert.True(t, failure.IsCode(wrapped, http.StatusConflict))
}

func TestGetCodeUnknownError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("boom")))
}

func TestBadRequestNilError(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}
