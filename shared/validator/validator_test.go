package validator

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"lakeside/shared/failure"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name: "valid payload",
			body: `{"username":"guest","email":"guest@example.com","password":"supersecret"}`,
		},
		{
			name:    "malformed json",
			body:    `{"username":`,
			wantErr: "failed to decode request body",
		},
		{
			name:    "missing email",
			body:    `{"username":"guest","password":"supersecret"}`,
			wantErr: "Email is required",
		},
		{
			name:    "invalid email",
			body:    `{"username":"guest","email":"not-an-email","password":"supersecret"}`,
			wantErr: "Email must be a valid email address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req registerRequest
			err := Validate(strings.NewReader(tt.body), &req)

			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			}
		})
	}
}

func TestValidateStruct(t *testing.T) {
	type statusRequest struct {
		Status string `validate:"required,oneof=pending confirmed cancelled"`
	}

	err := ValidateStruct(&statusRequest{Status: "confirmed"})
	assert.NoError(t, err)

	err = ValidateStruct(&statusRequest{Status: "archived"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of")
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, ValidateVar("2026-09-01", "datetime=2006-01-02"))
	assert.Error(t, ValidateVar("01-09-2026", "datetime=2006-01-02"))
}
