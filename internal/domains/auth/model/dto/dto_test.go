package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lakeside/infras/jwt"
	"lakeside/internal/domains/auth/model/dto"
	"lakeside/shared/constant"
)

func TestRegisterRequest_ToUserModel(t *testing.T) {
	req := dto.RegisterRequest{
		Username: "janewalker",
		Email:    "jane@example.com",
		Password: "plain-password",
	}

	user := req.ToUserModel("hashed-password")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "janewalker", user.Username)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, "hashed-password", user.Password)
	assert.Equal(t, constant.RoleUser, user.Role)
	assert.True(t, user.Active)
}

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, tokenPair.ExpiresIn, response.ExpiresIn)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
}
