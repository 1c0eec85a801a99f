package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lakeside/config"
	"lakeside/infras/jwt"
	jwtMocks "lakeside/infras/jwt/mocks"
	"lakeside/infras/otel/mocks"
	"lakeside/permissions"
	"lakeside/shared/constant"
	"lakeside/transport/http/middleware"
)

// newAuthRouter mounts the real Auth and RBAC middleware with the embedded
// permissions in front of capture handlers, the way the server wires them.
func newAuthRouter(t *testing.T, jwtService jwt.JWT) (chi.Router, *string) {
	t.Helper()

	m := middleware.NewAuthRoleMiddleware(jwtService, mocks.NewOtel(), permissions.Get(), &config.Config{})

	var seenUserID string

	router := chi.NewRouter()
	router.Use(m.Auth)
	router.Use(m.RBAC)
	router.Post("/v1/bookings", func(w http.ResponseWriter, r *http.Request) {
		seenUserID, _ = r.Context().Value(constant.ContextKeyUserID).(string)
		w.WriteHeader(http.StatusCreated)
	})
	router.Get("/v1/bookings/mybookings", func(w http.ResponseWriter, r *http.Request) {
		seenUserID, _ = r.Context().Value(constant.ContextKeyUserID).(string)
		w.WriteHeader(http.StatusOK)
	})

	return router, &seenUserID
}

func TestAuthMiddleware_OpenEndpointKeepsCallerIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockJWT.EXPECT().
		ValidateToken("valid-token", jwt.AccessToken).
		Return(&jwt.Claims{UserID: "user-1", Email: "guest@example.com", Role: constant.RoleUser, TokenID: "tok-1"}, nil)

	router, seenUserID := newAuthRouter(t, mockJWT)

	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", nil)
	req.Header.Set(constant.RequestHeaderAuthorization, "Bearer valid-token")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "user-1", *seenUserID)
}

func TestAuthMiddleware_OpenEndpointAllowsAnonymous(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)

	router, seenUserID := newAuthRouter(t, mockJWT)

	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, *seenUserID)
}

func TestAuthMiddleware_OpenEndpointInvalidTokenStaysAnonymous(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockJWT.EXPECT().
		ValidateToken("stale-token", jwt.AccessToken).
		Return(nil, jwt.ErrInvalidToken)

	router, seenUserID := newAuthRouter(t, mockJWT)

	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", nil)
	req.Header.Set(constant.RequestHeaderAuthorization, "Bearer stale-token")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, *seenUserID)
}

func TestAuthMiddleware_ProtectedEndpointRequiresToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)

	router, _ := newAuthRouter(t, mockJWT)

	req := httptest.NewRequest(http.MethodGet, "/v1/bookings/mybookings", nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_ProtectedEndpointResolvesIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockJWT.EXPECT().
		ValidateToken("valid-token", jwt.AccessToken).
		Return(&jwt.Claims{UserID: "user-1", Email: "guest@example.com", Role: constant.RoleUser, TokenID: "tok-1"}, nil)

	router, seenUserID := newAuthRouter(t, mockJWT)

	req := httptest.NewRequest(http.MethodGet, "/v1/bookings/mybookings", nil)
	req.Header.Set(constant.RequestHeaderAuthorization, "Bearer valid-token")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", *seenUserID)
}
