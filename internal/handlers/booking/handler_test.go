package booking_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lakeside/config"
	"lakeside/infras/jwt"
	jwtMocks "lakeside/infras/jwt/mocks"
	"lakeside/infras/otel/mocks"
	telegramMocks "lakeside/infras/telegram/mocks"
	bookingMocks "lakeside/internal/domains/booking/mocks"
	"lakeside/internal/domains/booking/model"
	"lakeside/internal/domains/booking/model/dto"
	"lakeside/internal/domains/booking/service"
	roomMocks "lakeside/internal/domains/room/mocks"
	roomModel "lakeside/internal/domains/room/model"
	bookingHandler "lakeside/internal/handlers/booking"
	"lakeside/permissions"
	cacheMocks "lakeside/shared/cache/mocks"
	"lakeside/shared/constant"
	"lakeside/transport/http/middleware"
)

// runLocked makes WithRoomLock run the callback with a nil tx, so the
// locked section executes against the other mocks.
func runLocked(_ context.Context, _ string, fn func(*sqlx.Tx) error) error {
	return fn(nil)
}

// TestBookingHandler_LoggedInCallerOwnsAndCancelsBooking drives the full
// request path, auth middleware included. A caller creating a booking with a
// valid bearer token must end up as its owner, and that owner must then be
// able to cancel it.
func TestBookingHandler_LoggedInCallerOwnsAndCancelsBooking(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockNotifier := telegramMocks.NewMockNotifier(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockRoomRepo, cfg, mockCache, mockOtel, mockNotifier, nil)
	handler := bookingHandler.New(svc, mockOtel)

	authRole := middleware.NewAuthRoleMiddleware(mockJWT, mocks.NewOtel(), permissions.Get(), cfg)

	router := chi.NewRouter()
	router.Use(authRole.Auth)
	router.Use(authRole.RBAC)
	router.Route("/v1", func(routerGroup chi.Router) {
		handler.Router(routerGroup)
	})

	mockJWT.EXPECT().
		ValidateToken("valid-token", jwt.AccessToken).
		Return(&jwt.Claims{UserID: "user-1", Email: "jane@example.com", Role: constant.RoleUser, TokenID: "tok-1"}, nil).
		Times(2)

	mockRoomRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(roomModel.Room{ID: "room-1", Name: "Lakeview Suite", IsAvailable: true}, nil)

	mockRepo.EXPECT().
		WithRoomLock(gomock.Any(), "room-1", gomock.Any()).
		DoAndReturn(runLocked)

	mockRepo.EXPECT().
		ExistOverlapping(gomock.Any(), gomock.Any(), "room-1", gomock.Any(), gomock.Any(), "").
		Return(false, nil)

	var created model.Booking

	mockRepo.EXPECT().
		InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking model.Booking) error {
			created = booking

			return nil
		})

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockNotifier.EXPECT().SendHTML(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	body, err := json.Marshal(dto.CreateBookingRequest{
		RoomID:   "room-1",
		FullName: "Jane Walker",
		Phone:    "+6281234567890",
		Email:    "jane@example.com",
		CheckIn:  "2026-09-10",
		CheckOut: "2026-09-12",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(constant.RequestHeaderAuthorization, "Bearer valid-token")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	time.Sleep(10 * time.Millisecond)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, created.UserID)
	assert.Equal(t, "user-1", *created.UserID)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(created, nil)

	mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	cancelReq := httptest.NewRequest(http.MethodPost, "/v1/bookings/"+created.ID+"/cancel", nil)
	cancelReq.Header.Set(constant.RequestHeaderAuthorization, "Bearer valid-token")

	cancelRec := httptest.NewRecorder()
	router.ServeHTTP(cancelRec, cancelReq)

	time.Sleep(10 * time.Millisecond)

	assert.Equal(t, http.StatusOK, cancelRec.Code)
}

// TestBookingHandler_StrangerCannotCancelOwnedBooking is the flip side: a
// different non-admin caller must be rejected when cancelling someone else's
// booking.
func TestBookingHandler_StrangerCannotCancelOwnedBooking(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockNotifier := telegramMocks.NewMockNotifier(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockRoomRepo, cfg, mockCache, mockOtel, mockNotifier, nil)
	handler := bookingHandler.New(svc, mockOtel)

	authRole := middleware.NewAuthRoleMiddleware(mockJWT, mocks.NewOtel(), permissions.Get(), cfg)

	router := chi.NewRouter()
	router.Use(authRole.Auth)
	router.Use(authRole.RBAC)
	router.Route("/v1", func(routerGroup chi.Router) {
		handler.Router(routerGroup)
	})

	mockJWT.EXPECT().
		ValidateToken("other-token", jwt.AccessToken).
		Return(&jwt.Claims{UserID: "user-2", Email: "rival@example.com", Role: constant.RoleUser, TokenID: "tok-2"}, nil)

	owner := "user-1"
	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Booking{ID: "booking-1", RoomID: "room-1", UserID: &owner, Status: model.StatusPending}, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/bookings/booking-1/cancel", nil)
	req.Header.Set(constant.RequestHeaderAuthorization, "Bearer other-token")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
