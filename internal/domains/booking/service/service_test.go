package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lakeside/config"
	telegramMocks "lakeside/infras/telegram/mocks"
	"lakeside/infras/otel/mocks"
	bookingMocks "lakeside/internal/domains/booking/mocks"
	"lakeside/internal/domains/booking/model"
	"lakeside/internal/domains/booking/model/dto"
	"lakeside/internal/domains/booking/service"
	roomMocks "lakeside/internal/domains/room/mocks"
	roomModel "lakeside/internal/domains/room/model"
	cacheMocks "lakeside/shared/cache/mocks"
	gDto "lakeside/shared/dto"
	"lakeside/shared/failure"
	gModel "lakeside/shared/model"
	"lakeside/shared/timezone"
)

func date(value string) time.Time {
	t, _ := timezone.Parse("2006-01-02", value)

	return t
}

func strPtr(v string) *string {
	return &v
}

func gDtoParams() gDto.QueryParams {
	return gDto.QueryParams{Page: 1, Limit: 10, SortBy: "created_at", SortDir: "DESC"}
}

func validRoom() roomModel.Room {
	return roomModel.Room{
		ID:          "room-1",
		Name:        "Lakeview Suite",
		Price:       12000,
		Capacity:    2,
		IsAvailable: true,
		Metadata:    gModel.Metadata{CreatedAt: timezone.Now(), ModifiedAt: timezone.Now()},
	}
}

func validBooking(status model.Status) model.Booking {
	return model.Booking{
		ID:       "booking-1",
		RoomID:   "room-1",
		UserID:   strPtr("user-1"),
		FullName: "Jane Walker",
		Phone:    "+4915112345678",
		CheckIn:  date("2026-09-01"),
		CheckOut: date("2026-09-04"),
		Status:   status,
		Metadata: gModel.Metadata{CreatedAt: timezone.Now(), ModifiedAt: timezone.Now()},
	}
}

// runLocked makes WithRoomLock run the callback with a nil tx, so the
// locked section executes against the other mocks.
func runLocked(_ context.Context, _ string, fn func(*sqlx.Tx) error) error {
	return fn(nil)
}

func TestBookingService_IsAvailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockNotifier := telegramMocks.NewMockNotifier(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockRoomRepo, cfg, mockCache, mockOtel, mockNotifier, nil)

	tests := []struct {
		name      string
		checkIn   time.Time
		checkOut  time.Time
		setupMock func()
		want      bool
		wantCode  int
	}{
		{
			name:     "room is free",
			checkIn:  date("2026-09-01"),
			checkOut: date("2026-09-04"),
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					ExistOverlapping(gomock.Any(), nil, "room-1", date("2026-09-01"), date("2026-09-04"), "").
					Return(false, nil)
			},
			want: true,
		},
		{
			name:     "room has a confirmed overlap",
			checkIn:  date("2026-09-01"),
			checkOut: date("2026-09-04"),
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					ExistOverlapping(gomock.Any(), nil, "room-1", date("2026-09-01"), date("2026-09-04"), "").
					Return(true, nil)
			},
			want: false,
		},
		{
			name:      "inverted range",
			checkIn:   date("2026-09-04"),
			checkOut:  date("2026-09-01"),
			setupMock: func() {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "equal dates",
			checkIn:   date("2026-09-01"),
			checkOut:  date("2026-09-01"),
			setupMock: func() {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:     "room does not exist",
			checkIn:  date("2026-09-01"),
			checkOut: date("2026-09-04"),
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			got, err := svc.IsAvailable(context.Background(), "room-1", tt.checkIn, tt.checkOut)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBookingService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockNotifier := telegramMocks.NewMockNotifier(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockRoomRepo, cfg, mockCache, mockOtel, mockNotifier, nil)

	validReq := dto.CreateBookingRequest{
		RoomID:   "room-1",
		FullName: "Jane Walker",
		Phone:    "+4915112345678",
		CheckIn:  "2026-09-01",
		CheckOut: "2026-09-04",
	}

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func()
		wantCode  int
	}{
		{
			name: "successful booking",
			req:  validReq,
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validRoom(), nil)

				mockRepo.EXPECT().
					WithRoomLock(gomock.Any(), "room-1", gomock.Any()).
					DoAndReturn(runLocked)

				mockRepo.EXPECT().
					ExistOverlapping(gomock.Any(), gomock.Any(), "room-1", gomock.Any(), gomock.Any(), "").
					Return(false, nil)

				mockRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				mockNotifier.EXPECT().SendHTML(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "dates already taken",
			req:  validReq,
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validRoom(), nil)

				mockRepo.EXPECT().
					WithRoomLock(gomock.Any(), "room-1", gomock.Any()).
					DoAndReturn(runLocked)

				mockRepo.EXPECT().
					ExistOverlapping(gomock.Any(), gomock.Any(), "room-1", gomock.Any(), gomock.Any(), "").
					Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "booking on the checkout boundary succeeds",
			req: dto.CreateBookingRequest{
				RoomID:   "room-1",
				FullName: "Jane Walker",
				Phone:    "+4915112345678",
				CheckIn:  "2026-09-04",
				CheckOut: "2026-09-06",
			},
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validRoom(), nil)

				mockRepo.EXPECT().
					WithRoomLock(gomock.Any(), "room-1", gomock.Any()).
					DoAndReturn(runLocked)

				mockRepo.EXPECT().
					ExistOverlapping(gomock.Any(), gomock.Any(), "room-1", date("2026-09-04"), date("2026-09-06"), "").
					Return(false, nil)

				mockRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				mockNotifier.EXPECT().SendHTML(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "inverted date range",
			req: dto.CreateBookingRequest{
				RoomID:   "room-1",
				FullName: "Jane Walker",
				Phone:    "+4915112345678",
				CheckIn:  "2026-09-04",
				CheckOut: "2026-09-01",
			},
			setupMock: func() {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "room does not exist",
			req:  validReq,
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "room not open for booking",
			req:  validReq,
			setupMock: func() {
				closedRoom := validRoom()
				closedRoom.IsAvailable = false

				mockRoomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(closedRoom, nil)
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Create(context.Background(), service.Actor{UserID: "user-1"}, tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, model.StatusPending.String(), res.Status)
		})
	}
}

func TestBookingService_Confirm(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockNotifier := telegramMocks.NewMockNotifier(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockRoomRepo, cfg, mockCache, mockOtel, mockNotifier, nil)

	admin := service.Actor{UserID: "admin-1", Admin: true}

	tests := []struct {
		name      string
		actor     service.Actor
		setupMock func()
		wantCode  int
	}{
		{
			name:  "pending booking confirmed",
			actor: admin,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validBooking(model.StatusPending), nil)

				mockRepo.EXPECT().
					WithRoomLock(gomock.Any(), "room-1", gomock.Any()).
					DoAndReturn(runLocked)

				mockRepo.EXPECT().
					ExistOverlapping(gomock.Any(), gomock.Any(), "room-1", gomock.Any(), gomock.Any(), "booking-1").
					Return(false, nil)

				mockRepo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

				mockNotifier.EXPECT().
					SendHTML(gomock.Any(), gomock.Any()).
					Return(nil).
					Times(1)
			},
		},
		{
			name:  "confirming a confirmed booking is a silent no-op",
			actor: admin,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validBooking(model.StatusConfirmed), nil)
			},
		},
		{
			name:  "confirming a cancelled booking is rejected",
			actor: admin,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validBooking(model.StatusCancelled), nil)
			},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name:  "dates got taken before confirmation",
			actor: admin,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validBooking(model.StatusPending), nil)

				mockRepo.EXPECT().
					WithRoomLock(gomock.Any(), "room-1", gomock.Any()).
					DoAndReturn(runLocked)

				mockRepo.EXPECT().
					ExistOverlapping(gomock.Any(), gomock.Any(), "room-1", gomock.Any(), gomock.Any(), "booking-1").
					Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name:      "non-admin cannot confirm",
			actor:     service.Actor{UserID: "user-1"},
			setupMock: func() {},
			wantCode:  http.StatusForbidden,
		},
		{
			name:  "booking not found",
			actor: admin,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Confirm(context.Background(), tt.actor, "booking-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestBookingService_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockNotifier := telegramMocks.NewMockNotifier(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockRoomRepo, cfg, mockCache, mockOtel, mockNotifier, nil)

	tests := []struct {
		name      string
		actor     service.Actor
		setupMock func()
		wantCode  int
	}{
		{
			name:  "owner cancels own booking",
			actor: service.Actor{UserID: "user-1"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validBooking(model.StatusConfirmed), nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name:  "admin cancels any booking",
			actor: service.Actor{UserID: "admin-1", Admin: true},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validBooking(model.StatusPending), nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name:  "cancelling a cancelled booking is a no-op",
			actor: service.Actor{UserID: "user-1"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validBooking(model.StatusCancelled), nil)
			},
		},
		{
			name:  "stranger cannot cancel",
			actor: service.Actor{UserID: "user-2"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validBooking(model.StatusPending), nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:  "booking not found",
			actor: service.Actor{UserID: "user-1"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Cancel(context.Background(), tt.actor, "booking-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestBookingService_AdminSetStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockNotifier := telegramMocks.NewMockNotifier(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockRoomRepo, cfg, mockCache, mockOtel, mockNotifier, nil)

	admin := service.Actor{UserID: "admin-1", Admin: true}

	tests := []struct {
		name      string
		actor     service.Actor
		target    model.Status
		setupMock func()
		wantCode  int
	}{
		{
			name:   "override cancelled back to confirmed re-checks availability",
			actor:  admin,
			target: model.StatusConfirmed,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validBooking(model.StatusCancelled), nil)

				mockRepo.EXPECT().
					WithRoomLock(gomock.Any(), "room-1", gomock.Any()).
					DoAndReturn(runLocked)

				mockRepo.EXPECT().
					ExistOverlapping(gomock.Any(), gomock.Any(), "room-1", gomock.Any(), gomock.Any(), "booking-1").
					Return(false, nil)

				mockRepo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				mockNotifier.EXPECT().SendHTML(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name:   "override to confirmed fails when dates taken",
			actor:  admin,
			target: model.StatusConfirmed,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validBooking(model.StatusCancelled), nil)

				mockRepo.EXPECT().
					WithRoomLock(gomock.Any(), "room-1", gomock.Any()).
					DoAndReturn(runLocked)

				mockRepo.EXPECT().
					ExistOverlapping(gomock.Any(), gomock.Any(), "room-1", gomock.Any(), gomock.Any(), "booking-1").
					Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name:   "override confirmed back to pending",
			actor:  admin,
			target: model.StatusPending,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validBooking(model.StatusConfirmed), nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name:      "same status is a no-op",
			actor:     admin,
			target:    model.StatusPending,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validBooking(model.StatusPending), nil)
			},
		},
		{
			name:      "unknown status",
			actor:     admin,
			target:    model.Status("archived"),
			setupMock: func() {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "non-admin is rejected",
			actor:     service.Actor{UserID: "user-1"},
			target:    model.StatusConfirmed,
			setupMock: func() {},
			wantCode:  http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.AdminSetStatus(context.Background(), tt.actor, "booking-1", tt.target)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestBookingService_GetMine(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockNotifier := telegramMocks.NewMockNotifier(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockRoomRepo, cfg, mockCache, mockOtel, mockNotifier, nil)

	t.Run("requires a logged in user", func(t *testing.T) {
		_, err := svc.GetMine(context.Background(), service.Actor{}, gDtoParams())

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("lists only own bookings", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss")).
			Times(2)

		mockRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(1, nil)

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{validBooking(model.StatusPending)}, nil)

		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.GetMine(context.Background(), service.Actor{UserID: "user-1"}, gDtoParams())

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Len(t, res.Bookings, 1)
		assert.Equal(t, "user-1", res.Bookings[0].UserID)
	})
}
