package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lakeside/config"
	"lakeside/infras/otel/mocks"
	s3Mocks "lakeside/infras/s3/mocks"
	roomMocks "lakeside/internal/domains/room/mocks"
	"lakeside/internal/domains/room/model"
	"lakeside/internal/domains/room/model/dto"
	"lakeside/internal/domains/room/service"
	cacheMocks "lakeside/shared/cache/mocks"
	"lakeside/shared/constant"
	"lakeside/shared/failure"
	gModel "lakeside/shared/model"
	"lakeside/shared/timezone"
)

func testRoom() model.Room {
	return model.Room{
		ID:          "room-1",
		Name:        "Lakeview Suite",
		Description: "Corner suite overlooking the lake",
		Price:       250000,
		Capacity:    2,
		Amenities:   "wifi,minibar",
		Image:       "https://cdn.example.com/lakeside/room/cover.jpg",
		IsAvailable: true,
		Metadata:    gModel.Metadata{CreatedAt: timezone.Now(), ModifiedAt: timezone.Now()},
	}
}

func testPhoto() model.RoomPhoto {
	return model.RoomPhoto{
		ID:        "photo-1",
		RoomID:    "room-1",
		URL:       "https://cdn.example.com/lakeside/room_photo/view.jpg",
		SortOrder: 1,
		Metadata:  gModel.Metadata{CreatedAt: timezone.Now(), ModifiedAt: timezone.Now()},
	}
}

func TestRoomService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockPhotoRepo := roomMocks.NewMockPhoto(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockS3 := s3Mocks.NewMockS3(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "lakeside-media"

	svc := service.New(mockRepo, mockPhotoRepo, cfg, mockCache, mockOtel, mockS3)

	tests := []struct {
		name      string
		req       dto.CreateRoomRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful creation without image",
			req: dto.CreateRoomRequest{
				Name:  "Lakeview Suite",
				Price: 250000,
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "successful creation with image upload",
			req: dto.CreateRoomRequest{
				Name:  "Garden Room",
				Price: 180000,
				Image: &multipart.FileHeader{Filename: "cover.jpg"},
			},
			setupMock: func() {
				mockS3.EXPECT().
					UploadFile(gomock.Any(), "lakeside-media", model.EntityName, gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://cdn.example.com/lakeside/room/cover.jpg", nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "upload failure",
			req: dto.CreateRoomRequest{
				Name:  "Garden Room",
				Price: 180000,
				Image: &multipart.FileHeader{Filename: "cover.jpg"},
			},
			setupMock: func() {
				mockS3.EXPECT().
					UploadFile(gomock.Any(), "lakeside-media", model.EntityName, gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", errors.New("s3 unavailable"))
			},
			wantErr: true,
		},
		{
			name: "insert failure removes uploaded image",
			req: dto.CreateRoomRequest{
				Name:  "Garden Room",
				Price: 180000,
				Image: &multipart.FileHeader{Filename: "cover.jpg"},
			},
			setupMock: func() {
				mockS3.EXPECT().
					UploadFile(gomock.Any(), "lakeside-media", model.EntityName, gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://cdn.example.com/lakeside/room/cover.jpg", nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))

				mockS3.EXPECT().
					DeleteFile(gomock.Any(), "lakeside-media", model.EntityName, gomock.Any()).
					Return(nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Create(ctx, tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockPhotoRepo := roomMocks.NewMockPhoto(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockS3 := s3Mocks.NewMockS3(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockPhotoRepo, cfg, mockCache, mockOtel, mockS3)

	t.Run("found with photos", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testRoom(), nil)

		mockPhotoRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.RoomPhoto{testPhoto()}, nil)

		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Get(context.Background(), "room-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, "room-1", res.ID)
		assert.Len(t, res.Photos, 1)
	})

	t.Run("not found", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Room{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRoomService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockPhotoRepo := roomMocks.NewMockPhoto(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockS3 := s3Mocks.NewMockS3(ctrl)

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockPhotoRepo, cfg, mockCache, mockOtel, mockS3)

	t.Run("successful deletion", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		mockCache.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		mockCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		err := svc.Delete(context.Background(), "room-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("room not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Delete(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRoomService_AddPhoto(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockPhotoRepo := roomMocks.NewMockPhoto(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockS3 := s3Mocks.NewMockS3(ctrl)

	cfg := &config.Config{}
	cfg.External.S3.BucketName = "lakeside-media"

	svc := service.New(mockRepo, mockPhotoRepo, cfg, mockCache, mockOtel, mockS3)

	tests := []struct {
		name      string
		req       dto.AddPhotoRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful add from url",
			req: dto.AddPhotoRequest{
				URL:       "https://cdn.example.com/lakeside/room_photo/view.jpg",
				SortOrder: 1,
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockPhotoRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name:      "neither url nor image",
			req:       dto.AddPhotoRequest{SortOrder: 1},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "room not found",
			req: dto.AddPhotoRequest{
				URL: "https://cdn.example.com/lakeside/room_photo/view.jpg",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.AddPhoto(ctx, "room-1", tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomService_DeletePhoto(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockPhotoRepo := roomMocks.NewMockPhoto(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockS3 := s3Mocks.NewMockS3(ctrl)

	cfg := &config.Config{}
	cfg.External.S3.BucketName = "lakeside-media"

	svc := service.New(mockRepo, mockPhotoRepo, cfg, mockCache, mockOtel, mockS3)

	t.Run("successful deletion removes stored object", func(t *testing.T) {
		photo := testPhoto()

		mockPhotoRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(photo, nil)

		mockPhotoRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		mockS3.EXPECT().
			GetObjectNameFromURL("lakeside-media", photo.URL).
			Return("view.jpg")

		mockS3.EXPECT().
			DeleteFile(gomock.Any(), "lakeside-media", model.PhotoEntityName, "view.jpg").
			Return(nil)

		mockCache.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		mockCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		err := svc.DeletePhoto(context.Background(), "room-1", "photo-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("photo belongs to another room", func(t *testing.T) {
		mockPhotoRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testPhoto(), nil)

		err := svc.DeletePhoto(context.Background(), "room-2", "photo-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
