//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"lakeside/config"
	"lakeside/infras/jwt"
	"lakeside/infras/kafka"
	"lakeside/infras/otel"
	"lakeside/infras/postgres"
	"lakeside/infras/redis"
	"lakeside/infras/s3"
	"lakeside/infras/telegram"
	"lakeside/permissions"
	"lakeside/shared/cache"
	"lakeside/transport/http"
	"lakeside/transport/http/middleware"
	"lakeside/transport/http/router"

	authService "lakeside/internal/domains/auth/service"
	bookingRepository "lakeside/internal/domains/booking/repository"
	bookingService "lakeside/internal/domains/booking/service"
	feedbackRepository "lakeside/internal/domains/feedback/repository"
	feedbackService "lakeside/internal/domains/feedback/service"
	galleryRepository "lakeside/internal/domains/gallery/repository"
	galleryService "lakeside/internal/domains/gallery/service"
	roomRepository "lakeside/internal/domains/room/repository"
	roomService "lakeside/internal/domains/room/service"
	userRepository "lakeside/internal/domains/user/repository"
	userService "lakeside/internal/domains/user/service"

	authHandler "lakeside/internal/handlers/auth"
	bookingHandler "lakeside/internal/handlers/booking"
	feedbackHandler "lakeside/internal/handlers/feedback"
	galleryHandler "lakeside/internal/handlers/gallery"
	roomHandler "lakeside/internal/handlers/room"
	userHandler "lakeside/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
	telegram.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomRepository.NewPhoto,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var galleryDomain = wire.NewSet(
	galleryRepository.New,
	galleryService.New,
)

var feedbackDomain = wire.NewSet(
	feedbackRepository.New,
	feedbackService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var domains = wire.NewSet(
	roomDomain,
	bookingDomain,
	galleryDomain,
	feedbackDomain,
	userDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	roomHandler.New,
	bookingHandler.New,
	galleryHandler.New,
	feedbackHandler.New,
	userHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
