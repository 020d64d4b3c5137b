//go:build wireinject
// +build wireinject

package di

import (
	"litrato/config"
	"litrato/infras/jwt"
	"litrato/infras/kafka"
	"litrato/infras/otel"
	"litrato/infras/postgres"
	"litrato/infras/redis"
	"litrato/infras/s3"
	"litrato/internal/domains/availability/schedule"
	"litrato/internal/events"
	"litrato/permissions"
	"litrato/shared/cache"
	"litrato/transport/http"
	"litrato/transport/http/middleware"
	"litrato/transport/http/router"

	"github.com/google/wire"

	authService "litrato/internal/domains/auth/service"
	availabilityRepository "litrato/internal/domains/availability/repository"
	availabilityService "litrato/internal/domains/availability/service"
	bookingRepository "litrato/internal/domains/booking/repository"
	bookingService "litrato/internal/domains/booking/service"
	bookingRequestRepository "litrato/internal/domains/bookingrequest/repository"
	bookingRequestService "litrato/internal/domains/bookingrequest/service"
	packageRepository "litrato/internal/domains/packages/repository"
	packageService "litrato/internal/domains/packages/service"
	userRepository "litrato/internal/domains/user/repository"
	userService "litrato/internal/domains/user/service"
	authHandler "litrato/internal/handlers/auth"
	availabilityHandler "litrato/internal/handlers/availability"
	bookingHandler "litrato/internal/handlers/booking"
	bookingRequestHandler "litrato/internal/handlers/bookingrequest"
	packageHandler "litrato/internal/handlers/packages"
	userHandler "litrato/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
	schedule.NewRules,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	events.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	authService.New,
)

var packageDomain = wire.NewSet(
	packageRepository.New,
	packageService.New,
)

var availabilityDomain = wire.NewSet(
	availabilityRepository.New,
	availabilityService.New,
)

var bookingDomain = wire.NewSet(
	bookingRequestRepository.New,
	bookingRequestService.New,
	bookingRepository.New,
	bookingService.New,
)

var domains = wire.NewSet(
	userDomain,
	packageDomain,
	availabilityDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	packageHandler.New,
	availabilityHandler.New,
	bookingRequestHandler.New,
	bookingHandler.New,
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
