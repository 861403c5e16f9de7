//go:build wireinject
// +build wireinject

package di

import (
	"venue/config"
	"venue/infras/kafka"
	"venue/infras/otel"
	"venue/infras/postgres"
	"venue/infras/redis"
	"venue/infras/s3"
	"venue/shared/cache"
	"venue/transport/http"
	"venue/transport/http/middleware"
	"venue/transport/http/router"

	availabilityRepository "venue/internal/domains/availability/repository"
	availabilityService "venue/internal/domains/availability/service"
	bookingRepository "venue/internal/domains/booking/repository"
	bookingService "venue/internal/domains/booking/service"
	facilityRepository "venue/internal/domains/facility/repository"
	facilityService "venue/internal/domains/facility/service"
	pricingService "venue/internal/domains/pricing/service"

	availabilityHandler "venue/internal/handlers/availability"
	bookingHandler "venue/internal/handlers/booking"
	facilityHandler "venue/internal/handlers/facility"
	pricingHandler "venue/internal/handlers/pricing"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var facilityDomain = wire.NewSet(
	facilityRepository.New,
	facilityService.New,
)

var availabilityDomain = wire.NewSet(
	availabilityRepository.New,
	availabilityService.New,
)

var pricingDomain = wire.NewSet(
	pricingService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var domains = wire.NewSet(
	facilityDomain,
	availabilityDomain,
	pricingDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	facilityHandler.New,
	availabilityHandler.New,
	pricingHandler.New,
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
