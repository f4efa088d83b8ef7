//go:build wireinject
// +build wireinject

package di

import (
	"rental/config"
	"rental/infras/jwt"
	"rental/infras/kafka"
	"rental/infras/otel"
	"rental/infras/postgres"
	"rental/infras/redis"
	"rental/infras/s3"
	authService "rental/internal/domains/auth/service"
	bookingRepository "rental/internal/domains/booking/repository"
	bookingService "rental/internal/domains/booking/service"
	documentRepository "rental/internal/domains/document/repository"
	documentService "rental/internal/domains/document/service"
	expenseRepository "rental/internal/domains/expense/repository"
	expenseService "rental/internal/domains/expense/service"
	galleryRepository "rental/internal/domains/gallery/repository"
	galleryService "rental/internal/domains/gallery/service"
	pricingRepository "rental/internal/domains/pricing/repository"
	pricingService "rental/internal/domains/pricing/service"
	profitRepository "rental/internal/domains/profit/repository"
	profitService "rental/internal/domains/profit/service"
	reportService "rental/internal/domains/report/service"
	unitRepository "rental/internal/domains/unit/repository"
	unitService "rental/internal/domains/unit/service"
	userRepository "rental/internal/domains/user/repository"
	userService "rental/internal/domains/user/service"
	authHandler "rental/internal/handlers/auth"
	bookingHandler "rental/internal/handlers/booking"
	documentHandler "rental/internal/handlers/document"
	expenseHandler "rental/internal/handlers/expense"
	galleryHandler "rental/internal/handlers/gallery"
	pricingHandler "rental/internal/handlers/pricing"
	profitHandler "rental/internal/handlers/profit"
	reportHandler "rental/internal/handlers/report"
	unitHandler "rental/internal/handlers/unit"
	userHandler "rental/internal/handlers/user"
	"rental/permissions"
	"rental/shared/cache"
	"rental/transport/http"
	"rental/transport/http/middleware"
	"rental/transport/http/router"

	"github.com/google/wire"
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
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var userDomain = wire.NewSet(
	userService.New,
)

var unitDomain = wire.NewSet(
	unitRepository.New,
	unitService.New,
	galleryRepository.New,
	galleryService.New,
)

var pricingDomain = wire.NewSet(
	pricingRepository.NewWeekday,
	pricingRepository.NewSpecial,
	pricingRepository.NewHoliday,
	pricingService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var accountingDomain = wire.NewSet(
	expenseRepository.New,
	expenseService.New,
	profitRepository.New,
	profitService.New,
	reportService.New,
	documentRepository.New,
	documentService.New,
)

var domains = wire.NewSet(
	authDomain,
	userDomain,
	unitDomain,
	pricingDomain,
	bookingDomain,
	accountingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	unitHandler.New,
	galleryHandler.New,
	pricingHandler.New,
	bookingHandler.New,
	expenseHandler.New,
	profitHandler.New,
	reportHandler.New,
	documentHandler.New,
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
