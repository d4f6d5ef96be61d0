//go:build wireinject
// +build wireinject

package di

import (
	"cowork/config"
	"cowork/infras/invoice"
	"cowork/infras/jwt"
	"cowork/infras/kafka"
	"cowork/infras/mailer"
	"cowork/infras/otel"
	"cowork/infras/postgres"
	"cowork/infras/redis"
	"cowork/infras/s3"
	"cowork/internal/jobs"
	"cowork/permissions"
	"cowork/shared/cache"
	"cowork/transport/http"
	"cowork/transport/http/middleware"
	"cowork/transport/http/router"
	"cowork/transport/worker"

	"github.com/google/wire"

	authService "cowork/internal/domains/auth/service"
	bookingRepository "cowork/internal/domains/booking/repository"
	bookingService "cowork/internal/domains/booking/service"
	cafeteriaRepository "cowork/internal/domains/cafeteria/repository"
	cafeteriaService "cowork/internal/domains/cafeteria/service"
	invoiceService "cowork/internal/domains/invoice/service"
	kycRepository "cowork/internal/domains/kyc/repository"
	kycService "cowork/internal/domains/kyc/service"
	meetingRoomRepository "cowork/internal/domains/meetingroom/repository"
	meetingRoomService "cowork/internal/domains/meetingroom/service"
	notificationService "cowork/internal/domains/notification/service"
	spaceRepository "cowork/internal/domains/space/repository"
	spaceService "cowork/internal/domains/space/service"
	teamMemberRepository "cowork/internal/domains/teammember/repository"
	teamMemberService "cowork/internal/domains/teammember/service"
	userRepository "cowork/internal/domains/user/repository"
	userService "cowork/internal/domains/user/service"

	authHandler "cowork/internal/handlers/auth"
	bookingHandler "cowork/internal/handlers/booking"
	cafeteriaHandler "cowork/internal/handlers/cafeteria"
	invoiceHandler "cowork/internal/handlers/invoice"
	kycHandler "cowork/internal/handlers/kyc"
	meetingRoomHandler "cowork/internal/handlers/meetingroom"
	spaceHandler "cowork/internal/handlers/space"
	teamMemberHandler "cowork/internal/handlers/teammember"
	userHandler "cowork/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
)

var messaging = wire.NewSet(
	kafka.New,
	mailer.New,
	notificationService.New,
)

var middlewares = wire.NewSet(
	permissions.Get,
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var repositories = wire.NewSet(
	userRepository.New,
	kycRepository.New,
	spaceRepository.New,
	bookingRepository.New,
	teamMemberRepository.New,
	meetingRoomRepository.NewMeetingRoom,
	meetingRoomRepository.NewRoomBooking,
	cafeteriaRepository.New,
)

var domains = wire.NewSet(
	repositories,
	authService.New,
	userService.New,
	kycService.New,
	spaceService.New,
	bookingService.New,
	teamMemberService.New,
	meetingRoomService.New,
	cafeteriaService.New,
	invoice.New,
	invoiceService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	spaceHandler.New,
	bookingHandler.New,
	kycHandler.New,
	teamMemberHandler.New,
	meetingRoomHandler.New,
	cafeteriaHandler.New,
	invoiceHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		messaging,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeScheduler() *jobs.Scheduler {
	wire.Build(
		configurations,
		postgres.New,
		otel.New,
		redis.New,
		sharedHelpers,
		bookingRepository.New,
		spaceRepository.New,
		jobs.New,
	)

	return &jobs.Scheduler{}
}

func InitializeWorker() *worker.Worker {
	wire.Build(
		configurations,
		otel.New,
		messaging,
		worker.New,
	)

	return &worker.Worker{}
}
