package integration_test

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/bus-booking-system/api"
	"github.com/metinatakli/bus-booking-system/internal/app"
	"github.com/metinatakli/bus-booking-system/internal/mailer"
	"github.com/metinatakli/bus-booking-system/internal/payment"
	"github.com/metinatakli/bus-booking-system/internal/policy"
	"github.com/metinatakli/bus-booking-system/internal/realtime"
	"github.com/metinatakli/bus-booking-system/internal/repository"
	"github.com/metinatakli/bus-booking-system/internal/reservation"
	appvalidator "github.com/metinatakli/bus-booking-system/internal/validator"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App         *app.Application
	DB          *pgxpool.Pool
	Redis       *redis.Client
	Mailer      *mailer.MockMailer
	Provider    *payment.MockPaymentProvider
	Coordinator *reservation.Coordinator
	Hub         *realtime.Hub
	UserRepo    *repository.PostgesUserRepository

	cancel context.CancelFunc
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()
	mailer := mailer.NewMockMailer()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	sessionManager := app.NewSessionManager(redisClient)

	userRepo := repository.NewPostgresUserRepository(db)
	scheduleRepo := repository.NewPostgresScheduleRepository(db)
	seatRepo := repository.NewPostgresSeatRepository(db)
	paymentRepo := repository.NewPostgresPaymentRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)

	paymentProvider := payment.NewMockPaymentProvider()

	hub := realtime.NewHub(logger)
	broadcaster := realtime.NewRedisBroadcaster(redisClient, hub, logger)
	holds := reservation.NewRedisHoldStore(redisClient, time.Now)

	coordinator, err := reservation.NewCoordinator(
		reservation.Config{
			HoldWindow:      cfg.Reservation.HoldWindow,
			MaxSeatsPerHold: cfg.Reservation.MaxSeatsPerHold,
			CommitGrace:     cfg.Reservation.CommitGrace,
		},
		holds,
		seatRepo,
		bookingRepo,
		broadcaster,
		logger,
	)
	if err != nil {
		db.Close()
		redisClient.Close()
		return nil, err
	}

	authorizer, err := policy.NewRegoAuthorizer(context.Background())
	if err != nil {
		db.Close()
		redisClient.Close()
		return nil, err
	}

	swagger, err := api.GetSwagger()
	if err != nil {
		db.Close()
		redisClient.Close()
		return nil, err
	}

	application := app.NewApp(cfg, app.Deps{
		Logger:          logger,
		DB:              db,
		Redis:           redisClient,
		Validator:       validator,
		Mailer:          mailer,
		SessionManager:  sessionManager,
		UserRepo:        userRepo,
		ScheduleRepo:    scheduleRepo,
		SeatRepo:        seatRepo,
		PaymentRepo:     paymentRepo,
		BookingRepo:     bookingRepo,
		PaymentProvider: paymentProvider,
		Coordinator:     coordinator,
		Hub:             hub,
		Authorizer:      authorizer,
		Swagger:         swagger,
	})

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		if err := broadcaster.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("seat event relay stopped", "error", err)
		}
	}()

	return &TestApp{
		App:         application,
		DB:          db,
		Redis:       redisClient,
		Mailer:      mailer,
		Provider:    paymentProvider,
		Coordinator: coordinator,
		Hub:         hub,
		UserRepo:    userRepo,
		cancel:      cancel,
	}, nil
}

func (a *TestApp) Close() {
	a.cancel()
	a.Redis.Close()
	a.DB.Close()
}
