package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/exaring/otelpgx"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/metinatakli/bus-booking-system/api"
	"github.com/metinatakli/bus-booking-system/internal/domain"
	"github.com/metinatakli/bus-booking-system/internal/mailer"
	"github.com/metinatakli/bus-booking-system/internal/payment"
	"github.com/metinatakli/bus-booking-system/internal/policy"
	"github.com/metinatakli/bus-booking-system/internal/queue"
	"github.com/metinatakli/bus-booking-system/internal/realtime"
	"github.com/metinatakli/bus-booking-system/internal/repository"
	"github.com/metinatakli/bus-booking-system/internal/reservation"
	appvalidator "github.com/metinatakli/bus-booking-system/internal/validator"
	"github.com/metinatakli/bus-booking-system/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stripe/stripe-go/v82"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const serviceName = "bus-booking-api"

var (
	version = vcs.Version()
)

type Application struct {
	config         Config
	logger         *slog.Logger
	db             *pgxpool.Pool
	redis          redis.UniversalClient
	validator      *validator.Validate
	mailer         mailer.Mailer
	sessionManager *scs.SessionManager
	swagger        *openapi3.T

	userRepo     domain.UserRepository
	scheduleRepo domain.ScheduleRepository
	seatRepo     domain.SeatRepository
	paymentRepo  domain.PaymentRepository
	bookingRepo  domain.BookingRepository

	paymentProvider domain.PaymentProvider
	coordinator     *reservation.Coordinator
	hub             *realtime.Hub
	notifier        domain.BookingNotifier
	authorizer      policy.Authorizer

	wg sync.WaitGroup
}

type Config struct {
	Port             int
	Env              string
	OtelCollectorUrl string
	MigrationsPath   string
	Currency         string
	PaymentProvider  string
	DB               DBConfig
	Redis            RedisConfig
	SMTP             SMTPConfig
	Stripe           StripeConfig
	AMQP             AMQPConfig
	Reservation      ReservationConfig
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	SuccessUrl    string
	FailureUrl    string
}

type AMQPConfig struct {
	URL string
}

type ReservationConfig struct {
	Store           string
	HoldWindow      time.Duration
	MaxSeatsPerHold int
	CommitGrace     time.Duration
	SweepInterval   time.Duration
}

// Deps are the collaborators of an Application. A nil Notifier sends
// confirmations in process.
type Deps struct {
	Logger          *slog.Logger
	DB              *pgxpool.Pool
	Redis           redis.UniversalClient
	Validator       *validator.Validate
	Mailer          mailer.Mailer
	SessionManager  *scs.SessionManager
	UserRepo        domain.UserRepository
	ScheduleRepo    domain.ScheduleRepository
	SeatRepo        domain.SeatRepository
	PaymentRepo     domain.PaymentRepository
	BookingRepo     domain.BookingRepository
	PaymentProvider domain.PaymentProvider
	Coordinator     *reservation.Coordinator
	Hub             *realtime.Hub
	Notifier        domain.BookingNotifier
	Authorizer      policy.Authorizer
	Swagger         *openapi3.T
}

func NewApp(cfg Config, deps Deps) *Application {
	app := &Application{
		config:          cfg,
		logger:          deps.Logger,
		db:              deps.DB,
		redis:           deps.Redis,
		validator:       deps.Validator,
		mailer:          deps.Mailer,
		sessionManager:  deps.SessionManager,
		swagger:         deps.Swagger,
		userRepo:        deps.UserRepo,
		scheduleRepo:    deps.ScheduleRepo,
		seatRepo:        deps.SeatRepo,
		paymentRepo:     deps.PaymentRepo,
		bookingRepo:     deps.BookingRepo,
		paymentProvider: deps.PaymentProvider,
		coordinator:     deps.Coordinator,
		hub:             deps.Hub,
		notifier:        deps.Notifier,
		authorizer:      deps.Authorizer,
	}

	if app.notifier == nil {
		app.notifier = queue.NewDirectNotifier(app.sendBookingConfirmation)
	}

	return app
}

func parseFlags() (Config, bool) {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", envInt("PORT", 3000), "server port")
	flag.StringVar(&cfg.Env, "env", env("ENV", "dev"), "Environment (dev|staging|prod)")
	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", env("OTEL_COLLECTOR_URL", ""), "OpenTelemetry collector gRPC endpoint")
	flag.StringVar(&cfg.MigrationsPath, "migrations", env("MIGRATIONS_PATH", ""), "Apply migrations from this source URL on startup (e.g. file://migrations)")
	flag.StringVar(&cfg.Currency, "currency", env("CURRENCY", "usd"), "Currency of fares")
	flag.StringVar(&cfg.PaymentProvider, "payment-provider", env("PAYMENT_PROVIDER", "stripe"), "Payment provider (stripe|mock)")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", env("DB_DSN", ""), "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", envInt("DB_MAX_OPEN_CONNS", 25), "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", envDuration("DB_MAX_IDLE_TIME", 15*time.Minute), "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.Redis.URL, "redis-url", env("REDIS_URL", ""), "Redis URL")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", envInt("REDIS_MAX_OPEN_CONNS", 25), "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", envInt("REDIS_MAX_IDLE_CONNS", 10), "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", envDuration("REDIS_MAX_IDLE_TIME", 2*time.Minute), "Redis max idle time for connections")

	flag.StringVar(&cfg.SMTP.Host, "smtp-host", env("SMTP_HOST", "sandbox.smtp.mailtrap.io"), "SMTP host")
	flag.IntVar(&cfg.SMTP.Port, "smtp-port", envInt("SMTP_PORT", 2525), "SMTP port")
	flag.StringVar(&cfg.SMTP.Username, "smtp-username", env("SMTP_USERNAME", ""), "SMTP username")
	flag.StringVar(&cfg.SMTP.Password, "smtp-password", env("SMTP_PASSWORD", ""), "SMTP password")
	flag.StringVar(&cfg.SMTP.Sender, "smtp-sender", env("SMTP_SENDER", "BusGo <no-reply@busgo.metinatakli.net>"), "SMTP sender")

	flag.StringVar(&cfg.Stripe.SecretKey, "stripe-key", env("STRIPE_KEY", ""), "Stripe secret key")
	flag.StringVar(&cfg.Stripe.WebhookSecret, "stripe-webhook-secret", env("STRIPE_WEBHOOK_SECRET", ""), "Stripe webhook secret")
	flag.StringVar(&cfg.Stripe.SuccessUrl, "stripe-success-url", env("STRIPE_SUCCESS_URL", "https://example.com/success.html"), "Stripe payment success page")
	flag.StringVar(&cfg.Stripe.FailureUrl, "stripe-failure-url", env("STRIPE_FAILURE_URL", "https://example.com/failure.html"), "Stripe payment failure page")

	flag.StringVar(&cfg.AMQP.URL, "amqp-url", env("AMQP_URL", ""), "RabbitMQ URL; confirmations are handled in process when empty")

	flag.StringVar(&cfg.Reservation.Store, "hold-store", env("HOLD_STORE", "redis"), "Seat hold store (redis|memory)")
	flag.DurationVar(&cfg.Reservation.HoldWindow, "hold-window", envDuration("HOLD_WINDOW", reservation.DefaultHoldWindow), "How long selected seats stay held")
	flag.IntVar(&cfg.Reservation.MaxSeatsPerHold, "max-passengers", envInt("MAX_PASSENGERS", reservation.DefaultMaxSeatsPerHold), "Max seats one session can hold on a schedule")
	flag.DurationVar(&cfg.Reservation.CommitGrace, "commit-grace", envDuration("COMMIT_GRACE", reservation.DefaultCommitGrace), "How long a hold is kept alive while its booking is written")
	flag.DurationVar(&cfg.Reservation.SweepInterval, "sweep-interval", envDuration("SWEEP_INTERVAL", 5*time.Second), "Interval of the expired hold sweeper")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	return cfg, *displayVersion
}

func Run() error {
	// a missing .env is fine, flags and the real environment still apply
	_ = godotenv.Load()

	cfg, displayVersion := parseFlags()
	if displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	stripe.Key = cfg.Stripe.SecretKey

	textHandler := slog.NewTextHandler(os.Stdout, nil)
	logger := slog.New(textHandler)

	shutdownTelemetry, err := InitTelemetry(cfg, logger)
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	if cfg.OtelCollectorUrl != "" {
		logger = slog.New(NewMultiHandler(textHandler, otelslog.NewHandler(serviceName)))
	}

	swagger, err := api.GetSwagger()
	if err != nil {
		return err
	}

	if cfg.MigrationsPath != "" {
		err = RunMigrations(cfg.DB.DSN, cfg.MigrationsPath)
		if err != nil {
			return err
		}
		logger.Info("database migrations applied", "source", cfg.MigrationsPath)
	}

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	userRepo := repository.NewPostgresUserRepository(db)
	scheduleRepo := repository.NewPostgresScheduleRepository(db)
	seatRepo := repository.NewPostgresSeatRepository(db)
	paymentRepo := repository.NewPostgresPaymentRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)

	paymentProvider, err := newPaymentProvider(cfg)
	if err != nil {
		return err
	}

	hub := realtime.NewHub(logger)

	var (
		holds          domain.HoldStore
		broadcaster    domain.Broadcaster = hub
		redisBroadcast *realtime.RedisBroadcaster
	)

	switch cfg.Reservation.Store {
	case "redis":
		holds = reservation.NewRedisHoldStore(redisClient, time.Now)
		redisBroadcast = realtime.NewRedisBroadcaster(redisClient, hub, logger)
		broadcaster = redisBroadcast
	case "memory":
		holds = reservation.NewMemoryHoldStore(time.Now)
	default:
		return fmt.Errorf("unknown hold store %q", cfg.Reservation.Store)
	}

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
		return err
	}

	authorizer, err := policy.NewRegoAuthorizer(context.Background())
	if err != nil {
		return err
	}

	var publisher *queue.Publisher
	if cfg.AMQP.URL != "" {
		publisher, err = queue.NewPublisher(cfg.AMQP.URL, logger)
		if err != nil {
			return err
		}
		defer publisher.Close()
	}

	deps := Deps{
		Logger:          logger,
		DB:              db,
		Redis:           redisClient,
		Validator:       appvalidator.NewValidator(),
		Mailer:          mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender),
		SessionManager:  NewSessionManager(redisClient),
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
	}
	if publisher != nil {
		deps.Notifier = publisher
	}

	app := NewApp(cfg, deps)

	workers := []func(ctx context.Context){
		func(ctx context.Context) { coordinator.RunSweeper(ctx, cfg.Reservation.SweepInterval) },
	}

	if redisBroadcast != nil {
		workers = append(workers, func(ctx context.Context) {
			if err := redisBroadcast.Run(ctx); err != nil {
				logger.Error("seat event relay stopped", "error", err)
			}
		})
	}

	if publisher != nil {
		consumer := queue.NewConsumer(cfg.AMQP.URL, app.sendBookingConfirmation, logger)
		workers = append(workers, func(ctx context.Context) {
			if err := consumer.Run(ctx); err != nil {
				logger.Error("booking confirmation consumer stopped", "error", err)
			}
		})
	}

	return app.run(workers...)
}

func newPaymentProvider(cfg Config) (domain.PaymentProvider, error) {
	switch cfg.PaymentProvider {
	case "stripe":
		return payment.NewStripePaymentProvider(cfg.Stripe.FailureUrl, cfg.Stripe.SuccessUrl, cfg.Stripe.WebhookSecret), nil
	case "mock":
		return payment.NewMockPaymentProvider(), nil
	default:
		return nil, fmt.Errorf("unknown payment provider %q", cfg.PaymentProvider)
	}
}

func NewSessionManager(client *redis.Client) *scs.SessionManager {
	sessionManager := scs.New()

	sessionManager.Store = goredisstore.New(client)
	sessionManager.IdleTimeout = 20 * time.Minute
	sessionManager.Cookie.Name = "session_id"

	return sessionManager
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	err := errors.Join(redisotel.InstrumentTracing(rdb), redisotel.InstrumentMetrics(rdb))
	if err != nil {
		rdb.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// run serves HTTP and keeps the workers running until a shutdown signal arrives.
func (app *Application) run(workers ...func(ctx context.Context)) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	var workersDone sync.WaitGroup
	for _, worker := range workers {
		workersDone.Add(1)
		go func() {
			defer workersDone.Done()
			worker(workerCtx)
		}()
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		stopWorkers()
		workersDone.Wait()

		app.logger.Info("completing background tasks", "addr", srv.Addr)
		app.wg.Wait()

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env, "hold_store", app.config.Reservation.Store)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func env(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func envInt(key string, fallback int) int {
	value, err := strconv.Atoi(env(key, ""))
	if err != nil {
		return fallback
	}

	return value
}

func envDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(env(key, ""))
	if err != nil {
		return fallback
	}

	return value
}
