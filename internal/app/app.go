package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/cinema-ticket-service/internal/domain"
	"github.com/metinatakli/cinema-ticket-service/internal/payment"
	"github.com/metinatakli/cinema-ticket-service/internal/reservation"
	"github.com/metinatakli/cinema-ticket-service/internal/telemetry"
	"github.com/metinatakli/cinema-ticket-service/internal/ticket"
	appvalidator "github.com/metinatakli/cinema-ticket-service/internal/validator"
	"github.com/metinatakli/cinema-ticket-service/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stripe/stripe-go/v82"
)

var (
	version = vcs.Version()
)

type Config struct {
	Env       string `validate:"env"`
	Stripe    StripeConfig
	Redis     RedisConfig
	Telemetry TelemetryConfig
}

type StripeConfig struct {
	SecretKey     string
	Currency      string `validate:"currency"`
	PaymentMethod string `validate:"required_with=SecretKey"`
}

type RedisConfig struct {
	URL            string
	MaxOpenConns   int `validate:"gt=0"`
	MaxIdleConns   int `validate:"min=0"`
	MaxIdleTime    time.Duration
	ScreeningID    string        `validate:"required_with=URL"`
	ReservationTTL time.Duration `validate:"omitempty,min=1s"`
}

type TelemetryConfig struct {
	CollectorURL string
}

// ParseFlags reads the configuration from args and validates it.
func ParseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config

	fs.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod|test)")

	fs.StringVar(&cfg.Stripe.SecretKey, "stripe-key", "", "Stripe secret key")
	fs.StringVar(&cfg.Stripe.Currency, "stripe-currency", "gbp", "Stripe currency code")
	fs.StringVar(&cfg.Stripe.PaymentMethod, "stripe-payment-method", "pm_card_visa", "Stripe payment method used to confirm payments")

	fs.StringVar(&cfg.Redis.URL, "redis-url", "", "Redis URL")
	fs.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	fs.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	fs.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")
	fs.StringVar(&cfg.Redis.ScreeningID, "screening-id", "", "Screening whose seats are reserved")
	fs.DurationVar(&cfg.Redis.ReservationTTL, "reservation-ttl", 24*time.Hour, "How long seat reservations are kept")

	fs.StringVar(&cfg.Telemetry.CollectorURL, "otel-collector-url", "", "OpenTelemetry collector URL")

	err := fs.Parse(args)
	if err != nil {
		return Config{}, err
	}

	err = cfg.Validate()
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (cfg Config) Validate() error {
	err := appvalidator.NewValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	problems := make([]error, 0, len(validationErrs))
	for _, fe := range validationErrs {
		problems = append(problems, fmt.Errorf("%s %s", fe.Namespace(), appvalidator.ValidationMessage(fe)))
	}

	return errors.Join(problems...)
}

// Application wires the ticket service to its payment and reservation
// collaborators.
type Application struct {
	config Config
	logger *slog.Logger
	redis  redis.UniversalClient

	payments     domain.TicketPaymentService
	reservations domain.SeatReservationService
	tickets      *ticket.Service

	shutdownTelemetry func(context.Context)
}

// New builds the application from cfg. A nil logger is replaced by
// telemetry.NewLogger writing to stderr, which also ships records to the
// collector when one is configured.
func New(cfg Config, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = telemetry.NewLogger(os.Stderr, cfg.Telemetry.CollectorURL)
	}

	shutdownTelemetry, err := telemetry.Init(context.Background(), telemetry.Config{
		ServiceName:  telemetry.ServiceName,
		Version:      version,
		Env:          cfg.Env,
		CollectorURL: cfg.Telemetry.CollectorURL,
	}, logger)
	if err != nil {
		return nil, err
	}

	app := &Application{
		config:            cfg,
		logger:            logger,
		shutdownTelemetry: shutdownTelemetry,
	}

	if cfg.Redis.URL != "" {
		redisClient, err := NewRedisClient(cfg)
		if err != nil {
			shutdownTelemetry(context.Background())
			return nil, err
		}

		app.redis = redisClient
		app.reservations = reservation.NewRedisSeatReservationService(
			redisClient,
			cfg.Redis.ScreeningID,
			cfg.Redis.ReservationTTL,
			logger,
		)
	} else {
		logger.Warn("Redis URL not set, seat reservations are recorded but not stored")
		app.reservations = reservation.NewMockSeatReservationService()
	}

	if cfg.Stripe.SecretKey != "" {
		app.payments = payment.NewStripePaymentService(cfg.Stripe.Currency, cfg.Stripe.PaymentMethod, logger)
	} else {
		logger.Warn("Stripe key not set, payments are recorded but not taken")
		app.payments = payment.NewMockPaymentService()
	}

	app.tickets, err = ticket.NewService(app.payments, app.reservations, ticket.WithLogger(logger))
	if err != nil {
		app.Close()
		return nil, err
	}

	// stripe.Key is global, only set it once nothing else can fail
	if cfg.Stripe.SecretKey != "" {
		stripe.Key = cfg.Stripe.SecretKey
	}

	logger.Info("application initialized", "env", cfg.Env, "version", version)

	return app, nil
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

func (app *Application) Tickets() *ticket.Service {
	return app.tickets
}

func (app *Application) Payments() domain.TicketPaymentService {
	return app.payments
}

func (app *Application) Reservations() domain.SeatReservationService {
	return app.reservations
}

// Close releases the Redis connection and flushes telemetry.
func (app *Application) Close() error {
	var err error

	if app.redis != nil {
		err = app.redis.Close()
	}

	app.shutdownTelemetry(context.Background())

	return err
}
