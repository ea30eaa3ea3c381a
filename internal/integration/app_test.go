package integration_test

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/metinatakli/cinema-ticket-service/internal/app"
	"github.com/metinatakli/cinema-ticket-service/internal/payment"
	"github.com/metinatakli/cinema-ticket-service/internal/reservation"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App          *app.Application
	Redis        *redis.Client
	Payments     *payment.MockPaymentService
	Reservations *reservation.RedisSeatReservationService
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	application, err := app.New(cfg, logger)
	if err != nil {
		return nil, err
	}

	payments, ok := application.Payments().(*payment.MockPaymentService)
	if !ok {
		application.Close()
		return nil, fmt.Errorf("unexpected payment service %T", application.Payments())
	}

	reservations, ok := application.Reservations().(*reservation.RedisSeatReservationService)
	if !ok {
		application.Close()
		return nil, fmt.Errorf("unexpected reservation service %T", application.Reservations())
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		application.Close()
		return nil, err
	}

	return &TestApp{
		App:          application,
		Redis:        redisClient,
		Payments:     payments,
		Reservations: reservations,
	}, nil
}

func (a *TestApp) Close() {
	a.Redis.Close()
	a.App.Close()
}
