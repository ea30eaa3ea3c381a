package integration_test

import (
	"context"
	"log"
	"testing"
	"time"

	"github.com/metinatakli/cinema-ticket-service/internal/app"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

type BaseSuite struct {
	suite.Suite
	app            *TestApp
	cacheContainer *RedisContainer
}

func (s *BaseSuite) SetupSuite() {
	if testing.Short() {
		s.T().Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()

	redisContainer, err := getCacheContainer(ctx)
	s.Require().NoError(err, "failed to start container")

	s.cacheContainer = redisContainer

	cfg := app.Config{
		Env: "test",
		Stripe: app.StripeConfig{
			Currency: "gbp",
		},
		Redis: app.RedisConfig{
			URL:            redisContainer.ConnectionString,
			MaxOpenConns:   10,
			MaxIdleConns:   10,
			MaxIdleTime:    2 * time.Minute,
			ScreeningID:    testScreeningID,
			ReservationTTL: time.Hour,
		},
	}

	s.Require().NoError(cfg.Validate())

	testApp, err := newTestApp(cfg)
	s.Require().NoError(err, "cannot initialize app")

	s.app = testApp
}

func (s *BaseSuite) TearDownSuite() {
	if s.app != nil {
		s.app.Close()
	}

	if s.cacheContainer != nil {
		if err := testcontainers.TerminateContainer(s.cacheContainer.Container); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
}

func (s *BaseSuite) SetupTest() {
	s.Require().NoError(s.app.Redis.FlushDB(context.Background()).Err())
	s.app.Payments.Reset()
}
