package reservation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultReservationTTL = 24 * time.Hour

var (
	ErrNotEnoughSeats    = errors.New("not enough seats available for the screening")
	ErrScreeningNotFound = errors.New("screening has no seat inventory")
	ErrInvalidSeatCount  = errors.New("seat count must not be negative")
)

var reserveSeatsScript = redis.NewScript(`
	-- KEYS = [seats_available:<screening>, seat_reservation:<id>, account_reservations:<account>]
	-- ARGV = [seatCount, accountID, reservationID, ttlMillis]

	local available = redis.call("GET", KEYS[1])
	if not available then
		return {err = "screening not found"}
	end

	local seats = tonumber(ARGV[1])
	if tonumber(available) < seats then
		return {err = "not enough seats"}
	end

	local remaining = redis.call("DECRBY", KEYS[1], seats)

	redis.call("HSET", KEYS[2], "account_id", ARGV[2], "seats", ARGV[1])
	redis.call("PEXPIRE", KEYS[2], ARGV[4])
	redis.call("SADD", KEYS[3], ARGV[3])
	redis.call("PEXPIRE", KEYS[3], ARGV[4])

	return remaining
`)

// RedisSeatReservationService reserves seats against the shared seat
// inventory of one screening kept in Redis.
type RedisSeatReservationService struct {
	client      redis.UniversalClient
	screeningID string
	ttl         time.Duration
	logger      *slog.Logger
}

func NewRedisSeatReservationService(
	client redis.UniversalClient,
	screeningID string,
	ttl time.Duration,
	logger *slog.Logger) *RedisSeatReservationService {

	if ttl < time.Millisecond {
		ttl = defaultReservationTTL
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &RedisSeatReservationService{
		client:      client,
		screeningID: screeningID,
		ttl:         ttl,
		logger:      logger,
	}
}

func (r *RedisSeatReservationService) ReserveSeat(ctx context.Context, accountID int64, seatCount int) error {
	logger := r.logger.With("account_id", accountID, "screening_id", r.screeningID)

	if seatCount < 0 {
		return ErrInvalidSeatCount
	}

	if seatCount == 0 {
		logger.Debug("no seats to reserve")
		return nil
	}

	reservationID := uuid.New().String()
	keys := []string{
		seatsAvailableKey(r.screeningID),
		seatReservationKey(reservationID),
		accountReservationsKey(accountID),
	}

	remaining, err := reserveSeatsScript.Run(
		ctx,
		r.client,
		keys,
		seatCount,
		accountID,
		reservationID,
		r.ttl.Milliseconds(),
	).Int64()
	if err != nil {
		switch {
		case redis.HasErrorPrefix(err, "not enough seats"):
			logger.Warn("seat reservation rejected: not enough seats", "seats", seatCount)
			return ErrNotEnoughSeats
		case redis.HasErrorPrefix(err, "screening not found"):
			return ErrScreeningNotFound
		default:
			return fmt.Errorf("failed to run reserveSeats script: %w", err)
		}
	}

	logger.Info("seats reserved",
		"reservation_id", reservationID,
		"seats", seatCount,
		"remaining", remaining,
	)

	return nil
}

// SetCapacity sets the number of seats still available for the screening.
func (r *RedisSeatReservationService) SetCapacity(ctx context.Context, seats int) error {
	return r.client.Set(ctx, seatsAvailableKey(r.screeningID), seats, 0).Err()
}

func (r *RedisSeatReservationService) Available(ctx context.Context) (int, error) {
	available, err := r.client.Get(ctx, seatsAvailableKey(r.screeningID)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrScreeningNotFound
		}

		return 0, err
	}

	return available, nil
}

// AccountReservations returns the ids of the live reservations of an account.
func (r *RedisSeatReservationService) AccountReservations(ctx context.Context, accountID int64) ([]string, error) {
	return r.client.SMembers(ctx, accountReservationsKey(accountID)).Result()
}

func seatsAvailableKey(screeningID string) string {
	return fmt.Sprintf("seats_available:%s", screeningID)
}

func seatReservationKey(reservationID string) string {
	return fmt.Sprintf("seat_reservation:%s", reservationID)
}

func accountReservationsKey(accountID int64) string {
	return fmt.Sprintf("account_reservations:%d", accountID)
}
