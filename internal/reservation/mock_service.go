package reservation

import (
	"context"
	"sync"
)

type Reservation struct {
	AccountID int64
	Seats     int
}

// MockSeatReservationService accepts every reservation and keeps a record of it.
type MockSeatReservationService struct {
	mu           sync.RWMutex
	reservations []Reservation
}

func NewMockSeatReservationService() *MockSeatReservationService {
	return &MockSeatReservationService{
		reservations: make([]Reservation, 0),
	}
}

func (m *MockSeatReservationService) ReserveSeat(ctx context.Context, accountID int64, seatCount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reservations = append(m.reservations, Reservation{
		AccountID: accountID,
		Seats:     seatCount,
	})

	return nil
}

func (m *MockSeatReservationService) Reservations() []Reservation {
	m.mu.RLock()
	defer m.mu.RUnlock()

	reservations := make([]Reservation, len(m.reservations))
	copy(reservations, m.reservations)
	return reservations
}

func (m *MockSeatReservationService) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reservations = make([]Reservation, 0)
}
