package mocks

import (
	"context"

	"github.com/metinatakli/cinema-ticket-service/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockReservationService struct {
	mock.Mock
	domain.SeatReservationService
}

func (m *MockReservationService) ReserveSeat(ctx context.Context, accountID int64, seatCount int) error {
	args := m.Called(ctx, accountID, seatCount)
	return args.Error(0)
}
