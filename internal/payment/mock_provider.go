package payment

import (
	"context"
	"sync"
)

// Payment is a payment recorded by MockPaymentService.
type Payment struct {
	AccountID int64
	Amount    int
}

// MockPaymentService accepts every payment and keeps a record of it.
// It is used when no Stripe key is configured.
type MockPaymentService struct {
	mu       sync.RWMutex
	payments []Payment
}

func NewMockPaymentService() *MockPaymentService {
	return &MockPaymentService{
		payments: make([]Payment, 0),
	}
}

func (m *MockPaymentService) MakePayment(ctx context.Context, accountID int64, amount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.payments = append(m.payments, Payment{
		AccountID: accountID,
		Amount:    amount,
	})

	return nil
}

// Payments returns a copy of all recorded payments
func (m *MockPaymentService) Payments() []Payment {
	m.mu.RLock()
	defer m.mu.RUnlock()

	payments := make([]Payment, len(m.payments))
	copy(payments, m.payments)
	return payments
}

func (m *MockPaymentService) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.payments = make([]Payment, 0)
}
