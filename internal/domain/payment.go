package domain

import "context"

// TicketPaymentService takes payment for a purchase. Amount is in whole GBP.
type TicketPaymentService interface {
	MakePayment(ctx context.Context, accountID int64, amount int) error
}
