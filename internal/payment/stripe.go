package payment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

var ErrPaymentDeclined = errors.New("payment declined")

type intentCreator func(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)

// StripePaymentService takes ticket payments as confirmed Stripe payment
// intents. stripe.Key must be set before use.
type StripePaymentService struct {
	currency      string
	paymentMethod string
	logger        *slog.Logger
	newIntent     intentCreator
}

func NewStripePaymentService(currency, paymentMethod string, logger *slog.Logger) *StripePaymentService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &StripePaymentService{
		currency:      currency,
		paymentMethod: paymentMethod,
		logger:        logger,
		newIntent:     paymentintent.New,
	}
}

func (s *StripePaymentService) MakePayment(ctx context.Context, accountID int64, amount int) error {
	logger := s.logger.With("account_id", accountID, "amount", amount)

	// Stripe rejects zero amounts, there is nothing to collect anyway
	if amount == 0 {
		logger.Info("skipping payment with zero amount")
		return nil
	}

	purchaseRef := uuid.New().String()
	amountMinor := decimal.NewFromInt(int64(amount)).Mul(decimal.NewFromInt(100)).IntPart()

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(amountMinor),
		Currency:      stripe.String(s.currency),
		Description:   stripe.String(fmt.Sprintf("Cinema tickets for account %d", accountID)),
		PaymentMethod: stripe.String(s.paymentMethod),
		Confirm:       stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	params.Context = ctx
	params.AddMetadata("account_id", strconv.FormatInt(accountID, 10))
	params.AddMetadata("purchase_ref", purchaseRef)

	intent, err := s.newIntent(params)
	if err != nil {
		logger.Error("failed to create payment intent", "purchase_ref", purchaseRef, "error", err)
		return fmt.Errorf("create payment intent: %w", err)
	}

	switch intent.Status {
	case stripe.PaymentIntentStatusSucceeded, stripe.PaymentIntentStatusProcessing:
	default:
		logger.Warn("payment intent not completed",
			"payment_intent_id", intent.ID,
			"status", intent.Status,
			"purchase_ref", purchaseRef,
		)
		return fmt.Errorf("payment intent %s is %s: %w", intent.ID, intent.Status, ErrPaymentDeclined)
	}

	logger.Info("payment taken", "payment_intent_id", intent.ID, "purchase_ref", purchaseRef)

	return nil
}
