package ticket

import (
	"context"
	"io"
	"log/slog"

	"github.com/metinatakli/cinema-ticket-service/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/metinatakli/cinema-ticket-service/internal/ticket"

const (
	outcomeCompleted         = "completed"
	outcomeRejected          = "rejected"
	outcomePaymentFailed     = "payment_failed"
	outcomeReservationFailed = "reservation_failed"
)

// Service validates ticket purchases, takes payment and reserves seats.
// It holds no per-purchase state and is safe for concurrent use.
type Service struct {
	payments     domain.TicketPaymentService
	reservations domain.SeatReservationService
	logger       *slog.Logger

	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider

	tracer    trace.Tracer
	purchases metric.Int64Counter
	seats     metric.Int64Histogram
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) {
		s.tracerProvider = tp
	}
}

func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(s *Service) {
		s.meterProvider = mp
	}
}

func NewService(
	payments domain.TicketPaymentService,
	reservations domain.SeatReservationService,
	opts ...Option) (*Service, error) {

	s := &Service{
		payments:       payments,
		reservations:   reservations,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracerProvider: otel.GetTracerProvider(),
		meterProvider:  otel.GetMeterProvider(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.tracer = s.tracerProvider.Tracer(instrumentationName)
	meter := s.meterProvider.Meter(instrumentationName)

	var err error

	s.purchases, err = meter.Int64Counter(
		"ticket_purchases_total",
		metric.WithDescription("Number of ticket purchase attempts by outcome"),
	)
	if err != nil {
		return nil, err
	}

	s.seats, err = meter.Int64Histogram(
		"ticket_purchase_seats",
		metric.WithDescription("Seats reserved per completed purchase"),
	)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Quote validates and prices the requests without calling any collaborator.
func (s *Service) Quote(accountID int64, requests ...domain.TicketTypeRequest) (domain.Purchase, error) {
	return domain.NewPurchase(accountID, requests...)
}

// PurchaseTickets validates the requests, then pays for them and reserves
// their seats, in that order. Validation failures are *domain.InvalidPurchaseError
// and happen before any collaborator is called. Collaborator errors are
// returned as they are.
//
// A reservation failure does not refund the payment.
func (s *Service) PurchaseTickets(ctx context.Context, accountID int64, requests ...domain.TicketTypeRequest) error {
	ctx, span := s.tracer.Start(ctx, "ticket.PurchaseTickets",
		trace.WithAttributes(attribute.Int64("account.id", accountID)))
	defer span.End()

	logger := s.logger.With("account_id", accountID)

	purchase, err := domain.NewPurchase(accountID, requests...)
	if err != nil {
		logger.Warn("ticket purchase rejected", "reason", err.Error(), "requests", len(requests))
		s.fail(ctx, span, outcomeRejected, err)
		return err
	}

	span.SetAttributes(
		attribute.Int("purchase.total_price", purchase.TotalPrice),
		attribute.Int("purchase.total_seats", purchase.TotalSeats),
		attribute.Int("purchase.total_tickets", purchase.TotalTickets),
	)

	err = s.payments.MakePayment(ctx, accountID, purchase.TotalPrice)
	if err != nil {
		logger.Error("payment failed", "amount", purchase.TotalPrice, "error", err)
		s.fail(ctx, span, outcomePaymentFailed, err)
		return err
	}

	err = s.reservations.ReserveSeat(ctx, accountID, purchase.TotalSeats)
	if err != nil {
		logger.Error("seat reservation failed after payment was taken",
			"amount", purchase.TotalPrice,
			"seats", purchase.TotalSeats,
			"error", err,
		)
		s.fail(ctx, span, outcomeReservationFailed, err)
		return err
	}

	s.purchases.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcomeCompleted)))
	s.seats.Record(ctx, int64(purchase.TotalSeats))

	logger.Info("tickets purchased",
		"total_price", purchase.TotalPrice,
		"total_seats", purchase.TotalSeats,
		"total_tickets", purchase.TotalTickets,
	)

	return nil
}

func (s *Service) fail(ctx context.Context, span trace.Span, outcome string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	s.purchases.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
