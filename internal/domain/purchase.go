package domain

// Purchase is the priced outcome of a validated set of ticket requests.
// It lives for a single purchase call and is never stored.
type Purchase struct {
	AccountID    int64
	TotalPrice   int
	TotalSeats   int
	TotalTickets int
	Lines        []PurchaseLine
}

type PurchaseLine struct {
	Type        TicketType
	NoOfTickets int
	Price       int
	Seats       int
}

// NewPurchase validates the requests for the given account and prices them.
// Rules are checked in order and the first failing one is returned:
// account id, adult presence, negative counts, ticket type, ticket limit.
//
// An ADULT request satisfies the adult rule even when its count is zero.
func NewPurchase(accountID int64, requests ...TicketTypeRequest) (Purchase, error) {
	if accountID <= 0 {
		return Purchase{}, ErrInvalidAccountID
	}

	if !hasAdultRequest(requests) {
		return Purchase{}, ErrNoAdultTicket
	}

	for _, r := range requests {
		if r.NoOfTickets < 0 {
			return Purchase{}, ErrInvalidTicketCount
		}
	}

	for _, r := range requests {
		if !r.Type.Valid() {
			return Purchase{}, ErrInvalidTicketType
		}
	}

	totalTickets := 0
	for _, r := range requests {
		// compare before adding so huge counts cannot overflow the sum
		if r.NoOfTickets > MaxTicketsPerPurchase-totalTickets {
			return Purchase{}, ErrTicketLimitExceeded
		}

		totalTickets += r.NoOfTickets
	}

	purchase := Purchase{
		AccountID:    accountID,
		TotalTickets: totalTickets,
		Lines:        make([]PurchaseLine, len(requests)),
	}

	for i, r := range requests {
		line := PurchaseLine{
			Type:        r.Type,
			NoOfTickets: r.NoOfTickets,
			Price:       r.NoOfTickets * r.Type.Price(),
			Seats:       r.NoOfTickets * r.Type.Seats(),
		}

		purchase.TotalPrice += line.Price
		purchase.TotalSeats += line.Seats
		purchase.Lines[i] = line
	}

	return purchase, nil
}

func hasAdultRequest(requests []TicketTypeRequest) bool {
	for _, r := range requests {
		if r.Type == Adult {
			return true
		}
	}

	return false
}
