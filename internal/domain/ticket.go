package domain

type TicketType string

const (
	Infant TicketType = "INFANT"
	Child  TicketType = "CHILD"
	Adult  TicketType = "ADULT"
)

const MaxTicketsPerPurchase = 20

type ticketTerms struct {
	price int
	seats int
}

// Prices are whole GBP.
var ticketTermsByType = map[TicketType]ticketTerms{
	Infant: {price: 0, seats: 0},
	Child:  {price: 10, seats: 1},
	Adult:  {price: 20, seats: 1},
}

func (t TicketType) Valid() bool {
	_, ok := ticketTermsByType[t]
	return ok
}

// Price returns the price of a single ticket of this type, 0 for unknown types.
func (t TicketType) Price() int {
	return ticketTermsByType[t].price
}

// Seats returns how many seats a single ticket of this type occupies.
func (t TicketType) Seats() int {
	return ticketTermsByType[t].seats
}

func (t TicketType) String() string {
	return string(t)
}

type TicketTypeRequest struct {
	Type        TicketType
	NoOfTickets int
}

func NewTicketTypeRequest(ticketType TicketType, noOfTickets int) TicketTypeRequest {
	return TicketTypeRequest{
		Type:        ticketType,
		NoOfTickets: noOfTickets,
	}
}
