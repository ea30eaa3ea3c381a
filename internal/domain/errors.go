package domain

import "fmt"

// InvalidPurchaseError is returned for every purchase that fails validation.
// No collaborator has been called when it is returned.
type InvalidPurchaseError struct {
	Reason string
}

func (e *InvalidPurchaseError) Error() string {
	return e.Reason
}

func newInvalidPurchaseError(reason string) *InvalidPurchaseError {
	return &InvalidPurchaseError{Reason: reason}
}

var (
	ErrInvalidAccountID    = newInvalidPurchaseError("AccountId must be greater than 0")
	ErrNoAdultTicket       = newInvalidPurchaseError("Minimum 1 adult ticket is required")
	ErrInvalidTicketCount  = newInvalidPurchaseError("Invalid number of tickets")
	ErrInvalidTicketType   = newInvalidPurchaseError("Invalid ticket type")
	ErrTicketLimitExceeded = newInvalidPurchaseError(
		fmt.Sprintf("You can't purchase more than %d tickets", MaxTicketsPerPurchase))
)
