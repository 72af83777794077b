package booking

import (
	"time"

	"github.com/google/uuid"
)

// PaymentEvent is an immutable audit record of funds applied toward a
// booking's balance. The ledger is append-only; events are never mutated.
type PaymentEvent struct {
	id            uuid.UUID
	bookingID     uuid.UUID
	amount        Money
	method        string
	transactionID *string
	processedBy   uuid.UUID
	notes         string
	createdAt     time.Time
}

func NewPaymentEvent(
	bookingID uuid.UUID,
	amount Money,
	method string,
	transactionID *string,
	processedBy uuid.UUID,
	notes string,
	now time.Time,
) (*PaymentEvent, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	return &PaymentEvent{
		id:            uuid.New(),
		bookingID:     bookingID,
		amount:        amount,
		method:        method,
		transactionID: transactionID,
		processedBy:   processedBy,
		notes:         notes,
		createdAt:     now,
	}, nil
}

func (e *PaymentEvent) ID() uuid.UUID          { return e.id }
func (e *PaymentEvent) BookingID() uuid.UUID   { return e.bookingID }
func (e *PaymentEvent) Amount() Money          { return e.amount }
func (e *PaymentEvent) Method() string         { return e.method }
func (e *PaymentEvent) TransactionID() *string { return e.transactionID }
func (e *PaymentEvent) ProcessedBy() uuid.UUID { return e.processedBy }
func (e *PaymentEvent) Notes() string          { return e.notes }
func (e *PaymentEvent) CreatedAt() time.Time   { return e.createdAt }
