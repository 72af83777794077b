package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNegativeRate          = errors.New("room rate cannot be negative")
	ErrInvalidAmount         = errors.New("payment amount must be positive")
	ErrExceedsBalance        = errors.New("payment amount exceeds outstanding balance")
	ErrInvalidNights         = errors.New("actual nights must be positive")
	ErrAlreadyCheckedOut     = errors.New("booking is already checked out")
	ErrBookingCancelled      = errors.New("booking is cancelled")
	ErrCheckedInNotDeletable = errors.New("checked-in booking cannot be deleted")
)

// Details carries the free-text attributes of a booking.
type Details struct {
	SpecialRequests string
	Notes           string
	Source          string
}

type Booking struct {
	id            uuid.UUID
	bookingNumber string
	guestID       uuid.UUID
	roomID        uuid.UUID
	stay          StayPeriod
	party         PartySize
	roomRate      Money
	totalAmount   Money
	paidAmount    Money
	status        Status
	paymentStatus PaymentStatus
	details       Details
	createdBy     uuid.UUID
	checkedInAt   *time.Time
	checkedOutAt  *time.Time
	roomKeyNumber string
	createdAt     time.Time
	updatedAt     time.Time
}

// NewBooking creates a booking in the given (default pending) status with a
// zero paid amount. totalOverride, when present, replaces the derived
// nights x rate amount; later date or rate changes recompute it.
func NewBooking(
	guestID, roomID uuid.UUID,
	stay StayPeriod,
	party PartySize,
	roomRate Money,
	totalOverride *Money,
	status Status,
	details Details,
	createdBy uuid.UUID,
	now time.Time,
) (*Booking, error) {
	if roomRate.IsNegative() {
		return nil, ErrNegativeRate
	}

	total := roomRate.MulNights(stay.Nights())
	if totalOverride != nil {
		if totalOverride.IsNegative() {
			return nil, ErrNegativeAmount
		}
		total = *totalOverride
	}

	if status == "" {
		status = StatusPending
	} else if _, err := NewStatus(status.String()); err != nil {
		return nil, err
	}

	return &Booking{
		id:            uuid.New(),
		bookingNumber: NewBookingNumber(now),
		guestID:       guestID,
		roomID:        roomID,
		stay:          stay,
		party:         party,
		roomRate:      roomRate,
		totalAmount:   total,
		paidAmount:    NewMoney(0),
		status:        status,
		paymentStatus: PaymentPending,
		details:       details,
		createdBy:     createdBy,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructBooking(
	id uuid.UUID,
	bookingNumber string,
	guestID, roomID uuid.UUID,
	stay StayPeriod,
	party PartySize,
	roomRate, totalAmount, paidAmount Money,
	status Status,
	paymentStatus PaymentStatus,
	details Details,
	createdBy uuid.UUID,
	checkedInAt, checkedOutAt *time.Time,
	roomKeyNumber string,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		bookingNumber: bookingNumber,
		guestID:       guestID,
		roomID:        roomID,
		stay:          stay,
		party:         party,
		roomRate:      roomRate,
		totalAmount:   totalAmount,
		paidAmount:    paidAmount,
		status:        status,
		paymentStatus: paymentStatus,
		details:       details,
		createdBy:     createdBy,
		checkedInAt:   checkedInAt,
		checkedOutAt:  checkedOutAt,
		roomKeyNumber: roomKeyNumber,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) BookingNumber() string        { return b.bookingNumber }
func (b *Booking) GuestID() uuid.UUID           { return b.guestID }
func (b *Booking) RoomID() uuid.UUID            { return b.roomID }
func (b *Booking) Stay() StayPeriod             { return b.stay }
func (b *Booking) Party() PartySize             { return b.party }
func (b *Booking) RoomRate() Money              { return b.roomRate }
func (b *Booking) TotalAmount() Money           { return b.totalAmount }
func (b *Booking) PaidAmount() Money            { return b.paidAmount }
func (b *Booking) Status() Status               { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }
func (b *Booking) Details() Details             { return b.details }
func (b *Booking) CreatedBy() uuid.UUID         { return b.createdBy }
func (b *Booking) CheckedInAt() *time.Time      { return b.checkedInAt }
func (b *Booking) CheckedOutAt() *time.Time     { return b.checkedOutAt }
func (b *Booking) RoomKeyNumber() string        { return b.roomKeyNumber }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time         { return b.updatedAt }

func (b *Booking) TotalNights() int { return b.stay.Nights() }

// Outstanding is always derived, never stored: max(0, total - paid).
func (b *Booking) Outstanding() Money {
	return b.totalAmount.Sub(b.paidAmount).FloorZero()
}

func (b *Booking) CanDelete() bool {
	return b.status != StatusCheckedIn
}

// Reschedule moves the stay and recomputes nights and total from the
// effective rate. Outstanding and payment status follow.
func (b *Booking) Reschedule(stay StayPeriod, now time.Time) {
	b.stay = stay
	b.recalculateAmounts(now)
}

func (b *Booking) ChangeRate(rate Money, now time.Time) error {
	if rate.IsNegative() {
		return ErrNegativeRate
	}
	b.roomRate = rate
	b.recalculateAmounts(now)
	return nil
}

func (b *Booking) MoveToRoom(roomID uuid.UUID, now time.Time) {
	b.roomID = roomID
	b.touch(now)
}

func (b *Booking) ReassignGuest(guestID uuid.UUID, now time.Time) {
	b.guestID = guestID
	b.touch(now)
}

func (b *Booking) ChangeParty(party PartySize, now time.Time) {
	b.party = party
	b.touch(now)
}

func (b *Booking) ChangeStatus(status Status, now time.Time) error {
	if _, err := NewStatus(status.String()); err != nil {
		return err
	}
	b.status = status
	b.touch(now)
	return nil
}

func (b *Booking) UpdateDetails(details Details, now time.Time) {
	b.details = details
	b.touch(now)
}

// ApplyPayment increases the paid amount by a discrete payment event.
// Amounts above the outstanding balance are rejected, not clamped.
func (b *Booking) ApplyPayment(amount Money, now time.Time) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(b.Outstanding()) {
		return ErrExceedsBalance
	}
	b.paidAmount = b.paidAmount.Add(amount)
	b.paymentStatus = DerivePaymentStatus(b.paidAmount, b.totalAmount)
	b.touch(now)
	return nil
}

func (b *Booking) CheckIn(at time.Time, roomKeyNumber string, now time.Time) error {
	switch b.status {
	case StatusCheckedOut:
		return ErrAlreadyCheckedOut
	case StatusCancelled:
		return ErrBookingCancelled
	}
	b.status = StatusCheckedIn
	b.checkedInAt = &at
	b.roomKeyNumber = roomKeyNumber
	b.touch(now)
	return nil
}

// CheckOut settles the final amount: nightly rate x actual nights plus
// extra charges. The returned balance due is informational; a non-zero
// balance is not an error and may be settled by a later payment event.
func (b *Booking) CheckOut(at time.Time, actualNights int, extraCharges Money, now time.Time) (Money, error) {
	if b.status == StatusCancelled {
		return Money{}, ErrBookingCancelled
	}
	if actualNights <= 0 {
		return Money{}, ErrInvalidNights
	}
	if extraCharges.IsNegative() {
		return Money{}, ErrNegativeAmount
	}

	b.totalAmount = b.roomRate.MulNights(actualNights).Add(extraCharges)
	b.paymentStatus = DerivePaymentStatus(b.paidAmount, b.totalAmount)
	b.status = StatusCheckedOut
	b.checkedOutAt = &at
	b.touch(now)

	return b.totalAmount.Sub(b.paidAmount), nil
}

func (b *Booking) recalculateAmounts(now time.Time) {
	b.totalAmount = b.roomRate.MulNights(b.stay.Nights())
	b.paymentStatus = DerivePaymentStatus(b.paidAmount, b.totalAmount)
	b.touch(now)
}

func (b *Booking) touch(now time.Time) {
	b.updatedAt = now
}
