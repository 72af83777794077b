package booking

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrInvalidDateRange = errors.New("check-out date must be after check-in date")
	ErrInvalidPartySize = errors.New("invalid party size")
	ErrNegativeAmount   = errors.New("amount cannot be negative")
)

// StayPeriod is a half-open calendar date interval [checkIn, checkOut).
// Both dates are normalized to UTC midnight.
type StayPeriod struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayPeriod(checkIn, checkOut time.Time) (StayPeriod, error) {
	in := truncateToDate(checkIn)
	out := truncateToDate(checkOut)
	if !out.After(in) {
		return StayPeriod{}, ErrInvalidDateRange
	}
	return StayPeriod{checkIn: in, checkOut: out}, nil
}

func (p StayPeriod) CheckIn() time.Time  { return p.checkIn }
func (p StayPeriod) CheckOut() time.Time { return p.checkOut }

// Nights is the number of nights covered by the period, rounding up
// partial days defensively even though inputs are date-normalized.
func (p StayPeriod) Nights() int {
	days := p.checkOut.Sub(p.checkIn).Hours() / 24
	return int(math.Ceil(days))
}

// Overlaps uses strict half-open interval overlap:
// existing.checkIn < new.checkOut AND existing.checkOut > new.checkIn.
func (p StayPeriod) Overlaps(other StayPeriod) bool {
	return p.checkIn.Before(other.checkOut) && p.checkOut.After(other.checkIn)
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Money is an integer count of minor currency units. All monetary
// arithmetic happens in cents; floats appear only at the API boundary.
type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

// NewMoneyFromAmount converts a boundary decimal number (e.g. 120.50)
// into cents with half-away-from-zero rounding.
func NewMoneyFromAmount(amount float64) Money {
	return Money{cents: int64(math.Round(amount * 100))}
}

func (m Money) Cents() int64 { return m.cents }

// Amount renders the value as a plain decimal number for serialization.
func (m Money) Amount() float64 {
	return float64(m.cents) / 100.0
}

func (m Money) Add(o Money) Money     { return Money{cents: m.cents + o.cents} }
func (m Money) Sub(o Money) Money     { return Money{cents: m.cents - o.cents} }
func (m Money) MulNights(n int) Money { return Money{cents: m.cents * int64(n)} }
func (m Money) IsZero() bool          { return m.cents == 0 }
func (m Money) IsNegative() bool      { return m.cents < 0 }
func (m Money) IsPositive() bool      { return m.cents > 0 }
func (m Money) GreaterThan(o Money) bool { return m.cents > o.cents }

// FloorZero clamps negative balances to zero.
func (m Money) FloorZero() Money {
	if m.cents < 0 {
		return Money{}
	}
	return m
}

type PartySize struct {
	adults   int
	children int
	infants  int
}

func NewPartySize(adults, children, infants int) (PartySize, error) {
	if adults < 1 || children < 0 || infants < 0 {
		return PartySize{}, ErrInvalidPartySize
	}
	return PartySize{adults: adults, children: children, infants: infants}, nil
}

func (p PartySize) Adults() int   { return p.adults }
func (p PartySize) Children() int { return p.children }
func (p PartySize) Infants() int  { return p.infants }

const bookingNumberSuffixLen = 4

// NewBookingNumber builds a human-readable reference: a timestamp plus a
// short random suffix, e.g. BK20240110153012-7KQZ.
func NewBookingNumber(now time.Time) string {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	buf := make([]byte, bookingNumberSuffixLen)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failure leaves the timestamp alone, still unique enough
		// for human reference; the DB unique index is the real guard.
		return fmt.Sprintf("BK%s", now.UTC().Format("20060102150405.000000"))
	}
	for i := range buf {
		buf[i] = alphabet[int(buf[i])%len(alphabet)]
	}
	return fmt.Sprintf("BK%s-%s", now.UTC().Format("20060102150405"), string(buf))
}
