//go:build unit

package booking_test

import (
	"testing"
	"time"

	"stayops/internal/domain/booking"
	"stayops/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.NotEmpty(t, actual.BookingNumber())
		assert.Equal(t, 3, actual.TotalNights())
		assert.Equal(t, int64(36000), actual.TotalAmount().Cents())
		assert.True(t, actual.PaidAmount().IsZero())
		assert.Equal(t, booking.PaymentPending, actual.PaymentStatus())
		assert.Equal(t, actual.TotalAmount(), actual.Outstanding())
	})

	t.Run("empty status defaults to pending", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().
			With(func(b *builder.BookingBuilder) { b.Status = "" }).
			BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, booking.StatusPending, actual.Status())
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().
			With(func(b *builder.BookingBuilder) { b.Status = "overbooked" }).
			BuildDomain()
		require.ErrorIs(t, err, booking.ErrInvalidStatus)
	})

	t.Run("negative rate is rejected", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().
			With(func(b *builder.BookingBuilder) { b.RoomRateCents = -100 }).
			BuildDomain()
		require.ErrorIs(t, err, booking.ErrNegativeRate)
	})

	t.Run("total override replaces derived amount", func(t *testing.T) {
		bb := builder.NewBookingBuilder()
		stay, err := booking.NewStayPeriod(bb.CheckIn, bb.CheckOut)
		require.NoError(t, err)
		party, err := booking.NewPartySize(2, 0, 0)
		require.NoError(t, err)

		override := booking.NewMoney(25000)
		actual, err := booking.NewBooking(
			bb.GuestID, bb.RoomID, stay, party,
			booking.NewMoney(bb.RoomRateCents), &override,
			booking.StatusConfirmed, booking.Details{}, bb.CreatedBy, bb.Now,
		)
		require.NoError(t, err)
		assert.Equal(t, int64(25000), actual.TotalAmount().Cents())
	})
}

func TestBooking_ApplyPayment(t *testing.T) {
	newConfirmed := func(t *testing.T) *booking.Booking {
		t.Helper()
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		return b
	}
	now := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)

	t.Run("partial then full payment", func(t *testing.T) {
		b := newConfirmed(t)

		require.NoError(t, b.ApplyPayment(booking.NewMoney(10000), now))
		assert.Equal(t, booking.PaymentPartial, b.PaymentStatus())
		assert.Equal(t, int64(26000), b.Outstanding().Cents())

		require.NoError(t, b.ApplyPayment(booking.NewMoney(26000), now))
		assert.Equal(t, booking.PaymentPaid, b.PaymentStatus())
		assert.True(t, b.Outstanding().IsZero())
	})

	t.Run("zero and negative amounts are rejected", func(t *testing.T) {
		b := newConfirmed(t)
		require.ErrorIs(t, b.ApplyPayment(booking.NewMoney(0), now), booking.ErrInvalidAmount)
		require.ErrorIs(t, b.ApplyPayment(booking.NewMoney(-500), now), booking.ErrInvalidAmount)
	})

	t.Run("overpayment is rejected, not clamped", func(t *testing.T) {
		b := newConfirmed(t)
		err := b.ApplyPayment(b.TotalAmount().Add(booking.NewMoney(1)), now)
		require.ErrorIs(t, err, booking.ErrExceedsBalance)
		assert.True(t, b.PaidAmount().IsZero())
	})
}

func TestBooking_CheckInCheckOut(t *testing.T) {
	now := time.Date(2026, 3, 12, 15, 0, 0, 0, time.UTC)

	build := func(t *testing.T, status string) *booking.Booking {
		t.Helper()
		b, err := builder.NewBookingBuilder().
			With(func(bb *builder.BookingBuilder) { bb.Status = status }).
			BuildDomain()
		require.NoError(t, err)
		return b
	}

	t.Run("check-in records time and key", func(t *testing.T) {
		b := build(t, "confirmed")
		at := time.Date(2026, 3, 12, 14, 30, 0, 0, time.UTC)

		require.NoError(t, b.CheckIn(at, "K-204", now))
		assert.Equal(t, booking.StatusCheckedIn, b.Status())
		require.NotNil(t, b.CheckedInAt())
		assert.Equal(t, at, *b.CheckedInAt())
		assert.Equal(t, "K-204", b.RoomKeyNumber())
	})

	t.Run("cancelled booking cannot check in", func(t *testing.T) {
		b := build(t, "cancelled")
		require.ErrorIs(t, b.CheckIn(now, "", now), booking.ErrBookingCancelled)
	})

	t.Run("check-out recomputes total from actual nights", func(t *testing.T) {
		b := build(t, "confirmed")
		require.NoError(t, b.CheckIn(now, "", now))
		require.NoError(t, b.ApplyPayment(booking.NewMoney(36000), now))

		// Stayed 2 of 3 booked nights, with a minibar charge.
		balance, err := b.CheckOut(now, 2, booking.NewMoney(1500), now)
		require.NoError(t, err)

		assert.Equal(t, booking.StatusCheckedOut, b.Status())
		assert.Equal(t, int64(25500), b.TotalAmount().Cents())
		// Guest overpaid against the recomputed total: balance due is negative.
		assert.Equal(t, int64(-10500), balance.Cents())
		assert.Equal(t, booking.PaymentPaid, b.PaymentStatus())
	})

	t.Run("check-out with extra charges leaves a positive balance", func(t *testing.T) {
		b := build(t, "checked_in")
		balance, err := b.CheckOut(now, 3, booking.NewMoney(2000), now)
		require.NoError(t, err)
		assert.Equal(t, int64(38000), b.TotalAmount().Cents())
		assert.Equal(t, int64(38000), balance.Cents())
	})

	t.Run("check-out validation", func(t *testing.T) {
		b := build(t, "checked_in")
		_, err := b.CheckOut(now, 0, booking.NewMoney(0), now)
		require.ErrorIs(t, err, booking.ErrInvalidNights)
		_, err = b.CheckOut(now, 2, booking.NewMoney(-1), now)
		require.ErrorIs(t, err, booking.ErrNegativeAmount)

		cancelled := build(t, "cancelled")
		_, err = cancelled.CheckOut(now, 1, booking.NewMoney(0), now)
		require.ErrorIs(t, err, booking.ErrBookingCancelled)
	})
}

func TestBooking_RescheduleAndRate(t *testing.T) {
	now := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)

	t.Run("reschedule recomputes total and payment status", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, b.ApplyPayment(booking.NewMoney(36000), now))
		require.Equal(t, booking.PaymentPaid, b.PaymentStatus())

		stay, err := booking.NewStayPeriod(
			time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)
		b.Reschedule(stay, now)

		assert.Equal(t, 5, b.TotalNights())
		assert.Equal(t, int64(60000), b.TotalAmount().Cents())
		assert.Equal(t, booking.PaymentPartial, b.PaymentStatus())
		assert.Equal(t, int64(24000), b.Outstanding().Cents())
	})

	t.Run("negative rate change is rejected", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.ErrorIs(t, b.ChangeRate(booking.NewMoney(-1), now), booking.ErrNegativeRate)
	})
}

func TestBooking_CanDelete(t *testing.T) {
	for _, tc := range []struct {
		status string
		want   bool
	}{
		{"pending", true},
		{"confirmed", true},
		{"checked_in", false},
		{"checked_out", true},
		{"cancelled", true},
	} {
		t.Run(tc.status, func(t *testing.T) {
			b, err := builder.NewBookingBuilder().
				With(func(bb *builder.BookingBuilder) { bb.Status = tc.status }).
				BuildDomain()
			require.NoError(t, err)
			assert.Equal(t, tc.want, b.CanDelete())
		})
	}
}
