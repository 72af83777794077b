//go:build unit

package booking_test

import (
	"strings"
	"testing"
	"time"

	"stayops/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStayPeriod(t *testing.T) {
	t.Run("nights are counted per calendar night", func(t *testing.T) {
		stay, err := booking.NewStayPeriod(date(2026, 3, 12), date(2026, 3, 15))
		require.NoError(t, err)
		assert.Equal(t, 3, stay.Nights())
	})

	t.Run("time of day is normalized away", func(t *testing.T) {
		stay, err := booking.NewStayPeriod(
			time.Date(2026, 3, 12, 23, 45, 0, 0, time.UTC),
			time.Date(2026, 3, 13, 1, 10, 0, 0, time.UTC),
		)
		require.NoError(t, err)
		assert.Equal(t, 1, stay.Nights())
		assert.Equal(t, date(2026, 3, 12), stay.CheckIn())
	})

	t.Run("check-out must be after check-in", func(t *testing.T) {
		_, err := booking.NewStayPeriod(date(2026, 3, 12), date(2026, 3, 12))
		require.ErrorIs(t, err, booking.ErrInvalidDateRange)

		_, err = booking.NewStayPeriod(date(2026, 3, 12), date(2026, 3, 10))
		require.ErrorIs(t, err, booking.ErrInvalidDateRange)
	})

	t.Run("half-open overlap semantics", func(t *testing.T) {
		a, err := booking.NewStayPeriod(date(2026, 3, 12), date(2026, 3, 15))
		require.NoError(t, err)

		overlapping, err := booking.NewStayPeriod(date(2026, 3, 14), date(2026, 3, 16))
		require.NoError(t, err)
		assert.True(t, a.Overlaps(overlapping))

		// Back-to-back: next guest checks in on the check-out day.
		backToBack, err := booking.NewStayPeriod(date(2026, 3, 15), date(2026, 3, 17))
		require.NoError(t, err)
		assert.False(t, a.Overlaps(backToBack))

		contained, err := booking.NewStayPeriod(date(2026, 3, 13), date(2026, 3, 14))
		require.NoError(t, err)
		assert.True(t, a.Overlaps(contained))
	})
}

func TestMoney(t *testing.T) {
	t.Run("boundary conversion rounds half away from zero", func(t *testing.T) {
		assert.Equal(t, int64(12050), booking.NewMoneyFromAmount(120.50).Cents())
		assert.Equal(t, int64(100), booking.NewMoneyFromAmount(0.995).Cents())
		assert.Equal(t, int64(-100), booking.NewMoneyFromAmount(-0.995).Cents())
		assert.InDelta(t, 120.50, booking.NewMoney(12050).Amount(), 0.0001)
	})

	t.Run("arithmetic stays in cents", func(t *testing.T) {
		total := booking.NewMoney(12000).MulNights(3).Add(booking.NewMoney(1500))
		assert.Equal(t, int64(37500), total.Cents())
		assert.Equal(t, int64(-500), booking.NewMoney(1000).Sub(booking.NewMoney(1500)).Cents())
		assert.True(t, booking.NewMoney(-500).FloorZero().IsZero())
	})
}

func TestPartySize(t *testing.T) {
	_, err := booking.NewPartySize(0, 0, 0)
	require.ErrorIs(t, err, booking.ErrInvalidPartySize)

	_, err = booking.NewPartySize(1, -1, 0)
	require.ErrorIs(t, err, booking.ErrInvalidPartySize)

	p, err := booking.NewPartySize(2, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Adults())
	assert.Equal(t, 1, p.Children())
	assert.Equal(t, 1, p.Infants())
}

func TestNewBookingNumber(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 12, 0, time.UTC)
	n := booking.NewBookingNumber(now)
	assert.True(t, strings.HasPrefix(n, "BK20260310153012"), n)

	// Suffixes make simultaneous bookings distinguishable in practice.
	other := booking.NewBookingNumber(now)
	assert.NotEqual(t, n, other)
}
