//go:build unit

package queries_test

import (
	"testing"
	"time"

	"stayops/internal/usecase/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDateRange(t *testing.T) {
	// Wednesday, 2026-03-11.
	now := time.Date(2026, 3, 11, 17, 45, 0, 0, time.UTC)
	day := func(d int) time.Time {
		return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		from time.Time
		to   time.Time
	}{
		{"today", day(11), day(12)},
		{"tomorrow", day(12), day(13)},
		{"this_week", day(9), day(16)},
		{"next_week", day(16), day(23)},
		{"this_month", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			from, to, err := queries.ResolveDateRange(tc.name, now)
			require.NoError(t, err)
			assert.Equal(t, tc.from, from)
			assert.Equal(t, tc.to, to)
		})
	}

	t.Run("monday belongs to its own week", func(t *testing.T) {
		monday := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
		from, to, err := queries.ResolveDateRange("this_week", monday)
		require.NoError(t, err)
		assert.Equal(t, day(9), from)
		assert.Equal(t, day(16), to)
	})

	t.Run("sunday closes the week", func(t *testing.T) {
		sunday := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
		from, _, err := queries.ResolveDateRange("this_week", sunday)
		require.NoError(t, err)
		assert.Equal(t, day(9), from)
	})

	t.Run("unknown name is rejected", func(t *testing.T) {
		_, _, err := queries.ResolveDateRange("last_year", now)
		require.ErrorIs(t, err, queries.ErrInvalidDateRangeFilter)
	})
}

func TestValidatePagination(t *testing.T) {
	assert.Equal(t, 1, queries.ValidatePage(0))
	assert.Equal(t, 1, queries.ValidatePage(-3))
	assert.Equal(t, 7, queries.ValidatePage(7))

	assert.Equal(t, 10, queries.ValidateLimit(0))
	assert.Equal(t, 100, queries.ValidateLimit(500))
	assert.Equal(t, 25, queries.ValidateLimit(25))
}
