//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// Fixed IDs for the reference rows seeded by SeedReferenceData so tests can
// refer to them directly.
var (
	SeedAdminUserID      = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	SeedRoomTypeID       = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	SeedRoomID           = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	SeedSecondRoomID     = uuid.MustParse("44444444-4444-4444-4444-444444444444")
	SeedAdminEmail       = "admin@stayops.test"
	SeedRoomNumber       = "101"
	SeedSecondRoomNumber = "102"
)

// bcrypt hash of "password123"
const testPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO users (id, email, password_hash, role, is_active) VALUES ($1, $2, $3, $4, true) ON CONFLICT (email) DO NOTHING",
		userID, email, testPasswordHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

func CreateTestGuest(t *testing.T, db DBLike, firstName, lastName string) uuid.UUID {
	t.Helper()

	guestID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO guests (id, first_name, last_name, email, phone) VALUES ($1, $2, $3, $4, '')",
		guestID, firstName, lastName, strings.ToLower(firstName)+"."+strings.ToLower(lastName)+"@example.com")
	require.NoError(t, err)

	return guestID
}

func CreateTestRoom(t *testing.T, db DBLike, roomNumber string, roomTypeID uuid.UUID) uuid.UUID {
	t.Helper()

	roomID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO rooms (id, room_number, room_type_id, floor, status) VALUES ($1, $2, $3, 1, 'available') ON CONFLICT (room_number) DO NOTHING",
		roomID, roomNumber, roomTypeID)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM rooms WHERE room_number = $1", roomNumber).Scan(&roomID)
	}

	return roomID
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, role, is_active) VALUES
		    ($1, $2, $3, 'admin', true)
		ON CONFLICT (id) DO NOTHING;
	`, SeedAdminUserID, SeedAdminEmail, testPasswordHash)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO room_types (id, name, category, max_occupancy, base_price_cents, amenities) VALUES
		    ($1, 'Standard Double', 'standard', 3, 12000, '{"wifi","tv"}')
		ON CONFLICT (id) DO NOTHING;
	`, SeedRoomTypeID)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO rooms (id, room_number, room_type_id, floor, status) VALUES
		    ($1, $2, $3, 1, 'available'),
		    ($4, $5, $3, 1, 'available')
		ON CONFLICT (id) DO NOTHING;
	`, SeedRoomID, SeedRoomNumber, SeedRoomTypeID, SeedSecondRoomID, SeedSecondRoomNumber)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
