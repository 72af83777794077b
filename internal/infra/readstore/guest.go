package readstore

import (
	"context"
	"fmt"
	"strings"

	"stayops/internal/infra"
	"stayops/internal/infra/db"
	"stayops/internal/pkg/pgconv"
	"stayops/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type GuestReadStore struct {
	db db.DBTX
}

func NewGuestReadStore(dbtx db.DBTX) *GuestReadStore {
	return &GuestReadStore{db: dbtx}
}

// Booking aggregates per guest ride along on every read; total spent is
// money actually received.
const guestViewSQL = `
SELECT g.id, g.first_name, g.last_name, g.email, g.phone, g.document_id,
       g.address, g.notes,
       COUNT(b.id), COALESCE(SUM(b.paid_amount_cents), 0),
       g.created_at, g.updated_at
FROM guests g
LEFT JOIN bookings b ON b.guest_id = g.id`

const guestViewGroupBy = `
GROUP BY g.id, g.first_name, g.last_name, g.email, g.phone, g.document_id,
         g.address, g.notes, g.created_at, g.updated_at`

func (s *GuestReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.GuestView, error) {
	row := s.db.QueryRow(ctx, guestViewSQL+` WHERE g.id = $1`+guestViewGroupBy, pgconv.UUIDToPgtype(id))
	v, err := scanGuestView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("guest not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find guest by ID", err)
	}
	return v, nil
}

func (s *GuestReadStore) List(ctx context.Context, filter queries.GuestListFilter) ([]*queries.GuestView, int64, error) {
	where := []string{"1=1"}
	args := []any{}
	n := 0

	arg := func(v any) string {
		n++
		args = append(args, v)
		return fmt.Sprintf("$%d", n)
	}

	if filter.Search != nil && *filter.Search != "" {
		p := arg("%" + *filter.Search + "%")
		where = append(where, fmt.Sprintf(
			"((g.first_name || ' ' || g.last_name) ILIKE %s OR g.email ILIKE %s OR g.phone ILIKE %s)", p, p, p))
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM guests g WHERE `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count guests", err)
	}

	listSQL := guestViewSQL + `
WHERE ` + whereClause + guestViewGroupBy + `
ORDER BY g.created_at DESC
LIMIT ` + arg(filter.Limit) + ` OFFSET ` + arg(filter.Offset)

	rows, err := s.db.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list guests", err)
	}
	defer rows.Close()

	items := []*queries.GuestView{}
	for rows.Next() {
		v, err := scanGuestView(rows)
		if err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan guest row", err)
		}
		items = append(items, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to iterate guest rows", err)
	}
	return items, total, nil
}

func scanGuestView(row rowScanner) (*queries.GuestView, error) {
	v := &queries.GuestView{}
	var (
		gid                  pgtype.UUID
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&gid, &v.FirstName, &v.LastName, &v.Email, &v.Phone, &v.DocumentID,
		&v.Address, &v.Notes,
		&v.TotalBookings, &v.TotalSpentCents,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.ID = gid.Bytes
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return v, nil
}
