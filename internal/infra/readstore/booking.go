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

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

const bookingViewSQL = `
SELECT b.id, b.booking_number,
       b.guest_id, g.first_name || CASE WHEN g.last_name = '' THEN '' ELSE ' ' || g.last_name END AS guest_name, g.email,
       b.room_id, r.room_number, rt.name AS room_type_name,
       b.check_in_date, b.check_out_date, b.total_nights,
       b.adults, b.children, b.infants,
       b.room_rate_cents, b.total_amount_cents, b.paid_amount_cents,
       b.status, b.payment_status,
       b.special_requests, b.notes, b.source, b.created_by,
       b.checked_in_at, b.checked_out_at, b.room_key_number,
       b.created_at, b.updated_at
FROM bookings b
JOIN guests g ON g.id = b.guest_id
JOIN rooms r ON r.id = b.room_id
JOIN room_types rt ON rt.id = r.room_type_id
WHERE b.id = $1`

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	v := &queries.BookingView{}
	var (
		bid, guestID, roomID, createdBy pgtype.UUID
		checkIn, checkOut               pgtype.Date
		checkedInAt, checkedOutAt       pgtype.Timestamptz
		createdAt, updatedAt            pgtype.Timestamptz
	)

	err := s.db.QueryRow(ctx, bookingViewSQL, pgconv.UUIDToPgtype(id)).Scan(
		&bid, &v.BookingNumber,
		&guestID, &v.GuestName, &v.GuestEmail,
		&roomID, &v.RoomNumber, &v.RoomTypeName,
		&checkIn, &checkOut, &v.TotalNights,
		&v.Adults, &v.Children, &v.Infants,
		&v.RoomRateCents, &v.TotalAmountCents, &v.PaidAmountCents,
		&v.Status, &v.PaymentStatus,
		&v.SpecialRequests, &v.Notes, &v.Source, &createdBy,
		&checkedInAt, &checkedOutAt, &v.RoomKeyNumber,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	v.ID = bid.Bytes
	v.GuestID = guestID.Bytes
	v.RoomID = roomID.Bytes
	v.CreatedBy = createdBy.Bytes
	v.CheckInDate = pgconv.DateFromPgtype(checkIn)
	v.CheckOutDate = pgconv.DateFromPgtype(checkOut)
	v.OutstandingCents = max64(0, v.TotalAmountCents-v.PaidAmountCents)
	v.CheckedInAt = pgconv.TimePtrFromPgtype(checkedInAt)
	v.CheckedOutAt = pgconv.TimePtrFromPgtype(checkedOutAt)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return v, nil
}

// List applies the filter as dynamic WHERE clauses. Search matches the
// booking number or the guest's name, case-insensitively.
func (s *BookingReadStore) List(ctx context.Context, filter queries.ListFilter) ([]*queries.BookingListItem, int64, error) {
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
		where = append(where, fmt.Sprintf("(b.booking_number ILIKE %s OR (g.first_name || ' ' || g.last_name) ILIKE %s)", p, p))
	}
	if filter.Status != nil && *filter.Status != "" {
		where = append(where, "b.status = "+arg(*filter.Status))
	}
	if filter.PaymentStatus != nil && *filter.PaymentStatus != "" {
		where = append(where, "b.payment_status = "+arg(*filter.PaymentStatus))
	}
	if filter.CheckInFrom != nil {
		where = append(where, "b.check_in_date >= "+arg(pgconv.DateToPgtype(*filter.CheckInFrom)))
	}
	if filter.CheckInTo != nil {
		where = append(where, "b.check_in_date < "+arg(pgconv.DateToPgtype(*filter.CheckInTo)))
	}

	whereClause := strings.Join(where, " AND ")

	countSQL := `
SELECT COUNT(*)
FROM bookings b
JOIN guests g ON g.id = b.guest_id
WHERE ` + whereClause

	var total int64
	if err := s.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count bookings", err)
	}

	listSQL := `
SELECT b.id, b.booking_number,
       g.first_name || CASE WHEN g.last_name = '' THEN '' ELSE ' ' || g.last_name END AS guest_name,
       r.room_number,
       b.check_in_date, b.check_out_date, b.total_nights,
       b.total_amount_cents, b.paid_amount_cents,
       b.status, b.payment_status, b.created_at
FROM bookings b
JOIN guests g ON g.id = b.guest_id
JOIN rooms r ON r.id = b.room_id
WHERE ` + whereClause + `
ORDER BY b.created_at DESC, b.id
LIMIT ` + arg(filter.Limit) + ` OFFSET ` + arg(filter.Offset)

	rows, err := s.db.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	items := []*queries.BookingListItem{}
	for rows.Next() {
		item := &queries.BookingListItem{}
		var (
			bid               pgtype.UUID
			checkIn, checkOut pgtype.Date
			createdAt         pgtype.Timestamptz
		)
		if err := rows.Scan(
			&bid, &item.BookingNumber, &item.GuestName, &item.RoomNumber,
			&checkIn, &checkOut, &item.TotalNights,
			&item.TotalAmountCents, &item.PaidAmountCents,
			&item.Status, &item.PaymentStatus, &createdAt,
		); err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan booking row", err)
		}
		item.ID = bid.Bytes
		item.CheckInDate = pgconv.DateFromPgtype(checkIn)
		item.CheckOutDate = pgconv.DateFromPgtype(checkOut)
		item.OutstandingCents = max64(0, item.TotalAmountCents-item.PaidAmountCents)
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to iterate booking rows", err)
	}

	return items, total, nil
}

// Stats aggregates over all bookings, independent of any list filter.
// Revenue counts money actually received, not amounts merely invoiced.
const bookingStatsSQL = `
SELECT COUNT(*),
       COUNT(*) FILTER (WHERE status = 'confirmed'),
       COUNT(*) FILTER (WHERE status = 'checked_in'),
       COALESCE(SUM(paid_amount_cents), 0),
       COALESCE(AVG(total_amount_cents) FILTER (WHERE status <> 'cancelled'), 0)::bigint
FROM bookings`

func (s *BookingReadStore) Stats(ctx context.Context) (*queries.BookingStats, error) {
	stats := &queries.BookingStats{}
	err := s.db.QueryRow(ctx, bookingStatsSQL).Scan(
		&stats.TotalBookings,
		&stats.ConfirmedBookings,
		&stats.CheckedInBookings,
		&stats.RevenueCents,
		&stats.AvgBookingValueCents,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to compute booking stats", err)
	}
	return stats, nil
}

const paymentEventsSQL = `
SELECT id, booking_id, amount_cents, method, transaction_id, processed_by, notes, created_at
FROM payment_events
WHERE booking_id = $1
ORDER BY created_at ASC`

func (s *BookingReadStore) FindPaymentsByBooking(ctx context.Context, bookingID uuid.UUID) ([]*queries.PaymentEventView, error) {
	rows, err := s.db.Query(ctx, paymentEventsSQL, pgconv.UUIDToPgtype(bookingID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list payment events", err)
	}
	defer rows.Close()

	events := []*queries.PaymentEventView{}
	for rows.Next() {
		ev := &queries.PaymentEventView{}
		var (
			eid, bid, processedBy pgtype.UUID
			transactionID         pgtype.Text
			createdAt             pgtype.Timestamptz
		)
		if err := rows.Scan(&eid, &bid, &ev.AmountCents, &ev.Method, &transactionID, &processedBy, &ev.Notes, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan payment event", err)
		}
		ev.ID = eid.Bytes
		ev.BookingID = bid.Bytes
		ev.TransactionID = pgconv.StringPtrFromPgtype(transactionID)
		ev.ProcessedBy = processedBy.Bytes
		ev.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate payment events", err)
	}
	return events, nil
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
