package repository

import (
	"context"

	"stayops/internal/domain/booking"
	"stayops/internal/infra"
	"stayops/internal/infra/db"
	"stayops/internal/pkg/pgconv"
	"stayops/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingRepository struct{}

func NewBookingRepository() shared.BookingRepository {
	return &BookingRepository{}
}

const insertBookingSQL = `
INSERT INTO bookings (
    id, booking_number, guest_id, room_id,
    check_in_date, check_out_date, total_nights,
    adults, children, infants,
    room_rate_cents, total_amount_cents, paid_amount_cents,
    status, payment_status,
    special_requests, notes, source, created_by,
    checked_in_at, checked_out_at, room_key_number,
    created_at, updated_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
    $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24
)
RETURNING id`

func (r *BookingRepository) Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	var id pgtype.UUID
	err := dbtx.QueryRow(ctx, insertBookingSQL,
		pgconv.UUIDToPgtype(b.ID()),
		b.BookingNumber(),
		pgconv.UUIDToPgtype(b.GuestID()),
		pgconv.UUIDToPgtype(b.RoomID()),
		pgconv.DateToPgtype(b.Stay().CheckIn()),
		pgconv.DateToPgtype(b.Stay().CheckOut()),
		b.TotalNights(),
		b.Party().Adults(),
		b.Party().Children(),
		b.Party().Infants(),
		b.RoomRate().Cents(),
		b.TotalAmount().Cents(),
		b.PaidAmount().Cents(),
		b.Status().String(),
		b.PaymentStatus().String(),
		b.Details().SpecialRequests,
		b.Details().Notes,
		b.Details().Source,
		pgconv.UUIDToPgtype(b.CreatedBy()),
		pgconv.TimePtrToPgtype(b.CheckedInAt()),
		pgconv.TimePtrToPgtype(b.CheckedOutAt()),
		b.RoomKeyNumber(),
		pgconv.TimeToPgtype(b.CreatedAt()),
		pgconv.TimeToPgtype(b.UpdatedAt()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapPgErr("failed to create booking", err)
	}
	return id.Bytes, nil
}

const updateBookingSQL = `
UPDATE bookings SET
    guest_id = $2, room_id = $3,
    check_in_date = $4, check_out_date = $5, total_nights = $6,
    adults = $7, children = $8, infants = $9,
    room_rate_cents = $10, total_amount_cents = $11, paid_amount_cents = $12,
    status = $13, payment_status = $14,
    special_requests = $15, notes = $16, source = $17,
    checked_in_at = $18, checked_out_at = $19, room_key_number = $20,
    updated_at = $21
WHERE id = $1`

func (r *BookingRepository) Update(ctx context.Context, dbtx db.DBTX, b *booking.Booking) error {
	tag, err := dbtx.Exec(ctx, updateBookingSQL,
		pgconv.UUIDToPgtype(b.ID()),
		pgconv.UUIDToPgtype(b.GuestID()),
		pgconv.UUIDToPgtype(b.RoomID()),
		pgconv.DateToPgtype(b.Stay().CheckIn()),
		pgconv.DateToPgtype(b.Stay().CheckOut()),
		b.TotalNights(),
		b.Party().Adults(),
		b.Party().Children(),
		b.Party().Infants(),
		b.RoomRate().Cents(),
		b.TotalAmount().Cents(),
		b.PaidAmount().Cents(),
		b.Status().String(),
		b.PaymentStatus().String(),
		b.Details().SpecialRequests,
		b.Details().Notes,
		b.Details().Source,
		pgconv.TimePtrToPgtype(b.CheckedInAt()),
		pgconv.TimePtrToPgtype(b.CheckedOutAt()),
		b.RoomKeyNumber(),
		pgconv.TimeToPgtype(b.UpdatedAt()),
	)
	if err != nil {
		return wrapPgErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, pgconv.UUIDToPgtype(id))
	if err != nil {
		return wrapPgErr("failed to delete booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

const findBookingSQL = `
SELECT id, booking_number, guest_id, room_id,
       check_in_date, check_out_date,
       adults, children, infants,
       room_rate_cents, total_amount_cents, paid_amount_cents,
       status, payment_status,
       special_requests, notes, source, created_by,
       checked_in_at, checked_out_at, room_key_number,
       created_at, updated_at
FROM bookings
WHERE id = $1`

func (r *BookingRepository) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	var (
		bid, guestID, roomID, createdBy        pgtype.UUID
		bookingNumber                          string
		checkInDate, checkOutDate              pgtype.Date
		adults, children, infants              int
		rateCents, totalCents, paidCents       int64
		status, paymentStatus                  string
		specialRequests, notes, source         string
		checkedInAt, checkedOutAt              pgtype.Timestamptz
		roomKeyNumber                          string
		createdAt, updatedAt                   pgtype.Timestamptz
	)

	err := dbtx.QueryRow(ctx, findBookingSQL, pgconv.UUIDToPgtype(id)).Scan(
		&bid, &bookingNumber, &guestID, &roomID,
		&checkInDate, &checkOutDate,
		&adults, &children, &infants,
		&rateCents, &totalCents, &paidCents,
		&status, &paymentStatus,
		&specialRequests, &notes, &source, &createdBy,
		&checkedInAt, &checkedOutAt, &roomKeyNumber,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, wrapPgErr("failed to find booking", err)
	}

	stay, err := booking.NewStayPeriod(pgconv.DateFromPgtype(checkInDate), pgconv.DateFromPgtype(checkOutDate))
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt stay period", err)
	}
	party, err := booking.NewPartySize(adults, children, infants)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt party size", err)
	}

	return booking.ReconstructBooking(
		bid.Bytes, bookingNumber, guestID.Bytes, roomID.Bytes,
		stay, party,
		booking.NewMoney(rateCents), booking.NewMoney(totalCents), booking.NewMoney(paidCents),
		booking.Status(status), booking.PaymentStatus(paymentStatus),
		booking.Details{SpecialRequests: specialRequests, Notes: notes, Source: source},
		createdBy.Bytes,
		pgconv.TimePtrFromPgtype(checkedInAt), pgconv.TimePtrFromPgtype(checkedOutAt),
		roomKeyNumber,
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}

const hasOverlapSQL = `
SELECT EXISTS (
    SELECT 1 FROM bookings
    WHERE room_id = $1
      AND status IN ('confirmed', 'checked_in')
      AND daterange(check_in_date, check_out_date) && daterange($2, $3)
      AND ($4::uuid IS NULL OR id <> $4)
)`

func (r *BookingRepository) HasOverlap(ctx context.Context, dbtx db.DBTX, roomID uuid.UUID, stay booking.StayPeriod, excludeID *uuid.UUID) (bool, error) {
	var exists bool
	err := dbtx.QueryRow(ctx, hasOverlapSQL,
		pgconv.UUIDToPgtype(roomID),
		pgconv.DateToPgtype(stay.CheckIn()),
		pgconv.DateToPgtype(stay.CheckOut()),
		pgconv.UUIDPtrToPgtype(excludeID),
	).Scan(&exists)
	if err != nil {
		return false, wrapPgErr("failed to check booking overlap", err)
	}
	return exists, nil
}

func (r *BookingRepository) CountActiveForRoom(ctx context.Context, dbtx db.DBTX, roomID uuid.UUID) (int64, error) {
	var count int64
	err := dbtx.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE room_id = $1 AND status IN ('confirmed', 'checked_in')`,
		pgconv.UUIDToPgtype(roomID),
	).Scan(&count)
	if err != nil {
		return 0, wrapPgErr("failed to count active bookings", err)
	}
	return count, nil
}

type PaymentEventRepository struct{}

func NewPaymentEventRepository() shared.PaymentEventRepository {
	return &PaymentEventRepository{}
}

const insertPaymentEventSQL = `
INSERT INTO payment_events (
    id, booking_id, amount_cents, method, transaction_id, processed_by, notes, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func (r *PaymentEventRepository) Append(ctx context.Context, dbtx db.DBTX, ev *booking.PaymentEvent) error {
	_, err := dbtx.Exec(ctx, insertPaymentEventSQL,
		pgconv.UUIDToPgtype(ev.ID()),
		pgconv.UUIDToPgtype(ev.BookingID()),
		ev.Amount().Cents(),
		ev.Method(),
		pgconv.StringPtrToPgtype(ev.TransactionID()),
		pgconv.UUIDToPgtype(ev.ProcessedBy()),
		ev.Notes(),
		pgconv.TimeToPgtype(ev.CreatedAt()),
	)
	if err != nil {
		return wrapPgErr("failed to append payment event", err)
	}
	return nil
}
