package repository

import (
	"context"

	"stayops/internal/infra/db"
	"stayops/internal/pkg/pgconv"
	"stayops/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Command-side snapshot lookups. These are the minimal reads the write
// path needs for validation inside a transaction.

func FindRoomSnapshot(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.RoomSnapshot, error) {
	var (
		rid, typeID pgtype.UUID
		roomNumber  string
		status      string
	)
	err := dbtx.QueryRow(ctx,
		`SELECT id, room_number, room_type_id, status FROM rooms WHERE id = $1`,
		pgconv.UUIDToPgtype(id),
	).Scan(&rid, &roomNumber, &typeID, &status)
	if err != nil {
		return nil, wrapPgErr("failed to find room", err)
	}
	return &shared.RoomSnapshot{
		ID:         rid.Bytes,
		RoomNumber: roomNumber,
		RoomTypeID: typeID.Bytes,
		Status:     status,
	}, nil
}

func FindRoomTypeSnapshot(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.RoomTypeSnapshot, error) {
	var (
		tid            pgtype.UUID
		name           string
		basePriceCents int64
		maxOccupancy   int
		isActive       bool
	)
	err := dbtx.QueryRow(ctx,
		`SELECT id, name, base_price_cents, max_occupancy, is_active FROM room_types WHERE id = $1`,
		pgconv.UUIDToPgtype(id),
	).Scan(&tid, &name, &basePriceCents, &maxOccupancy, &isActive)
	if err != nil {
		return nil, wrapPgErr("failed to find room type", err)
	}
	return &shared.RoomTypeSnapshot{
		ID:             tid.Bytes,
		Name:           name,
		BasePriceCents: basePriceCents,
		MaxOccupancy:   maxOccupancy,
		IsActive:       isActive,
	}, nil
}

func FindGuestSnapshot(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.GuestSnapshot, error) {
	var (
		gid                        pgtype.UUID
		firstName, lastName, email string
	)
	err := dbtx.QueryRow(ctx,
		`SELECT id, first_name, last_name, email FROM guests WHERE id = $1`,
		pgconv.UUIDToPgtype(id),
	).Scan(&gid, &firstName, &lastName, &email)
	if err != nil {
		return nil, wrapPgErr("failed to find guest", err)
	}
	fullName := firstName
	if lastName != "" {
		fullName = firstName + " " + lastName
	}
	return &shared.GuestSnapshot{
		ID:       gid.Bytes,
		FullName: fullName,
		Email:    email,
	}, nil
}
