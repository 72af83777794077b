package repository

import (
	"context"

	"stayops/internal/domain/room"
	"stayops/internal/infra"
	"stayops/internal/infra/db"
	"stayops/internal/pkg/pgconv"
	"stayops/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RoomRepository struct{}

func NewRoomRepository() shared.RoomRepository {
	return &RoomRepository{}
}

const insertRoomSQL = `
INSERT INTO rooms (id, room_number, room_type_id, floor, status, notes, image_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`

func (r *RoomRepository) Create(ctx context.Context, dbtx db.DBTX, rm *room.Room) (uuid.UUID, error) {
	var id pgtype.UUID
	err := dbtx.QueryRow(ctx, insertRoomSQL,
		pgconv.UUIDToPgtype(rm.ID()),
		rm.RoomNumber(),
		pgconv.UUIDToPgtype(rm.RoomTypeID()),
		rm.Floor(),
		rm.Status().String(),
		rm.Notes(),
		rm.ImageURL(),
		pgconv.TimeToPgtype(rm.CreatedAt()),
		pgconv.TimeToPgtype(rm.UpdatedAt()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapPgErr("failed to create room", err)
	}
	return id.Bytes, nil
}

const updateRoomSQL = `
UPDATE rooms SET
    room_number = $2, room_type_id = $3, floor = $4,
    status = $5, notes = $6, image_url = $7, updated_at = $8
WHERE id = $1`

func (r *RoomRepository) Update(ctx context.Context, dbtx db.DBTX, rm *room.Room) error {
	tag, err := dbtx.Exec(ctx, updateRoomSQL,
		pgconv.UUIDToPgtype(rm.ID()),
		rm.RoomNumber(),
		pgconv.UUIDToPgtype(rm.RoomTypeID()),
		rm.Floor(),
		rm.Status().String(),
		rm.Notes(),
		rm.ImageURL(),
		pgconv.TimeToPgtype(rm.UpdatedAt()),
	)
	if err != nil {
		return wrapPgErr("failed to update room", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *RoomRepository) UpdateStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, status room.Status) error {
	tag, err := dbtx.Exec(ctx,
		`UPDATE rooms SET status = $2, updated_at = now() WHERE id = $1`,
		pgconv.UUIDToPgtype(id), status.String(),
	)
	if err != nil {
		return wrapPgErr("failed to update room status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *RoomRepository) Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, pgconv.UUIDToPgtype(id))
	if err != nil {
		return wrapPgErr("failed to delete room", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return nil
}

type RoomTypeRepository struct{}

func NewRoomTypeRepository() shared.RoomTypeRepository {
	return &RoomTypeRepository{}
}

const insertRoomTypeSQL = `
INSERT INTO room_types (id, name, category, max_occupancy, base_price_cents, amenities, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`

func (r *RoomTypeRepository) Create(ctx context.Context, dbtx db.DBTX, t *room.RoomType) (uuid.UUID, error) {
	var id pgtype.UUID
	err := dbtx.QueryRow(ctx, insertRoomTypeSQL,
		pgconv.UUIDToPgtype(t.ID()),
		t.Name(),
		t.Category().String(),
		t.MaxOccupancy(),
		t.BasePriceCents(),
		t.Amenities(),
		t.IsActive(),
		pgconv.TimeToPgtype(t.CreatedAt()),
		pgconv.TimeToPgtype(t.UpdatedAt()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapPgErr("failed to create room type", err)
	}
	return id.Bytes, nil
}

const updateRoomTypeSQL = `
UPDATE room_types SET
    name = $2, category = $3, max_occupancy = $4,
    base_price_cents = $5, amenities = $6, is_active = $7, updated_at = $8
WHERE id = $1`

func (r *RoomTypeRepository) Update(ctx context.Context, dbtx db.DBTX, t *room.RoomType) error {
	tag, err := dbtx.Exec(ctx, updateRoomTypeSQL,
		pgconv.UUIDToPgtype(t.ID()),
		t.Name(),
		t.Category().String(),
		t.MaxOccupancy(),
		t.BasePriceCents(),
		t.Amenities(),
		t.IsActive(),
		pgconv.TimeToPgtype(t.UpdatedAt()),
	)
	if err != nil {
		return wrapPgErr("failed to update room type", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room type not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *RoomTypeRepository) Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, `DELETE FROM room_types WHERE id = $1`, pgconv.UUIDToPgtype(id))
	if err != nil {
		return wrapPgErr("failed to delete room type", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room type not found", nil, infra.KindNotFound)
	}
	return nil
}
