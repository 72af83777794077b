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

type CatalogReadStore struct {
	db db.DBTX
}

func NewCatalogReadStore(dbtx db.DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: dbtx}
}

const roomViewSQL = `
SELECT r.id, r.room_number, r.room_type_id, rt.name, rt.category,
       r.floor, rt.base_price_cents, rt.max_occupancy,
       r.status, r.notes, r.image_url, r.created_at, r.updated_at
FROM rooms r
JOIN room_types rt ON rt.id = r.room_type_id`

func (s *CatalogReadStore) FindRoomByID(ctx context.Context, id uuid.UUID) (*queries.RoomView, error) {
	row := s.db.QueryRow(ctx, roomViewSQL+` WHERE r.id = $1`, pgconv.UUIDToPgtype(id))
	v, err := scanRoomView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room by ID", err)
	}
	return v, nil
}

func (s *CatalogReadStore) ListRooms(ctx context.Context, filter queries.RoomListFilter) ([]*queries.RoomView, int64, error) {
	where := []string{"1=1"}
	args := []any{}
	n := 0

	arg := func(v any) string {
		n++
		args = append(args, v)
		return fmt.Sprintf("$%d", n)
	}

	if filter.Status != nil && *filter.Status != "" {
		where = append(where, "r.status = "+arg(*filter.Status))
	}
	if filter.Category != nil && *filter.Category != "" {
		where = append(where, "rt.category = "+arg(*filter.Category))
	}
	if filter.RoomTypeID != nil {
		where = append(where, "r.room_type_id = "+arg(pgconv.UUIDToPgtype(*filter.RoomTypeID)))
	}
	if filter.Floor != nil {
		where = append(where, "r.floor = "+arg(*filter.Floor))
	}
	if filter.Search != nil && *filter.Search != "" {
		where = append(where, "r.room_number ILIKE "+arg("%"+*filter.Search+"%"))
	}

	whereClause := strings.Join(where, " AND ")

	countSQL := `
SELECT COUNT(*)
FROM rooms r
JOIN room_types rt ON rt.id = r.room_type_id
WHERE ` + whereClause

	var total int64
	if err := s.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count rooms", err)
	}

	listSQL := roomViewSQL + `
WHERE ` + whereClause + `
ORDER BY r.room_number ASC
LIMIT ` + arg(filter.Limit) + ` OFFSET ` + arg(filter.Offset)

	rows, err := s.db.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list rooms", err)
	}
	defer rows.Close()

	items := []*queries.RoomView{}
	for rows.Next() {
		v, err := scanRoomView(rows)
		if err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan room row", err)
		}
		items = append(items, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to iterate room rows", err)
	}
	return items, total, nil
}

// FindAvailableRooms returns rooms with no active booking intersecting the
// requested window. Housekeeping status is not consulted; bookings are the
// source of truth for availability.
const availableRoomsSQL = roomViewSQL + `
WHERE NOT EXISTS (
    SELECT 1 FROM bookings b
    WHERE b.room_id = r.id
      AND b.status IN ('confirmed', 'checked_in')
      AND daterange(b.check_in_date, b.check_out_date) && daterange($1, $2)
)
AND ($3::uuid IS NULL OR r.room_type_id = $3)
ORDER BY r.room_number ASC`

func (s *CatalogReadStore) FindAvailableRooms(ctx context.Context, params queries.AvailableRoomsParams) ([]*queries.RoomView, error) {
	rows, err := s.db.Query(ctx, availableRoomsSQL,
		pgconv.DateToPgtype(params.CheckInDate),
		pgconv.DateToPgtype(params.CheckOutDate),
		pgconv.UUIDPtrToPgtype(params.RoomTypeID),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find available rooms", err)
	}
	defer rows.Close()

	items := []*queries.RoomView{}
	for rows.Next() {
		v, err := scanRoomView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan room row", err)
		}
		items = append(items, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate room rows", err)
	}
	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoomView(row rowScanner) (*queries.RoomView, error) {
	v := &queries.RoomView{}
	var (
		rid, typeID          pgtype.UUID
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&rid, &v.RoomNumber, &typeID, &v.RoomTypeName, &v.Category,
		&v.Floor, &v.BasePriceCents, &v.MaxOccupancy,
		&v.Status, &v.Notes, &v.ImageURL, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.ID = rid.Bytes
	v.RoomTypeID = typeID.Bytes
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return v, nil
}

const roomTypeViewSQL = `
SELECT id, name, category, base_price_cents, max_occupancy, amenities, is_active, created_at, updated_at
FROM room_types`

func (s *CatalogReadStore) FindRoomTypeByID(ctx context.Context, id uuid.UUID) (*queries.RoomTypeView, error) {
	row := s.db.QueryRow(ctx, roomTypeViewSQL+` WHERE id = $1`, pgconv.UUIDToPgtype(id))
	v, err := scanRoomTypeView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room type not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room type by ID", err)
	}
	return v, nil
}

func (s *CatalogReadStore) ListRoomTypes(ctx context.Context, activeOnly bool) ([]*queries.RoomTypeView, error) {
	sql := roomTypeViewSQL
	if activeOnly {
		sql += ` WHERE is_active`
	}
	sql += ` ORDER BY name ASC`

	rows, err := s.db.Query(ctx, sql)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list room types", err)
	}
	defer rows.Close()

	items := []*queries.RoomTypeView{}
	for rows.Next() {
		v, err := scanRoomTypeView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan room type row", err)
		}
		items = append(items, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate room type rows", err)
	}
	return items, nil
}

func scanRoomTypeView(row rowScanner) (*queries.RoomTypeView, error) {
	v := &queries.RoomTypeView{}
	var (
		tid                  pgtype.UUID
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&tid, &v.Name, &v.Category, &v.BasePriceCents, &v.MaxOccupancy,
		&v.Amenities, &v.IsActive, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.ID = tid.Bytes
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return v, nil
}
