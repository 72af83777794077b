package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type RoomTypeView struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	BasePriceCents int64     `json:"base_price_cents"`
	MaxOccupancy   int       `json:"max_occupancy"`
	Amenities      []string  `json:"amenities"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type RoomView struct {
	ID             uuid.UUID `json:"id"`
	RoomNumber     string    `json:"room_number"`
	RoomTypeID     uuid.UUID `json:"room_type_id"`
	RoomTypeName   string    `json:"room_type_name"`
	Category       string    `json:"category"`
	Floor          int       `json:"floor"`
	BasePriceCents int64     `json:"base_price_cents"`
	MaxOccupancy   int       `json:"max_occupancy"`
	Status         string    `json:"status"`
	Notes          string    `json:"notes"`
	ImageURL       string    `json:"image_url"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type RoomListFilter struct {
	Status     *string
	Category   *string
	RoomTypeID *uuid.UUID
	Floor      *int
	Search     *string
	Limit      int
	Offset     int
}

type RoomListParams struct {
	Status     *string
	Category   *string
	RoomTypeID *uuid.UUID
	Floor      *int
	Search     *string
	Page       int
	Limit      int
}

type RoomList struct {
	Items      []*RoomView
	Pagination Pagination
}

// AvailableRoomsParams selects rooms free over a half-open stay window,
// optionally restricted to one room type.
type AvailableRoomsParams struct {
	CheckInDate  time.Time
	CheckOutDate time.Time
	RoomTypeID   *uuid.UUID
}

type CatalogQueries interface {
	RoomByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	ListRooms(ctx context.Context, params RoomListParams) (*RoomList, error)
	AvailableRooms(ctx context.Context, params AvailableRoomsParams) ([]*RoomView, error)
	RoomTypeByID(ctx context.Context, id uuid.UUID) (*RoomTypeView, error)
	ListRoomTypes(ctx context.Context, activeOnly bool) ([]*RoomTypeView, error)
}

type CatalogReadStore interface {
	FindRoomByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	ListRooms(ctx context.Context, filter RoomListFilter) ([]*RoomView, int64, error)
	FindAvailableRooms(ctx context.Context, params AvailableRoomsParams) ([]*RoomView, error)
	FindRoomTypeByID(ctx context.Context, id uuid.UUID) (*RoomTypeView, error)
	ListRoomTypes(ctx context.Context, activeOnly bool) ([]*RoomTypeView, error)
}

type catalogQueriesImpl struct {
	store CatalogReadStore
}

func NewCatalogQueries(store CatalogReadStore) CatalogQueries {
	return &catalogQueriesImpl{store: store}
}

func (q *catalogQueriesImpl) RoomByID(ctx context.Context, id uuid.UUID) (*RoomView, error) {
	return q.store.FindRoomByID(ctx, id)
}

func (q *catalogQueriesImpl) ListRooms(ctx context.Context, params RoomListParams) (*RoomList, error) {
	page := ValidatePage(params.Page)
	limit := ValidateLimit(params.Limit)

	filter := RoomListFilter{
		Status:     params.Status,
		Category:   params.Category,
		RoomTypeID: params.RoomTypeID,
		Floor:      params.Floor,
		Search:     params.Search,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}

	items, total, err := q.store.ListRooms(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &RoomList{
		Items:      items,
		Pagination: NewPagination(page, limit, total),
	}, nil
}

func (q *catalogQueriesImpl) AvailableRooms(ctx context.Context, params AvailableRoomsParams) ([]*RoomView, error) {
	return q.store.FindAvailableRooms(ctx, params)
}

func (q *catalogQueriesImpl) RoomTypeByID(ctx context.Context, id uuid.UUID) (*RoomTypeView, error) {
	return q.store.FindRoomTypeByID(ctx, id)
}

func (q *catalogQueriesImpl) ListRoomTypes(ctx context.Context, activeOnly bool) ([]*RoomTypeView, error) {
	return q.store.ListRoomTypes(ctx, activeOnly)
}
