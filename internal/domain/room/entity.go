package room

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidCategory     = errors.New("invalid room category")
	ErrInvalidRoomStatus   = errors.New("invalid room status")
	ErrInvalidOccupancy    = errors.New("max occupancy must be at least 1")
	ErrNegativeBasePrice   = errors.New("base price cannot be negative")
	ErrEmptyRoomNumber     = errors.New("room number is required")
	ErrRoomHasActiveBooking = errors.New("room has an active booking")
)

type Category string

const (
	CategoryLuxury    Category = "luxury"
	CategoryExecutive Category = "executive"
	CategoryFamily    Category = "family"
	CategoryStandard  Category = "standard"
)

func NewCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryLuxury, CategoryExecutive, CategoryFamily, CategoryStandard:
		return Category(s), nil
	default:
		return "", ErrInvalidCategory
	}
}

func (c Category) String() string { return string(c) }

// Status is informational housekeeping state. It is not authoritative for
// booking conflicts; the booking table's date intervals are.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusOccupied    Status = "occupied"
	StatusReserved    Status = "reserved"
	StatusMaintenance Status = "maintenance"
	StatusCleaning    Status = "cleaning"
)

func NewStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusAvailable, StatusOccupied, StatusReserved, StatusMaintenance, StatusCleaning:
		return Status(s), nil
	default:
		return "", ErrInvalidRoomStatus
	}
}

func (s Status) String() string { return string(s) }

type RoomType struct {
	id           uuid.UUID
	name         string
	category     Category
	maxOccupancy int
	basePrice    int64 // cents
	amenities    []string
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewRoomType(name string, category Category, maxOccupancy int, basePriceCents int64, amenities []string, now time.Time) (*RoomType, error) {
	if maxOccupancy < 1 {
		return nil, ErrInvalidOccupancy
	}
	if basePriceCents < 0 {
		return nil, ErrNegativeBasePrice
	}
	return &RoomType{
		id:           uuid.New(),
		name:         name,
		category:     category,
		maxOccupancy: maxOccupancy,
		basePrice:    basePriceCents,
		amenities:    amenities,
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructRoomType(id uuid.UUID, name string, category Category, maxOccupancy int, basePriceCents int64, amenities []string, isActive bool, createdAt, updatedAt time.Time) *RoomType {
	return &RoomType{
		id:           id,
		name:         name,
		category:     category,
		maxOccupancy: maxOccupancy,
		basePrice:    basePriceCents,
		amenities:    amenities,
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (t *RoomType) ID() uuid.UUID        { return t.id }
func (t *RoomType) Name() string         { return t.name }
func (t *RoomType) Category() Category   { return t.category }
func (t *RoomType) MaxOccupancy() int    { return t.maxOccupancy }
func (t *RoomType) BasePriceCents() int64 { return t.basePrice }
func (t *RoomType) Amenities() []string  { return t.amenities }
func (t *RoomType) IsActive() bool       { return t.isActive }
func (t *RoomType) CreatedAt() time.Time { return t.createdAt }
func (t *RoomType) UpdatedAt() time.Time { return t.updatedAt }

type Room struct {
	id         uuid.UUID
	roomNumber string
	roomTypeID uuid.UUID
	floor      int
	status     Status
	notes      string
	imageURL   string
	createdAt  time.Time
	updatedAt  time.Time
}

func NewRoom(roomNumber string, roomTypeID uuid.UUID, floor int, status Status, notes, imageURL string, now time.Time) (*Room, error) {
	if roomNumber == "" {
		return nil, ErrEmptyRoomNumber
	}
	if status == "" {
		status = StatusAvailable
	} else if _, err := NewStatus(status.String()); err != nil {
		return nil, err
	}
	return &Room{
		id:         uuid.New(),
		roomNumber: roomNumber,
		roomTypeID: roomTypeID,
		floor:      floor,
		status:     status,
		notes:      notes,
		imageURL:   imageURL,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructRoom(id uuid.UUID, roomNumber string, roomTypeID uuid.UUID, floor int, status Status, notes, imageURL string, createdAt, updatedAt time.Time) *Room {
	return &Room{
		id:         id,
		roomNumber: roomNumber,
		roomTypeID: roomTypeID,
		floor:      floor,
		status:     status,
		notes:      notes,
		imageURL:   imageURL,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (r *Room) ID() uuid.UUID         { return r.id }
func (r *Room) RoomNumber() string    { return r.roomNumber }
func (r *Room) RoomTypeID() uuid.UUID { return r.roomTypeID }
func (r *Room) Floor() int            { return r.floor }
func (r *Room) Status() Status        { return r.status }
func (r *Room) Notes() string         { return r.notes }
func (r *Room) ImageURL() string      { return r.imageURL }
func (r *Room) CreatedAt() time.Time  { return r.createdAt }
func (r *Room) UpdatedAt() time.Time  { return r.updatedAt }
