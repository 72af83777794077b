package shared

import (
	"context"

	"stayops/internal/domain/booking"
	"stayops/internal/domain/expense"
	"stayops/internal/domain/guest"
	"stayops/internal/domain/room"
	"stayops/internal/domain/user"
	"stayops/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry on
	// serialization failures and deadlocks.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Bookings() BookingRepository
	PaymentEvents() PaymentEventRepository
	Rooms() RoomRepository
	RoomTypes() RoomTypeRepository
	Guests() GuestRepository
	Expenses() ExpenseRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

// CommandReads are the minimal lookups the write side needs for
// validation; they return snapshots, not read-model views.
type CommandReads interface {
	RoomByID(ctx context.Context, id uuid.UUID) (*RoomSnapshot, error)
	RoomTypeByID(ctx context.Context, id uuid.UUID) (*RoomTypeSnapshot, error)
	GuestByID(ctx context.Context, id uuid.UUID) (*GuestSnapshot, error)
}

type BookingRepository interface {
	Create(ctx context.Context, db db.DBTX, b *booking.Booking) (uuid.UUID, error)
	Update(ctx context.Context, db db.DBTX, b *booking.Booking) error
	Delete(ctx context.Context, db db.DBTX, id uuid.UUID) error
	FindByID(ctx context.Context, db db.DBTX, id uuid.UUID) (*booking.Booking, error)
	// HasOverlap checks for an active booking on the room whose date range
	// intersects stay, optionally excluding one booking id (for updates).
	HasOverlap(ctx context.Context, db db.DBTX, roomID uuid.UUID, stay booking.StayPeriod, excludeID *uuid.UUID) (bool, error)
	CountActiveForRoom(ctx context.Context, db db.DBTX, roomID uuid.UUID) (int64, error)
}

// PaymentEventRepository is append-only; the ledger is never mutated.
type PaymentEventRepository interface {
	Append(ctx context.Context, db db.DBTX, ev *booking.PaymentEvent) error
}

type RoomRepository interface {
	Create(ctx context.Context, db db.DBTX, r *room.Room) (uuid.UUID, error)
	Update(ctx context.Context, db db.DBTX, r *room.Room) error
	UpdateStatus(ctx context.Context, db db.DBTX, id uuid.UUID, status room.Status) error
	Delete(ctx context.Context, db db.DBTX, id uuid.UUID) error
}

type RoomTypeRepository interface {
	Create(ctx context.Context, db db.DBTX, t *room.RoomType) (uuid.UUID, error)
	Update(ctx context.Context, db db.DBTX, t *room.RoomType) error
	Delete(ctx context.Context, db db.DBTX, id uuid.UUID) error
}

type GuestRepository interface {
	Create(ctx context.Context, db db.DBTX, g *guest.Guest) (uuid.UUID, error)
	Update(ctx context.Context, db db.DBTX, g *guest.Guest) error
	Delete(ctx context.Context, db db.DBTX, id uuid.UUID) error
}

type ExpenseRepository interface {
	Create(ctx context.Context, db db.DBTX, e *expense.Expense) (uuid.UUID, error)
	Update(ctx context.Context, db db.DBTX, e *expense.Expense) error
	Delete(ctx context.Context, db db.DBTX, id uuid.UUID) error
	FindByID(ctx context.Context, db db.DBTX, id uuid.UUID) (*expense.Expense, error)
}

type UserRepository interface {
	Create(ctx context.Context, db db.DBTX, u *user.User) (uuid.UUID, error)
	Update(ctx context.Context, db db.DBTX, u *user.User) error
	UpdateLastLogin(ctx context.Context, db db.DBTX, id uuid.UUID) error
	Delete(ctx context.Context, db db.DBTX, id uuid.UUID) error
	FindByID(ctx context.Context, db db.DBTX, id uuid.UUID) (*user.User, error)
}
