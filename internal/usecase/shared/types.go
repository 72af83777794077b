package shared

import (
	"github.com/google/uuid"
)

// Write-side snapshots keep commands independent of read-side view types.
type RoomSnapshot struct {
	ID         uuid.UUID
	RoomNumber string
	RoomTypeID uuid.UUID
	Status     string
}

type RoomTypeSnapshot struct {
	ID             uuid.UUID
	Name           string
	BasePriceCents int64
	MaxOccupancy   int
	IsActive       bool
}

type GuestSnapshot struct {
	ID       uuid.UUID
	FullName string
	Email    string
}
