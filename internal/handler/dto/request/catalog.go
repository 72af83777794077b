package request

import "github.com/google/uuid"

type CreateRoomTypeRequest struct {
	Name         string   `json:"name" binding:"required"`
	Category     string   `json:"category" binding:"required"`
	BasePrice    float64  `json:"base_price" binding:"required"`
	MaxOccupancy int      `json:"max_occupancy" binding:"required,min=1"`
	Amenities    []string `json:"amenities"`
}

type UpdateRoomTypeRequest struct {
	Name         *string   `json:"name,omitempty"`
	Category     *string   `json:"category,omitempty"`
	BasePrice    *float64  `json:"base_price,omitempty"`
	MaxOccupancy *int      `json:"max_occupancy,omitempty"`
	Amenities    *[]string `json:"amenities,omitempty"`
	IsActive     *bool     `json:"is_active,omitempty"`
}

type CreateRoomRequest struct {
	RoomNumber string    `json:"room_number" binding:"required"`
	RoomTypeID uuid.UUID `json:"room_type_id" binding:"required"`
	Floor      int       `json:"floor" binding:"required,min=0"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes"`
	ImageURL   string    `json:"image_url"`
}

type UpdateRoomRequest struct {
	RoomNumber *string    `json:"room_number,omitempty"`
	RoomTypeID *uuid.UUID `json:"room_type_id,omitempty"`
	Floor      *int       `json:"floor,omitempty"`
	Status     *string    `json:"status,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
	ImageURL   *string    `json:"image_url,omitempty"`
}
