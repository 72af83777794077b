package response

import (
	"time"

	"stayops/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type RoomTypeResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	BasePrice    float64   `json:"basePrice"`
	MaxOccupancy int       `json:"maxOccupancy"`
	Amenities    []string  `json:"amenities"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func FromRoomTypeView(v *queries.RoomTypeView) *RoomTypeResponse {
	resp := &RoomTypeResponse{}
	// Names align except the money field, which converts from cents.
	_ = copier.Copy(resp, v)
	resp.BasePrice = amount(v.BasePriceCents)
	return resp
}

func FromRoomTypeViews(views []*queries.RoomTypeView) []*RoomTypeResponse {
	out := make([]*RoomTypeResponse, len(views))
	for i, v := range views {
		out[i] = FromRoomTypeView(v)
	}
	return out
}

type RoomResponse struct {
	ID           uuid.UUID `json:"id"`
	RoomNumber   string    `json:"roomNumber"`
	RoomTypeID   uuid.UUID `json:"roomTypeId"`
	RoomTypeName string    `json:"roomTypeName"`
	Category     string    `json:"category"`
	Floor        int       `json:"floor"`
	BasePrice    float64   `json:"basePrice"`
	MaxOccupancy int       `json:"maxOccupancy"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func FromRoomView(v *queries.RoomView) *RoomResponse {
	resp := &RoomResponse{}
	_ = copier.Copy(resp, v)
	resp.BasePrice = amount(v.BasePriceCents)
	return resp
}

func FromRoomViews(views []*queries.RoomView) []*RoomResponse {
	out := make([]*RoomResponse, len(views))
	for i, v := range views {
		out[i] = FromRoomView(v)
	}
	return out
}

type RoomListResponse struct {
	Rooms      []*RoomResponse    `json:"rooms"`
	Pagination PaginationResponse `json:"pagination"`
}

func FromRoomList(list *queries.RoomList) *RoomListResponse {
	return &RoomListResponse{
		Rooms: FromRoomViews(list.Items),
		Pagination: PaginationResponse{
			Page:       list.Pagination.Page,
			Limit:      list.Pagination.Limit,
			Total:      list.Pagination.Total,
			TotalPages: list.Pagination.TotalPages,
		},
	}
}
