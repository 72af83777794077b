package response

import (
	"time"

	"stayops/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type GuestResponse struct {
	ID            uuid.UUID `json:"id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	FullName      string    `json:"fullName"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	DocumentID    string    `json:"documentId,omitempty"`
	Address       string    `json:"address,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	TotalBookings int64     `json:"totalBookings"`
	TotalSpent    float64   `json:"totalSpent"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func FromGuestView(v *queries.GuestView) *GuestResponse {
	resp := &GuestResponse{}
	_ = copier.Copy(resp, v)
	resp.FullName = v.FirstName
	if v.LastName != "" {
		resp.FullName = v.FirstName + " " + v.LastName
	}
	resp.TotalSpent = amount(v.TotalSpentCents)
	return resp
}

type GuestListResponse struct {
	Guests     []*GuestResponse   `json:"guests"`
	Pagination PaginationResponse `json:"pagination"`
}

func FromGuestList(list *queries.GuestList) *GuestListResponse {
	guests := make([]*GuestResponse, len(list.Items))
	for i, v := range list.Items {
		guests[i] = FromGuestView(v)
	}
	return &GuestListResponse{
		Guests: guests,
		Pagination: PaginationResponse{
			Page:       list.Pagination.Page,
			Limit:      list.Pagination.Limit,
			Total:      list.Pagination.Total,
			TotalPages: list.Pagination.TotalPages,
		},
	}
}
