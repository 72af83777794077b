package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type GuestView struct {
	ID              uuid.UUID `json:"id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	DocumentID      string    `json:"document_id"`
	Address         string    `json:"address"`
	Notes           string    `json:"notes"`
	TotalBookings   int64     `json:"total_bookings"`
	TotalSpentCents int64     `json:"total_spent_cents"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type GuestListParams struct {
	Search *string
	Page   int
	Limit  int
}

type GuestListFilter struct {
	Search *string
	Limit  int
	Offset int
}

type GuestList struct {
	Items      []*GuestView
	Pagination Pagination
}

type GuestQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*GuestView, error)
	List(ctx context.Context, params GuestListParams) (*GuestList, error)
}

type GuestReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*GuestView, error)
	List(ctx context.Context, filter GuestListFilter) ([]*GuestView, int64, error)
}

type guestQueriesImpl struct {
	store GuestReadStore
}

func NewGuestQueries(store GuestReadStore) GuestQueries {
	return &guestQueriesImpl{store: store}
}

func (q *guestQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*GuestView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *guestQueriesImpl) List(ctx context.Context, params GuestListParams) (*GuestList, error) {
	page := ValidatePage(params.Page)
	limit := ValidateLimit(params.Limit)

	items, total, err := q.store.List(ctx, GuestListFilter{
		Search: params.Search,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}

	return &GuestList{
		Items:      items,
		Pagination: NewPagination(page, limit, total),
	}, nil
}
