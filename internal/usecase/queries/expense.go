package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ExpenseView struct {
	ID          uuid.UUID `json:"id"`
	Category    string    `json:"category"`
	AmountCents int64     `json:"amount_cents"`
	IncurredOn  time.Time `json:"incurred_on"`
	Description string    `json:"description"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ExpenseListParams struct {
	Category *string
	From     *time.Time
	To       *time.Time
	Page     int
	Limit    int
}

type ExpenseListFilter struct {
	Category *string
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

// ExpenseList carries a total over the filtered window alongside the page.
type ExpenseList struct {
	Items       []*ExpenseView
	Pagination  Pagination
	AmountCents int64
}

type ExpenseQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ExpenseView, error)
	List(ctx context.Context, params ExpenseListParams) (*ExpenseList, error)
}

type ExpenseReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ExpenseView, error)
	List(ctx context.Context, filter ExpenseListFilter) ([]*ExpenseView, int64, int64, error)
}

type expenseQueriesImpl struct {
	store ExpenseReadStore
}

func NewExpenseQueries(store ExpenseReadStore) ExpenseQueries {
	return &expenseQueriesImpl{store: store}
}

func (q *expenseQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ExpenseView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *expenseQueriesImpl) List(ctx context.Context, params ExpenseListParams) (*ExpenseList, error) {
	page := ValidatePage(params.Page)
	limit := ValidateLimit(params.Limit)

	items, total, amount, err := q.store.List(ctx, ExpenseListFilter{
		Category: params.Category,
		From:     params.From,
		To:       params.To,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}

	return &ExpenseList{
		Items:       items,
		Pagination:  NewPagination(page, limit, total),
		AmountCents: amount,
	}, nil
}
