package response

import (
	"time"

	"stayops/internal/usecase/queries"

	"github.com/google/uuid"
)

type ExpenseResponse struct {
	ID          uuid.UUID `json:"id"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	IncurredOn  string    `json:"incurredOn"`
	Description string    `json:"description,omitempty"`
	CreatedBy   uuid.UUID `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func FromExpenseView(v *queries.ExpenseView) *ExpenseResponse {
	return &ExpenseResponse{
		ID:          v.ID,
		Category:    v.Category,
		Amount:      amount(v.AmountCents),
		IncurredOn:  v.IncurredOn.Format(dateLayout),
		Description: v.Description,
		CreatedBy:   v.CreatedBy,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

type ExpenseListResponse struct {
	Expenses    []*ExpenseResponse `json:"expenses"`
	Pagination  PaginationResponse `json:"pagination"`
	TotalAmount float64            `json:"totalAmount"`
}

func FromExpenseList(list *queries.ExpenseList) *ExpenseListResponse {
	expenses := make([]*ExpenseResponse, len(list.Items))
	for i, v := range list.Items {
		expenses[i] = FromExpenseView(v)
	}
	return &ExpenseListResponse{
		Expenses: expenses,
		Pagination: PaginationResponse{
			Page:       list.Pagination.Page,
			Limit:      list.Pagination.Limit,
			Total:      list.Pagination.Total,
			TotalPages: list.Pagination.TotalPages,
		},
		TotalAmount: amount(list.AmountCents),
	}
}
