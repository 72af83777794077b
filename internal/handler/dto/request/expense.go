package request

type CreateExpenseRequest struct {
	Category    string  `json:"category" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	IncurredOn  string  `json:"incurred_on" binding:"required"`
	Description string  `json:"description"`
}

type UpdateExpenseRequest struct {
	Category    *string  `json:"category,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	IncurredOn  *string  `json:"incurred_on,omitempty"`
	Description *string  `json:"description,omitempty"`
}
