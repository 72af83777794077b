package expense

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidExpenseAmount = errors.New("expense amount must be positive")
	ErrEmptyCategory        = errors.New("expense category is required")
)

type Expense struct {
	id          uuid.UUID
	category    string
	amountCents int64
	incurredOn  time.Time
	description string
	createdBy   uuid.UUID
	createdAt   time.Time
	updatedAt   time.Time
}

func NewExpense(category string, amountCents int64, incurredOn time.Time, description string, createdBy uuid.UUID, now time.Time) (*Expense, error) {
	if category == "" {
		return nil, ErrEmptyCategory
	}
	if amountCents <= 0 {
		return nil, ErrInvalidExpenseAmount
	}
	return &Expense{
		id:          uuid.New(),
		category:    category,
		amountCents: amountCents,
		incurredOn:  incurredOn,
		description: description,
		createdBy:   createdBy,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructExpense(id uuid.UUID, category string, amountCents int64, incurredOn time.Time, description string, createdBy uuid.UUID, createdAt, updatedAt time.Time) *Expense {
	return &Expense{
		id:          id,
		category:    category,
		amountCents: amountCents,
		incurredOn:  incurredOn,
		description: description,
		createdBy:   createdBy,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (e *Expense) ID() uuid.UUID         { return e.id }
func (e *Expense) Category() string      { return e.category }
func (e *Expense) AmountCents() int64    { return e.amountCents }
func (e *Expense) IncurredOn() time.Time { return e.incurredOn }
func (e *Expense) Description() string   { return e.description }
func (e *Expense) CreatedBy() uuid.UUID  { return e.createdBy }
func (e *Expense) CreatedAt() time.Time  { return e.createdAt }
func (e *Expense) UpdatedAt() time.Time  { return e.updatedAt }

func (e *Expense) Update(category string, amountCents int64, incurredOn time.Time, description string, now time.Time) error {
	if category == "" {
		return ErrEmptyCategory
	}
	if amountCents <= 0 {
		return ErrInvalidExpenseAmount
	}
	e.category = category
	e.amountCents = amountCents
	e.incurredOn = incurredOn
	e.description = description
	e.updatedAt = now
	return nil
}
