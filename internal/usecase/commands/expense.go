package commands

import (
	"context"
	"time"

	"stayops/internal/domain/expense"
	reqdto "stayops/internal/handler/dto/request"
	"stayops/internal/pkg/clock"
	"stayops/internal/pkg/errs"
	"stayops/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrExpenseNotFound = errs.New("expense not found")
	ErrInvalidDate     = errs.New("invalid date")
)

type ExpenseCommands interface {
	Create(ctx context.Context, req reqdto.CreateExpenseRequest, createdBy uuid.UUID) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateExpenseRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type expenseCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewExpenseCommands(uow shared.UnitOfWork, clock clock.Clock) ExpenseCommands {
	return &expenseCommandsImpl{uow: uow, clock: clock}
}

func (c *expenseCommandsImpl) Create(ctx context.Context, req reqdto.CreateExpenseRequest, createdBy uuid.UUID) (uuid.UUID, error) {
	now := c.clock.Now()

	incurredOn, err := reqdto.ParseDate(req.IncurredOn)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidDate)
	}

	e, err := expense.NewExpense(req.Category, centsFromAmount(req.Amount), incurredOn, req.Description, createdBy, now)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	var expenseID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		expenseID, err = tx.Expenses().Create(ctx, tx.DB(), e)
		if err != nil {
			return errs.Mark(err, ErrDatabaseFailure)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return expenseID, nil
}

func (c *expenseCommandsImpl) Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateExpenseRequest) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		e, err := tx.Expenses().FindByID(ctx, tx.DB(), id)
		if err != nil {
			return markNotFound(err, ErrExpenseNotFound)
		}

		category := e.Category()
		if req.Category != nil {
			category = *req.Category
		}
		amount := e.AmountCents()
		if req.Amount != nil {
			amount = centsFromAmount(*req.Amount)
		}
		var incurredOn time.Time = e.IncurredOn()
		if req.IncurredOn != nil {
			incurredOn, err = reqdto.ParseDate(*req.IncurredOn)
			if err != nil {
				return errs.Mark(err, ErrInvalidDate)
			}
		}
		description := e.Description()
		if req.Description != nil {
			description = *req.Description
		}

		if err := e.Update(category, amount, incurredOn, description, now); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := tx.Expenses().Update(ctx, tx.DB(), e); err != nil {
			return markNotFound(err, ErrExpenseNotFound)
		}
		return nil
	})
}

func (c *expenseCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Expenses().Delete(ctx, tx.DB(), id); err != nil {
			return markNotFound(err, ErrExpenseNotFound)
		}
		return nil
	})
}
