package repository

import (
	"context"

	"stayops/internal/domain/expense"
	"stayops/internal/infra"
	"stayops/internal/infra/db"
	"stayops/internal/pkg/pgconv"
	"stayops/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ExpenseRepository struct{}

func NewExpenseRepository() shared.ExpenseRepository {
	return &ExpenseRepository{}
}

const insertExpenseSQL = `
INSERT INTO expenses (id, category, amount_cents, incurred_on, description, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`

func (r *ExpenseRepository) Create(ctx context.Context, dbtx db.DBTX, e *expense.Expense) (uuid.UUID, error) {
	var id pgtype.UUID
	err := dbtx.QueryRow(ctx, insertExpenseSQL,
		pgconv.UUIDToPgtype(e.ID()),
		e.Category(),
		e.AmountCents(),
		pgconv.DateToPgtype(e.IncurredOn()),
		e.Description(),
		pgconv.UUIDToPgtype(e.CreatedBy()),
		pgconv.TimeToPgtype(e.CreatedAt()),
		pgconv.TimeToPgtype(e.UpdatedAt()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapPgErr("failed to create expense", err)
	}
	return id.Bytes, nil
}

const updateExpenseSQL = `
UPDATE expenses SET
    category = $2, amount_cents = $3, incurred_on = $4, description = $5, updated_at = $6
WHERE id = $1`

func (r *ExpenseRepository) Update(ctx context.Context, dbtx db.DBTX, e *expense.Expense) error {
	tag, err := dbtx.Exec(ctx, updateExpenseSQL,
		pgconv.UUIDToPgtype(e.ID()),
		e.Category(),
		e.AmountCents(),
		pgconv.DateToPgtype(e.IncurredOn()),
		e.Description(),
		pgconv.TimeToPgtype(e.UpdatedAt()),
	)
	if err != nil {
		return wrapPgErr("failed to update expense", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("expense not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, pgconv.UUIDToPgtype(id))
	if err != nil {
		return wrapPgErr("failed to delete expense", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("expense not found", nil, infra.KindNotFound)
	}
	return nil
}

const findExpenseSQL = `
SELECT id, category, amount_cents, incurred_on, description, created_by, created_at, updated_at
FROM expenses
WHERE id = $1`

func (r *ExpenseRepository) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*expense.Expense, error) {
	var (
		eid, createdBy       pgtype.UUID
		category, desc       string
		amountCents          int64
		incurredOn           pgtype.Date
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := dbtx.QueryRow(ctx, findExpenseSQL, pgconv.UUIDToPgtype(id)).Scan(
		&eid, &category, &amountCents, &incurredOn, &desc, &createdBy, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, wrapPgErr("failed to find expense", err)
	}

	return expense.ReconstructExpense(
		eid.Bytes, category, amountCents,
		pgconv.DateFromPgtype(incurredOn), desc, createdBy.Bytes,
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}
