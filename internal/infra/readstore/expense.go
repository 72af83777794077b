package readstore

import (
	"context"
	"fmt"
	"strings"

	"stayops/internal/infra"
	"stayops/internal/infra/db"
	"stayops/internal/pkg/pgconv"
	"stayops/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ExpenseReadStore struct {
	db db.DBTX
}

func NewExpenseReadStore(dbtx db.DBTX) *ExpenseReadStore {
	return &ExpenseReadStore{db: dbtx}
}

const expenseViewSQL = `
SELECT id, category, amount_cents, incurred_on, description, created_by, created_at, updated_at
FROM expenses`

func (s *ExpenseReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ExpenseView, error) {
	row := s.db.QueryRow(ctx, expenseViewSQL+` WHERE id = $1`, pgconv.UUIDToPgtype(id))
	v, err := scanExpenseView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("expense not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find expense by ID", err)
	}
	return v, nil
}

// List returns the page, the filtered row count, and the filtered amount sum.
func (s *ExpenseReadStore) List(ctx context.Context, filter queries.ExpenseListFilter) ([]*queries.ExpenseView, int64, int64, error) {
	where := []string{"1=1"}
	args := []any{}
	n := 0

	arg := func(v any) string {
		n++
		args = append(args, v)
		return fmt.Sprintf("$%d", n)
	}

	if filter.Category != nil && *filter.Category != "" {
		where = append(where, "category = "+arg(*filter.Category))
	}
	if filter.From != nil {
		where = append(where, "incurred_on >= "+arg(pgconv.DateToPgtype(*filter.From)))
	}
	if filter.To != nil {
		where = append(where, "incurred_on < "+arg(pgconv.DateToPgtype(*filter.To)))
	}

	whereClause := strings.Join(where, " AND ")

	var total, amount int64
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(amount_cents), 0) FROM expenses WHERE `+whereClause, args...,
	).Scan(&total, &amount)
	if err != nil {
		return nil, 0, 0, infra.WrapRepoErr("failed to aggregate expenses", err)
	}

	listSQL := expenseViewSQL + `
WHERE ` + whereClause + `
ORDER BY incurred_on DESC, created_at DESC
LIMIT ` + arg(filter.Limit) + ` OFFSET ` + arg(filter.Offset)

	rows, err := s.db.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, 0, infra.WrapRepoErr("failed to list expenses", err)
	}
	defer rows.Close()

	items := []*queries.ExpenseView{}
	for rows.Next() {
		v, err := scanExpenseView(rows)
		if err != nil {
			return nil, 0, 0, infra.WrapRepoErr("failed to scan expense row", err)
		}
		items = append(items, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, infra.WrapRepoErr("failed to iterate expense rows", err)
	}
	return items, total, amount, nil
}

func scanExpenseView(row rowScanner) (*queries.ExpenseView, error) {
	v := &queries.ExpenseView{}
	var (
		eid, createdBy       pgtype.UUID
		incurredOn           pgtype.Date
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := row.Scan(&eid, &v.Category, &v.AmountCents, &incurredOn, &v.Description, &createdBy, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	v.ID = eid.Bytes
	v.CreatedBy = createdBy.Bytes
	v.IncurredOn = pgconv.DateFromPgtype(incurredOn)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return v, nil
}
