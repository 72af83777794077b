package repository

import (
	"context"

	"stayops/internal/domain/guest"
	"stayops/internal/infra"
	"stayops/internal/infra/db"
	"stayops/internal/pkg/pgconv"
	"stayops/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type GuestRepository struct{}

func NewGuestRepository() shared.GuestRepository {
	return &GuestRepository{}
}

const insertGuestSQL = `
INSERT INTO guests (id, first_name, last_name, email, phone, document_id, address, notes, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id`

func (r *GuestRepository) Create(ctx context.Context, dbtx db.DBTX, g *guest.Guest) (uuid.UUID, error) {
	var id pgtype.UUID
	err := dbtx.QueryRow(ctx, insertGuestSQL,
		pgconv.UUIDToPgtype(g.ID()),
		g.FirstName(),
		g.LastName(),
		g.Email(),
		g.Phone(),
		g.DocumentID(),
		g.Address(),
		g.Notes(),
		pgconv.TimeToPgtype(g.CreatedAt()),
		pgconv.TimeToPgtype(g.UpdatedAt()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapPgErr("failed to create guest", err)
	}
	return id.Bytes, nil
}

const updateGuestSQL = `
UPDATE guests SET
    first_name = $2, last_name = $3, email = $4, phone = $5,
    document_id = $6, address = $7, notes = $8, updated_at = $9
WHERE id = $1`

func (r *GuestRepository) Update(ctx context.Context, dbtx db.DBTX, g *guest.Guest) error {
	tag, err := dbtx.Exec(ctx, updateGuestSQL,
		pgconv.UUIDToPgtype(g.ID()),
		g.FirstName(),
		g.LastName(),
		g.Email(),
		g.Phone(),
		g.DocumentID(),
		g.Address(),
		g.Notes(),
		pgconv.TimeToPgtype(g.UpdatedAt()),
	)
	if err != nil {
		return wrapPgErr("failed to update guest", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("guest not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *GuestRepository) Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, `DELETE FROM guests WHERE id = $1`, pgconv.UUIDToPgtype(id))
	if err != nil {
		return wrapPgErr("failed to delete guest", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("guest not found", nil, infra.KindNotFound)
	}
	return nil
}
