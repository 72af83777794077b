package readstore

import (
	"context"

	"stayops/internal/infra"
	"stayops/internal/infra/db"
	"stayops/internal/pkg/pgconv"
	"stayops/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

const userViewSQL = `
SELECT id, email, role, is_active, last_login_at, created_at, updated_at
FROM users`

func (s *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	row := s.db.QueryRow(ctx, userViewSQL+` WHERE id = $1`, pgconv.UUIDToPgtype(id))
	v, err := scanUserView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return v, nil
}

func (s *UserReadStore) List(ctx context.Context) ([]*queries.UserView, error) {
	rows, err := s.db.Query(ctx, userViewSQL+` ORDER BY created_at ASC`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list users", err)
	}
	defer rows.Close()

	items := []*queries.UserView{}
	for rows.Next() {
		v, err := scanUserView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan user row", err)
		}
		items = append(items, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate user rows", err)
	}
	return items, nil
}

const authorizedUserSQL = `
SELECT id, email, role, password_hash, is_active
FROM users
WHERE email = $1`

func (s *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, error) {
	v := &queries.AuthorizedUserView{}
	var uid pgtype.UUID
	err := s.db.QueryRow(ctx, authorizedUserSQL, email).Scan(&uid, &v.Email, &v.Role, &v.PasswordHash, &v.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}
	v.ID = uid.Bytes
	return v, nil
}

func scanUserView(row rowScanner) (*queries.UserView, error) {
	v := &queries.UserView{}
	var (
		uid                  pgtype.UUID
		lastLoginAt          pgtype.Timestamptz
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := row.Scan(&uid, &v.Email, &v.Role, &v.IsActive, &lastLoginAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	v.ID = uid.Bytes
	v.LastLoginAt = pgconv.TimePtrFromPgtype(lastLoginAt)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return v, nil
}
