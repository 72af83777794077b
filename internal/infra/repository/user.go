package repository

import (
	"context"

	"stayops/internal/domain/user"
	"stayops/internal/infra"
	"stayops/internal/infra/db"
	"stayops/internal/pkg/pgconv"
	"stayops/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserRepository struct{}

func NewUserRepository() shared.UserRepository {
	return &UserRepository{}
}

const insertUserSQL = `
INSERT INTO users (id, email, password_hash, role, is_active, last_login_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`

func (r *UserRepository) Create(ctx context.Context, dbtx db.DBTX, u *user.User) (uuid.UUID, error) {
	var id pgtype.UUID
	err := dbtx.QueryRow(ctx, insertUserSQL,
		pgconv.UUIDToPgtype(u.ID()),
		u.Email().Value(),
		u.PasswordHash(),
		u.Role().String(),
		u.IsActive(),
		pgconv.TimePtrToPgtype(u.LastLoginAt()),
		pgconv.TimeToPgtype(u.CreatedAt()),
		pgconv.TimeToPgtype(u.UpdatedAt()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapPgErr("failed to create user", err)
	}
	return id.Bytes, nil
}

const updateUserSQL = `
UPDATE users SET
    email = $2, password_hash = $3, role = $4, is_active = $5, updated_at = $6
WHERE id = $1`

func (r *UserRepository) Update(ctx context.Context, dbtx db.DBTX, u *user.User) error {
	tag, err := dbtx.Exec(ctx, updateUserSQL,
		pgconv.UUIDToPgtype(u.ID()),
		u.Email().Value(),
		u.PasswordHash(),
		u.Role().String(),
		u.IsActive(),
		pgconv.TimeToPgtype(u.UpdatedAt()),
	)
	if err != nil {
		return wrapPgErr("failed to update user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	_, err := dbtx.Exec(ctx,
		`UPDATE users SET last_login_at = now(), updated_at = now() WHERE id = $1`,
		pgconv.UUIDToPgtype(id),
	)
	if err != nil {
		return wrapPgErr("failed to update last login", err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, `DELETE FROM users WHERE id = $1`, pgconv.UUIDToPgtype(id))
	if err != nil {
		return wrapPgErr("failed to delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

const findUserSQL = `
SELECT id, email, password_hash, role, is_active, last_login_at, created_at, updated_at
FROM users
WHERE id = $1`

func (r *UserRepository) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*user.User, error) {
	var (
		uid                  pgtype.UUID
		emailStr, hash, role string
		isActive             bool
		lastLoginAt          pgtype.Timestamptz
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := dbtx.QueryRow(ctx, findUserSQL, pgconv.UUIDToPgtype(id)).Scan(
		&uid, &emailStr, &hash, &role, &isActive, &lastLoginAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, wrapPgErr("failed to find user", err)
	}

	email, err := user.NewEmail(emailStr)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt user email", err)
	}
	parsedRole, err := user.NewRole(role)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt user role", err)
	}

	return user.ReconstructUser(
		uid.Bytes, email, hash, parsedRole, isActive,
		pgconv.TimePtrFromPgtype(lastLoginAt),
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}
