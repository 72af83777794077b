package commands

import (
	"context"

	"stayops/internal/domain/user"
	reqdto "stayops/internal/handler/dto/request"
	"stayops/internal/infra"
	"stayops/internal/pkg/clock"
	"stayops/internal/pkg/errs"
	"stayops/internal/pkg/password"
	"stayops/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrDuplicateEmail  = errs.New("email already registered")
	ErrInvalidRole     = errs.New("invalid role")
	ErrPasswordHashing = errs.New("password hashing failed")
)

type UserCommands interface {
	Create(ctx context.Context, req reqdto.CreateUserRequest) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateUserRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type userCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewUserCommands(uow shared.UnitOfWork, clock clock.Clock) UserCommands {
	return &userCommandsImpl{uow: uow, clock: clock}
}

func (c *userCommandsImpl) Create(ctx context.Context, req reqdto.CreateUserRequest) (uuid.UUID, error) {
	now := c.clock.Now()

	email, err := user.NewEmail(req.Email)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}
	if _, err := user.NewPassword(req.Password); err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}
	role, err := user.NewRole(req.Role)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidRole)
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrPasswordHashing)
	}

	u := user.NewUser(email, hash, role, now)

	var userID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		userID, err = tx.Users().Create(ctx, tx.DB(), u)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrDuplicateEmail)
			}
			return errs.Mark(err, ErrDatabaseFailure)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return userID, nil
}

func (c *userCommandsImpl) Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateUserRequest) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		u, err := tx.Users().FindByID(ctx, tx.DB(), id)
		if err != nil {
			return markNotFound(err, ErrUserNotFound)
		}

		role := u.Role()
		if req.Role != nil {
			role, err = user.NewRole(*req.Role)
			if err != nil {
				return errs.Mark(err, ErrInvalidRole)
			}
		}

		isActive := u.IsActive()
		if req.IsActive != nil {
			isActive = *req.IsActive
		}

		hash := u.PasswordHash()
		if req.Password != nil {
			if _, err := user.NewPassword(*req.Password); err != nil {
				return errs.Mark(err, ErrDomainValidation)
			}
			hash, err = password.Hash(*req.Password)
			if err != nil {
				return errs.Mark(err, ErrPasswordHashing)
			}
		}

		updated := user.ReconstructUser(u.ID(), u.Email(), hash, role, isActive, u.LastLoginAt(), u.CreatedAt(), now)

		if err := tx.Users().Update(ctx, tx.DB(), updated); err != nil {
			return markNotFound(err, ErrUserNotFound)
		}
		return nil
	})
}

func (c *userCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Users().Delete(ctx, tx.DB(), id); err != nil {
			return markNotFound(err, ErrUserNotFound)
		}
		return nil
	})
}
