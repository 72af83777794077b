package commands

import (
	"context"

	"stayops/internal/domain/guest"
	reqdto "stayops/internal/handler/dto/request"
	"stayops/internal/infra"
	"stayops/internal/pkg/clock"
	"stayops/internal/pkg/errs"
	"stayops/internal/pkg/patch"
	"stayops/internal/usecase/queries"
	"stayops/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrGuestHasBookings = errs.New("guest still referenced by bookings")

type GuestCommands interface {
	Create(ctx context.Context, req reqdto.CreateGuestRequest) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateGuestRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type guestCommandsImpl struct {
	uow   shared.UnitOfWork
	store queries.GuestReadStore
	clock clock.Clock
}

func NewGuestCommands(uow shared.UnitOfWork, store queries.GuestReadStore, clock clock.Clock) GuestCommands {
	return &guestCommandsImpl{uow: uow, store: store, clock: clock}
}

func (c *guestCommandsImpl) Create(ctx context.Context, req reqdto.CreateGuestRequest) (uuid.UUID, error) {
	now := c.clock.Now()

	g, err := guest.NewGuest(req.FirstName, req.LastName, req.Email, req.Phone, req.DocumentID, req.Address, req.Notes, now)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	var guestID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		guestID, err = tx.Guests().Create(ctx, tx.DB(), g)
		if err != nil {
			return errs.Mark(err, ErrDatabaseFailure)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return guestID, nil
}

func (c *guestCommandsImpl) Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateGuestRequest) error {
	now := c.clock.Now()

	view, err := c.store.FindByID(ctx, id)
	if err != nil {
		return markNotFound(err, ErrGuestNotFound)
	}

	updated := guest.ReconstructGuest(
		id,
		patch.Coalesce(req.FirstName, view.FirstName),
		patch.Coalesce(req.LastName, view.LastName),
		patch.Coalesce(req.Email, view.Email),
		patch.Coalesce(req.Phone, view.Phone),
		patch.Coalesce(req.DocumentID, view.DocumentID),
		patch.Coalesce(req.Address, view.Address),
		patch.Coalesce(req.Notes, view.Notes),
		view.CreatedAt, now,
	)

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Guests().Update(ctx, tx.DB(), updated); err != nil {
			return markNotFound(err, ErrGuestNotFound)
		}
		return nil
	})
}

func (c *guestCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Guests().Delete(ctx, tx.DB(), id); err != nil {
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				return errs.Mark(err, ErrGuestHasBookings)
			}
			return markNotFound(err, ErrGuestNotFound)
		}
		return nil
	})
}
