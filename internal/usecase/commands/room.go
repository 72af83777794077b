package commands

import (
	"context"

	"stayops/internal/domain/room"
	reqdto "stayops/internal/handler/dto/request"
	"stayops/internal/infra"
	"stayops/internal/pkg/clock"
	"stayops/internal/pkg/errs"
	"stayops/internal/usecase/queries"
	"stayops/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrRoomTypeNotFound     = errs.New("room type not found")
	ErrRoomHasActiveBooking = errs.New("room has active bookings")
	ErrDuplicateRoomNumber  = errs.New("room number already exists")
)

type RoomCommands interface {
	CreateRoom(ctx context.Context, req reqdto.CreateRoomRequest) (uuid.UUID, error)
	UpdateRoom(ctx context.Context, id uuid.UUID, req reqdto.UpdateRoomRequest) error
	UpdateRoomStatus(ctx context.Context, id uuid.UUID, status string) error
	DeleteRoom(ctx context.Context, id uuid.UUID) error
	CreateRoomType(ctx context.Context, req reqdto.CreateRoomTypeRequest) (uuid.UUID, error)
	UpdateRoomType(ctx context.Context, id uuid.UUID, req reqdto.UpdateRoomTypeRequest) error
	DeleteRoomType(ctx context.Context, id uuid.UUID) error
}

type roomCommandsImpl struct {
	uow     shared.UnitOfWork
	catalog queries.CatalogReadStore
	clock   clock.Clock
}

func NewRoomCommands(uow shared.UnitOfWork, catalog queries.CatalogReadStore, clock clock.Clock) RoomCommands {
	return &roomCommandsImpl{uow: uow, catalog: catalog, clock: clock}
}

func (c *roomCommandsImpl) CreateRoom(ctx context.Context, req reqdto.CreateRoomRequest) (uuid.UUID, error) {
	now := c.clock.Now()

	status := room.StatusAvailable
	if req.Status != "" {
		var err error
		status, err = room.NewStatus(req.Status)
		if err != nil {
			return uuid.Nil, errs.Mark(err, ErrDomainValidation)
		}
	}

	var roomID uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().RoomTypeByID(ctx, req.RoomTypeID); err != nil {
			return errs.Mark(err, ErrRoomTypeNotFound)
		}

		r, err := room.NewRoom(req.RoomNumber, req.RoomTypeID, req.Floor, status, req.Notes, req.ImageURL, now)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		roomID, err = tx.Rooms().Create(ctx, tx.DB(), r)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrDuplicateRoomNumber)
			}
			return errs.Mark(err, ErrDatabaseFailure)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return roomID, nil
}

func (c *roomCommandsImpl) UpdateRoom(ctx context.Context, id uuid.UUID, req reqdto.UpdateRoomRequest) error {
	now := c.clock.Now()

	view, err := c.catalog.FindRoomByID(ctx, id)
	if err != nil {
		return markNotFound(err, ErrRoomNotFound)
	}

	roomNumber := view.RoomNumber
	if req.RoomNumber != nil {
		roomNumber = *req.RoomNumber
	}
	roomTypeID := view.RoomTypeID
	if req.RoomTypeID != nil {
		roomTypeID = *req.RoomTypeID
	}
	floor := view.Floor
	if req.Floor != nil {
		floor = *req.Floor
	}
	status := room.Status(view.Status)
	if req.Status != nil {
		status, err = room.NewStatus(*req.Status)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
	}
	notes := view.Notes
	if req.Notes != nil {
		notes = *req.Notes
	}
	imageURL := view.ImageURL
	if req.ImageURL != nil {
		imageURL = *req.ImageURL
	}

	updated := room.ReconstructRoom(id, roomNumber, roomTypeID, floor, status, notes, imageURL, view.CreatedAt, now)

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if req.RoomTypeID != nil {
			if _, err := tx.Reads().RoomTypeByID(ctx, *req.RoomTypeID); err != nil {
				return errs.Mark(err, ErrRoomTypeNotFound)
			}
		}
		if err := tx.Rooms().Update(ctx, tx.DB(), updated); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrDuplicateRoomNumber)
			}
			return markNotFound(err, ErrRoomNotFound)
		}
		return nil
	})
}

func (c *roomCommandsImpl) UpdateRoomStatus(ctx context.Context, id uuid.UUID, status string) error {
	parsed, err := room.NewStatus(status)
	if err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Rooms().UpdateStatus(ctx, tx.DB(), id, parsed); err != nil {
			return markNotFound(err, ErrRoomNotFound)
		}
		return nil
	})
}

func (c *roomCommandsImpl) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		active, err := tx.Bookings().CountActiveForRoom(ctx, tx.DB(), id)
		if err != nil {
			return errs.Mark(err, ErrDatabaseFailure)
		}
		if active > 0 {
			return ErrRoomHasActiveBooking
		}

		if err := tx.Rooms().Delete(ctx, tx.DB(), id); err != nil {
			return markNotFound(err, ErrRoomNotFound)
		}
		return nil
	})
}

func (c *roomCommandsImpl) CreateRoomType(ctx context.Context, req reqdto.CreateRoomTypeRequest) (uuid.UUID, error) {
	now := c.clock.Now()

	category, err := room.NewCategory(req.Category)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	t, err := room.NewRoomType(req.Name, category, req.MaxOccupancy, centsFromAmount(req.BasePrice), req.Amenities, now)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	var typeID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		typeID, err = tx.RoomTypes().Create(ctx, tx.DB(), t)
		if err != nil {
			return errs.Mark(err, ErrDatabaseFailure)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return typeID, nil
}

func (c *roomCommandsImpl) UpdateRoomType(ctx context.Context, id uuid.UUID, req reqdto.UpdateRoomTypeRequest) error {
	now := c.clock.Now()

	view, err := c.catalog.FindRoomTypeByID(ctx, id)
	if err != nil {
		return markNotFound(err, ErrRoomTypeNotFound)
	}

	name := view.Name
	if req.Name != nil {
		name = *req.Name
	}
	basePrice := view.BasePriceCents
	if req.BasePrice != nil {
		basePrice = centsFromAmount(*req.BasePrice)
	}
	maxOccupancy := view.MaxOccupancy
	if req.MaxOccupancy != nil {
		maxOccupancy = *req.MaxOccupancy
	}
	amenities := view.Amenities
	if req.Amenities != nil {
		amenities = *req.Amenities
	}
	isActive := view.IsActive
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	category, err := room.NewCategory(currentCategory(view, req.Category))
	if err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}

	updated := room.ReconstructRoomType(id, name, category, maxOccupancy, basePrice, amenities, isActive, view.CreatedAt, now)

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.RoomTypes().Update(ctx, tx.DB(), updated); err != nil {
			return markNotFound(err, ErrRoomTypeNotFound)
		}
		return nil
	})
}

func (c *roomCommandsImpl) DeleteRoomType(ctx context.Context, id uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.RoomTypes().Delete(ctx, tx.DB(), id); err != nil {
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				return errs.Mark(err, ErrRoomTypeInUse)
			}
			return markNotFound(err, ErrRoomTypeNotFound)
		}
		return nil
	})
}

var ErrRoomTypeInUse = errs.New("room type still referenced by rooms")

func centsFromAmount(amount float64) int64 {
	if amount >= 0 {
		return int64(amount*100 + 0.5)
	}
	return int64(amount*100 - 0.5)
}

func currentCategory(view *queries.RoomTypeView, override *string) string {
	if override != nil {
		return *override
	}
	return view.Category
}
