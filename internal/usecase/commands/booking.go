package commands

import (
	"context"
	"errors"
	"log/slog"

	"stayops/internal/domain/booking"
	"stayops/internal/domain/room"
	reqdto "stayops/internal/handler/dto/request"
	"stayops/internal/infra"
	"stayops/internal/pkg/clock"
	"stayops/internal/pkg/errs"
	"stayops/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound   = errs.New("booking not found")
	ErrGuestNotFound     = errs.New("guest not found")
	ErrRoomNotFound      = errs.New("room not found")
	ErrRoomUnavailable   = errs.New("room unavailable for the requested dates")
	ErrInvalidDateRange  = errs.New("invalid date range")
	ErrInvalidPartySize  = errs.New("invalid party size")
	ErrInvalidAmount     = errs.New("invalid payment amount")
	ErrExceedsBalance    = errs.New("payment exceeds outstanding balance")
	ErrAlreadyCheckedOut = errs.New("booking already checked out")
	ErrBookingCancelled  = errs.New("booking is cancelled")
	ErrCheckedInConflict = errs.New("checked-in booking cannot be deleted")
	ErrDomainValidation  = errs.New("domain validation error")
	ErrDatabaseFailure   = errs.New("database operation failed")
)

type CheckOutResult struct {
	BookingID        uuid.UUID
	TotalAmountCents int64
	PaidAmountCents  int64
	BalanceDueCents  int64
}

type BookingCommands interface {
	Create(ctx context.Context, req reqdto.CreateBookingRequest, createdBy uuid.UUID) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateBookingRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
	CheckIn(ctx context.Context, id uuid.UUID, req reqdto.CheckInRequest, processedBy uuid.UUID) error
	CheckOut(ctx context.Context, id uuid.UUID, req reqdto.CheckOutRequest) (*CheckOutResult, error)
	RecordPayment(ctx context.Context, id uuid.UUID, req reqdto.RecordPaymentRequest, processedBy uuid.UUID) (uuid.UUID, error)
}

type bookingCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewBookingCommands(uow shared.UnitOfWork, clock clock.Clock) BookingCommands {
	return &bookingCommandsImpl{uow: uow, clock: clock}
}

func (c *bookingCommandsImpl) Create(ctx context.Context, req reqdto.CreateBookingRequest, createdBy uuid.UUID) (uuid.UUID, error) {
	now := c.clock.Now()

	stay, err := req.StayPeriod()
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidDateRange)
	}

	party, err := booking.NewPartySize(req.Adults, req.Children, req.Infants)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidPartySize)
	}

	status := booking.StatusPending
	if req.Status != nil {
		status, err = booking.NewStatus(*req.Status)
		if err != nil {
			return uuid.Nil, errs.Mark(err, ErrDomainValidation)
		}
	}

	var bookingID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		guestSnap, err := tx.Reads().GuestByID(ctx, req.GuestID)
		if err != nil {
			return errs.Mark(err, ErrGuestNotFound)
		}

		roomSnap, err := tx.Reads().RoomByID(ctx, req.RoomID)
		if err != nil {
			return errs.Mark(err, ErrRoomNotFound)
		}

		roomType, err := tx.Reads().RoomTypeByID(ctx, roomSnap.RoomTypeID)
		if err != nil {
			return errs.Mark(err, ErrRoomNotFound)
		}

		rate := booking.NewMoney(roomType.BasePriceCents)
		if req.RoomRate != nil {
			rate = booking.NewMoneyFromAmount(*req.RoomRate)
		}

		var totalOverride *booking.Money
		if req.TotalAmount != nil {
			t := booking.NewMoneyFromAmount(*req.TotalAmount)
			totalOverride = &t
		}

		if status.IsActive() {
			overlap, err := tx.Bookings().HasOverlap(ctx, tx.DB(), roomSnap.ID, stay, nil)
			if err != nil {
				return errs.Mark(err, ErrDatabaseFailure)
			}
			if overlap {
				return ErrRoomUnavailable
			}
		}

		b, err := booking.NewBooking(
			guestSnap.ID, roomSnap.ID, stay, party, rate, totalOverride,
			status,
			booking.Details{
				SpecialRequests: req.SpecialRequests,
				Notes:           req.Notes,
				Source:          req.Source,
			},
			createdBy, now,
		)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		bookingID, err = tx.Bookings().Create(ctx, tx.DB(), b)
		if err != nil {
			return mapRepoError(err)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	slog.Info("booking created", "booking_id", bookingID, "room_id", req.RoomID, "guest_id", req.GuestID)
	return bookingID, nil
}

func (c *bookingCommandsImpl) Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateBookingRequest) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, tx.DB(), id)
		if err != nil {
			return markNotFound(err, ErrBookingNotFound)
		}

		if req.GuestID != nil {
			if _, err := tx.Reads().GuestByID(ctx, *req.GuestID); err != nil {
				return errs.Mark(err, ErrGuestNotFound)
			}
			b.ReassignGuest(*req.GuestID, now)
		}

		if req.RoomID != nil {
			if _, err := tx.Reads().RoomByID(ctx, *req.RoomID); err != nil {
				return errs.Mark(err, ErrRoomNotFound)
			}
			b.MoveToRoom(*req.RoomID, now)
		}

		if req.CheckInDate != nil || req.CheckOutDate != nil {
			stay, err := resolveStay(b.Stay(), req.CheckInDate, req.CheckOutDate)
			if err != nil {
				return errs.Mark(err, ErrInvalidDateRange)
			}
			b.Reschedule(stay, now)
		}

		if req.Adults != nil || req.Children != nil || req.Infants != nil {
			adults, children, infants := b.Party().Adults(), b.Party().Children(), b.Party().Infants()
			if req.Adults != nil {
				adults = *req.Adults
			}
			if req.Children != nil {
				children = *req.Children
			}
			if req.Infants != nil {
				infants = *req.Infants
			}
			party, err := booking.NewPartySize(adults, children, infants)
			if err != nil {
				return errs.Mark(err, ErrInvalidPartySize)
			}
			b.ChangeParty(party, now)
		}

		if req.RoomRate != nil {
			if err := b.ChangeRate(booking.NewMoneyFromAmount(*req.RoomRate), now); err != nil {
				return errs.Mark(err, ErrDomainValidation)
			}
		}

		if req.Status != nil {
			status, err := booking.NewStatus(*req.Status)
			if err != nil {
				return errs.Mark(err, ErrDomainValidation)
			}
			if err := b.ChangeStatus(status, now); err != nil {
				return errs.Mark(err, ErrDomainValidation)
			}
		}

		if req.SpecialRequests != nil || req.Notes != nil || req.Source != nil {
			details := b.Details()
			if req.SpecialRequests != nil {
				details.SpecialRequests = *req.SpecialRequests
			}
			if req.Notes != nil {
				details.Notes = *req.Notes
			}
			if req.Source != nil {
				details.Source = *req.Source
			}
			b.UpdateDetails(details, now)
		}

		// Re-check availability whenever the occupancy window may have moved.
		datesChanged := req.CheckInDate != nil || req.CheckOutDate != nil
		if b.Status().IsActive() && (datesChanged || req.RoomID != nil || req.Status != nil) {
			excludeID := b.ID()
			overlap, err := tx.Bookings().HasOverlap(ctx, tx.DB(), b.RoomID(), b.Stay(), &excludeID)
			if err != nil {
				return errs.Mark(err, ErrDatabaseFailure)
			}
			if overlap {
				return ErrRoomUnavailable
			}
		}

		if err := tx.Bookings().Update(ctx, tx.DB(), b); err != nil {
			return mapRepoError(err)
		}
		return nil
	})
}

func (c *bookingCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, tx.DB(), id)
		if err != nil {
			return markNotFound(err, ErrBookingNotFound)
		}

		if !b.CanDelete() {
			return ErrCheckedInConflict
		}

		if err := tx.Bookings().Delete(ctx, tx.DB(), id); err != nil {
			return mapRepoError(err)
		}
		return nil
	})
}

func (c *bookingCommandsImpl) CheckIn(ctx context.Context, id uuid.UUID, req reqdto.CheckInRequest, processedBy uuid.UUID) error {
	now := c.clock.Now()

	at := now
	if req.ActualCheckInTime != nil {
		at = *req.ActualCheckInTime
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, tx.DB(), id)
		if err != nil {
			return markNotFound(err, ErrBookingNotFound)
		}

		if err := b.CheckIn(at, req.RoomKeyNumber, now); err != nil {
			return mapDomainError(err)
		}

		// Advance payment is optional and clamped to the outstanding balance.
		if req.AdvancePayment != nil && *req.AdvancePayment > 0 {
			amount := booking.NewMoneyFromAmount(*req.AdvancePayment)
			if amount.GreaterThan(b.Outstanding()) {
				amount = b.Outstanding()
			}
			if amount.IsPositive() {
				if err := b.ApplyPayment(amount, now); err != nil {
					return mapDomainError(err)
				}

				method := req.PaymentMethod
				if method == "" {
					method = "cash"
				}
				notes := req.Notes
				if notes == "" {
					notes = "advance payment at check-in"
				}
				ev, err := booking.NewPaymentEvent(b.ID(), amount, method, nil, processedBy, notes, now)
				if err != nil {
					return errs.Mark(err, ErrDomainValidation)
				}
				if err := tx.PaymentEvents().Append(ctx, tx.DB(), ev); err != nil {
					return mapRepoError(err)
				}
			}
		}

		if err := tx.Bookings().Update(ctx, tx.DB(), b); err != nil {
			return mapRepoError(err)
		}

		if err := tx.Rooms().UpdateStatus(ctx, tx.DB(), b.RoomID(), room.StatusOccupied); err != nil {
			return mapRepoError(err)
		}
		return nil
	})
}

func (c *bookingCommandsImpl) CheckOut(ctx context.Context, id uuid.UUID, req reqdto.CheckOutRequest) (*CheckOutResult, error) {
	now := c.clock.Now()

	at := now
	if req.ActualCheckOutTime != nil {
		at = *req.ActualCheckOutTime
	}

	var result *CheckOutResult
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, tx.DB(), id)
		if err != nil {
			return markNotFound(err, ErrBookingNotFound)
		}

		actualNights := b.TotalNights()
		if req.ActualNights != nil {
			actualNights = *req.ActualNights
		}

		extra := booking.NewMoney(0)
		if req.ExtraCharges != nil {
			extra = booking.NewMoneyFromAmount(*req.ExtraCharges)
		}

		balanceDue, err := b.CheckOut(at, actualNights, extra, now)
		if err != nil {
			return mapDomainError(err)
		}

		if req.Notes != "" {
			details := b.Details()
			details.Notes = req.Notes
			b.UpdateDetails(details, now)
		}

		if err := tx.Bookings().Update(ctx, tx.DB(), b); err != nil {
			return mapRepoError(err)
		}

		// The room goes to cleaning unless the caller asked for something else.
		statusAfter := room.StatusCleaning
		if req.RoomStatusAfter != "" {
			statusAfter, err = room.NewStatus(req.RoomStatusAfter)
			if err != nil {
				return errs.Mark(err, ErrDomainValidation)
			}
		}
		if err := tx.Rooms().UpdateStatus(ctx, tx.DB(), b.RoomID(), statusAfter); err != nil {
			return mapRepoError(err)
		}

		result = &CheckOutResult{
			BookingID:        b.ID(),
			TotalAmountCents: b.TotalAmount().Cents(),
			PaidAmountCents:  b.PaidAmount().Cents(),
			BalanceDueCents:  balanceDue.Cents(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *bookingCommandsImpl) RecordPayment(ctx context.Context, id uuid.UUID, req reqdto.RecordPaymentRequest, processedBy uuid.UUID) (uuid.UUID, error) {
	now := c.clock.Now()

	var eventID uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, tx.DB(), id)
		if err != nil {
			return markNotFound(err, ErrBookingNotFound)
		}

		amount := booking.NewMoneyFromAmount(req.Amount)
		if err := b.ApplyPayment(amount, now); err != nil {
			return mapDomainError(err)
		}

		ev, err := booking.NewPaymentEvent(b.ID(), amount, req.Method, req.TransactionID, processedBy, req.Notes, now)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := tx.PaymentEvents().Append(ctx, tx.DB(), ev); err != nil {
			return mapRepoError(err)
		}

		if err := tx.Bookings().Update(ctx, tx.DB(), b); err != nil {
			return mapRepoError(err)
		}

		eventID = ev.ID()
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return eventID, nil
}

func resolveStay(current booking.StayPeriod, checkIn, checkOut *string) (booking.StayPeriod, error) {
	in := current.CheckIn()
	out := current.CheckOut()
	if checkIn != nil {
		parsed, err := reqdto.ParseDate(*checkIn)
		if err != nil {
			return booking.StayPeriod{}, booking.ErrInvalidDateRange
		}
		in = parsed
	}
	if checkOut != nil {
		parsed, err := reqdto.ParseDate(*checkOut)
		if err != nil {
			return booking.StayPeriod{}, booking.ErrInvalidDateRange
		}
		out = parsed
	}
	return booking.NewStayPeriod(in, out)
}

func mapDomainError(err error) error {
	switch {
	case errors.Is(err, booking.ErrInvalidAmount):
		return errs.Mark(err, ErrInvalidAmount)
	case errors.Is(err, booking.ErrExceedsBalance):
		return errs.Mark(err, ErrExceedsBalance)
	case errors.Is(err, booking.ErrAlreadyCheckedOut):
		return errs.Mark(err, ErrAlreadyCheckedOut)
	case errors.Is(err, booking.ErrBookingCancelled):
		return errs.Mark(err, ErrBookingCancelled)
	case errors.Is(err, booking.ErrInvalidDateRange):
		return errs.Mark(err, ErrInvalidDateRange)
	default:
		return errs.Mark(err, ErrDomainValidation)
	}
}

// mapRepoError lifts storage-level error kinds into usecase sentinels.
// SQLSTATE 23P01 (exclusion violation) is the availability race surfacing.
func mapRepoError(err error) error {
	switch {
	case infra.IsKind(err, infra.KindConflict):
		return errs.Mark(err, ErrRoomUnavailable)
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, ErrBookingNotFound)
	default:
		return errs.Mark(err, ErrDatabaseFailure)
	}
}

func markNotFound(err error, sentinel error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, sentinel)
	}
	return errs.Mark(err, ErrDatabaseFailure)
}
