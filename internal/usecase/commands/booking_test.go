//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"stayops/internal/domain/booking"
	"stayops/internal/domain/room"
	reqdto "stayops/internal/handler/dto/request"
	"stayops/internal/infra"
	"stayops/internal/infra/db"
	"stayops/internal/pkg/clock"
	"stayops/internal/usecase/commands"
	"stayops/internal/usecase/shared"
	"stayops/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory unit of work. Per-room overlap checks run against the stored
// bookings, so the fakes exercise the same availability logic the SQL does.
type fakeUow struct {
	tx *fakeTx
}

func newFakeUow() *fakeUow {
	reads := &fakeReads{
		guests:    map[uuid.UUID]*shared.GuestSnapshot{},
		rooms:     map[uuid.UUID]*shared.RoomSnapshot{},
		roomTypes: map[uuid.UUID]*shared.RoomTypeSnapshot{},
	}
	return &fakeUow{
		tx: &fakeTx{
			reads:    reads,
			bookings: &fakeBookingRepo{store: map[uuid.UUID]*booking.Booking{}},
			payments: &fakePaymentRepo{},
			rooms:    &fakeRoomRepo{statuses: map[uuid.UUID]room.Status{}},
		},
	}
}

func (u *fakeUow) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

type fakeTx struct {
	reads    *fakeReads
	bookings *fakeBookingRepo
	payments *fakePaymentRepo
	rooms    *fakeRoomRepo
}

func (t *fakeTx) Bookings() shared.BookingRepository           { return t.bookings }
func (t *fakeTx) PaymentEvents() shared.PaymentEventRepository { return t.payments }
func (t *fakeTx) Rooms() shared.RoomRepository                 { return t.rooms }
func (t *fakeTx) RoomTypes() shared.RoomTypeRepository         { return nil }
func (t *fakeTx) Guests() shared.GuestRepository               { return nil }
func (t *fakeTx) Expenses() shared.ExpenseRepository           { return nil }
func (t *fakeTx) Users() shared.UserRepository                 { return nil }
func (t *fakeTx) Reads() shared.CommandReads                   { return t.reads }
func (t *fakeTx) DB() db.DBTX                                  { return nil }

type fakeReads struct {
	guests    map[uuid.UUID]*shared.GuestSnapshot
	rooms     map[uuid.UUID]*shared.RoomSnapshot
	roomTypes map[uuid.UUID]*shared.RoomTypeSnapshot
}

func (r *fakeReads) GuestByID(_ context.Context, id uuid.UUID) (*shared.GuestSnapshot, error) {
	if s, ok := r.guests[id]; ok {
		return s, nil
	}
	return nil, infra.WrapRepoErr("guest not found", nil, infra.KindNotFound)
}

func (r *fakeReads) RoomByID(_ context.Context, id uuid.UUID) (*shared.RoomSnapshot, error) {
	if s, ok := r.rooms[id]; ok {
		return s, nil
	}
	return nil, infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
}

func (r *fakeReads) RoomTypeByID(_ context.Context, id uuid.UUID) (*shared.RoomTypeSnapshot, error) {
	if s, ok := r.roomTypes[id]; ok {
		return s, nil
	}
	return nil, infra.WrapRepoErr("room type not found", nil, infra.KindNotFound)
}

type fakeBookingRepo struct {
	store map[uuid.UUID]*booking.Booking
}

func (r *fakeBookingRepo) Create(_ context.Context, _ db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	r.store[b.ID()] = b
	return b.ID(), nil
}

func (r *fakeBookingRepo) Update(_ context.Context, _ db.DBTX, b *booking.Booking) error {
	if _, ok := r.store[b.ID()]; !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	r.store[b.ID()] = b
	return nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	if _, ok := r.store[id]; !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	delete(r.store, id)
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	if b, ok := r.store[id]; ok {
		return b, nil
	}
	return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
}

func (r *fakeBookingRepo) HasOverlap(_ context.Context, _ db.DBTX, roomID uuid.UUID, stay booking.StayPeriod, excludeID *uuid.UUID) (bool, error) {
	for id, b := range r.store {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if b.RoomID() == roomID && b.Status().IsActive() && b.Stay().Overlaps(stay) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) CountActiveForRoom(_ context.Context, _ db.DBTX, roomID uuid.UUID) (int64, error) {
	var n int64
	for _, b := range r.store {
		if b.RoomID() == roomID && b.Status().IsActive() {
			n++
		}
	}
	return n, nil
}

type fakePaymentRepo struct {
	events []*booking.PaymentEvent
}

func (r *fakePaymentRepo) Append(_ context.Context, _ db.DBTX, ev *booking.PaymentEvent) error {
	r.events = append(r.events, ev)
	return nil
}

type fakeRoomRepo struct {
	statuses map[uuid.UUID]room.Status
}

func (r *fakeRoomRepo) Create(_ context.Context, _ db.DBTX, _ *room.Room) (uuid.UUID, error) {
	return uuid.Nil, nil
}
func (r *fakeRoomRepo) Update(_ context.Context, _ db.DBTX, _ *room.Room) error { return nil }
func (r *fakeRoomRepo) UpdateStatus(_ context.Context, _ db.DBTX, id uuid.UUID, status room.Status) error {
	r.statuses[id] = status
	return nil
}
func (r *fakeRoomRepo) Delete(_ context.Context, _ db.DBTX, _ uuid.UUID) error { return nil }

var _ shared.UnitOfWork = (*fakeUow)(nil)

type fixture struct {
	uow   *fakeUow
	clock *clock.FixedClock
	cmds  commands.BookingCommands

	guestID    uuid.UUID
	roomID     uuid.UUID
	roomTypeID uuid.UUID
	staffID    uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	uow := newFakeUow()
	fc := clock.NewFixedClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	f := &fixture{
		uow:        uow,
		clock:      fc,
		cmds:       commands.NewBookingCommands(uow, fc),
		guestID:    uuid.New(),
		roomID:     uuid.New(),
		roomTypeID: uuid.New(),
		staffID:    uuid.New(),
	}

	uow.tx.reads.guests[f.guestID] = &shared.GuestSnapshot{ID: f.guestID, FullName: "Ada Lovelace"}
	uow.tx.reads.rooms[f.roomID] = &shared.RoomSnapshot{
		ID: f.roomID, RoomNumber: "204", RoomTypeID: f.roomTypeID, Status: "available",
	}
	uow.tx.reads.roomTypes[f.roomTypeID] = &shared.RoomTypeSnapshot{
		ID: f.roomTypeID, Name: "Standard Double", BasePriceCents: 12000, MaxOccupancy: 3, IsActive: true,
	}
	return f
}

func (f *fixture) createRequest() reqdto.CreateBookingRequest {
	req := builder.NewBookingBuilder().BuildCreateRequestDTO()
	req.GuestID = f.guestID
	req.RoomID = f.roomID
	status := "confirmed"
	req.Status = &status
	return req
}

func (f *fixture) create(t *testing.T) uuid.UUID {
	t.Helper()
	id, err := f.cmds.Create(context.Background(), f.createRequest(), f.staffID)
	require.NoError(t, err)
	return id
}

func ptr[T any](v T) *T { return &v }

func TestBookingCommands_Create(t *testing.T) {
	t.Run("rate defaults to the room type base price", func(t *testing.T) {
		f := newFixture(t)
		id := f.create(t)

		b := f.uow.tx.bookings.store[id]
		require.NotNil(t, b)
		assert.Equal(t, int64(12000), b.RoomRate().Cents())
		assert.Equal(t, int64(36000), b.TotalAmount().Cents())
		assert.Equal(t, booking.StatusConfirmed, b.Status())
	})

	t.Run("explicit rate wins over the base price", func(t *testing.T) {
		f := newFixture(t)
		req := f.createRequest()
		req.RoomRate = ptr(99.90)

		id, err := f.cmds.Create(context.Background(), req, f.staffID)
		require.NoError(t, err)
		assert.Equal(t, int64(9990), f.uow.tx.bookings.store[id].RoomRate().Cents())
	})

	t.Run("unknown guest", func(t *testing.T) {
		f := newFixture(t)
		req := f.createRequest()
		req.GuestID = uuid.New()

		_, err := f.cmds.Create(context.Background(), req, f.staffID)
		require.ErrorIs(t, err, commands.ErrGuestNotFound)
	})

	t.Run("unknown room", func(t *testing.T) {
		f := newFixture(t)
		req := f.createRequest()
		req.RoomID = uuid.New()

		_, err := f.cmds.Create(context.Background(), req, f.staffID)
		require.ErrorIs(t, err, commands.ErrRoomNotFound)
	})

	t.Run("overlapping active booking blocks the room", func(t *testing.T) {
		f := newFixture(t)
		f.create(t)

		_, err := f.cmds.Create(context.Background(), f.createRequest(), f.staffID)
		require.ErrorIs(t, err, commands.ErrRoomUnavailable)
	})

	t.Run("pending booking does not reserve the room", func(t *testing.T) {
		f := newFixture(t)
		req := f.createRequest()
		req.Status = ptr("pending")
		_, err := f.cmds.Create(context.Background(), req, f.staffID)
		require.NoError(t, err)

		// Same dates, same room: allowed while the first is only pending.
		_, err = f.cmds.Create(context.Background(), f.createRequest(), f.staffID)
		require.NoError(t, err)
	})

	t.Run("back-to-back stays do not conflict", func(t *testing.T) {
		f := newFixture(t)
		f.create(t)

		req := f.createRequest()
		req.CheckInDate = "2026-03-15"
		req.CheckOutDate = "2026-03-18"
		_, err := f.cmds.Create(context.Background(), req, f.staffID)
		require.NoError(t, err)
	})

	t.Run("invalid dates", func(t *testing.T) {
		f := newFixture(t)
		req := f.createRequest()
		req.CheckOutDate = req.CheckInDate

		_, err := f.cmds.Create(context.Background(), req, f.staffID)
		require.ErrorIs(t, err, commands.ErrInvalidDateRange)
	})
}

func TestBookingCommands_Update(t *testing.T) {
	t.Run("reschedule recomputes the total", func(t *testing.T) {
		f := newFixture(t)
		id := f.create(t)

		err := f.cmds.Update(context.Background(), id, reqdto.UpdateBookingRequest{
			CheckOutDate: ptr("2026-03-17"),
		})
		require.NoError(t, err)

		b := f.uow.tx.bookings.store[id]
		assert.Equal(t, 5, b.TotalNights())
		assert.Equal(t, int64(60000), b.TotalAmount().Cents())
	})

	t.Run("moving onto an occupied room fails", func(t *testing.T) {
		f := newFixture(t)
		f.create(t)

		otherRoom := uuid.New()
		f.uow.tx.reads.rooms[otherRoom] = &shared.RoomSnapshot{
			ID: otherRoom, RoomNumber: "205", RoomTypeID: f.roomTypeID, Status: "available",
		}
		req := f.createRequest()
		req.RoomID = otherRoom
		second, err := f.cmds.Create(context.Background(), req, f.staffID)
		require.NoError(t, err)

		err = f.cmds.Update(context.Background(), second, reqdto.UpdateBookingRequest{
			RoomID: &f.roomID,
		})
		require.ErrorIs(t, err, commands.ErrRoomUnavailable)
	})

	t.Run("updating own dates does not self-conflict", func(t *testing.T) {
		f := newFixture(t)
		id := f.create(t)

		err := f.cmds.Update(context.Background(), id, reqdto.UpdateBookingRequest{
			CheckInDate: ptr("2026-03-13"),
		})
		require.NoError(t, err)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture(t)
		err := f.cmds.Update(context.Background(), uuid.New(), reqdto.UpdateBookingRequest{})
		require.ErrorIs(t, err, commands.ErrBookingNotFound)
	})
}

func TestBookingCommands_Delete(t *testing.T) {
	t.Run("checked-in booking cannot be deleted", func(t *testing.T) {
		f := newFixture(t)
		id := f.create(t)
		require.NoError(t, f.cmds.CheckIn(context.Background(), id, reqdto.CheckInRequest{}, f.staffID))

		err := f.cmds.Delete(context.Background(), id)
		require.ErrorIs(t, err, commands.ErrCheckedInConflict)
	})

	t.Run("confirmed booking is deletable", func(t *testing.T) {
		f := newFixture(t)
		id := f.create(t)
		require.NoError(t, f.cmds.Delete(context.Background(), id))
		assert.Empty(t, f.uow.tx.bookings.store)
	})
}

func TestBookingCommands_CheckIn(t *testing.T) {
	t.Run("marks room occupied and records advance payment", func(t *testing.T) {
		f := newFixture(t)
		id := f.create(t)

		err := f.cmds.CheckIn(context.Background(), id, reqdto.CheckInRequest{
			RoomKeyNumber:  "K-204",
			AdvancePayment: ptr(100.0),
		}, f.staffID)
		require.NoError(t, err)

		b := f.uow.tx.bookings.store[id]
		assert.Equal(t, booking.StatusCheckedIn, b.Status())
		assert.Equal(t, int64(10000), b.PaidAmount().Cents())
		assert.Equal(t, room.StatusOccupied, f.uow.tx.rooms.statuses[f.roomID])

		require.Len(t, f.uow.tx.payments.events, 1)
		ev := f.uow.tx.payments.events[0]
		assert.Equal(t, int64(10000), ev.Amount().Cents())
		assert.Equal(t, "cash", ev.Method())
	})

	t.Run("advance payment above the balance is clamped", func(t *testing.T) {
		f := newFixture(t)
		id := f.create(t)

		err := f.cmds.CheckIn(context.Background(), id, reqdto.CheckInRequest{
			AdvancePayment: ptr(9999.0),
		}, f.staffID)
		require.NoError(t, err)

		b := f.uow.tx.bookings.store[id]
		assert.Equal(t, b.TotalAmount(), b.PaidAmount())
		assert.Equal(t, booking.PaymentPaid, b.PaymentStatus())
	})
}

func TestBookingCommands_CheckOut(t *testing.T) {
	t.Run("settles against actual nights and marks the room for cleaning", func(t *testing.T) {
		f := newFixture(t)
		id := f.create(t)
		require.NoError(t, f.cmds.CheckIn(context.Background(), id, reqdto.CheckInRequest{
			AdvancePayment: ptr(360.0),
		}, f.staffID))

		res, err := f.cmds.CheckOut(context.Background(), id, reqdto.CheckOutRequest{
			ActualNights: ptr(2),
			ExtraCharges: ptr(15.0),
		})
		require.NoError(t, err)

		assert.Equal(t, int64(25500), res.TotalAmountCents)
		assert.Equal(t, int64(36000), res.PaidAmountCents)
		assert.Equal(t, int64(-10500), res.BalanceDueCents)
		assert.Equal(t, room.StatusCleaning, f.uow.tx.rooms.statuses[f.roomID])
	})

	t.Run("defaults to the booked nights", func(t *testing.T) {
		f := newFixture(t)
		id := f.create(t)

		res, err := f.cmds.CheckOut(context.Background(), id, reqdto.CheckOutRequest{})
		require.NoError(t, err)
		assert.Equal(t, int64(36000), res.TotalAmountCents)
		assert.Equal(t, int64(36000), res.BalanceDueCents)
	})
}

func TestBookingCommands_RecordPayment(t *testing.T) {
	t.Run("appends an event and advances payment status", func(t *testing.T) {
		f := newFixture(t)
		id := f.create(t)

		evID, err := f.cmds.RecordPayment(context.Background(), id, reqdto.RecordPaymentRequest{
			Amount: 120.0,
			Method: "card",
		}, f.staffID)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, evID)

		b := f.uow.tx.bookings.store[id]
		assert.Equal(t, int64(12000), b.PaidAmount().Cents())
		assert.Equal(t, booking.PaymentPartial, b.PaymentStatus())
	})

	t.Run("overpayment is rejected", func(t *testing.T) {
		f := newFixture(t)
		id := f.create(t)

		_, err := f.cmds.RecordPayment(context.Background(), id, reqdto.RecordPaymentRequest{
			Amount: 999.0,
			Method: "card",
		}, f.staffID)
		require.ErrorIs(t, err, commands.ErrExceedsBalance)
		assert.Empty(t, f.uow.tx.payments.events)
	})

	t.Run("non-positive amount is rejected", func(t *testing.T) {
		f := newFixture(t)
		id := f.create(t)

		_, err := f.cmds.RecordPayment(context.Background(), id, reqdto.RecordPaymentRequest{
			Amount: 0,
			Method: "card",
		}, f.staffID)
		require.ErrorIs(t, err, commands.ErrInvalidAmount)
	})
}
