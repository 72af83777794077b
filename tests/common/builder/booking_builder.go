//go:build unit || e2e

package builder

import (
	"time"

	dombooking "stayops/internal/domain/booking"
	reqdto "stayops/internal/handler/dto/request"
	"stayops/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	GuestID       uuid.UUID
	GuestName     string
	RoomID        uuid.UUID
	RoomNumber    string
	CheckIn       time.Time
	CheckOut      time.Time
	Adults        int
	Children      int
	Infants       int
	RoomRateCents int64
	Status        string
	CreatedBy     uuid.UUID
	Now           time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		GuestID:       uuid.New(),
		GuestName:     "Ada Lovelace",
		RoomID:        uuid.New(),
		RoomNumber:    "204",
		CheckIn:       time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Adults:        2,
		Children:      0,
		Infants:       0,
		RoomRateCents: 12000,
		Status:        "confirmed",
		CreatedBy:     uuid.New(),
		Now:           now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	stay, err := dombooking.NewStayPeriod(b.CheckIn, b.CheckOut)
	if err != nil {
		return nil, err
	}
	party, err := dombooking.NewPartySize(b.Adults, b.Children, b.Infants)
	if err != nil {
		return nil, err
	}
	return dombooking.NewBooking(
		b.GuestID, b.RoomID,
		stay, party,
		dombooking.NewMoney(b.RoomRateCents),
		nil,
		dombooking.Status(b.Status),
		dombooking.Details{},
		b.CreatedBy,
		b.Now,
	)
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		GuestID:      b.GuestID,
		RoomID:       b.RoomID,
		CheckInDate:  b.CheckIn.Format("2006-01-02"),
		CheckOutDate: b.CheckOut.Format("2006-01-02"),
		Adults:       b.Adults,
		Children:     b.Children,
		Infants:      b.Infants,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	nights := int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
	total := b.RoomRateCents * int64(nights)
	return &queries.BookingView{
		ID:               uuid.New(),
		BookingNumber:    "BK20260310120000-TEST",
		GuestID:          b.GuestID,
		GuestName:        b.GuestName,
		RoomID:           b.RoomID,
		RoomNumber:       b.RoomNumber,
		RoomTypeName:     "Standard Double",
		CheckInDate:      b.CheckIn,
		CheckOutDate:     b.CheckOut,
		TotalNights:      nights,
		Adults:           b.Adults,
		Children:         b.Children,
		Infants:          b.Infants,
		RoomRateCents:    b.RoomRateCents,
		TotalAmountCents: total,
		PaidAmountCents:  0,
		OutstandingCents: total,
		Status:           b.Status,
		PaymentStatus:    "pending",
		CreatedBy:        b.CreatedBy,
		CreatedAt:        b.Now,
		UpdatedAt:        b.Now,
	}
}

func (b *BookingBuilder) BuildListItem() *queries.BookingListItem {
	nights := int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
	total := b.RoomRateCents * int64(nights)
	return &queries.BookingListItem{
		ID:               uuid.New(),
		BookingNumber:    "BK20260310120000-TEST",
		GuestName:        b.GuestName,
		RoomNumber:       b.RoomNumber,
		CheckInDate:      b.CheckIn,
		CheckOutDate:     b.CheckOut,
		TotalNights:      nights,
		TotalAmountCents: total,
		PaidAmountCents:  0,
		OutstandingCents: total,
		Status:           b.Status,
		PaymentStatus:    "pending",
		CreatedAt:        b.Now,
	}
}
