package request

import (
	"time"

	"stayops/internal/domain/booking"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// ParseDate parses a calendar date ("2006-01-02") into a UTC midnight instant.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

type CreateBookingRequest struct {
	GuestID         uuid.UUID `json:"guest_id" binding:"required"`
	RoomID          uuid.UUID `json:"room_id" binding:"required"`
	CheckInDate     string    `json:"check_in_date" binding:"required"`
	CheckOutDate    string    `json:"check_out_date" binding:"required"`
	Adults          int       `json:"adults" binding:"required,min=1"`
	Children        int       `json:"children" binding:"min=0"`
	Infants         int       `json:"infants" binding:"min=0"`
	RoomRate        *float64  `json:"room_rate,omitempty"`
	TotalAmount     *float64  `json:"total_amount,omitempty"`
	Status          *string   `json:"status,omitempty"`
	SpecialRequests string    `json:"special_requests"`
	Notes           string    `json:"notes"`
	Source          string    `json:"source"`
}

func (r CreateBookingRequest) StayPeriod() (booking.StayPeriod, error) {
	checkIn, err := ParseDate(r.CheckInDate)
	if err != nil {
		return booking.StayPeriod{}, booking.ErrInvalidDateRange
	}
	checkOut, err := ParseDate(r.CheckOutDate)
	if err != nil {
		return booking.StayPeriod{}, booking.ErrInvalidDateRange
	}
	return booking.NewStayPeriod(checkIn, checkOut)
}

// UpdateBookingRequest is a partial update; nil fields are left unchanged.
type UpdateBookingRequest struct {
	GuestID         *uuid.UUID `json:"guest_id,omitempty"`
	RoomID          *uuid.UUID `json:"room_id,omitempty"`
	CheckInDate     *string    `json:"check_in_date,omitempty"`
	CheckOutDate    *string    `json:"check_out_date,omitempty"`
	Adults          *int       `json:"adults,omitempty"`
	Children        *int       `json:"children,omitempty"`
	Infants         *int       `json:"infants,omitempty"`
	RoomRate        *float64   `json:"room_rate,omitempty"`
	Status          *string    `json:"status,omitempty"`
	SpecialRequests *string    `json:"special_requests,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	Source          *string    `json:"source,omitempty"`
}

type CheckInRequest struct {
	ActualCheckInTime *time.Time `json:"actual_check_in_time,omitempty"`
	RoomKeyNumber     string     `json:"room_key_number"`
	AdvancePayment    *float64   `json:"advance_payment,omitempty"`
	PaymentMethod     string     `json:"payment_method"`
	Notes             string     `json:"notes"`
}

type CheckOutRequest struct {
	ActualCheckOutTime *time.Time `json:"actual_check_out_time,omitempty"`
	ActualNights       *int       `json:"actual_nights,omitempty"`
	ExtraCharges       *float64   `json:"extra_charges,omitempty"`
	Notes              string     `json:"notes"`
	RoomStatusAfter    string     `json:"room_status_after"`
}

type RecordPaymentRequest struct {
	Amount        float64 `json:"amount" binding:"required"`
	Method        string  `json:"method" binding:"required"`
	TransactionID *string `json:"transaction_id,omitempty"`
	Notes         string  `json:"notes"`
}
