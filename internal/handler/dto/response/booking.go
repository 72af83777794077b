package response

import (
	"time"

	"stayops/internal/usecase/commands"
	"stayops/internal/usecase/queries"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

func amount(cents int64) float64 {
	return float64(cents) / 100
}

type BookingResponse struct {
	ID              uuid.UUID  `json:"id"`
	BookingNumber   string     `json:"bookingNumber"`
	GuestID         uuid.UUID  `json:"guestId"`
	GuestName       string     `json:"guestName"`
	GuestEmail      string     `json:"guestEmail"`
	RoomID          uuid.UUID  `json:"roomId"`
	RoomNumber      string     `json:"roomNumber"`
	RoomTypeName    string     `json:"roomTypeName"`
	CheckInDate     string     `json:"checkInDate"`
	CheckOutDate    string     `json:"checkOutDate"`
	TotalNights     int        `json:"totalNights"`
	Adults          int        `json:"adults"`
	Children        int        `json:"children"`
	Infants         int        `json:"infants"`
	RoomRate        float64    `json:"roomRate"`
	TotalAmount     float64    `json:"totalAmount"`
	PaidAmount      float64    `json:"paidAmount"`
	Outstanding     float64    `json:"outstandingAmount"`
	Status          string     `json:"status"`
	PaymentStatus   string     `json:"paymentStatus"`
	SpecialRequests string     `json:"specialRequests"`
	Notes           string     `json:"notes"`
	Source          string     `json:"source"`
	CreatedBy       uuid.UUID  `json:"createdBy"`
	CheckedInAt     *time.Time `json:"checkedInAt,omitempty"`
	CheckedOutAt    *time.Time `json:"checkedOutAt,omitempty"`
	RoomKeyNumber   string     `json:"roomKeyNumber,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:              v.ID,
		BookingNumber:   v.BookingNumber,
		GuestID:         v.GuestID,
		GuestName:       v.GuestName,
		GuestEmail:      v.GuestEmail,
		RoomID:          v.RoomID,
		RoomNumber:      v.RoomNumber,
		RoomTypeName:    v.RoomTypeName,
		CheckInDate:     v.CheckInDate.Format(dateLayout),
		CheckOutDate:    v.CheckOutDate.Format(dateLayout),
		TotalNights:     v.TotalNights,
		Adults:          v.Adults,
		Children:        v.Children,
		Infants:         v.Infants,
		RoomRate:        amount(v.RoomRateCents),
		TotalAmount:     amount(v.TotalAmountCents),
		PaidAmount:      amount(v.PaidAmountCents),
		Outstanding:     amount(v.OutstandingCents),
		Status:          v.Status,
		PaymentStatus:   v.PaymentStatus,
		SpecialRequests: v.SpecialRequests,
		Notes:           v.Notes,
		Source:          v.Source,
		CreatedBy:       v.CreatedBy,
		CheckedInAt:     v.CheckedInAt,
		CheckedOutAt:    v.CheckedOutAt,
		RoomKeyNumber:   v.RoomKeyNumber,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

type BookingListItemResponse struct {
	ID            uuid.UUID `json:"id"`
	BookingNumber string    `json:"bookingNumber"`
	GuestName     string    `json:"guestName"`
	RoomNumber    string    `json:"roomNumber"`
	CheckInDate   string    `json:"checkInDate"`
	CheckOutDate  string    `json:"checkOutDate"`
	TotalNights   int       `json:"totalNights"`
	TotalAmount   float64   `json:"totalAmount"`
	PaidAmount    float64   `json:"paidAmount"`
	Outstanding   float64   `json:"outstandingAmount"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	CreatedAt     time.Time `json:"createdAt"`
}

type BookingStatsResponse struct {
	TotalBookings     int64   `json:"totalBookings"`
	ConfirmedBookings int64   `json:"confirmedBookings"`
	CheckedInBookings int64   `json:"checkedInBookings"`
	Revenue           float64 `json:"revenue"`
	AvgBookingValue   float64 `json:"avgBookingValue"`
}

type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type BookingListResponse struct {
	Bookings   []*BookingListItemResponse `json:"bookings"`
	Pagination PaginationResponse         `json:"pagination"`
	Stats      BookingStatsResponse       `json:"stats"`
}

func FromBookingList(list *queries.BookingList) *BookingListResponse {
	items := make([]*BookingListItemResponse, len(list.Items))
	for i, item := range list.Items {
		items[i] = &BookingListItemResponse{
			ID:            item.ID,
			BookingNumber: item.BookingNumber,
			GuestName:     item.GuestName,
			RoomNumber:    item.RoomNumber,
			CheckInDate:   item.CheckInDate.Format(dateLayout),
			CheckOutDate:  item.CheckOutDate.Format(dateLayout),
			TotalNights:   item.TotalNights,
			TotalAmount:   amount(item.TotalAmountCents),
			PaidAmount:    amount(item.PaidAmountCents),
			Outstanding:   amount(item.OutstandingCents),
			Status:        item.Status,
			PaymentStatus: item.PaymentStatus,
			CreatedAt:     item.CreatedAt,
		}
	}
	return &BookingListResponse{
		Bookings: items,
		Pagination: PaginationResponse{
			Page:       list.Pagination.Page,
			Limit:      list.Pagination.Limit,
			Total:      list.Pagination.Total,
			TotalPages: list.Pagination.TotalPages,
		},
		Stats: BookingStatsResponse{
			TotalBookings:     list.Stats.TotalBookings,
			ConfirmedBookings: list.Stats.ConfirmedBookings,
			CheckedInBookings: list.Stats.CheckedInBookings,
			Revenue:           amount(list.Stats.RevenueCents),
			AvgBookingValue:   amount(list.Stats.AvgBookingValueCents),
		},
	}
}

type PaymentEventResponse struct {
	ID            uuid.UUID `json:"id"`
	BookingID     uuid.UUID `json:"bookingId"`
	Amount        float64   `json:"amount"`
	Method        string    `json:"method"`
	TransactionID *string   `json:"transactionId,omitempty"`
	ProcessedBy   uuid.UUID `json:"processedBy"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func FromPaymentEventView(v *queries.PaymentEventView) *PaymentEventResponse {
	return &PaymentEventResponse{
		ID:            v.ID,
		BookingID:     v.BookingID,
		Amount:        amount(v.AmountCents),
		Method:        v.Method,
		TransactionID: v.TransactionID,
		ProcessedBy:   v.ProcessedBy,
		Notes:         v.Notes,
		CreatedAt:     v.CreatedAt,
	}
}

func FromPaymentEventViews(views []*queries.PaymentEventView) []*PaymentEventResponse {
	out := make([]*PaymentEventResponse, len(views))
	for i, v := range views {
		out[i] = FromPaymentEventView(v)
	}
	return out
}

type CheckOutResponse struct {
	BookingID   uuid.UUID `json:"bookingId"`
	TotalAmount float64   `json:"totalAmount"`
	PaidAmount  float64   `json:"paidAmount"`
	BalanceDue  float64   `json:"balanceDue"`
}

func FromCheckOutResult(r *commands.CheckOutResult) *CheckOutResponse {
	return &CheckOutResponse{
		BookingID:   r.BookingID,
		TotalAmount: amount(r.TotalAmountCents),
		PaidAmount:  amount(r.PaidAmountCents),
		BalanceDue:  amount(r.BalanceDueCents),
	}
}
