package queries

import (
	"context"
	"time"

	"stayops/internal/pkg/clock"
	"stayops/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidDateRangeFilter = errs.New("invalid date range filter")

// Read models (DTOs for the read side). Monetary fields stay in cents;
// the handler layer converts to plain numbers at the boundary.
type BookingView struct {
	ID               uuid.UUID  `json:"id"`
	BookingNumber    string     `json:"booking_number"`
	GuestID          uuid.UUID  `json:"guest_id"`
	GuestName        string     `json:"guest_name"`
	GuestEmail       string     `json:"guest_email"`
	RoomID           uuid.UUID  `json:"room_id"`
	RoomNumber       string     `json:"room_number"`
	RoomTypeName     string     `json:"room_type_name"`
	CheckInDate      time.Time  `json:"check_in_date"`
	CheckOutDate     time.Time  `json:"check_out_date"`
	TotalNights      int        `json:"total_nights"`
	Adults           int        `json:"adults"`
	Children         int        `json:"children"`
	Infants          int        `json:"infants"`
	RoomRateCents    int64      `json:"room_rate_cents"`
	TotalAmountCents int64      `json:"total_amount_cents"`
	PaidAmountCents  int64      `json:"paid_amount_cents"`
	OutstandingCents int64      `json:"outstanding_cents"`
	Status           string     `json:"status"`
	PaymentStatus    string     `json:"payment_status"`
	SpecialRequests  string     `json:"special_requests"`
	Notes            string     `json:"notes"`
	Source           string     `json:"source"`
	CreatedBy        uuid.UUID  `json:"created_by"`
	CheckedInAt      *time.Time `json:"checked_in_at,omitempty"`
	CheckedOutAt     *time.Time `json:"checked_out_at,omitempty"`
	RoomKeyNumber    string     `json:"room_key_number"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type BookingListItem struct {
	ID               uuid.UUID `json:"id"`
	BookingNumber    string    `json:"booking_number"`
	GuestName        string    `json:"guest_name"`
	RoomNumber       string    `json:"room_number"`
	CheckInDate      time.Time `json:"check_in_date"`
	CheckOutDate     time.Time `json:"check_out_date"`
	TotalNights      int       `json:"total_nights"`
	TotalAmountCents int64     `json:"total_amount_cents"`
	PaidAmountCents  int64     `json:"paid_amount_cents"`
	OutstandingCents int64     `json:"outstanding_cents"`
	Status           string    `json:"status"`
	PaymentStatus    string    `json:"payment_status"`
	CreatedAt        time.Time `json:"created_at"`
}

// BookingStats is computed over the whole collection regardless of the
// active list filter: an overall-KPI block beside a filtered page.
type BookingStats struct {
	TotalBookings        int64 `json:"total_bookings"`
	ConfirmedBookings    int64 `json:"confirmed_bookings"`
	CheckedInBookings    int64 `json:"checked_in_bookings"`
	RevenueCents         int64 `json:"revenue_cents"`
	AvgBookingValueCents int64 `json:"avg_booking_value_cents"`
}

type PaymentEventView struct {
	ID            uuid.UUID `json:"id"`
	BookingID     uuid.UUID `json:"booking_id"`
	AmountCents   int64     `json:"amount_cents"`
	Method        string    `json:"method"`
	TransactionID *string   `json:"transaction_id,omitempty"`
	ProcessedBy   uuid.UUID `json:"processed_by"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListFilter is the resolved storage-level filter; CheckIn bounds are a
// half-open [From, To) window over the check-in date only.
type ListFilter struct {
	Search        *string
	Status        *string
	PaymentStatus *string
	CheckInFrom   *time.Time
	CheckInTo     *time.Time
	Limit         int
	Offset        int
}

type ListParams struct {
	Search        *string
	Status        *string
	PaymentStatus *string
	DateRange     *string
	Page          int
	Limit         int
}

type BookingList struct {
	Items      []*BookingListItem
	Pagination Pagination
	Stats      BookingStats
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, params ListParams) (*BookingList, error)
	PaymentsByBooking(ctx context.Context, bookingID uuid.UUID) ([]*PaymentEventView, error)
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, filter ListFilter) ([]*BookingListItem, int64, error)
	Stats(ctx context.Context) (*BookingStats, error)
	FindPaymentsByBooking(ctx context.Context, bookingID uuid.UUID) ([]*PaymentEventView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
	clock clock.Clock
}

func NewBookingQueries(store BookingReadStore, clock clock.Clock) BookingQueries {
	return &bookingQueriesImpl{store: store, clock: clock}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *bookingQueriesImpl) List(ctx context.Context, params ListParams) (*BookingList, error) {
	page := ValidatePage(params.Page)
	limit := ValidateLimit(params.Limit)

	filter := ListFilter{
		Search:        params.Search,
		Status:        params.Status,
		PaymentStatus: params.PaymentStatus,
		Limit:         limit,
		Offset:        (page - 1) * limit,
	}

	if params.DateRange != nil && *params.DateRange != "" {
		from, to, err := ResolveDateRange(*params.DateRange, q.clock.Now())
		if err != nil {
			return nil, err
		}
		filter.CheckInFrom = &from
		filter.CheckInTo = &to
	}

	items, total, err := q.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	stats, err := q.store.Stats(ctx)
	if err != nil {
		return nil, err
	}

	return &BookingList{
		Items:      items,
		Pagination: NewPagination(page, limit, total),
		Stats:      *stats,
	}, nil
}

func (q *bookingQueriesImpl) PaymentsByBooking(ctx context.Context, bookingID uuid.UUID) ([]*PaymentEventView, error) {
	return q.store.FindPaymentsByBooking(ctx, bookingID)
}

// ResolveDateRange maps a named window onto a half-open [from, to) interval
// of check-in dates. Weeks start on Monday.
func ResolveDateRange(name string, now time.Time) (time.Time, time.Time, error) {
	today := time.Date(now.UTC().Year(), now.UTC().Month(), now.UTC().Day(), 0, 0, 0, 0, time.UTC)

	switch name {
	case "today":
		return today, today.AddDate(0, 0, 1), nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), today.AddDate(0, 0, 2), nil
	case "this_week":
		start := startOfWeek(today)
		return start, start.AddDate(0, 0, 7), nil
	case "next_week":
		start := startOfWeek(today).AddDate(0, 0, 7)
		return start, start.AddDate(0, 0, 7), nil
	case "this_month":
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0), nil
	default:
		return time.Time{}, time.Time{}, ErrInvalidDateRangeFilter
	}
}

func startOfWeek(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}
