//go:build e2e

package booking_test

import (
	"fmt"
	"net/http"
	"testing"

	"stayops/internal/domain/user"
	"stayops/internal/handler/dto/request"
	"stayops/internal/handler/dto/response"
	"stayops/tests/common/authtest"
	"stayops/tests/common/dbtest"
	"stayops/tests/common/httptest"
	"stayops/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const bookingsURL = "/api/bookings"

type bookingSuite struct {
	e2e.SharedSuite
	token   string
	guestID uuid.UUID
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(bookingSuite))
}

func (s *bookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
	s.token = authtest.CreateAndLogin(s.T(), s.DB, s.Router, "reception@example.com", string(user.RoleStaff))
	s.guestID = dbtest.CreateTestGuest(s.T(), s.DB, "Ada", "Lovelace")
}

func (s *bookingSuite) createBooking(req request.CreateBookingRequest) response.BookingResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, req, s.token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp response.BookingResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &resp))
	return resp
}

func (s *bookingSuite) newCreateRequest() request.CreateBookingRequest {
	confirmed := "confirmed"
	return request.CreateBookingRequest{
		GuestID:      s.guestID,
		RoomID:       dbtest.SeedRoomID,
		CheckInDate:  "2026-03-12",
		CheckOutDate: "2026-03-15",
		Adults:       2,
		Status:       &confirmed,
		Source:       "walk_in",
	}
}

func (s *bookingSuite) TestCreate() {
	s.Run("creates a booking priced from the room type rate", func() {
		t := s.T()

		resp := s.createBooking(s.newCreateRequest())
		require.NotEmpty(t, resp.BookingNumber)
		require.Equal(t, "confirmed", resp.Status)
		require.Equal(t, 3, resp.TotalNights)
		require.InDelta(t, 120.0, resp.RoomRate, 0.001)
		require.InDelta(t, 360.0, resp.TotalAmount, 0.001)
		require.InDelta(t, 360.0, resp.Outstanding, 0.001)
		require.Equal(t, "pending", resp.PaymentStatus)
	})

	s.Run("rejects an overlapping booking for the same room", func() {
		t := s.T()
		s.createBooking(s.newCreateRequest())

		overlapping := s.newCreateRequest()
		overlapping.CheckInDate = "2026-03-14"
		overlapping.CheckOutDate = "2026-03-16"

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, overlapping, s.token)
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Room is not available for the selected dates")
	})

	s.Run("allows a back to back stay starting on the checkout day", func() {
		t := s.T()
		s.createBooking(s.newCreateRequest())

		next := s.newCreateRequest()
		next.CheckInDate = "2026-03-15"
		next.CheckOutDate = "2026-03-17"

		resp := s.createBooking(next)
		require.Equal(t, 2, resp.TotalNights)
	})

	s.Run("defaults to pending, which does not reserve the room", func() {
		t := s.T()

		hold := s.newCreateRequest()
		hold.Status = nil
		resp := s.createBooking(hold)
		require.Equal(t, "pending", resp.Status)

		overlapping := s.newCreateRequest()
		overlapping.CheckInDate = "2026-03-14"
		overlapping.CheckOutDate = "2026-03-16"
		confirmed := s.createBooking(overlapping)
		require.Equal(t, "confirmed", confirmed.Status)
	})

	s.Run("rejects a booking without authentication", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, s.newCreateRequest(), "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func (s *bookingSuite) TestLifecycle() {
	s.Run("check-in, payment and check-out settle the booking", func() {
		t := s.T()

		created := s.createBooking(s.newCreateRequest())
		bookingURL := fmt.Sprintf("%s/%s", bookingsURL, created.ID)

		// Check in with a cash advance
		advance := 100.0
		checkInReq := request.CheckInRequest{
			RoomKeyNumber:  "K-101",
			AdvancePayment: &advance,
			PaymentMethod:  "cash",
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingURL+"/checkin", checkInReq, s.token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var checkedIn response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &checkedIn))
		require.Equal(t, "checked_in", checkedIn.Status)
		require.Equal(t, "K-101", checkedIn.RoomKeyNumber)
		require.InDelta(t, 100.0, checkedIn.PaidAmount, 0.001)
		require.Equal(t, "partial", checkedIn.PaymentStatus)

		var roomStatus string
		err := s.DB.QueryRow(t.Context(), "SELECT status FROM rooms WHERE id = $1", dbtest.SeedRoomID).Scan(&roomStatus)
		require.NoError(t, err)
		require.Equal(t, "occupied", roomStatus)

		// Pay the rest
		payReq := request.RecordPaymentRequest{Amount: 260.0, Method: "card"}
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingURL+"/payment", payReq, s.token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var paid response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &paid))
		require.Equal(t, "paid", paid.PaymentStatus)
		require.InDelta(t, 0.0, paid.Outstanding, 0.001)

		// Both payment events are on the ledger
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, bookingURL+"/payments", nil, s.token)
		require.Equal(t, http.StatusOK, w.Code)
		var events []response.PaymentEventResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &events))
		require.Len(t, events, 2)

		// Check out at the planned length of stay
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingURL+"/checkout", request.CheckOutRequest{}, s.token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var settlement response.CheckOutResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &settlement))
		require.InDelta(t, 360.0, settlement.TotalAmount, 0.001)
		require.InDelta(t, 360.0, settlement.PaidAmount, 0.001)
		require.InDelta(t, 0.0, settlement.BalanceDue, 0.001)

		err = s.DB.QueryRow(t.Context(), "SELECT status FROM rooms WHERE id = $1", dbtest.SeedRoomID).Scan(&roomStatus)
		require.NoError(t, err)
		require.Equal(t, "cleaning", roomStatus)
	})

	s.Run("early departure recomputes the total from actual nights", func() {
		t := s.T()

		created := s.createBooking(s.newCreateRequest())
		bookingURL := fmt.Sprintf("%s/%s", bookingsURL, created.ID)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingURL+"/checkin", request.CheckInRequest{RoomKeyNumber: "K-101"}, s.token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		nights := 2
		extra := 15.0
		checkOutReq := request.CheckOutRequest{ActualNights: &nights, ExtraCharges: &extra}
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingURL+"/checkout", checkOutReq, s.token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var settlement response.CheckOutResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &settlement))
		require.InDelta(t, 255.0, settlement.TotalAmount, 0.001)
		require.InDelta(t, 255.0, settlement.BalanceDue, 0.001)
	})

	s.Run("overpayment is rejected", func() {
		t := s.T()

		created := s.createBooking(s.newCreateRequest())
		payReq := request.RecordPaymentRequest{Amount: 500.0, Method: "card"}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf("%s/%s/payment", bookingsURL, created.ID), payReq, s.token)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Payment exceeds outstanding balance")
	})
}

func (s *bookingSuite) TestListAndDelete() {
	s.Run("list includes occupancy stats", func() {
		t := s.T()
		s.createBooking(s.newCreateRequest())

		second := s.newCreateRequest()
		second.RoomID = dbtest.SeedSecondRoomID
		s.createBooking(second)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?page=1&limit=10", nil, s.token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var list response.BookingListResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &list))
		require.Len(t, list.Bookings, 2)
		require.EqualValues(t, 2, list.Pagination.Total)
		require.EqualValues(t, 2, list.Stats.TotalBookings)
		require.EqualValues(t, 2, list.Stats.ConfirmedBookings)

		// Most recently created first
		require.Equal(t, dbtest.SeedSecondRoomNumber, list.Bookings[0].RoomNumber)
		require.Equal(t, dbtest.SeedRoomNumber, list.Bookings[1].RoomNumber)
	})

	s.Run("deleting a checked-in booking is rejected", func() {
		t := s.T()

		created := s.createBooking(s.newCreateRequest())
		bookingURL := fmt.Sprintf("%s/%s", bookingsURL, created.ID)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingURL+"/checkin", request.CheckInRequest{}, s.token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, bookingURL, nil, s.token)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Checked-in bookings cannot be deleted")
	})

	s.Run("deleting a confirmed booking frees the room", func() {
		t := s.T()

		created := s.createBooking(s.newCreateRequest())
		bookingURL := fmt.Sprintf("%s/%s", bookingsURL, created.ID)

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, bookingURL, nil, s.token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		// The same dates can be booked again
		s.createBooking(s.newCreateRequest())
	})
}
