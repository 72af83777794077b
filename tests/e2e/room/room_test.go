//go:build e2e

package room_test

import (
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

const (
	roomsURL     = "/api/rooms"
	roomTypesURL = "/api/room-types"
)

type roomSuite struct {
	e2e.SharedSuite
	staffToken   string
	managerToken string
}

func TestRoomSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(roomSuite))
}

func (s *roomSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
	s.staffToken = authtest.CreateAndLogin(s.T(), s.DB, s.Router, "front@example.com", string(user.RoleStaff))
	s.managerToken = authtest.CreateAndLogin(s.T(), s.DB, s.Router, "boss@example.com", string(user.RoleManager))
}

func (s *roomSuite) bookSeedRoom(checkIn, checkOut string) response.BookingResponse {
	t := s.T()
	guestID := dbtest.CreateTestGuest(t, s.DB, "Grace", "Hopper")

	confirmed := "confirmed"
	req := request.CreateBookingRequest{
		GuestID:      guestID,
		RoomID:       dbtest.SeedRoomID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Adults:       1,
		Status:       &confirmed,
		Source:       "phone",
	}
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/bookings", req, s.staffToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp response.BookingResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &resp))
	return resp
}

func (s *roomSuite) availableRooms(checkIn, checkOut string) []response.RoomResponse {
	t := s.T()
	url := roomsURL + "/available?check_in_date=" + checkIn + "&check_out_date=" + checkOut
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, s.staffToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var rooms []response.RoomResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &rooms))
	return rooms
}

func (s *roomSuite) TestAvailability() {
	s.Run("excludes rooms with an active booking over the window", func() {
		t := s.T()
		s.bookSeedRoom("2026-04-10", "2026-04-12")

		rooms := s.availableRooms("2026-04-11", "2026-04-13")
		require.Len(t, rooms, 1)
		require.Equal(t, dbtest.SeedSecondRoomID, rooms[0].ID)
		require.Equal(t, dbtest.SeedSecondRoomNumber, rooms[0].RoomNumber)
	})

	s.Run("frees the room for a window starting on the checkout day", func() {
		t := s.T()
		s.bookSeedRoom("2026-04-10", "2026-04-12")

		rooms := s.availableRooms("2026-04-12", "2026-04-14")
		require.Len(t, rooms, 2)
	})

	s.Run("rejects an inverted date window", func() {
		t := s.T()
		url := roomsURL + "/available?check_in_date=2026-04-13&check_out_date=2026-04-11"
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, s.staffToken)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Check-out date must be after check-in date")
	})
}

func (s *roomSuite) TestCRUD() {
	s.Run("creates a room and rejects a duplicate room number", func() {
		t := s.T()
		req := request.CreateRoomRequest{
			RoomNumber: "301",
			RoomTypeID: dbtest.SeedRoomTypeID,
			Floor:      3,
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, roomsURL, req, s.staffToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp response.RoomResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &resp))
		require.Equal(t, "301", resp.RoomNumber)
		require.Equal(t, "available", resp.Status)
		require.InDelta(t, 120.0, resp.BasePrice, 0.001)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, roomsURL, req, s.staffToken)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Room number already exists")
	})

	s.Run("lists rooms filtered by room number search", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, roomsURL+"?search=102", nil, s.staffToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var list response.RoomListResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &list))
		require.Len(t, list.Rooms, 1)
		require.Equal(t, dbtest.SeedSecondRoomID, list.Rooms[0].ID)
	})

	s.Run("returns 404 for an unknown room", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, roomsURL+"/"+uuid.NewString(), nil, s.staffToken)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Room not found")
	})
}

func (s *roomSuite) TestDeleteGuard() {
	s.Run("refuses to delete a room that holds an active booking", func() {
		t := s.T()
		booking := s.bookSeedRoom("2026-05-01", "2026-05-03")
		roomURL := roomsURL + "/" + dbtest.SeedRoomID.String()

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, roomURL, nil, s.managerToken)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Room has active bookings")

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, "/api/bookings/"+booking.ID.String(), nil, s.staffToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, roomURL, nil, s.managerToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
	})

	s.Run("requires the manager role to delete a room", func() {
		t := s.T()
		roomURL := roomsURL + "/" + dbtest.SeedRoomID.String()
		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, roomURL, nil, s.staffToken)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Insufficient permissions")
	})
}

func (s *roomSuite) TestRoomTypes() {
	s.Run("manager creates a room type and updates its rate", func() {
		t := s.T()
		req := request.CreateRoomTypeRequest{
			Name:         "Junior Suite",
			Category:     "suite",
			BasePrice:    210.0,
			MaxOccupancy: 4,
			Amenities:    []string{"wifi", "minibar"},
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, roomTypesURL, req, s.managerToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.RoomTypeResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.Equal(t, "Junior Suite", created.Name)
		require.InDelta(t, 210.0, created.BasePrice, 0.001)
		require.True(t, created.IsActive)

		newPrice := 235.5
		update := request.UpdateRoomTypeRequest{BasePrice: &newPrice}
		w = httptest.PerformRequest(t, s.Router, http.MethodPut, roomTypesURL+"/"+created.ID.String(), update, s.managerToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var updated response.RoomTypeResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &updated))
		require.InDelta(t, 235.5, updated.BasePrice, 0.001)
	})

	s.Run("staff cannot create a room type", func() {
		t := s.T()
		req := request.CreateRoomTypeRequest{
			Name:         "Penthouse",
			Category:     "suite",
			BasePrice:    500.0,
			MaxOccupancy: 2,
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, roomTypesURL, req, s.staffToken)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("refuses to delete a room type still assigned to rooms", func() {
		t := s.T()
		typeURL := roomTypesURL + "/" + dbtest.SeedRoomTypeID.String()
		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, typeURL, nil, s.managerToken)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Room type still referenced by rooms")
	})
}
