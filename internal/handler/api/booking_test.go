//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"stayops/internal/domain/user"
	"stayops/internal/handler/api"
	resdto "stayops/internal/handler/dto/response"
	"stayops/internal/usecase/commands"
	"stayops/internal/usecase/queries"
	"stayops/tests/common/builder"
	"stayops/tests/common/httptest"
	"stayops/tests/common/testutil"
	commandsmock "stayops/tests/mock/commands"
	queriesmock "stayops/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	// Stand-in for the real auth middleware.
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", uuid.New())
		c.Set("user_role", user.RoleStaff)
		c.Next()
	}

	s.router.GET("/bookings", authMiddleware, s.handler.List)
	s.router.POST("/bookings", authMiddleware, s.handler.Create)
	s.router.GET("/bookings/:id", authMiddleware, s.handler.Get)
	s.router.PUT("/bookings/:id", authMiddleware, s.handler.Update)
	s.router.DELETE("/bookings/:id", authMiddleware, s.handler.Delete)
	s.router.POST("/bookings/:id/checkin", authMiddleware, s.handler.CheckIn)
	s.router.POST("/bookings/:id/checkout", authMiddleware, s.handler.CheckOut)
	s.router.POST("/bookings/:id/payment", authMiddleware, s.handler.RecordPayment)
	s.router.GET("/bookings/:id/payments", authMiddleware, s.handler.ListPayments)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

const testToken = "test-token"

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/bookings"
	reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()

	s.Run("successful creation", func() {
		view := builder.NewBookingBuilder().BuildView()
		s.mockCommands.EXPECT().
			Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(view.ID, nil)
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), view.ID).
			Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, testToken)

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
		s.Equal(view.ID, resp.ID)
		s.Equal(view.BookingNumber, resp.BookingNumber)
		s.InDelta(360.0, resp.TotalAmount, 0.0001)
	})

	s.Run("unauthenticated", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("missing required fields", func() {
		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("guest_id", nil))
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, testToken)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("room unavailable", func() {
		s.mockCommands.EXPECT().
			Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(uuid.Nil, commands.ErrRoomUnavailable)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, testToken)
		s.Equal(http.StatusBadRequest, w.Code)
		s.Contains(w.Body.String(), "not available")
	})

	s.Run("unknown guest", func() {
		s.mockCommands.EXPECT().
			Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(uuid.Nil, commands.ErrGuestNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, testToken)
		s.Equal(http.StatusNotFound, w.Code)
	})
}

func (s *BookingHandlerTestSuite) TestList() {
	s.Run("returns items with pagination and stats", func() {
		item := builder.NewBookingBuilder().BuildListItem()
		list := &queries.BookingList{
			Items:      []*queries.BookingListItem{item},
			Pagination: queries.NewPagination(1, 10, 1),
			Stats: queries.BookingStats{
				TotalBookings:        1,
				ConfirmedBookings:    1,
				RevenueCents:         0,
				AvgBookingValueCents: 36000,
			},
		}
		s.mockQueries.EXPECT().
			List(gomock.Any(), gomock.Any()).
			Return(list, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?status=confirmed", nil, testToken)

		var resp resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Len(resp.Bookings, 1)
		s.Equal(int64(1), resp.Stats.TotalBookings)
		s.InDelta(360.0, resp.Stats.AvgBookingValue, 0.0001)
	})

	s.Run("invalid date range filter", func() {
		s.mockQueries.EXPECT().
			List(gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrInvalidDateRangeFilter)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?date_range=someday", nil, testToken)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *BookingHandlerTestSuite) TestGet() {
	s.Run("found", func() {
		view := builder.NewBookingBuilder().BuildView()
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), view.ID).
			Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+view.ID.String(), nil, testToken)

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(view.GuestName, resp.GuestName)
		s.InDelta(360.0, resp.Outstanding, 0.0001)
	})

	s.Run("malformed id", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, testToken)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *BookingHandlerTestSuite) TestDelete() {
	id := uuid.New()

	s.Run("success", func() {
		s.mockCommands.EXPECT().
			Delete(gomock.Any(), id).
			Return(nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/bookings/"+id.String(), nil, testToken)
		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("checked-in booking", func() {
		s.mockCommands.EXPECT().
			Delete(gomock.Any(), id).
			Return(commands.ErrCheckedInConflict)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/bookings/"+id.String(), nil, testToken)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *BookingHandlerTestSuite) TestCheckOut() {
	id := uuid.New()
	url := "/bookings/" + id.String() + "/checkout"

	s.Run("returns the settlement", func() {
		s.mockCommands.EXPECT().
			CheckOut(gomock.Any(), id, gomock.Any()).
			Return(&commands.CheckOutResult{
				BookingID:        id,
				TotalAmountCents: 25500,
				PaidAmountCents:  36000,
				BalanceDueCents:  -10500,
			}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"actual_nights": 2}, testToken)

		var resp resdto.CheckOutResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.InDelta(255.0, resp.TotalAmount, 0.0001)
		s.InDelta(-105.0, resp.BalanceDue, 0.0001)
	})

	s.Run("cancelled booking", func() {
		s.mockCommands.EXPECT().
			CheckOut(gomock.Any(), id, gomock.Any()).
			Return(nil, commands.ErrBookingCancelled)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, testToken)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *BookingHandlerTestSuite) TestRecordPayment() {
	id := uuid.New()
	url := "/bookings/" + id.String() + "/payment"
	body := map[string]any{"amount": 120.0, "method": "card"}

	s.Run("success", func() {
		view := builder.NewBookingBuilder().BuildView()
		view.ID = id
		s.mockCommands.EXPECT().
			RecordPayment(gomock.Any(), id, gomock.Any(), gomock.Any()).
			Return(uuid.New(), nil)
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), id).
			Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, testToken)
		s.Equal(http.StatusCreated, w.Code)
	})

	s.Run("overpayment", func() {
		s.mockCommands.EXPECT().
			RecordPayment(gomock.Any(), id, gomock.Any(), gomock.Any()).
			Return(uuid.Nil, commands.ErrExceedsBalance)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, testToken)
		s.Equal(http.StatusBadRequest, w.Code)
		s.Contains(w.Body.String(), "outstanding balance")
	})

	s.Run("missing method", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"amount": 120.0}, testToken)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}
