//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"stayops/internal/handler/api"
	reqdto "stayops/internal/handler/dto/request"
	resdto "stayops/internal/handler/dto/response"
	"stayops/internal/usecase/commands"
	"stayops/internal/usecase/queries"
	"stayops/tests/common/httptest"
	"stayops/tests/common/testutil"
	commandsmock "stayops/tests/mock/commands"
	queriesmock "stayops/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type GuestHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockGuestCommands
	mockQueries  *queriesmock.MockGuestQueries
	handler      *api.GuestHandler
}

func (s *GuestHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockGuestCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockGuestQueries(s.mockCtrl)
	s.handler = api.NewGuestHandler(s.mockCommands, s.mockQueries)

	s.router.GET("/guests", s.handler.List)
	s.router.GET("/guests/:id", s.handler.Get)
	s.router.POST("/guests", s.handler.Create)
	s.router.PUT("/guests/:id", s.handler.Update)
	s.router.DELETE("/guests/:id", s.handler.Delete)
}

func (s *GuestHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestGuestHandlerSuite(t *testing.T) {
	suite.Run(t, new(GuestHandlerTestSuite))
}

func guestView() *queries.GuestView {
	now := time.Now()
	return &queries.GuestView{
		ID:              uuid.New(),
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "ada@example.com",
		Phone:           "+34 600 000 000",
		TotalBookings:   2,
		TotalSpentCents: 72000,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (s *GuestHandlerTestSuite) TestCreate() {
	reqBody := reqdto.CreateGuestRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	}

	s.Run("creates a guest and returns the stored view", func() {
		view := guestView()
		s.mockCommands.EXPECT().Create(gomock.Any(), reqBody).Return(view.ID, nil)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/guests", reqBody, "")

		var resp resdto.GuestResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
		s.Equal(view.ID, resp.ID)
		s.Equal("Ada Lovelace", resp.FullName)
		s.InDelta(720.0, resp.TotalSpent, 0.001)
	})

	s.Run("missing first name is rejected", func() {
		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("first_name", nil))
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/guests", body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("invalid email is rejected", func() {
		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("email", "not-an-email"))
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/guests", body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *GuestHandlerTestSuite) TestList() {
	s.Run("passes search and pagination through", func() {
		search := "ada"
		expected := queries.GuestListParams{Search: &search, Page: 2, Limit: 5}
		s.mockQueries.EXPECT().List(gomock.Any(), expected).Return(&queries.GuestList{
			Items:      []*queries.GuestView{guestView()},
			Pagination: queries.Pagination{Page: 2, Limit: 5, Total: 6, TotalPages: 2},
		}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/guests?search=ada&page=2&limit=5", nil, "")

		var resp resdto.GuestListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Len(resp.Guests, 1)
		s.Equal(2, resp.Pagination.Page)
		s.EqualValues(6, resp.Pagination.Total)
	})
}

func (s *GuestHandlerTestSuite) TestGet() {
	s.Run("returns the guest", func() {
		view := guestView()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/guests/"+view.ID.String(), nil, "")

		var resp resdto.GuestResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(view.ID, resp.ID)
		s.EqualValues(2, resp.TotalBookings)
	})

	s.Run("malformed id is rejected", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/guests/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid guest ID")
	})

	s.Run("unknown guest returns not found", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(nil, commands.ErrGuestNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/guests/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Guest not found")
	})
}

func (s *GuestHandlerTestSuite) TestUpdate() {
	s.Run("updates and returns the fresh view", func() {
		view := guestView()
		phone := "+34 611 111 111"
		reqBody := reqdto.UpdateGuestRequest{Phone: &phone}

		s.mockCommands.EXPECT().Update(gomock.Any(), view.ID, reqBody).Return(nil)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/guests/"+view.ID.String(), reqBody, "")

		var resp resdto.GuestResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(view.ID, resp.ID)
	})

	s.Run("unknown guest returns not found", func() {
		id := uuid.New()
		notes := "vip"
		reqBody := reqdto.UpdateGuestRequest{Notes: &notes}
		s.mockCommands.EXPECT().Update(gomock.Any(), id, reqBody).Return(commands.ErrGuestNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/guests/"+id.String(), reqBody, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Guest not found")
	})
}

func (s *GuestHandlerTestSuite) TestDelete() {
	s.Run("deletes a guest without bookings", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().Delete(gomock.Any(), id).Return(nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/guests/"+id.String(), nil, "")
		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("guest with bookings cannot be deleted", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().Delete(gomock.Any(), id).Return(commands.ErrGuestHasBookings)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/guests/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Guest still has bookings")
	})
}
