package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"stayops/internal/domain/user"
	"stayops/internal/handler/api"
	"stayops/internal/handler/middleware"
	"stayops/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth    *api.AuthHandler
	Booking *api.BookingHandler
	Room    *api.RoomHandler
	Guest   *api.GuestHandler
	Expense *api.ExpenseHandler
	User    *api.UserHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, handlers Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, handlers, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: h.Auth.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Booking.List},
				{Method: http.MethodPost, Path: "", Handler: h.Booking.Create},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.Get},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Booking.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Booking.Delete},
				{Method: http.MethodPost, Path: "/:id/checkin", Handler: h.Booking.CheckIn},
				{Method: http.MethodPost, Path: "/:id/checkout", Handler: h.Booking.CheckOut},
				{Method: http.MethodGet, Path: "/:id/payments", Handler: h.Booking.ListPayments},
				{Method: http.MethodPost, Path: "/:id/payment", Handler: h.Booking.RecordPayment},
			})
		}

		rooms := apiGroup.Group("/rooms")
		rooms.Use(authMiddleware.RequireAuth())
		{
			addRoutes(rooms, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Room.List},
				{Method: http.MethodGet, Path: "/available", Handler: h.Room.Available},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Room.Get},
				{Method: http.MethodPost, Path: "", Handler: h.Room.Create},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Room.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Room.Delete,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleManager)}},
			})
		}

		roomTypes := apiGroup.Group("/room-types")
		roomTypes.Use(authMiddleware.RequireAuth())
		{
			managerOnly := []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleManager)}
			addRoutes(roomTypes, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Room.ListTypes},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Room.GetType},
				{Method: http.MethodPost, Path: "", Handler: h.Room.CreateType, Mw: managerOnly},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Room.UpdateType, Mw: managerOnly},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Room.DeleteType, Mw: managerOnly},
			})
		}

		guests := apiGroup.Group("/guests")
		guests.Use(authMiddleware.RequireAuth())
		{
			addRoutes(guests, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Guest.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Guest.Get},
				{Method: http.MethodPost, Path: "", Handler: h.Guest.Create},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Guest.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Guest.Delete},
			})
		}

		expenses := apiGroup.Group("/expenses")
		expenses.Use(authMiddleware.RequireAuth())
		{
			addRoutes(expenses, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Expense.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Expense.Get},
				{Method: http.MethodPost, Path: "", Handler: h.Expense.Create},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Expense.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Expense.Delete},
			})
		}

		users := apiGroup.Group("/users")
		users.Use(authMiddleware.RequireAuth())
		users.Use(authMiddleware.RequireRoleAtLeast(user.RoleAdmin))
		{
			addRoutes(users, []route{
				{Method: http.MethodGet, Path: "", Handler: h.User.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.User.Get},
				{Method: http.MethodPost, Path: "", Handler: h.User.Create},
				{Method: http.MethodPut, Path: "/:id", Handler: h.User.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.User.Delete},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
