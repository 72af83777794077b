//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"stayops/internal/domain/user"
	"stayops/internal/handler/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	userID uuid.UUID
	role   user.Role
	err    error
}

func (v *stubValidator) ValidateToken(string) (uuid.UUID, user.Role, error) {
	return v.userID, v.role, v.err
}

func newAuthRouter(validator *stubValidator, minRole user.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	mw := middleware.NewAuthMiddleware(validator)

	engine := gin.New()
	group := engine.Group("", mw.RequireAuth())
	if minRole != "" {
		group.Use(mw.RequireRoleAtLeast(minRole))
	}
	group.GET("/protected", func(c *gin.Context) {
		id, _ := middleware.GetUserID(c)
		role, _ := middleware.GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"userId": id, "role": role})
	})
	return engine
}

func perform(t *testing.T, engine *gin.Engine, token string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "/protected", nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	validator := &stubValidator{userID: uuid.New(), role: user.RoleStaff}

	t.Run("rejects a request without a token", func(t *testing.T) {
		w := perform(t, newAuthRouter(validator, ""), "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.JSONEq(t, `{"error":"Access token required"}`, w.Body.String())
	})

	t.Run("rejects a token the validator refuses", func(t *testing.T) {
		bad := &stubValidator{err: user.ErrInvalidRole}
		w := perform(t, newAuthRouter(bad, ""), "bad-token")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.JSONEq(t, `{"error":"Invalid or expired token"}`, w.Body.String())
	})

	t.Run("sets the user context for a valid token", func(t *testing.T) {
		w := perform(t, newAuthRouter(validator, ""), "good-token")
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), validator.userID.String())
	})
}

func TestRequireRoleAtLeast(t *testing.T) {
	t.Parallel()

	t.Run("staff cannot reach a manager route", func(t *testing.T) {
		validator := &stubValidator{userID: uuid.New(), role: user.RoleStaff}
		w := perform(t, newAuthRouter(validator, user.RoleManager), "good-token")
		require.Equal(t, http.StatusForbidden, w.Code)
		require.JSONEq(t, `{"error":"Insufficient permissions"}`, w.Body.String())
	})

	t.Run("admin passes a manager route", func(t *testing.T) {
		validator := &stubValidator{userID: uuid.New(), role: user.RoleAdmin}
		w := perform(t, newAuthRouter(validator, user.RoleManager), "good-token")
		require.Equal(t, http.StatusOK, w.Code)
	})
}
