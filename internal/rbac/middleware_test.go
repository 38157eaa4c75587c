package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-app/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func withSession(sub, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := auth.SessionClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: sub}, Role: role}
		c.Request = c.Request.WithContext(auth.WithClaims(c.Request.Context(), claims))
		c.Next()
	}
}

func serve(t *testing.T, handlers ...gin.HandlerFunc) int {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) { c.Status(200) })
	r.GET("/x", handlers...)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	return w.Code
}

func TestRequireAnyRole_AllowsListedRole(t *testing.T) {
	if code := serve(t, withSession("abc123", auth.RoleUser), RequireStore(), RequireAnyRole(auth.RoleUser)); code != 200 {
		t.Fatalf("expected 200, got %d", code)
	}
}

func TestRequireAnyRole_UnlistedRoleForbidden(t *testing.T) {
	if code := serve(t, withSession("abc123", "viewer"), RequireAnyRole(auth.RoleUser)); code != 403 {
		t.Fatalf("expected 403, got %d", code)
	}
}

func TestRequireAnyRole_MissingRoleUnauthorized(t *testing.T) {
	if code := serve(t, withSession("abc123", ""), RequireAnyRole(auth.RoleUser)); code != 401 {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestRequireStore_NoSession(t *testing.T) {
	if code := serve(t, RequireStore()); code != 401 {
		t.Fatalf("expected 401, got %d", code)
	}
}
