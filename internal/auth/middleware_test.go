package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront-app/internal/secret"

	"github.com/gin-gonic/gin"
)

func newRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", mw, func(c *gin.Context) {
		claims, err := ClaimsFromContext(c.Request.Context())
		if err != nil {
			c.Status(http.StatusNoContent)
			return
		}
		c.JSON(http.StatusOK, gin.H{"sub": claims.Subject, "role": claims.Role})
	})
	return r
}

func doGet(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate_MissingCredentialIsInvalidToken(t *testing.T) {
	m := &Manager{secret: secret.New("k")}
	for _, h := range []string{"", "Basic dXNlcjpwYXNz", "Bearer", "Bearer   ", "Token abc"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if h != "" {
			req.Header.Set("Authorization", h)
		}
		if _, err := Authenticate(req, m, time.Now()); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%q: expected ErrInvalidToken, got %v", h, err)
		}
	}
}

func TestAuthenticate_SecretMissingIsUnexpected(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer a.b.c")

	if _, err := Authenticate(req, nil, time.Now()); !errors.Is(err, ErrUnexpected) {
		t.Fatalf("expected ErrUnexpected, got %v", err)
	}
	if _, err := Authenticate(req, &Manager{}, time.Now()); !errors.Is(err, ErrUnexpected) {
		t.Fatalf("expected ErrUnexpected, got %v", err)
	}
}

func TestRequireSession_ExposesPrincipal(t *testing.T) {
	m := &Manager{secret: secret.New("k")}
	tok, err := m.Issue(time.Now(), "abc123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := doGet(newRouter(RequireSession(m)), "Bearer "+tok)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["sub"] != "abc123" || body["role"] != RoleUser {
		t.Fatalf("unexpected principal: %v", body)
	}
}

func TestRequireSession_AcceptsLowercaseScheme(t *testing.T) {
	m := &Manager{secret: secret.New("k")}
	tok, _ := m.Issue(time.Now(), "abc123")

	if w := doGet(newRouter(RequireSession(m)), "bearer "+tok); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRequireSession_RejectsInvalidAndMissing(t *testing.T) {
	m := &Manager{secret: secret.New("k")}
	r := newRouter(RequireSession(m))

	if w := doGet(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without header, got %d", w.Code)
	}
	w := doGet(r, "Bearer not.a.token")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", w.Code)
	}
	if w.Body.String() != `{"error":"invalid token"}` {
		t.Fatalf("expected uniform body, got %s", w.Body.String())
	}
}

func TestRequireSession_MisconfiguredIs500(t *testing.T) {
	if w := doGet(newRouter(RequireSession(nil)), "Bearer a.b.c"); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if w := doGet(newRouter(RequireValidSession(&Manager{})), ""); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestRequireValidSession_GatesWithoutPrincipal(t *testing.T) {
	m := &Manager{secret: secret.New("k")}
	tok, _ := m.Issue(time.Now(), "abc123")
	r := newRouter(RequireValidSession(m))

	if w := doGet(r, "Bearer "+tok); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 (no principal propagated), got %d", w.Code)
	}
	if w := doGet(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestStatusFor(t *testing.T) {
	if StatusFor(ErrInvalidToken) != http.StatusUnauthorized {
		t.Fatalf("expected 401")
	}
	if StatusFor(ErrUnexpected) != http.StatusInternalServerError {
		t.Fatalf("expected 500")
	}
	if StatusFor(errors.New("other")) != http.StatusInternalServerError {
		t.Fatalf("expected 500")
	}
}
