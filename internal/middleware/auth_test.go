package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/JeansCordoba/Fruteria/pkg/config"
	"github.com/JeansCordoba/Fruteria/pkg/jwtutil"
)

func runAuth(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
	if err := AuthMiddleware(next)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec, c
}

func TestAuthMiddleware(t *testing.T) {
	jwtutil.Initialize(&config.JWTConfig{SigningKey: "test-key", ExpirationTime: time.Hour})

	token, err := jwtutil.GenerateToken("ana.lopez", 7, 2)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	rec, c := runAuth(t, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := c.Get("username"); got != "ana.lopez" {
		t.Fatalf("username in context = %v, want ana.lopez", got)
	}
	if got := c.Get("user_id"); got != uint(7) {
		t.Fatalf("user_id in context = %v, want 7", got)
	}

	if rec, _ := runAuth(t, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing header status = %d, want 401", rec.Code)
	}
	if rec, _ := runAuth(t, "Token "+token); rec.Code != http.StatusUnauthorized {
		t.Fatalf("non-bearer status = %d, want 401", rec.Code)
	}
	if rec, _ := runAuth(t, "Bearer not.a.token"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token status = %d, want 401", rec.Code)
	}
}
