package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/zerowaste/connect-share/internal/core/domain"
)

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func runAuth(t *testing.T, header string) (*httptest.ResponseRecorder, bool, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth("secret")(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called, c
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token := signed(t, "secret", jwt.MapClaims{
		"sub":  "vol-1",
		"name": "Vera",
		"role": "volunteer",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	rec, called, c := runAuth(t, "Bearer "+token)
	if !called {
		t.Fatalf("next not called, status %d", rec.Code)
	}
	if c.Get(KeyUserID) != "vol-1" {
		t.Errorf("user_id not set: %v", c.Get(KeyUserID))
	}
	if c.Get(KeyUserName) != "Vera" {
		t.Errorf("user_name not set: %v", c.Get(KeyUserName))
	}
	if c.Get(KeyRole) != domain.RoleVolunteer {
		t.Errorf("role not set: %v", c.Get(KeyRole))
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	rec, called, _ := runAuth(t, "")
	if called {
		t.Fatal("should not reach next")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	rec, called, _ := runAuth(t, "Token abc")
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without next, got %d (called=%v)", rec.Code, called)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	rec, called, _ := runAuth(t, "Bearer not-a-token")
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without next, got %d (called=%v)", rec.Code, called)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	token := signed(t, "secret", jwt.MapClaims{
		"sub":  "vol-1",
		"role": "volunteer",
		"exp":  time.Now().Add(-time.Minute).Unix(),
	})
	rec, called, _ := runAuth(t, "Bearer "+token)
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without next, got %d (called=%v)", rec.Code, called)
	}
}

func TestAuthMiddleware_UnknownRole(t *testing.T) {
	token := signed(t, "secret", jwt.MapClaims{"sub": "u1", "role": "guest"})
	rec, called, _ := runAuth(t, "Bearer "+token)
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without next, got %d (called=%v)", rec.Code, called)
	}
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	token := signed(t, "other", jwt.MapClaims{"sub": "u1", "role": "donor"})
	rec, called, _ := runAuth(t, "Bearer "+token)
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without next, got %d (called=%v)", rec.Code, called)
	}
}
