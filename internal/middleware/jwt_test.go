package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/jmbtrust/donation-backend/internal/model"
	"github.com/jmbtrust/donation-backend/internal/utils"
)

const testSecret = "test-secret"

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec, c
}

func TestJWTAuthValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 42, model.RoleAdmin, 60)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	rec, c := doRequest(t, JWTAuth(testSecret), "Bearer "+tok.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := UserID(c); got != 42 {
		t.Errorf("UserID = %d, want 42", got)
	}
	if got := UserRole(c); got != model.RoleAdmin {
		t.Errorf("UserRole = %q, want admin", got)
	}
}

func TestJWTAuthRejects(t *testing.T) {
	wrongSecret, _ := utils.NewAccessToken("other-secret", 1, model.RoleAdmin, 60)
	expired, _ := utils.NewAccessToken(testSecret, 1, model.RoleAdmin, -5)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong secret", "Bearer " + wrongSecret.Token},
		{"expired", "Bearer " + expired.Token},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, _ := doRequest(t, JWTAuth(testSecret), tc.header)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestJWTAuthRejectsUnknownRole(t *testing.T) {
	// A token minted with a role the system no longer recognizes must not
	// be trusted even though the signature checks out.
	tok, err := utils.NewAccessToken(testSecret, 1, model.Role("superuser"), 60)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	rec, _ := doRequest(t, JWTAuth(testSecret), "Bearer "+tok.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
