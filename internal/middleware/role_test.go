package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/jmbtrust/donation-backend/internal/model"
)

func roleRequest(t *testing.T, role model.Role, allowed ...model.Role) int {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set(CtxRole, role)
	}

	handler := RequireRole(allowed...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec.Code
}

func TestRequireRole(t *testing.T) {
	if code := roleRequest(t, model.RoleAdmin, model.RoleAdmin, model.RoleMasterAdmin); code != http.StatusOK {
		t.Errorf("allowed role got %d", code)
	}
	if code := roleRequest(t, model.RoleVolunteer, model.RoleAdmin, model.RoleMasterAdmin); code != http.StatusForbidden {
		t.Errorf("disallowed role got %d", code)
	}
	if code := roleRequest(t, "", model.RoleAdmin); code != http.StatusForbidden {
		t.Errorf("missing role got %d", code)
	}
}
