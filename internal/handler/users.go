package handler

import (
	"context"  // provides context with cancellation for DB calls
	"net/http" // HTTP status codes and primitives
	"strconv"  // string-to-int conversion for path params
	"strings"  // string manipulation utilities
	"time"     // timeouts for DB calls

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/jmbtrust/donation-backend/internal/config"     // app configuration
	"github.com/jmbtrust/donation-backend/internal/middleware" // authenticated identity helpers
	"github.com/jmbtrust/donation-backend/internal/model"
	"github.com/jmbtrust/donation-backend/internal/repository" // DB repositories
	"github.com/jmbtrust/donation-backend/internal/utils"      // helper functions (hashing, token issuing)
)

// UserHandler bundles dependencies for account endpoints.
type UserHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewUserHandler(cfg config.Config, u *repository.UserRepo) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
type loginReq struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}
type passwordReq struct {
	Password    string `json:"password"`    // current password (self-service)
	NewPassword string `json:"newPassword"` // replacement
	Reset       bool   `json:"reset"`       // admin reset, skips current-password check
}
type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type loginResp struct {
	User      model.User `json:"user"`
	FirstTime bool       `json:"firstTime"`
	Access    tokenPart  `json:"access"`
}

// Register creates an account.  Only master_admin may create admin-tier
// accounts; a plain admin creating another admin or master_admin gets 403.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/email/password required"})
	}
	role, ok := model.ParseRole(strings.TrimSpace(req.Role))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
	}
	if role.AdminTier() && middleware.UserRole(c) != model.RoleMasterAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "only master_admin may create admin accounts"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Username, req.Email, req.Password, role, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrUserExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "user already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	return c.JSON(http.StatusCreated, u)
}

// Login verifies credentials and returns the user plus a one-day access
// token.  Username and email are interchangeable identifiers.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.UsernameOrEmail) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "credentials required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByUsernameOrEmail(ctx, req.UsernameOrEmail)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, loginResp{
		User:      u,
		FirstTime: u.FirstTime,
		Access:    tokenPart{Token: access.Token, Expires: access.Exp},
	})
}

// List returns all users (password hashes never serialize).
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if users == nil {
		users = []model.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// UpdatePassword handles both the self-service change (current password
// required) and the admin reset (reset=true).  Either path clears the
// first-login flag.
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req passwordReq
	if err := c.Bind(&req); err != nil || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "newPassword required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if req.Reset {
		// Admin reset: only admin-tier callers may reset someone else's
		// password.
		if !middleware.UserRole(c).AdminTier() {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
	} else {
		// Self-service: the caller may only change their own password and
		// must prove knowledge of the current one.
		if middleware.UserID(c) != id {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		u, err := h.Users.GetByID(ctx, id)
		if err != nil {
			if err == repository.ErrNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		if !utils.VerifyPassword(u.PasswordHash, req.Password) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "current password incorrect"})
		}
	}

	if err := h.Users.UpdatePassword(ctx, id, req.NewPassword, h.Cfg.BcryptCost); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password updated"})
}

// Delete removes an account.  Role hierarchy: a non-master_admin caller
// cannot delete admin-tier accounts.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	target, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if target.Role.AdminTier() && middleware.UserRole(c) != model.RoleMasterAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "cannot delete admin accounts"})
	}

	if err := h.Users.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user removed"})
}

// Me returns the authenticated identity, mostly for smoke-testing tokens.
func (h *UserHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"user_id": middleware.UserID(c),
		"role":    middleware.UserRole(c),
	})
}

// pathID parses the :id path parameter shared by most resource endpoints.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
