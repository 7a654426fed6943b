package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jmbtrust/donation-backend/internal/middleware"
	"github.com/jmbtrust/donation-backend/internal/model"
	"github.com/jmbtrust/donation-backend/internal/repository"
)

// InquiryHandler serves contact-form submissions and the admin triage
// workflow around them.
type InquiryHandler struct {
	Inquiries *repository.InquiryRepo
}

func NewInquiryHandler(i *repository.InquiryRepo) *InquiryHandler {
	return &InquiryHandler{Inquiries: i}
}

type createInquiryReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Country  string `json:"country"`
	Comments string `json:"comments"`
	Source   string `json:"source"`
}

type updateInquiryReq struct {
	Status string `json:"status"`
	Remark string `json:"remark"`
}

// Create accepts a public contact-form submission.  No auth; the route
// sits behind the rate limiter instead.
func (h *InquiryHandler) Create(c echo.Context) error {
	var req createInquiryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Name == "" || req.Email == "" || req.Phone == "" || strings.TrimSpace(req.Comments) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/email/phone/comments required"})
	}
	if req.Source == "" {
		req.Source = "contact"
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	in := model.Inquiry{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Country:  strings.TrimSpace(req.Country),
		Comments: req.Comments,
		Source:   req.Source,
	}
	if err := h.Inquiries.Create(ctx, &in); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create inquiry failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "inquiry submitted", "inquiry": in})
}

// List returns all inquiries for the admin dashboard.
func (h *InquiryHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	inquiries, err := h.Inquiries.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if inquiries == nil {
		inquiries = []model.Inquiry{}
	}
	return c.JSON(http.StatusOK, inquiries)
}

// UpdateStatus changes an inquiry's status and/or appends a remark.  The
// first admin to touch an inquiry claims it; a later update by a
// different admin is refused with 409.
func (h *InquiryHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateInquiryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Status == "" && strings.TrimSpace(req.Remark) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status or remark required"})
	}
	if req.Status != "" && !model.ValidInquiryStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	in, err := h.Inquiries.UpdateStatus(ctx, id, middleware.UserID(c), req.Status, strings.TrimSpace(req.Remark))
	if err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "inquiry not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "inquiry is assigned to another admin"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update inquiry failed"})
	}
	return c.JSON(http.StatusOK, in)
}
