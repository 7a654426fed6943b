package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jmbtrust/donation-backend/internal/model"
	"github.com/jmbtrust/donation-backend/internal/repository"
)

// RecipientHandler manages the report-recipient subscription list.  All
// routes are master_admin only (enforced at registration).
type RecipientHandler struct {
	Recipients *repository.RecipientRepo
}

func NewRecipientHandler(r *repository.RecipientRepo) *RecipientHandler {
	return &RecipientHandler{Recipients: r}
}

type recipientReq struct {
	Email     string   `json:"email"`
	Frequency string   `json:"frequency"`
	Formats   []string `json:"formats"`
}

// validate normalizes and checks a recipient payload.  The frequency
// defaults to weekly when omitted, matching the subscription form.
func (r *recipientReq) validate() string {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Email == "" {
		return "email required"
	}
	if r.Frequency == "" {
		r.Frequency = model.FrequencyWeekly
	}
	if !model.ValidFrequency(r.Frequency) {
		return "unknown frequency"
	}
	for _, f := range r.Formats {
		if !model.ValidFormat(f) {
			return "unknown format"
		}
	}
	return ""
}

// Create subscribes a new recipient.
func (h *RecipientHandler) Create(c echo.Context) error {
	var req recipientReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rec := model.ReportRecipient{Email: req.Email, Frequency: req.Frequency, Formats: req.Formats}
	if err := h.Recipients.Create(ctx, &rec); err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists in recipient list"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create recipient failed"})
	}
	return c.JSON(http.StatusCreated, rec)
}

// List returns all recipients.
func (h *RecipientHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	recipients, err := h.Recipients.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if recipients == nil {
		recipients = []model.ReportRecipient{}
	}
	return c.JSON(http.StatusOK, recipients)
}

// Update replaces a recipient's email, frequency and formats.
func (h *RecipientHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req recipientReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rec, err := h.Recipients.Update(ctx, id, req.Email, req.Frequency, req.Formats)
	if err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "recipient not found"})
		case repository.ErrEmailExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists in recipient list"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update recipient failed"})
	}
	return c.JSON(http.StatusOK, rec)
}

// Delete unsubscribes a recipient.
func (h *RecipientHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Recipients.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "recipient not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete recipient failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "recipient removed"})
}
