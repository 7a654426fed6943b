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

// CashDonationHandler serves in-person donations and their deposit
// workflow.
type CashDonationHandler struct {
	Donations *repository.CashDonationRepo
}

func NewCashDonationHandler(d *repository.CashDonationRepo) *CashDonationHandler {
	return &CashDonationHandler{Donations: d}
}

type createCashReq struct {
	VolunteerID      uint64 `json:"userId"` // admin-tier callers may record for a volunteer
	Name             string `json:"name"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	Amount           int64  `json:"amount"`
	Note             string `json:"note"`
	DonationType     string `json:"donationType"`
	BankName         string `json:"bankName"`
	ChequeNumber     string `json:"chequeNumber"`
	UPITransactionID string `json:"upiTransactionId"`
	AadharCard       string `json:"aadharCard"`
	PanCard          string `json:"panCard"`
}

type acknowledgeReq struct {
	Note string `json:"note"`
}

type acknowledgeBatchReq struct {
	IDs  []uint64 `json:"ids"`
	Note string   `json:"note"`
}

// Create records a cash/cheque/UPI donation and mints its receipt number.
// Volunteers always record against themselves; admin-tier callers may
// record on behalf of any volunteer via userId.  Type-conditional fields
// are kept only for their own sub-type, mirroring the intake form.
func (h *CashDonationHandler) Create(c echo.Context) error {
	var req createCashReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Name == "" || req.Phone == "" || req.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/phone/amount required"})
	}
	if req.DonationType == "" {
		req.DonationType = model.DonationTypeCash
	}
	if !model.ValidDonationType(req.DonationType) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown donation type"})
	}

	volunteerID := middleware.UserID(c)
	if middleware.UserRole(c) != model.RoleVolunteer && req.VolunteerID != 0 {
		volunteerID = req.VolunteerID
	}

	d := model.CashDonation{
		VolunteerID:  volunteerID,
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        strings.TrimSpace(req.Email),
		Amount:       req.Amount,
		Note:         req.Note,
		DonationType: req.DonationType,
		AadharCard:   req.AadharCard,
		PanCard:      req.PanCard,
	}
	switch req.DonationType {
	case model.DonationTypeCheque:
		d.BankName = req.BankName
		d.ChequeNumber = req.ChequeNumber
	case model.DonationTypeUPI:
		d.UPITransactionID = req.UPITransactionID
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Donations.Create(ctx, &d); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create donation failed"})
	}
	return c.JSON(http.StatusCreated, d)
}

// List returns every non-deleted cash donation for the back office.
func (h *CashDonationHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	donations, err := h.Donations.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if donations == nil {
		donations = []model.CashDonation{}
	}
	return c.JSON(http.StatusOK, donations)
}

// ListMine returns the calling volunteer's own donations.
func (h *CashDonationHandler) ListMine(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	donations, err := h.Donations.ListByVolunteer(ctx, middleware.UserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if donations == nil {
		donations = []model.CashDonation{}
	}
	return c.JSON(http.StatusOK, donations)
}

// GetByID serves the shareable receipt link for a cash donation.
func (h *CashDonationHandler) GetByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d, err := h.Donations.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "donation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, d)
}

// Acknowledge lets the owning volunteer assert the deposit was made,
// attaching a free-text note.  Admin-tier and accounts callers may
// acknowledge any record.
func (h *CashDonationHandler) Acknowledge(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req acknowledgeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	// Ownership only binds volunteers; other roles pass 0 to skip the
	// owner guard.
	var ownerID uint64
	if middleware.UserRole(c) == model.RoleVolunteer {
		ownerID = middleware.UserID(c)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch err := h.Donations.Acknowledge(ctx, id, ownerID, req.Note); err {
	case nil:
		return c.JSON(http.StatusOK, echo.Map{"message": "deposit acknowledged"})
	case repository.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "donation not found"})
	case repository.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your donation"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
}

// AcknowledgeBatch applies one shared note to many donations.  Unknown ids
// and, for volunteer callers, ids owned by someone else are skipped rather
// than failing the batch; the response reports how many rows updated and
// which ids were skipped.
func (h *CashDonationHandler) AcknowledgeBatch(c echo.Context) error {
	var req acknowledgeBatchReq
	if err := c.Bind(&req); err != nil || len(req.IDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ids required"})
	}

	var ownerID uint64
	if middleware.UserRole(c) == model.RoleVolunteer {
		ownerID = middleware.UserID(c)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	updated, skipped, err := h.Donations.AcknowledgeBatch(ctx, req.IDs, ownerID, req.Note)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if skipped == nil {
		skipped = []uint64{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "deposits acknowledged",
		"updated": updated,
		"skipped": skipped,
	})
}

// VerifyDeposit stamps an accounts/master_admin confirmation on a
// donation.  Route registration restricts the roles.
func (h *CashDonationHandler) VerifyDeposit(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Donations.VerifyDeposit(ctx, id, middleware.UserID(c)); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "donation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deposit verified"})
}

// SoftDelete flags a cash donation as logically removed; it stays
// retrievable by id but drops out of listings and reports.
func (h *CashDonationHandler) SoftDelete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Donations.SoftDelete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "donation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "donation removed"})
}
