package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jmbtrust/donation-backend/internal/model"
	"github.com/jmbtrust/donation-backend/internal/payment"
	"github.com/jmbtrust/donation-backend/internal/repository"
	"github.com/jmbtrust/donation-backend/internal/utils"
)

// DonationHandler serves the online (payment-gateway) donation flow.
type DonationHandler struct {
	Donations *repository.DonationRepo
	Gateway   *payment.Client
}

func NewDonationHandler(d *repository.DonationRepo, g *payment.Client) *DonationHandler {
	return &DonationHandler{Donations: d, Gateway: g}
}

type createOrderReq struct {
	Name       string `json:"name"`
	Whatsapp   string `json:"whatsapp"`
	Email      string `json:"email"`
	Amount     int64  `json:"amount"`
	Note       string `json:"note"`
	AadharCard string `json:"aadharCard"`
	PanCard    string `json:"panCard"`
}

type verifyPaymentReq struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

// CreateOrder persists a donation in "created" status and opens a gateway
// order for it.  The response carries what the checkout frontend needs.
// If the gateway call fails the record is left behind in "created" status
// with no order id; it never reaches reports because those only count rows
// by creation window and the frontend retries with a fresh record.
func (h *DonationHandler) CreateOrder(c echo.Context) error {
	var req createOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || strings.TrimSpace(req.Whatsapp) == "" || req.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/whatsapp/amount required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	d := model.OnlineDonation{
		Name:       req.Name,
		Whatsapp:   strings.TrimSpace(req.Whatsapp),
		Email:      strings.TrimSpace(req.Email),
		Amount:     req.Amount,
		Note:       req.Note,
		AadharCard: req.AadharCard,
		PanCard:    req.PanCard,
	}
	if err := h.Donations.Create(ctx, &d); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "unable to create order"})
	}

	order, err := h.Gateway.CreateOrder(ctx, d.Amount, utils.DonationReceiptRef(d.ID))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "unable to create order"})
	}
	if err := h.Donations.SetOrderID(ctx, d.ID, order.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "unable to create order"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"key":      h.Gateway.KeyID,
		"order_id": order.ID,
		"amount":   order.Amount,
		"currency": order.Currency,
	})
}

// VerifyPayment checks the gateway signature for an order and, when valid,
// marks the donation paid and assigns its receipt number.
func (h *DonationHandler) VerifyPayment(c echo.Context) error {
	var req verifyPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "order/payment/signature required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d, err := h.Donations.GetByOrderID(ctx, req.OrderID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "donation record not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "payment verification failed"})
	}

	if !h.Gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid signature"})
	}

	// A replayed callback for an order that already verified is client
	// state, not a failure: report the conflict with the existing record.
	if d.Status == model.StatusPaid {
		return c.JSON(http.StatusConflict, echo.Map{"success": false, "error": "payment already verified", "donation": d})
	}

	receipt, err := utils.OnlineReceiptNumber()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "payment verification failed"})
	}
	if err := h.Donations.MarkPaid(ctx, d.ID, req.PaymentID, req.Signature, receipt); err != nil {
		if err == repository.ErrNotFound {
			// Lost a race with a concurrent verification of the same order.
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "error": "payment already verified"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "payment verification failed"})
	}

	d, err = h.Donations.GetByID(ctx, d.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "payment verification failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "donation": d})
}

// List returns all non-deleted online donations, newest first.
func (h *DonationHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	donations, err := h.Donations.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if donations == nil {
		donations = []model.OnlineDonation{}
	}
	return c.JSON(http.StatusOK, donations)
}

// GetByID serves the shareable receipt link.  Soft-deleted records remain
// reachable here.
func (h *DonationHandler) GetByID(c echo.Context) error {
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

// SoftDelete flags a donation as logically removed.
func (h *DonationHandler) SoftDelete(c echo.Context) error {
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
