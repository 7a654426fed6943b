package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/jmbtrust/donation-backend/internal/model"
	"github.com/jmbtrust/donation-backend/internal/payment"
	"github.com/jmbtrust/donation-backend/internal/repository"
)

func gatewaySignature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func donationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "whatsapp", "email", "amount", "note", "order_id", "payment_id",
		"razorpay_signature", "status", "receipt_number", "aadhar_card", "pan_card",
		"is_deleted", "created_at",
	})
}

func postVerifyPayment(t *testing.T, h *DonationHandler, orderID, paymentID, signature string) *httptest.ResponseRecorder {
	t.Helper()
	body := fmt.Sprintf(`{"razorpay_order_id":%q,"razorpay_payment_id":%q,"razorpay_signature":%q}`,
		orderID, paymentID, signature)
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.VerifyPayment(e.NewContext(req, rec)); err != nil {
		t.Fatalf("VerifyPayment: %v", err)
	}
	return rec
}

func TestVerifyPaymentReplayConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	h := NewDonationHandler(repository.NewDonationRepo(db), payment.NewClient("key", "secret"))

	// The order already verified: a replayed callback with a valid
	// signature must not hit MarkPaid again.
	mock.ExpectQuery("SELECT .+ FROM donations WHERE order_id").
		WithArgs("order_1").
		WillReturnRows(donationRows().AddRow(
			9, "Asha", "111", nil, 500, nil, "order_1", "pay_1",
			"sig", model.StatusPaid, "RCPT-123456", nil, nil, false, time.Now()))

	rec := postVerifyPayment(t, h, "order_1", "pay_1", gatewaySignature("secret", "order_1", "pay_1"))

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409; body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Success  bool                 `json:"success"`
		Donation model.OnlineDonation `json:"donation"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Success {
		t.Error("replay reported success")
	}
	if resp.Donation.ReceiptNumber != "RCPT-123456" {
		t.Errorf("donation in body = %+v", resp.Donation)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestVerifyPaymentBadSignature(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	h := NewDonationHandler(repository.NewDonationRepo(db), payment.NewClient("key", "secret"))

	mock.ExpectQuery("SELECT .+ FROM donations WHERE order_id").
		WithArgs("order_1").
		WillReturnRows(donationRows().AddRow(
			9, "Asha", "111", nil, 500, nil, "order_1", nil,
			nil, model.StatusCreated, nil, nil, nil, false, time.Now()))

	rec := postVerifyPayment(t, h, "order_1", "pay_1", "deadbeef")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body = %s", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
