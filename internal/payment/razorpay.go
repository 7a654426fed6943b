// Package payment is the thin boundary to the Razorpay gateway: opening an
// order for an online donation and verifying the signature the gateway
// returns after a successful payment.  Everything else about the gateway
// (checkout UI, capture, refunds) lives outside this system.
package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.razorpay.com/v1"

// Client talks to the gateway's orders API with basic auth over the
// configured key pair.
type Client struct {
	KeyID     string
	KeySecret string
	BaseURL   string // overridable for tests
	HTTP      *http.Client
}

func NewClient(keyID, keySecret string) *Client {
	return &Client{
		KeyID:     keyID,
		KeySecret: keySecret,
		BaseURL:   defaultBaseURL,
		HTTP:      &http.Client{Timeout: 10 * time.Second},
	}
}

// Order is the subset of the gateway's order object the frontend needs to
// launch checkout.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // paise
	Currency string `json:"currency"`
}

// CreateOrder opens a gateway order for the given rupee amount.  The
// receipt ties the order back to our donation record.  Amounts are sent in
// paise with capture enabled, matching the checkout flow.
func (c *Client) CreateOrder(ctx context.Context, amountRupees int64, receipt string) (Order, error) {
	payload, err := json.Marshal(map[string]any{
		"amount":          amountRupees * 100,
		"currency":        "INR",
		"receipt":         receipt,
		"payment_capture": 1,
	})
	if err != nil {
		return Order{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return Order{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.KeyID, c.KeySecret)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Order{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Order{}, fmt.Errorf("gateway order create: status %d", resp.StatusCode)
	}
	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return Order{}, err
	}
	return order, nil
}

// VerifySignature checks the HMAC-SHA256 the gateway computes over
// "orderID|paymentID" with the key secret.  The comparison is constant
// time.
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.KeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
