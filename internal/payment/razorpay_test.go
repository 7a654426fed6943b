package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	c := NewClient("key", "secret")

	good := sign("secret", "order_1", "pay_1")
	if !c.VerifySignature("order_1", "pay_1", good) {
		t.Error("valid signature rejected")
	}
	if c.VerifySignature("order_1", "pay_2", good) {
		t.Error("signature for a different payment accepted")
	}
	if c.VerifySignature("order_1", "pay_1", "deadbeef") {
		t.Error("garbage signature accepted")
	}
	if c.VerifySignature("order_1", "pay_1", "") {
		t.Error("empty signature accepted")
	}
}

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders" {
			t.Errorf("path = %s", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "key" || pass != "secret" {
			t.Errorf("basic auth = %s:%s", user, pass)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["amount"] != float64(50000) { // 500 rupees in paise
			t.Errorf("amount = %v", body["amount"])
		}
		if body["receipt"] != "donation-9" {
			t.Errorf("receipt = %v", body["receipt"])
		}
		_ = json.NewEncoder(w).Encode(Order{ID: "order_abc", Amount: 50000, Currency: "INR"})
	}))
	defer srv.Close()

	c := NewClient("key", "secret")
	c.BaseURL = srv.URL

	order, err := c.CreateOrder(context.Background(), 500, "donation-9")
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.ID != "order_abc" || order.Amount != 50000 || order.Currency != "INR" {
		t.Errorf("order = %+v", order)
	}
}

func TestCreateOrderGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient("key", "secret")
	c.BaseURL = srv.URL

	if _, err := c.CreateOrder(context.Background(), 100, "donation-1"); err == nil {
		t.Fatal("CreateOrder succeeded, want error")
	}
}
