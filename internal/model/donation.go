package model

import "time"

// Donation statuses.  Online donations start as "created" when the gateway
// order is opened and become "paid" once the payment signature verifies.
// Cash donations are "collected" from the moment a volunteer records them.
const (
	StatusCreated   = "created"
	StatusPaid      = "paid"
	StatusCollected = "collected"
)

// OnlineDonation mirrors the `donations` table: a donation made through the
// payment gateway.  Order/payment/signature references are filled in by the
// gateway flow; the receipt number is assigned only after the payment is
// verified.  IsDeleted is a soft-delete flag: flagged rows stay retrievable
// by id but are excluded from listings and reports.
type OnlineDonation struct {
	ID            uint64    `json:"id"`
	Name          string    `json:"name"`
	Whatsapp      string    `json:"whatsapp"`
	Email         string    `json:"email,omitempty"`
	Amount        int64     `json:"amount"`
	Note          string    `json:"note,omitempty"`
	OrderID       string    `json:"order_id,omitempty"`
	PaymentID     string    `json:"payment_id,omitempty"`
	Signature     string    `json:"razorpay_signature,omitempty"`
	Status        string    `json:"status"`
	ReceiptNumber string    `json:"receiptNumber,omitempty"`
	AadharCard    string    `json:"aadharCard,omitempty"`
	PanCard       string    `json:"panCard,omitempty"`
	IsDeleted     bool      `json:"isDeleted"`
	CreatedAt     time.Time `json:"createdAt"`
}
