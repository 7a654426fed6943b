package model

import "time"

// Cash donation sub-types.  "cheque" carries bank name and cheque number,
// "upi" carries the UPI transaction id, plain "cash" carries neither.
const (
	DonationTypeCash   = "cash"
	DonationTypeCheque = "cheque"
	DonationTypeUPI    = "upi"
)

// ValidDonationType reports whether s is one of the cash donation sub-types.
func ValidDonationType(s string) bool {
	return s == DonationTypeCash || s == DonationTypeCheque || s == DonationTypeUPI
}

// CashDonation mirrors the `cash_donations` table: a donation physically
// collected by a volunteer.  The receipt number is minted from the
// sequential counter inside the creation transaction and never changes
// afterwards.
//
// The deposit workflow is two independent flags: the owning volunteer sets
// DepositAcknowledged with a free-text note once the money is banked, and an
// accounts or master_admin user sets DepositVerified after checking bank
// records, stamping who verified and when.  Neither flag requires the other.
type CashDonation struct {
	ID                  uint64     `json:"id"`
	VolunteerID         uint64     `json:"volunteer"`
	VolunteerUsername   string     `json:"volunteerUsername,omitempty"` // joined from users, list views only
	Name                string     `json:"name"`
	Phone               string     `json:"phone"`
	Email               string     `json:"email,omitempty"`
	Amount              int64      `json:"amount"`
	Note                string     `json:"note,omitempty"`
	DonationType        string     `json:"donationType"`
	BankName            string     `json:"bankName,omitempty"`
	ChequeNumber        string     `json:"chequeNumber,omitempty"`
	UPITransactionID    string     `json:"upiTransactionId,omitempty"`
	AadharCard          string     `json:"aadharCard,omitempty"`
	PanCard             string     `json:"panCard,omitempty"`
	Status              string     `json:"status"`
	ReceiptNumber       string     `json:"receiptNumber"`
	DepositAcknowledged bool       `json:"depositAcknowledged"`
	DepositNote         string     `json:"depositNote,omitempty"`
	DepositVerified     bool       `json:"depositVerified"`
	DepositVerifiedAt   *time.Time `json:"depositVerifiedAt,omitempty"`
	DepositVerifiedBy   uint64     `json:"depositVerifiedBy,omitempty"`
	IsDeleted           bool       `json:"isDeleted"`
	CreatedAt           time.Time  `json:"createdAt"`
}
