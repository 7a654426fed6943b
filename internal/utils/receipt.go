package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Receipt number shapes.  Cash donations carry a gapless sequential number
// rendered as JMB + a zero-padded six digit counter value.  Online
// donations get a random six digit suffix at payment-verification time.
const (
	cashReceiptPrefix   = "JMB"
	onlineReceiptPrefix = "RCPT-"
)

// CashReceiptNumber renders a counter value as a cash-donation receipt
// number, e.g. seq 42 -> "JMB000042".  Values past six digits widen rather
// than wrap.
func CashReceiptNumber(seq int64) string {
	return fmt.Sprintf("%s%06d", cashReceiptPrefix, seq)
}

// DonationReceiptRef renders the receipt reference attached to a gateway
// order, tying the order back to our donation record.
func DonationReceiptRef(id uint64) string {
	return fmt.Sprintf("donation-%d", id)
}

// OnlineReceiptNumber returns a receipt number with a random six digit
// suffix in [100000, 999999], e.g. "RCPT-483920".
func OnlineReceiptNumber() (string, error) {
	// rand.Int over [0, 900000) shifted by 100000 keeps the suffix at
	// exactly six digits.
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d", onlineReceiptPrefix, n.Int64()+100000), nil
}
