package utils

import (
	"strconv"
	"strings"
	"testing"
)

func TestCashReceiptNumber(t *testing.T) {
	cases := []struct {
		seq  int64
		want string
	}{
		{1, "JMB000001"},
		{42, "JMB000042"},
		{999999, "JMB999999"},
		{1000000, "JMB1000000"}, // widens past six digits instead of wrapping
	}
	for _, c := range cases {
		if got := CashReceiptNumber(c.seq); got != c.want {
			t.Errorf("CashReceiptNumber(%d) = %q, want %q", c.seq, got, c.want)
		}
	}
}

func TestDonationReceiptRef(t *testing.T) {
	if got := DonationReceiptRef(17); got != "donation-17" {
		t.Errorf("DonationReceiptRef(17) = %q, want %q", got, "donation-17")
	}
}

func TestOnlineReceiptNumber(t *testing.T) {
	for i := 0; i < 100; i++ {
		got, err := OnlineReceiptNumber()
		if err != nil {
			t.Fatalf("OnlineReceiptNumber: %v", err)
		}
		if !strings.HasPrefix(got, "RCPT-") {
			t.Fatalf("missing prefix: %q", got)
		}
		suffix := strings.TrimPrefix(got, "RCPT-")
		n, err := strconv.Atoi(suffix)
		if err != nil {
			t.Fatalf("non-numeric suffix in %q", got)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("suffix %d outside six-digit range", n)
		}
	}
}
