package mailer

import "testing"

func TestEnabled(t *testing.T) {
	if (&Mailer{}).Enabled() {
		t.Error("mailer with no host reports enabled")
	}
	var m *Mailer
	if m.Enabled() {
		t.Error("nil mailer reports enabled")
	}
	if !New("smtp.example.org", 587, "u", "p").Enabled() {
		t.Error("configured mailer reports disabled")
	}
}

func TestSendDisabled(t *testing.T) {
	// Without a host Send must refuse immediately instead of dialing.
	err := New("", 587, "", "").Send("to@example.org", "s", "b", "", nil)
	if err != ErrDisabled {
		t.Fatalf("err = %v, want ErrDisabled", err)
	}
}
