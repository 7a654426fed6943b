package scheduler

import (
	"testing"

	"github.com/jmbtrust/donation-backend/internal/report"
)

func TestNewRegistersAllEntries(t *testing.T) {
	s, err := New(report.NewJobs(nil, nil, nil, nil))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := len(s.cron.Entries()); got != 4 {
		t.Errorf("registered %d entries, want 4", got)
	}
}
