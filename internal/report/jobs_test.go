package report

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jmbtrust/donation-backend/internal/model"
	"github.com/jmbtrust/donation-backend/internal/queue"
)

type fakeRecipients struct{ byFrequency map[string][]model.ReportRecipient }

func (f fakeRecipients) ListByFrequency(ctx context.Context, frequency string) ([]model.ReportRecipient, error) {
	return f.byFrequency[frequency], nil
}

type fakeUsers struct{ volunteers []model.User }

func (f fakeUsers) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	return f.volunteers, nil
}

type dispatchRecorder struct {
	sent   []queue.ReportEmailEvent
	failTo string // dispatch to this address errors
}

func (d *dispatchRecorder) dispatch(ctx context.Context, ev queue.ReportEmailEvent) error {
	if ev.To == d.failTo {
		return errors.New("smtp down")
	}
	d.sent = append(d.sent, ev)
	return nil
}

func newTestJobs(cash fakeCash, recipients fakeRecipients, users fakeUsers, rec *dispatchRecorder) *Jobs {
	j := NewJobs(NewBuilder(fakeOnline{}, cash), recipients, users, rec.dispatch)
	j.Now = func() time.Time { return time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC) }
	return j
}

func TestSendDailyGatesAttachmentOnFormat(t *testing.T) {
	rec := &dispatchRecorder{}
	j := newTestJobs(
		fakeCash{rows: []model.CashDonation{{Name: "Ravi", Amount: 100}}},
		fakeRecipients{byFrequency: map[string][]model.ReportRecipient{
			model.FrequencyDaily: {
				{Email: "csv@example.org", Formats: []string{model.FormatCSV}},
				{Email: "pdf@example.org", Formats: []string{model.FormatPDF}},
			},
		}},
		fakeUsers{}, rec)

	j.SendDaily(context.Background())

	if len(rec.sent) != 2 {
		t.Fatalf("sent %d emails, want 2", len(rec.sent))
	}
	byTo := map[string]queue.ReportEmailEvent{}
	for _, ev := range rec.sent {
		byTo[ev.To] = ev
	}
	if ev := byTo["csv@example.org"]; len(ev.Attachment) == 0 || ev.AttachmentName != "DailyDonations-20250615.csv" {
		t.Errorf("csv recipient got attachment %q (%d bytes)", ev.AttachmentName, len(ev.Attachment))
	}
	if ev := byTo["pdf@example.org"]; len(ev.Attachment) != 0 || ev.AttachmentName != "" {
		t.Errorf("pdf recipient unexpectedly got attachment %q", ev.AttachmentName)
	}
	if !strings.Contains(byTo["pdf@example.org"].Body, "Total Donations: 1") {
		t.Errorf("body missing summary: %q", byTo["pdf@example.org"].Body)
	}
}

func TestSendWeeklyFailureDoesNotAbortLoop(t *testing.T) {
	rec := &dispatchRecorder{failTo: "first@example.org"}
	j := newTestJobs(
		fakeCash{},
		fakeRecipients{byFrequency: map[string][]model.ReportRecipient{
			model.FrequencyWeekly: {
				{Email: "first@example.org", Formats: []string{model.FormatCSV}},
				{Email: "second@example.org", Formats: []string{model.FormatCSV}},
			},
		}},
		fakeUsers{}, rec)

	j.SendWeekly(context.Background())

	if len(rec.sent) != 1 || rec.sent[0].To != "second@example.org" {
		t.Fatalf("second recipient not reached after first failed: %+v", rec.sent)
	}
	if rec.sent[0].AttachmentName != "WeeklyDonations-20250615.csv" {
		t.Errorf("attachment name = %q", rec.sent[0].AttachmentName)
	}
}

func TestSendVolunteerDailySkips(t *testing.T) {
	rec := &dispatchRecorder{}
	j := newTestJobs(
		fakeCash{byVolunteer: map[uint64][]model.CashDonation{
			1: {{Name: "Donor", Amount: 50}},
			// volunteer 2 collected nothing
			3: {{Name: "Donor", Amount: 80}},
		}},
		fakeRecipients{},
		fakeUsers{volunteers: []model.User{
			{ID: 1, Username: "asha", Email: "asha@example.org"},
			{ID: 2, Username: "idle", Email: "idle@example.org"},
			{ID: 3, Username: "noemail"}, // no address on file
		}}, rec)

	j.SendVolunteerDaily(context.Background())

	if len(rec.sent) != 1 {
		t.Fatalf("sent %d emails, want 1: %+v", len(rec.sent), rec.sent)
	}
	ev := rec.sent[0]
	if ev.To != "asha@example.org" {
		t.Errorf("sent to %q", ev.To)
	}
	if ev.AttachmentName != "Volunteer_asha_Daily_20250615.csv" {
		t.Errorf("attachment name = %q", ev.AttachmentName)
	}
}
