package report

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jmbtrust/donation-backend/internal/model"
	"github.com/jmbtrust/donation-backend/internal/queue"
)

// RecipientStore is the slice of the recipient repository the jobs need.
type RecipientStore interface {
	ListByFrequency(ctx context.Context, frequency string) ([]model.ReportRecipient, error)
}

// UserStore is the slice of the user repository the volunteer job needs.
type UserStore interface {
	ListByRole(ctx context.Context, role model.Role) ([]model.User, error)
}

// Dispatch hands a finished report email off for delivery.  In production
// it publishes to the broker with a direct-SMTP fallback; tests swap in a
// recorder.
type Dispatch func(ctx context.Context, ev queue.ReportEmailEvent) error

// Jobs runs the periodic report emails.  Each job builds the trailing
// window for its frequency, renders the CSV once, and fans it out to the
// subscribed recipients.  Per-recipient failures are logged and never
// abort the loop; a tick that fails entirely is also only logged, the next
// tick starts fresh.
type Jobs struct {
	Builder    *Builder
	Recipients RecipientStore
	Users      UserStore
	Dispatch   Dispatch
	Now        func() time.Time
}

func NewJobs(b *Builder, recipients RecipientStore, users UserStore, dispatch Dispatch) *Jobs {
	return &Jobs{Builder: b, Recipients: recipients, Users: users, Dispatch: dispatch, Now: time.Now}
}

// SendDaily emails the trailing-24h report to daily recipients.
func (j *Jobs) SendDaily(ctx context.Context) {
	j.sendPeriodic(ctx, model.FrequencyDaily, "Daily")
}

// SendWeekly emails the trailing-7d report to weekly recipients.
func (j *Jobs) SendWeekly(ctx context.Context) {
	j.sendPeriodic(ctx, model.FrequencyWeekly, "Weekly")
}

// SendMonthly emails the trailing-30d report to monthly recipients.
func (j *Jobs) SendMonthly(ctx context.Context) {
	j.sendPeriodic(ctx, model.FrequencyMonthly, "Monthly")
}

func (j *Jobs) sendPeriodic(ctx context.Context, frequency, label string) {
	now := j.Now()
	from, to := Window(frequency, now)

	rep, err := j.Builder.Build(ctx, KindBoth, AudienceTrustee, from, to)
	if err != nil {
		log.Printf("report: build %s report: %v", frequency, err)
		return
	}
	recipients, err := j.Recipients.ListByFrequency(ctx, frequency)
	if err != nil {
		log.Printf("report: list %s recipients: %v", frequency, err)
		return
	}

	subject := fmt.Sprintf("%s Donation Report - %s", label, now.Format("02 Jan 2006"))
	attachmentName := fmt.Sprintf("%sDonations-%s.csv", label, now.Format("20060102"))
	for _, r := range recipients {
		ev := queue.ReportEmailEvent{
			To:       r.Email,
			Subject:  subject,
			Body:     rep.Summary,
			QueuedAt: now.UTC().Format(time.RFC3339),
		}
		// Only the csv preference produces an attachment for now; other
		// stored formats get the summary body alone.
		if r.WantsFormat(model.FormatCSV) {
			ev.AttachmentName = attachmentName
			ev.Attachment = rep.CSV
		}
		if err := j.Dispatch(ctx, ev); err != nil {
			log.Printf("report: send %s report to %s: %v", frequency, r.Email, err)
		}
	}
}

// SendVolunteerDaily emails each volunteer their own trailing-24h
// collection report.  Volunteers with no qualifying rows or no email
// address on file are skipped.
func (j *Jobs) SendVolunteerDaily(ctx context.Context) {
	now := j.Now()
	from, to := Window(model.FrequencyDaily, now)

	volunteers, err := j.Users.ListByRole(ctx, model.RoleVolunteer)
	if err != nil {
		log.Printf("report: list volunteers: %v", err)
		return
	}

	subject := fmt.Sprintf("Your Daily Collection Report - %s", now.Format("02 Jan 2006"))
	for _, v := range volunteers {
		if v.Email == "" {
			continue
		}
		rep, err := j.Builder.BuildForVolunteer(ctx, v.ID, from, to)
		if err != nil {
			log.Printf("report: build volunteer report for %s: %v", v.Username, err)
			continue
		}
		if len(rep.Rows) == 0 {
			continue
		}
		ev := queue.ReportEmailEvent{
			To:             v.Email,
			Subject:        subject,
			Body:           rep.Summary,
			AttachmentName: fmt.Sprintf("Volunteer_%s_Daily_%s.csv", v.Username, now.Format("20060102")),
			Attachment:     rep.CSV,
			QueuedAt:       now.UTC().Format(time.RFC3339),
		}
		if err := j.Dispatch(ctx, ev); err != nil {
			log.Printf("report: send volunteer report to %s: %v", v.Email, err)
		}
	}
}
