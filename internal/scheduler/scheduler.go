// Package scheduler wires the periodic report jobs onto cron schedules.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jmbtrust/donation-backend/internal/report"
)

// Scheduler owns the cron runner and its four report entries.  There is no
// catch-up: a tick missed while the process was down is simply skipped.
type Scheduler struct {
	cron *cron.Cron
	jobs *report.Jobs
}

// jobTimeout bounds one report tick end to end, queries plus dispatch.
const jobTimeout = 5 * time.Minute

// New builds a scheduler with the standard entries: trustee reports at
// midnight (daily), Sunday midnight (weekly) and the first of the month
// (monthly), plus the per-volunteer daily report at 23:59.
func New(jobs *report.Jobs) (*Scheduler, error) {
	c := cron.New()
	s := &Scheduler{cron: c, jobs: jobs}

	entries := []struct {
		spec string
		run  func(context.Context)
	}{
		{"0 0 * * *", jobs.SendDaily},
		{"0 0 * * 0", jobs.SendWeekly},
		{"0 0 1 * *", jobs.SendMonthly},
		{"59 23 * * *", jobs.SendVolunteerDaily},
	}
	for _, e := range entries {
		run := e.run
		if _, err := c.AddFunc(e.spec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()
			run(ctx)
		}); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Start launches the cron runner in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Printf("scheduler: started with %d entries", len(s.cron.Entries()))
}

// Stop halts scheduling and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
