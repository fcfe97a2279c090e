// Package sweep periodically recomputes the completion percentage of
// every project, so percentages converge even when a writer died
// between a task write and its recompute.
package sweep

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/haiderali9-9/edifice/internal/models"
	"github.com/haiderali9-9/edifice/internal/notify"
	"github.com/haiderali9-9/edifice/internal/project"
	"github.com/haiderali9-9/edifice/internal/store"
)

// cronParser uses standard 5-field cron expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Opts holds configuration for the sweep loop.
type Opts struct {
	Store    *store.Store
	Schedule string // 5-field cron expression
	Notifier *notify.Notifier
	Out      io.Writer
}

// Run blocks, firing a sweep at each scheduled time, until ctx is
// cancelled. An unparsable schedule is a startup error.
func Run(ctx context.Context, opts Opts) error {
	if opts.Store == nil {
		return fmt.Errorf("sweep: store is required")
	}
	sched, err := cronParser.Parse(opts.Schedule)
	if err != nil {
		return fmt.Errorf("sweep: parse schedule %q: %w", opts.Schedule, err)
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	fmt.Fprintf(opts.Out, "Completion sweep scheduled (%s)\n", opts.Schedule)

	for {
		next := sched.Next(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
		if n, err := Sweep(opts.Store, opts.Notifier); err != nil {
			log.Printf("sweep: %v", err)
		} else {
			fmt.Fprintf(opts.Out, "Sweep recomputed %d projects\n", n)
		}
	}
}

// Sweep recomputes completion for every project once and returns how
// many projects were processed. A project crossing to 100 is announced
// through the notifier. Per-project failures are logged and do not stop
// the pass.
func Sweep(s *store.Store, n *notify.Notifier) (int, error) {
	db, err := s.DB()
	if err != nil {
		return 0, err
	}
	var projects []models.Project
	if err := db.Select("id", "name", "completion").Find(&projects).Error; err != nil {
		return 0, store.Wrap("sweep: list projects", err)
	}
	count := 0
	for _, p := range projects {
		pct, err := project.RecomputeCompletion(s, p.ID)
		if err != nil {
			log.Printf("sweep: recompute %s: %v", p.ID, err)
			continue
		}
		if pct == 100 && p.Completion != 100 {
			n.ProjectCompleted(p.Name)
		}
		count++
	}
	return count, nil
}
