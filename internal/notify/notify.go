// Package notify fires event reminders on a cron schedule.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	appLog "github.com/kranthikiran885366/faculty-dashboard-sub000/internal/log"
	"github.com/kranthikiran885366/faculty-dashboard-sub000/internal/model"
	"github.com/kranthikiran885366/faculty-dashboard-sub000/internal/schedule"
)

// Notifier delivers a reminder that has come due.
type Notifier interface {
	Notify(ctx context.Context, r schedule.Reminder) error
}

// EventSource provides the events to scan, e.g. *store.Store.
type EventSource interface {
	Events() []model.Event
}

// LogNotifier writes reminders to the application log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, r schedule.Reminder) error {
	appLog.Info("reminder",
		"event_id", r.EventID,
		"title", r.Title,
		"occurrence", r.Occurrence,
		"starts_at", r.StartsAt.Format(time.RFC3339),
	)
	return nil
}

// Scanner periodically looks for reminders whose trigger time passed since
// the previous scan and hands them to a Notifier. Reminders that were due
// before the scanner was created are not delivered.
type Scanner struct {
	src      EventSource
	notifier Notifier
	loc      *time.Location
	now      func() time.Time

	mu   sync.Mutex
	last time.Time

	cron *cron.Cron
	ctx  context.Context
}

// Option customises a Scanner.
type Option func(*Scanner)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Scanner) { s.now = now }
}

func NewScanner(src EventSource, n Notifier, loc *time.Location, opts ...Option) *Scanner {
	if n == nil {
		n = LogNotifier{}
	}
	if loc == nil {
		loc = time.Local
	}
	s := &Scanner{src: src, notifier: n, loc: loc, now: time.Now, ctx: context.Background()}
	for _, opt := range opts {
		opt(s)
	}
	s.last = s.now()
	return s
}

// Scan delivers the reminders due in (previous scan, now] and returns how
// many were delivered. A failing notification is logged and not retried.
func (s *Scanner) Scan(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	due := schedule.DueReminders(s.src.Events(), s.last, now, s.loc)
	s.last = now

	delivered := 0
	for _, r := range due {
		if err := ctx.Err(); err != nil {
			appLog.Warn("reminder scan interrupted", "pending", len(due)-delivered)
			break
		}
		if err := s.notifier.Notify(ctx, r); err != nil {
			appLog.Error("reminder delivery failed", err, "event_id", r.EventID, "occurrence", r.Occurrence)
			continue
		}
		delivered++
	}
	if len(due) > 0 {
		appLog.Debug("reminder scan", "due", len(due), "delivered", delivered)
	}
	return delivered
}

// Start runs Scan on the given cron schedule until Stop is called. Scans
// that would overlap a running one are skipped.
func (s *Scanner) Start(ctx context.Context, spec string) error {
	logger := cronLogger{}
	c := cron.New(
		cron.WithLocation(s.loc),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	if _, err := c.AddFunc(spec, func() { s.Scan(s.ctx) }); err != nil {
		return errors.Wrapf(err, "reminder schedule %q", spec)
	}
	s.ctx = ctx
	s.cron = c
	c.Start()
	appLog.Info("reminder scanner started", "schedule", spec, "timezone", s.loc.String())
	return nil
}

// Stop halts the schedule and waits for a running scan, or for ctx.
func (s *Scanner) Stop(ctx context.Context) {
	if s.cron == nil {
		return
	}
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		appLog.Warn("reminder scanner stop timed out")
	}
}

// cronLogger routes cron's own messages through the application log.
type cronLogger struct{}

func (cronLogger) Info(msg string, kv ...interface{}) {
	appLog.Debug("cron: "+msg, kv...)
}

func (cronLogger) Error(err error, msg string, kv ...interface{}) {
	appLog.Error("cron: "+msg, err, kv...)
}
