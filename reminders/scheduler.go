package reminders

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bubble-server/metrics"
	"bubble-server/models"
	"bubble-server/templates"

	"github.com/robfig/cron/v3"
)

// ClockLayout is the zero-padded 24-hour form reminders are compared against.
const ClockLayout = "15:04"

// DefaultSchedule ticks at the start of every minute.
const DefaultSchedule = "* * * * *"

// FiredTemplate is the bot text broadcast when a reminder comes due.
const FiredTemplate = "Reminder: {{task}}"

// Broadcaster fans an event out to every connected client.
type Broadcaster interface {
	Broadcast(event string, payload interface{})
}

// Scheduler sweeps the store once per tick and fires due reminders.
type Scheduler struct {
	store  *Store
	out    Broadcaster
	cron   *cron.Cron
	logger *slog.Logger
}

// NewScheduler registers the sweep on schedule (standard 5-field cron or a
// descriptor such as "@every 1m"). It does not start ticking until Start.
func NewScheduler(store *Store, out Broadcaster, schedule string, logger *slog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if schedule == "" {
		schedule = DefaultSchedule
	}

	s := &Scheduler{
		store:  store,
		out:    out,
		logger: logger.With("component", "reminder_scheduler"),
		cron: cron.New(cron.WithParser(cron.NewParser(
			cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
		))),
	}

	if _, err := s.cron.AddFunc(schedule, func() { s.Tick(time.Now()) }); err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", schedule, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("reminder scheduler started", "entries", len(s.cron.Entries()))
}

// Stop halts ticking; the returned context is done once a running tick finishes.
func (s *Scheduler) Stop() context.Context {
	ctx := s.cron.Stop()
	s.logger.Info("reminder scheduler stopped")
	return ctx
}

// Tick fires every reminder whose time equals now formatted as HH:MM in the
// process's local zone and returns how many fired. Matching is exact string
// equality: a reminder whose minute was skipped never fires.
func (s *Scheduler) Tick(now time.Time) int {
	clock := now.Local().Format(ClockLayout)
	due := s.store.TakeDue(clock)

	for _, f := range due {
		text := templates.Interpolate(FiredTemplate, &templates.Context{
			Task: f.Reminder.Task,
			Time: f.Reminder.Time,
		})
		s.out.Broadcast(models.WSTypeReceiveMessage, models.NewChatMessage(text, models.SenderBot))
		metrics.RemindersFired.Inc()
		s.logger.Info("reminder fired", "connection_id", f.ConnectionID, "time", f.Reminder.Time)
	}

	if len(due) > 0 {
		s.logger.Debug("reminder tick", "clock", clock, "fired", len(due), "pending", s.store.Len())
	}
	return len(due)
}
