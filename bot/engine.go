// Package bot implements Sylvester, the keyword auto-reply bot.
package bot

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"bubble-server/metrics"
	"bubble-server/models"
	"bubble-server/reminders"
)

// DefaultTypingDelay is how long the bot "types" before a reply is broadcast.
const DefaultTypingDelay = 1200 * time.Millisecond

// Broadcaster fans an event out to every connected client.
type Broadcaster interface {
	Broadcast(event string, payload interface{})
}

type Engine struct {
	table       *Table
	reminders   *reminders.Store
	out         Broadcaster
	typingDelay time.Duration
	pick        func(n int) int
	logger      *slog.Logger
}

type Option func(*Engine)

func WithTable(t *Table) Option { return func(e *Engine) { e.table = t } }

// WithTypingDelay sets the typing delay; zero or less broadcasts replies synchronously.
func WithTypingDelay(d time.Duration) Option { return func(e *Engine) { e.typingDelay = d } }

// WithPicker replaces the uniform random choice used by Random rules.
func WithPicker(pick func(n int) int) Option { return func(e *Engine) { e.pick = pick } }

func WithLogger(l *slog.Logger) Option { return func(e *Engine) { e.logger = l } }

func NewEngine(store *reminders.Store, out Broadcaster, opts ...Option) *Engine {
	e := &Engine{
		table:       DefaultTable(),
		reminders:   store,
		out:         out,
		typingDelay: DefaultTypingDelay,
		pick:        rand.IntN,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("component", "bot")
	return e
}

// Evaluate picks the reply for text sent on connID. A reminder request is
// recorded in the store before Evaluate returns.
func (e *Engine) Evaluate(text, connID string) (Reply, bool) {
	reply, ok := e.table.Evaluate(NewInput(text), e.pick)
	if !ok {
		return Reply{}, false
	}
	if reply.Reminder != nil {
		e.reminders.Add(connID, *reply.Reminder)
		metrics.RemindersScheduled.Inc()
		e.logger.Info("reminder scheduled", "connection_id", connID, "time", reply.Reminder.Time)
	}
	return reply, true
}

// Respond evaluates text and, on a match, broadcasts a typing notice followed
// by the reply after the typing delay. The delayed send cannot be cancelled.
func (e *Engine) Respond(text, connID string) bool {
	reply, ok := e.Evaluate(text, connID)
	if !ok {
		return false
	}

	e.out.Broadcast(models.WSTypeTyping, models.TypingPayload{Sender: models.SenderBot})

	send := func() {
		e.out.Broadcast(models.WSTypeReceiveMessage, models.NewChatMessage(reply.Text, models.SenderBot))
		metrics.BotReply(reply.Rule)
	}
	if e.typingDelay <= 0 {
		send()
	} else {
		time.AfterFunc(e.typingDelay, send)
	}
	e.logger.Debug("bot reply queued", "rule", reply.Rule, "connection_id", connID)
	return true
}
