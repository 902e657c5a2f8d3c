// Package metrics exposes Prometheus counters for the chat relay and bot.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bubble_messages_received_total",
		Help: "Number of chat messages received from clients",
	})
	BotReplies = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bubble_bot_replies_total",
		Help: "Number of bot replies emitted, by rule",
	}, []string{"rule"})
	RemindersScheduled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bubble_reminders_scheduled_total",
		Help: "Number of reminders accepted",
	})
	RemindersFired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bubble_reminders_fired_total",
		Help: "Number of reminders fired by the scheduler",
	})
	RemindersDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bubble_reminders_dropped_total",
		Help: "Number of pending reminders discarded on disconnect",
	})
	BroadcastsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bubble_broadcasts_dropped_total",
		Help: "Number of frames not delivered because a client buffer was full",
	})
	ConnectedClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bubble_connected_clients",
		Help: "Current number of websocket clients",
	})
)

// BotReply counts one emitted reply for rule.
func BotReply(rule string) { BotReplies.WithLabelValues(rule).Inc() }
