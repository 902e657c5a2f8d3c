package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"bubble-server/metrics"
	"bubble-server/models"
	"bubble-server/reminders"
)

var clockPattern = regexp.MustCompile(`^\d+:\d+$`)

// ReminderScheduler adds a reminder for a live connection and reports false
// when the connection is unknown.
type ReminderScheduler interface {
	ScheduleReminder(connID string, r models.Reminder) bool
}

// ReminderHandler exposes a connection's pending reminders over HTTP. The
// connection id is the one sent to the client in its welcome frame.
type ReminderHandler struct {
	store     *reminders.Store
	scheduler ReminderScheduler
}

func NewReminderHandler(s *reminders.Store, scheduler ReminderScheduler) *ReminderHandler {
	return &ReminderHandler{store: s, scheduler: scheduler}
}

func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	connID := r.PathValue("connID")
	list := h.store.List(connID)
	if list == nil {
		list = []models.Reminder{}
	}
	writeJSON(w, http.StatusOK, list)
}

// Create adds a reminder for a connected client without going through the
// chat bot. Time uses the same H:MM form the bot accepts and is not
// range-checked. Unknown or disconnected ids get 404.
func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	connID := r.PathValue("connID")

	var req models.Reminder
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Task = strings.TrimSpace(req.Task)
	req.Time = strings.TrimSpace(req.Time)
	if req.Task == "" {
		writeError(w, http.StatusBadRequest, "Task is required")
		return
	}
	if !clockPattern.MatchString(req.Time) {
		writeError(w, http.StatusBadRequest, "Invalid time format, expected HH:MM")
		return
	}

	if !h.scheduler.ScheduleReminder(connID, req) {
		writeError(w, http.StatusNotFound, "Connection not found")
		return
	}
	metrics.RemindersScheduled.Inc()
	writeJSON(w, http.StatusCreated, req)
}

func (h *ReminderHandler) Clear(w http.ResponseWriter, r *http.Request) {
	n := h.store.RemoveAll(r.PathValue("connID"))
	writeJSON(w, http.StatusOK, map[string]int{"removed": n})
}
