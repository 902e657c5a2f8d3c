package handlers

import (
	"net/http"
	"strconv"
)

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	Ping() error
}

type ServerHandler struct {
	db  Pinger
	hub *Hub
}

func NewServerHandler(db Pinger, hub *Hub) *ServerHandler {
	return &ServerHandler{db: db, hub: hub}
}

func (h *ServerHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Bubble server is running! 🫧"))
}

// Health reports OK when the database answers. The client count is informational.
func (h *ServerHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	if h.hub != nil {
		w.Header().Set("X-Connected-Clients", strconv.Itoa(h.hub.ClientCount()))
	}
	w.Write([]byte("OK"))
}
