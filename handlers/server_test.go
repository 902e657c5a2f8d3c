package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bubble-server/reminders"

	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (p fakePinger) Ping() error { return p.err }

func TestIndex(t *testing.T) {
	h := NewServerHandler(fakePinger{}, nil)

	rec := httptest.NewRecorder()
	h.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Bubble server is running!")

	rec = httptest.NewRecorder()
	h.Index(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	hub := NewHub(reminders.NewStore(), nil)

	rec := httptest.NewRecorder()
	NewServerHandler(fakePinger{}, hub).Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK", rec.Body.String())
	require.Equal(t, "0", rec.Header().Get("X-Connected-Clients"))

	rec = httptest.NewRecorder()
	NewServerHandler(fakePinger{err: errors.New("down")}, hub).Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
