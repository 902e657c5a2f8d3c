package reminders

import (
	"sync"
	"testing"
	"time"

	"bubble-server/models"

	"github.com/stretchr/testify/require"
)

type recordedEvent struct {
	event   string
	payload interface{}
}

type fakeBroadcaster struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (f *fakeBroadcaster) Broadcast(event string, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{event: event, payload: payload})
}

func (f *fakeBroadcaster) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, e := range f.events {
		if msg, ok := e.payload.(models.ChatMessage); ok {
			out = append(out, msg.Text)
		}
	}
	return out
}

func at(hour, minute int) time.Time {
	return time.Date(2024, 5, 1, hour, minute, 0, 0, time.Local)
}

func TestSchedulerFiresOnMatchingMinuteOnly(t *testing.T) {
	store := NewStore()
	out := &fakeBroadcaster{}
	s, err := NewScheduler(store, out, "", nil)
	require.NoError(t, err)

	store.Add("conn-1", models.Reminder{Task: "stand up", Time: "14:05"})

	require.Equal(t, 0, s.Tick(at(14, 4)))
	require.Equal(t, 1, s.Tick(at(14, 5)))
	require.Equal(t, 0, s.Tick(at(14, 5)))
	require.Equal(t, 0, s.Tick(at(14, 6)))

	require.Equal(t, []string{"Reminder: stand up"}, out.texts())
	require.Equal(t, models.WSTypeReceiveMessage, out.events[0].event)
	require.Equal(t, models.SenderBot, out.events[0].payload.(models.ChatMessage).Sender)
	require.Zero(t, store.Len())
}

func TestSchedulerSkipsDisconnectedConnections(t *testing.T) {
	store := NewStore()
	out := &fakeBroadcaster{}
	s, err := NewScheduler(store, out, "", nil)
	require.NoError(t, err)

	store.Add("conn-1", models.Reminder{Task: "gone", Time: "08:15"})
	store.RemoveAll("conn-1")

	require.Equal(t, 0, s.Tick(at(8, 15)))
	require.Empty(t, out.texts())
}

func TestSchedulerFiresInInsertionOrder(t *testing.T) {
	store := NewStore()
	out := &fakeBroadcaster{}
	s, err := NewScheduler(store, out, "", nil)
	require.NoError(t, err)

	store.Add("conn-1", models.Reminder{Task: "one", Time: "23:59"})
	store.Add("conn-1", models.Reminder{Task: "two", Time: "23:59"})

	require.Equal(t, 2, s.Tick(at(23, 59)))
	require.Equal(t, []string{"Reminder: one", "Reminder: two"}, out.texts())
}

func TestSchedulerFiresTaskTextVerbatim(t *testing.T) {
	store := NewStore()
	out := &fakeBroadcaster{}
	s, err := NewScheduler(store, out, "", nil)
	require.NoError(t, err)

	store.Add("conn-1", models.Reminder{Task: "check {{clock}} at {{time}}", Time: "09:30"})

	require.Equal(t, 1, s.Tick(at(9, 30)))
	require.Equal(t, []string{"Reminder: check {{clock}} at {{time}}"}, out.texts())
}

func TestNewSchedulerRejectsBadSchedule(t *testing.T) {
	_, err := NewScheduler(NewStore(), &fakeBroadcaster{}, "every minute please", nil)
	require.Error(t, err)
}

func TestSchedulerStartStop(t *testing.T) {
	s, err := NewScheduler(NewStore(), &fakeBroadcaster{}, "@every 1m", nil)
	require.NoError(t, err)
	s.Start()
	<-s.Stop().Done()
}
