package models

// Reminder is a pending task owned by a single websocket connection.
// Time is the clock string captured from the request ("9:30", "14:05"); it is
// compared verbatim against the scheduler's HH:MM clock.
type Reminder struct {
	Task string `json:"task"`
	Time string `json:"time"`
}
