package models

import "time"

// TimestampLayout matches the ISO-8601 form browsers produce with toISOString.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// ChatMessage is the payload of every receive_message event.
type ChatMessage struct {
	Text      string `json:"text"`
	Sender    string `json:"sender"`
	Timestamp string `json:"timestamp"`
}

// NewChatMessage stamps text with the current UTC time.
func NewChatMessage(text, sender string) ChatMessage {
	return ChatMessage{
		Text:      text,
		Sender:    sender,
		Timestamp: time.Now().UTC().Format(TimestampLayout),
	}
}

type SendMessageRequest struct {
	Text   string `json:"text"`
	Sender string `json:"sender"`
}

type TypingPayload struct {
	Sender string `json:"sender"`
}

type WelcomePayload struct {
	ConnectionID string `json:"connection_id"`
	Message      string `json:"message"`
}

// WebSocket message types
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

const (
	WSTypeSendMessage    = "send_message"
	WSTypeReceiveMessage = "receive_message"
	WSTypeTyping         = "typing"
	WSTypeWelcome        = "welcome"
)
