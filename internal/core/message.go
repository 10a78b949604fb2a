package core

import "time"

// ChatMessage is a chat line as relayed to subscribers.
// Timestamp is assigned by the server; any client-provided value is ignored.
type ChatMessage struct {
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
