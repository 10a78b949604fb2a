package proto

import (
	"encoding/json"
	"time"
)

// Inbound is the envelope for frames coming from the client.
type Inbound struct {
	Type        string          `json:"type" validate:"required,oneof=send subscribe unsubscribe heartbeat"`
	Destination string          `json:"destination,omitempty" validate:"required_unless=Type heartbeat"`
	Body        json.RawMessage `json:"body,omitempty"`
}

const (
	InboundTypeSend        = "send"
	InboundTypeSubscribe   = "subscribe"
	InboundTypeUnsubscribe = "unsubscribe"
	InboundTypeHeartbeat   = "heartbeat"

	OutboundTypeMessage = "message"
	OutboundTypeError   = "error"
)

// SendData is the body of a send frame.
type SendData struct {
	Sender  string `json:"sender"`
	Content string `json:"content"`
}

// Outbound is the envelope for frames sent to the client.
type Outbound struct {
	Type        string `json:"type"`
	Destination string `json:"destination,omitempty"`
	Body        any    `json:"body,omitempty"`
	Error       *Error `json:"error,omitempty"`
}

// ChatMessage is the body delivered on the messages topic.
type ChatMessage struct {
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
