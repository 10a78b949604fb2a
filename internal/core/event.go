package core

// Broadcast topics.
const (
	TopicMessages  = "/topic/messages"
	TopicUserCount = "/topic/usercount"
)

// DestinationSendMessage is the inbound route for chat messages.
const DestinationSendMessage = "/app/sendMessage"

// Delivery is what a session receives on its outbox.
// Topic is empty for errors addressed to a single session.
type Delivery struct {
	Topic   string
	Payload any
	Error   *CoreError
}

// EventKind describes what the transport observed about a session.
type EventKind int

const (
	// EventConnect registers a newly opened session.
	EventConnect EventKind = iota
	// EventDisconnect removes a closed session.
	EventDisconnect
	// EventSubscribe adds a topic subscription.
	EventSubscribe
	// EventUnsubscribe removes a topic subscription.
	EventUnsubscribe
	// EventMessage carries an inbound chat message.
	EventMessage
)

func (k EventKind) String() string {
	switch k {
	case EventConnect:
		return "connect"
	case EventDisconnect:
		return "disconnect"
	case EventSubscribe:
		return "subscribe"
	case EventUnsubscribe:
		return "unsubscribe"
	case EventMessage:
		return "message"
	default:
		return "unknown"
	}
}

// Event is emitted by the transport onto the hub queue.
type Event struct {
	Kind    EventKind
	Session *Session
	Topic   string
	Message ChatMessage
}
