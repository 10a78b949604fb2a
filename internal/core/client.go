package core

// Session is one client's connection as seen by the core layer.
type Session struct {
	ID     string
	Outbox chan Delivery
}

// NewSession constructs a session with a buffered outbox.
func NewSession(id string, buffer int) *Session {
	if buffer <= 0 {
		buffer = 1
	}
	return &Session{
		ID:     id,
		Outbox: make(chan Delivery, buffer),
	}
}

// Deliver enqueues d without blocking. Returns false when the outbox is full.
func (s *Session) Deliver(d Delivery) bool {
	select {
	case s.Outbox <- d:
		return true
	default:
		return false
	}
}
