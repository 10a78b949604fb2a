package core

import "time"

// Relay stamps inbound chat messages and broadcasts them on TopicMessages.
type Relay struct {
	pub   Publisher
	clock func() time.Time
}

// RelayOption customizes a Relay.
type RelayOption func(*Relay)

// WithClock overrides the time source used for stamping.
func WithClock(clock func() time.Time) RelayOption {
	return func(r *Relay) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// NewRelay constructs a relay publishing through pub.
func NewRelay(pub Publisher, opts ...RelayOption) *Relay {
	r := &Relay{pub: pub, clock: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Stamp returns a copy of msg with the server timestamp.
func (r *Relay) Stamp(msg ChatMessage) ChatMessage {
	return ChatMessage{
		Sender:    msg.Sender,
		Content:   msg.Content,
		Timestamp: r.clock(),
	}
}

// Relay stamps msg, publishes it and returns the stamped copy.
func (r *Relay) Relay(msg ChatMessage) ChatMessage {
	stamped := r.Stamp(msg)
	if r.pub != nil {
		r.pub.Publish(TopicMessages, stamped)
	}
	return stamped
}
