package core

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

const defaultQueueSize = 256

// Hub serializes session events coming from the transport and drives the
// registry, relay and broker.
type Hub struct {
	events   chan Event
	done     chan struct{}
	stopOnce sync.Once

	broker   *Broker
	registry *Registry
	relay    *Relay
	log      *zerolog.Logger
}

// NewHub wires a broker, registry and relay together. A nil logger disables logging.
func NewHub(logger *zerolog.Logger, opts ...RelayOption) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	broker := NewBroker()
	return &Hub{
		events:   make(chan Event, defaultQueueSize),
		done:     make(chan struct{}),
		broker:   broker,
		registry: NewRegistry(broker),
		relay:    NewRelay(broker, opts...),
		log:      logger,
	}
}

// Run processes events until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer h.stopOnce.Do(func() { close(h.done) })

	for {
		select {
		case <-ctx.Done():
			h.log.Debug().Msg("hub stopped")
			return
		case ev := <-h.events:
			h.handle(ev)
		}
	}
}

// Connect queues registration of a newly opened session.
func (h *Hub) Connect(s *Session) error {
	return h.enqueue(Event{Kind: EventConnect, Session: s})
}

// Disconnect queues removal of a closed session.
func (h *Hub) Disconnect(s *Session) error {
	return h.enqueue(Event{Kind: EventDisconnect, Session: s})
}

// Subscribe queues a topic subscription for s.
func (h *Hub) Subscribe(s *Session, topic string) error {
	return h.enqueue(Event{Kind: EventSubscribe, Session: s, Topic: topic})
}

// Unsubscribe queues removal of a topic subscription for s.
func (h *Hub) Unsubscribe(s *Session, topic string) error {
	return h.enqueue(Event{Kind: EventUnsubscribe, Session: s, Topic: topic})
}

// Send queues an inbound chat message from s.
func (h *Hub) Send(s *Session, msg ChatMessage) error {
	return h.enqueue(Event{Kind: EventMessage, Session: s, Message: msg})
}

// Count returns the number of open sessions.
func (h *Hub) Count() int {
	return h.registry.Count()
}

// Sessions returns the ids of open sessions.
func (h *Hub) Sessions() []string {
	return h.registry.Sessions()
}

func (h *Hub) enqueue(ev Event) error {
	select {
	case <-h.done:
		return ErrHubStopped
	default:
	}

	select {
	case h.events <- ev:
		return nil
	case <-h.done:
		return ErrHubStopped
	}
}

func (h *Hub) handle(ev Event) {
	if ev.Session == nil {
		h.log.Warn().Stringer("kind", ev.Kind).Msg("event without session")
		return
	}

	switch ev.Kind {
	case EventConnect:
		h.connect(ev.Session)
	case EventDisconnect:
		h.disconnect(ev.Session)
	case EventSubscribe:
		if err := h.broker.Subscribe(ev.Topic, ev.Session); err != nil {
			h.reject(ev.Session, err)
		}
	case EventUnsubscribe:
		if err := h.broker.Unsubscribe(ev.Topic, ev.Session); err != nil {
			h.reject(ev.Session, err)
		}
	case EventMessage:
		stamped := h.relay.Relay(ev.Message)
		h.log.Info().
			Str("session_id", ev.Session.ID).
			Str("sender", stamped.Sender).
			Str("content", stamped.Content).
			Msg("message relayed")
	default:
		h.log.Warn().Int("kind", int(ev.Kind)).Msg("unknown event kind")
	}
}

func (h *Hub) connect(s *Session) {
	// Subscribe before counting so the new session sees its own count.
	for _, topic := range []string{TopicMessages, TopicUserCount} {
		_ = h.broker.Subscribe(topic, s)
	}
	n := h.registry.Connect(s.ID)
	h.log.Info().Str("session_id", s.ID).Int("count", n).Msg("session connected")
}

func (h *Hub) disconnect(s *Session) {
	h.broker.UnsubscribeAll(s)
	n := h.registry.Disconnect(s.ID)
	h.log.Info().Str("session_id", s.ID).Int("count", n).Msg("session disconnected")
}

func (h *Hub) reject(s *Session, err error) {
	if !s.Deliver(Delivery{Error: toCoreError(err)}) {
		h.log.Debug().Str("session_id", s.ID).Msg("error delivery dropped")
	}
}
