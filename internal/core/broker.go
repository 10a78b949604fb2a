package core

import (
	"fmt"
	"sync"

	"github.com/samber/lo"
)

// Publisher delivers a payload to every subscriber of a topic.
type Publisher interface {
	Publish(topic string, payload any) int
}

// Broker keeps topic subscriptions and fans payloads out to them.
type Broker struct {
	mu     sync.RWMutex
	topics map[string]map[*Session]struct{}
}

// NewBroker constructs a broker with the known topics and no subscribers.
func NewBroker() *Broker {
	return &Broker{
		topics: map[string]map[*Session]struct{}{
			TopicMessages:  {},
			TopicUserCount: {},
		},
	}
}

// Subscribe adds s to topic. Subscribing twice is a no-op.
func (b *Broker) Subscribe(topic string, s *Session) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs, ok := b.topics[topic]
	if !ok {
		return fmt.Errorf("subscribe %q: %w", topic, ErrUnknownTopic)
	}
	subs[s] = struct{}{}
	return nil
}

// Unsubscribe removes s from topic.
func (b *Broker) Unsubscribe(topic string, s *Session) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs, ok := b.topics[topic]
	if !ok {
		return fmt.Errorf("unsubscribe %q: %w", topic, ErrUnknownTopic)
	}
	if _, exists := subs[s]; !exists {
		return fmt.Errorf("unsubscribe %q: %w", topic, ErrNotSubscribed)
	}
	delete(subs, s)
	return nil
}

// UnsubscribeAll removes s from every topic.
func (b *Broker) UnsubscribeAll(s *Session) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, subs := range b.topics {
		delete(subs, s)
	}
}

// Subscribers returns the number of sessions subscribed to topic.
func (b *Broker) Subscribers(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics[topic])
}

// Publish sends payload to all subscribers of topic and returns how many
// accepted it. Subscribers with a full outbox miss this delivery.
func (b *Broker) Publish(topic string, payload any) int {
	b.mu.RLock()
	subs := lo.Keys(b.topics[topic])
	b.mu.RUnlock()

	delivered := 0
	for _, s := range subs {
		if s.Deliver(Delivery{Topic: topic, Payload: payload}) {
			delivered++
		}
	}
	return delivered
}
