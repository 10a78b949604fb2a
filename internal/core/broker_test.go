package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBroker_PublishReachesAllSubscribers(t *testing.T) {
	req := require.New(t)
	broker := NewBroker()
	relay := NewRelay(broker)

	sessions := []*Session{NewSession("a", 4), NewSession("b", 4), NewSession("c", 4)}
	for _, s := range sessions {
		req.NoError(broker.Subscribe(TopicMessages, s))
	}

	stamped := relay.Relay(ChatMessage{Sender: "bob", Content: "hello"})

	for _, s := range sessions {
		d := mustDelivery(t, s.Outbox, TopicMessages)
		req.Equal(stamped, d.Payload)
	}
}

func TestBroker_FullOutboxDropsOnlyForThatSubscriber(t *testing.T) {
	req := require.New(t)
	broker := NewBroker()

	slow := NewSession("slow", 1)
	fast := NewSession("fast", 4)
	req.NoError(broker.Subscribe(TopicMessages, slow))
	req.NoError(broker.Subscribe(TopicMessages, fast))

	req.Equal(2, broker.Publish(TopicMessages, "first"))
	req.Equal(1, broker.Publish(TopicMessages, "second"))

	req.Len(slow.Outbox, 1)
	req.Len(fast.Outbox, 2)
}

func TestBroker_UnknownTopic(t *testing.T) {
	req := require.New(t)
	broker := NewBroker()
	s := NewSession("a", 1)

	req.ErrorIs(broker.Subscribe("/topic/rooms/42", s), ErrUnknownTopic)
	req.ErrorIs(broker.Unsubscribe("/topic/rooms/42", s), ErrUnknownTopic)
	req.Zero(broker.Publish("/topic/rooms/42", "x"))
}

func TestBroker_Unsubscribe(t *testing.T) {
	req := require.New(t)
	broker := NewBroker()
	s := NewSession("a", 4)

	req.NoError(broker.Subscribe(TopicMessages, s))
	req.NoError(broker.Subscribe(TopicMessages, s))
	req.Equal(1, broker.Subscribers(TopicMessages))

	req.NoError(broker.Unsubscribe(TopicMessages, s))
	req.ErrorIs(broker.Unsubscribe(TopicMessages, s), ErrNotSubscribed)
	req.Zero(broker.Publish(TopicMessages, "x"))

	req.NoError(broker.Subscribe(TopicMessages, s))
	req.NoError(broker.Subscribe(TopicUserCount, s))
	broker.UnsubscribeAll(s)
	req.Zero(broker.Subscribers(TopicMessages))
	req.Zero(broker.Subscribers(TopicUserCount))
}
