package core

import (
	"sync"
	"testing"
	"time"
)

func mustDelivery(t *testing.T, ch <-chan Delivery, topic string) Delivery {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case d := <-ch:
			if d.Topic == topic {
				return d
			}
		case <-deadline:
			t.Fatalf("expected delivery on %q not received", topic)
			return Delivery{}
		}
	}
}

func mustCount(t *testing.T, ch <-chan Delivery, want int) {
	t.Helper()

	d := mustDelivery(t, ch, TopicUserCount)
	if got, ok := d.Payload.(int); !ok || got != want {
		t.Fatalf("expected count %d, got %+v", want, d.Payload)
	}
}

type publication struct {
	topic   string
	payload any
}

type recordingPublisher struct {
	mu    sync.Mutex
	items []publication
}

func (p *recordingPublisher) Publish(topic string, payload any) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = append(p.items, publication{topic: topic, payload: payload})
	return 1
}

func (p *recordingPublisher) counts() []int {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []int
	for _, it := range p.items {
		if it.topic == TopicUserCount {
			out = append(out, it.payload.(int))
		}
	}
	return out
}
