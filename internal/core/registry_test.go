package core

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_PublishesCountsInOrder(t *testing.T) {
	req := require.New(t)
	pub := &recordingPublisher{}
	registry := NewRegistry(pub)

	// Given A and B connect, When A disconnects
	registry.Connect("A")
	registry.Connect("B")
	registry.Disconnect("A")

	// Then the published counts follow membership
	req.Equal([]int{1, 2, 1}, pub.counts())
	req.Equal(1, registry.Count())
	req.Equal([]string{"B"}, registry.Sessions())
}

func TestRegistry_ConnectIsIdempotent(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(nil)

	req.Equal(1, registry.Connect("A"))
	req.Equal(1, registry.Connect("A"))
	req.Equal(1, registry.Count())
}

func TestRegistry_DisconnectUnknownIsNoop(t *testing.T) {
	req := require.New(t)
	pub := &recordingPublisher{}
	registry := NewRegistry(pub)
	registry.Connect("A")

	req.Equal(1, registry.Disconnect("ghost"))
	req.Equal(1, registry.Count())
	req.Equal([]int{1, 1}, pub.counts())
}

func TestRegistry_EmptyStringIsAValidID(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(nil)

	req.Equal(1, registry.Connect(""))
	req.Equal(0, registry.Disconnect(""))
}

func TestRegistry_ConcurrentConnects(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(&recordingPublisher{})

	var wg sync.WaitGroup
	for _, id := range []string{"A", "B"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			registry.Connect(id)
		}(id)
	}
	wg.Wait()

	req.Equal(2, registry.Count())
}

func TestRegistry_CountConvergesAfterRandomSequence(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(nil)
	rng := rand.New(rand.NewSource(42))

	expected := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := fmt.Sprintf("s%d", rng.Intn(50))
		if rng.Intn(2) == 0 {
			registry.Connect(id)
			expected[id] = struct{}{}
		} else {
			registry.Disconnect(id)
			delete(expected, id)
		}
		req.Equal(len(expected), registry.Count())
	}
}

func TestRegistry_ConcurrentConnectDisconnect(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(&recordingPublisher{})

	const workers = 32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s%d", i)
			registry.Connect(id)
			if i%2 == 0 {
				registry.Disconnect(id)
			}
		}(i)
	}
	wg.Wait()

	req.Equal(workers/2, registry.Count())
}
