package core

import (
	"sort"
	"sync"

	"github.com/samber/lo"
)

// Registry is the set of currently open sessions.
// Every change publishes the resulting size to TopicUserCount.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]struct{}
	pub      Publisher
}

// NewRegistry constructs an empty registry publishing counts through pub.
// A nil pub disables publishing.
func NewRegistry(pub Publisher) *Registry {
	return &Registry{
		sessions: make(map[string]struct{}),
		pub:      pub,
	}
}

// Connect adds id and returns the resulting count.
func (r *Registry) Connect(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[id] = struct{}{}
	return r.publishLocked()
}

// Disconnect removes id and returns the resulting count. Unknown ids are ignored.
func (r *Registry) Disconnect(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return r.publishLocked()
}

// Count returns the number of open sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sessions returns the open session ids in sorted order.
func (r *Registry) Sessions() []string {
	r.mu.RLock()
	ids := lo.Keys(r.sessions)
	r.mu.RUnlock()

	sort.Strings(ids)
	return ids
}

// publishLocked runs under the write lock so published counts follow
// membership order.
func (r *Registry) publishLocked() int {
	n := len(r.sessions)
	if r.pub != nil {
		r.pub.Publish(TopicUserCount, n)
	}
	return n
}
