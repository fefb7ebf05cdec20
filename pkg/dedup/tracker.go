package dedup

import (
	"container/list"
	"sync"

	"github.com/dmitrymomot/flagkit/pkg/evalctx"
)

// Tracker remembers the fully-qualified keys of recently seen contexts,
// evicting the least recently seen key once capacity is reached. All
// methods are safe for concurrent use.
type Tracker struct {
	capacity int
	entries  map[string]*list.Element
	recency  *list.List // front = most recently seen; element value is the key string
	mu       sync.Mutex
}

// NewTracker creates a Tracker that remembers up to capacity context
// keys. The capacity must be positive, otherwise it panics.
func NewTracker(capacity int) *Tracker {
	if capacity <= 0 {
		panic("dedup tracker capacity must be positive")
	}
	return &Tracker{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		recency:  list.New(),
	}
}

// Seen records the context and reports whether it was already known.
// Invalid and uninitialized contexts are never recorded and always report
// false, since they have no canonical key.
func (t *Tracker) Seen(c evalctx.Context) bool {
	if !c.Valid() {
		return false
	}
	key := c.FullyQualifiedKey()

	t.mu.Lock()
	defer t.mu.Unlock()

	if elem, ok := t.entries[key]; ok {
		t.recency.MoveToFront(elem)
		return true
	}
	t.entries[key] = t.recency.PushFront(key)
	if t.recency.Len() > t.capacity {
		oldest := t.recency.Back()
		t.recency.Remove(oldest)
		delete(t.entries, oldest.Value.(string))
	}
	return false
}

// Forget drops the context's key, so its next occurrence reports as new.
func (t *Tracker) Forget(c evalctx.Context) {
	if !c.Valid() {
		return
	}
	key := c.FullyQualifiedKey()

	t.mu.Lock()
	defer t.mu.Unlock()

	if elem, ok := t.entries[key]; ok {
		t.recency.Remove(elem)
		delete(t.entries, key)
	}
}

// Len returns the number of keys currently tracked.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.recency.Len()
}

// Reset forgets all tracked keys, as at the start of a flush interval.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = make(map[string]*list.Element)
	t.recency.Init()
}
