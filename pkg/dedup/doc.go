// Package dedup tracks recently seen evaluation contexts by their
// fully-qualified keys.
//
// The event pipeline emits full context data only the first time a
// subject appears within a flush interval; afterwards events reference
// the subject by key alone. Tracker answers "have I seen this context
// recently?" with a bounded-memory LRU policy: when the tracker is full,
// the least recently seen key is forgotten and the next occurrence of
// that subject is treated as new again.
//
//	tracker := dedup.NewTracker(1000)
//	if !tracker.Seen(ctx) {
//		// first occurrence, emit full context data
//	}
//
// Unlike the context builders, a Tracker is safe for concurrent use: the
// event pipeline records contexts from multiple goroutines.
package dedup
