package services

import "sync"

// EventLocker serializes validate-then-write sequences per event id. Two
// concurrent registrations or session writes against the same event must not
// both validate against the same stale snapshot; holding the event's lock for
// the whole sequence closes that window. Locks for distinct events do not
// contend. The schedule and registration services share one instance.
type EventLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewEventLocker() *EventLocker {
	return &EventLocker{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for eventID and returns its unlock function. The
// per-event mutex is created on first use and kept for the process lifetime;
// the map is bounded by the number of distinct events seen.
func (l *EventLocker) Lock(eventID string) func() {
	l.mu.Lock()
	m, ok := l.locks[eventID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[eventID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
