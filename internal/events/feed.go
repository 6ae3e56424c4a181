package events

import (
	"sync"
	"time"
)

const DefaultCapacity = 256

// Feed buffers notifications until the presentation layer drains them. When
// full, the oldest event is discarded.
type Feed struct {
	mu       sync.Mutex
	events   []Event
	capacity int
	nextID   int
	dropped  int
}

func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Feed{
		events:   make([]Event, 0, capacity),
		capacity: capacity,
		nextID:   1,
	}
}

func (f *Feed) Record(typ Type, at time.Time, md Metadata) Event {
	f.mu.Lock()
	defer f.mu.Unlock()

	ev := Event{
		ID:        f.nextID,
		Type:      typ,
		Timestamp: at,
		Metadata:  md,
	}
	f.nextID++

	if len(f.events) == f.capacity {
		copy(f.events, f.events[1:])
		f.events = f.events[:len(f.events)-1]
		f.dropped++
	}
	f.events = append(f.events, ev)
	return ev
}

// Drain returns the buffered events oldest first and empties the feed.
func (f *Feed) Drain() []Event {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Event, len(f.events))
	copy(out, f.events)
	f.events = f.events[:0]
	return out
}

// Peek returns buffered events of the given types without draining. No
// types means all.
func (f *Feed) Peek(types ...Type) []Event {
	f.mu.Lock()
	defer f.mu.Unlock()

	filter := make(map[Type]bool, len(types))
	for _, t := range types {
		filter[t] = true
	}
	out := make([]Event, 0, len(f.events))
	for _, ev := range f.events {
		if len(types) > 0 && !filter[ev.Type] {
			continue
		}
		out = append(out, ev)
	}
	return out
}

func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

// Dropped counts events discarded because the feed was full.
func (f *Feed) Dropped() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dropped
}
