// Package history records shipment inspection events. Appends for the same
// shipment are serialized so interleaved inspections of one box never produce
// a torn sequence; different shipments append concurrently.
package history

import (
	"context"
	"sync"
	"time"
)

// Event is one entry in a shipment's inspection history.
type Event struct {
	ShipmentID string         `json:"shipment_id"`
	Kind       string         `json:"kind"` // inspection_requested, inspection_completed, inspection_failed
	Detail     map[string]any `json:"detail,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}

// Log is the shipment history store. Implementations must serialize appends
// per shipment ID.
type Log interface {
	Append(ctx context.Context, event Event) error
	Events(ctx context.Context, shipmentID string) ([]Event, error)
}

// MemoryLog keeps history in process memory, keyed by shipment ID.
type MemoryLog struct {
	mu     sync.Mutex
	keys   map[string]*sync.Mutex
	events map[string][]Event
}

// NewMemoryLog returns an empty in-memory log.
func NewMemoryLog() *MemoryLog {
	return &MemoryLog{
		keys:   make(map[string]*sync.Mutex),
		events: make(map[string][]Event),
	}
}

func (l *MemoryLog) keyLock(shipmentID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock, ok := l.keys[shipmentID]
	if !ok {
		lock = &sync.Mutex{}
		l.keys[shipmentID] = lock
	}
	return lock
}

// Append records an event. The timestamp is filled in when the caller left
// it zero.
func (l *MemoryLog) Append(_ context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	lock := l.keyLock(event.ShipmentID)
	lock.Lock()
	defer lock.Unlock()

	l.mu.Lock()
	l.events[event.ShipmentID] = append(l.events[event.ShipmentID], event)
	l.mu.Unlock()
	return nil
}

// Events returns the append-ordered history for a shipment.
func (l *MemoryLog) Events(_ context.Context, shipmentID string) ([]Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	events := l.events[shipmentID]
	out := make([]Event, len(events))
	copy(out, events)
	return out, nil
}
