package events

import (
	"sync"
)

// InMemoryEventStore is an append-only event log kept in memory, readable per
// stream or across the whole run.
type InMemoryEventStore struct {
	streams   map[string][]Event
	allEvents []Event
	mutex     sync.RWMutex
}

// NewInMemoryEventStore creates an empty event store.
func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{
		streams:   make(map[string][]Event),
		allEvents: make([]Event, 0),
	}
}

// AppendEvent appends an event to a stream, assigning the next version.
func (s *InMemoryEventStore) AppendEvent(streamID string, event Event) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	versioned := BaseEvent{
		EventType:    event.Type(),
		Stream:       streamID,
		EventData:    event.Data(),
		EventTime:    event.Timestamp(),
		EventVersion: len(s.streams[streamID]) + 1,
	}

	s.streams[streamID] = append(s.streams[streamID], versioned)
	s.allEvents = append(s.allEvents, versioned)
	return nil
}

// ReadEvents returns the events of one stream starting at fromVersion.
func (s *InMemoryEventStore) ReadEvents(streamID string, fromVersion int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	stream, exists := s.streams[streamID]
	if !exists {
		return []Event{}, nil
	}
	if fromVersion < 1 {
		fromVersion = 1
	}
	if fromVersion > len(stream) {
		return []Event{}, nil
	}
	return stream[fromVersion-1:], nil
}

// ReadAllEvents returns every event across streams from the given position.
func (s *InMemoryEventStore) ReadAllEvents(fromPosition int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if fromPosition < 0 {
		fromPosition = 0
	}
	if fromPosition >= len(s.allEvents) {
		return []Event{}, nil
	}
	return s.allEvents[fromPosition:], nil
}
