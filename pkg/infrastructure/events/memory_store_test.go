package events

import (
	"testing"
)

func TestInMemoryEventStore_AppendAssignsVersions(t *testing.T) {
	store := NewInMemoryEventStore()

	if err := store.AppendEvent("run-1", NewEvent(RunStartedEvent, "run-1", nil)); err != nil {
		t.Fatalf("Failed to append event: %v", err)
	}
	if err := store.AppendEvent("run-1", NewEvent(RunFinishedEvent, "run-1", nil)); err != nil {
		t.Fatalf("Failed to append event: %v", err)
	}

	stream, err := store.ReadEvents("run-1", 1)
	if err != nil {
		t.Fatalf("Failed to read stream: %v", err)
	}
	if len(stream) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(stream))
	}
	if stream[0].Version() != 1 || stream[1].Version() != 2 {
		t.Errorf("Expected versions 1 and 2, got %d and %d", stream[0].Version(), stream[1].Version())
	}
	if stream[0].Type() != RunStartedEvent {
		t.Errorf("Expected %s first, got %s", RunStartedEvent, stream[0].Type())
	}
}

func TestInMemoryEventStore_ReadEventsFromVersion(t *testing.T) {
	store := NewInMemoryEventStore()
	for i := 0; i < 5; i++ {
		if err := store.AppendEvent("run-1", NewEvent(OrderProposedEvent, "run-1", nil)); err != nil {
			t.Fatalf("Failed to append event: %v", err)
		}
	}

	events, err := store.ReadEvents("run-1", 4)
	if err != nil {
		t.Fatalf("Failed to read stream: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("Expected 2 events from version 4, got %d", len(events))
	}

	events, err = store.ReadEvents("run-1", 10)
	if err != nil {
		t.Fatalf("Failed to read stream: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("Expected no events past the stream end, got %d", len(events))
	}

	events, err = store.ReadEvents("missing", 1)
	if err != nil {
		t.Fatalf("Failed to read missing stream: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("Expected empty result for a missing stream, got %d", len(events))
	}
}

func TestInMemoryEventStore_ReadAllEventsAcrossStreams(t *testing.T) {
	store := NewInMemoryEventStore()
	if err := store.AppendEvent("run-1", NewEvent(RunStartedEvent, "run-1", nil)); err != nil {
		t.Fatalf("Failed to append event: %v", err)
	}
	if err := store.AppendEvent("T1", NewEvent(AnomalySkippedEvent, "T1", nil)); err != nil {
		t.Fatalf("Failed to append event: %v", err)
	}
	if err := store.AppendEvent("run-1", NewEvent(RunFinishedEvent, "run-1", nil)); err != nil {
		t.Fatalf("Failed to append event: %v", err)
	}

	all, err := store.ReadAllEvents(0)
	if err != nil {
		t.Fatalf("Failed to read all events: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 events across streams, got %d", len(all))
	}
	if all[1].Type() != AnomalySkippedEvent {
		t.Errorf("Expected append order preserved, got %s second", all[1].Type())
	}

	tail, err := store.ReadAllEvents(2)
	if err != nil {
		t.Fatalf("Failed to read tail: %v", err)
	}
	if len(tail) != 1 || tail[0].Type() != RunFinishedEvent {
		t.Errorf("Expected only the last event from position 2, got %d", len(tail))
	}
}
