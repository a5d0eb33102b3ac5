package trace

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// createTestTraceFile writes events to a temporary trace file and returns its path.
func createTestTraceFile(t *testing.T, events []Event) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.ctrace")
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	return path
}

func readAll(t *testing.T, path string, filter Filter) []Event {
	t.Helper()

	reader, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	events, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	return events
}

func TestReaderEmptyFile(t *testing.T) {
	path := createTestTraceFile(t, nil)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	event, err := reader.Next()
	if err != io.EOF {
		t.Errorf("expected io.EOF, got err=%v, event=%+v", err, event)
	}
}

func TestReaderTruncatedFile(t *testing.T) {
	path := createTestTraceFile(t, []Event{
		{Timestamp: time.Now(), SessionID: "a", Category: CategoryState, State: &StateEvent{From: "name", To: "done"}},
		{Timestamp: time.Now(), SessionID: "b", Category: CategoryState, State: &StateEvent{From: "name", To: "done"}},
	})
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data[:len(data)-3], 0o644); err != nil {
		t.Fatal(err)
	}

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	var sessions []string
	var readErr error
	for event, err := range reader.All() {
		if err != nil {
			readErr = err
			break
		}
		sessions = append(sessions, event.SessionID)
	}
	if len(sessions) != 1 || sessions[0] != "a" {
		t.Errorf("sessions: got %v, want [a]", sessions)
	}
	if !errors.Is(readErr, io.ErrUnexpectedEOF) {
		t.Errorf("expected io.ErrUnexpectedEOF, got %v", readErr)
	}
}

func TestReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "nope.ctrace")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReaderFilterBySession(t *testing.T) {
	path := createTestTraceFile(t, []Event{
		{Timestamp: time.Now(), SessionID: "A", Category: CategoryState},
		{Timestamp: time.Now(), SessionID: "B", Category: CategoryToken},
		{Timestamp: time.Now(), SessionID: "A", Category: CategoryParam},
	})

	events := readAll(t, path, Filter{SessionID: "A"})
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	for _, e := range events {
		if e.SessionID != "A" {
			t.Errorf("unexpected session %q", e.SessionID)
		}
	}
}

func TestReaderFilterByCategory(t *testing.T) {
	path := createTestTraceFile(t, []Event{
		{Timestamp: time.Now(), SessionID: "A", Category: CategoryState},
		{Timestamp: time.Now(), SessionID: "A", Category: CategoryToken},
		{Timestamp: time.Now(), SessionID: "A", Category: CategoryToken},
		{Timestamp: time.Now(), SessionID: "A", Category: CategoryParam},
	})

	cat := CategoryToken
	events := readAll(t, path, Filter{Category: &cat})
	if len(events) != 2 {
		t.Errorf("got %d events, want 2", len(events))
	}
}

func TestReaderFilterBySource(t *testing.T) {
	path := createTestTraceFile(t, []Event{
		{Timestamp: time.Now(), SessionID: "A", Source: "/proc/cmdline"},
		{Timestamp: time.Now(), SessionID: "B", Source: "stdin"},
	})

	events := readAll(t, path, Filter{Source: "stdin"})
	if len(events) != 1 || events[0].SessionID != "B" {
		t.Errorf("unexpected events: %+v", events)
	}
}

func TestReaderFilterByTimeRange(t *testing.T) {
	base := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	path := createTestTraceFile(t, []Event{
		{Timestamp: base.Add(-time.Minute), SessionID: "before"},
		{Timestamp: base, SessionID: "start"},
		{Timestamp: base.Add(30 * time.Second), SessionID: "inside"},
		{Timestamp: base.Add(time.Minute), SessionID: "end"},
	})

	start := base
	end := base.Add(time.Minute)
	events := readAll(t, path, Filter{TimeStart: &start, TimeEnd: &end})

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].SessionID != "start" || events[1].SessionID != "inside" {
		t.Errorf("unexpected events: %q, %q", events[0].SessionID, events[1].SessionID)
	}
}

func TestFilterMatchesZeroValue(t *testing.T) {
	var f Filter
	if !f.Matches(Event{SessionID: "any", Category: CategoryDropped}) {
		t.Error("zero filter should match everything")
	}
}
