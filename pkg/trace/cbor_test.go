package trace

import (
	"bytes"
	"io"
	"testing"
	"time"
)

func TestEncodeDecodeTokenEvent(t *testing.T) {
	ts := time.Date(2026, 10, 19, 8, 30, 0, 123456789, time.UTC)
	event := Event{
		Timestamp: ts,
		SessionID: "5f0c6c1e-0000-4000-8000-000000000001",
		Source:    "/proc/cmdline",
		Category:  CategoryToken,
		Token: &TokenEvent{
			Kind:   TokenValue,
			Offset: 12,
			Data:   []byte("ttyS0,115200"),
		},
	}

	data, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if !decoded.Timestamp.Equal(ts) {
		t.Errorf("Timestamp: got %v, want %v", decoded.Timestamp, ts)
	}
	if decoded.SessionID != event.SessionID {
		t.Errorf("SessionID: got %q, want %q", decoded.SessionID, event.SessionID)
	}
	if decoded.Source != event.Source {
		t.Errorf("Source: got %q, want %q", decoded.Source, event.Source)
	}
	if decoded.Token == nil {
		t.Fatal("Token is nil")
	}
	if decoded.Token.Kind != TokenValue || decoded.Token.Offset != 12 {
		t.Errorf("Token: got %+v", decoded.Token)
	}
	if !bytes.Equal(decoded.Token.Data, event.Token.Data) {
		t.Errorf("Token.Data: got %q, want %q", decoded.Token.Data, event.Token.Data)
	}
	if decoded.State != nil || decoded.Param != nil || decoded.Dropped != nil {
		t.Error("unexpected payloads set after decode")
	}
}

func TestEncodeDecodeParamEvent(t *testing.T) {
	event := Event{
		Timestamp: time.Now(),
		SessionID: "s",
		Category:  CategoryParam,
		Param: &ParamEvent{
			Index:    3,
			Name:     []byte("init"),
			Value:    []byte("/sbin/init"),
			HasValue: true,
		},
	}

	data, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if decoded.Param == nil {
		t.Fatal("Param is nil")
	}
	if decoded.Param.Index != 3 || !decoded.Param.HasValue {
		t.Errorf("Param: got %+v", decoded.Param)
	}
	if string(decoded.Param.Name) != "init" || string(decoded.Param.Value) != "/sbin/init" {
		t.Errorf("Param name/value: got %q=%q", decoded.Param.Name, decoded.Param.Value)
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	event := Event{
		Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		SessionID: "s",
		Category:  CategoryState,
		State:     &StateEvent{From: "name", To: "value", Offset: 5},
	}

	a, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	b, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("encoding the same event twice produced different bytes")
	}
}

func TestDecodeEventRejectsGarbage(t *testing.T) {
	if _, err := DecodeEvent([]byte{0xff, 0x00, 0x13}); err == nil {
		t.Error("expected error decoding garbage")
	}
}

func TestDecodeEventRejectsTrailingData(t *testing.T) {
	data, err := EncodeEvent(Event{Timestamp: time.Now(), SessionID: "s", Category: CategoryState})
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	if _, err := DecodeEvent(append(data, data...)); err == nil {
		t.Error("expected error decoding two events as one")
	}
}

func TestEncoderDecoderStream(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)

	for i := 0; i < 3; i++ {
		err := enc.Encode(Event{
			Timestamp: time.Now(),
			SessionID: "stream",
			Category:  CategoryDropped,
			Dropped:   &DroppedEvent{Reason: DropEmptyName, Offset: i},
		})
		if err != nil {
			t.Fatalf("Encode %d failed: %v", i, err)
		}
	}

	dec := NewDecoder(&buf)
	for i := 0; i < 3; i++ {
		var event Event
		if err := dec.Decode(&event); err != nil {
			t.Fatalf("Decode %d failed: %v", i, err)
		}
		if event.Dropped == nil || event.Dropped.Offset != i {
			t.Errorf("event %d: got %+v", i, event.Dropped)
		}
	}

	var extra Event
	if err := dec.Decode(&extra); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}
