package log

import (
	"errors"
	"testing"
	"time"
)

type recordingLogger struct {
	events []Event
}

func (r *recordingLogger) Log(event Event) {
	r.events = append(r.events, event)
}

func TestNoopLogger(t *testing.T) {
	var l Logger = NoopLogger{}
	l.Log(Event{Timestamp: time.Now()})
}

func TestMultiLoggerFansOut(t *testing.T) {
	a := &recordingLogger{}
	b := &recordingLogger{}
	multi := NewMultiLogger(a, nil, b)

	multi.Log(Event{CodecID: "codec-1", Direction: DirectionOut, Category: CategoryCodec})

	for i, r := range []*recordingLogger{a, b} {
		if len(r.events) != 1 {
			t.Errorf("logger %d: got %d events, want 1", i, len(r.events))
			continue
		}
		if r.events[0].CodecID != "codec-1" {
			t.Errorf("logger %d: CodecID = %q, want %q", i, r.events[0].CodecID, "codec-1")
		}
	}
}

func TestMultiLoggerEmpty(t *testing.T) {
	NewMultiLogger().Log(Event{})
}

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{DirectionIn.String(), "IN"},
		{DirectionOut.String(), "OUT"},
		{Direction(9).String(), "UNKNOWN"},
		{FormatText.String(), "TEXT"},
		{FormatBinary.String(), "BINARY"},
		{Format(9).String(), "UNKNOWN"},
		{CategoryCodec.String(), "CODEC"},
		{CategoryError.String(), "ERROR"},
		{Category(9).String(), "UNKNOWN"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestCapture(t *testing.T) {
	small := []byte{1, 2, 3}
	got, truncated := Capture(small)
	if truncated || len(got) != 3 {
		t.Errorf("small capture: len %d truncated %v", len(got), truncated)
	}
	small[0] = 9
	if got[0] != 1 {
		t.Error("capture must copy the data")
	}

	big := make([]byte, MaxCaptureSize+10)
	got, truncated = Capture(big)
	if !truncated || len(got) != MaxCaptureSize {
		t.Errorf("big capture: len %d truncated %v", len(got), truncated)
	}
}

func TestEventCBORRoundTrip(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 123456789, time.UTC)
	event := Event{
		Timestamp: ts,
		CodecID:   "codec-7",
		Direction: DirectionIn,
		Format:    FormatBinary,
		Category:  CategoryCodec,
		Codec: &CodecEvent{
			Size:       42,
			URI:        "/a/light",
			Attributes: 3,
			Children:   1,
			Duration:   1500 * time.Microsecond,
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
		t.Errorf("Timestamp = %v, want %v", decoded.Timestamp, ts)
	}
	if decoded.Codec == nil || decoded.Codec.URI != "/a/light" || decoded.Codec.Duration != 1500*time.Microsecond {
		t.Errorf("Codec = %+v", decoded.Codec)
	}
	if decoded.Error != nil {
		t.Error("expected no error payload")
	}
}

func TestDecodeEventCorrupt(t *testing.T) {
	mismatched, err := EncodeEvent(Event{Category: CategoryError, Codec: &CodecEvent{Size: 1}})
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	unknownFormat, err := EncodeEvent(Event{Format: Format(7), Category: CategoryCodec})
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"garbage", []byte{0xff, 0x00}},
		{"duplicate key", []byte{0xa2, 0x02, 0x61, 'a', 0x02, 0x61, 'b'}},
		{"indefinite map", []byte{0xbf, 0x02, 0x61, 'a', 0xff}},
		{"unknown category", []byte{0xa1, 0x05, 0x09}},
		{"unknown format", unknownFormat},
		{"payload disagrees with category", mismatched},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeEvent(tt.data); !errors.Is(err, ErrCorruptEvent) {
				t.Errorf("expected ErrCorruptEvent, got %v", err)
			}
		})
	}
}
