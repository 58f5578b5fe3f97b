package log

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// ErrCorruptEvent is returned when a recorded event cannot be decoded or
// carries values no codec writes.
var ErrCorruptEvent = errors.New("corrupt codec event")

// eventEncMode writes events with integer keys and nanosecond timestamps.
var eventEncMode cbor.EncMode

// eventDecMode reads events back. An event is a map of at most seven
// members holding one nested payload map, so the limits sit at the
// smallest values the library accepts.
var eventDecMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}
	eventEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create event CBOR encoder mode: %v", err))
	}

	// Events are only written by FileLogger, so anything indefinite or
	// duplicated is damage rather than a newer writer.
	decOpts := cbor.DecOptions{
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
		IndefLength:      cbor.IndefLengthForbidden,
		MaxNestedLevels:  4,
		MaxArrayElements: 16,
		MaxMapPairs:      16,
	}
	eventDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create event CBOR decoder mode: %v", err))
	}
}

// EncodeEvent encodes an Event to CBOR bytes.
func EncodeEvent(event Event) ([]byte, error) {
	return eventEncMode.Marshal(event)
}

// DecodeEvent decodes CBOR bytes into an Event. Malformed data and events
// whose category disagrees with their payload fail ErrCorruptEvent.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := eventDecMode.Unmarshal(data, &event); err != nil {
		return Event{}, fmt.Errorf("%w: %w", ErrCorruptEvent, err)
	}
	if err := checkEvent(event); err != nil {
		return Event{}, err
	}
	return event, nil
}

// checkEvent rejects enum values outside the known set and payloads that
// do not match the category.
func checkEvent(event Event) error {
	switch {
	case event.Direction.String() == "UNKNOWN":
		return fmt.Errorf("%w: direction %d", ErrCorruptEvent, event.Direction)
	case event.Format.String() == "UNKNOWN":
		return fmt.Errorf("%w: format %d", ErrCorruptEvent, event.Format)
	case event.Category.String() == "UNKNOWN":
		return fmt.Errorf("%w: category %d", ErrCorruptEvent, event.Category)
	case event.Category == CategoryCodec && event.Error != nil:
		return fmt.Errorf("%w: codec event with error payload", ErrCorruptEvent)
	case event.Category == CategoryError && event.Codec != nil:
		return fmt.Errorf("%w: error event with codec payload", ErrCorruptEvent)
	}
	return nil
}

// NewEncoder creates a CBOR encoder for events that writes to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return eventEncMode.NewEncoder(w)
}

// NewDecoder creates a CBOR decoder for events that reads from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return eventDecMode.NewDecoder(r)
}
