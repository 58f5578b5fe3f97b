package log

import (
	"time"
)

// Event is one codec event. CBOR encoding uses integer keys.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// CodecID identifies the codec instance (UUID).
	CodecID string `cbor:"2,keyasint"`

	// Direction is DirectionIn for decode and DirectionOut for encode.
	Direction Direction `cbor:"3,keyasint"`

	// Format is the wire format involved.
	Format Format `cbor:"4,keyasint"`

	// Category classifies the event.
	Category Category `cbor:"5,keyasint"`

	// Exactly one of these is set.
	Codec *CodecEvent     `cbor:"10,keyasint,omitempty"`
	Error *ErrorEventData `cbor:"11,keyasint,omitempty"`
}

// Direction indicates whether data entered or left the model.
type Direction uint8

const (
	// DirectionIn is a decode (wire to model).
	DirectionIn Direction = 0
	// DirectionOut is an encode (model to wire).
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Format is the wire format of an event.
type Format uint8

const (
	// FormatText is the nested-object textual format.
	FormatText Format = 0
	// FormatBinary is the CBOR-encoded native payload.
	FormatBinary Format = 1
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "TEXT"
	case FormatBinary:
		return "BINARY"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryCodec is a completed encode or decode.
	CategoryCodec Category = 0
	// CategoryError is a failed encode or decode.
	CategoryError Category = 1
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryCodec:
		return "CODEC"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// CodecEvent describes a completed encode or decode.
type CodecEvent struct {
	// Size is the wire size in bytes.
	Size int `cbor:"1,keyasint"`

	// URI of the root representation, if any.
	URI string `cbor:"2,keyasint,omitempty"`

	// Attributes is the attribute count of the root representation.
	Attributes int `cbor:"3,keyasint"`

	// Children is the child count of the root representation.
	Children int `cbor:"4,keyasint"`

	// Duration of the operation. Stored as nanoseconds.
	Duration time.Duration `cbor:"5,keyasint"`

	// Data is the wire data, possibly truncated.
	Data []byte `cbor:"6,keyasint,omitempty"`

	// Truncated indicates Data was cut to the capture limit.
	Truncated bool `cbor:"7,keyasint,omitempty"`
}

// ErrorEventData describes a failed encode or decode.
type ErrorEventData struct {
	// Message is the error text.
	Message string `cbor:"1,keyasint"`

	// Size is the size of the offending input (decode only).
	Size int `cbor:"2,keyasint,omitempty"`

	// Context describes the operation.
	Context string `cbor:"3,keyasint,omitempty"`
}

// MaxCaptureSize is the number of wire bytes kept in a CodecEvent.
const MaxCaptureSize = 4096

// Capture returns data cut to MaxCaptureSize and whether it was cut.
func Capture(data []byte) ([]byte, bool) {
	if len(data) <= MaxCaptureSize {
		return append([]byte{}, data...), false
	}
	return append([]byte{}, data[:MaxCaptureSize]...), true
}
