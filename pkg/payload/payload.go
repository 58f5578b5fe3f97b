package payload

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/model"
)

// MaxRank is the maximum number of array axes.
const MaxRank = 3

// Shape is the per-axis length vector of an Array. Unused trailing axes
// are zero.
type Shape [MaxRank]int

// UnmarshalCBOR decodes a shape of at most MaxRank axes. Longer vectors fail
// ErrInvalidParameter rather than losing their extra axes.
func (s *Shape) UnmarshalCBOR(data []byte) error {
	var dims []int
	if err := cbor.Unmarshal(data, &dims); err != nil {
		return err
	}
	if len(dims) > MaxRank {
		return fmt.Errorf("%w: rank %d exceeds %d", model.ErrInvalidParameter, len(dims), MaxRank)
	}
	*s = Shape{}
	copy(s[:], dims)
	return nil
}

// ElementKind selects the flat buffer of an Array.
type ElementKind uint8

const (
	KindUnset ElementKind = iota
	KindInt
	KindBool
	KindDouble
	KindString
	KindByteString
	KindObject
)

// String returns the element kind name.
func (k ElementKind) String() string {
	switch k {
	case KindUnset:
		return "UNSET"
	case KindInt:
		return "INT"
	case KindBool:
		return "BOOL"
	case KindDouble:
		return "DOUBLE"
	case KindString:
		return "STRING"
	case KindByteString:
		return "BYTE_STRING"
	case KindObject:
		return "OBJECT"
	default:
		return "UNKNOWN"
	}
}

// ValueKind tags a property value.
type ValueKind uint8

const (
	ValueNull ValueKind = iota
	ValueInt
	ValueDouble
	ValueBool
	ValueString
	ValueByteString
	ValueObject
	ValueArray
)

// String returns the value kind name.
func (k ValueKind) String() string {
	switch k {
	case ValueNull:
		return "NULL"
	case ValueInt:
		return "INT"
	case ValueDouble:
		return "DOUBLE"
	case ValueBool:
		return "BOOL"
	case ValueString:
		return "STRING"
	case ValueByteString:
		return "BYTE_STRING"
	case ValueObject:
		return "OBJECT"
	case ValueArray:
		return "ARRAY"
	default:
		return "UNKNOWN"
	}
}

// Array is a multi-dimensional array flattened into one buffer.
// Only the buffer selected by Kind is populated.
type Array struct {
	Kind        ElementKind `cbor:"1,keyasint"`
	Dimensions  Shape       `cbor:"2,keyasint"`
	Ints        []int64     `cbor:"3,keyasint,omitempty"`
	Bools       []bool      `cbor:"4,keyasint,omitempty"`
	Doubles     []float64   `cbor:"5,keyasint,omitempty"`
	Strings     []string    `cbor:"6,keyasint,omitempty"`
	ByteStrings [][]byte    `cbor:"7,keyasint,omitempty"`
	Objects     []*Object   `cbor:"8,keyasint,omitempty"`
}

// Value is one property value. Kind selects the populated field.
type Value struct {
	Kind   ValueKind `cbor:"1,keyasint"`
	Int    int64     `cbor:"2,keyasint,omitempty"`
	Double float64   `cbor:"3,keyasint,omitempty"`
	Bool   bool      `cbor:"4,keyasint,omitempty"`
	String string    `cbor:"5,keyasint,omitempty"`
	Bytes  []byte    `cbor:"6,keyasint,omitempty"`
	Object *Object   `cbor:"7,keyasint,omitempty"`
	Array  *Array    `cbor:"8,keyasint,omitempty"`
}

// Property is a named value.
type Property struct {
	Name  string `cbor:"1,keyasint"`
	Value Value  `cbor:"2,keyasint"`
}

// Object is the native form of a representation.
type Object struct {
	URI           string     `cbor:"1,keyasint,omitempty"`
	ResourceTypes []string   `cbor:"2,keyasint,omitempty"`
	Interfaces    []string   `cbor:"3,keyasint,omitempty"`
	Properties    []Property `cbor:"4,keyasint,omitempty"`
	Children      []*Object  `cbor:"5,keyasint,omitempty"`
}
