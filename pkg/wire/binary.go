package wire

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/model"
	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/payload"
)

// encMode is the CBOR encoder mode for native payloads.
// Configured for deterministic encoding with integer keys.
var encMode cbor.EncMode

// decMode is the CBOR decoder mode for native payloads.
var decMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		ShortestFloat: cbor.ShortestFloatNone,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}

	// Lenient for forward compatibility: unknown keys are ignored.
	decOpts := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
		MaxNestedLevels:   256,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR decoder mode: %v", err))
	}
}

// Marshal encodes a value to CBOR bytes.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR bytes into a value.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// NewEncoder creates a CBOR encoder that writes to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder creates a CBOR decoder that reads from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return decMode.NewDecoder(r)
}

// EncodePayload encodes a native payload object to CBOR bytes.
func EncodePayload(o *payload.Object) ([]byte, error) {
	if o == nil {
		return nil, fmt.Errorf("%w: nil payload", model.ErrInvalidParameter)
	}
	return Marshal(o)
}

// DecodePayload decodes CBOR bytes into a native payload object.
func DecodePayload(data []byte) (*payload.Object, error) {
	var o payload.Object
	if err := Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return &o, nil
}

// EncodeBinary flattens r into a native payload and encodes it.
func EncodeBinary(r *model.Representation) ([]byte, error) {
	o, err := payload.FromRepresentation(r)
	if err != nil {
		return nil, err
	}
	return EncodePayload(o)
}

// DecodeBinary decodes a native payload and rebuilds the representation
// tree, with a reference count of one.
func DecodeBinary(data []byte) (*model.Representation, error) {
	o, err := DecodePayload(data)
	if err != nil {
		return nil, err
	}
	return payload.ToRepresentation(o)
}
