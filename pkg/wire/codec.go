package wire

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/jsonc"

	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/log"
	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/model"
)

// Format selects the wire format of a Codec operation.
type Format = log.Format

// Supported formats.
const (
	FormatText   = log.FormatText
	FormatBinary = log.FormatBinary
)

// ParseFormat parses "text" or "binary".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "json":
		return FormatText, nil
	case "binary", "cbor":
		return FormatBinary, nil
	}
	return 0, fmt.Errorf("%w: unknown format %q", model.ErrInvalidParameter, s)
}

// Codec encodes and decodes representations and reports each operation
// to a log.Logger.
type Codec struct {
	id            string
	pretty        bool
	allowComments bool
	capture       bool
	logger        log.Logger
}

// CodecOption configures a Codec.
type CodecOption func(*Codec)

// WithPretty indents text output.
func WithPretty(pretty bool) CodecOption {
	return func(c *Codec) { c.pretty = pretty }
}

// WithAllowComments accepts comments and trailing commas in text input.
func WithAllowComments(allow bool) CodecOption {
	return func(c *Codec) { c.allowComments = allow }
}

// WithLogger sets the event logger. A nil logger disables logging.
func WithLogger(logger log.Logger) CodecOption {
	return func(c *Codec) {
		if logger == nil {
			logger = log.NoopLogger{}
		}
		c.logger = logger
	}
}

// WithCapture keeps up to log.MaxCaptureSize wire bytes in codec events.
func WithCapture(capture bool) CodecOption {
	return func(c *Codec) { c.capture = capture }
}

// NewCodec creates a Codec with a fresh ID.
func NewCodec(opts ...CodecOption) *Codec {
	c := &Codec{
		id:     uuid.NewString(),
		logger: log.NoopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the codec ID carried by its log events.
func (c *Codec) ID() string {
	return c.id
}

// Encode encodes r in format f.
func (c *Codec) Encode(r *model.Representation, f Format) ([]byte, error) {
	switch f {
	case FormatText:
		return c.EncodeText(r)
	case FormatBinary:
		return c.EncodeBinary(r)
	}
	return nil, fmt.Errorf("%w: unknown format %d", model.ErrInvalidParameter, f)
}

// Decode decodes data in format f.
func (c *Codec) Decode(data []byte, f Format) (*model.Representation, error) {
	switch f {
	case FormatText:
		return c.DecodeText(data)
	case FormatBinary:
		return c.DecodeBinary(data)
	}
	return nil, fmt.Errorf("%w: unknown format %d", model.ErrInvalidParameter, f)
}

// EncodeText encodes r as a text document.
func (c *Codec) EncodeText(r *model.Representation) ([]byte, error) {
	start := time.Now()
	data, err := EncodeText(r, c.pretty)
	c.report(log.DirectionOut, FormatText, r, data, 0, start, err)
	return data, err
}

// DecodeText decodes a text document.
func (c *Codec) DecodeText(data []byte) (*model.Representation, error) {
	start := time.Now()
	input := data
	if c.allowComments {
		input = jsonc.ToJSON(data)
	}
	r, err := DecodeText(input)
	c.report(log.DirectionIn, FormatText, r, data, len(data), start, err)
	return r, err
}

// EncodeBinary encodes r as a CBOR native payload.
func (c *Codec) EncodeBinary(r *model.Representation) ([]byte, error) {
	start := time.Now()
	data, err := EncodeBinary(r)
	c.report(log.DirectionOut, FormatBinary, r, data, 0, start, err)
	return data, err
}

// DecodeBinary decodes a CBOR native payload.
func (c *Codec) DecodeBinary(data []byte) (*model.Representation, error) {
	start := time.Now()
	r, err := DecodeBinary(data)
	c.report(log.DirectionIn, FormatBinary, r, data, len(data), start, err)
	return r, err
}

func (c *Codec) report(dir log.Direction, f Format, r *model.Representation, data []byte, inputSize int, start time.Time, err error) {
	event := log.Event{
		Timestamp: time.Now(),
		CodecID:   c.id,
		Direction: dir,
		Format:    f,
	}

	if err != nil {
		op := "encode"
		if dir == log.DirectionIn {
			op = "decode"
		}
		event.Category = log.CategoryError
		event.Error = &log.ErrorEventData{
			Message: err.Error(),
			Size:    inputSize,
			Context: op + " " + strings.ToLower(f.String()),
		}
		c.logger.Log(event)
		return
	}

	event.Category = log.CategoryCodec
	event.Codec = &log.CodecEvent{
		Size:       len(data),
		URI:        r.URI(),
		Attributes: r.Len(),
		Children:   r.NumChildren(),
		Duration:   time.Since(start),
	}
	if c.capture {
		event.Codec.Data, event.Codec.Truncated = log.Capture(data)
	}
	c.logger.Log(event)
}
