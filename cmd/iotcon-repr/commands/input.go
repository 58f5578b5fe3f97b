// Package commands implements the iotcon-repr CLI commands.
package commands

import (
	"bytes"
	"fmt"
	"os"

	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/model"
	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/wire"
)

// DetectFormat guesses the format of data. Text documents start with an
// object or a comment; a native payload is a CBOR map and never does.
func DetectFormat(data []byte) wire.Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '/') {
		return wire.FormatText
	}
	return wire.FormatBinary
}

// ParseFormatFlag parses a format flag. "auto" or "" selects detection and
// returns ok=false.
func ParseFormatFlag(s string) (f wire.Format, ok bool, err error) {
	if s == "" || s == "auto" {
		return 0, false, nil
	}
	f, err = wire.ParseFormat(s)
	if err != nil {
		return 0, false, fmt.Errorf("invalid format: %s (must be text, binary, or auto)", s)
	}
	return f, true, nil
}

// Input names a representation file and how to read it.
type Input struct {
	Path string

	// Format is used when Explicit is set; otherwise it is detected.
	Format   wire.Format
	Explicit bool
}

// Load reads and decodes the input file and reports the format it was read
// in. The caller frees the result.
func Load(codec *wire.Codec, in Input) (*model.Representation, wire.Format, error) {
	return load(codec, in)
}

func load(codec *wire.Codec, in Input) (*model.Representation, wire.Format, error) {
	data, err := os.ReadFile(in.Path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read input: %w", err)
	}
	f := in.Format
	if !in.Explicit {
		f = DetectFormat(data)
	}
	r, err := codec.Decode(data, f)
	if err != nil {
		return nil, f, fmt.Errorf("failed to decode %s input: %w", f, err)
	}
	return r, f, nil
}
