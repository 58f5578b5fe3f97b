package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/wire"
)

// ConvertOptions configures the convert command.
type ConvertOptions struct {
	Input Input
	To    wire.Format

	// Output is the destination file; empty writes to the given writer.
	Output string
}

// RunConvert decodes the input and re-encodes it in the target format.
func RunConvert(codec *wire.Codec, opts ConvertOptions, w io.Writer) error {
	r, _, err := load(codec, opts.Input)
	if err != nil {
		return err
	}
	defer r.Free()

	data, err := codec.Encode(r, opts.To)
	if err != nil {
		return fmt.Errorf("failed to encode %s output: %w", opts.To, err)
	}
	if opts.To == wire.FormatText {
		data = append(data, '\n')
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	_, err = w.Write(data)
	return err
}
