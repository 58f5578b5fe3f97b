package commands

import (
	"fmt"
	"io"

	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/inspect"
	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/wire"
)

// ViewOptions configures the view command.
type ViewOptions struct {
	Input        Input
	ShowTypes    bool
	MaxListItems int
}

// RunView prints the representation tree.
func RunView(codec *wire.Codec, opts ViewOptions, w io.Writer) error {
	r, _, err := load(codec, opts.Input)
	if err != nil {
		return err
	}
	defer r.Free()

	f := inspect.NewFormatter()
	f.ShowTypes = opts.ShowTypes
	f.MaxListItems = opts.MaxListItems
	f.WriteTree(w, r)
	return nil
}

// RunGet prints the value at path. A path ending at a child prints the
// child's tree.
func RunGet(codec *wire.Codec, in Input, path string, w io.Writer) error {
	p, err := inspect.ParsePath(path)
	if err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}

	r, _, err := load(codec, in)
	if err != nil {
		return err
	}
	defer r.Free()

	target, err := inspect.Resolve(r, p)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", p, err)
	}

	f := inspect.NewFormatter()
	if target.Representation != nil {
		f.WriteTree(w, target.Representation)
		return nil
	}
	if obj, err := target.Value.Object(); err == nil {
		f.WriteTree(w, obj)
		return nil
	}
	fmt.Fprintln(w, f.FormatValue(target.Value))
	return nil
}
