package commands

import (
	"fmt"
	"io"

	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/model"
	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/wire"
)

// Report summarizes a validated representation.
type Report struct {
	Format          wire.Format
	Representations int
	Attributes      int
	Children        int
	MaxDepth        int
	Fingerprint     string
}

// RunValidate decodes the input, checks that it survives a round trip
// through both formats, and prints a summary.
func RunValidate(codec *wire.Codec, in Input, w io.Writer) (*Report, error) {
	r, f, err := load(codec, in)
	if err != nil {
		return nil, err
	}
	defer r.Free()

	for _, target := range []wire.Format{wire.FormatText, wire.FormatBinary} {
		data, err := codec.Encode(r, target)
		if err != nil {
			return nil, fmt.Errorf("not representable as %s: %w", target, err)
		}
		back, err := codec.Decode(data, target)
		if err != nil {
			return nil, fmt.Errorf("%s round trip failed: %w", target, err)
		}
		same := model.Equal(r, back)
		back.Free()
		if !same {
			return nil, fmt.Errorf("%s round trip changed the content", target)
		}
	}

	report := &Report{Format: f, Children: r.NumChildren()}
	count(r, 1, report)
	if report.Fingerprint, err = wire.Fingerprint(r); err != nil {
		return nil, err
	}

	fmt.Fprintf(w, "OK (%s)\n", f)
	fmt.Fprintf(w, "  Representations: %d\n", report.Representations)
	fmt.Fprintf(w, "  Attributes:      %d\n", report.Attributes)
	fmt.Fprintf(w, "  Children:        %d\n", report.Children)
	fmt.Fprintf(w, "  Max depth:       %d\n", report.MaxDepth)
	fmt.Fprintf(w, "  Fingerprint:     %s\n", report.Fingerprint)
	return report, nil
}

// count walks r, its object attributes and children.
func count(r *model.Representation, depth int, report *Report) {
	report.Representations++
	report.Attributes += r.Len()
	report.MaxDepth = max(report.MaxDepth, depth)

	r.Foreach(func(_ string, v model.Value) bool {
		countValue(v, depth, report)
		return true
	})
	for _, child := range r.Children() {
		count(child, depth+1, report)
	}
}

func countValue(v model.Value, depth int, report *Report) {
	switch v.Type() {
	case model.TypeObject:
		obj, _ := v.Object()
		count(obj, depth+1, report)
	case model.TypeList:
		l, _ := v.List()
		l.Foreach(func(_ int, elem model.Value) bool {
			countValue(elem, depth, report)
			return true
		})
	}
}
