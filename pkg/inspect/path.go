// Package inspect renders representation trees and resolves path
// expressions inside them.
//
// A path is a '/'-separated list of segments, applied left to right:
//   - "name" selects an attribute of the current representation
//   - "3" selects a list element when the current value is a list
//   - "#2" selects the third child of the current representation
//
// For example "#0/owner/id" or "grid/1/0".
package inspect

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/model"
)

// Path errors.
var (
	ErrEmptyPath     = errors.New("empty path")
	ErrInvalidPath   = errors.New("invalid path format")
	ErrInvalidNumber = errors.New("invalid numeric value in path")
)

// SegmentKind identifies how a segment selects.
type SegmentKind uint8

const (
	// SegmentKey selects an attribute, or a list index when the segment is
	// numeric and the current value is a list.
	SegmentKey SegmentKind = iota

	// SegmentChild selects a child by position.
	SegmentChild
)

// Segment is one step of a path.
type Segment struct {
	Kind  SegmentKind
	Key   string
	Index int
}

// Path is a parsed path expression.
type Path struct {
	Segments []Segment

	// Raw stores the original input string.
	Raw string
}

// ParsePath parses a path expression. An empty path, an empty segment or a
// malformed child index fails.
func ParsePath(input string) (*Path, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyPath
	}
	if strings.HasPrefix(input, "/") || strings.HasSuffix(input, "/") || strings.Contains(input, "//") {
		return nil, ErrInvalidPath
	}

	p := &Path{Raw: input}
	for _, part := range strings.Split(input, "/") {
		if strings.HasPrefix(part, "#") {
			idx, err := parseIndex(part[1:])
			if err != nil {
				return nil, fmt.Errorf("child: %w", err)
			}
			p.Segments = append(p.Segments, Segment{Kind: SegmentChild, Index: idx})
			continue
		}
		seg := Segment{Kind: SegmentKey, Key: part, Index: -1}
		if idx, err := parseIndex(part); err == nil {
			seg.Index = idx
		}
		p.Segments = append(p.Segments, seg)
	}
	return p, nil
}

// String returns the path in its canonical form.
func (p *Path) String() string {
	parts := make([]string, 0, len(p.Segments))
	for _, seg := range p.Segments {
		if seg.Kind == SegmentChild {
			parts = append(parts, "#"+strconv.Itoa(seg.Index))
		} else {
			parts = append(parts, seg.Key)
		}
	}
	return strings.Join(parts, "/")
}

// Target is the result of resolving a path. Exactly one of Value and
// Representation is meaningful; a path ending at a child yields a
// Representation. Both are borrowed from the tree.
type Target struct {
	Value          model.Value
	Representation *model.Representation
}

// Resolve walks p from r.
func Resolve(r *model.Representation, p *Path) (Target, error) {
	if r == nil || p == nil {
		return Target{}, fmt.Errorf("%w: nil argument", model.ErrInvalidParameter)
	}
	cur := Target{Representation: r}
	for i, seg := range p.Segments {
		next, err := step(cur, seg)
		if err != nil {
			return Target{}, fmt.Errorf("segment %d (%s): %w", i, segmentString(seg), err)
		}
		cur = next
	}
	return cur, nil
}

func step(cur Target, seg Segment) (Target, error) {
	if cur.Representation == nil {
		if cur.Value.Type() == model.TypeObject {
			obj, _ := cur.Value.Object()
			return step(Target{Representation: obj}, seg)
		}
		if cur.Value.Type() != model.TypeList || seg.Kind != SegmentKey || seg.Index < 0 {
			return Target{}, fmt.Errorf("%w: cannot descend into %s", model.ErrInvalidType, cur.Value.Type())
		}
		l, _ := cur.Value.List()
		v, err := l.Get(seg.Index)
		if err != nil {
			return Target{}, err
		}
		return Target{Value: v}, nil
	}

	r := cur.Representation
	if seg.Kind == SegmentChild {
		child, err := r.NthChild(seg.Index)
		if err != nil {
			return Target{}, err
		}
		return Target{Representation: child}, nil
	}
	v, err := r.Get(seg.Key)
	if err != nil {
		return Target{}, err
	}
	return Target{Value: v}, nil
}

func segmentString(seg Segment) string {
	if seg.Kind == SegmentChild {
		return "#" + strconv.Itoa(seg.Index)
	}
	return seg.Key
}

// parseIndex parses a non-negative decimal or hex index.
func parseIndex(s string) (int, error) {
	var v uint64
	var err error

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err = strconv.ParseUint(s[2:], 16, 31)
	} else {
		v, err = strconv.ParseUint(s, 10, 31)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidNumber, s)
	}
	return int(v), nil
}
