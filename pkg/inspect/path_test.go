package inspect

import (
	"errors"
	"testing"

	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/model"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []Segment
		wantErr error
	}{
		{
			name:  "single attribute",
			input: "brightness",
			want:  []Segment{{Kind: SegmentKey, Key: "brightness", Index: -1}},
		},
		{
			name:  "list index",
			input: "grid/1/0",
			want: []Segment{
				{Kind: SegmentKey, Key: "grid", Index: -1},
				{Kind: SegmentKey, Key: "1", Index: 1},
				{Kind: SegmentKey, Key: "0", Index: 0},
			},
		},
		{
			name:  "child then attribute",
			input: "#0/on",
			want: []Segment{
				{Kind: SegmentChild, Index: 0},
				{Kind: SegmentKey, Key: "on", Index: -1},
			},
		},
		{
			name:  "hex child index",
			input: "#0x10",
			want:  []Segment{{Kind: SegmentChild, Index: 16}},
		},
		{name: "empty path", input: "  ", wantErr: ErrEmptyPath},
		{name: "leading slash", input: "/a", wantErr: ErrInvalidPath},
		{name: "trailing slash", input: "a/", wantErr: ErrInvalidPath},
		{name: "empty segment", input: "a//b", wantErr: ErrInvalidPath},
		{name: "bad child index", input: "#x", wantErr: ErrInvalidNumber},
		{name: "negative child index", input: "#-1", wantErr: ErrInvalidNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePath(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParsePath(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePath(%q) failed: %v", tt.input, err)
			}
			if len(got.Segments) != len(tt.want) {
				t.Fatalf("got %d segments, want %d", len(got.Segments), len(tt.want))
			}
			for i := range tt.want {
				if got.Segments[i] != tt.want[i] {
					t.Errorf("segment %d = %+v, want %+v", i, got.Segments[i], tt.want[i])
				}
			}
		})
	}
}

func TestPathString(t *testing.T) {
	for _, input := range []string{"brightness", "grid/1/0", "#0/on", "owner/id"} {
		p, err := ParsePath(input)
		if err != nil {
			t.Fatalf("ParsePath(%q) failed: %v", input, err)
		}
		if p.String() != input {
			t.Errorf("String() = %q, want %q", p.String(), input)
		}
	}
}

func TestResolve(t *testing.T) {
	r := lightRepresentation(t)
	defer r.Free()

	tests := []struct {
		path string
		want string
	}{
		{"brightness", "60"},
		{"grid", "[[0, 1], [2, 3]]"},
		{"grid/1", "[2, 3]"},
		{"grid/1/0", "2"},
		{"owner/id", `"u1"`},
		{"#0/on", "true"},
	}

	f := NewFormatter()
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			p, err := ParsePath(tt.path)
			if err != nil {
				t.Fatalf("ParsePath failed: %v", err)
			}
			target, err := Resolve(r, p)
			if err != nil {
				t.Fatalf("Resolve(%q) failed: %v", tt.path, err)
			}
			if target.Representation != nil {
				t.Fatalf("Resolve(%q) returned a representation", tt.path)
			}
			if got := f.FormatValue(target.Value); got != tt.want {
				t.Errorf("Resolve(%q) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestResolveChild(t *testing.T) {
	r := lightRepresentation(t)
	defer r.Free()

	p, _ := ParsePath("#0")
	target, err := Resolve(r, p)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if target.Representation == nil || target.Representation.URI() != "/a/light/0" {
		t.Fatalf("expected child /a/light/0, got %+v", target)
	}
}

func TestResolveErrors(t *testing.T) {
	r := lightRepresentation(t)
	defer r.Free()

	tests := []struct {
		path string
		want error
	}{
		{"missing", model.ErrNoData},
		{"#5", model.ErrNoData},
		{"grid/9", model.ErrNoData},
		{"grid/x", model.ErrInvalidType},
		{"brightness/0", model.ErrInvalidType},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			p, err := ParsePath(tt.path)
			if err != nil {
				t.Fatalf("ParsePath failed: %v", err)
			}
			if _, err := Resolve(r, p); !errors.Is(err, tt.want) {
				t.Errorf("Resolve(%q) error = %v, want %v", tt.path, err, tt.want)
			}
		})
	}

	if _, err := Resolve(nil, &Path{}); !errors.Is(err, model.ErrInvalidParameter) {
		t.Errorf("Resolve(nil) error = %v", err)
	}
}
