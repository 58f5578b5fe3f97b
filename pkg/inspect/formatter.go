package inspect

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/model"
)

// Formatter formats representation trees for display.
type Formatter struct {
	// ShowTypes appends the value type to each attribute line.
	ShowTypes bool

	// IndentWidth is the number of spaces per indent level.
	IndentWidth int

	// MaxListItems limits the elements shown per list (0 = unlimited).
	MaxListItems int
}

// NewFormatter creates a new Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		ShowTypes:    false,
		IndentWidth:  2,
		MaxListItems: 0,
	}
}

// Indent returns the content with indentation.
func (f *Formatter) Indent(depth int, content string) string {
	width := f.IndentWidth
	if width == 0 {
		width = 2
	}
	return strings.Repeat(" ", depth*width) + content
}

// FormatValue formats a value on one line. Lists are expanded inline and
// objects are summarized.
func (f *Formatter) FormatValue(v model.Value) string {
	switch v.Type() {
	case model.TypeDouble:
		d, _ := v.Double()
		s := strconv.FormatFloat(d, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEIN") {
			s += ".0"
		}
		return s
	case model.TypeList:
		l, _ := v.List()
		return f.formatList(l)
	case model.TypeObject:
		obj, _ := v.Object()
		if uri := obj.URI(); uri != "" {
			return fmt.Sprintf("{%s, %d attrs}", uri, obj.Len())
		}
		return fmt.Sprintf("{%d attrs}", obj.Len())
	default:
		return v.String()
	}
}

func (f *Formatter) formatList(l *model.List) string {
	var sb strings.Builder
	sb.WriteString("[")
	l.Foreach(func(pos int, v model.Value) bool {
		if f.MaxListItems > 0 && pos == f.MaxListItems {
			fmt.Fprintf(&sb, ", ... (%d more)", l.Len()-pos)
			return false
		}
		if pos > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.FormatValue(v))
		return true
	})
	sb.WriteString("]")
	return sb.String()
}

// FormatHeader formats the metadata line of a representation.
func (f *Formatter) FormatHeader(r *model.Representation) string {
	uri := r.URI()
	if uri == "" {
		uri = "(no uri)"
	}
	var sb strings.Builder
	sb.WriteString(uri)
	if rt := r.ResourceTypes(); rt.Len() > 0 {
		fmt.Fprintf(&sb, " rt=[%s]", strings.Join(rt.Slice(), ", "))
	}
	if ifaces := r.Interfaces(); ifaces != model.InterfaceNone {
		fmt.Fprintf(&sb, " if=%s", ifaces)
	}
	return sb.String()
}

// WriteTree writes r, its attributes in key order, nested objects and
// children as an indented tree.
func (f *Formatter) WriteTree(w io.Writer, r *model.Representation) {
	f.writeTree(w, r, 0)
}

// FormatTree returns the tree of r as a string.
func (f *Formatter) FormatTree(r *model.Representation) string {
	var sb strings.Builder
	f.WriteTree(&sb, r)
	return sb.String()
}

func (f *Formatter) writeTree(w io.Writer, r *model.Representation, depth int) {
	fmt.Fprintln(w, f.Indent(depth, f.FormatHeader(r)))
	if r.Len() == 0 && r.NumChildren() == 0 {
		fmt.Fprintln(w, f.Indent(depth+1, "(no attributes)"))
		return
	}

	r.Foreach(func(key string, v model.Value) bool {
		if v.Type() == model.TypeObject {
			obj, _ := v.Object()
			fmt.Fprintln(w, f.Indent(depth+1, f.attributeLabel(key, v)))
			f.writeTree(w, obj, depth+2)
			return true
		}
		fmt.Fprintln(w, f.Indent(depth+1, f.attributeLabel(key, v)+" "+f.FormatValue(v)))
		return true
	})

	for i, child := range r.Children() {
		fmt.Fprintln(w, f.Indent(depth+1, fmt.Sprintf("#%d:", i)))
		f.writeTree(w, child, depth+2)
	}
}

func (f *Formatter) attributeLabel(key string, v model.Value) string {
	if f.ShowTypes {
		return fmt.Sprintf("%s (%s):", key, typeLabel(v))
	}
	return key + ":"
}

// typeLabel names the type of v, including the element type of lists.
func typeLabel(v model.Value) string {
	if v.Type() != model.TypeList {
		return v.Type().String()
	}
	l, _ := v.List()
	return fmt.Sprintf("%s<%s>", v.Type(), l.Type())
}
