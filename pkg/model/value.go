package model

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Value is one tagged unit of attribute data.
//
// Scalars are held by value. List and Object values hold a counted
// reference to a shared handle; Free releases it. The tag never changes
// after construction. The zero Value carries no tag and is rejected by every
// container.
type Value struct {
	typ  Type
	i    int32
	b    bool
	d    float64
	s    string
	bs   []byte
	list *List
	rep  *Representation
}

// NewInt creates an integer value.
func NewInt(i int32) Value {
	return Value{typ: TypeInt, i: i}
}

// NewBool creates a boolean value.
func NewBool(b bool) Value {
	return Value{typ: TypeBool, b: b}
}

// NewDouble creates a double value.
func NewDouble(d float64) Value {
	return Value{typ: TypeDouble, d: d}
}

// NewStr creates a string value. The string must be valid UTF-8.
func NewStr(s string) (Value, error) {
	if !utf8.ValidString(s) {
		return Value{}, fmt.Errorf("%w: string is not valid UTF-8", ErrInvalidParameter)
	}
	return Value{typ: TypeStr, s: s}, nil
}

// NewBytes creates a byte string value holding a copy of b.
func NewBytes(b []byte) Value {
	return Value{typ: TypeBytes, bs: append([]byte{}, b...)}
}

// NewNull creates a null value.
func NewNull() Value {
	return Value{typ: TypeNull}
}

// NewListValue creates a list value referencing l.
// The list's reference count is incremented.
func NewListValue(l *List) (Value, error) {
	if l == nil {
		return Value{}, fmt.Errorf("%w: nil list", ErrInvalidParameter)
	}
	return Value{typ: TypeList, list: l.Ref()}, nil
}

// NewObjectValue creates an object value referencing r.
// The representation's reference count is incremented.
func NewObjectValue(r *Representation) (Value, error) {
	if r == nil {
		return Value{}, fmt.Errorf("%w: nil representation", ErrInvalidParameter)
	}
	return Value{typ: TypeObject, rep: r.Ref()}, nil
}

// Type returns the value's tag.
func (v Value) Type() Type {
	return v.typ
}

func (v Value) mismatch(want Type) error {
	return fmt.Errorf("%w: value is %s, not %s", ErrInvalidType, v.typ, want)
}

// Int returns the integer payload.
func (v Value) Int() (int32, error) {
	if v.typ != TypeInt {
		return 0, v.mismatch(TypeInt)
	}
	return v.i, nil
}

// Bool returns the boolean payload.
func (v Value) Bool() (bool, error) {
	if v.typ != TypeBool {
		return false, v.mismatch(TypeBool)
	}
	return v.b, nil
}

// Double returns the double payload.
func (v Value) Double() (float64, error) {
	if v.typ != TypeDouble {
		return 0, v.mismatch(TypeDouble)
	}
	return v.d, nil
}

// Str returns the string payload.
func (v Value) Str() (string, error) {
	if v.typ != TypeStr {
		return "", v.mismatch(TypeStr)
	}
	return v.s, nil
}

// Bytes returns a copy of the byte string payload.
func (v Value) Bytes() ([]byte, error) {
	if v.typ != TypeBytes {
		return nil, v.mismatch(TypeBytes)
	}
	return append([]byte{}, v.bs...), nil
}

// List returns the referenced list. The reference is borrowed: the caller
// must call Ref before keeping it beyond the value's lifetime.
func (v Value) List() (*List, error) {
	if v.typ != TypeList {
		return nil, v.mismatch(TypeList)
	}
	return v.list, nil
}

// Object returns the referenced representation. The reference is borrowed.
func (v Value) Object() (*Representation, error) {
	if v.typ != TypeObject {
		return nil, v.mismatch(TypeObject)
	}
	return v.rep, nil
}

// IsNull returns true for the null value.
func (v Value) IsNull() bool {
	return v.typ == TypeNull
}

// Clone returns a deep copy. Composite payloads are cloned recursively, so
// the copy never shares a handle with v.
func (v Value) Clone() Value {
	switch v.typ {
	case TypeBytes:
		return NewBytes(v.bs)
	case TypeList:
		return Value{typ: TypeList, list: v.list.Clone()}
	case TypeObject:
		return Value{typ: TypeObject, rep: v.rep.Clone()}
	default:
		return v
	}
}

// Free releases the reference held by a composite value.
// It is a no-op for scalars.
func (v Value) Free() {
	switch v.typ {
	case TypeList:
		v.list.Free()
	case TypeObject:
		v.rep.Free()
	}
}

// reaches reports whether the value's composite payload is, or contains,
// target.
func (v Value) reaches(target any, seen map[any]struct{}) bool {
	switch v.typ {
	case TypeList:
		return v.list.reaches(target, seen)
	case TypeObject:
		return v.rep.reaches(target, seen)
	}
	return false
}

// String returns a short human-readable form of the value.
func (v Value) String() string {
	switch v.typ {
	case TypeInt:
		return strconv.FormatInt(int64(v.i), 10)
	case TypeBool:
		return strconv.FormatBool(v.b)
	case TypeDouble:
		return strconv.FormatFloat(v.d, 'g', -1, 64)
	case TypeStr:
		return strconv.Quote(v.s)
	case TypeBytes:
		return fmt.Sprintf("0x%x", v.bs)
	case TypeNull:
		return "null"
	case TypeList:
		return fmt.Sprintf("list<%s>[%d]", v.list.Type(), v.list.Len())
	case TypeObject:
		return fmt.Sprintf("object{%d}", v.rep.Len())
	default:
		return "<invalid>"
	}
}
