package model

import (
	"fmt"
	"iter"
)

// End appends when passed as an insert position.
const End = -1

// List is a homogeneous, ordered sequence of values.
//
// A List created with TypeNone (or decoded from an empty array) accepts any
// first element and then locks to its type.
type List struct {
	typ      Type
	values   []Value
	refs     int
	released bool
}

// NewList creates an empty list with a reference count of one.
// Pass TypeNone to let the first insert decide the element type.
func NewList(t Type) (*List, error) {
	if t != TypeNone && !t.valid() {
		return nil, fmt.Errorf("%w: list type %d", ErrInvalidParameter, t)
	}
	liveLists.Add(1)
	return &List{typ: t, refs: 1}, nil
}

// Type returns the element type, or TypeNone if not locked yet.
func (l *List) Type() Type {
	return l.typ
}

// Len returns the number of elements.
func (l *List) Len() int {
	return len(l.values)
}

// Insert stores v at pos, shifting later elements. A negative pos or one at
// or past the end appends. On success the list owns v; on failure the list
// is unchanged and the caller still owns v.
func (l *List) Insert(v Value, pos int) error {
	l.checkLive()
	if !v.typ.valid() {
		return fmt.Errorf("%w: untyped value", ErrInvalidParameter)
	}
	if l.typ != TypeNone && v.typ != l.typ {
		return fmt.Errorf("%w: cannot insert %s into list of %s", ErrInvalidType, v.typ, l.typ)
	}
	if v.reaches(l, map[any]struct{}{}) {
		return fmt.Errorf("%w: insert would create a reference cycle", ErrInvalidParameter)
	}

	if l.typ == TypeNone {
		l.typ = v.typ
	}
	if pos < 0 || pos >= len(l.values) {
		l.values = append(l.values, v)
		return nil
	}
	l.values = append(l.values, Value{})
	copy(l.values[pos+1:], l.values[pos:])
	l.values[pos] = v
	return nil
}

// AddInt inserts an integer at pos.
func (l *List) AddInt(i int32, pos int) error {
	return l.Insert(NewInt(i), pos)
}

// AddBool inserts a boolean at pos.
func (l *List) AddBool(b bool, pos int) error {
	return l.Insert(NewBool(b), pos)
}

// AddDouble inserts a double at pos.
func (l *List) AddDouble(d float64, pos int) error {
	return l.Insert(NewDouble(d), pos)
}

// AddStr inserts a string at pos.
func (l *List) AddStr(s string, pos int) error {
	v, err := NewStr(s)
	if err != nil {
		return err
	}
	return l.Insert(v, pos)
}

// AddBytes inserts a byte string at pos.
func (l *List) AddBytes(b []byte, pos int) error {
	return l.Insert(NewBytes(b), pos)
}

// AddNull inserts a null at pos.
func (l *List) AddNull(pos int) error {
	return l.Insert(NewNull(), pos)
}

// AddList inserts a reference to child at pos.
// The child's reference count is incremented on success.
func (l *List) AddList(child *List, pos int) error {
	v, err := NewListValue(child)
	if err != nil {
		return err
	}
	if err := l.Insert(v, pos); err != nil {
		v.Free()
		return err
	}
	return nil
}

// AddObject inserts a reference to r at pos.
// The representation's reference count is incremented on success.
func (l *List) AddObject(r *Representation, pos int) error {
	v, err := NewObjectValue(r)
	if err != nil {
		return err
	}
	if err := l.Insert(v, pos); err != nil {
		v.Free()
		return err
	}
	return nil
}

// Get returns the element at pos. Composite elements are borrowed.
func (l *List) Get(pos int) (Value, error) {
	if pos < 0 || pos >= len(l.values) {
		return Value{}, fmt.Errorf("%w: position %d out of range [0,%d)", ErrNoData, pos, len(l.values))
	}
	return l.values[pos], nil
}

// IntAt returns the integer at pos.
func (l *List) IntAt(pos int) (int32, error) {
	v, err := l.Get(pos)
	if err != nil {
		return 0, err
	}
	return v.Int()
}

// BoolAt returns the boolean at pos.
func (l *List) BoolAt(pos int) (bool, error) {
	v, err := l.Get(pos)
	if err != nil {
		return false, err
	}
	return v.Bool()
}

// DoubleAt returns the double at pos.
func (l *List) DoubleAt(pos int) (float64, error) {
	v, err := l.Get(pos)
	if err != nil {
		return 0, err
	}
	return v.Double()
}

// StrAt returns the string at pos.
func (l *List) StrAt(pos int) (string, error) {
	v, err := l.Get(pos)
	if err != nil {
		return "", err
	}
	return v.Str()
}

// ListAt returns the nested list at pos (borrowed).
func (l *List) ListAt(pos int) (*List, error) {
	v, err := l.Get(pos)
	if err != nil {
		return nil, err
	}
	return v.List()
}

// ObjectAt returns the nested representation at pos (borrowed).
func (l *List) ObjectAt(pos int) (*Representation, error) {
	v, err := l.Get(pos)
	if err != nil {
		return nil, err
	}
	return v.Object()
}

// Remove deletes the element at pos and releases it.
// The element type stays locked even when the list becomes empty.
func (l *List) Remove(pos int) error {
	l.checkLive()
	if pos < 0 || pos >= len(l.values) {
		return fmt.Errorf("%w: position %d out of range [0,%d)", ErrNoData, pos, len(l.values))
	}
	v := l.values[pos]
	l.values = append(l.values[:pos], l.values[pos+1:]...)
	v.Free()
	return nil
}

// Foreach calls fn for each element in order until fn returns false.
// Traversal is driven by position, so it can be repeated at will.
func (l *List) Foreach(fn func(pos int, v Value) bool) {
	for pos := 0; pos < len(l.values); pos++ {
		if !fn(pos, l.values[pos]) {
			return
		}
	}
}

// All returns an iterator over the elements in order.
func (l *List) All() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		l.Foreach(yield)
	}
}

// Clone returns a deep copy with a reference count of one.
func (l *List) Clone() *List {
	liveLists.Add(1)
	c := &List{typ: l.typ, refs: 1, values: make([]Value, len(l.values))}
	for i, v := range l.values {
		c.values[i] = v.Clone()
	}
	return c
}

// Ref increments the reference count and returns l.
func (l *List) Ref() *List {
	l.checkLive()
	l.refs++
	return l
}

// RefCount returns the current number of owners.
func (l *List) RefCount() int {
	return l.refs
}

// Free drops one reference. The last Free releases every element.
func (l *List) Free() {
	l.checkLive()
	l.refs--
	if l.refs > 0 {
		return
	}
	l.released = true
	values := l.values
	l.values = nil
	for _, v := range values {
		v.Free()
	}
	liveLists.Add(-1)
}

func (l *List) checkLive() {
	if l.released {
		panic("model: use of released list")
	}
}

func (l *List) reaches(target any, seen map[any]struct{}) bool {
	if any(l) == target {
		return true
	}
	if _, ok := seen[l]; ok {
		return false
	}
	seen[l] = struct{}{}
	if !l.typ.IsComposite() {
		return false
	}
	for _, v := range l.values {
		if v.reaches(target, seen) {
			return true
		}
	}
	return false
}
