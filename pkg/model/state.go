package model

import (
	"fmt"
	"maps"
	"slices"
)

// Get returns the value stored under key. Composite values are borrowed.
func (r *Representation) Get(key string) (Value, error) {
	v, ok := r.values[key]
	if !ok {
		return Value{}, fmt.Errorf("%w: key %q", ErrNoData, key)
	}
	return v, nil
}

// Set stores v under key, releasing any value it replaces. On success the
// representation owns v; on failure the caller still owns it.
func (r *Representation) Set(key string, v Value) error {
	r.checkLive()
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidParameter)
	}
	if !v.typ.valid() {
		return fmt.Errorf("%w: untyped value for key %q", ErrInvalidParameter, key)
	}
	if v.reaches(r, map[any]struct{}{}) {
		return fmt.Errorf("%w: key %q would create a reference cycle", ErrInvalidParameter, key)
	}
	if old, ok := r.values[key]; ok {
		old.Free()
	}
	r.values[key] = v
	return nil
}

// SetInt stores an integer under key.
func (r *Representation) SetInt(key string, i int32) error {
	return r.Set(key, NewInt(i))
}

// SetBool stores a boolean under key.
func (r *Representation) SetBool(key string, b bool) error {
	return r.Set(key, NewBool(b))
}

// SetDouble stores a double under key.
func (r *Representation) SetDouble(key string, d float64) error {
	return r.Set(key, NewDouble(d))
}

// SetStr stores a string under key.
func (r *Representation) SetStr(key, s string) error {
	v, err := NewStr(s)
	if err != nil {
		return err
	}
	return r.Set(key, v)
}

// SetBytes stores a byte string under key.
func (r *Representation) SetBytes(key string, b []byte) error {
	return r.Set(key, NewBytes(b))
}

// SetNull stores null under key.
func (r *Representation) SetNull(key string) error {
	return r.Set(key, NewNull())
}

// SetList stores a reference to l under key, incrementing its count.
func (r *Representation) SetList(key string, l *List) error {
	v, err := NewListValue(l)
	if err != nil {
		return err
	}
	if err := r.Set(key, v); err != nil {
		v.Free()
		return err
	}
	return nil
}

// SetObject stores a reference to obj under key, incrementing its count.
func (r *Representation) SetObject(key string, obj *Representation) error {
	v, err := NewObjectValue(obj)
	if err != nil {
		return err
	}
	if err := r.Set(key, v); err != nil {
		v.Free()
		return err
	}
	return nil
}

// Delete removes and releases the value under key. The stored value must
// have the expected type.
func (r *Representation) Delete(key string, expected Type) error {
	r.checkLive()
	v, ok := r.values[key]
	if !ok {
		return fmt.Errorf("%w: key %q", ErrNoData, key)
	}
	if v.typ != expected {
		return fmt.Errorf("%w: key %q holds %s, not %s", ErrInvalidType, key, v.typ, expected)
	}
	delete(r.values, key)
	v.Free()
	return nil
}

// TypeOf returns the type of the value under key.
func (r *Representation) TypeOf(key string) (Type, error) {
	v, err := r.Get(key)
	if err != nil {
		return TypeNone, err
	}
	return v.typ, nil
}

// Keys returns the attribute keys in sorted order.
func (r *Representation) Keys() []string {
	return slices.Sorted(maps.Keys(r.values))
}

// Len returns the number of attributes.
func (r *Representation) Len() int {
	return len(r.values)
}

// Foreach calls fn for each attribute in key order until fn returns false.
func (r *Representation) Foreach(fn func(key string, v Value) bool) {
	for _, key := range r.Keys() {
		v, ok := r.values[key]
		if !ok {
			continue
		}
		if !fn(key, v) {
			return
		}
	}
}

// Int returns the integer under key.
func (r *Representation) Int(key string) (int32, error) {
	v, err := r.Get(key)
	if err != nil {
		return 0, err
	}
	return v.Int()
}

// Bool returns the boolean under key.
func (r *Representation) Bool(key string) (bool, error) {
	v, err := r.Get(key)
	if err != nil {
		return false, err
	}
	return v.Bool()
}

// Double returns the double under key.
func (r *Representation) Double(key string) (float64, error) {
	v, err := r.Get(key)
	if err != nil {
		return 0, err
	}
	return v.Double()
}

// Str returns the string under key.
func (r *Representation) Str(key string) (string, error) {
	v, err := r.Get(key)
	if err != nil {
		return "", err
	}
	return v.Str()
}

// Bytes returns a copy of the byte string under key.
func (r *Representation) Bytes(key string) ([]byte, error) {
	v, err := r.Get(key)
	if err != nil {
		return nil, err
	}
	return v.Bytes()
}

// List returns the list under key (borrowed).
func (r *Representation) List(key string) (*List, error) {
	v, err := r.Get(key)
	if err != nil {
		return nil, err
	}
	return v.List()
}

// Object returns the nested representation under key (borrowed).
func (r *Representation) Object(key string) (*Representation, error) {
	v, err := r.Get(key)
	if err != nil {
		return nil, err
	}
	return v.Object()
}

// IsNull returns true if key holds null.
func (r *Representation) IsNull(key string) bool {
	v, ok := r.values[key]
	return ok && v.IsNull()
}
