package model

import (
	"fmt"
	"iter"
	"sync/atomic"
)

// Live handle counters. Each handle is counted once at creation and once at
// release.
var (
	liveLists atomic.Int64
	liveReps  atomic.Int64
)

// LiveHandles reports how many lists and representations are currently
// allocated and not yet released.
func LiveHandles() (lists, reps int64) {
	return liveLists.Load(), liveReps.Load()
}

// Representation is one resource's attribute set plus its tree metadata.
type Representation struct {
	uri      string
	types    *ResourceTypes
	ifaces   Interface
	values   map[string]Value
	children []*Representation
	refs     int
	released bool
}

// NewRepresentation creates an empty representation with a reference count
// of one.
func NewRepresentation() *Representation {
	liveReps.Add(1)
	return &Representation{
		values: make(map[string]Value),
		refs:   1,
	}
}

// URI returns the resource URI, or "" if unset.
func (r *Representation) URI() string {
	return r.uri
}

// SetURI replaces the URI. An empty uri clears it.
func (r *Representation) SetURI(uri string) {
	r.checkLive()
	r.uri = uri
}

// ResourceTypes returns a copy of the resource types, or nil if unset.
func (r *Representation) ResourceTypes() *ResourceTypes {
	return r.types.Clone()
}

// SetResourceTypes replaces the resource types wholesale with a copy of rt.
// A nil rt clears them.
func (r *Representation) SetResourceTypes(rt *ResourceTypes) {
	r.checkLive()
	r.types = rt.Clone()
}

// Interfaces returns the interface mask.
func (r *Representation) Interfaces() Interface {
	return r.ifaces
}

// SetInterfaces replaces the interface mask. InterfaceNone unsets it.
func (r *Representation) SetInterfaces(mask Interface) error {
	r.checkLive()
	if !mask.Valid() {
		return fmt.Errorf("%w: interface mask 0x%x outside 0x%x", ErrInvalidParameter, uint8(mask), uint8(InterfaceAll))
	}
	r.ifaces = mask
	return nil
}

// AppendChild appends a reference to child. The same child may be appended
// more than once or under several parents; it is shared, not moved.
func (r *Representation) AppendChild(child *Representation) error {
	r.checkLive()
	if child == nil {
		return fmt.Errorf("%w: nil child", ErrInvalidParameter)
	}
	if child.reaches(r, map[any]struct{}{}) {
		return fmt.Errorf("%w: child would create a reference cycle", ErrInvalidParameter)
	}
	r.children = append(r.children, child.Ref())
	return nil
}

// NumChildren returns the number of children.
func (r *Representation) NumChildren() int {
	return len(r.children)
}

// NthChild returns the child at pos (borrowed).
func (r *Representation) NthChild(pos int) (*Representation, error) {
	if pos < 0 || pos >= len(r.children) {
		return nil, fmt.Errorf("%w: child %d out of range [0,%d)", ErrNoData, pos, len(r.children))
	}
	return r.children[pos], nil
}

// ForeachChild calls fn for each child in order until fn returns false.
func (r *Representation) ForeachChild(fn func(child *Representation) bool) {
	for pos := 0; pos < len(r.children); pos++ {
		if !fn(r.children[pos]) {
			return
		}
	}
}

// Children returns an iterator over the children in order.
func (r *Representation) Children() iter.Seq2[int, *Representation] {
	return func(yield func(int, *Representation) bool) {
		for pos := 0; pos < len(r.children); pos++ {
			if !yield(pos, r.children[pos]) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the whole tree: metadata, attributes and
// children. The copy has a reference count of one and shares nothing with r.
func (r *Representation) Clone() *Representation {
	c := NewRepresentation()
	c.uri = r.uri
	c.types = r.types.Clone()
	c.ifaces = r.ifaces
	for k, v := range r.values {
		c.values[k] = v.Clone()
	}
	if len(r.children) > 0 {
		c.children = make([]*Representation, len(r.children))
		for i, child := range r.children {
			c.children[i] = child.Clone()
		}
	}
	return c
}

// Ref increments the reference count and returns r.
func (r *Representation) Ref() *Representation {
	r.checkLive()
	r.refs++
	return r
}

// RefCount returns the current number of owners.
func (r *Representation) RefCount() int {
	return r.refs
}

// Free drops one reference. The last Free releases the attributes and
// every child.
func (r *Representation) Free() {
	r.checkLive()
	r.refs--
	if r.refs > 0 {
		return
	}
	r.released = true
	values, children := r.values, r.children
	r.values, r.children = nil, nil
	r.uri, r.types = "", nil
	for _, v := range values {
		v.Free()
	}
	for _, child := range children {
		child.Free()
	}
	liveReps.Add(-1)
}

func (r *Representation) checkLive() {
	if r.released {
		panic("model: use of released representation")
	}
}

func (r *Representation) reaches(target any, seen map[any]struct{}) bool {
	if any(r) == target {
		return true
	}
	if _, ok := seen[r]; ok {
		return false
	}
	seen[r] = struct{}{}
	for _, v := range r.values {
		if v.reaches(target, seen) {
			return true
		}
	}
	for _, child := range r.children {
		if child.reaches(target, seen) {
			return true
		}
	}
	return false
}
