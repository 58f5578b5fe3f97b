package model

import (
	"fmt"
	"slices"
)

// MaxResourceTypeLength is the longest accepted resource type string.
const MaxResourceTypeLength = 61

// ResourceTypes is a set of resource type strings kept in insertion order.
type ResourceTypes struct {
	types []string
}

// NewResourceTypes creates a set holding types.
func NewResourceTypes(types ...string) (*ResourceTypes, error) {
	rt := &ResourceTypes{}
	for _, t := range types {
		if err := rt.Add(t); err != nil {
			return nil, err
		}
	}
	return rt, nil
}

// Add appends t. Duplicates fail with ErrAlreadyExists.
func (rt *ResourceTypes) Add(t string) error {
	if t == "" || len(t) > MaxResourceTypeLength {
		return fmt.Errorf("%w: resource type %q must be 1..%d bytes", ErrInvalidParameter, t, MaxResourceTypeLength)
	}
	if rt.Contains(t) {
		return fmt.Errorf("%w: resource type %q", ErrAlreadyExists, t)
	}
	rt.types = append(rt.types, t)
	return nil
}

// Remove deletes t.
func (rt *ResourceTypes) Remove(t string) error {
	i := slices.Index(rt.types, t)
	if i < 0 {
		return fmt.Errorf("%w: resource type %q", ErrNoData, t)
	}
	rt.types = slices.Delete(rt.types, i, i+1)
	return nil
}

// Contains returns true if t is in the set.
func (rt *ResourceTypes) Contains(t string) bool {
	return rt != nil && slices.Contains(rt.types, t)
}

// Len returns the number of types.
func (rt *ResourceTypes) Len() int {
	if rt == nil {
		return 0
	}
	return len(rt.types)
}

// Foreach calls fn for each type until fn returns false.
func (rt *ResourceTypes) Foreach(fn func(t string) bool) {
	if rt == nil {
		return
	}
	for _, t := range rt.types {
		if !fn(t) {
			return
		}
	}
}

// Slice returns a copy of the types in insertion order.
func (rt *ResourceTypes) Slice() []string {
	if rt == nil {
		return nil
	}
	return slices.Clone(rt.types)
}

// Clone returns an independent copy.
func (rt *ResourceTypes) Clone() *ResourceTypes {
	if rt == nil {
		return nil
	}
	return &ResourceTypes{types: slices.Clone(rt.types)}
}

// Equal compares as sets; nil equals empty.
func (rt *ResourceTypes) Equal(other *ResourceTypes) bool {
	if rt.Len() != other.Len() {
		return false
	}
	for _, t := range rt.Slice() {
		if !other.Contains(t) {
			return false
		}
	}
	return true
}
