package model

import (
	"bytes"
	"math"
)

// Equal reports whether a and b hold the same logical content: URI,
// resource types (as a set), interface mask, attributes, and children in
// order, compared recursively.
func Equal(a, b *Representation) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.uri != b.uri || a.ifaces != b.ifaces || !a.types.Equal(b.types) {
		return false
	}
	if len(a.values) != len(b.values) || len(a.children) != len(b.children) {
		return false
	}
	for k, av := range a.values {
		bv, ok := b.values[k]
		if !ok || !ValueEqual(av, bv) {
			return false
		}
	}
	for i := range a.children {
		if !Equal(a.children[i], b.children[i]) {
			return false
		}
	}
	return true
}

// ValueEqual reports whether two values have the same tag and content.
func ValueEqual(a, b Value) bool {
	if a.typ != b.typ {
		return false
	}
	switch a.typ {
	case TypeInt:
		return a.i == b.i
	case TypeBool:
		return a.b == b.b
	case TypeDouble:
		return a.d == b.d || (math.IsNaN(a.d) && math.IsNaN(b.d))
	case TypeStr:
		return a.s == b.s
	case TypeBytes:
		return bytes.Equal(a.bs, b.bs)
	case TypeNull:
		return true
	case TypeList:
		return ListEqual(a.list, b.list)
	case TypeObject:
		return Equal(a.rep, b.rep)
	}
	return false
}

// ListEqual reports whether two lists hold equal elements in order. The
// declared type of an empty list is not compared, since no element can
// witness it.
func ListEqual(a, b *List) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if len(a.values) != len(b.values) {
		return false
	}
	if len(a.values) > 0 && a.typ != b.typ {
		return false
	}
	for i := range a.values {
		if !ValueEqual(a.values[i], b.values[i]) {
			return false
		}
	}
	return true
}
