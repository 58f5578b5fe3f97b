// Package model implements the resource representation data model.
//
// # Value Tree
//
// A Representation carries the attributes of one resource together with
// tree metadata:
//
//	Representation (/a/light)
//	├── uri, resource types, interface mask
//	├── attributes (key -> Value)
//	│   ├── "brightness": Int 60
//	│   ├── "levels":     List<List<Double>>
//	│   └── "owner":      Object -> Representation
//	└── children
//	    ├── Representation (/a/light/0)
//	    └── Representation (/a/light/1)
//
// A Value is a closed tagged union: Int, Bool, Double, Str, Bytes, Null,
// List and Object. A List is homogeneous: its element type is declared at
// creation or locked by the first insert.
//
// # Sharing and Reference Counts
//
// Lists and Representations are shared handles. Every New* constructor
// returns a handle with a count of one owned by the caller. Storing a handle
// (SetList, SetObject, AddList, AddObject, AppendChild, NewListValue,
// NewObjectValue) takes an additional reference, so the same list may appear
// under several keys or parents and mutations through one owner are visible
// through all of them. Free drops one reference; the last Free releases the
// contents recursively.
//
// Insertions that would make a handle reach itself are rejected, so the
// graph of handles is always acyclic.
//
// Clone never aliases: it returns an independent deep copy with fresh
// counts.
//
// # Concurrency
//
// The tree has no internal locking. All owners of a shared handle must
// mutate it from the same logical thread of control.
package model
