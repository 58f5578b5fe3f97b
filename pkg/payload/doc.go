// Package payload defines the flattened native payload exchanged with the
// transport layer and converts it to and from model representations.
//
// # Arrays
//
// A list attribute travels as an Array: one element kind, a dimension
// vector of MaxRank axes and a single flat buffer holding every leaf in
// row-major order. A zero dimension marks an unused axis.
//
//	List<List<Int>> [[1,2,3],[4,5,6]]
//
//	Kind:       KindInt
//	Dimensions: [2 3 0]
//	Ints:       [1 2 3 4 5 6]
//
// Decompose rebuilds the nested lists from an Array; Flatten is its dual.
// Both require rectangular shapes: every list at one depth has the same
// length.
package payload
