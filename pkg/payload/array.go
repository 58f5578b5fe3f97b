package payload

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/model"
)

// Rank returns the number of populated axes. A zero dimension ends the
// vector; a nonzero dimension after it is malformed.
func (a *Array) Rank() (int, error) {
	rank := 0
	for depth, d := range a.Dimensions {
		switch {
		case d < 0:
			return 0, fmt.Errorf("%w: negative dimension %d at axis %d", model.ErrInvalidParameter, d, depth)
		case d == 0:
			continue
		case rank != depth:
			return 0, fmt.Errorf("%w: axis %d populated after an unused axis", model.ErrInvalidParameter, depth)
		}
		rank++
	}
	return rank, nil
}

// Total returns the number of leaves described by the dimension vector.
// A product that does not fit in an int fails ErrInvalidParameter.
func (a *Array) Total() (int, error) {
	total := 1
	populated := false
	for _, d := range a.Dimensions {
		if d == 0 {
			break
		}
		hi, lo := bits.Mul64(uint64(total), uint64(d))
		if d < 0 || hi != 0 || lo > math.MaxInt {
			return 0, fmt.Errorf("%w: dimensions %v overflow", model.ErrInvalidParameter, a.Dimensions)
		}
		total = int(lo)
		populated = true
	}
	if !populated {
		return 0, nil
	}
	return total, nil
}

// bufferLen returns the length of the buffer selected by Kind.
func (a *Array) bufferLen() (int, error) {
	switch a.Kind {
	case KindInt:
		return len(a.Ints), nil
	case KindBool:
		return len(a.Bools), nil
	case KindDouble:
		return len(a.Doubles), nil
	case KindString:
		return len(a.Strings), nil
	case KindByteString:
		return len(a.ByteStrings), nil
	case KindObject:
		return len(a.Objects), nil
	case KindUnset:
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: element kind %d", model.ErrInvalidParameter, a.Kind)
	}
}

// Validate checks the dimension vector against the selected buffer.
func (a *Array) Validate() error {
	if _, err := a.Rank(); err != nil {
		return err
	}
	n, err := a.bufferLen()
	if err != nil {
		return err
	}
	total, err := a.Total()
	if err != nil {
		return err
	}
	if n != total {
		return fmt.Errorf("%w: %s buffer holds %d elements, dimensions %v need %d",
			model.ErrInvalidParameter, a.Kind, n, a.Dimensions, total)
	}
	return nil
}

// Decompose rebuilds the nested list described by a. An empty array yields
// an empty, untyped list. The returned list has a reference count of one.
func Decompose(a *Array) (*model.List, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	rank, _ := a.Rank()
	if rank == 0 {
		return model.NewList(model.TypeNone)
	}
	total, _ := a.Total()
	return decompose(a, rank, 0, total, 0)
}

// decompose decodes length leaves starting at offset. At the last populated
// axis it reads the leaves directly; above it, it splits length into
// Dimensions[depth] equal slices and decodes each as a sub-list.
func decompose(a *Array, rank, depth, length, offset int) (*model.List, error) {
	if depth == rank-1 {
		return decodeLeaves(a, offset, length)
	}

	dim := a.Dimensions[depth]
	next := length / dim
	l, err := model.NewList(model.TypeList)
	if err != nil {
		return nil, err
	}
	for i := 0; i < dim; i++ {
		sub, err := decompose(a, rank, depth+1, next, offset+i*next)
		if err != nil {
			l.Free()
			return nil, err
		}
		err = l.AddList(sub, model.End)
		sub.Free()
		if err != nil {
			l.Free()
			return nil, err
		}
	}
	return l, nil
}

// decodeLeaves reads length contiguous elements at offset into a flat list.
func decodeLeaves(a *Array, offset, length int) (*model.List, error) {
	typ, err := listTypeFor(a.Kind)
	if err != nil {
		return nil, err
	}
	l, err := model.NewList(typ)
	if err != nil {
		return nil, err
	}
	for i := offset; i < offset+length; i++ {
		if err := addLeaf(l, a, i); err != nil {
			l.Free()
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
	}
	return l, nil
}

func addLeaf(l *model.List, a *Array, i int) error {
	switch a.Kind {
	case KindInt:
		v, err := toInt32(a.Ints[i])
		if err != nil {
			return err
		}
		return l.AddInt(v, model.End)
	case KindBool:
		return l.AddBool(a.Bools[i], model.End)
	case KindDouble:
		return l.AddDouble(a.Doubles[i], model.End)
	case KindString:
		return l.AddStr(a.Strings[i], model.End)
	case KindByteString:
		return l.AddBytes(a.ByteStrings[i], model.End)
	case KindObject:
		r, err := ToRepresentation(a.Objects[i])
		if err != nil {
			return err
		}
		defer r.Free()
		return l.AddObject(r, model.End)
	}
	return fmt.Errorf("%w: element kind %s", model.ErrInvalidParameter, a.Kind)
}

func listTypeFor(k ElementKind) (model.Type, error) {
	switch k {
	case KindInt:
		return model.TypeInt, nil
	case KindBool:
		return model.TypeBool, nil
	case KindDouble:
		return model.TypeDouble, nil
	case KindString:
		return model.TypeStr, nil
	case KindByteString:
		return model.TypeBytes, nil
	case KindObject:
		return model.TypeObject, nil
	}
	return model.TypeNone, fmt.Errorf("%w: element kind %s", model.ErrInvalidParameter, k)
}

func kindFor(t model.Type) (ElementKind, error) {
	switch t {
	case model.TypeInt:
		return KindInt, nil
	case model.TypeBool:
		return KindBool, nil
	case model.TypeDouble:
		return KindDouble, nil
	case model.TypeStr:
		return KindString, nil
	case model.TypeBytes:
		return KindByteString, nil
	case model.TypeObject:
		return KindObject, nil
	}
	return KindUnset, fmt.Errorf("%w: %s elements cannot be flattened", model.ErrInvalidType, t)
}

func toInt32(i int64) (int32, error) {
	if i < math.MinInt32 || i > math.MaxInt32 {
		return 0, fmt.Errorf("%w: integer %d outside int32 range", model.ErrInvalidParameter, i)
	}
	return int32(i), nil
}

// Flatten converts a rectangular nested list into an Array. The dimension
// vector is taken from the first path to the leaves; every other list at the
// same depth must match it.
func Flatten(l *model.List) (*Array, error) {
	a := &Array{}
	if l.Len() == 0 {
		if k, err := kindFor(l.Type()); err == nil {
			a.Kind = k
		}
		return a, nil
	}

	rank := 0
	leaf := l
	for {
		if rank == MaxRank {
			return nil, fmt.Errorf("%w: list nesting exceeds rank %d", model.ErrInvalidParameter, MaxRank)
		}
		a.Dimensions[rank] = leaf.Len()
		rank++
		if leaf.Type() != model.TypeList {
			break
		}
		next, err := leaf.ListAt(0)
		if err != nil {
			return nil, err
		}
		if next.Len() == 0 {
			return nil, fmt.Errorf("%w: empty nested list at depth %d", model.ErrInvalidParameter, rank)
		}
		leaf = next
	}

	kind, err := kindFor(leaf.Type())
	if err != nil {
		return nil, err
	}
	a.Kind = kind

	if err := flatten(a, l, rank, 0); err != nil {
		return nil, err
	}
	return a, nil
}

// flatten appends the leaves of l in row-major order, checking that every
// list at depth matches the dimension vector.
func flatten(a *Array, l *model.List, rank, depth int) error {
	if l.Len() != a.Dimensions[depth] {
		return fmt.Errorf("%w: ragged list at depth %d: length %d, expected %d",
			model.ErrInvalidParameter, depth, l.Len(), a.Dimensions[depth])
	}
	if depth < rank-1 {
		for pos := 0; pos < l.Len(); pos++ {
			sub, err := l.ListAt(pos)
			if err != nil {
				return fmt.Errorf("%w: ragged list at depth %d: %v", model.ErrInvalidParameter, depth, err)
			}
			if err := flatten(a, sub, rank, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	if k, err := kindFor(l.Type()); err != nil || k != a.Kind {
		return fmt.Errorf("%w: leaf list of %s, expected %s", model.ErrInvalidType, l.Type(), a.Kind)
	}
	var ferr error
	l.Foreach(func(_ int, v model.Value) bool {
		ferr = appendLeaf(a, v)
		return ferr == nil
	})
	return ferr
}

func appendLeaf(a *Array, v model.Value) error {
	switch a.Kind {
	case KindInt:
		i, err := v.Int()
		a.Ints = append(a.Ints, int64(i))
		return err
	case KindBool:
		b, err := v.Bool()
		a.Bools = append(a.Bools, b)
		return err
	case KindDouble:
		d, err := v.Double()
		a.Doubles = append(a.Doubles, d)
		return err
	case KindString:
		s, err := v.Str()
		a.Strings = append(a.Strings, s)
		return err
	case KindByteString:
		b, err := v.Bytes()
		a.ByteStrings = append(a.ByteStrings, b)
		return err
	case KindObject:
		r, err := v.Object()
		if err != nil {
			return err
		}
		o, err := FromRepresentation(r)
		if err != nil {
			return err
		}
		a.Objects = append(a.Objects, o)
		return nil
	}
	return fmt.Errorf("%w: element kind %s", model.ErrInvalidParameter, a.Kind)
}
