package payload

import (
	"errors"
	"testing"

	"github.com/fxamacker/cbor/v2"

	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/model"
)

// intTree builds a rectangular nested list of the given shape holding
// 0, 1, 2, ... in row-major order.
func intTree(t *testing.T, dims ...int) *model.List {
	t.Helper()
	next := int32(0)
	var build func(depth int) *model.List
	build = func(depth int) *model.List {
		typ := model.TypeList
		if depth == len(dims)-1 {
			typ = model.TypeInt
		}
		l, err := model.NewList(typ)
		if err != nil {
			t.Fatalf("NewList failed: %v", err)
		}
		for i := 0; i < dims[depth]; i++ {
			if typ == model.TypeInt {
				_ = l.AddInt(next, model.End)
				next++
				continue
			}
			sub := build(depth + 1)
			if err := l.AddList(sub, model.End); err != nil {
				t.Fatalf("AddList failed: %v", err)
			}
			sub.Free()
		}
		return l
	}
	return build(0)
}

func TestDecomposeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		dims []int
		want [MaxRank]int
	}{
		{"rank 1", []int{5}, [MaxRank]int{5, 0, 0}},
		{"rank 2", []int{2, 3}, [MaxRank]int{2, 3, 0}},
		{"rank 3", []int{4, 2, 3}, [MaxRank]int{4, 2, 3}},
		{"rank 3 unit axis", []int{3, 1, 2}, [MaxRank]int{3, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := intTree(t, tt.dims...)
			defer tree.Free()

			arr, err := Flatten(tree)
			if err != nil {
				t.Fatalf("Flatten failed: %v", err)
			}
			if arr.Dimensions != tt.want {
				t.Errorf("Dimensions = %v, want %v", arr.Dimensions, tt.want)
			}
			if arr.Kind != KindInt {
				t.Errorf("Kind = %s, want INT", arr.Kind)
			}
			for i, v := range arr.Ints {
				if v != int64(i) {
					t.Fatalf("leaf %d = %d, expected row-major order", i, v)
				}
			}

			back, err := Decompose(arr)
			if err != nil {
				t.Fatalf("Decompose failed: %v", err)
			}
			defer back.Free()
			if !model.ListEqual(tree, back) {
				t.Error("Decompose(Flatten(tree)) differs from tree")
			}
		})
	}
}

func TestDecomposeSlices(t *testing.T) {
	arr := &Array{
		Kind:       KindDouble,
		Dimensions: [MaxRank]int{2, 3},
		Doubles:    []float64{1, 2, 3, 4, 5, 6},
	}
	l, err := Decompose(arr)
	if err != nil {
		t.Fatalf("Decompose failed: %v", err)
	}
	defer l.Free()

	if l.Type() != model.TypeList || l.Len() != 2 {
		t.Fatalf("expected list of 2 lists, got %s[%d]", l.Type(), l.Len())
	}
	row, _ := l.ListAt(1)
	if row.Type() != model.TypeDouble || row.Len() != 3 {
		t.Fatalf("expected row of 3 doubles, got %s[%d]", row.Type(), row.Len())
	}
	if d, _ := row.DoubleAt(0); d != 4 {
		t.Errorf("expected second row to start at 4, got %v", d)
	}
}

func TestDecomposeEmpty(t *testing.T) {
	l, err := Decompose(&Array{Kind: KindInt})
	if err != nil {
		t.Fatalf("Decompose failed: %v", err)
	}
	defer l.Free()
	if l.Len() != 0 || l.Type() != model.TypeNone {
		t.Errorf("expected empty untyped list, got %s[%d]", l.Type(), l.Len())
	}
}

func TestDecomposeInvalid(t *testing.T) {
	tests := []struct {
		name string
		arr  Array
	}{
		{"gap in dimensions", Array{Kind: KindInt, Dimensions: [MaxRank]int{2, 0, 2}, Ints: make([]int64, 4)}},
		{"negative dimension", Array{Kind: KindInt, Dimensions: [MaxRank]int{-1}}},
		{"short buffer", Array{Kind: KindBool, Dimensions: [MaxRank]int{2, 2}, Bools: make([]bool, 3)}},
		{"long buffer", Array{Kind: KindString, Dimensions: [MaxRank]int{1}, Strings: []string{"a", "b"}}},
		{"unknown kind", Array{Kind: ElementKind(99), Dimensions: [MaxRank]int{1}}},
		{"int out of range", Array{Kind: KindInt, Dimensions: [MaxRank]int{1}, Ints: []int64{1 << 40}}},
		{"product overflow", Array{Kind: KindInt, Dimensions: [MaxRank]int{1 << 32, 1 << 32, 1}}},
		{"product overflow wraps to buffer", Array{Kind: KindBool, Dimensions: [MaxRank]int{1 << 62, 4, 1}, Bools: []bool{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decompose(&tt.arr); !errors.Is(err, model.ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestDecomposeReleasesOnError(t *testing.T) {
	lists, reps := model.LiveHandles()

	// The first row decodes; the second fails at its last leaf.
	arr := &Array{Kind: KindInt, Dimensions: Shape{2, 3}, Ints: []int64{0, 1, 2, 3, 4, 1 << 40}}
	if l, err := Decompose(arr); err == nil {
		l.Free()
		t.Fatal("expected Decompose to fail")
	}

	afterLists, afterReps := model.LiveHandles()
	if afterLists != lists || afterReps != reps {
		t.Errorf("live handles changed: lists %d -> %d, reps %d -> %d", lists, afterLists, reps, afterReps)
	}
}

func TestArrayTotal(t *testing.T) {
	tests := []struct {
		name    string
		dims    Shape
		want    int
		wantErr bool
	}{
		{"empty", Shape{}, 0, false},
		{"rank 1", Shape{7}, 7, false},
		{"rank 3", Shape{4, 2, 3}, 24, false},
		{"overflow", Shape{1 << 32, 1 << 32, 1}, 0, true},
		{"overflow at last axis", Shape{1 << 31, 1 << 31, 4}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Array{Dimensions: tt.dims}
			got, err := a.Total()
			if tt.wantErr {
				if !errors.Is(err, model.ErrInvalidParameter) {
					t.Errorf("expected ErrInvalidParameter, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Total failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Total = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestShapeUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		dims    []int
		want    Shape
		wantErr bool
	}{
		{"full", []int{2, 3, 4}, Shape{2, 3, 4}, false},
		{"short", []int{5}, Shape{5, 0, 0}, false},
		{"rank above max", []int{2, 1, 1, 1}, Shape{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := cbor.Marshal(map[int]any{1: KindInt, 2: tt.dims})
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			var a Array
			err = cbor.Unmarshal(data, &a)
			if tt.wantErr {
				if !errors.Is(err, model.ErrInvalidParameter) {
					t.Errorf("expected ErrInvalidParameter, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if a.Dimensions != tt.want {
				t.Errorf("Dimensions = %v, want %v", a.Dimensions, tt.want)
			}
		})
	}
}

func TestFlattenRagged(t *testing.T) {
	outer, _ := model.NewList(model.TypeList)
	defer outer.Free()

	a, _ := model.NewList(model.TypeDouble)
	for _, d := range []float64{1, 2, 3} {
		_ = a.AddDouble(d, model.End)
	}
	b, _ := model.NewList(model.TypeDouble)
	for _, d := range []float64{4, 5} {
		_ = b.AddDouble(d, model.End)
	}
	_ = outer.AddList(a, model.End)
	_ = outer.AddList(b, model.End)
	a.Free()
	b.Free()

	if _, err := Flatten(outer); !errors.Is(err, model.ErrInvalidParameter) {
		t.Errorf("expected ragged list to fail with ErrInvalidParameter, got %v", err)
	}
}

func TestFlattenRankLimit(t *testing.T) {
	tree := intTree(t, 1, 1, 1, 2)
	defer tree.Free()
	if _, err := Flatten(tree); !errors.Is(err, model.ErrInvalidParameter) {
		t.Errorf("expected rank %d limit error, got %v", MaxRank, err)
	}
}

func TestFlattenUnsupported(t *testing.T) {
	t.Run("NullLeaves", func(t *testing.T) {
		l, _ := model.NewList(model.TypeNull)
		defer l.Free()
		_ = l.AddNull(model.End)
		if _, err := Flatten(l); !errors.Is(err, model.ErrInvalidType) {
			t.Errorf("expected ErrInvalidType, got %v", err)
		}
	})

	t.Run("EmptyNested", func(t *testing.T) {
		outer, _ := model.NewList(model.TypeList)
		defer outer.Free()
		inner, _ := model.NewList(model.TypeInt)
		_ = outer.AddList(inner, model.End)
		inner.Free()
		if _, err := Flatten(outer); !errors.Is(err, model.ErrInvalidParameter) {
			t.Errorf("expected ErrInvalidParameter, got %v", err)
		}
	})
}

func TestFlattenObjects(t *testing.T) {
	l, _ := model.NewList(model.TypeObject)
	defer l.Free()
	for i := int32(0); i < 3; i++ {
		r := model.NewRepresentation()
		_ = r.SetInt("i", i)
		_ = l.AddObject(r, model.End)
		r.Free()
	}

	arr, err := Flatten(l)
	if err != nil {
		t.Fatalf("Flatten failed: %v", err)
	}
	if arr.Kind != KindObject || len(arr.Objects) != 3 {
		t.Fatalf("expected 3 objects, got %s with %d", arr.Kind, len(arr.Objects))
	}

	back, err := Decompose(arr)
	if err != nil {
		t.Fatalf("Decompose failed: %v", err)
	}
	defer back.Free()
	if !model.ListEqual(l, back) {
		t.Error("object list did not survive the round trip")
	}
}
