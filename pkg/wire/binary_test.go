package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/model"
	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/payload"
)

func TestBinaryRoundTrip(t *testing.T) {
	r := richRepresentation(t)
	defer r.Free()

	data, err := EncodeBinary(r)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	back, err := DecodeBinary(data)
	require.NoError(t, err)
	defer back.Free()
	assert.True(t, model.Equal(r, back), "binary round trip lost content")
	assert.Equal(t, 1, back.RefCount())
}

func TestBinaryDeterministic(t *testing.T) {
	r := richRepresentation(t)
	defer r.Free()

	first, err := EncodeBinary(r)
	require.NoError(t, err)
	for range 5 {
		again, err := EncodeBinary(r)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(first, again), "encoding is not deterministic")
	}
}

func TestBinaryPayloadShape(t *testing.T) {
	r := richRepresentation(t)
	defer r.Free()

	data, err := EncodeBinary(r)
	require.NoError(t, err)
	o, err := DecodePayload(data)
	require.NoError(t, err)

	var grid *payload.Array
	for _, p := range o.Properties {
		if p.Name == "grid" {
			grid = p.Value.Array
		}
	}
	require.NotNil(t, grid)
	assert.Equal(t, payload.KindInt, grid.Kind)
	assert.Equal(t, payload.Shape{2, 3, 0}, grid.Dimensions)
	assert.Equal(t, []int64{0, 1, 2, 3, 4, 5}, grid.Ints)
}

func TestBinaryStream(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for _, uri := range []string{"/a", "/b"} {
		require.NoError(t, enc.Encode(&payload.Object{URI: uri}))
	}

	dec := NewDecoder(&buf)
	for _, want := range []string{"/a", "/b"} {
		var o payload.Object
		require.NoError(t, dec.Decode(&o))
		assert.Equal(t, want, o.URI)
	}
}

func TestDecodeBinaryErrors(t *testing.T) {
	t.Run("Garbage", func(t *testing.T) {
		_, err := DecodeBinary([]byte{0xff, 0x00, 0x13})
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := DecodeBinary(nil)
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("UnknownValueKind", func(t *testing.T) {
		data, err := Marshal(&payload.Object{
			Properties: []payload.Property{{Name: "x", Value: payload.Value{Kind: 99}}},
		})
		require.NoError(t, err)
		_, err = DecodeBinary(data)
		assert.ErrorIs(t, err, model.ErrInvalidParameter)
	})

	t.Run("RankAboveMax", func(t *testing.T) {
		data, err := Marshal(map[int]any{
			4: []map[int]any{{
				1: "a",
				2: map[int]any{
					1: payload.ValueArray,
					8: map[int]any{1: payload.KindInt, 2: []int{2, 1, 1, 1}, 3: []int64{1, 2}},
				},
			}},
		})
		require.NoError(t, err)
		r, err := DecodeBinary(data)
		assert.Nil(t, r)
		assert.ErrorIs(t, err, ErrParse)
		assert.ErrorIs(t, err, model.ErrInvalidParameter)
	})

	t.Run("DimensionOverflow", func(t *testing.T) {
		data, err := EncodePayload(&payload.Object{
			Properties: []payload.Property{{Name: "a", Value: payload.Value{
				Kind:  payload.ValueArray,
				Array: &payload.Array{Kind: payload.KindInt, Dimensions: payload.Shape{1 << 32, 1 << 32, 1}},
			}}},
		})
		require.NoError(t, err)
		r, err := DecodeBinary(data)
		assert.Nil(t, r)
		assert.ErrorIs(t, err, model.ErrInvalidParameter)
	})

	t.Run("IntOutOfRange", func(t *testing.T) {
		data, err := Marshal(&payload.Object{
			Properties: []payload.Property{{Name: "x", Value: payload.Value{Kind: payload.ValueInt, Int: 1 << 40}}},
		})
		require.NoError(t, err)
		_, err = DecodeBinary(data)
		assert.Error(t, err)
	})
}

func TestEncodeBinaryErrors(t *testing.T) {
	_, err := EncodeBinary(nil)
	assert.ErrorIs(t, err, model.ErrInvalidParameter)

	_, err = EncodePayload(nil)
	assert.ErrorIs(t, err, model.ErrInvalidParameter)
}

func TestDecodeBinaryReleasesOnError(t *testing.T) {
	data, err := EncodePayload(&payload.Object{
		URI: "/a",
		Properties: []payload.Property{{Name: "grid", Value: payload.Value{
			Kind:  payload.ValueArray,
			Array: &payload.Array{Kind: payload.KindInt, Dimensions: payload.Shape{2, 2}, Ints: []int64{1, 2, 3, 4}},
		}}},
		Children: []*payload.Object{
			{URI: "/a/0"},
			{URI: "/a/1", Properties: []payload.Property{{Name: "x", Value: payload.Value{Kind: payload.ValueInt, Int: 1 << 40}}}},
		},
	})
	require.NoError(t, err)

	assertReleased(t, func() {
		r, err := DecodeBinary(data)
		assert.Nil(t, r)
		assert.ErrorIs(t, err, model.ErrInvalidParameter)
	})
}
