package interactive

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/model"
	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/wire"
)

func testShell(t *testing.T, path string) (*Shell, *bytes.Buffer) {
	t.Helper()
	r, err := wire.DecodeText([]byte(`{"oc":[{"brightness":60,"href":"/a/light","owner":{"rep":{"id":"u1"}}},{"href":"/a/light/0","on":true}]}`))
	require.NoError(t, err)

	var out bytes.Buffer
	s := newShell(wire.NewCodec(), r, path, wire.FormatText, &out)
	r.Free()
	t.Cleanup(func() { _ = s.Close() })
	return s, &out
}

func TestShellGet(t *testing.T) {
	s, out := testShell(t, "")

	tests := []struct {
		line string
		want string
	}{
		{"get brightness", "60\n"},
		{"g owner/id", "\"u1\"\n"},
		{"get #0", "/a/light/0\n"},
		{"get #0/on", "true\n"},
		{"get missing", "Error: "},
		{"get", "Error: usage: get <path>\n"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			out.Reset()
			assert.False(t, s.exec(tt.line))
			assert.True(t, strings.HasPrefix(out.String(), tt.want), "got %q", out.String())
		})
	}
}

func TestShellView(t *testing.T) {
	s, out := testShell(t, "")

	s.exec("view")
	assert.Contains(t, out.String(), "/a/light")
	assert.Contains(t, out.String(), "brightness: 60")
	assert.Contains(t, out.String(), "#0:")

	out.Reset()
	s.exec("types")
	s.exec("view owner")
	assert.Contains(t, out.String(), "Show types: true")
	assert.Contains(t, out.String(), `id (str): "u1"`)
}

func TestShellEdit(t *testing.T) {
	s, out := testShell(t, "")

	s.exec(`set name "desk"`)
	s.exec("set grid [[1,2],[3,4]]")
	s.exec("delete brightness")
	s.exec("uri /b/light")
	assert.True(t, s.dirty)
	assert.Contains(t, out.String(), `name = "desk"`)
	assert.Contains(t, out.String(), "Deleted brightness")

	name, err := s.rep.Str("name")
	require.NoError(t, err)
	assert.Equal(t, "desk", name)
	grid, err := s.rep.List("grid")
	require.NoError(t, err)
	assert.Equal(t, model.TypeList, grid.Type())
	_, err = s.rep.Get("brightness")
	assert.ErrorIs(t, err, model.ErrNoData)
	assert.Equal(t, "/b/light", s.rep.URI())

	out.Reset()
	s.exec("set href 1")
	s.exec("set x [1,")
	s.exec("set x")
	s.exec("delete nope")
	assert.Equal(t, 4, strings.Count(out.String(), "Error: "))
}

func TestShellEncodeAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "light.json")
	s, out := testShell(t, path)

	s.exec("encode")
	assert.Contains(t, out.String(), `"href":"/a/light"`)

	out.Reset()
	s.exec("encode binary")
	assert.Contains(t, out.String(), " bytes: ")

	s.exec("set level 3")
	s.exec("save")
	assert.False(t, s.dirty)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"level":3`)

	bin := filepath.Join(dir, "light.cbor")
	s.exec("save " + bin + " binary")
	data, err = os.ReadFile(bin)
	require.NoError(t, err)
	back, err := wire.DecodeBinary(data)
	require.NoError(t, err)
	defer back.Free()
	assert.True(t, model.Equal(s.rep, back))
}

func TestShellSaveKeepsInputFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "light.cbor")
	r := model.NewRepresentation()
	r.SetURI("/a/light")
	require.NoError(t, r.SetInt("brightness", 60))

	var out bytes.Buffer
	s := newShell(wire.NewCodec(), r, path, wire.FormatBinary, &out)
	r.Free()
	t.Cleanup(func() { _ = s.Close() })

	s.exec("set brightness 80")
	s.exec("save")
	require.False(t, s.dirty, "save failed: %s", out.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	back, err := wire.DecodeBinary(data)
	require.NoError(t, err)
	defer back.Free()
	b, err := back.Int("brightness")
	require.NoError(t, err)
	assert.Equal(t, int32(80), b)

	s.exec("save " + path + " text")
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"brightness":80`)
}

func TestShellQuit(t *testing.T) {
	s, out := testShell(t, "")

	assert.False(t, s.exec("bogus"))
	assert.Contains(t, out.String(), "Unknown command: bogus")

	s.exec("set x 1")
	out.Reset()
	assert.True(t, s.exec("quit"))
	assert.Contains(t, out.String(), "Unsaved changes discarded.")
}
