package wire

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/model"
)

// Member names of the text format.
const (
	keyCollection    = "oc"
	keyHref          = "href"
	keyProperties    = "prop"
	keyResourceTypes = "rt"
	keyInterfaces    = "if"
	keyRep           = "rep"
	keyByteString    = "bstr"
)

// IsReservedKey returns true for member names that cannot be attribute keys
// in the text format.
func IsReservedKey(key string) bool {
	return key == keyHref || key == keyProperties || key == keyCollection
}

// EncodeText encodes r and its children as a text document. With pretty
// set the output is indented. Map members are emitted in key order.
func EncodeText(r *model.Representation, pretty bool) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil representation", model.ErrInvalidParameter)
	}

	root, err := encodeNode(r, false)
	if err != nil {
		return nil, err
	}
	nodes := []any{root}
	for _, child := range r.Children() {
		node, err := encodeNode(child, true)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(map[string]any{keyCollection: nodes}); err != nil {
		return nil, fmt.Errorf("failed to encode text: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// encodeNode builds the node of r. Children are nested under "oc" only when
// withChildren is set; the root's children are siblings in the top array.
func encodeNode(r *model.Representation, withChildren bool) (map[string]any, error) {
	node := make(map[string]any, r.Len()+3)

	var err error
	r.Foreach(func(key string, v model.Value) bool {
		if IsReservedKey(key) {
			err = fmt.Errorf("%w: attribute key %q is reserved", model.ErrInvalidParameter, key)
			return false
		}
		var jv any
		if jv, err = encodeValue(v); err != nil {
			err = fmt.Errorf("attribute %q: %w", key, err)
			return false
		}
		node[key] = jv
		return true
	})
	if err != nil {
		return nil, err
	}

	if uri := r.URI(); uri != "" {
		node[keyHref] = uri
	}
	prop := make(map[string]any, 2)
	if rt := r.ResourceTypes(); rt.Len() > 0 {
		prop[keyResourceTypes] = rt.Slice()
	}
	if ifaces := r.Interfaces(); ifaces != model.InterfaceNone {
		prop[keyInterfaces] = ifaces.Tokens()
	}
	if len(prop) > 0 {
		node[keyProperties] = prop
	}

	if withChildren && r.NumChildren() > 0 {
		children := make([]any, 0, r.NumChildren())
		for _, child := range r.Children() {
			cn, err := encodeNode(child, true)
			if err != nil {
				return nil, err
			}
			children = append(children, cn)
		}
		node[keyCollection] = children
	}
	return node, nil
}

func encodeValue(v model.Value) (any, error) {
	switch v.Type() {
	case model.TypeInt:
		i, _ := v.Int()
		return json.Number(strconv.FormatInt(int64(i), 10)), nil
	case model.TypeDouble:
		d, _ := v.Double()
		return encodeDouble(d)
	case model.TypeBool:
		b, _ := v.Bool()
		return b, nil
	case model.TypeStr:
		s, _ := v.Str()
		return s, nil
	case model.TypeNull:
		return nil, nil
	case model.TypeBytes:
		b, _ := v.Bytes()
		return map[string]any{keyByteString: base64.StdEncoding.EncodeToString(b)}, nil
	case model.TypeList:
		l, _ := v.List()
		arr := make([]any, 0, l.Len())
		var err error
		l.Foreach(func(_ int, elem model.Value) bool {
			var jv any
			if jv, err = encodeValue(elem); err != nil {
				return false
			}
			arr = append(arr, jv)
			return true
		})
		if err != nil {
			return nil, err
		}
		return arr, nil
	case model.TypeObject:
		obj, _ := v.Object()
		node, err := encodeNode(obj, true)
		if err != nil {
			return nil, err
		}
		return map[string]any{keyRep: node}, nil
	}
	return nil, fmt.Errorf("%w: value type %s", model.ErrInvalidType, v.Type())
}

// encodeDouble always emits a fraction or an exponent so the value decodes
// as a double again.
func encodeDouble(d float64) (json.Number, error) {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return "", fmt.Errorf("%w: %v is not representable", model.ErrInvalidParameter, d)
	}
	s := strconv.FormatFloat(d, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return json.Number(s), nil
}

// DecodeText decodes a text document into a representation tree with a
// reference count of one. On error nothing stays allocated.
func DecodeText(data []byte) (*model.Representation, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	var trailing any
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after document", ErrParse)
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: document is not an object", ErrParse)
	}
	nodes, ok := obj[keyCollection].([]any)
	if !ok || len(nodes) == 0 {
		return nil, fmt.Errorf("%w: missing or empty %q array", ErrParse, keyCollection)
	}

	root, err := decodeNodeValue(nodes[0])
	if err != nil {
		return nil, err
	}
	if err := decodeChildren(root, nodes[1:]); err != nil {
		root.Free()
		return nil, err
	}
	return root, nil
}

func decodeChildren(parent *model.Representation, nodes []any) error {
	for i, raw := range nodes {
		child, err := decodeNodeValue(raw)
		if err != nil {
			return fmt.Errorf("child %d: %w", i, err)
		}
		err = parent.AppendChild(child)
		child.Free()
		if err != nil {
			return err
		}
	}
	return nil
}

func decodeNodeValue(raw any) (*model.Representation, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: node is %T, not an object", ErrParse, raw)
	}
	r := model.NewRepresentation()
	if err := decodeNode(r, m); err != nil {
		r.Free()
		return nil, err
	}
	return r, nil
}

// decodeNode fills r from the members of m: attributes first, then the
// metadata and nested children.
func decodeNode(r *model.Representation, m map[string]any) error {
	for key, raw := range m {
		if IsReservedKey(key) {
			continue
		}
		v, err := decodeValue(raw)
		if err != nil {
			return fmt.Errorf("attribute %q: %w", key, err)
		}
		if err := r.Set(key, v); err != nil {
			v.Free()
			return err
		}
	}

	if raw, ok := m[keyHref]; ok {
		uri, ok := raw.(string)
		if !ok {
			return fmt.Errorf("%w: %q is not a string", ErrParse, keyHref)
		}
		r.SetURI(uri)
	}
	if raw, ok := m[keyProperties]; ok {
		if err := decodeProperties(r, raw); err != nil {
			return err
		}
	}
	if raw, ok := m[keyCollection]; ok {
		nodes, ok := raw.([]any)
		if !ok {
			return fmt.Errorf("%w: %q is not an array", ErrParse, keyCollection)
		}
		if err := decodeChildren(r, nodes); err != nil {
			return err
		}
	}
	return nil
}

func decodeProperties(r *model.Representation, raw any) error {
	prop, ok := raw.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: %q is not an object", ErrParse, keyProperties)
	}
	if raw, ok := prop[keyResourceTypes]; ok {
		types, err := stringArray(raw, keyResourceTypes)
		if err != nil {
			return err
		}
		rt, err := model.NewResourceTypes(types...)
		if err != nil {
			return err
		}
		r.SetResourceTypes(rt)
	}
	if raw, ok := prop[keyInterfaces]; ok {
		tokens, err := stringArray(raw, keyInterfaces)
		if err != nil {
			return err
		}
		mask, err := model.ParseInterfaces(tokens)
		if err != nil {
			return err
		}
		if err := r.SetInterfaces(mask); err != nil {
			return err
		}
	}
	return nil
}

func stringArray(raw any, name string) ([]string, error) {
	arr, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not an array", ErrParse, name)
	}
	out := make([]string, 0, len(arr))
	for _, elem := range arr {
		s, ok := elem.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %q holds %T, not a string", ErrParse, name, elem)
		}
		out = append(out, s)
	}
	return out, nil
}

func decodeValue(raw any) (model.Value, error) {
	switch x := raw.(type) {
	case nil:
		return model.NewNull(), nil
	case bool:
		return model.NewBool(x), nil
	case string:
		return model.NewStr(x)
	case json.Number:
		return decodeNumber(x)
	case []any:
		l, err := decodeList(x)
		if err != nil {
			return model.Value{}, err
		}
		defer l.Free()
		return model.NewListValue(l)
	case map[string]any:
		return decodeWrapped(x)
	}
	return model.Value{}, fmt.Errorf("%w: unexpected %T", ErrParse, raw)
}

// decodeNumber maps integers within int32 range to Int and everything else
// to Double.
func decodeNumber(n json.Number) (model.Value, error) {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 32); err == nil {
			return model.NewInt(int32(i)), nil
		}
	}
	d, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return model.Value{}, fmt.Errorf("%w: number %s: %v", ErrParse, s, err)
	}
	return model.NewDouble(d), nil
}

// decodeWrapped decodes {"rep": node} and {"bstr": base64}.
func decodeWrapped(m map[string]any) (model.Value, error) {
	if len(m) == 1 {
		if raw, ok := m[keyRep]; ok {
			r, err := decodeNodeValue(raw)
			if err != nil {
				return model.Value{}, err
			}
			defer r.Free()
			return model.NewObjectValue(r)
		}
		if raw, ok := m[keyByteString]; ok {
			s, ok := raw.(string)
			if !ok {
				return model.Value{}, fmt.Errorf("%w: %q is not a string", ErrParse, keyByteString)
			}
			b, err := base64.StdEncoding.DecodeString(s)
			if err != nil {
				return model.Value{}, fmt.Errorf("%w: %q: %v", ErrParse, keyByteString, err)
			}
			return model.NewBytes(b), nil
		}
	}
	return model.Value{}, fmt.Errorf("%w: object value must be wrapped in %q or %q", ErrParse, keyRep, keyByteString)
}

// decodeList decodes an array. The list type is inferred from the first
// element and every other element must agree with it.
func decodeList(arr []any) (*model.List, error) {
	l, err := model.NewList(model.TypeNone)
	if err != nil {
		return nil, err
	}
	for i, raw := range arr {
		v, err := decodeValue(raw)
		if err != nil {
			l.Free()
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		if err := l.Insert(v, model.End); err != nil {
			v.Free()
			l.Free()
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
	}
	return l, nil
}

// DecodeTextValue decodes a single attribute value in text form, such as
// `60`, `[1,2]` or `{"rep":{...}}`. Composite results are owned by the
// caller.
func DecodeTextValue(data []byte) (model.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return model.Value{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	var trailing any
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		return model.Value{}, fmt.Errorf("%w: trailing data after value", ErrParse)
	}
	return decodeValue(raw)
}

// EncodeTextValue encodes a single attribute value in text form.
func EncodeTextValue(v model.Value) ([]byte, error) {
	jv, err := encodeValue(v)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(jv)
	if err != nil {
		return nil, fmt.Errorf("failed to encode text: %w", err)
	}
	return data, nil
}
