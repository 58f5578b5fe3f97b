package payload

import (
	"fmt"

	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/model"
)

// FromRepresentation converts r and its children into a native Object.
// Properties are emitted in key order.
func FromRepresentation(r *model.Representation) (*Object, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil representation", model.ErrInvalidParameter)
	}
	o := &Object{
		URI:           r.URI(),
		ResourceTypes: r.ResourceTypes().Slice(),
		Interfaces:    r.Interfaces().Tokens(),
	}

	var err error
	r.Foreach(func(key string, v model.Value) bool {
		var pv Value
		pv, err = fromValue(v)
		if err != nil {
			err = fmt.Errorf("property %q: %w", key, err)
			return false
		}
		o.Properties = append(o.Properties, Property{Name: key, Value: pv})
		return true
	})
	if err != nil {
		return nil, err
	}

	for _, child := range r.Children() {
		co, err := FromRepresentation(child)
		if err != nil {
			return nil, err
		}
		o.Children = append(o.Children, co)
	}
	return o, nil
}

func fromValue(v model.Value) (Value, error) {
	switch v.Type() {
	case model.TypeNull:
		return Value{Kind: ValueNull}, nil
	case model.TypeInt:
		i, _ := v.Int()
		return Value{Kind: ValueInt, Int: int64(i)}, nil
	case model.TypeBool:
		b, _ := v.Bool()
		return Value{Kind: ValueBool, Bool: b}, nil
	case model.TypeDouble:
		d, _ := v.Double()
		return Value{Kind: ValueDouble, Double: d}, nil
	case model.TypeStr:
		s, _ := v.Str()
		return Value{Kind: ValueString, String: s}, nil
	case model.TypeBytes:
		b, _ := v.Bytes()
		return Value{Kind: ValueByteString, Bytes: b}, nil
	case model.TypeList:
		l, _ := v.List()
		a, err := Flatten(l)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: ValueArray, Array: a}, nil
	case model.TypeObject:
		r, _ := v.Object()
		o, err := FromRepresentation(r)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: ValueObject, Object: o}, nil
	}
	return Value{}, fmt.Errorf("%w: value type %s", model.ErrInvalidType, v.Type())
}

// ToRepresentation builds a representation tree from o. On error everything
// allocated so far is released. The result has a reference count of one.
func ToRepresentation(o *Object) (*model.Representation, error) {
	if o == nil {
		return nil, fmt.Errorf("%w: nil object", model.ErrInvalidParameter)
	}
	r := model.NewRepresentation()
	if err := fillRepresentation(r, o); err != nil {
		r.Free()
		return nil, err
	}
	return r, nil
}

func fillRepresentation(r *model.Representation, o *Object) error {
	r.SetURI(o.URI)

	if len(o.ResourceTypes) > 0 {
		rt, err := model.NewResourceTypes(o.ResourceTypes...)
		if err != nil {
			return err
		}
		r.SetResourceTypes(rt)
	}

	mask, err := model.ParseInterfaces(o.Interfaces)
	if err != nil {
		return err
	}
	if err := r.SetInterfaces(mask); err != nil {
		return err
	}

	for _, p := range o.Properties {
		v, err := toValue(p.Value)
		if err != nil {
			return fmt.Errorf("property %q: %w", p.Name, err)
		}
		if err := r.Set(p.Name, v); err != nil {
			v.Free()
			return err
		}
	}

	for _, co := range o.Children {
		child, err := ToRepresentation(co)
		if err != nil {
			return err
		}
		err = r.AppendChild(child)
		child.Free()
		if err != nil {
			return err
		}
	}
	return nil
}

func toValue(pv Value) (model.Value, error) {
	switch pv.Kind {
	case ValueNull:
		return model.NewNull(), nil
	case ValueInt:
		i, err := toInt32(pv.Int)
		if err != nil {
			return model.Value{}, err
		}
		return model.NewInt(i), nil
	case ValueDouble:
		return model.NewDouble(pv.Double), nil
	case ValueBool:
		return model.NewBool(pv.Bool), nil
	case ValueString:
		return model.NewStr(pv.String)
	case ValueByteString:
		return model.NewBytes(pv.Bytes), nil
	case ValueObject:
		r, err := ToRepresentation(pv.Object)
		if err != nil {
			return model.Value{}, err
		}
		defer r.Free()
		return model.NewObjectValue(r)
	case ValueArray:
		if pv.Array == nil {
			return model.Value{}, fmt.Errorf("%w: array value without array", model.ErrInvalidParameter)
		}
		l, err := Decompose(pv.Array)
		if err != nil {
			return model.Value{}, err
		}
		defer l.Free()
		return model.NewListValue(l)
	}
	return model.Value{}, fmt.Errorf("%w: value kind %s", model.ErrInvalidParameter, pv.Kind)
}
