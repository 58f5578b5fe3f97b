package model

// Type is the tag of a Value.
type Type uint8

const (
	// TypeNone marks a list whose element type is not locked yet.
	TypeNone Type = iota
	TypeInt
	TypeBool
	TypeDouble
	TypeStr
	TypeBytes
	TypeNull
	TypeList
	TypeObject
)

// String returns the type name.
func (t Type) String() string {
	names := []string{
		"none", "int", "bool", "double", "str", "bytes", "null", "list", "object",
	}
	if int(t) < len(names) {
		return names[t]
	}
	return "unknown"
}

// IsComposite returns true for types holding a shared handle.
func (t Type) IsComposite() bool {
	return t == TypeList || t == TypeObject
}

// valid reports whether t is a tag a Value can carry.
func (t Type) valid() bool {
	return t >= TypeInt && t <= TypeObject
}
