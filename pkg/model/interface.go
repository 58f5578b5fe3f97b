package model

import (
	"fmt"
	"strings"
)

// Interface is a bitmask of access-pattern capabilities.
type Interface uint8

const (
	// InterfaceNone is the unset mask.
	InterfaceNone Interface = 0

	// InterfaceDefault is the baseline interface.
	InterfaceDefault Interface = 1 << 0

	// InterfaceLink is the link-list interface.
	InterfaceLink Interface = 1 << 1

	// InterfaceBatch is the batch interface.
	InterfaceBatch Interface = 1 << 2

	// InterfaceGroup is the group interface.
	InterfaceGroup Interface = 1 << 3

	// InterfaceAll is every defined bit.
	InterfaceAll = InterfaceDefault | InterfaceLink | InterfaceBatch | InterfaceGroup
)

// Canonical interface tokens.
const (
	InterfaceTokenDefault = "oc.mi.def"
	InterfaceTokenLink    = "oc.mi.ll"
	InterfaceTokenBatch   = "oc.mi.b"
	InterfaceTokenGroup   = "oc.mi.grp"
)

var interfaceTokens = []struct {
	bit   Interface
	token string
}{
	{InterfaceDefault, InterfaceTokenDefault},
	{InterfaceLink, InterfaceTokenLink},
	{InterfaceBatch, InterfaceTokenBatch},
	{InterfaceGroup, InterfaceTokenGroup},
}

// Valid returns true if only defined bits are set.
func (i Interface) Valid() bool {
	return i&^InterfaceAll == 0
}

// Has returns true if every bit of other is set in i.
func (i Interface) Has(other Interface) bool {
	return i&other == other
}

// Tokens returns the canonical token of each set bit, lowest bit first.
func (i Interface) Tokens() []string {
	var tokens []string
	for _, t := range interfaceTokens {
		if i&t.bit != 0 {
			tokens = append(tokens, t.token)
		}
	}
	return tokens
}

// String returns the tokens joined by '|', or "none".
func (i Interface) String() string {
	if i == InterfaceNone {
		return "none"
	}
	return strings.Join(i.Tokens(), "|")
}

// ParseInterface maps a canonical token to its bit.
func ParseInterface(token string) (Interface, error) {
	for _, t := range interfaceTokens {
		if t.token == token {
			return t.bit, nil
		}
	}
	return InterfaceNone, fmt.Errorf("%w: unknown interface %q", ErrInvalidParameter, token)
}

// ParseInterfaces combines the bits of every token.
func ParseInterfaces(tokens []string) (Interface, error) {
	var mask Interface
	for _, token := range tokens {
		bit, err := ParseInterface(token)
		if err != nil {
			return InterfaceNone, err
		}
		mask |= bit
	}
	return mask, nil
}
