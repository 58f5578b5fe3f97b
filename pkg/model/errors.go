package model

import "errors"

// Representation errors.
var (
	// ErrInvalidParameter indicates an absent or malformed argument.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidType indicates a stored tag disagrees with the requested one.
	ErrInvalidType = errors.New("invalid type")

	// ErrNoData indicates a lookup miss (unknown key or position).
	ErrNoData = errors.New("no data")

	// ErrAlreadyExists indicates a duplicate resource type.
	ErrAlreadyExists = errors.New("already exists")
)

// ErrTypeMismatch is an alias of ErrInvalidType used by list inference.
var ErrTypeMismatch = ErrInvalidType
