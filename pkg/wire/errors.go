package wire

import "errors"

// ErrParse indicates malformed wire data.
var ErrParse = errors.New("parse error")
