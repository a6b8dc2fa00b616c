package roster

import "errors"

// Sentinel error kinds for this package.
var (
	ErrInvalidAlias = errors.New("invalid number alias")
	ErrUnknownSet   = errors.New("unknown skater set")
)
