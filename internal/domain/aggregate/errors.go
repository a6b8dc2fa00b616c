package aggregate

import "errors"

// Sentinel error kinds for the fold.
var (
	ErrNilGame     = errors.New("nil game")
	ErrInvalidTeam = errors.New("invalid team indicator")
)
