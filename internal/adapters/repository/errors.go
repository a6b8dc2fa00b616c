package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidLimit  = errors.New("invalid leaderboard limit")
	ErrUnknownMetric = errors.New("unknown metric")
	ErrNoSnapshot    = errors.New("no snapshot published")
)
