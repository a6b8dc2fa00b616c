package worker

import "errors"

// Sentinel kinds for worker errors.
var (
	ErrMissingResult = errors.New("no result for file")
)
