package service

import "errors"

// Sentinel errors returned by the service.
var (
	ErrNotStarted = errors.New("no run has completed")
	ErrDiscover   = errors.New("discover statbooks")
)
