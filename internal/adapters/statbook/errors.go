package statbook

import "errors"

// Sentinel errors for statbook reading and writing.
var (
	ErrMissingSheet  = errors.New("statbook: missing sheet")
	ErrMissingTeams  = errors.New("statbook: team names missing from IGRF")
	ErrSheetOverflow = errors.New("statbook: game does not fit the sheet layout")
)
