package roster

import "fmt"

// Alias maps a number recorded for a team to the skater's real number.
type Alias struct {
	Team       string `json:"team"`
	RawNumber  string `json:"rawNumber"`
	RealNumber string `json:"realNumber"`
}

// AliasTable is an ordered list of aliases; the first match wins.
type AliasTable []Alias

// Resolve returns the real number for (team, rawNumber), or rawNumber when
// no alias matches.
func (t AliasTable) Resolve(team, rawNumber string) string {
	for _, a := range t {
		if a.Team == team && a.RawNumber == rawNumber {
			return a.RealNumber
		}
	}
	return rawNumber
}

// Validate rejects entries that can never match or would map to nothing.
func (t AliasTable) Validate() error {
	for i, a := range t {
		switch {
		case a.Team == "":
			return fmt.Errorf("%w: entry %d has no team", ErrInvalidAlias, i)
		case a.RawNumber == "":
			return fmt.Errorf("%w: entry %d has no raw number", ErrInvalidAlias, i)
		case a.RealNumber == "":
			return fmt.Errorf("%w: entry %d has no real number", ErrInvalidAlias, i)
		}
	}
	return nil
}
