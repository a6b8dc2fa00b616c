package testgames

// Generator defaults.
const (
	defaultJamsPerPeriod    = 12
	defaultRosterSize       = 14
	defaultPenaltiesPerGame = 40
	defaultNoPivotPercent   = 20
	defaultUnlinedPercent   = 5
	defaultSeed             = 42
)

// Scoring shape of a generated jam.
const (
	maxScoringPasses = 4
	maxPassPoints    = 4
	leadPercent      = 85
	percent          = 100
	daysBetweenGames = 7
	minSkaterNumber  = 1
	maxSkaterNumber  = 999
)

// dateLayout matches the IGRF date cell.
const dateLayout = "2006-01-02"
