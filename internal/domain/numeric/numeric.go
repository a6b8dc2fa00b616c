// Package numeric holds the small arithmetic helpers shared by the aggregation
// and post-processing stages.
package numeric

import (
	"math"
	"strconv"

	"github.com/montanaflynn/stats"
)

// Round rounds x to the given number of decimal places with ties going up
// (towards positive infinity), so -2.5 rounds to -2 and 2.5 to 3.
func Round(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	p := math.Pow(10, float64(places))
	return math.Floor(x*p+0.5) / p
}

// Mean is the arithmetic mean of xs, NaN when xs is empty.
func Mean(xs []float64) float64 {
	m, err := stats.Mean(xs)
	if err != nil {
		return math.NaN()
	}
	return m
}

// MeanOrZero is Mean with an empty input treated as zero.
func MeanOrZero(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return Mean(xs)
}

// PopStdDev is the population standard deviation of xs, NaN when xs is empty.
func PopStdDev(xs []float64) float64 {
	sd, err := stats.StandardDeviationPopulation(xs)
	if err != nil {
		return math.NaN()
	}
	return sd
}

// Finite reports whether x is neither NaN nor infinite.
func Finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Metric is a derived statistic. Non-finite values marshal as JSON null.
type Metric float64

// Float returns m as a float64.
func (m Metric) Float() float64 { return float64(m) }

// Valid reports whether m is finite.
func (m Metric) Valid() bool { return Finite(float64(m)) }

// MarshalJSON implements json.Marshaler.
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid() {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(m), 'f', -1, 64), nil
}

// UnmarshalJSON implements json.Unmarshaler; null decodes to NaN.
func (m *Metric) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*m = Metric(math.NaN())
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*m = Metric(f)
	return nil
}

// String renders m in its shortest form, or "-" when not finite.
func (m Metric) String() string {
	if !m.Valid() {
		return "-"
	}
	return strconv.FormatFloat(float64(m), 'f', -1, 64)
}
