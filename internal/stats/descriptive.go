// Package stats implements the statistical analyses of the toolkit:
// descriptive statistics, correlation, reference-vs-measurement error
// metrics, one-way ANOVA, ordinary least squares regression, validation
// metrics and residuals. All numeric work delegates to gonum.
package stats

import (
	"math"
	"sort"

	"github.com/fieldstat/edakit/internal/dataset"
	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/stat"
)

// ColumnStats holds the descriptive statistics of a single numeric column.
// Count is the number of defined (non-NaN) values.
type ColumnStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"25%"`
	Median float64 `json:"50%"`
	Q75    float64 `json:"75%"`
	Max    float64 `json:"max"`
}

// Describe computes descriptive statistics for every numeric column.
func Describe(df dataframe.DataFrame) (map[string]ColumnStats, error) {
	cols := dataset.NumericColumns(df)
	if len(cols) == 0 {
		return nil, ErrNoNumericColumns
	}
	out := make(map[string]ColumnStats, len(cols))
	for _, name := range cols {
		out[name] = describeColumn(dataset.Floats(df, name))
	}
	return out, nil
}

func describeColumn(values []float64) ColumnStats {
	defined := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			defined = append(defined, v)
		}
	}
	cs := ColumnStats{Count: len(defined)}
	if len(defined) == 0 {
		return cs
	}
	sort.Float64s(defined)
	cs.Mean = stat.Mean(defined, nil)
	if len(defined) > 1 {
		cs.Std = stat.StdDev(defined, nil)
	}
	cs.Min = defined[0]
	cs.Max = defined[len(defined)-1]
	cs.Q25 = stat.Quantile(0.25, stat.Empirical, defined, nil)
	cs.Median = stat.Quantile(0.5, stat.Empirical, defined, nil)
	cs.Q75 = stat.Quantile(0.75, stat.Empirical, defined, nil)
	return cs
}
