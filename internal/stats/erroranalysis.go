package stats

import (
	"math"

	"github.com/fieldstat/edakit/internal/dataset"
	"github.com/go-gota/gota/dataframe"
)

// ErrorReport holds per-measurement error series against a reference column.
// Absolute[m][i] = |measurement − reference| at row i; Relative[m][i] is that
// quantity divided by the reference, with division by zero and undefined
// results mapped to 0.
type ErrorReport struct {
	Reference    string               `json:"reference"`
	Measurements []string             `json:"measurements"`
	Absolute     map[string][]float64 `json:"absolute"`
	Relative     map[string][]float64 `json:"relative"`
}

// ErrorAnalysis computes absolute and relative errors between the reference
// column and each measurement column.
func ErrorAnalysis(df dataframe.DataFrame, referenceCol string, measurementCols []string) (*ErrorReport, error) {
	if !dataset.HasColumn(df, referenceCol) {
		return nil, &ColumnNotFoundError{Column: referenceCol}
	}
	for _, col := range measurementCols {
		if !dataset.HasColumn(df, col) {
			return nil, &ColumnNotFoundError{Column: col}
		}
	}

	ref := dataset.Floats(df, referenceCol)
	rep := &ErrorReport{
		Reference:    referenceCol,
		Measurements: measurementCols,
		Absolute:     make(map[string][]float64, len(measurementCols)),
		Relative:     make(map[string][]float64, len(measurementCols)),
	}
	for _, col := range measurementCols {
		vals := dataset.Floats(df, col)
		abs := make([]float64, len(ref))
		rel := make([]float64, len(ref))
		for i := range ref {
			abs[i] = math.Abs(vals[i] - ref[i])
			r := abs[i] / ref[i]
			if math.IsInf(r, 0) || math.IsNaN(r) {
				r = 0
			}
			rel[i] = r
		}
		rep.Absolute[col] = abs
		rep.Relative[col] = rel
	}
	return rep, nil
}
