package stats

import (
	"math"

	"github.com/fieldstat/edakit/internal/dataset"
	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/stat"
)

// Matrix is a symmetric Pearson correlation matrix over numeric columns.
type Matrix struct {
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"` // row-major, Values[i][j]
}

// At returns the correlation between columns i and j.
func (m *Matrix) At(i, j int) float64 { return m.Values[i][j] }

// CorrelationMatrix computes pairwise Pearson correlations across the numeric
// columns of df. Rows where either value of a pair is undefined are excluded
// from that pair. Fewer than two numeric columns make the matrix empty, which
// is reported as ErrNoNumericColumns.
func CorrelationMatrix(df dataframe.DataFrame) (*Matrix, error) {
	cols := dataset.NumericColumns(df)
	if len(cols) < 2 {
		return nil, ErrNoNumericColumns
	}

	data := make([][]float64, len(cols))
	for i, name := range cols {
		data[i] = dataset.Floats(df, name)
	}

	n := len(cols)
	values := make([][]float64, n)
	for i := range values {
		values[i] = make([]float64, n)
		values[i][i] = 1
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := pairwiseCorrelation(data[i], data[j])
			values[i][j] = r
			values[j][i] = r
		}
	}
	return &Matrix{Columns: cols, Values: values}, nil
}

// pairwiseCorrelation correlates the pairwise-complete observations of x and
// y, clamping to [-1, 1] and mapping degenerate results to 0.
func pairwiseCorrelation(x, y []float64) float64 {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for k := range x {
		if math.IsNaN(x[k]) || math.IsNaN(y[k]) {
			continue
		}
		xs = append(xs, x[k])
		ys = append(ys, y[k])
	}
	if len(xs) < 2 {
		return 0
	}
	r := stat.Correlation(xs, ys, nil)
	switch {
	case math.IsNaN(r) || math.IsInf(r, 0):
		return 0
	case r > 1:
		return 1
	case r < -1:
		return -1
	}
	return r
}
