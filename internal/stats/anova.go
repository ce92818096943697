package stats

import (
	"math"

	"github.com/fieldstat/edakit/internal/dataset"
	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ANOVAResult is the outcome of a one-way analysis of variance.
type ANOVAResult struct {
	F         float64 `json:"F"`
	P         float64 `json:"p"`
	DFBetween int     `json:"df_between"`
	DFWithin  int     `json:"df_within"`
}

// ANOVAColumns runs a one-way ANOVA across the values of the given
// measurement columns. At least two columns are required.
func ANOVAColumns(df dataframe.DataFrame, measurementCols []string) (*ANOVAResult, error) {
	if len(measurementCols) < 2 {
		return nil, &InsufficientColumnsError{Need: 2, Got: len(measurementCols)}
	}
	groups := make([][]float64, 0, len(measurementCols))
	for _, col := range measurementCols {
		if !dataset.HasColumn(df, col) {
			return nil, &ColumnNotFoundError{Column: col}
		}
		groups = append(groups, dataset.Floats(df, col))
	}
	return OneWayANOVA(groups...)
}

// OneWayANOVA tests whether the supplied groups have equal means. Undefined
// values are dropped per group.
func OneWayANOVA(groups ...[]float64) (*ANOVAResult, error) {
	if len(groups) < 2 {
		return nil, &InsufficientColumnsError{Need: 2, Got: len(groups)}
	}

	clean := make([][]float64, 0, len(groups))
	total := 0
	var grandSum float64
	for _, g := range groups {
		vals := make([]float64, 0, len(g))
		for _, v := range g {
			if !math.IsNaN(v) {
				vals = append(vals, v)
			}
		}
		if len(vals) == 0 {
			return nil, &FitError{Reason: "ANOVA group has no defined values"}
		}
		clean = append(clean, vals)
		total += len(vals)
		for _, v := range vals {
			grandSum += v
		}
	}
	k := len(clean)
	if total <= k {
		return nil, &FitError{Reason: "not enough observations for ANOVA"}
	}
	grandMean := grandSum / float64(total)

	var ssBetween, ssWithin float64
	for _, vals := range clean {
		mean := stat.Mean(vals, nil)
		d := mean - grandMean
		ssBetween += float64(len(vals)) * d * d
		for _, v := range vals {
			e := v - mean
			ssWithin += e * e
		}
	}

	dfB := k - 1
	dfW := total - k
	res := &ANOVAResult{DFBetween: dfB, DFWithin: dfW}
	msBetween := ssBetween / float64(dfB)
	msWithin := ssWithin / float64(dfW)
	if msWithin == 0 {
		res.F = math.Inf(1)
		res.P = 0
		return res, nil
	}
	res.F = msBetween / msWithin
	fdist := distuv.F{D1: float64(dfB), D2: float64(dfW)}
	res.P = 1 - fdist.CDF(res.F)
	return res, nil
}
