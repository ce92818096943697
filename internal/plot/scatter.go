package plot

import (
	"fmt"
	"math"
	"sort"

	"github.com/fieldstat/edakit/internal/dataset"
	"github.com/go-gota/gota/dataframe"
	chart "github.com/wcharczuk/go-chart/v2"
)

// ErrorTrends renders a measurement-vs-reference scatter for each measurement
// column, with the reference diagonal drawn in red.
func ErrorTrends(df dataframe.DataFrame, referenceCol string, measurementCols []string, path string, opts Options) error {
	opts = opts.normalized()
	if !dataset.HasColumn(df, referenceCol) {
		return fmt.Errorf("reference column %q not found", referenceCol)
	}
	ref := dataset.Floats(df, referenceCol)

	var series []chart.Series
	for i, col := range measurementCols {
		if !dataset.HasColumn(df, col) {
			return fmt.Errorf("measurement column %q not found", col)
		}
		vals := dataset.Floats(df, col)
		xs, ys := pairedDefined(ref, vals)
		if len(xs) == 0 {
			continue
		}
		series = append(series, chart.ContinuousSeries{
			Name:    "Measurement " + col,
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(chart.GetDefaultColor(i)),
		})
	}
	if len(series) == 0 {
		return fmt.Errorf("no defined values to plot")
	}

	diag := sortedDefined(ref)
	if len(diag) >= 2 {
		series = append(series, chart.ContinuousSeries{
			Name:    "Reference Value",
			XValues: diag,
			YValues: diag,
			Style:   lineStyle(chart.ColorRed),
		})
	}

	ch := chart.Chart{
		Title:      "Measurements vs Reference Value",
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 28, Left: 16, Right: 12, Bottom: 32}},
		XAxis:      chart.XAxis{Name: "Reference Value"},
		YAxis:      chart.YAxis{Name: "Measurements"},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return writeChart(&ch, path)
}

// ResidualPlot renders residuals against the reference values with a dashed
// red zero line.
func ResidualPlot(yTrue, residuals []float64, title, path string, opts Options) error {
	opts = opts.normalized()
	if len(yTrue) != len(residuals) {
		return fmt.Errorf("length mismatch: %d reference values vs %d residuals", len(yTrue), len(residuals))
	}
	xs, ys := pairedDefined(yTrue, residuals)
	if len(xs) == 0 {
		return fmt.Errorf("no defined values to plot")
	}

	minX, maxX := xs[0], xs[0]
	for _, x := range xs {
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
	}
	if minX == maxX {
		minX, maxX = minX-1, maxX+1
	}

	zero := chart.ContinuousSeries{
		XValues: []float64{minX, maxX},
		YValues: []float64{0, 0},
		Style: chart.Style{
			StrokeWidth:     1.5,
			StrokeColor:     chart.ColorRed,
			StrokeDashArray: []float64{5, 5},
		},
	}

	ch := chart.Chart{
		Title:      title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 28, Left: 16, Right: 12, Bottom: 32}},
		XAxis:      chart.XAxis{Name: "Reference Value"},
		YAxis:      chart.YAxis{Name: "Residuals"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Residuals",
				XValues: xs,
				YValues: ys,
				Style:   pointStyle(chart.ColorBlue),
			},
			zero,
		},
	}
	return writeChart(&ch, path)
}

// pairedDefined filters to rows where both values are defined.
func pairedDefined(x, y []float64) ([]float64, []float64) {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	return xs, ys
}

func sortedDefined(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	sort.Float64s(out)
	return out
}
