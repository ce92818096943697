package plot

import (
	"fmt"
	"math"
	"sort"

	"github.com/fieldstat/edakit/internal/dataset"
	"github.com/go-gota/gota/dataframe"
	chart "github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/gonum/stat"
)

type fiveNumber struct {
	min, q1, median, q3, max float64
}

// Boxplots renders a five-number-summary box per column on a single chart:
// box between the quartiles, median line, and whiskers to the extremes.
func Boxplots(df dataframe.DataFrame, cols []string, title, path string, opts Options) error {
	opts = opts.normalized()
	if len(cols) == 0 {
		cols = dataset.NumericColumns(df)
	}
	if len(cols) == 0 {
		return fmt.Errorf("no columns to plot")
	}

	const halfWidth = 0.3
	var series []chart.Series
	ticks := make([]chart.Tick, 0, len(cols)+2)
	ticks = append(ticks, chart.Tick{Value: 0.4, Label: ""})
	for i, col := range cols {
		fn, ok := summarize(dataset.Floats(df, col))
		if !ok {
			continue
		}
		x := float64(i + 1)
		box := lineStyle(chart.GetDefaultColor(i))
		// Box outline between the quartiles.
		series = append(series, chart.ContinuousSeries{
			Name:    col,
			XValues: []float64{x - halfWidth, x + halfWidth, x + halfWidth, x - halfWidth, x - halfWidth},
			YValues: []float64{fn.q1, fn.q1, fn.q3, fn.q3, fn.q1},
			Style:   box,
		})
		// Median line.
		series = append(series, chart.ContinuousSeries{
			XValues: []float64{x - halfWidth, x + halfWidth},
			YValues: []float64{fn.median, fn.median},
			Style:   box,
		})
		// Whiskers with caps.
		for _, w := range []struct{ from, to float64 }{{fn.q3, fn.max}, {fn.q1, fn.min}} {
			series = append(series, chart.ContinuousSeries{
				XValues: []float64{x, x},
				YValues: []float64{w.from, w.to},
				Style:   box,
			})
			series = append(series, chart.ContinuousSeries{
				XValues: []float64{x - halfWidth/2, x + halfWidth/2},
				YValues: []float64{w.to, w.to},
				Style:   box,
			})
		}
		ticks = append(ticks, chart.Tick{Value: x, Label: col})
	}
	if len(series) == 0 {
		return fmt.Errorf("no defined values to plot")
	}
	ticks = append(ticks, chart.Tick{Value: float64(len(cols)) + 0.6, Label: ""})

	ch := chart.Chart{
		Title:      title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 28, Left: 16, Right: 12, Bottom: 10}},
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: 0.4, Max: float64(len(cols)) + 0.6},
			Ticks: ticks,
		},
		Series: series,
	}
	return writeChart(&ch, path)
}

// summarize computes the five-number summary of the defined values.
func summarize(values []float64) (fiveNumber, bool) {
	defined := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			defined = append(defined, v)
		}
	}
	if len(defined) == 0 {
		return fiveNumber{}, false
	}
	sort.Float64s(defined)
	return fiveNumber{
		min:    defined[0],
		q1:     stat.Quantile(0.25, stat.Empirical, defined, nil),
		median: stat.Quantile(0.5, stat.Empirical, defined, nil),
		q3:     stat.Quantile(0.75, stat.Empirical, defined, nil),
		max:    defined[len(defined)-1],
	}, true
}
