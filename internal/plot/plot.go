// Package plot renders the standard diagnostic charts of the toolkit as PNG
// files: histogram grids, boxplots, an annotated correlation heatmap,
// measurement-vs-reference scatter and residual plots. These are thin
// presentation adapters over go-chart; all numbers come from the stats and
// dataset packages.
package plot

import (
	"fmt"
	"os"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Options controls chart dimensions and histogram binning.
type Options struct {
	Width  int
	Height int
	Bins   int
}

// DefaultOptions returns the standard rendering options.
func DefaultOptions() Options {
	return Options{Width: 1280, Height: 720, Bins: 15}
}

func (o Options) normalized() Options {
	if o.Width <= 0 {
		o.Width = 1280
	}
	if o.Height <= 0 {
		o.Height = 720
	}
	if o.Bins <= 0 {
		o.Bins = 15
	}
	return o
}

func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    4,
		DotColor:    col,
	}
}

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 2,
		StrokeColor: col,
	}
}

// writeChart renders ch as PNG into path.
func writeChart(ch *chart.Chart, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()
	if err := ch.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
