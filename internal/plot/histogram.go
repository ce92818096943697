package plot

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"github.com/fieldstat/edakit/internal/dataset"
	"github.com/go-gota/gota/dataframe"
	chart "github.com/wcharczuk/go-chart/v2"
)

const titleBandHeight = 36

// Distributions renders a grid of per-column histograms into a single PNG.
func Distributions(df dataframe.DataFrame, cols []string, title, path string, opts Options) error {
	opts = opts.normalized()
	if len(cols) == 0 {
		cols = dataset.NumericColumns(df)
	}
	if len(cols) == 0 {
		return fmt.Errorf("no columns to plot")
	}

	gridCols := len(cols)
	if gridCols > 3 {
		gridCols = 3
	}
	gridRows := (len(cols) + gridCols - 1) / gridCols
	cellW := opts.Width / gridCols
	cellH := (opts.Height - titleBandHeight) / gridRows

	canvas := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	band, err := renderTitleBand(title, opts.Width, titleBandHeight)
	if err != nil {
		return err
	}
	draw.Draw(canvas, image.Rect(0, 0, opts.Width, titleBandHeight), band, image.Point{}, draw.Over)

	for i, col := range cols {
		img, err := renderHistogram(dataset.Floats(df, col), col, cellW, cellH, opts.Bins)
		if err != nil {
			return fmt.Errorf("histogram for %s: %w", col, err)
		}
		x := (i % gridCols) * cellW
		y := titleBandHeight + (i/gridCols)*cellH
		draw.Draw(canvas, image.Rect(x, y, x+cellW, y+cellH), img, image.Point{}, draw.Over)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, canvas); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// renderHistogram bins the defined values of a column and renders the counts
// as a bar chart.
func renderHistogram(values []float64, name string, width, height, bins int) (image.Image, error) {
	labels, counts := bin(values, bins)
	bars := make([]chart.Value, len(counts))
	for i := range counts {
		bars[i] = chart.Value{Value: float64(counts[i]), Label: labels[i]}
	}

	barWidth := (width - 60) / len(bars)
	if barWidth < 2 {
		barWidth = 2
	}
	bc := chart.BarChart{
		Title:      name,
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: 2,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 10, Right: 10, Bottom: 10}},
		Bars:       bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

// bin splits the defined values into equal-width bins and returns a label per
// bin (the bin center) with its count.
func bin(values []float64, bins int) (labels []string, counts []int) {
	var defined []float64
	for _, v := range values {
		if !math.IsNaN(v) {
			defined = append(defined, v)
		}
	}
	labels = make([]string, bins)
	counts = make([]int, bins)
	if len(defined) == 0 {
		for i := range labels {
			labels[i] = ""
		}
		return labels, counts
	}

	lo, hi := defined[0], defined[0]
	for _, v := range defined {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	width := (hi - lo) / float64(bins)
	if width == 0 {
		width = 1
	}
	for _, v := range defined {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}
	for i := range labels {
		center := lo + (float64(i)+0.5)*width
		labels[i] = fmt.Sprintf("%.3g", center)
	}
	return labels, counts
}

// renderTitleBand draws the grid title into a strip that is composited above
// the histogram cells.
func renderTitleBand(title string, width, height int) (image.Image, error) {
	r, err := chart.PNG(width, height)
	if err != nil {
		return nil, err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}
	r.SetFillColor(chart.ColorWhite)
	r.MoveTo(0, 0)
	r.LineTo(width, 0)
	r.LineTo(width, height)
	r.LineTo(0, height)
	r.Close()
	r.Fill()

	r.SetFont(font)
	r.SetFontSize(14)
	r.SetFontColor(chart.ColorBlack)
	tb := r.MeasureText(title)
	r.Text(title, (width-tb.Width())/2, height-12)

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}
