package plot

import (
	"fmt"
	"os"

	"github.com/fieldstat/edakit/internal/stats"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// CorrelationHeatmap renders an annotated heatmap of the correlation matrix:
// one cell per column pair colored on a blue-white-red scale with the
// coefficient printed in the cell.
func CorrelationHeatmap(m *stats.Matrix, title, path string, opts Options) error {
	opts = opts.normalized()
	n := len(m.Columns)
	if n == 0 {
		return fmt.Errorf("empty correlation matrix")
	}

	const marginLeft, marginTop = 110, 60
	cell := (opts.Width - marginLeft - 20) / n
	if maxH := (opts.Height - marginTop - 20) / n; maxH < cell {
		cell = maxH
	}
	if cell < 24 {
		cell = 24
	}

	r, err := chart.PNG(opts.Width, opts.Height)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}

	// Background
	fillRect(r, 0, 0, opts.Width, opts.Height, chart.ColorWhite)

	r.SetFont(font)
	r.SetFontColor(chart.ColorBlack)
	r.SetFontSize(14)
	tb := r.MeasureText(title)
	r.Text(title, (opts.Width-tb.Width())/2, 30)

	// Cells with value annotations.
	r.SetFontSize(10)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := m.At(i, j)
			x := marginLeft + j*cell
			y := marginTop + i*cell
			fillRect(r, x, y, cell, cell, divergingColor(v))

			label := fmt.Sprintf("%.2f", v)
			r.SetFontColor(annotationColor(v))
			lb := r.MeasureText(label)
			r.Text(label, x+(cell-lb.Width())/2, y+cell/2+4)
		}
	}

	// Axis labels: rows on the left, columns along the top edge.
	r.SetFontColor(chart.ColorBlack)
	for i, col := range m.Columns {
		label := truncate(col, 14)
		lb := r.MeasureText(label)
		r.Text(label, marginLeft-lb.Width()-8, marginTop+i*cell+cell/2+4)
		r.Text(label, marginLeft+i*cell+4, marginTop-8)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()
	if err := r.Save(f); err != nil {
		return fmt.Errorf("render heatmap: %w", err)
	}
	return nil
}

func fillRect(r chart.Renderer, x, y, w, h int, c drawing.Color) {
	r.SetFillColor(c)
	r.MoveTo(x, y)
	r.LineTo(x+w, y)
	r.LineTo(x+w, y+h)
	r.LineTo(x, y+h)
	r.Close()
	r.Fill()
}

// divergingColor maps [-1, 1] to blue-white-red.
func divergingColor(v float64) drawing.Color {
	if v < -1 {
		v = -1
	}
	if v > 1 {
		v = 1
	}
	blue := drawing.Color{R: 59, G: 76, B: 192, A: 255}
	white := drawing.Color{R: 255, G: 255, B: 255, A: 255}
	red := drawing.Color{R: 180, G: 4, B: 38, A: 255}
	if v < 0 {
		return lerpColor(white, blue, -v)
	}
	return lerpColor(white, red, v)
}

// annotationColor keeps the value readable on saturated cells.
func annotationColor(v float64) drawing.Color {
	if v > 0.6 || v < -0.6 {
		return chart.ColorWhite
	}
	return chart.ColorBlack
}

func lerpColor(a, b drawing.Color, t float64) drawing.Color {
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return drawing.Color{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: 255}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
