package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fieldstat/edakit/internal/plot"
	"github.com/fieldstat/edakit/internal/stats"
	"github.com/fieldstat/edakit/internal/utils"
	"github.com/go-gota/gota/dataframe"
	"github.com/spf13/cobra"
)

var (
	plotReference    string
	plotMeasurements string
	plotOut          string
	plotCharts       string
)

var plotCmd = &cobra.Command{
	Use:   "plot <dataset>",
	Short: "Render diagnostic charts for a dataset",
	Long:  `Plot renders the selected diagnostic charts as PNG files: hist (per-column histograms), box (boxplots), corr (correlation heatmap), trends (measurements vs reference scatter), residuals (regression residual plot). A chart that fails to render is reported and does not abort the remaining charts.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		df, err := loadDataset(args[0])
		if err != nil {
			return err
		}

		outDir := plotOut
		if outDir == "" {
			outDir = cfg.PlotsDir
		}
		if err := utils.EnsureDir(outDir); err != nil {
			return fmt.Errorf("ensure output dir: %w", err)
		}
		opts := plot.Options{Width: cfg.PlotWidth, Height: cfg.PlotHeight, Bins: cfg.HistogramBins}
		measurements := splitColumns(plotMeasurements)
		selected := splitColumns(plotCharts)
		if len(selected) == 0 {
			selected = []string{"hist", "box", "corr", "trends", "residuals"}
		}

		rendered := 0
		for _, kind := range selected {
			path := filepath.Join(outDir, kind+".png")
			var err error
			switch kind {
			case "hist":
				err = plot.Distributions(df, measurements, "Sensor Distributions", path, opts)
			case "box":
				err = plot.Boxplots(df, measurements, "Measurement Boxplots", path, opts)
			case "corr":
				var m *stats.Matrix
				if m, err = stats.CorrelationMatrix(df); err == nil {
					err = plot.CorrelationHeatmap(m, "Correlation Matrix", path, opts)
				}
			case "trends":
				err = plot.ErrorTrends(df, plotReference, measurements, path, opts)
			case "residuals":
				err = renderResiduals(df, plotReference, measurements, path, opts)
			default:
				err = fmt.Errorf("unknown chart kind %q", kind)
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "⚠ Warning: %s: %v\n", kind, err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ wrote %s\n", path)
			rendered++
		}
		if rendered == 0 {
			return fmt.Errorf("no charts rendered")
		}
		return nil
	},
}

func init() {
	plotCmd.Flags().StringVar(&plotReference, "reference", "", "reference (ground truth) column")
	plotCmd.Flags().StringVar(&plotMeasurements, "measurements", "", "comma-separated measurement columns")
	plotCmd.Flags().StringVar(&plotOut, "out", "", "output directory for PNG files (default: plots_dir from config)")
	plotCmd.Flags().StringVar(&plotCharts, "charts", "", "comma-separated chart kinds: hist,box,corr,trends,residuals (default: all)")
	rootCmd.AddCommand(plotCmd)
}

// renderResiduals fits a regression and plots its residuals against the
// reference values.
func renderResiduals(df dataframe.DataFrame, referenceCol string, measurementCols []string, path string, opts plot.Options) error {
	_, fitted, err := stats.FitLinearRegression(df, referenceCol, measurementCols)
	if err != nil {
		return err
	}
	yTrue := stats.AlignedTarget(df, referenceCol, measurementCols)
	residuals, err := stats.Residuals(yTrue, fitted)
	if err != nil {
		return err
	}
	return plot.ResidualPlot(yTrue, residuals, "Residual Plot", path, opts)
}
