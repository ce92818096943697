package cmd

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	cfgpkg "github.com/fieldstat/edakit/internal/config"
	"github.com/fieldstat/edakit/internal/dataset"
	"github.com/go-gota/gota/dataframe"
	"github.com/spf13/cobra"
)

var (
	// Global flags (wired to config)
	cfgFile          string
	flagCSVEncoding  string
	flagCSVDelimiter string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "edakit",
	Short: "edakit: exploratory data analysis for sensor datasets",
	Long:  `edakit loads tabular sensor data, computes descriptive statistics, correlations, error metrics, ANOVA and linear regression, renders diagnostic plots, and manages trained model artifacts.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.edakit/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagCSVEncoding, "csv-encoding", "", "CSV encoding: utf-8, latin1, windows-1252 (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagCSVDelimiter, "csv-delimiter", "", "CSV field delimiter (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands with built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{CSVEncoding: "latin1", CSVDelimiter: ";", PlotsDir: ".", PlotWidth: 1280, PlotHeight: 720, HistogramBins: 15}
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("csv-encoding") && flagCSVEncoding != "" {
		cfg.CSVEncoding = flagCSVEncoding
	}
	if f.Changed("csv-delimiter") && flagCSVDelimiter != "" {
		cfg.CSVDelimiter = flagCSVDelimiter
	}
}

// csvOptions builds load/save options from the active configuration.
func csvOptions() *dataset.CSVOptions {
	opts := dataset.DefaultCSVOptions()
	if cfg != nil {
		if cfg.CSVEncoding != "" {
			opts.Encoding = cfg.CSVEncoding
		}
		if cfg.CSVDelimiter != "" {
			d, _ := utf8.DecodeRuneInString(cfg.CSVDelimiter)
			opts.Delimiter = d
		}
	}
	return opts
}

// loadDataset reads a dataset from path: binary artifacts by extension,
// delimited text otherwise.
func loadDataset(path string) (dataframe.DataFrame, error) {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".pkl") || strings.HasSuffix(lower, ".bin") {
		return dataset.LoadBinary(path)
	}
	return dataset.LoadCSV(path, csvOptions())
}

// splitColumns parses a comma-separated column list flag.
func splitColumns(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
