package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/fieldstat/edakit/internal/stats"
	"github.com/fieldstat/edakit/internal/utils"
	"github.com/spf13/cobra"
)

var (
	analyzeReference    string
	analyzeMeasurements string
	analyzeJSON         bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <dataset>",
	Short: "Run the statistical analysis battery on a dataset",
	Long:  `Analyze loads a dataset and computes descriptive statistics, the correlation matrix, absolute/relative errors against the reference column, one-way ANOVA across the measurement columns, and a regression fit with validation metrics.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		df, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		summary := stats.Summarize(df, analyzeReference, splitColumns(analyzeMeasurements))

		if analyzeJSON {
			b, err := utils.PrettyJSON(summary.Report())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		}
		printSummary(cmd, summary)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeReference, "reference", "", "reference (ground truth) column")
	analyzeCmd.Flags().StringVar(&analyzeMeasurements, "measurements", "", "comma-separated measurement columns")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "emit the full report as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func printSummary(cmd *cobra.Command, s *stats.Summary) {
	w := cmd.OutOrStdout()

	if s.Descriptive != nil {
		fmt.Fprintln(w, "[DESCRIPTIVE STATISTICS]")
		names := make([]string, 0, len(s.Descriptive))
		for name := range s.Descriptive {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			cs := s.Descriptive[name]
			fmt.Fprintf(w, "- %s: count %d, mean %.4g, std %.4g, min %.4g, 25%% %.4g, 50%% %.4g, 75%% %.4g, max %.4g\n",
				name, cs.Count, cs.Mean, cs.Std, cs.Min, cs.Q25, cs.Median, cs.Q75, cs.Max)
		}
		fmt.Fprintln(w)
	}

	if s.Correlation != nil {
		fmt.Fprintln(w, "[CORRELATION MATRIX]")
		for i, a := range s.Correlation.Columns {
			for j, b := range s.Correlation.Columns {
				if j <= i {
					continue
				}
				fmt.Fprintf(w, "- %s ~ %s: r=%.3f\n", a, b, s.Correlation.At(i, j))
			}
		}
		fmt.Fprintln(w)
	}

	if s.Errors != nil {
		fmt.Fprintln(w, "[ERROR ANALYSIS]")
		for _, col := range s.Errors.Measurements {
			abs := s.Errors.Absolute[col]
			rel := s.Errors.Relative[col]
			var sumAbs, sumRel float64
			for i := range abs {
				sumAbs += abs[i]
				sumRel += rel[i]
			}
			n := float64(len(abs))
			if n > 0 {
				fmt.Fprintf(w, "- %s vs %s: mean abs error %.4g, mean rel error %.4g\n",
					col, s.Errors.Reference, sumAbs/n, sumRel/n)
			}
		}
		fmt.Fprintln(w)
	}

	if s.ANOVA != nil {
		fmt.Fprintln(w, "[ANOVA RESULT]")
		fmt.Fprintf(w, "- F=%.4g p=%.4g (df %d/%d)\n\n", s.ANOVA.F, s.ANOVA.P, s.ANOVA.DFBetween, s.ANOVA.DFWithin)
	}

	if s.Model != nil {
		fmt.Fprintln(w, "[REGRESSION MODEL]")
		fmt.Fprintf(w, "- target %s, intercept %.4g\n", s.Model.Target, s.Model.Intercept)
		for i, p := range s.Model.Predictors {
			fmt.Fprintf(w, "- %s: coefficient %.4g\n", p, s.Model.Coefficients[i])
		}
		if s.Validation != nil {
			fmt.Fprintf(w, "- MSE %.4g, MAE %.4g, R2 %.4f\n", s.Validation.MSE, s.Validation.MAE, s.Validation.R2)
		}
		fmt.Fprintln(w)
	}

	for _, p := range s.Problems {
		fmt.Fprintln(os.Stderr, "⚠ Warning:", p)
	}
}
