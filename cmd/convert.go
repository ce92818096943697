package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fieldstat/edakit/internal/dataset"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	convertFilter    string
	convertRenameMap string
	convertValueMap  string
	convertRowLabels bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Load a dataset, apply mappings/filters, and save it",
	Long:  `Convert loads a dataset (CSV or binary), optionally renames columns via a YAML mapping file, translates values via a YAML value-mapping file, filters rows, and writes the result. The output format follows the output extension: .pkl/.bin for binary, anything else for CSV.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		df, err := loadDataset(args[0])
		if err != nil {
			return err
		}

		if convertRenameMap != "" {
			mapping, err := readRenameMapping(convertRenameMap)
			if err != nil {
				return err
			}
			df, err = dataset.RenameColumns(df, mapping)
			if err != nil {
				return fmt.Errorf("rename columns: %w", err)
			}
		}
		if convertValueMap != "" {
			mapping, err := readValueMapping(convertValueMap)
			if err != nil {
				return err
			}
			df = dataset.ApplyValueMapping(df, mapping)
		}

		out := args[1]
		lower := strings.ToLower(out)
		if strings.HasSuffix(lower, ".pkl") || strings.HasSuffix(lower, ".bin") {
			if err := dataset.SaveBinary(df, out, convertFilter); err != nil {
				return err
			}
		} else {
			if convertFilter != "" {
				cond, err := dataset.ParseFilter(convertFilter)
				if err != nil {
					return err
				}
				df = df.Filter(cond)
				if df.Err != nil {
					return fmt.Errorf("apply filter: %w", df.Err)
				}
			}
			opts := csvOptions()
			opts.Delimiter = ','
			opts.Encoding = "utf-8"
			opts.IncludeRowLabels = convertRowLabels
			if err := dataset.SaveCSV(df, out, opts); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ wrote %s (%d rows, %d columns)\n", out, df.Nrow(), df.Ncol())
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertFilter, "filter", "", `row filter expression, e.g. "temperature > 21,5"`)
	convertCmd.Flags().StringVar(&convertRenameMap, "rename-map", "", "YAML file mapping every column name to its new name")
	convertCmd.Flags().StringVar(&convertValueMap, "value-map", "", "YAML file with per-column value translations")
	convertCmd.Flags().BoolVar(&convertRowLabels, "row-labels", false, "include a row-index column when writing CSV")
	rootCmd.AddCommand(convertCmd)
}

func readRenameMapping(path string) (map[string]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rename map: %w", err)
	}
	var m map[string]string
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse rename map: %w", err)
	}
	return m, nil
}

func readValueMapping(path string) (map[string]map[string]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read value map: %w", err)
	}
	var m map[string]map[string]string
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse value map: %w", err)
	}
	return m, nil
}
