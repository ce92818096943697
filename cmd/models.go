package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fieldstat/edakit/internal/dataset"
	"github.com/fieldstat/edakit/internal/modelstore"
	"github.com/fieldstat/edakit/internal/stats"
	"github.com/spf13/cobra"
)

var (
	trainReference    string
	trainMeasurements string
	trainPrefix       string

	predictModel string
	predictDir   string
	predictOut   string

	latestDir string
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Train, apply and locate regression model artifacts",
}

var modelsTrainCmd = &cobra.Command{
	Use:   "train <dataset>",
	Short: "Fit a regression model and save it as a timestamped artifact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		df, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		measurements := splitColumns(trainMeasurements)
		model, fitted, err := stats.FitLinearRegression(df, trainReference, measurements)
		if err != nil {
			return err
		}
		metrics, err := stats.Validate(stats.AlignedTarget(df, trainReference, measurements), fitted)
		if err != nil {
			return err
		}

		prefix := trainPrefix
		if prefix == "" {
			prefix = filepath.Join(cfg.ModelsDir, "model")
		}
		name, err := modelstore.Save(prefix, model)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ saved %s\n", name)
		fmt.Fprintf(cmd.OutOrStdout(), "MSE %.4g, MAE %.4g, R2 %.4f\n", metrics.MSE, metrics.MAE, metrics.R2)
		return nil
	},
}

var modelsPredictCmd = &cobra.Command{
	Use:   "predict <dataset>",
	Short: "Apply a saved model to a dataset",
	Long:  `Predict loads a model artifact (an explicit --model path, or the most recent artifact in --dir) and evaluates it on the dataset's predictor columns.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := predictModel
		if path == "" {
			dir := predictDir
			if dir == "" {
				dir = cfg.ModelsDir
			}
			var err error
			path, err = modelstore.Latest(dir)
			if err != nil {
				if errors.Is(err, modelstore.ErrNoModels) {
					return fmt.Errorf("no model artifacts in %s; train one first", dir)
				}
				return err
			}
		}
		model, err := modelstore.Load(path)
		if err != nil {
			return err
		}

		df, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		predictions, err := model.PredictFrame(df)
		if err != nil {
			return err
		}

		if predictOut != "" {
			values := make([]string, len(predictions))
			for i, p := range predictions {
				values[i] = fmt.Sprintf("%g", p)
			}
			if err := dataset.SaveTextArray(values, predictOut, nil); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ wrote %d predictions to %s\n", len(predictions), predictOut)
			return nil
		}
		for _, p := range predictions {
			fmt.Fprintf(cmd.OutOrStdout(), "%g\n", p)
		}
		return nil
	},
}

var modelsLatestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Print the path of the most recent model artifact",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := latestDir
		if dir == "" {
			dir = cfg.ModelsDir
		}
		path, err := modelstore.Latest(dir)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	modelsTrainCmd.Flags().StringVar(&trainReference, "reference", "", "reference (target) column")
	modelsTrainCmd.Flags().StringVar(&trainMeasurements, "measurements", "", "comma-separated predictor columns")
	modelsTrainCmd.Flags().StringVar(&trainPrefix, "prefix", "", "artifact path prefix (default: <models_dir>/model)")

	modelsPredictCmd.Flags().StringVar(&predictModel, "model", "", "model artifact path")
	modelsPredictCmd.Flags().StringVar(&predictDir, "dir", "", "directory to search for the latest artifact")
	modelsPredictCmd.Flags().StringVar(&predictOut, "out", "", "write predictions to a text file instead of stdout")

	modelsLatestCmd.Flags().StringVar(&latestDir, "dir", "", "directory to search (default: models_dir from config)")

	modelsCmd.AddCommand(modelsTrainCmd, modelsPredictCmd, modelsLatestCmd)
	rootCmd.AddCommand(modelsCmd)
}
