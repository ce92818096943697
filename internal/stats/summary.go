package stats

import (
	"github.com/go-gota/gota/dataframe"
)

// Summary packages the outcome of the full analysis battery. Each section holds
// either its result or nil when that analysis failed; section failures are
// collected in Problems and never abort the remaining sections.
type Summary struct {
	Descriptive map[string]ColumnStats
	Correlation *Matrix
	Errors      *ErrorReport
	ANOVA       *ANOVAResult
	Model       *LinearModel
	Validation  *Metrics
	Problems    []error
}

// Summarize runs the analysis battery on the dataset: descriptive statistics,
// correlation matrix, error analysis, one-way ANOVA, and, when a reference
// column is given, a regression fit with validation metrics.
func Summarize(df dataframe.DataFrame, referenceCol string, measurementCols []string) *Summary {
	s := &Summary{}

	desc, err := Describe(df)
	if err != nil {
		s.Problems = append(s.Problems, err)
	} else {
		s.Descriptive = desc
	}

	corr, err := CorrelationMatrix(df)
	if err != nil {
		s.Problems = append(s.Problems, err)
	} else {
		s.Correlation = corr
	}

	rep, err := ErrorAnalysis(df, referenceCol, measurementCols)
	if err != nil {
		s.Problems = append(s.Problems, err)
	} else {
		s.Errors = rep
	}

	anova, err := ANOVAColumns(df, measurementCols)
	if err != nil {
		s.Problems = append(s.Problems, err)
	} else {
		s.ANOVA = anova
	}

	if referenceCol != "" {
		model, fitted, err := FitLinearRegression(df, referenceCol, measurementCols)
		if err != nil {
			s.Problems = append(s.Problems, err)
		} else {
			s.Model = model
			_, yTrue := definedRows(df, referenceCol, measurementCols)
			if metrics, err := Validate(yTrue, fitted); err != nil {
				s.Problems = append(s.Problems, err)
			} else {
				s.Validation = metrics
			}
		}
	}
	return s
}

// Report renders the summary under its fixed section names, with failed
// sections reported as error strings. Suitable for JSON output.
func (s *Summary) Report() map[string]any {
	out := map[string]any{
		"Descriptive Statistics": s.Descriptive,
		"Correlation Matrix":     s.Correlation,
		"ANOVA Result":           s.ANOVA,
	}
	if s.Errors != nil {
		out["Absolute Errors"] = s.Errors.Absolute
		out["Relative Errors"] = s.Errors.Relative
	} else {
		out["Absolute Errors"] = nil
		out["Relative Errors"] = nil
	}
	if s.Model != nil {
		out["Regression Model"] = s.Model
	}
	if s.Validation != nil {
		out["Validation"] = s.Validation
	}
	if len(s.Problems) > 0 {
		msgs := make([]string, len(s.Problems))
		for i, err := range s.Problems {
			msgs[i] = err.Error()
		}
		out["Problems"] = msgs
	}
	return out
}
