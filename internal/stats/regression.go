package stats

import (
	"math"

	"github.com/fieldstat/edakit/internal/dataset"
	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/mat"
)

// LinearModel is an ordinary least squares fit predicting the target column
// from one or more predictor columns. The zero value is not usable; obtain a
// model from FitLinearRegression.
type LinearModel struct {
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
	Predictors   []string  `json:"predictors"`
	Target       string    `json:"target"`
}

// Predict evaluates the model on rows of predictor values. Each row must hold
// one value per predictor, in model order.
func (m *LinearModel) Predict(rows [][]float64) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		y := m.Intercept
		for j, c := range m.Coefficients {
			y += c * row[j]
		}
		out[i] = y
	}
	return out
}

// PredictFrame evaluates the model on the dataset's predictor columns.
func (m *LinearModel) PredictFrame(df dataframe.DataFrame) ([]float64, error) {
	cols := make([][]float64, len(m.Predictors))
	for j, name := range m.Predictors {
		if !dataset.HasColumn(df, name) {
			return nil, &ColumnNotFoundError{Column: name}
		}
		cols[j] = dataset.Floats(df, name)
	}
	n := df.Nrow()
	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, len(cols))
		for j := range cols {
			row[j] = cols[j][i]
		}
		rows[i] = row
	}
	return m.Predict(rows), nil
}

// FitLinearRegression fits an OLS model with intercept using the measurement
// columns as predictors and the reference column as target. It supports a
// single predictor or several. Rows with undefined values in any used column
// are dropped before fitting. Returns the model and its in-sample predictions
// for the fitted rows.
func FitLinearRegression(df dataframe.DataFrame, referenceCol string, measurementCols []string) (*LinearModel, []float64, error) {
	if !dataset.HasColumn(df, referenceCol) {
		return nil, nil, &ColumnNotFoundError{Column: referenceCol}
	}
	if len(measurementCols) == 0 {
		return nil, nil, &InsufficientColumnsError{Need: 1, Got: 0}
	}
	for _, col := range measurementCols {
		if !dataset.HasColumn(df, col) {
			return nil, nil, &ColumnNotFoundError{Column: col}
		}
	}

	rows, target := definedRows(df, referenceCol, measurementCols)
	k := len(measurementCols)
	if len(rows) <= k {
		return nil, nil, &FitError{Reason: "not enough defined rows for regression"}
	}

	// Design matrix with leading intercept column.
	x := mat.NewDense(len(rows), k+1, nil)
	yv := mat.NewDense(len(rows), 1, nil)
	for i, row := range rows {
		x.Set(i, 0, 1)
		for j, v := range row {
			x.Set(i, j+1, v)
		}
		yv.Set(i, 0, target[i])
	}

	var qr mat.QR
	qr.Factorize(x)
	var beta mat.Dense
	if err := qr.SolveTo(&beta, false, yv); err != nil {
		return nil, nil, &FitError{Reason: "singular design matrix", Err: err}
	}

	model := &LinearModel{
		Intercept:    beta.At(0, 0),
		Coefficients: make([]float64, k),
		Predictors:   append([]string(nil), measurementCols...),
		Target:       referenceCol,
	}
	for j := 0; j < k; j++ {
		model.Coefficients[j] = beta.At(j+1, 0)
	}
	return model, model.Predict(rows), nil
}

// AlignedTarget returns the reference values of the rows a regression on the
// given columns would fit, aligned with the predictions returned by
// FitLinearRegression.
func AlignedTarget(df dataframe.DataFrame, referenceCol string, measurementCols []string) []float64 {
	_, target := definedRows(df, referenceCol, measurementCols)
	return target
}

// definedRows selects the rows fully defined across target and predictors,
// returning predictor rows and the aligned target values.
func definedRows(df dataframe.DataFrame, referenceCol string, measurementCols []string) ([][]float64, []float64) {
	y := dataset.Floats(df, referenceCol)
	preds := make([][]float64, len(measurementCols))
	for j, col := range measurementCols {
		preds[j] = dataset.Floats(df, col)
	}

	var rows [][]float64
	var target []float64
	for i := range y {
		if math.IsNaN(y[i]) {
			continue
		}
		row := make([]float64, len(preds))
		ok := true
		for j := range preds {
			if math.IsNaN(preds[j][i]) {
				ok = false
				break
			}
			row[j] = preds[j][i]
		}
		if !ok {
			continue
		}
		rows = append(rows, row)
		target = append(target, y[i])
	}
	return rows, target
}
