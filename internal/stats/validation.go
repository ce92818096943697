package stats

import (
	"errors"

	"gonum.org/v1/gonum/stat"
)

// Metrics holds regression validation metrics. JSON keys match the report
// format consumed downstream.
type Metrics struct {
	MSE float64 `json:"MSE"`
	MAE float64 `json:"MAE"`
	R2  float64 `json:"R2"`
}

// Validate computes mean squared error, mean absolute error and the R²
// coefficient of determination of predictions against true values.
func Validate(yTrue, yPred []float64) (*Metrics, error) {
	if len(yTrue) != len(yPred) {
		return nil, &ShapeError{LenTrue: len(yTrue), LenPred: len(yPred)}
	}
	if len(yTrue) == 0 {
		return nil, errors.New("no values to validate")
	}

	n := float64(len(yTrue))
	var sse, sae float64
	for i := range yTrue {
		d := yTrue[i] - yPred[i]
		if d < 0 {
			d = -d
		}
		sae += d
		sse += d * d
	}

	mean := stat.Mean(yTrue, nil)
	var sst float64
	for _, v := range yTrue {
		d := v - mean
		sst += d * d
	}

	m := &Metrics{MSE: sse / n, MAE: sae / n}
	switch {
	case sst != 0:
		m.R2 = 1 - sse/sst
	case sse == 0:
		m.R2 = 1
	default:
		m.R2 = 0
	}
	return m, nil
}

// Residuals returns elementwise true − predicted.
func Residuals(yTrue, yPred []float64) ([]float64, error) {
	if len(yTrue) != len(yPred) {
		return nil, &ShapeError{LenTrue: len(yTrue), LenPred: len(yPred)}
	}
	out := make([]float64, len(yTrue))
	for i := range yTrue {
		out[i] = yTrue[i] - yPred[i]
	}
	return out, nil
}
