package stats

import (
	"errors"
	"math"
	"testing"
)

func TestFitLinearRegressionSinglePredictor(t *testing.T) {
	// ref = 2*x + 1, exactly.
	df := frame(
		floatCol("x", 1, 2, 3, 4),
		floatCol("ref", 3, 5, 7, 9),
	)
	model, fitted, err := FitLinearRegression(df, "ref", []string{"x"})
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if math.Abs(model.Intercept-1) > 1e-9 {
		t.Errorf("intercept = %v, want 1", model.Intercept)
	}
	if math.Abs(model.Coefficients[0]-2) > 1e-9 {
		t.Errorf("coefficient = %v, want 2", model.Coefficients[0])
	}
	want := []float64{3, 5, 7, 9}
	for i, p := range fitted {
		if math.Abs(p-want[i]) > 1e-9 {
			t.Errorf("fitted[%d] = %v, want %v", i, p, want[i])
		}
	}
}

func TestFitLinearRegressionMultiplePredictors(t *testing.T) {
	// ref = 1 + 2*a + 3*b, exactly.
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{2, 1, 4, 3, 6}
	ref := make([]float64, len(a))
	for i := range a {
		ref[i] = 1 + 2*a[i] + 3*b[i]
	}
	df := frame(
		floatCol("a", a...),
		floatCol("b", b...),
		floatCol("ref", ref...),
	)
	model, fitted, err := FitLinearRegression(df, "ref", []string{"a", "b"})
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if math.Abs(model.Intercept-1) > 1e-9 || math.Abs(model.Coefficients[0]-2) > 1e-9 || math.Abs(model.Coefficients[1]-3) > 1e-9 {
		t.Errorf("model = %+v, want intercept 1, coefficients [2 3]", model)
	}
	for i, p := range fitted {
		if math.Abs(p-ref[i]) > 1e-9 {
			t.Errorf("fitted[%d] = %v, want %v", i, p, ref[i])
		}
	}
}

func TestFitLinearRegressionMissingReference(t *testing.T) {
	df := frame(floatCol("x", 1, 2, 3))
	var cnf *ColumnNotFoundError
	if _, _, err := FitLinearRegression(df, "ref", []string{"x"}); !errors.As(err, &cnf) {
		t.Fatalf("expected ColumnNotFoundError, got %v", err)
	}
}

func TestFitLinearRegressionDropsUndefinedRows(t *testing.T) {
	df := frame(
		floatCol("x", 1, 2, math.NaN(), 4),
		floatCol("ref", 3, 5, 7, 9),
	)
	model, fitted, err := FitLinearRegression(df, "ref", []string{"x"})
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if len(fitted) != 3 {
		t.Fatalf("fitted %d rows, want 3", len(fitted))
	}
	if math.Abs(model.Coefficients[0]-2) > 1e-9 {
		t.Errorf("coefficient = %v, want 2", model.Coefficients[0])
	}
	if got := AlignedTarget(df, "ref", []string{"x"}); len(got) != 3 || got[2] != 9 {
		t.Errorf("aligned target = %v", got)
	}
}

func TestPredictFrame(t *testing.T) {
	model := &LinearModel{
		Intercept:    1,
		Coefficients: []float64{2},
		Predictors:   []string{"x"},
		Target:       "ref",
	}
	df := frame(floatCol("x", 0, 10))
	preds, err := model.PredictFrame(df)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if preds[0] != 1 || preds[1] != 21 {
		t.Fatalf("predictions = %v", preds)
	}

	var cnf *ColumnNotFoundError
	if _, err := model.PredictFrame(frame(floatCol("y", 1))); !errors.As(err, &cnf) {
		t.Fatalf("expected ColumnNotFoundError, got %v", err)
	}
}
