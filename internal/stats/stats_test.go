package stats

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

func frame(cols ...series.Series) dataframe.DataFrame {
	return dataframe.New(cols...)
}

func floatCol(name string, vals ...float64) series.Series {
	return series.New(vals, series.Float, name)
}

func TestDescribe(t *testing.T) {
	df := frame(
		floatCol("x", 1, 2, 3, 4),
		series.New([]string{"a", "b", "c", "d"}, series.String, "label"),
	)
	desc, err := Describe(df)
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	cs, ok := desc["x"]
	if !ok {
		t.Fatalf("missing column x in %v", desc)
	}
	if cs.Count != 4 {
		t.Errorf("count = %d, want 4", cs.Count)
	}
	if cs.Mean != 2.5 {
		t.Errorf("mean = %v, want 2.5", cs.Mean)
	}
	if cs.Min != 1 || cs.Max != 4 {
		t.Errorf("min/max = %v/%v", cs.Min, cs.Max)
	}
	if cs.Q25 != 1 || cs.Median != 2 || cs.Q75 != 3 {
		t.Errorf("quartiles = %v/%v/%v", cs.Q25, cs.Median, cs.Q75)
	}
	if _, ok := desc["label"]; ok {
		t.Error("non-numeric column included in descriptive statistics")
	}
}

func TestDescribeNoNumericColumns(t *testing.T) {
	df := frame(series.New([]string{"a", "b"}, series.String, "label"))
	if _, err := Describe(df); !errors.Is(err, ErrNoNumericColumns) {
		t.Fatalf("expected ErrNoNumericColumns, got %v", err)
	}
}

func TestCorrelationMatrix(t *testing.T) {
	df := frame(
		floatCol("a", 1, 2, 3, 4),
		floatCol("b", 2, 4, 6, 8),
		floatCol("c", 4, 3, 2, 1),
	)
	m, err := CorrelationMatrix(df)
	if err != nil {
		t.Fatalf("correlation: %v", err)
	}
	if !reflect.DeepEqual(m.Columns, []string{"a", "b", "c"}) {
		t.Fatalf("columns = %v", m.Columns)
	}
	if got := m.At(0, 1); math.Abs(got-1) > 1e-12 {
		t.Errorf("corr(a,b) = %v, want 1", got)
	}
	if got := m.At(0, 2); math.Abs(got+1) > 1e-12 {
		t.Errorf("corr(a,c) = %v, want -1", got)
	}
	if m.At(1, 1) != 1 {
		t.Errorf("diagonal = %v, want 1", m.At(1, 1))
	}
	if m.At(0, 2) != m.At(2, 0) {
		t.Error("matrix not symmetric")
	}
}

func TestCorrelationMatrixTooFewColumns(t *testing.T) {
	df := frame(floatCol("a", 1, 2, 3))
	if _, err := CorrelationMatrix(df); !errors.Is(err, ErrNoNumericColumns) {
		t.Fatalf("expected ErrNoNumericColumns, got %v", err)
	}
}

func TestErrorAnalysis(t *testing.T) {
	df := frame(
		floatCol("ref", 1, 2, 0),
		floatCol("m1", 2, 4, 5),
	)
	rep, err := ErrorAnalysis(df, "ref", []string{"m1"})
	if err != nil {
		t.Fatalf("error analysis: %v", err)
	}
	if got := rep.Absolute["m1"]; !reflect.DeepEqual(got, []float64{1, 2, 5}) {
		t.Errorf("absolute = %v", got)
	}
	// Division by zero maps to 0.
	if got := rep.Relative["m1"]; !reflect.DeepEqual(got, []float64{1, 1, 0}) {
		t.Errorf("relative = %v", got)
	}
}

func TestErrorAnalysisMissingColumns(t *testing.T) {
	df := frame(floatCol("ref", 1, 2))
	var cnf *ColumnNotFoundError

	_, err := ErrorAnalysis(df, "nope", []string{"ref"})
	if !errors.As(err, &cnf) || cnf.Column != "nope" {
		t.Fatalf("expected ColumnNotFoundError for reference, got %v", err)
	}

	_, err = ErrorAnalysis(df, "ref", []string{"missing"})
	if !errors.As(err, &cnf) || cnf.Column != "missing" {
		t.Fatalf("expected ColumnNotFoundError for measurement, got %v", err)
	}
}

func TestOneWayANOVA(t *testing.T) {
	// Identical groups: no between-group variance.
	res, err := OneWayANOVA([]float64{1, 2, 3}, []float64{1, 2, 3})
	if err != nil {
		t.Fatalf("anova: %v", err)
	}
	if res.F != 0 {
		t.Errorf("F = %v, want 0", res.F)
	}
	if math.Abs(res.P-1) > 1e-12 {
		t.Errorf("p = %v, want 1", res.P)
	}

	// Shifted groups: F = 1.5 for these values.
	res, err = OneWayANOVA([]float64{1, 2, 3}, []float64{2, 3, 4})
	if err != nil {
		t.Fatalf("anova: %v", err)
	}
	if math.Abs(res.F-1.5) > 1e-12 {
		t.Errorf("F = %v, want 1.5", res.F)
	}
	if res.P <= 0 || res.P >= 1 {
		t.Errorf("p = %v, want in (0, 1)", res.P)
	}
	if res.DFBetween != 1 || res.DFWithin != 4 {
		t.Errorf("df = %d/%d", res.DFBetween, res.DFWithin)
	}
}

func TestANOVARequiresTwoColumns(t *testing.T) {
	df := frame(floatCol("a", 1, 2, 3))
	var ice *InsufficientColumnsError
	if _, err := ANOVAColumns(df, []string{"a"}); !errors.As(err, &ice) {
		t.Fatalf("expected InsufficientColumnsError, got %v", err)
	}
}

func TestValidatePerfectPredictions(t *testing.T) {
	m, err := Validate([]float64{1, 2, 3}, []float64{1, 2, 3})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if m.MSE != 0 || m.MAE != 0 || m.R2 != 1 {
		t.Fatalf("metrics = %+v, want MSE=0 MAE=0 R2=1", m)
	}
}

func TestValidateShapeMismatch(t *testing.T) {
	var se *ShapeError
	if _, err := Validate([]float64{1, 2}, []float64{1}); !errors.As(err, &se) {
		t.Fatalf("expected ShapeError, got %v", err)
	}
}

func TestResiduals(t *testing.T) {
	res, err := Residuals([]float64{3, 5, 7}, []float64{2, 5, 9})
	if err != nil {
		t.Fatalf("residuals: %v", err)
	}
	if !reflect.DeepEqual(res, []float64{1, 0, -2}) {
		t.Fatalf("residuals = %v", res)
	}
}
