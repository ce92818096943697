package stats

import (
	"math"
	"testing"

	"github.com/go-gota/gota/series"
)

func TestSummarizeFullBattery(t *testing.T) {
	df := frame(
		floatCol("ref", 1, 2, 3, 4),
		floatCol("m1", 1.1, 2.1, 3.1, 4.1),
		floatCol("m2", 1, 4, 9, 16),
	)
	s := Summarize(df, "ref", []string{"m1", "m2"})

	if len(s.Problems) != 0 {
		t.Fatalf("unexpected problems: %v", s.Problems)
	}
	if s.Descriptive == nil || s.Correlation == nil || s.Errors == nil || s.ANOVA == nil {
		t.Fatal("missing sections in summary")
	}
	if s.Model == nil || s.Validation == nil {
		t.Fatal("missing regression section")
	}
	// m1 is ref shifted by 0.1, so the fit is essentially exact.
	if s.Validation.R2 < 0.999 {
		t.Errorf("R2 = %v, want ≈1", s.Validation.R2)
	}
}

func TestSummarizeCollectsSectionFailures(t *testing.T) {
	df := frame(
		floatCol("ref", 1, 2, 3),
	)
	// Only one measurement column: ANOVA and error analysis both degrade.
	s := Summarize(df, "ref", []string{"missing"})

	if s.Descriptive == nil {
		t.Fatal("descriptive statistics should still succeed")
	}
	if s.Errors != nil {
		t.Error("error analysis should have failed")
	}
	if s.ANOVA != nil {
		t.Error("ANOVA should have failed")
	}
	if len(s.Problems) == 0 {
		t.Fatal("expected section failures to be collected")
	}
}

func TestSummaryReportFixedKeys(t *testing.T) {
	df := frame(
		floatCol("ref", 1, 2, 3),
		floatCol("m1", 1, 2, 3),
		floatCol("m2", 2, 3, 4),
	)
	rep := Summarize(df, "ref", []string{"m1", "m2"}).Report()
	for _, key := range []string{
		"Descriptive Statistics",
		"Correlation Matrix",
		"Absolute Errors",
		"Relative Errors",
		"ANOVA Result",
	} {
		if _, ok := rep[key]; !ok {
			t.Errorf("report missing key %q", key)
		}
	}
}

func TestSummarizeNonNumericFrame(t *testing.T) {
	df := frame(series.New([]string{"a", "b"}, series.String, "label"))
	s := Summarize(df, "", nil)
	if s.Descriptive != nil || s.Correlation != nil {
		t.Error("expected numeric sections to fail on non-numeric frame")
	}
	if len(s.Problems) < 2 {
		t.Fatalf("problems = %v", s.Problems)
	}
}

func TestSummarizeWithUndefinedValues(t *testing.T) {
	df := frame(
		floatCol("ref", 1, 2, 3, math.NaN(), 5, 6),
		floatCol("m1", 1, 2, math.NaN(), 4, 5.2, 6.1),
		floatCol("m2", 2, 5, 10, 17, 26, 37),
	)
	s := Summarize(df, "ref", []string{"m1", "m2"})
	if s.Model == nil {
		t.Fatalf("fit failed on frame with undefined values: %v", s.Problems)
	}
	if s.Validation == nil {
		t.Fatal("validation missing")
	}
}
