package dataset

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCSVCommaDecimals(t *testing.T) {
	path := writeFile(t, "data.csv", "ref;probe;label\n1,5;2;a\n2,5;3;b\n")
	df, err := LoadCSV(path, &CSVOptions{Encoding: "utf-8", Delimiter: ';'})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := df.Col("ref").Float(); !reflect.DeepEqual(got, []float64{1.5, 2.5}) {
		t.Fatalf("ref = %v", got)
	}
	if df.Col("label").Type() != series.String {
		t.Fatalf("label type = %v, want string", df.Col("label").Type())
	}
}

func TestLoadCSVCoercionIsAllOrNothing(t *testing.T) {
	// One bad entry reverts the whole column to strings.
	path := writeFile(t, "data.csv", "a;b\n1,5;2\noops;3\n")
	df, err := LoadCSV(path, &CSVOptions{Encoding: "utf-8", Delimiter: ';'})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if df.Col("a").Type() != series.String {
		t.Fatalf("a type = %v, want string", df.Col("a").Type())
	}
	if got := df.Col("a").Records(); !reflect.DeepEqual(got, []string{"1,5", "oops"}) {
		t.Fatalf("a records = %v", got)
	}
	if df.Col("b").Type() != series.Float {
		t.Fatalf("b type = %v, want float", df.Col("b").Type())
	}
}

func TestLoadCSVLatin1AndCRLF(t *testing.T) {
	path := writeFile(t, "data.csv", "name;note\r\n1;caf\xe9\r\n")
	df, err := LoadCSV(path, &CSVOptions{Encoding: "latin1", Delimiter: ';'})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := df.Col("note").Records(); got[0] != "café" {
		t.Fatalf("note = %q, want café", got[0])
	}
}

func TestLoadCSVShortRowsPadded(t *testing.T) {
	path := writeFile(t, "data.csv", "a;b;c\nx;y\n")
	df, err := LoadCSV(path, &CSVOptions{Encoding: "utf-8", Delimiter: ';'})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if df.Ncol() != 3 || df.Nrow() != 1 {
		t.Fatalf("shape = %dx%d", df.Nrow(), df.Ncol())
	}
	if got := df.Col("c").Records(); got[0] != "" {
		t.Fatalf("padded value = %q", got[0])
	}
}

func TestLoadCSVRowTooLongFails(t *testing.T) {
	path := writeFile(t, "data.csv", "a;b\n1;2;extra\n")
	_, err := LoadCSV(path, &CSVOptions{Encoding: "utf-8", Delimiter: ';'})
	if err == nil {
		t.Fatal("expected error for row longer than header")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("error should name the offending line: %v", err)
	}
}

func TestLoadCSVEmptyFile(t *testing.T) {
	path := writeFile(t, "data.csv", "")
	if _, err := LoadCSV(path, &CSVOptions{Encoding: "utf-8", Delimiter: ';'}); err == nil {
		t.Fatal("expected error on empty file")
	}
}

func TestSaveCSVQuotingDisabled(t *testing.T) {
	df := sampleFrame()
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := SaveCSV(df, path, &CSVOptions{Encoding: "utf-8", Delimiter: ','}); err != nil {
		t.Fatalf("save: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(b)
	if strings.Contains(content, `"`) {
		t.Fatalf("output contains quotes:\n%s", content)
	}
	if !strings.HasPrefix(content, "ref,probe,label\n") {
		t.Fatalf("unexpected header:\n%s", content)
	}
}

func TestSaveCSVDelimiterInValueFails(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"a,b", "c"}, series.String, "label"),
	)
	path := filepath.Join(t.TempDir(), "out.csv")
	err := SaveCSV(df, path, &CSVOptions{Encoding: "utf-8", Delimiter: ','})
	if err == nil {
		t.Fatal("expected error for value containing the delimiter")
	}
	if !strings.Contains(err.Error(), "quoting is disabled") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSaveCSVCompactFloats(t *testing.T) {
	df := dataframe.New(
		series.New([]float64{1.5, 2}, series.Float, "ref"),
	)
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := SaveCSV(df, path, &CSVOptions{Encoding: "utf-8", Delimiter: ','}); err != nil {
		t.Fatalf("save: %v", err)
	}
	b, _ := os.ReadFile(path)
	if got, want := string(b), "ref\n1.5\n2\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestSaveCSVRowLabels(t *testing.T) {
	df := sampleFrame()
	path := filepath.Join(t.TempDir(), "out.csv")
	opts := &CSVOptions{Encoding: "utf-8", Delimiter: ',', IncludeRowLabels: true}
	if err := SaveCSV(df, path, opts); err != nil {
		t.Fatalf("save: %v", err)
	}
	b, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if !strings.HasPrefix(lines[0], ",ref") {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "0,") || !strings.HasPrefix(lines[2], "1,") {
		t.Fatalf("row labels missing: %v", lines[1:])
	}
}

func TestCSVRoundTrip(t *testing.T) {
	df := sampleFrame()
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := SaveCSV(df, path, &CSVOptions{Encoding: "utf-8", Delimiter: ';'}); err != nil {
		t.Fatalf("save: %v", err)
	}
	back, err := LoadCSV(path, &CSVOptions{Encoding: "utf-8", Delimiter: ';'})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(back.Records(), df.Records()) {
		t.Fatalf("round trip mismatch:\n%v\n%v", back.Records(), df.Records())
	}
}
