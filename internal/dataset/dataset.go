// Package dataset provides loading, saving and column transformations for
// tabular sensor data. A dataset is a gota DataFrame: an ordered collection of
// named columns aligned by row index, with NaN as the missing-value marker.
package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// IncompleteMappingError reports columns left without an entry by a
// column-name mapping. Renaming is total: a partial mapping is rejected
// outright rather than applied partially.
type IncompleteMappingError struct {
	Columns []string
}

func (e *IncompleteMappingError) Error() string {
	return fmt.Sprintf("no mapping entry for column(s): %s", strings.Join(e.Columns, ", "))
}

// HasColumn reports whether the frame contains a column with the given name.
func HasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// NumericColumns returns the names of float and int columns, in frame order.
func NumericColumns(df dataframe.DataFrame) []string {
	names := df.Names()
	types := df.Types()
	var out []string
	for i, t := range types {
		if t == series.Float || t == series.Int {
			out = append(out, names[i])
		}
	}
	return out
}

// Floats returns the named column as float64 values, NaN for entries that are
// missing or not numeric.
func Floats(df dataframe.DataFrame, name string) []float64 {
	return df.Col(name).Float()
}

// RenameColumns renames every column of df using mapping and returns the
// renamed frame. If any existing column has no entry in mapping the operation
// fails with *IncompleteMappingError and df is returned unchanged.
func RenameColumns(df dataframe.DataFrame, mapping map[string]string) (dataframe.DataFrame, error) {
	names := df.Names()
	renamed := make([]string, len(names))
	var missing []string
	for i, n := range names {
		nn, ok := mapping[n]
		if !ok {
			missing = append(missing, n)
			continue
		}
		renamed[i] = nn
	}
	if len(missing) > 0 {
		return df, &IncompleteMappingError{Columns: missing}
	}
	out := df.Copy()
	if err := out.SetNames(renamed...); err != nil {
		return df, fmt.Errorf("rename columns: %w", err)
	}
	return out, nil
}

// ApplyValueMapping translates values per column using valueMapping. Columns
// absent from the mapping are left untouched. Values with no entry in their
// column's mapping become the missing marker (NaN). A mapped column whose
// values all parse numerically is rebuilt as a float column, so categorical
// codes mapped to numbers behave like any other measurement column.
func ApplyValueMapping(df dataframe.DataFrame, valueMapping map[string]map[string]string) dataframe.DataFrame {
	names := df.Names()
	cols := make([]series.Series, len(names))
	for i, name := range names {
		col := df.Col(name)
		vm, ok := valueMapping[name]
		if !ok {
			cols[i] = col
			continue
		}
		records := col.Records()
		mapped := make([]string, len(records))
		for j, v := range records {
			if mv, ok := vm[v]; ok {
				mapped[j] = mv
			} else {
				mapped[j] = "NaN"
			}
		}
		cols[i] = buildColumn(name, mapped)
	}
	return dataframe.New(cols...)
}

// buildColumn applies the all-or-nothing numeric coercion rule: the column is
// numeric iff every value parses as a float (comma or dot decimals); otherwise
// the original strings are kept.
func buildColumn(name string, values []string) series.Series {
	floats := make([]float64, len(values))
	numeric := len(values) > 0
	for i, v := range values {
		f, ok := parseFloat(v)
		if !ok {
			numeric = false
			break
		}
		floats[i] = f
	}
	if numeric {
		return series.New(floats, series.Float, name)
	}
	return series.New(values, series.String, name)
}

// parseFloat parses a numeric field accepting comma as the decimal separator.
func parseFloat(s string) (float64, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0, false
	}
	if strings.Contains(raw, ",") {
		raw = strings.ReplaceAll(raw, ",", ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
