package dataset

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"strings"

	"github.com/fieldstat/edakit/internal/utils"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// framePayload is the gob wire form of a dataset. Columns are stored typed so
// float precision survives the round trip.
type framePayload struct {
	Columns []columnPayload
}

type columnPayload struct {
	Name    string
	Kind    string // "float" or "string"
	Floats  []float64
	Strings []string
}

// SaveBinary serializes the dataset to path, optionally filtering rows first.
// The filter is a simple comparison expression, e.g. "temperature > 21,5" or
// `sensor == "probe-a"`.
func SaveBinary(df dataframe.DataFrame, path string, filter string) error {
	if filter != "" {
		cond, err := ParseFilter(filter)
		if err != nil {
			return err
		}
		df = df.Filter(cond)
		if df.Err != nil {
			return fmt.Errorf("apply filter: %w", df.Err)
		}
	}

	payload := framePayload{Columns: make([]columnPayload, df.Ncol())}
	names := df.Names()
	types := df.Types()
	for i, name := range names {
		col := columnPayload{Name: name}
		if types[i] == series.Float || types[i] == series.Int {
			col.Kind = "float"
			col.Floats = df.Col(name).Float()
		} else {
			col.Kind = "string"
			col.Strings = df.Col(name).Records()
		}
		payload.Columns[i] = col
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(payload); err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}

// LoadBinary deserializes a dataset previously written by SaveBinary.
func LoadBinary(path string) (dataframe.DataFrame, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("read dataset: %w", err)
	}
	var payload framePayload
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&payload); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("decode dataset: %w", err)
	}
	cols := make([]series.Series, len(payload.Columns))
	for i, c := range payload.Columns {
		switch c.Kind {
		case "float":
			cols[i] = series.New(c.Floats, series.Float, c.Name)
		default:
			cols[i] = series.New(c.Strings, series.String, c.Name)
		}
	}
	df := dataframe.New(cols...)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("rebuild dataframe: %w", df.Err)
	}
	return df, nil
}

// ParseFilter parses a "<column> <op> <value>" expression into a gota filter.
// Supported operators: ==, !=, >, >=, <, <=. Numeric values may use comma or
// dot decimals; anything else compares as a string (quotes optional).
func ParseFilter(expr string) (dataframe.F, error) {
	ops := []struct {
		token string
		cmp   series.Comparator
	}{
		{"==", series.Eq},
		{"!=", series.Neq},
		{">=", series.GreaterEq},
		{"<=", series.LessEq},
		{">", series.Greater},
		{"<", series.Less},
	}
	for _, op := range ops {
		idx := strings.Index(expr, op.token)
		if idx < 0 {
			continue
		}
		col := strings.TrimSpace(expr[:idx])
		val := strings.TrimSpace(expr[idx+len(op.token):])
		if col == "" || val == "" {
			return dataframe.F{}, fmt.Errorf("malformed filter expression %q", expr)
		}
		if f, ok := parseFloat(val); ok {
			return dataframe.F{Colname: col, Comparator: op.cmp, Comparando: f}, nil
		}
		val = strings.Trim(val, `"'`)
		return dataframe.F{Colname: col, Comparator: op.cmp, Comparando: val}, nil
	}
	return dataframe.F{}, fmt.Errorf("filter expression %q has no comparison operator", expr)
}
