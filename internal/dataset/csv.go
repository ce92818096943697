package dataset

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// CSVOptions holds options for delimited text load/save.
type CSVOptions struct {
	Encoding         string // "utf-8", "latin1"/"iso-8859-1", "windows-1252"
	Delimiter        rune   // field delimiter (default ';' on load, ',' on save)
	IncludeRowLabels bool   // save only: prepend a row-index column
}

// DefaultCSVOptions returns the defaults used by sensor exports: latin1
// encoding and semicolon delimiter.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{Encoding: "latin1", Delimiter: ';'}
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}

// LoadCSV reads a delimited text file into a dataset. Quote interpretation is
// disabled: lines are split on the raw delimiter. Comma is accepted as the
// decimal separator. Numeric coercion is all-or-nothing per column: a column
// becomes float only if every value parses; otherwise the original strings
// are kept.
func LoadCSV(path string, opts *CSVOptions) (dataframe.DataFrame, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return loadCSVFromReader(f, opts)
}

func loadCSVFromReader(r io.Reader, opts *CSVOptions) (dataframe.DataFrame, error) {
	enc, err := lookupEncoding(opts.Encoding)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	if enc != nil {
		r = enc.NewDecoder().Reader(r)
	}
	delim := opts.Delimiter
	if delim == 0 {
		delim = ';'
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	var header []string
	var rows [][]string
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		fields := strings.Split(line, string(delim))
		if header == nil {
			for i := range fields {
				fields[i] = strings.TrimSpace(fields[i])
			}
			header = fields
			continue
		}
		if len(fields) > len(header) {
			return dataframe.DataFrame{}, fmt.Errorf("read csv: line %d has %d fields, header has %d", lineNo, len(fields), len(header))
		}
		// Pad short rows to the header width.
		if len(fields) < len(header) {
			tmp := make([]string, len(header))
			copy(tmp, fields)
			fields = tmp
		}
		rows = append(rows, fields)
	}
	if err := sc.Err(); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("read csv: %w", err)
	}
	if header == nil {
		return dataframe.DataFrame{}, fmt.Errorf("read csv: empty file")
	}

	cols := make([]series.Series, len(header))
	for j, name := range header {
		values := make([]string, len(rows))
		for i, row := range rows {
			values[i] = row[j]
		}
		cols[j] = coerceColumn(name, values)
	}
	df := dataframe.New(cols...)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("build dataframe: %w", df.Err)
	}
	return df, nil
}

// coerceColumn converts a raw column to float only when every value parses to
// a defined number; any undefined entry reverts the whole column to strings.
func coerceColumn(name string, values []string) series.Series {
	floats := make([]float64, len(values))
	numeric := len(values) > 0
	for i, v := range values {
		f, ok := parseFloat(v)
		if !ok || math.IsNaN(f) {
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

// SaveCSV writes the dataset as delimited text with quoting disabled. A value
// that contains the delimiter cannot be escaped and is rejected.
func SaveCSV(df dataframe.DataFrame, path string, opts *CSVOptions) error {
	if opts == nil {
		opts = &CSVOptions{Encoding: "utf-8", Delimiter: ','}
	}
	enc, err := lookupEncoding(opts.Encoding)
	if err != nil {
		return err
	}
	delim := opts.Delimiter
	if delim == 0 {
		delim = ','
	}

	records := csvRecords(df)
	for i, rec := range records {
		for _, v := range rec {
			if strings.ContainsRune(v, delim) {
				return fmt.Errorf("write csv: value %q on line %d contains the delimiter %q and quoting is disabled", v, i+1, delim)
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()
	var w io.Writer = f
	if enc != nil {
		w = enc.NewEncoder().Writer(f)
	}
	bw := bufio.NewWriter(w)

	for i, rec := range records {
		if opts.IncludeRowLabels {
			label := ""
			if i > 0 {
				label = strconv.Itoa(i - 1)
			}
			rec = append([]string{label}, rec...)
		}
		if _, err := bw.WriteString(strings.Join(rec, string(delim))); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// csvRecords renders the frame as text rows: the header line followed by one
// row per observation, floats in their minimal representation.
func csvRecords(df dataframe.DataFrame) [][]string {
	names := df.Names()
	types := df.Types()
	cols := make([][]string, len(names))
	for j, name := range names {
		if types[j] == series.Float {
			vals := df.Col(name).Float()
			out := make([]string, len(vals))
			for i, v := range vals {
				out[i] = strconv.FormatFloat(v, 'g', -1, 64)
			}
			cols[j] = out
		} else {
			cols[j] = df.Col(name).Records()
		}
	}

	rows := make([][]string, df.Nrow()+1)
	rows[0] = names
	for i := 1; i < len(rows); i++ {
		row := make([]string, len(names))
		for j := range names {
			row[j] = cols[j][i-1]
		}
		rows[i] = row
	}
	return rows
}
