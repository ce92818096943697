package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// TextOptions holds options for flat text array load/save.
type TextOptions struct {
	Encoding  string
	Delimiter string // default "\n": one value per line
}

// LoadTextArray reads a flat array from a text file, values as strings.
func LoadTextArray(path string, opts *TextOptions) ([]string, error) {
	if opts == nil {
		opts = &TextOptions{Encoding: "utf-8"}
	}
	enc, err := lookupEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open text file: %w", err)
	}
	defer f.Close()
	var r io.Reader = f
	if enc != nil {
		r = enc.NewDecoder().Reader(f)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read text file: %w", err)
	}

	delim := opts.Delimiter
	if delim == "" || delim == "\n" {
		var out []string
		sc := bufio.NewScanner(strings.NewReader(string(b)))
		for sc.Scan() {
			out = append(out, strings.TrimRight(sc.Text(), "\r"))
		}
		return out, sc.Err()
	}
	content := strings.TrimRight(string(b), "\n")
	return strings.Split(content, delim), nil
}

// SaveTextArray writes a flat array as delimited text, one value per line by
// default.
func SaveTextArray(values []string, path string, opts *TextOptions) error {
	if opts == nil {
		opts = &TextOptions{Encoding: "utf-8"}
	}
	enc, err := lookupEncoding(opts.Encoding)
	if err != nil {
		return err
	}
	delim := opts.Delimiter
	if delim == "" {
		delim = "\n"
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create text file: %w", err)
	}
	defer f.Close()
	var w io.Writer = f
	if enc != nil {
		w = enc.NewEncoder().Writer(f)
	}
	bw := bufio.NewWriter(w)
	for i, v := range values {
		if i > 0 {
			if _, err := bw.WriteString(delim); err != nil {
				return fmt.Errorf("write text file: %w", err)
			}
		}
		if _, err := bw.WriteString(v); err != nil {
			return fmt.Errorf("write text file: %w", err)
		}
	}
	if len(values) > 0 {
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("write text file: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush text file: %w", err)
	}
	return nil
}
