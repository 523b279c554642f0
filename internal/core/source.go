package core

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptySource is returned for a source without a header row.
var ErrEmptySource = errors.New("empty source")

// RowError locates a failed row in its source table.
type RowError struct {
	Table string
	Line  int
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s line %d: %v", e.Table, e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// DirOpener opens <dir>/<name>.csv.
func DirOpener(dir string) Opener {
	return func(name string) (io.ReadCloser, error) {
		f, err := os.Open(filepath.Join(dir, name+".csv"))
		if err != nil {
			return nil, fmt.Errorf("open source %s: %w", name, err)
		}
		return f, nil
	}
}

// RecordFunc handles one data row. line is the 1-based line number in the
// source file.
type RecordFunc func(line int, row []string, idx HeaderIndex) error

// ReadRecords parses a CSV stream, checks its header against specs and
// calls fn for every non-empty data row. The first error stops the scan;
// errors from fn are wrapped in a *RowError.
func ReadRecords(r io.Reader, table string, specs []FieldSpec, fn RecordFunc) error {
	cr := csv.NewReader(NewBOMSkippingReader(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = false

	header, err := cr.Read()
	if err == io.EOF {
		return fmt.Errorf("%s: %w", table, ErrEmptySource)
	}
	if err != nil {
		return fmt.Errorf("%s: read header: %w", table, err)
	}

	idx := MakeHeaderIndex(header)
	if err := checkHeader(idx, specs); err != nil {
		return fmt.Errorf("%s: %w", table, err)
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			var parseErr *csv.ParseError
			line := 0
			if errors.As(err, &parseErr) {
				line = parseErr.Line
			}
			return &RowError{Table: table, Line: line, Err: err}
		}

		if isEmptyRow(row) {
			continue
		}

		line, _ := cr.FieldPos(0)
		if err := fn(line, row, idx); err != nil {
			return &RowError{Table: table, Line: line, Err: err}
		}
	}
}

// checkHeader fails fast when a required column is absent.
func checkHeader(idx HeaderIndex, specs []FieldSpec) error {
	var missing []string
	for _, spec := range specs {
		if !spec.Required {
			continue
		}
		if _, ok := idx[strings.ToLower(spec.Name)]; !ok {
			missing = append(missing, spec.Name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
