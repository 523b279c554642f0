package core

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jackc/pgx/v5/pgtype"
)

// Buffer is an in-memory CSV table: a header row followed by data rows.
// Absent values are written as unquoted empty fields, which COPY reads as
// NULL.
type Buffer struct {
	header []string
	buf    bytes.Buffer
	w      *csv.Writer
	rows   int
}

// NewBuffer starts a buffer with the given header.
func NewBuffer(header ...string) *Buffer {
	b := &Buffer{header: append([]string(nil), header...)}
	b.w = csv.NewWriter(&b.buf)
	// Writes to a bytes.Buffer cannot fail.
	_ = b.w.Write(b.header)
	return b
}

// Header returns the column names.
func (b *Buffer) Header() []string {
	return append([]string(nil), b.header...)
}

// Rows returns the number of data rows written.
func (b *Buffer) Rows() int {
	return b.rows
}

// Append writes one row. The number of values must match the header.
func (b *Buffer) Append(values ...any) error {
	if len(values) != len(b.header) {
		return fmt.Errorf("row has %d values, header has %d columns", len(values), len(b.header))
	}

	record := make([]string, len(values))
	for i, v := range values {
		cell, err := FormatCell(v)
		if err != nil {
			return fmt.Errorf("column %q: %w", b.header[i], err)
		}
		record[i] = cell
	}

	if err := b.w.Write(record); err != nil {
		return err
	}
	b.rows++
	return nil
}

// Reader returns the CSV text written so far, header included.
func (b *Buffer) Reader() io.Reader {
	b.w.Flush()
	return bytes.NewReader(b.buf.Bytes())
}

// Records parses the buffer back into string records, header first.
func (b *Buffer) Records() ([][]string, error) {
	return csv.NewReader(b.Reader()).ReadAll()
}

// FormatCell renders one output value as CSV text.
func FormatCell(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.Itoa(val), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case pgtype.Text:
		if !val.Valid {
			return "", nil
		}
		return val.String, nil
	case pgtype.Int4:
		if !val.Valid {
			return "", nil
		}
		return strconv.FormatInt(int64(val.Int32), 10), nil
	case pgtype.Int8:
		if !val.Valid {
			return "", nil
		}
		return strconv.FormatInt(val.Int64, 10), nil
	case pgtype.Bool:
		if !val.Valid {
			return "", nil
		}
		return strconv.FormatBool(val.Bool), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}
