// Package csvtable reads and writes the header-keyed CSV files exchanged with
// ExoFOP, the footprint service and the local data directory.
package csvtable

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	pkgerrors "github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Table is a CSV file held in memory. Every row has exactly len(Header) fields.
type Table struct {
	Header []string
	Rows   [][]string
	index  map[string]int
}

func New(header []string, rows [][]string) *Table {
	t := &Table{Header: header, Rows: rows}
	t.buildIndex()
	return t
}

func (t *Table) buildIndex() {
	t.index = make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		// first occurrence wins for duplicated headers
		if _, ok := t.index[h]; !ok {
			t.index[h] = i
		}
	}
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// Has reports whether the table has a column named col.
func (t *Table) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// Value returns the cell at row/col, or "" when the column does not exist.
func (t *Table) Value(row int, col string) string {
	i, ok := t.index[col]
	if !ok {
		return ""
	}
	return t.Rows[row][i]
}

// Decode converts raw file bytes to UTF-8. UTF-8 and UTF-16 inputs are
// recognized by content and BOM; anything else is read as Windows-1252.
func Decode(data []byte) ([]byte, error) {
	if utf8.Valid(data) || bytes.HasPrefix(data, bomUTF16LE) || bytes.HasPrefix(data, bomUTF16BE) {
		out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
		return out, err
	}
	out, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	return out, err
}

// Read parses a CSV stream with a header row. Short rows are padded and long
// rows truncated to the header width. A header-only input yields zero rows.
func Read(r io.Reader) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "reading csv")
	}
	decoded, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("encoding detection failed: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty file: no header row found")
		}
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed csv: %w", err)
		}
		if len(row) == 1 && row[0] == "" && len(header) > 1 {
			continue
		}
		switch {
		case len(row) < len(header):
			padded := make([]string, len(header))
			copy(padded, row)
			row = padded
		case len(row) > len(header):
			row = row[:len(header)]
		}
		rows = append(rows, row)
	}
	return New(header, rows), nil
}

func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Read(f)
	if err != nil {
		return nil, pkgerrors.Wrap(err, path)
	}
	return t, nil
}

// Write emits header and rows as CSV.
func Write(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// WriteFile replaces path atomically: readers see either the old file or the complete new one.
func WriteFile(path string, header []string, rows [][]string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return pkgerrors.Wrapf(err, "creating %s", dir)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, header, rows); err != nil {
		tmp.Close()
		return pkgerrors.Wrapf(err, "writing %s", path)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
