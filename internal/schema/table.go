package schema

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// Table is a raw delimited table: a header and rows of string cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// Index returns the position of column or -1.
func (t Table) Index(column string) int {
	for i, name := range t.Header {
		if name == column {
			return i
		}
	}
	return -1
}

// Has reports whether the header contains column.
func (t Table) Has(column string) bool {
	return t.Index(column) >= 0
}

// Clone deep-copies the table so migrations never alias the caller's slices.
func (t Table) Clone() Table {
	out := Table{
		Header: append([]string(nil), t.Header...),
		Rows:   make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}

// Rename changes the header name of column from to to. No-op when from is absent.
func (t *Table) Rename(from, to string) {
	if idx := t.Index(from); idx >= 0 {
		t.Header[idx] = to
	}
}

// AddColumn appends an empty column.
func (t *Table) AddColumn(column string) {
	t.Header = append(t.Header, column)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], "")
	}
}

// Project keeps exactly columns, in order. Columns must all be present.
func (t Table) Project(columns []string) Table {
	idx := make([]int, len(columns))
	for i, column := range columns {
		idx[i] = t.Index(column)
	}
	out := Table{
		Header: append([]string(nil), columns...),
		Rows:   make([][]string, len(t.Rows)),
	}
	for r, row := range t.Rows {
		projected := make([]string, len(columns))
		for i, src := range idx {
			if src >= 0 && src < len(row) {
				projected[i] = row[src]
			}
		}
		out.Rows[r] = projected
	}
	return out
}

// ReadTable decodes CSV. An empty input yields an empty table. Short rows are padded.
func ReadTable(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Table{}, nil
	}
	if err != nil {
		return Table{}, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = trimBOM(header[0])
	}

	table := Table{Header: header}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("read row %d: %w", len(table.Rows)+1, err)
		}
		for len(record) < len(header) {
			record = append(record, "")
		}
		table.Rows = append(table.Rows, record)
	}
	return table, nil
}

// WriteTable encodes the table as CSV with a header line.
func WriteTable(w io.Writer, t Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Header); err != nil {
		return err
	}
	if err := writer.WriteAll(t.Rows); err != nil {
		return err
	}
	return writer.Error()
}

func trimBOM(s string) string {
	const bom = "\ufeff"
	if len(s) >= len(bom) && s[:len(bom)] == bom {
		return s[len(bom):]
	}
	return s
}
