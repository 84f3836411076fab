package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// ReadCSV reads a table from CSV. The first record names the columns; cell
// types are inferred per cell: empty is Null, then integer, float, boolean,
// and finally string.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	t := New(header...)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", t.Len()+1, err)
		}
		i := t.AppendEmptyRow()
		for c, cell := range record {
			if c >= len(header) {
				break
			}
			t.Set(i, header[c], inferValue(cell))
		}
	}
	return t, nil
}

// WriteCSV writes the table as CSV, one record per row, Null as an empty
// field.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	record := make([]string, len(t.cols))
	for i := range t.rows {
		for c := range t.cols {
			record[c] = t.rows[i][c].String()
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func inferValue(cell string) Value {
	if cell == "" {
		return Null()
	}
	if n, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return IntValue(n)
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return FloatValue(f)
	}
	if cell == "true" || cell == "false" {
		return BoolValue(cell == "true")
	}
	return StringValue(cell)
}
