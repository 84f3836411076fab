// Package excel reads microplate data out of instrument exports. Plate
// readers save a workbook with a preamble, a plate-shaped grid of readings
// below a recognizable header row, and often a footer. The readers here
// locate the grid, convert it to a tidy table keyed by well, and optionally
// subtract a blank well. CSV exports of the same layouts work too.
package excel

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/xuri/excelize/v2"

	"github.com/caseygrun/plates/domain/table"
	"github.com/caseygrun/plates/domain/well"
	"github.com/caseygrun/plates/internal"
)

// Reader reads one plate export from an Excel or CSV file.
type Reader struct {
	path     string
	fileType string // "xlsx" or "csv"
	config   ReadConfig
	log      *internal.Logger
}

// NewReader creates a reader with the default Tecan-style layout.
func NewReader(path string) *Reader {
	return NewReaderWithConfig(path, DefaultReadConfig())
}

// NewReaderWithConfig creates a reader for the given layout. Unset config
// fields fall back to DefaultReadConfig; the file type is chosen by
// extension.
func NewReaderWithConfig(path string, cfg ReadConfig) *Reader {
	ext := strings.ToLower(filepath.Ext(path))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &Reader{
		path:     path,
		fileType: fileType,
		config:   cfg.withDefaults(),
		log:      internal.DefaultLogger.WithPrefix("PlateReader"),
	}
}

// ReadPlate reads the plate grid in tidy form: one row per well, keyed by
// "well", with a single column named after the configured measure. When a
// blank well is configured its mean reading is subtracted from every well
// and the blank's rows are dropped.
func (r *Reader) ReadPlate() (*table.Table, error) {
	wide, err := r.ReadGrid()
	if err != nil {
		return nil, err
	}
	return r.tidy(wide)
}

// ReadGrid reads the wide plate grid. The header row (located by marker or
// set explicitly) names the plate columns; the rows below it are labeled
// with row letters in their first cell.
func (r *Reader) ReadGrid() (*table.Table, error) {
	rows, err := r.loadRows()
	if err != nil {
		return nil, err
	}
	m, err := r.headerIndex(rows)
	if err != nil {
		return nil, err
	}

	header := rows[m]
	cols := []string{"plate_row"}
	for j := 1; j < len(header); j++ {
		cell := strings.TrimSpace(header[j])
		if cell == "" {
			break
		}
		name, err := plateColumnName(cell)
		if err != nil {
			return nil, err
		}
		cols = append(cols, name)
	}
	if len(cols) == 1 {
		return nil, fmt.Errorf("header row %d of %s has no plate columns", m+1, r.path)
	}
	if m+r.config.PlateRows >= len(rows) {
		return nil, fmt.Errorf("expected %d grid rows below row %d of %s, found %d",
			r.config.PlateRows, m+1, r.path, len(rows)-m-1)
	}

	wide := table.New(cols...)
	wide.SetKey("plate_row")
	for i := 0; i < r.config.PlateRows; i++ {
		src := m + 1 + i
		j := wide.AppendEmptyRow()
		wide.Set(j, "plate_row", table.StringValue(rows.cell(src, 0)))
		for c := 1; c < len(cols); c++ {
			wide.Set(j, cols[c], parseCell(rows.cell(src, c), r.config.NAValues))
		}
	}
	r.log.Debug("grid of %d rows x %d columns below header row %d", r.config.PlateRows, len(cols)-1, m+1)
	return wide, nil
}

// tidy melts the wide grid and applies blank subtraction.
func (r *Reader) tidy(wide *table.Table) (*table.Table, error) {
	t, err := table.WideToTidy(wide, r.config.Measure)
	if err != nil {
		return nil, err
	}
	if r.config.Blank != "" {
		t, err = subtractBlank(t, r.config.Measure, r.config.Blank)
		if err != nil {
			return nil, err
		}
	}
	r.log.Info("read %d wells of %s from %s", t.Len(), r.config.Measure, filepath.Base(r.path))
	return t, nil
}

// loadRows reads the whole sheet as raw strings.
func (r *Reader) loadRows() (rawRows, error) {
	if _, err := os.Stat(r.path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.path)
	}
	switch r.fileType {
	case "csv":
		return r.loadCSVRows()
	default:
		return r.loadExcelRows()
	}
}

func (r *Reader) loadExcelRows() (rawRows, error) {
	start := time.Now()
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := r.config.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	r.log.Debug("sheet %q of %s read in %.2fms (%d rows)",
		sheet, filepath.Base(r.path), float64(time.Since(start).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

func (r *Reader) loadCSVRows() (rawRows, error) {
	start := time.Now()
	file, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	cr := csv.NewReader(file)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	r.log.Debug("CSV file %s read in %.2fms (%d rows)",
		filepath.Base(r.path), float64(time.Since(start).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

// headerIndex locates the grid header row. An explicit HeaderRow wins; when
// a marker is also set, that row must start with it.
func (r *Reader) headerIndex(rows rawRows) (int, error) {
	if r.config.HeaderRow > 0 {
		m := r.config.HeaderRow - 1
		if m >= len(rows) {
			return 0, fmt.Errorf("header row %d is past the end of %s (%d rows)",
				r.config.HeaderRow, r.path, len(rows))
		}
		if r.config.Marker != "" && rows.cell(m, 0) != r.config.Marker {
			return 0, fmt.Errorf("unrecognized data format: row %d of %s does not start with %q",
				r.config.HeaderRow, r.path, r.config.Marker)
		}
		return m, nil
	}
	for i := range rows {
		if rows.cell(i, 0) == r.config.Marker {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unrecognized data format: no row of %s starts with %q", r.path, r.config.Marker)
}

// plateColumnName canonicalizes a grid header cell to a 1-based plate column
// number. Workbooks format the same header as "1" or "1.0" depending on the
// cell style.
func plateColumnName(cell string) (string, error) {
	if n, err := strconv.Atoi(cell); err == nil && n >= 1 {
		return strconv.Itoa(n), nil
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil && f >= 1 && f == math.Trunc(f) {
		return strconv.Itoa(int(f)), nil
	}
	return "", fmt.Errorf("grid header cell %q is not a plate column number", cell)
}

// subtractBlank subtracts the blank well's mean reading from the measure
// column and drops the blank's rows.
func subtractBlank(t *table.Table, measure, blank string) (*table.Table, error) {
	c, err := well.Parse(blank)
	if err != nil {
		return nil, err
	}
	name := c.Name()

	found := false
	var readings []float64
	for i := 0; i < t.Len(); i++ {
		if w, _ := t.At(i, "well").Str(); w != name {
			continue
		}
		found = true
		if f, ok := t.At(i, measure).Float64(); ok {
			readings = append(readings, f)
		}
	}
	if !found {
		return nil, fmt.Errorf("blank well %s is not in the plate", name)
	}
	if len(readings) == 0 {
		return nil, fmt.Errorf("blank well %s has no usable %s readings", name, measure)
	}
	mean, err := stats.Mean(readings)
	if err != nil {
		return nil, fmt.Errorf("blank well %s: %w", name, err)
	}

	out := t.Filter(func(i int) bool {
		w, _ := t.At(i, "well").Str()
		return w != name
	})
	for i := 0; i < out.Len(); i++ {
		if f, ok := out.At(i, measure).Float64(); ok {
			out.Set(i, measure, table.FloatValue(f-mean))
		}
	}
	return out, nil
}
