package excel

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/caseygrun/plates/domain/table"
	"github.com/caseygrun/plates/domain/well"
)

// temperatureRow labels the per-timepoint temperature readings in a kinetic
// Tecan export.
const temperatureRow = "Temp. [°C]"

// ReadTecan reads a single-plate Tecan export: a grid whose header row
// starts with "<>", plate column numbers across and row letters down.
func ReadTecan(path string, cfg ReadConfig) (*table.Table, error) {
	return NewReaderWithConfig(path, cfg).ReadPlate()
}

// ReadTecanTimecourse reads a kinetic Tecan export. The header row starts
// with "Time [s]" followed by the sampling times in seconds; each row below
// holds one well's readings, plus a temperature row that is dropped. The
// result is tidy with "well", "time" (hours) and the measure column, ordered
// by time and then well. Reading stops at the first row that is neither a
// well nor the temperature row, which skips the export's footer.
func ReadTecanTimecourse(path string, cfg ReadConfig) (*table.Table, error) {
	if cfg.Marker == "" && cfg.HeaderRow == 0 {
		cfg.Marker = "Time [s]"
	}
	r := NewReaderWithConfig(path, cfg)

	rows, err := r.loadRows()
	if err != nil {
		return nil, err
	}
	m, err := r.headerIndex(rows)
	if err != nil {
		return nil, err
	}

	header := rows[m]
	var hours []float64
	for j := 1; j < len(header); j++ {
		cell := strings.TrimSpace(header[j])
		if cell == "" {
			break
		}
		secs, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("time header cell %q is not a number of seconds", cell)
		}
		hours = append(hours, secs/3600.0)
	}
	if len(hours) == 0 {
		return nil, fmt.Errorf("header row %d of %s has no time points", m+1, path)
	}

	var wells []string
	var readings [][]table.Value
	for i := m + 1; i < len(rows); i++ {
		label := rows.cell(i, 0)
		if label == temperatureRow {
			continue
		}
		c, err := well.Parse(label)
		if err != nil {
			break
		}
		cells := make([]table.Value, len(hours))
		for j := range hours {
			cells[j] = parseCell(rows.cell(i, j+1), r.config.NAValues)
		}
		wells = append(wells, c.Name())
		readings = append(readings, cells)
	}
	if len(wells) == 0 {
		return nil, fmt.Errorf("no well rows below the time header in %s", path)
	}

	out := table.New("well", "time", r.config.Measure)
	out.SetKey("well")
	for j, h := range hours {
		for i, w := range wells {
			k := out.AppendEmptyRow()
			out.Set(k, "well", table.StringValue(w))
			out.Set(k, "time", table.FloatValue(h))
			out.Set(k, r.config.Measure, readings[i][j])
		}
	}
	if r.config.Blank != "" {
		out, err = subtractBlank(out, r.config.Measure, r.config.Blank)
		if err != nil {
			return nil, err
		}
	}
	r.log.Info("read timecourse of %d wells x %d time points from %s",
		len(wells), len(hours), filepath.Base(path))
	return out, nil
}
