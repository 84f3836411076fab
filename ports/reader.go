package ports

import (
	"context"

	"github.com/caseygrun/plates/domain/table"
)

// PlateReader reads one plate measurement into a tidy table keyed by well.
// Implementations wrap instrument-specific export layouts so the app layer
// can combine plates without knowing where they came from.
type PlateReader interface {
	ReadPlate(ctx context.Context, req ReadRequest) (*table.Table, error)
}

// ReadRequest identifies one measurement to read.
type ReadRequest struct {
	Path    string // workbook or CSV file
	Sheet   string // worksheet; empty means the first sheet
	Measure string // column name for the value, e.g. "OD600"
	Blank   string // blank well subtracted and dropped, e.g. "H12"
	Format  string // export layout: "tecan" (default), "kcjunior" or "timecourse"
}
