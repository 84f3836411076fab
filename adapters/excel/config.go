package excel

// ReadConfig describes the layout of a plate reader export.
type ReadConfig struct {
	Sheet     string   // worksheet name; empty means the first sheet
	Marker    string   // first cell of the grid header row, e.g. "<>"
	HeaderRow int      // 1-based header row; 0 means search for Marker
	PlateRows int      // number of grid rows below the header
	Measure   string   // column name for the measured value in tidy output
	Blank     string   // blank well whose mean reading is subtracted, then dropped
	NAValues  []string // cell strings read as missing values
}

// DefaultReadConfig matches a plain single-plate Tecan export: the grid
// header starts with "<>", eight rows of a 96-well plate follow, and
// saturated cells read "OVER".
func DefaultReadConfig() ReadConfig {
	return ReadConfig{
		Marker:    "<>",
		PlateRows: 8,
		Measure:   "OD600",
		NAValues:  []string{"OVER"},
	}
}

// withDefaults fills unset fields from DefaultReadConfig. The marker is only
// defaulted when no explicit header row is given, so exports whose header
// carries no marker cell can still be read.
func (c ReadConfig) withDefaults() ReadConfig {
	def := DefaultReadConfig()
	if c.Marker == "" && c.HeaderRow == 0 {
		c.Marker = def.Marker
	}
	if c.PlateRows == 0 {
		c.PlateRows = def.PlateRows
	}
	if c.Measure == "" {
		c.Measure = def.Measure
	}
	if c.NAValues == nil {
		c.NAValues = def.NAValues
	}
	return c
}
