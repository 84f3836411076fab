package excel

import (
	"context"
	"fmt"
	"strings"

	"github.com/caseygrun/plates/domain/table"
	"github.com/caseygrun/plates/ports"
)

// PlateSource implements ports.PlateReader over Excel and CSV exports. The
// configured layout is the baseline; each request may override the sheet,
// measure and blank, and picks the export format by name.
type PlateSource struct {
	config ReadConfig
}

// NewPlateSource creates a plate source with the given baseline layout. The
// config is kept as given: each export format fills its own marker and grid
// defaults, so a zero config reads any of them.
func NewPlateSource(cfg ReadConfig) *PlateSource {
	return &PlateSource{config: cfg}
}

// ReadPlate reads one measurement as described by the request.
func (s *PlateSource) ReadPlate(ctx context.Context, req ports.ReadRequest) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := s.config
	if req.Sheet != "" {
		cfg.Sheet = req.Sheet
	}
	if req.Measure != "" {
		cfg.Measure = req.Measure
	}
	if req.Blank != "" {
		cfg.Blank = req.Blank
	}
	switch strings.ToLower(req.Format) {
	case "", "tecan":
		return ReadTecan(req.Path, cfg)
	case "kcjunior":
		return ReadKCJunior(req.Path, cfg)
	case "timecourse":
		return ReadTecanTimecourse(req.Path, cfg)
	default:
		return nil, fmt.Errorf("unsupported plate export format: %q", req.Format)
	}
}
