// Package app wires the domain packages behind the plate-reading workflow:
// it fans file reads out through a ports.PlateReader, merges measures by
// well, attaches platemap metadata and stacks the plates into one table.
package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/caseygrun/plates/domain/platemap"
	"github.com/caseygrun/plates/domain/scale"
	"github.com/caseygrun/plates/domain/table"
	"github.com/caseygrun/plates/domain/well"
	"github.com/caseygrun/plates/internal"
	"github.com/caseygrun/plates/ports"
)

// PlateSpec describes one physical plate to read and annotate.
type PlateSpec struct {
	// Name labels the plate in errors and logs. Defaults to the first
	// request's path.
	Name string
	// Requests name the measurements to read. They are inner-joined by
	// well, one column per measure.
	Requests []ports.ReadRequest
	// Platemap is the per-plate layout, joined ahead of the measurements.
	Platemap *platemap.Map
	// ScaleFrom and ScaleTo rescale the compiled platemap between plate
	// sizes, e.g. a 96-well layout replicated onto a 384-well plate.
	ScaleFrom, ScaleTo int
	// Data holds constant columns for the whole plate, e.g. a replicate
	// number. Existing columns are only filled where they are Null.
	Data map[string]any
	// Transform, when set, rewrites the assembled plate table.
	Transform func(*table.Table) (*table.Table, error)
}

// ReadConfig tunes the read service.
type ReadConfig struct {
	MaxConcurrent int64 // concurrent file reads; 0 means 4
	Log           *internal.Logger
}

// ReadService reads measurements through a PlateReader port and assembles
// them into one tidy table.
type ReadService struct {
	reader ports.PlateReader
	sem    *semaphore.Weighted
	log    *internal.Logger
}

// NewReadService creates a service with default settings.
func NewReadService(reader ports.PlateReader) *ReadService {
	return NewReadServiceWithConfig(reader, ReadConfig{})
}

// NewReadServiceWithConfig creates a service with the given limits.
func NewReadServiceWithConfig(reader ports.PlateReader, cfg ReadConfig) *ReadService {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 4
	}
	logger := cfg.Log
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ReadService{
		reader: reader,
		sem:    semaphore.NewWeighted(cfg.MaxConcurrent),
		log:    logger.WithPrefix("ReadService"),
	}
}

type readResult struct {
	spec, req int
	t         *table.Table
	err       error
}

// ReadPlates reads every spec's measurements, merges them and stacks the
// plates. Per plate: measures are inner-joined by well, the plate's own
// platemap (optionally rescaled) is joined in front of them, constant Data
// columns are applied, and the Transform hook runs last. The plates are then
// concatenated over the union of their columns, and the shared platemap, if
// any, is left-joined onto the result.
func (s *ReadService) ReadPlates(ctx context.Context, specs []PlateSpec, shared *platemap.Map) (*table.Table, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("no plates to read")
	}
	total := 0
	for si := range specs {
		if len(specs[si].Requests) == 0 {
			return nil, fmt.Errorf("plate %q has no read requests", specName(specs, si))
		}
		total += len(specs[si].Requests)
	}

	start := time.Now()
	readCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([][]*table.Table, len(specs))
	for si := range specs {
		results[si] = make([]*table.Table, len(specs[si].Requests))
	}

	// The channel is sized for every pending read, so a goroutine can always
	// deliver its result even after an early return.
	resCh := make(chan readResult, total)
	for si := range specs {
		for ri, req := range specs[si].Requests {
			go func(si, ri int, req ports.ReadRequest) {
				if err := s.sem.Acquire(readCtx, 1); err != nil {
					resCh <- readResult{spec: si, req: ri, err: err}
					return
				}
				defer s.sem.Release(1)
				t, err := s.reader.ReadPlate(readCtx, req)
				resCh <- readResult{spec: si, req: ri, t: t, err: err}
			}(si, ri, req)
		}
	}
	for n := 0; n < total; n++ {
		select {
		case r := <-resCh:
			if r.err != nil {
				return nil, fmt.Errorf("plate %q: %w", specName(specs, r.spec), r.err)
			}
			results[r.spec][r.req] = r.t
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	s.log.Debug("%d tables read in %.2fms", total, float64(time.Since(start).Nanoseconds())/1e6)

	plates := make([]*table.Table, 0, len(specs))
	for si := range specs {
		plate, err := s.assemblePlate(specs[si], results[si])
		if err != nil {
			return nil, fmt.Errorf("plate %q: %w", specName(specs, si), err)
		}
		plates = append(plates, plate)
	}

	combined := table.Concat(plates...)
	if shared != nil {
		layout, err := platemap.Compile(*shared)
		if err != nil {
			return nil, fmt.Errorf("shared platemap: %w", err)
		}
		combined, err = combined.Join(layout, "well")
		if err != nil {
			return nil, fmt.Errorf("shared platemap: %w", err)
		}
	}
	s.log.Info("assembled %d plates into %d rows in %.2fms",
		len(specs), combined.Len(), float64(time.Since(start).Nanoseconds())/1e6)
	return combined, nil
}

// assemblePlate merges one plate's measures and metadata.
func (s *ReadService) assemblePlate(spec PlateSpec, measures []*table.Table) (*table.Table, error) {
	plate := measures[0]
	for _, m := range measures[1:] {
		joined, err := plate.InnerJoin(m, "well")
		if err != nil {
			return nil, err
		}
		plate = joined
	}

	if spec.Platemap != nil {
		layout, err := platemap.Compile(*spec.Platemap)
		if err != nil {
			return nil, err
		}
		if spec.ScaleFrom != 0 && spec.ScaleTo != 0 && spec.ScaleFrom != spec.ScaleTo {
			from, err := well.ShapeForWells(spec.ScaleFrom)
			if err != nil {
				return nil, err
			}
			to, err := well.ShapeForWells(spec.ScaleTo)
			if err != nil {
				return nil, err
			}
			layout, err = scale.Plate(layout, from, to)
			if err != nil {
				return nil, err
			}
		}
		plate, err = layout.InnerJoin(plate, "well")
		if err != nil {
			return nil, err
		}
	}

	if len(spec.Data) > 0 {
		cols := make([]string, 0, len(spec.Data))
		for col := range spec.Data {
			cols = append(cols, col)
		}
		sort.Strings(cols)
		defaults := make(map[string]table.Value, len(cols))
		for _, col := range cols {
			defaults[col] = table.ValueOf(spec.Data[col])
			if !plate.HasColumn(col) {
				plate.AddColumn(col)
			}
		}
		plate.FillNull(defaults)
	}

	if spec.Transform != nil {
		transformed, err := spec.Transform(plate)
		if err != nil {
			return nil, fmt.Errorf("transform: %w", err)
		}
		if transformed == nil {
			return nil, fmt.Errorf("transform returned no table")
		}
		plate = transformed
	}
	return plate, nil
}

func specName(specs []PlateSpec, i int) string {
	if specs[i].Name != "" {
		return specs[i].Name
	}
	if len(specs[i].Requests) > 0 && specs[i].Requests[0].Path != "" {
		return specs[i].Requests[0].Path
	}
	return fmt.Sprintf("plate %d", i+1)
}
