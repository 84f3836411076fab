package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/caseygrun/plates/adapters/excel"
	"github.com/caseygrun/plates/adapters/render"
	"github.com/caseygrun/plates/app"
	"github.com/caseygrun/plates/domain/platemap"
	"github.com/caseygrun/plates/domain/scale"
	"github.com/caseygrun/plates/domain/table"
	"github.com/caseygrun/plates/domain/well"
	"github.com/caseygrun/plates/internal"
	"github.com/caseygrun/plates/internal/config"
	"github.com/caseygrun/plates/ports"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := internal.NewLogger(internal.ParseLogLevel(cfg.Log.Level))

	rootCmd := &cobra.Command{
		Use:   "plates",
		Short: "Compile platemaps, rescale plates, and render plate tables",
	}

	rootCmd.AddCommand(
		newReadCmd(logger),
		newCompileCmd(cfg, logger),
		newScaleCmd(),
		newWellsCmd(cfg),
		newRenderCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newReadCmd(logger *internal.Logger) *cobra.Command {
	var reader string
	var sheet string
	var measure string
	var blank string
	var platemapPath string
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "read [exports...]",
		Short: "Read plate reader exports into one tidy table",
		Long: `Read one or more plate reader exports (Excel workbooks or CSV) into a
single tidy table, one plate per file. A shared platemap joins sample
metadata onto every well; with several files a "plate" column records each
file's position.

Example: plates read day1.xlsx day2.xlsx --blank H12 --platemap layout.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var shared *platemap.Map
			if platemapPath != "" {
				data, err := os.ReadFile(platemapPath)
				if err != nil {
					return fmt.Errorf("failed to read platemap: %w", err)
				}
				m, err := platemap.ParseYAML(data)
				if err != nil {
					return err
				}
				shared = &m
			}

			specs := make([]app.PlateSpec, len(args))
			for i, path := range args {
				specs[i] = app.PlateSpec{
					Name: path,
					Requests: []ports.ReadRequest{{
						Path:    path,
						Sheet:   sheet,
						Measure: measure,
						Blank:   blank,
						Format:  reader,
					}},
				}
				if len(args) > 1 {
					specs[i].Data = map[string]any{"plate": i}
				}
			}

			svc := app.NewReadServiceWithConfig(
				excel.NewPlateSource(excel.ReadConfig{}),
				app.ReadConfig{Log: logger},
			)
			t, err := svc.ReadPlates(cmd.Context(), specs, shared)
			if err != nil {
				return err
			}

			out, err := formatTable(t, format)
			if err != nil {
				return err
			}
			return writeOutput(output, out)
		},
	}

	cmd.Flags().StringVar(&reader, "reader", "tecan", "Export format: tecan|kcjunior|timecourse")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet name (default first sheet)")
	cmd.Flags().StringVar(&measure, "measure", "", "Column name for the measured value (default OD600)")
	cmd.Flags().StringVar(&blank, "blank", "", "Blank well whose mean reading is subtracted")
	cmd.Flags().StringVar(&platemapPath, "platemap", "", "YAML platemap joined onto every plate")
	cmd.Flags().StringVar(&format, "format", "csv", "Output format: csv|markdown")
	cmd.Flags().StringVar(&output, "output", "", "Output file (default stdout)")

	return cmd
}

func newCompileCmd(cfg *config.Config, logger *internal.Logger) *cobra.Command {
	var wells int
	var rowColumn bool
	var strict bool
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "compile [platemap.yaml]",
		Short: "Compile a YAML platemap into a tidy per-well table",
		Long: `Compile a YAML platemap into a tidy table with one row per well and one
column per variable the map assigns.

Example: plates compile layout.yaml --wells 96 --row-column --format markdown`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read platemap: %w", err)
			}
			m, err := platemap.ParseYAML(data)
			if err != nil {
				return err
			}

			opts := platemap.CompileOptions{
				IncludeRowColumn: rowColumn,
				Strict:           strict,
				Log:              logger,
			}
			if wells != 0 {
				shape, err := well.ShapeForWells(wells)
				if err != nil {
					return err
				}
				opts.Shape = shape
			}
			t, err := platemap.CompileWithOptions(m, opts)
			if err != nil {
				return err
			}

			out, err := formatTable(t, format)
			if err != nil {
				return err
			}
			return writeOutput(output, out)
		},
	}

	cmd.Flags().IntVar(&wells, "wells", cfg.Plate.Wells, "Plate size override (6, 12, 24, 48, 96, 384, 1536)")
	cmd.Flags().BoolVar(&rowColumn, "row-column", false, "Include zero-based row and column position columns")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when a value does not fit its range instead of warning")
	cmd.Flags().StringVar(&format, "format", "csv", "Output format: csv|markdown")
	cmd.Flags().StringVar(&output, "output", "", "Output file (default stdout)")

	return cmd
}

func newScaleCmd() *cobra.Command {
	var from int
	var to int
	var noRowColumn bool

	cmd := &cobra.Command{
		Use:   "scale [table.csv]",
		Short: "Rescale a tidy plate table between plate sizes",
		Long: `Rescale a tidy plate table (a CSV with a well column) onto a denser or
sparser plate. Each source well maps to the rectangle of destination wells it
covers, so 24-well to 96-well yields four rows per source well.

Example: plates scale plate24.csv --from 24 --to 96`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == 0 || to == 0 {
				return fmt.Errorf("--from and --to are required")
			}
			fromShape, err := well.ShapeForWells(from)
			if err != nil {
				return err
			}
			toShape, err := well.ShapeForWells(to)
			if err != nil {
				return err
			}

			t, err := readCSVFile(args[0])
			if err != nil {
				return err
			}
			out, err := scale.PlateWithOptions(t, fromShape, toShape,
				scale.Options{IncludeRowColumn: !noRowColumn})
			if err != nil {
				return err
			}
			return out.WriteCSV(os.Stdout)
		},
	}

	cmd.Flags().IntVar(&from, "from", 0, "Source plate size")
	cmd.Flags().IntVar(&to, "to", 0, "Destination plate size")
	cmd.Flags().BoolVar(&noRowColumn, "no-row-column", false, "Drop row and column position columns from the output")

	return cmd
}

func newWellsCmd(cfg *config.Config) *cobra.Command {
	var wells int
	var byColumns bool
	var count int
	var start string

	cmd := &cobra.Command{
		Use:   "wells [ranges]",
		Short: "Expand a well range expression or walk the plate",
		Long: `Expand a range expression like "A1:B3, C4, D1:D6" into well names, one per
line. With --count, walk the plate sequentially from --start instead,
wrapping at the plate edge.

Examples:
  plates wells "A1:B3, D4" --wells 96
  plates wells --count 12 --start B1 --by-columns`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := wells
			if n == 0 {
				n = 96
			}
			shape, err := well.ShapeForWells(n)
			if err != nil {
				return err
			}

			var names []string
			switch {
			case count > 0:
				names, err = well.Walk(count, start, shape, byColumns)
			case len(args) == 1:
				names, err = expandRanges(args[0], shape, byColumns)
			default:
				return fmt.Errorf("pass a range expression or --count")
			}
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&wells, "wells", cfg.Plate.Wells, "Plate size (6, 12, 24, 48, 96, 384, 1536)")
	cmd.Flags().BoolVar(&byColumns, "by-columns", false, "Enumerate down columns instead of across rows")
	cmd.Flags().IntVar(&count, "count", 0, "Walk this many wells instead of expanding a range")
	cmd.Flags().StringVar(&start, "start", "A1", "Start well for --count walks")

	return cmd
}

func newRenderCmd() *cobra.Command {
	var grid string

	cmd := &cobra.Command{
		Use:   "render [table.csv]",
		Short: "Render a CSV table as Markdown",
		Long: `Render a CSV table as a Markdown pipe table, or pivot one column into a
plate-shaped grid with --grid.

Example: plates render results.csv --grid OD600`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readCSVFile(args[0])
			if err != nil {
				return err
			}
			if grid != "" {
				out, err := render.PlateGrid(t, grid)
				if err != nil {
					return err
				}
				fmt.Print(out)
				return nil
			}
			fmt.Print(render.Markdown(t))
			return nil
		},
	}

	cmd.Flags().StringVar(&grid, "grid", "", "Pivot this column into a plate-shaped grid")

	return cmd
}

func expandRanges(expr string, shape well.Shape, byColumns bool) ([]string, error) {
	spans, err := well.ParseRanges(expr, shape)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, s := range spans {
		for _, c := range s.Coordinates(byColumns) {
			names = append(names, c.Name())
		}
	}
	return names, nil
}

func formatTable(t *table.Table, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "csv":
		var buf bytes.Buffer
		if err := t.WriteCSV(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "markdown":
		return []byte(render.Markdown(t)), nil
	default:
		return nil, fmt.Errorf("unsupported format %q (expected csv or markdown)", format)
	}
}

func readCSVFile(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table: %w", err)
	}
	defer f.Close()
	return table.ReadCSV(f)
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}
