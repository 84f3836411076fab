// Package render turns tables into Markdown pipe tables, HTML, and
// plate-shaped grid previews.
package render

import (
	"errors"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"

	"github.com/caseygrun/plates/domain/table"
)

// Markdown renders a table as a GitHub-flavored pipe table. Null cells render
// empty; pipes and newlines inside cells are escaped so the table survives a
// round trip through a Markdown parser.
func Markdown(t *table.Table) string {
	cols := t.Columns()
	if len(cols) == 0 {
		return ""
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		b.WriteString("|")
		for _, c := range cells {
			b.WriteString(" ")
			b.WriteString(c)
			b.WriteString(" |")
		}
		b.WriteString("\n")
	}

	header := make([]string, len(cols))
	rule := make([]string, len(cols))
	for i, name := range cols {
		header[i] = escapeCell(name)
		rule[i] = "---"
	}
	writeRow(header)
	writeRow(rule)

	cells := make([]string, len(cols))
	for i := 0; i < t.Len(); i++ {
		for j, name := range cols {
			cells[j] = escapeCell(t.At(i, name).String())
		}
		writeRow(cells)
	}
	return b.String()
}

// HTML renders a table to an HTML fragment by parsing its pipe table form
// with the Tables extension enabled.
func HTML(t *table.Table) ([]byte, error) {
	if t == nil || len(t.Columns()) == 0 {
		return nil, errors.New("cannot render a table with no columns")
	}
	p := parser.NewWithExtensions(parser.Tables)
	return markdown.ToHTML([]byte(Markdown(t)), p, nil), nil
}

// PlateGrid pivots one column of a tidy plate table into a plate-shaped pipe
// table: row letters down the side, column numbers across the top, and the
// corner labeled "<>" the way plate reader exports do.
func PlateGrid(t *table.Table, valueColumn string) (string, error) {
	wide, err := table.TidyToWide(t, valueColumn)
	if err != nil {
		return "", err
	}
	if err := wide.RenameColumn("plate_row", "<>"); err != nil {
		return "", err
	}
	return Markdown(wide), nil
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
