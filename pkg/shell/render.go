package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/doodlesbykumbi/registrar/pkg/university"
)

const (
	boxRule  = "============================================"
	lineRule = "--------------------------------------------"
)

// box prints a numbered menu. Entry 0 always returns.
func box(w io.Writer, header string, items []string) {
	_, _ = fmt.Fprintln(w, boxRule)
	_, _ = fmt.Fprintln(w, header)
	_, _ = fmt.Fprintln(w, boxRule)
	for i, item := range items {
		_, _ = fmt.Fprintf(w, "%d] %s\n", i+1, item)
	}
	_, _ = fmt.Fprintln(w, "0] --return--")
	_, _ = fmt.Fprintln(w, boxRule)
}

// renderResult prints rows as a table.
func renderResult(w io.Writer, result university.Result) {
	if result.Len() == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(result.Columns))
	for i, col := range result.Columns {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, r := range result.Rows {
		row := make(table.Row, len(r))
		for i, v := range r {
			row[i] = v
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", result.Len())
}

// renderLines prints free-form lines between rules.
func renderLines(w io.Writer, lines []string) {
	_, _ = fmt.Fprintln(w, lineRule)
	if len(lines) > 0 {
		_, _ = fmt.Fprintln(w, strings.Join(lines, "\n"))
	}
	_, _ = fmt.Fprintln(w, lineRule)
}
