package query

import (
	"fmt"
	"strings"
)

// Field is one ordered key/value cell of a result row. Keys only surface in
// labeled mode; raw mode joins the values.
type Field struct {
	Key   string
	Value string
}

// Row is one result record in output order.
type Row []Field

// Render turns rows into the final output text. Raw mode emits one
// semicolon-joined line per row. Labeled mode emits one block per row,
// numbered in final sorted order starting at 1, blocks separated by a blank
// line. An empty result renders as an empty string in both modes.
func Render(rows []Row, labeled bool) string {
	if len(rows) == 0 {
		return ""
	}
	var sb strings.Builder
	if !labeled {
		for _, row := range rows {
			values := make([]string, len(row))
			for i, f := range row {
				values[i] = f.Value
			}
			sb.WriteString(strings.Join(values, ";"))
			sb.WriteByte('\n')
		}
		return sb.String()
	}
	for i, row := range rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "--- %d ---\n", i+1)
		for _, f := range row {
			fmt.Fprintf(&sb, "%s: %s\n", f.Key, f.Value)
		}
	}
	return sb.String()
}

// money renders a monetary amount with three decimals.
func money(v float64) string {
	return fmt.Sprintf("%.3f", v)
}
