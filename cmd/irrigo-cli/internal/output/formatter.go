// Package output formats command results as aligned tables or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Formats accepted by the --format flags.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Table writes rows under headers with columns aligned. An empty row set
// prints empty instead.
func Table(w io.Writer, headers []string, rows [][]string, empty string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	underline := make([]string, len(headers))
	for i, h := range headers {
		underline[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(underline, "\t"))

	if len(rows) == 0 {
		fmt.Fprintln(tw, empty)
	}
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// JSON writes v indented.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Write renders v as JSON or, for the table format, through table().
func Write(w io.Writer, format string, v any, table func() error) error {
	switch format {
	case FormatJSON:
		return JSON(w, v)
	case FormatTable, "":
		return table()
	}
	return fmt.Errorf("unsupported output format %q, use %q or %q", format, FormatTable, FormatJSON)
}

// Truncate shortens s to maxLen characters, adding "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."
	}
	return s[:maxLen-3] + "..."
}
