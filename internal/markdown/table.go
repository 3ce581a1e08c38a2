// Package markdown holds small helpers for emitting Markdown shared by the
// format handlers.
package markdown

import "strings"

// EscapeCell makes a cell value safe to embed in a pipe table.
func EscapeCell(value string) string {
	value = strings.ReplaceAll(value, "\r\n", " ")
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "|", `\|`)
	return strings.TrimSpace(value)
}

// Table renders a Markdown pipe table with the given header and data rows.
// Rows shorter than the header are padded with empty cells so the table stays
// rectangular; longer rows are truncated to the header width.
func Table(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		sb.WriteString("|")
		for i := range headers {
			sb.WriteString(" ")
			if i < len(cells) {
				sb.WriteString(EscapeCell(cells[i]))
			}
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}

	writeRow(headers)
	sb.WriteString("|")
	for range headers {
		sb.WriteString(" --- |")
	}
	sb.WriteString("\n")

	for _, row := range rows {
		writeRow(row)
	}

	return strings.TrimRight(sb.String(), "\n")
}
