package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Palette used for styled output.
var (
	colorError   = lipgloss.Color("#f38ba8")
	colorDim     = lipgloss.Color("#6c7086")
	colorWarn    = lipgloss.Color("#f9e2af")
	colorHint    = lipgloss.Color("#89b4fa")
	colorSuccess = lipgloss.Color("#a6e3a1")
	colorText    = lipgloss.Color("#cdd6f4")
)

// Text outputs plain text to the formatter's writer
func (f *Formatter) Text(format string, args ...interface{}) {
	fmt.Fprintf(f.writer, format, args...)
}

// Textln outputs plain text with a newline to the formatter's writer
func (f *Formatter) Textln(format string, args ...interface{}) {
	fmt.Fprintf(f.writer, format+"\n", args...)
}

// Line outputs a blank line
func (f *Formatter) Line() {
	fmt.Fprintln(f.writer)
}

// Println writes text with newline to the formatter's writer
func (f *Formatter) Println(v ...interface{}) {
	fmt.Fprintln(f.writer, v...)
}

// Errorln writes msg with a red "Error:" prefix.
func (f *Formatter) Errorln(msg string) {
	prefix := f.renderer.NewStyle().Foreground(colorError).Bold(true).Render("Error:")
	fmt.Fprintf(f.writer, "%s %s\n", prefix, msg)
}

// Hintln writes msg in the hint color.
func (f *Formatter) Hintln(msg string) {
	fmt.Fprintln(f.writer, f.renderer.NewStyle().Foreground(colorHint).Render(msg))
}

// Dimln writes msg in a muted color.
func (f *Formatter) Dimln(msg string) {
	fmt.Fprintln(f.writer, f.renderer.NewStyle().Foreground(colorDim).Render(msg))
}

// StatusBadge returns a styled run outcome: "ok", "miss" or "error".
func (f *Formatter) StatusBadge(status string) string {
	var color lipgloss.Color
	switch strings.ToLower(status) {
	case "ok":
		color = colorSuccess
	case "miss":
		color = colorWarn
	case "error":
		color = colorError
	default:
		color = colorDim
	}
	return f.renderer.NewStyle().Foreground(color).Render(status)
}

// Table outputs tabular data in text format
type Table struct {
	writer  io.Writer
	headers []string
	rows    [][]string
	widths  []int
	header  lipgloss.Style
	sep     lipgloss.Style
}

// NewTable creates a new table with headers
func (f *Formatter) NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	return &Table{
		writer:  f.writer,
		headers: headers,
		rows:    [][]string{},
		widths:  widths,
		header:  f.renderer.NewStyle().Foreground(colorText).Bold(true),
		sep:     f.renderer.NewStyle().Foreground(colorDim),
	}
}

// AddRow adds a row to the table
func (t *Table) AddRow(cols ...string) *Table {
	for i, c := range cols {
		w := lipgloss.Width(c)
		if i < len(t.widths) && w > t.widths[i] {
			t.widths[i] = w
		}
	}
	t.rows = append(t.rows, cols)
	return t
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.rows)
}

// Render outputs the table
func (t *Table) Render() {
	if len(t.headers) == 0 {
		return
	}

	var headerParts []string
	for i, h := range t.headers {
		headerParts = append(headerParts, t.header.Render(pad(h, t.widths[i])))
	}
	fmt.Fprintf(t.writer, "  %s\n", strings.TrimRight(strings.Join(headerParts, "  "), " "))

	var sepParts []string
	for _, w := range t.widths {
		sepParts = append(sepParts, t.sep.Render(strings.Repeat("-", w)))
	}
	fmt.Fprintf(t.writer, "  %s\n", strings.Join(sepParts, "  "))

	for _, row := range t.rows {
		rowParts := make([]string, len(t.headers))
		for i := range t.headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			rowParts[i] = pad(cell, t.widths[i])
		}
		fmt.Fprintf(t.writer, "  %s\n", strings.TrimRight(strings.Join(rowParts, "  "), " "))
	}
}

func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// Truncate shortens s to at most maxWidth display columns, adding "..." when
// something was cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// Pluralize returns singular or plural form based on count
func Pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}

// CountStr returns "N item(s)" string
func CountStr(count int, singular, plural string) string {
	return fmt.Sprintf("%d %s", count, Pluralize(count, singular, plural))
}
