package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/dloss/adoview/internal/fields"
	"github.com/dloss/adoview/internal/records"
	"github.com/dloss/adoview/internal/textwrap"
)

// CellStyler decorates an already padded cell line. It must not change the
// visible width.
type CellStyler func(desc fields.Descriptor, line string) string

type options struct {
	cellStyler CellStyler
}

type Option func(*options)

// WithCellStyler applies styler to every body cell line.
func WithCellStyler(styler CellStyler) Option {
	return func(o *options) {
		o.cellStyler = styler
	}
}

// Layout is a rendered table split into its parts so interactive views can
// highlight or scroll individual records.
type Layout struct {
	Top       string
	Header    []string
	Separator string
	Rows      [][]string // one block of lines per record
	Bottom    string
}

// Lines flattens the layout top to bottom.
func (l Layout) Lines() []string {
	if l.Top == "" {
		return nil
	}
	lines := []string{l.Top}
	lines = append(lines, l.Header...)
	lines = append(lines, l.Separator)
	for _, row := range l.Rows {
		lines = append(lines, row...)
	}
	return append(lines, l.Bottom)
}

func (l Layout) String() string {
	return strings.Join(l.Lines(), "\n")
}

// HeaderHeight is the number of lines above the first record.
func (l Layout) HeaderHeight() int {
	return len(l.Header) + 2
}

// Render formats records as an aligned, bordered text table.
func Render(recs []records.Record, descs []fields.Descriptor, widths []int, opts ...Option) string {
	return Build(recs, descs, widths, opts...).String()
}

// Build lays out the table. Missing widths default to MinColumnWidth. All
// records are rendered; paging is up to the caller.
func Build(recs []records.Record, descs []fields.Descriptor, widths []int, opts ...Option) Layout {
	if len(descs) == 0 {
		return Layout{}
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	widths = normalizeWidths(widths, len(descs))

	layout := Layout{
		Top:       border("┌", "┬", "┐", widths),
		Separator: border("├", "┼", "┤", widths),
		Bottom:    border("└", "┴", "┘", widths),
	}

	headerCells := make([][]string, len(descs))
	for i, d := range descs {
		headerCells[i] = []string{padCell(d.Label, widths[i])}
	}
	layout.Header = joinRow(headerCells, widths, func(col int, line string) string {
		return headerStyle(descs[col]).Render(line)
	})

	layout.Rows = make([][]string, 0, len(recs))
	for _, rec := range recs {
		cells := make([][]string, len(descs))
		for i, d := range descs {
			cells[i] = cellLines(d, rec.String(d), widths[i])
		}
		layout.Rows = append(layout.Rows, joinRow(cells, widths, func(col int, line string) string {
			if o.cellStyler == nil {
				return line
			}
			return o.cellStyler(descs[col], line)
		}))
	}
	return layout
}

func headerStyle(d fields.Descriptor) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	if d.Color != "" {
		s = s.Foreground(lipgloss.Color(d.Color))
	}
	return s
}

// cellLines wraps a value to width and pads every line to exactly width.
func cellLines(d fields.Descriptor, value string, width int) []string {
	var wrapped string
	if d.Wrap == fields.WrapChunk {
		wrapped = textwrap.ChunkFixedWidth(value, width)
	} else {
		wrapped = textwrap.WrapText(value, width)
	}
	lines := textwrap.Lines(wrapped)
	for i, line := range lines {
		lines[i] = padCell(line, width)
	}
	return lines
}

func joinRow(cells [][]string, widths []int, decorate func(col int, line string) string) []string {
	height := 1
	for _, c := range cells {
		height = max(height, len(c))
	}
	out := make([]string, height)
	for lineIdx := 0; lineIdx < height; lineIdx++ {
		var b strings.Builder
		b.WriteString("│")
		for col, c := range cells {
			line := strings.Repeat(" ", widths[col])
			if lineIdx < len(c) {
				line = decorate(col, c[lineIdx])
			}
			b.WriteString(" ")
			b.WriteString(line)
			b.WriteString(" │")
		}
		out[lineIdx] = b.String()
	}
	return out
}

func border(left, mid, right string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w+2)
	}
	return left + strings.Join(parts, mid) + right
}

func padCell(value string, width int) string {
	value = strings.TrimSpace(value)
	if runewidth.StringWidth(value) > width {
		value = runewidth.Truncate(value, width, "…")
	}
	return runewidth.FillRight(value, width)
}

func normalizeWidths(widths []int, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = MinColumnWidth
		if i < len(widths) && widths[i] > 0 {
			out[i] = widths[i]
		}
	}
	return out
}
