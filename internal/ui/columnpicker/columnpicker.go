package columnpicker

import (
	"strings"

	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dloss/adoview/internal/fields"
	"github.com/dloss/adoview/internal/ui/style"
	"github.com/dloss/adoview/internal/ui/viewstate"
)

// PickedMsg is emitted as a Cmd when the user confirms a column selection.
type PickedMsg struct {
	Kind    string
	Visible []string // field ids in display order
}

type rowKind int

const (
	rowColumn rowKind = iota
	rowHeader
)

type pickerRow struct {
	kind       rowKind
	headerText string
	desc       fields.Descriptor
	checked    bool
}

// Picker is a floating overlay for selecting displayed fields.
type Picker struct {
	kind     string
	rows     []pickerRow
	cursor   int
	initial  []string // snapshot for reset
	defaults []string
	warning  string
	width    int
	height   int
}

// New creates a column picker. The displayed fields come first in their
// current order, then every other registered field.
func New(registry *fields.Registry, current []fields.Descriptor) *Picker {
	currentSet := make(map[string]bool, len(current))
	for _, d := range current {
		currentSet[d.ID] = true
	}

	rows := []pickerRow{{kind: rowHeader, headerText: "displayed"}}
	for _, d := range current {
		rows = append(rows, pickerRow{kind: rowColumn, desc: d, checked: true})
	}

	var rest []pickerRow
	for _, d := range registry.All() {
		if !currentSet[d.ID] {
			rest = append(rest, pickerRow{kind: rowColumn, desc: d})
		}
	}
	if len(rest) > 0 {
		rows = append(rows, pickerRow{kind: rowHeader, headerText: "available"})
		rows = append(rows, rest...)
	}

	p := &Picker{
		kind:     registry.Name(),
		rows:     rows,
		initial:  fields.IDsOf(current),
		defaults: registry.Defaults(),
	}
	p.cursor = p.firstSelectable()
	return p
}

func (p *Picker) SetSize(w, h int) {
	p.width = w
	p.height = h
}

func (p *Picker) boxWidth() int {
	w := 40
	if p.width > 0 && w > p.width-4 {
		w = p.width - 4
	}
	return max(w, 24)
}

func (p *Picker) firstSelectable() int {
	for i, row := range p.rows {
		if row.kind == rowColumn {
			return i
		}
	}
	return 0
}

func (p *Picker) isSelectable(i int) bool {
	return i >= 0 && i < len(p.rows) && p.rows[i].kind == rowColumn
}

func (p *Picker) moveCursor(delta int) {
	next := p.cursor + delta
	for next >= 0 && next < len(p.rows) {
		if p.isSelectable(next) {
			p.cursor = next
			return
		}
		next += delta
	}
}

// visibleIDs returns checked field ids in row order.
func (p *Picker) visibleIDs() []string {
	var result []string
	for _, row := range p.rows {
		if row.kind == rowColumn && row.checked {
			result = append(result, row.desc.ID)
		}
	}
	return result
}

func (p *Picker) checkOnly(ids []string) {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	for i := range p.rows {
		if p.rows[i].kind == rowColumn {
			p.rows[i].checked = set[p.rows[i].desc.ID]
		}
	}
}

func (p *Picker) Init() bubbletea.Cmd { return nil }

func (p *Picker) Update(msg bubbletea.Msg) viewstate.Update {
	key, ok := msg.(bubbletea.KeyMsg)
	if !ok {
		return viewstate.Update{Action: viewstate.None}
	}
	p.warning = ""

	switch key.String() {
	case "esc":
		return viewstate.Update{Action: viewstate.Pop}

	case "enter":
		visible := p.visibleIDs()
		if len(visible) == 0 {
			p.warning = "select at least one column"
			return viewstate.Update{Action: viewstate.None}
		}
		kind := p.kind
		return viewstate.Update{
			Action: viewstate.Pop,
			Cmd: func() bubbletea.Msg {
				return PickedMsg{Kind: kind, Visible: visible}
			},
		}

	case "r":
		p.checkOnly(p.initial)

	case "d":
		p.checkOnly(p.defaults)

	case "up", "k":
		p.moveCursor(-1)

	case "down", "j":
		p.moveCursor(1)

	case " ":
		if p.isSelectable(p.cursor) {
			p.rows[p.cursor].checked = !p.rows[p.cursor].checked
		}
	}

	return viewstate.Update{Action: viewstate.None}
}

func (p *Picker) View() string {
	innerWidth := p.boxWidth() - 2

	lines := []string{
		style.Header.Render("  columns  "),
		strings.Repeat("─", innerWidth),
	}

	maxItems := max(3, p.height-8)

	start := 0
	if p.cursor >= maxItems {
		start = p.cursor - maxItems + 1
	}
	end := min(start+maxItems, len(p.rows))
	start = min(start, end)

	for i := start; i < end; i++ {
		row := p.rows[i]
		if row.kind == rowHeader {
			fill := max(0, innerWidth-len(row.headerText)-4)
			lines = append(lines, style.Muted.Render("── "+row.headerText+" "+strings.Repeat("─", fill)))
			continue
		}

		checkbox := "○"
		if row.checked {
			checkbox = "✓"
		}
		name := row.desc.Label
		if row.desc.Label != row.desc.ID {
			name += style.Muted.Render(" " + row.desc.ID)
		}
		line := " " + checkbox + " " + name
		if i == p.cursor {
			line = style.Cursor.Render("▶") + line
		} else {
			line = " " + line
		}
		lines = append(lines, line)
	}

	lines = append(lines, strings.Repeat("─", innerWidth))
	if p.warning != "" {
		lines = append(lines, style.Warning.Render(p.warning))
	}
	footer := style.Muted.Render("spc toggle  enter apply  r reset  d defaults")
	if len([]rune(footer)) > innerWidth {
		footer = style.Muted.Render("spc toggle  enter apply")
	}
	lines = append(lines, footer)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("241")).
		Width(innerWidth).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(p.width, p.height, lipgloss.Right, lipgloss.Top, box)
}

func (p *Picker) Breadcrumb() string { return "columns" }

func (p *Picker) Footer() string {
	return style.FormatBindings([]style.Binding{
		style.B("spc", "toggle"),
		style.B("enter", "apply"),
		style.B("esc", "cancel"),
	})
}
