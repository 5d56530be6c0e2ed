// Package fieldpicker is the overlay that asks which column to filter on.
package fieldpicker

import (
	"strconv"
	"strings"
	"unicode"

	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dloss/adoview/internal/fields"
	"github.com/dloss/adoview/internal/ui/style"
	"github.com/dloss/adoview/internal/ui/viewstate"
)

// ChosenMsg is emitted as a Cmd when the user confirms a column. Choice is
// either a 1-based ordinal or the text the user typed when nothing in the
// list matched it.
type ChosenMsg struct {
	Choice string
}

type item struct {
	ordinal int
	label   string
}

type Picker struct {
	items  []item
	filter string
	cursor int
	width  int
	height int
}

func New(descs []fields.Descriptor) *Picker {
	items := make([]item, len(descs))
	for i, d := range descs {
		items[i] = item{ordinal: i + 1, label: d.Label}
	}
	return &Picker{items: items}
}

func (p *Picker) SetSize(w, h int) {
	p.width = w
	p.height = h
}

// filtered keeps items whose label contains the typed text or whose ordinal
// starts with it.
func (p *Picker) filtered() []item {
	if p.filter == "" {
		return p.items
	}
	lower := strings.ToLower(p.filter)
	var result []item
	for _, it := range p.items {
		if strings.Contains(strings.ToLower(it.label), lower) ||
			strings.HasPrefix(strconv.Itoa(it.ordinal), lower) {
			result = append(result, it)
		}
	}
	return result
}

func (p *Picker) clampCursor(n int) {
	if n == 0 {
		p.cursor = 0
		return
	}
	p.cursor = max(0, min(p.cursor, n-1))
}

func (p *Picker) Init() bubbletea.Cmd { return nil }

// SuppressGlobalKeys lets q and ? be typed into the filter.
func (p *Picker) SuppressGlobalKeys() bool { return true }

func (p *Picker) Update(msg bubbletea.Msg) viewstate.Update {
	key, ok := msg.(bubbletea.KeyMsg)
	if !ok {
		return viewstate.Update{Action: viewstate.None, Next: p}
	}

	filtered := p.filtered()

	switch key.String() {
	case "esc":
		return viewstate.Update{Action: viewstate.Pop}
	case "enter":
		choice := strings.TrimSpace(p.filter)
		if len(filtered) > 0 {
			p.clampCursor(len(filtered))
			choice = strconv.Itoa(filtered[p.cursor].ordinal)
		}
		if choice == "" {
			return viewstate.Update{Action: viewstate.Pop}
		}
		return viewstate.Update{
			Action: viewstate.Pop,
			Cmd: func() bubbletea.Msg {
				return ChosenMsg{Choice: choice}
			},
		}
	case "up", "ctrl+p":
		p.cursor--
		p.clampCursor(len(filtered))
	case "down", "ctrl+n", "tab":
		p.cursor++
		p.clampCursor(len(filtered))
	case "backspace", "ctrl+h":
		runes := []rune(p.filter)
		if len(runes) > 0 {
			p.filter = string(runes[:len(runes)-1])
			p.cursor = 0
		}
	default:
		if key.Type == bubbletea.KeyRunes || key.Type == bubbletea.KeySpace {
			for _, r := range key.Runes {
				if unicode.IsPrint(r) {
					p.filter += string(r)
					p.cursor = 0
				}
			}
		}
	}

	return viewstate.Update{Action: viewstate.None, Next: p}
}

func (p *Picker) View() string {
	filtered := p.filtered()
	p.clampCursor(len(filtered))

	boxWidth := max(20, min(p.width-4, 42))
	innerWidth := boxWidth - 2

	maxItems := max(1, p.height-6)

	lines := []string{
		style.Header.Render("  filter on column  "),
		style.FilterPrompt.Render("> ") + p.filter,
		strings.Repeat("─", innerWidth),
	}

	start := 0
	if p.cursor >= maxItems {
		start = p.cursor - maxItems + 1
	}
	end := min(start+maxItems, len(filtered))
	start = min(start, end)

	for i := start; i < end; i++ {
		label := filtered[i].label
		if len([]rune(label)) > innerWidth-6 {
			label = string([]rune(label)[:innerWidth-7]) + "…"
		}
		line := style.Muted.Render(padOrdinal(filtered[i].ordinal)) + " " + label
		if i == p.cursor {
			line = style.Cursor.Render("▌") + line
		} else {
			line = " " + line
		}
		lines = append(lines, line)
	}

	if len(filtered) == 0 {
		lines = append(lines, style.Muted.Render("  enter: match \""+p.filter+"\" by name"))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("241")).
		Width(innerWidth).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(p.width, p.height, lipgloss.Center, lipgloss.Center, box)
}

func padOrdinal(n int) string {
	s := strconv.Itoa(n)
	if len(s) < 2 {
		s = " " + s
	}
	return s
}

func (p *Picker) Breadcrumb() string { return "filter" }

func (p *Picker) Footer() string {
	return style.FormatBindings([]style.Binding{
		style.B("type", "number or name"),
		style.B("enter", "choose"),
		style.B("esc", "cancel"),
	})
}
