// Package browseview is the interactive table: one block of lines per
// record, a cursor, and the column-then-pattern filter flow.
package browseview

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/dloss/adoview/internal/browse"
	"github.com/dloss/adoview/internal/columnconfig"
	"github.com/dloss/adoview/internal/fields"
	"github.com/dloss/adoview/internal/records"
	"github.com/dloss/adoview/internal/table"
	"github.com/dloss/adoview/internal/ui/columnpicker"
	"github.com/dloss/adoview/internal/ui/detailview"
	"github.com/dloss/adoview/internal/ui/fieldpicker"
	"github.com/dloss/adoview/internal/ui/patternbar"
	"github.com/dloss/adoview/internal/ui/style"
	"github.com/dloss/adoview/internal/ui/viewstate"
)

// Options configures a browse view.
type Options struct {
	// Store keeps column choices across views of the same record kind.
	Store *columnconfig.Store
	// Detail is passed to detail views opened from the table.
	Detail detailview.Options
	// Warning is shown in the banner on the first frame.
	Warning string
}

type View struct {
	machine *browse.Machine
	opts    Options

	layout table.Layout
	cursor int // index into machine.View()
	offset int // first body line shown

	input       textinput.Model
	inputActive bool

	banner    string
	bannerErr bool

	width  int
	height int
}

func New(machine *browse.Machine, opts Options) *View {
	if opts.Store == nil {
		opts.Store = columnconfig.Default()
	}
	v := &View{machine: machine, opts: opts, width: 80, height: 24}

	kind := machine.Registry().Name()
	if opts.Store.IsCustom(kind) {
		if err := machine.Step(browse.SetFields{IDs: opts.Store.Get(kind, nil)}); err != nil {
			v.setBanner(err.Error(), false)
		}
	}
	if opts.Warning != "" {
		v.setBanner(opts.Warning, true)
	}
	// An invalid preset pattern leaves a column selected; ask again.
	if s, ok := machine.State().(browse.FieldSelected); ok {
		v.openInput(s.Field)
	}
	v.relayout()
	return v
}

// Machine exposes the state machine driving the view.
func (v *View) Machine() *browse.Machine {
	return v.machine
}

func (v *View) Init() bubbletea.Cmd {
	if v.inputActive {
		return textinput.Blink
	}
	return nil
}

func (v *View) Update(msg bubbletea.Msg) viewstate.Update {
	switch msg := msg.(type) {
	case fieldpicker.ChosenMsg:
		v.clearBanner()
		if err := v.machine.Step(browse.ChooseColumn{Choice: msg.Choice}); err != nil {
			v.setBanner(err.Error(), true)
			return v.stay(nil)
		}
		selected := v.machine.State().(browse.FieldSelected)
		v.relayout()
		return v.stay(v.openInput(selected.Field))

	case columnpicker.PickedMsg:
		v.clearBanner()
		err := v.machine.Step(browse.SetFields{IDs: msg.Visible})
		var warning *fields.UnknownFieldWarning
		switch {
		case err == nil:
		case errors.As(err, &warning):
			v.setBanner(err.Error(), false)
		default:
			v.setBanner(err.Error(), true)
			return v.stay(nil)
		}
		v.opts.Store.Set(msg.Kind, msg.Visible)
		v.relayout()
		return v.stay(nil)

	case bubbletea.KeyMsg:
		if v.inputActive {
			return v.updateInput(msg)
		}
		v.clearBanner()
		return v.updateTable(msg)
	}

	if v.inputActive {
		var cmd bubbletea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v.stay(cmd)
	}
	return v.stay(nil)
}

func (v *View) updateInput(key bubbletea.KeyMsg) viewstate.Update {
	switch key.String() {
	case "enter":
		if err := v.machine.Step(browse.SubmitPattern{Expr: v.input.Value()}); err != nil {
			v.setBanner(err.Error(), true)
			return v.stay(nil)
		}
		v.clearBanner()
		v.closeInput()
	case "esc":
		_ = v.machine.Step(browse.Cancel{})
		v.clearBanner()
		v.closeInput()
	default:
		var cmd bubbletea.Cmd
		v.input, cmd = v.input.Update(key)
		return v.stay(cmd)
	}
	v.cursor = 0
	v.offset = 0
	v.relayout()
	return v.stay(nil)
}

func (v *View) updateTable(key bubbletea.KeyMsg) viewstate.Update {
	switch key.String() {
	case "/", "f":
		return viewstate.Update{Action: viewstate.Push, Next: fieldpicker.New(v.machine.Fields())}
	case "p":
		return viewstate.Update{Action: viewstate.Push, Next: columnpicker.New(v.machine.Registry(), v.machine.Fields())}
	case "a":
		v.showAll()
	case "esc":
		if _, _, filtered := v.machine.Filter(); filtered {
			v.showAll()
		}
	case "enter", "right", "l":
		if rec, ok := v.SelectedRecord(); ok {
			next := detailview.New(rec, v.machine.Fields(), v.machine.Registry(), v.opts.Detail)
			return viewstate.Update{Action: viewstate.Push, Next: next}
		}
	case "up", "k":
		v.moveCursor(-1)
	case "down", "j":
		v.moveCursor(1)
	case "pgdown", " ", "ctrl+f":
		v.moveCursor(v.recordsPerPage())
	case "pgup", "ctrl+b":
		v.moveCursor(-v.recordsPerPage())
	case "home", "g":
		v.moveCursor(-len(v.machine.View()))
	case "end", "G":
		v.moveCursor(len(v.machine.View()))
	}
	return v.stay(nil)
}

func (v *View) stay(cmd bubbletea.Cmd) viewstate.Update {
	return viewstate.Update{Action: viewstate.None, Next: v, Cmd: cmd}
}

func (v *View) showAll() {
	_ = v.machine.Step(browse.ShowAll{})
	v.cursor = 0
	v.offset = 0
	v.relayout()
}

func (v *View) openInput(field fields.Descriptor) bubbletea.Cmd {
	v.input = patternbar.New(field.Label)
	v.input.Width = max(10, v.width-len(v.input.Prompt)-2)
	v.inputActive = true
	return textinput.Blink
}

func (v *View) closeInput() {
	v.inputActive = false
	v.input.Blur()
}

func (v *View) setBanner(text string, isErr bool) {
	v.banner = text
	v.bannerErr = isErr
}

func (v *View) clearBanner() {
	v.banner = ""
	v.bannerErr = false
}

// Exit ends the browse session.
func (v *View) Exit() {
	_ = v.machine.Step(browse.Exit{})
}

func (v *View) relayout() {
	descs := v.machine.Fields()
	widths := table.Allocate(descs, v.width)
	v.layout = table.Build(v.machine.View(), descs, widths, table.WithCellStyler(style.StatusCell))
	v.cursor = clamp(v.cursor, 0, len(v.layout.Rows)-1)
	v.ensureVisible()
}

func (v *View) bodyHeight() int {
	h := v.height - v.layout.HeaderHeight() - 1
	if v.banner != "" {
		h--
	}
	if v.inputActive {
		h--
	}
	return max(1, h)
}

func (v *View) blockStart(idx int) int {
	start := 0
	for i := 0; i < idx && i < len(v.layout.Rows); i++ {
		start += len(v.layout.Rows[i])
	}
	return start
}

func (v *View) ensureVisible() {
	if len(v.layout.Rows) == 0 {
		v.offset = 0
		return
	}
	start := v.blockStart(v.cursor)
	end := start + len(v.layout.Rows[v.cursor])
	height := v.bodyHeight()
	switch {
	case start < v.offset:
		v.offset = start
	case end > v.offset+height:
		v.offset = max(start, end-height)
		if end-start > height {
			v.offset = start
		}
	}
	v.offset = max(0, v.offset)
}

func (v *View) moveCursor(delta int) {
	if len(v.layout.Rows) == 0 {
		return
	}
	v.cursor = clamp(v.cursor+delta, 0, len(v.layout.Rows)-1)
	v.ensureVisible()
}

// recordsPerPage counts how many records starting at the cursor fit in the
// body, at least one.
func (v *View) recordsPerPage() int {
	height := v.bodyHeight()
	used, n := 0, 0
	for i := v.cursor; i < len(v.layout.Rows); i++ {
		used += len(v.layout.Rows[i])
		if used > height {
			break
		}
		n++
	}
	return max(1, n)
}

func (v *View) View() string {
	var lines []string
	if v.banner != "" {
		bannerStyle := style.Warning
		if v.bannerErr {
			bannerStyle = style.ErrorBanner
		}
		lines = append(lines, bannerStyle.Render(ansi.Truncate(v.banner, max(1, v.width-1), "…")))
	}

	switch {
	case len(v.machine.Records()) == 0:
		lines = append(lines, style.Muted.Render("No records found"))
	case len(v.layout.Rows) == 0:
		lines = append(lines, v.layout.Top)
		lines = append(lines, v.layout.Header...)
		lines = append(lines, v.layout.Bottom, "", style.Muted.Render(v.emptyMessage()))
	default:
		lines = append(lines, v.layout.Top)
		lines = append(lines, v.layout.Header...)
		lines = append(lines, v.layout.Separator)
		lines = append(lines, v.bodyLines()...)
		lines = append(lines, v.layout.Bottom)
	}

	for len(lines) < v.height {
		lines = append(lines, "")
	}
	view := strings.Join(lines, "\n")
	if v.inputActive {
		if len(lines) > v.height || strings.TrimSpace(lines[len(lines)-1]) != "" {
			view += "\n"
		}
		view = patternbar.Append(view, v.input.View())
	}
	return view
}

func (v *View) bodyLines() []string {
	height := v.bodyHeight()
	var lines []string
	lineNo := 0
	for i, block := range v.layout.Rows {
		for _, line := range block {
			if lineNo >= v.offset && lineNo < v.offset+height {
				if i == v.cursor {
					line = markCursor(line)
				}
				lines = append(lines, line)
			}
			lineNo++
		}
		if lineNo >= v.offset+height {
			break
		}
	}
	return lines
}

// markCursor swaps the leading border for a cursor bar of the same width.
func markCursor(line string) string {
	if rest, ok := strings.CutPrefix(line, "│"); ok {
		return style.Cursor.Render("▌") + rest
	}
	return line
}

func (v *View) emptyMessage() string {
	if field, pattern, ok := v.machine.Filter(); ok {
		return fmt.Sprintf("No records match %s ~ %s. Press a to show all.", field.Label, pattern)
	}
	return "No records"
}

func (v *View) Breadcrumb() string {
	return v.machine.Registry().Name()
}

func (v *View) Footer() string {
	var indicators []style.Binding
	switch s := v.machine.State().(type) {
	case browse.PatternEntered:
		indicators = append(indicators, style.B("filter", s.Field.Label+" ~ "+s.Pattern.String()))
	case browse.FieldSelected:
		indicators = append(indicators, style.B("filter", s.Field.Label+" ~ …"))
	}
	if v.opts.Store.IsCustom(v.machine.Registry().Name()) {
		indicators = append(indicators, style.B("columns", "custom"))
	}
	count := fmt.Sprintf("%d of %d", len(v.machine.View()), len(v.machine.Records()))
	line1 := style.StatusFooter(indicators, count, v.width)

	var line2 string
	if v.inputActive {
		line2 = style.FooterKey.Render("pattern") + "  " + style.FormatBindings([]style.Binding{
			style.B("enter", "apply"),
			style.B("esc", "cancel"),
		})
	} else {
		line2 = style.ActionFooter([]style.Binding{
			style.B("/", "filter"),
			style.B("a", "all"),
			style.B("p", "columns"),
			style.B("enter", "detail"),
		}, v.width)
	}
	return line1 + "\n" + line2
}

func (v *View) SetSize(width, height int) {
	if width == 0 || height == 0 {
		return
	}
	v.width = width
	v.height = height
	if v.inputActive {
		v.input.Width = max(10, width-len(v.input.Prompt)-2)
	}
	v.relayout()
}

func (v *View) SuppressGlobalKeys() bool {
	return v.inputActive
}

// SelectedRecord returns the record under the cursor.
func (v *View) SelectedRecord() (records.Record, bool) {
	view := v.machine.View()
	if v.cursor < 0 || v.cursor >= len(view) {
		return nil, false
	}
	return view[v.cursor], true
}

func clamp(value, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(value, hi))
}
