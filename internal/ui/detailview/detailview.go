// Package detailview shows one record with every field wrapped to the
// terminal width.
package detailview

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/dloss/adoview/internal/fields"
	"github.com/dloss/adoview/internal/records"
	"github.com/dloss/adoview/internal/source"
	"github.com/dloss/adoview/internal/textwrap"
	"github.com/dloss/adoview/internal/ui/rawview"
	"github.com/dloss/adoview/internal/ui/style"
	"github.com/dloss/adoview/internal/ui/viewstate"
)

const maxLabelWidth = 18

// Options carries the side effects a detail view can trigger.
type Options struct {
	Opener source.Opener
	Copy   func(text string) error
}

type openedMsg struct{ err error }

type copiedMsg struct{ err error }

type View struct {
	rec       records.Record
	displayed []fields.Descriptor
	registry  *fields.Registry
	opts      Options
	viewport  viewport.Model
	status    string
	statusErr bool
	width     int
}

func New(rec records.Record, displayed []fields.Descriptor, registry *fields.Registry, opts Options) *View {
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}
	v := &View{
		rec:       rec,
		displayed: displayed,
		registry:  registry,
		opts:      opts,
		viewport:  viewport.New(0, 0),
	}
	v.viewport.SetContent(v.render())
	return v
}

func (v *View) Init() bubbletea.Cmd { return nil }

func (v *View) Update(msg bubbletea.Msg) viewstate.Update {
	switch msg := msg.(type) {
	case openedMsg:
		v.setStatus("opened in browser", msg.err)
		return viewstate.Update{Action: viewstate.None, Next: v}
	case copiedMsg:
		v.setStatus("link copied", msg.err)
		return viewstate.Update{Action: viewstate.None, Next: v}
	case bubbletea.KeyMsg:
		switch msg.String() {
		case "esc":
			return viewstate.Update{Action: viewstate.Pop}
		case "o":
			return viewstate.Update{Action: viewstate.None, Next: v, Cmd: v.open()}
		case "y":
			return viewstate.Update{Action: viewstate.None, Next: v, Cmd: v.copyLink()}
		case "r":
			return viewstate.Update{Action: viewstate.Push, Next: rawview.New(v.rec)}
		}
	}
	updated, cmd := v.viewport.Update(msg)
	v.viewport = updated
	return viewstate.Update{Action: viewstate.None, Next: v, Cmd: cmd}
}

func (v *View) open() bubbletea.Cmd {
	link := v.rec.Link()
	if link == "" || v.opts.Opener == nil {
		v.setStatus("", errNoLink)
		return nil
	}
	opener := v.opts.Opener
	return func() bubbletea.Msg {
		return openedMsg{err: opener.Open(context.Background(), link)}
	}
}

func (v *View) copyLink() bubbletea.Cmd {
	link := v.rec.Link()
	if link == "" {
		v.setStatus("", errNoLink)
		return nil
	}
	copyFn := v.opts.Copy
	return func() bubbletea.Msg {
		return copiedMsg{err: copyFn(link)}
	}
}

func (v *View) setStatus(ok string, err error) {
	if err != nil {
		v.status = err.Error()
		v.statusErr = true
		return
	}
	v.status = ok
	v.statusErr = false
}

func (v *View) View() string {
	return v.viewport.View()
}

func (v *View) render() string {
	width := v.width
	if width <= 0 {
		width = 80
	}

	labelWidth := 0
	for _, d := range v.displayed {
		labelWidth = max(labelWidth, runewidth.StringWidth(d.Label))
	}
	others := v.otherFields()
	for _, d := range others {
		labelWidth = max(labelWidth, runewidth.StringWidth(d.Label))
	}
	labelWidth = min(labelWidth, maxLabelWidth)
	valueWidth := max(10, width-labelWidth-2)

	var lines []string
	if link := v.rec.Link(); link != "" {
		lines = append(lines, style.Link.Render(link), "")
	}
	for _, d := range v.displayed {
		lines = append(lines, v.fieldLines(d, labelWidth, valueWidth)...)
	}
	if len(others) > 0 {
		lines = append(lines, "", style.Header.Render("MORE FIELDS"))
		for _, d := range others {
			lines = append(lines, v.fieldLines(d, labelWidth, valueWidth)...)
		}
	}
	return strings.Join(lines, "\n")
}

// otherFields are registered fields that are not displayed but have a value.
func (v *View) otherFields() []fields.Descriptor {
	if v.registry == nil {
		return nil
	}
	shown := make(map[string]bool, len(v.displayed))
	for _, d := range v.displayed {
		shown[d.ID] = true
	}
	var out []fields.Descriptor
	for _, d := range v.registry.All() {
		if !shown[d.ID] && v.rec.String(d) != records.Placeholder {
			out = append(out, d)
		}
	}
	return out
}

func (v *View) fieldLines(d fields.Descriptor, labelWidth, valueWidth int) []string {
	value := v.rec.String(d)
	var wrapped string
	switch {
	case strings.Contains(value, "\n"):
		wrapped = strings.TrimRight(wordwrap.String(value, valueWidth), "\n")
	case d.Wrap == fields.WrapChunk:
		wrapped = textwrap.ChunkFixedWidth(value, valueWidth)
	default:
		wrapped = textwrap.WrapText(value, valueWidth)
	}
	first, rest, _ := strings.Cut(wrapped, "\n")

	label := runewidth.FillRight(runewidth.Truncate(d.Label, labelWidth, "…"), labelWidth)
	if d.ID == "status" || d.ID == "System.State" {
		first = style.Status(first)
	}
	lines := []string{style.Label.Render(label) + "  " + first}
	if rest != "" {
		lines = append(lines, strings.Split(indent.String(rest, uint(labelWidth+2)), "\n")...)
	}
	return lines
}

func (v *View) Breadcrumb() string {
	id := v.rec.String(fields.Descriptor{ID: "id"})
	if id == records.Placeholder {
		id = v.rec.String(fields.Descriptor{ID: "System.Id"})
	}
	return "#" + id
}

func (v *View) Footer() string {
	line1 := ""
	if v.status != "" {
		if v.statusErr {
			line1 = style.Error.Render(v.status)
		} else {
			line1 = style.Healthy.Render(v.status)
		}
	}
	actions := []style.Binding{style.B("o", "open"), style.B("y", "copy link"), style.B("r", "raw"), style.B("esc", "back")}
	return line1 + "\n" + style.ActionFooter(actions, v.width)
}

func (v *View) SetSize(width, height int) {
	if width == 0 || height == 0 {
		return
	}
	v.width = width
	v.viewport.Width = width
	v.viewport.Height = height
	v.viewport.SetContent(v.render())
}
