// Package rawview shows every field of a record as YAML.
package rawview

import (
	"github.com/charmbracelet/bubbles/viewport"
	bubbletea "github.com/charmbracelet/bubbletea"
	"gopkg.in/yaml.v3"

	"github.com/dloss/adoview/internal/records"
	"github.com/dloss/adoview/internal/ui/style"
	"github.com/dloss/adoview/internal/ui/viewstate"
)

type View struct {
	viewport viewport.Model
}

func New(rec records.Record) *View {
	vp := viewport.New(0, 0)
	vp.SetContent(Render(rec))
	return &View{viewport: vp}
}

// Render marshals the record with sorted keys.
func Render(rec records.Record) string {
	out, err := yaml.Marshal(map[string]any(rec))
	if err != nil {
		return style.Error.Render("cannot render record: " + err.Error())
	}
	return string(out)
}

func (v *View) Init() bubbletea.Cmd { return nil }

func (v *View) Update(msg bubbletea.Msg) viewstate.Update {
	if key, ok := msg.(bubbletea.KeyMsg); ok && key.String() == "esc" {
		return viewstate.Update{Action: viewstate.Pop}
	}
	updated, cmd := v.viewport.Update(msg)
	v.viewport = updated
	return viewstate.Update{Action: viewstate.None, Next: v, Cmd: cmd}
}

func (v *View) View() string {
	return v.viewport.View()
}

func (v *View) Breadcrumb() string {
	return "raw"
}

func (v *View) Footer() string {
	return style.GlobalFooter(v.viewport.Width)
}

func (v *View) SetSize(width, height int) {
	if width == 0 || height == 0 {
		return
	}
	v.viewport.Width = width
	v.viewport.Height = height
}
