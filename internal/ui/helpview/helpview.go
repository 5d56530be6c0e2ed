package helpview

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	bubbletea "github.com/charmbracelet/bubbletea"

	"github.com/dloss/adoview/internal/ui/style"
	"github.com/dloss/adoview/internal/ui/viewstate"
)

var helpText = strings.TrimSpace(`
TABLE
  up / down / j / k    Move between records
  pgup / pgdn / space  Page up / down
  home / g, end / G    First / last record
  / or f               Filter: choose a column, then type a pattern
  a                    Show all records again
  esc                  Clear filter
  p                    Choose displayed columns
  enter                Record detail

FILTER
  1-9 or a name        Column by number, label or id prefix
  enter                Apply pattern (case-insensitive regular expression)
  empty pattern        Cancel
  esc                  Cancel

DETAIL
  o                    Open in browser
  y                    Copy web link
  r                    Raw fields
  up / down / j / k    Scroll

APP
  backspace / left     Back
  ?                    This help
  q / ctrl+c           Quit
`)

type View struct {
	viewport viewport.Model
}

func New() *View {
	vp := viewport.New(0, 0)
	vp.SetContent(helpText)
	return &View{viewport: vp}
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
	return "help"
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
