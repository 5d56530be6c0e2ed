package app

import (
	"strings"
	"unicode"

	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"

	"github.com/dloss/adoview/internal/ui/helpview"
	"github.com/dloss/adoview/internal/ui/style"
	"github.com/dloss/adoview/internal/ui/viewstate"
)

const (
	headerHeight = 2 // scope line and breadcrumb
	footerHeight = 2 // status line and actions
)

// Options names the scope shown above every view.
type Options struct {
	Organization string
	Project      string
}

type Model struct {
	stack        []viewstate.View
	organization string
	project      string
	width        int
	height       int
}

type globalKeySuppresser interface {
	SuppressGlobalKeys() bool
}

// exiter is implemented by views that own a session that must be closed
// when the program quits.
type exiter interface {
	Exit()
}

func New(root viewstate.View, opts Options) Model {
	return Model{
		stack:        []viewstate.View{root},
		organization: shortOrganization(opts.Organization),
		project:      opts.Project,
	}
}

func (m Model) Init() bubbletea.Cmd {
	return m.top().Init()
}

func (m Model) Update(msg bubbletea.Msg) (bubbletea.Model, bubbletea.Cmd) {
	switch msg := msg.(type) {
	case bubbletea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, view := range m.stack {
			view.SetSize(m.width, m.availableHeight())
		}
		return m, nil
	case bubbletea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		if suppresser, ok := m.top().(globalKeySuppresser); ok && suppresser.SuppressGlobalKeys() {
			break
		}

		switch msg.String() {
		case "q":
			return m.quit()
		case "?":
			if _, ok := m.top().(*helpview.View); !ok {
				return m.push(helpview.New(), nil)
			}
			return m, nil
		case "backspace", "left":
			if len(m.stack) > 1 {
				m.stack = m.stack[:len(m.stack)-1]
			}
			return m, nil
		case " ":
			msg = bubbletea.KeyMsg{Type: bubbletea.KeyPgDown}
		}
		return m.delegate(msg)
	}

	return m.delegate(msg)
}

func (m Model) delegate(msg bubbletea.Msg) (bubbletea.Model, bubbletea.Cmd) {
	update := m.top().Update(msg)
	switch update.Action {
	case viewstate.Push:
		return m.push(update.Next, update.Cmd)
	case viewstate.Pop:
		if len(m.stack) > 1 {
			m.stack = m.stack[:len(m.stack)-1]
		}
	case viewstate.Replace:
		update.Next.SetSize(m.width, m.availableHeight())
		m.stack[len(m.stack)-1] = update.Next
	default:
		if update.Next != nil {
			m.stack[len(m.stack)-1] = update.Next
		}
	}
	return m, update.Cmd
}

func (m Model) push(next viewstate.View, cmd bubbletea.Cmd) (bubbletea.Model, bubbletea.Cmd) {
	next.SetSize(m.width, m.availableHeight())
	m.stack = append(m.stack, next)
	if initCmd := next.Init(); initCmd != nil {
		cmd = bubbletea.Batch(cmd, initCmd)
	}
	return m, cmd
}

func (m Model) quit() (bubbletea.Model, bubbletea.Cmd) {
	for _, view := range m.stack {
		if e, ok := view.(exiter); ok {
			e.Exit()
		}
	}
	return m, bubbletea.Quit
}

func (m Model) View() string {
	head := []string{
		style.Muted.Render(m.fit(m.scopeLine())),
		style.Header.Render(m.fit(m.breadcrumb())),
	}

	body := strings.Split(m.top().View(), "\n")
	if m.height > 0 {
		bodyHeight := m.availableHeight()
		if len(body) > bodyHeight {
			body = body[:bodyHeight]
		}
		for len(body) < bodyHeight {
			body = append(body, "")
		}
	}

	footer := strings.Split(strings.Trim(m.top().Footer(), "\n"), "\n")
	for len(footer) < footerHeight {
		footer = append([]string{""}, footer...)
	}
	for i, line := range footer {
		footer[i] = style.Footer.Render(line)
	}

	sections := append(head, body...)
	sections = append(sections, footer...)
	return strings.Join(sections, "\n")
}

func (m Model) top() viewstate.View {
	return m.stack[len(m.stack)-1]
}

func (m Model) scopeLine() string {
	var parts []string
	if m.organization != "" {
		parts = append(parts, "Organization: "+m.organization)
	}
	if m.project != "" {
		parts = append(parts, "Project: "+m.project)
	}
	return strings.Join(parts, "  ")
}

func (m Model) breadcrumb() string {
	var parts []string
	for _, view := range m.stack {
		if crumb := view.Breadcrumb(); crumb != "" {
			parts = append(parts, titleCase(crumb))
		}
	}
	return strings.Join(parts, " > ")
}

func (m Model) fit(line string) string {
	if m.width <= 0 {
		return line
	}
	return truncate.StringWithTail(line, uint(m.width), "…")
}

func (m Model) availableHeight() int {
	if m.height == 0 {
		return 0
	}
	return max(1, m.height-headerHeight-footerHeight)
}

// shortOrganization turns an organization URL into its name.
func shortOrganization(org string) string {
	org = strings.TrimRight(strings.TrimSpace(org), "/")
	if idx := strings.LastIndex(org, "/"); idx >= 0 {
		return org[idx+1:]
	}
	return org
}

func titleCase(value string) string {
	if value == "" {
		return value
	}
	runes := []rune(value)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
