package app

import (
	"strings"
	"testing"

	bubbletea "github.com/charmbracelet/bubbletea"

	"github.com/dloss/adoview/internal/browse"
	"github.com/dloss/adoview/internal/columnconfig"
	"github.com/dloss/adoview/internal/fields"
	"github.com/dloss/adoview/internal/records"
	"github.com/dloss/adoview/internal/ui/browseview"
	"github.com/dloss/adoview/internal/ui/helpview"
	"github.com/dloss/adoview/internal/ui/viewstate"
)

type overflowView struct{}
type shortView struct{}
type keySpyView struct {
	lastKey  string
	suppress bool
}

func (overflowView) Init() bubbletea.Cmd { return nil }

func (overflowView) Update(msg bubbletea.Msg) viewstate.Update {
	return viewstate.Update{Action: viewstate.None, Next: overflowView{}}
}

func (overflowView) View() string {
	return strings.Repeat("row\n", 20)
}

func (overflowView) Breadcrumb() string { return "pull requests" }

func (overflowView) Footer() string { return "q quit" }

func (overflowView) SetSize(width, height int) {}

func (shortView) Init() bubbletea.Cmd { return nil }

func (shortView) Update(msg bubbletea.Msg) viewstate.Update {
	return viewstate.Update{Action: viewstate.None, Next: shortView{}}
}

func (shortView) View() string { return "line 1\nline 2" }

func (shortView) Breadcrumb() string { return "pull requests" }

func (shortView) Footer() string { return "status\nq quit" }

func (shortView) SetSize(width, height int) {}

func (v *keySpyView) Init() bubbletea.Cmd { return nil }

func (v *keySpyView) Update(msg bubbletea.Msg) viewstate.Update {
	if key, ok := msg.(bubbletea.KeyMsg); ok {
		v.lastKey = key.String()
	}
	return viewstate.Update{Action: viewstate.None, Next: v}
}

func (*keySpyView) View() string              { return "" }
func (*keySpyView) Breadcrumb() string        { return "pull requests" }
func (*keySpyView) Footer() string            { return "status\nq quit" }
func (*keySpyView) SetSize(width, height int) {}
func (v *keySpyView) SuppressGlobalKeys() bool {
	return v.suppress
}

func TestViewClampsBodyToWindowHeight(t *testing.T) {
	m := New(overflowView{}, Options{Organization: "https://dev.azure.com/contoso/", Project: "Storefront"})
	m.height = 6

	rendered := m.View()
	lines := strings.Split(rendered, "\n")
	if len(lines) > m.height {
		t.Fatalf("expected <= %d lines, got %d", m.height, len(lines))
	}
	if !strings.Contains(lines[0], "Organization: contoso") || !strings.Contains(lines[0], "Project: Storefront") {
		t.Fatalf("expected scope line with organization and project, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "Pull requests") {
		t.Fatalf("expected breadcrumb line, got %q", lines[1])
	}
}

func TestViewPadsBodyToKeepFooterAtBottom(t *testing.T) {
	m := New(shortView{}, Options{})
	m.height = 8

	rendered := m.View()
	lines := strings.Split(rendered, "\n")
	if len(lines) != m.height {
		t.Fatalf("expected %d lines, got %d", m.height, len(lines))
	}
	if lines[len(lines)-2] != "status" {
		t.Fatalf("expected footer status on second-to-last line, got %q", lines[len(lines)-2])
	}
	if lines[len(lines)-1] != "q quit" {
		t.Fatalf("expected footer action on last line, got %q", lines[len(lines)-1])
	}
}

func TestSpaceMapsToPageDownWhenGlobalsAllowed(t *testing.T) {
	spy := &keySpyView{}
	m := New(spy, Options{})

	updated, _ := m.Update(bubbletea.KeyMsg{Type: bubbletea.KeySpace})
	got := updated.(Model)
	nextSpy := got.top().(*keySpyView)
	if nextSpy.lastKey != "pgdown" {
		t.Fatalf("expected space to map to pgdown, got %q", nextSpy.lastKey)
	}
}

func TestSpaceDoesNotMapWhenGlobalsSuppressed(t *testing.T) {
	spy := &keySpyView{suppress: true}
	m := New(spy, Options{})

	updated, _ := m.Update(bubbletea.KeyMsg{Type: bubbletea.KeySpace})
	got := updated.(Model)
	nextSpy := got.top().(*keySpyView)
	if nextSpy.lastKey != " " {
		t.Fatalf("expected raw space when globals suppressed, got %q", nextSpy.lastKey)
	}
}

func TestQIsDeliveredWhenGlobalsSuppressed(t *testing.T) {
	spy := &keySpyView{suppress: true}
	m := New(spy, Options{})

	_, cmd := m.Update(bubbletea.KeyMsg{Type: bubbletea.KeyRunes, Runes: []rune("q")})
	if cmd != nil {
		t.Fatal("expected no quit while typing")
	}
	if spy.lastKey != "q" {
		t.Fatalf("expected q delivered to view, got %q", spy.lastKey)
	}
}

func TestHelpPushesAndBackPops(t *testing.T) {
	m := New(shortView{}, Options{})

	updated, _ := m.Update(bubbletea.KeyMsg{Type: bubbletea.KeyRunes, Runes: []rune("?")})
	got := updated.(Model)
	if _, ok := got.top().(*helpview.View); !ok {
		t.Fatalf("expected help view on top, got %T", got.top())
	}
	if got.breadcrumb() != "Pull requests > Help" {
		t.Fatalf("unexpected breadcrumb %q", got.breadcrumb())
	}

	updated, _ = got.Update(bubbletea.KeyMsg{Type: bubbletea.KeyBackspace})
	got = updated.(Model)
	if len(got.stack) != 1 {
		t.Fatalf("expected root only, got %d views", len(got.stack))
	}

	// Back at the root is a no-op.
	updated, _ = got.Update(bubbletea.KeyMsg{Type: bubbletea.KeyLeft})
	if len(updated.(Model).stack) != 1 {
		t.Fatal("expected root to stay")
	}
}

func TestQuitExitsBrowseSession(t *testing.T) {
	reg := fields.NewRegistry("work items", []string{"System.Title"},
		fields.Descriptor{ID: "System.Title", Label: "Title"})
	machine, _ := browse.New(reg, []records.Record{{"System.Title": "Login fails"}}, nil)
	root := browseview.New(machine, browseview.Options{Store: columnconfig.NewStore()})
	m := New(root, Options{})

	_, cmd := m.Update(bubbletea.KeyMsg{Type: bubbletea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(bubbletea.QuitMsg); !ok {
		t.Fatal("expected QuitMsg")
	}
	if !machine.Exited() {
		t.Fatal("expected browse session to be exited")
	}
}
