package helpview

import (
	"strings"
	"testing"

	bubbletea "github.com/charmbracelet/bubbletea"

	"github.com/dloss/adoview/internal/ui/viewstate"
)

func TestHelpTextReflectsCurrentNavigation(t *testing.T) {
	if strings.Contains(helpText, "Namespace") {
		t.Fatalf("help text still references cluster navigation")
	}
	if !strings.Contains(helpText, "/ or f               Filter") {
		t.Fatalf("help text missing filter entry")
	}
	if !strings.Contains(helpText, "a                    Show all") {
		t.Fatalf("help text missing show all entry")
	}
}

func TestEscClosesHelp(t *testing.T) {
	v := New()
	v.SetSize(80, 20)
	if u := v.Update(bubbletea.KeyMsg{Type: bubbletea.KeyEsc}); u.Action != viewstate.Pop {
		t.Fatalf("expected pop, got %v", u.Action)
	}
}
