// Package patternbar is the one-line input for a filter pattern.
package patternbar

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/dloss/adoview/internal/ui/style"
)

// New returns a focused input prompting for a pattern on the named column.
func New(label string) textinput.Model {
	in := textinput.New()
	in.Prompt = Prompt(label)
	in.PromptStyle = style.FilterPrompt
	in.TextStyle = lipgloss.NewStyle()
	in.Placeholder = "regular expression, empty to cancel"
	in.Focus()
	return in
}

// Prompt is the text shown before the cursor.
func Prompt(label string) string {
	return label + " ~ "
}

// Append adds the bar at the bottom of the view. If the view already has
// trailing blank padding, the final padding line is replaced to keep the
// same line budget.
func Append(view, bar string) string {
	lines := strings.Split(view, "\n")
	// Only consume trailing padding. Interior blank lines are content and must
	// remain in place (for example, between table and empty-state message).
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines[len(lines)-1] = bar
		return strings.Join(lines, "\n")
	}
	return view + "\n" + bar
}
