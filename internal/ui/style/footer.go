package style

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Binding represents a single key-label pair for the footer.
type Binding struct {
	Key   string
	Label string
}

// B is a shorthand constructor for Binding.
func B(key, label string) Binding {
	return Binding{Key: key, Label: label}
}

// FormatBindings renders a list of bindings with styled keys and muted labels,
// separated by double spaces.
func FormatBindings(bindings []Binding) string {
	parts := make([]string, len(bindings))
	for i, b := range bindings {
		if b.Label == "" {
			parts[i] = FooterKey.Render(b.Key)
			continue
		}
		parts[i] = FooterKey.Render(b.Key) + " " + FooterLabel.Render(b.Label)
	}
	return strings.Join(parts, "  ")
}

// FormatFooter renders bindings left-aligned with optional status text
// right-aligned. If width is 0, no right-alignment is applied.
func FormatFooter(bindings []Binding, right string, width int) string {
	left := FormatBindings(bindings)
	if right == "" || width == 0 {
		return left
	}
	r := FooterLabel.Render(right)
	gap := width - ansi.StringWidth(left) - ansi.StringWidth(r)
	if gap < 2 {
		return left
	}
	return left + strings.Repeat(" ", gap) + r
}

// StatusFooter is the first footer line: indicators on the left, counts on
// the right edge of the same budget truncate cuts to.
func StatusFooter(indicators []Binding, right string, width int) string {
	return truncate(FormatFooter(indicators, right, lineBudget(width)), width)
}

// ActionFooter is the second footer line: view actions followed by the
// global help and quit keys.
func ActionFooter(actions []Binding, width int) string {
	all := append(append([]Binding(nil), actions...), B("?", "help"), B("q", "quit"))
	return truncate(FormatBindings(all), width)
}

// GlobalFooter renders the navigation line shown under pushed views.
func GlobalFooter(width int) string {
	line := FormatBindings([]Binding{
		{"←", "back"},
		{"?", "help"},
		{"q", "quit"},
	})
	return lipgloss.NewStyle().Width(width).Render(truncate(line, width))
}

// lineBudget is the visible width footer lines are cut to.
func lineBudget(width int) int {
	if width > 2 {
		return width - 2
	}
	return width
}

func truncate(line string, width int) string {
	if width > 2 {
		return ansi.Truncate(line, lineBudget(width), "…")
	}
	return line
}
