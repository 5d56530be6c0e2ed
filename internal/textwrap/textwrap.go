// Package textwrap breaks display text into lines of a bounded width.
package textwrap

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Placeholder is returned for empty input.
const Placeholder = "-"

// WrapText greedily packs words into lines no wider than width. A word wider
// than width is placed on a line of its own and left unsplit.
func WrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return Placeholder
	}
	if width <= 0 {
		return strings.Join(words, " ")
	}

	var lines []string
	current := words[0]
	currentWidth := runewidth.StringWidth(current)
	for _, word := range words[1:] {
		wordWidth := runewidth.StringWidth(word)
		if currentWidth+1+wordWidth <= width {
			current += " " + word
			currentWidth += 1 + wordWidth
			continue
		}
		lines = append(lines, current)
		current = word
		currentWidth = wordWidth
	}
	lines = append(lines, current)
	return strings.Join(lines, "\n")
}

// ChunkFixedWidth slices text into pieces at most width display cells wide;
// the last piece may be narrower. A rune wider than width gets a piece of
// its own. Used for identifiers with no word boundaries.
func ChunkFixedWidth(text string, width int) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return Placeholder
	}
	if width <= 0 || runewidth.StringWidth(text) <= width {
		return text
	}

	var chunks []string
	var current strings.Builder
	used := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if used > 0 && used+w > width {
			chunks = append(chunks, current.String())
			current.Reset()
			used = 0
		}
		current.WriteRune(r)
		used += w
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return strings.Join(chunks, "\n")
}

// Lines splits wrapped text into its lines.
func Lines(text string) []string {
	return strings.Split(text, "\n")
}
