package patternbar

import (
	"strings"
	"testing"
)

func TestAppendPreservesInteriorBlankLines(t *testing.T) {
	in := New("Title")
	in.SetValue("fix")
	view := "header\n\nNo records match"

	rendered := Append(view, in.View())
	lines := strings.Split(rendered, "\n")

	last := lines[len(lines)-1]
	if !strings.Contains(last, "Title ~") {
		t.Fatalf("expected pattern bar on last line, got %q", last)
	}

	if !strings.Contains(rendered, "\n\nNo records match\n") {
		t.Fatalf("expected interior blank line and message to remain, got %q", rendered)
	}
}

func TestAppendReplacesTrailingPaddingLine(t *testing.T) {
	rendered := Append("header\nrow\n", "Title ~ fix")
	if rendered != "header\nrow\nTitle ~ fix" {
		t.Fatalf("expected trailing padding to be replaced, got %q", rendered)
	}
}

func TestNewIsFocused(t *testing.T) {
	in := New("Author")
	if !in.Focused() {
		t.Fatal("expected input to be focused")
	}
	if in.Prompt != "Author ~ " {
		t.Fatalf("unexpected prompt %q", in.Prompt)
	}
}
