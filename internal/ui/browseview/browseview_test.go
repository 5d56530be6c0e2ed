package browseview

import (
	"strings"
	"testing"

	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/dloss/adoview/internal/browse"
	"github.com/dloss/adoview/internal/columnconfig"
	"github.com/dloss/adoview/internal/fields"
	"github.com/dloss/adoview/internal/records"
	"github.com/dloss/adoview/internal/ui/columnpicker"
	"github.com/dloss/adoview/internal/ui/detailview"
	"github.com/dloss/adoview/internal/ui/fieldpicker"
	"github.com/dloss/adoview/internal/ui/viewstate"
)

func testRegistry() *fields.Registry {
	return fields.NewRegistry("pull requests", []string{"id", "title", "createdBy", "status"},
		fields.Descriptor{ID: "id", Label: "ID", Weight: 0.1},
		fields.Descriptor{ID: "title", Label: "Title", Weight: 0.5},
		fields.Descriptor{ID: "createdBy", Label: "Author", Weight: 0.2, Kind: fields.KindPerson},
		fields.Descriptor{ID: "status", Label: "Status", Weight: 0.1},
		fields.Descriptor{ID: "sourceBranch", Label: "Source", Weight: 0.2, Kind: fields.KindRef},
	)
}

func testRecords() []records.Record {
	return []records.Record{
		{"id": float64(1), "title": "Fix login redirect", "status": "active", "createdBy": map[string]any{"displayName": "Jane Doe"}},
		{"id": float64(2), "title": "Add dark mode", "status": "completed", "createdBy": map[string]any{"displayName": "John Roe"}},
		{"id": float64(3), "title": "HOTFIX null pointer", "status": "active", "createdBy": map[string]any{"uniqueName": "ops@example.com"}},
		{"id": float64(4), "title": "Refactor build", "status": "abandoned", "createdBy": nil},
		{"id": float64(5), "title": "prefix FIX handling", "status": "active", "createdBy": map[string]any{"displayName": "Jane Doe"}},
	}
}

func newView(t *testing.T, recs []records.Record) *View {
	t.Helper()
	m, warnings := browse.New(testRegistry(), recs, nil)
	if len(warnings) > 0 {
		t.Fatalf("unexpected warnings %v", warnings)
	}
	v := New(m, Options{Store: columnconfig.NewStore()})
	v.SetSize(100, 30)
	return v
}

func runes(s string) bubbletea.KeyMsg {
	return bubbletea.KeyMsg{Type: bubbletea.KeyRunes, Runes: []rune(s)}
}

func typeText(v *View, text string) {
	for _, r := range text {
		v.Update(runes(string(r)))
	}
}

func enter() bubbletea.KeyMsg { return bubbletea.KeyMsg{Type: bubbletea.KeyEnter} }

func esc() bubbletea.KeyMsg { return bubbletea.KeyMsg{Type: bubbletea.KeyEsc} }

func TestSlashOpensFieldPicker(t *testing.T) {
	v := newView(t, testRecords())
	u := v.Update(runes("/"))
	if u.Action != viewstate.Push {
		t.Fatalf("expected push, got %v", u.Action)
	}
	if _, ok := u.Next.(*fieldpicker.Picker); !ok {
		t.Fatalf("expected field picker, got %T", u.Next)
	}
}

func TestFilterFlowNarrowsAndShowAllRestores(t *testing.T) {
	v := newView(t, testRecords())

	v.Update(fieldpicker.ChosenMsg{Choice: "2"})
	if !v.SuppressGlobalKeys() {
		t.Fatal("expected pattern input to capture keys")
	}
	if _, ok := v.Machine().State().(browse.FieldSelected); !ok {
		t.Fatalf("expected field selected, got %v", v.Machine().State())
	}

	typeText(v, "fix")
	v.Update(enter())

	if _, ok := v.Machine().State().(browse.PatternEntered); !ok {
		t.Fatalf("expected pattern entered, got %v", v.Machine().State())
	}
	out := ansi.Strip(v.View())
	for _, want := range []string{"Fix login redirect", "HOTFIX null pointer", "prefix FIX handling"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in filtered view:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Add dark mode") {
		t.Fatalf("expected non-matching record to be hidden:\n%s", out)
	}
	if footer := ansi.Strip(v.Footer()); !strings.Contains(footer, "Title ~ fix") || !strings.Contains(footer, "3 of 5") {
		t.Fatalf("expected filter indicator and count, got %q", footer)
	}

	v.Update(runes("a"))
	if len(v.Machine().View()) != 5 {
		t.Fatalf("expected all records, got %d", len(v.Machine().View()))
	}
}

func TestInvalidPatternKeepsInputOpen(t *testing.T) {
	v := newView(t, testRecords())
	v.Update(fieldpicker.ChosenMsg{Choice: "title"})
	typeText(v, "(")
	v.Update(enter())

	if !v.inputActive {
		t.Fatal("expected input to stay open")
	}
	if _, ok := v.Machine().State().(browse.FieldSelected); !ok {
		t.Fatalf("expected field selected, got %v", v.Machine().State())
	}
	if !strings.Contains(v.View(), "invalid pattern") {
		t.Fatalf("expected error banner, got:\n%s", v.View())
	}
}

func TestEscCancelsPatternInput(t *testing.T) {
	v := newView(t, testRecords())
	v.Update(fieldpicker.ChosenMsg{Choice: "1"})
	v.Update(esc())

	if v.inputActive {
		t.Fatal("expected input to close")
	}
	if _, ok := v.Machine().State().(browse.Idle); !ok {
		t.Fatalf("expected idle, got %v", v.Machine().State())
	}
}

func TestUnknownColumnShowsBanner(t *testing.T) {
	v := newView(t, testRecords())
	v.Update(fieldpicker.ChosenMsg{Choice: "zzz"})

	if v.inputActive {
		t.Fatal("expected no input for unknown column")
	}
	if !strings.Contains(v.View(), "zzz") {
		t.Fatalf("expected banner naming the choice, got:\n%s", v.View())
	}
}

func TestEmptyPatternShowsEverything(t *testing.T) {
	v := newView(t, testRecords())
	v.Update(fieldpicker.ChosenMsg{Choice: "2"})
	v.Update(enter())

	if _, ok := v.Machine().State().(browse.Idle); !ok {
		t.Fatalf("expected idle, got %v", v.Machine().State())
	}
	if len(v.Machine().View()) != 5 {
		t.Fatalf("expected all records, got %d", len(v.Machine().View()))
	}
}

func TestNoMatchesShowsMessage(t *testing.T) {
	v := newView(t, testRecords())
	v.Update(fieldpicker.ChosenMsg{Choice: "2"})
	typeText(v, "nothing-like-this")
	v.Update(enter())

	if !strings.Contains(ansi.Strip(v.View()), "No records match Title ~ nothing-like-this") {
		t.Fatalf("expected no-match message, got:\n%s", v.View())
	}
	if _, ok := v.SelectedRecord(); ok {
		t.Fatal("expected no selection")
	}
}

func TestNoRecordsFound(t *testing.T) {
	v := newView(t, nil)
	if !strings.Contains(v.View(), "No records found") {
		t.Fatalf("expected empty message, got:\n%s", v.View())
	}
}

func TestCursorMovesAndEnterOpensDetail(t *testing.T) {
	v := newView(t, testRecords())
	v.Update(runes("j"))
	v.Update(runes("j"))
	v.Update(runes("k"))

	rec, ok := v.SelectedRecord()
	if !ok || rec["id"] != float64(2) {
		t.Fatalf("expected record 2 selected, got %v", rec)
	}

	u := v.Update(enter())
	if u.Action != viewstate.Push {
		t.Fatalf("expected push, got %v", u.Action)
	}
	if _, ok := u.Next.(*detailview.View); !ok {
		t.Fatalf("expected detail view, got %T", u.Next)
	}

	v.Update(runes("G"))
	if rec, _ := v.SelectedRecord(); rec["id"] != float64(5) {
		t.Fatalf("expected last record, got %v", rec)
	}
}

func TestScrollKeepsCursorVisible(t *testing.T) {
	v := newView(t, testRecords())
	v.SetSize(100, 6) // room for two body lines

	v.Update(runes("G"))
	out := ansi.Strip(v.View())
	if !strings.Contains(out, "prefix FIX handling") {
		t.Fatalf("expected last record visible, got:\n%s", out)
	}
	if strings.Contains(out, "Fix login redirect") {
		t.Fatalf("expected first record scrolled away, got:\n%s", out)
	}
}

func TestColumnPickerChangesFields(t *testing.T) {
	store := columnconfig.NewStore()
	m, _ := browse.New(testRegistry(), testRecords(), nil)
	v := New(m, Options{Store: store})
	v.SetSize(100, 30)

	u := v.Update(runes("p"))
	if _, ok := u.Next.(*columnpicker.Picker); !ok {
		t.Fatalf("expected column picker, got %T", u.Next)
	}

	v.Update(columnpicker.PickedMsg{Kind: "pull requests", Visible: []string{"title", "sourceBranch"}})
	if got := fields.IDsOf(v.Machine().Fields()); strings.Join(got, ",") != "title,sourceBranch" {
		t.Fatalf("unexpected fields %v", got)
	}
	if !store.IsCustom("pull requests") {
		t.Fatal("expected store to remember the choice")
	}
	if !strings.Contains(ansi.Strip(v.View()), "Source") {
		t.Fatalf("expected new column header, got:\n%s", v.View())
	}

	// A new view of the same kind starts with the remembered columns.
	m2, _ := browse.New(testRegistry(), testRecords(), nil)
	v2 := New(m2, Options{Store: store})
	if got := fields.IDsOf(v2.Machine().Fields()); strings.Join(got, ",") != "title,sourceBranch" {
		t.Fatalf("expected remembered fields, got %v", got)
	}
}

func TestInvalidPresetOpensInputWithWarning(t *testing.T) {
	m, _ := browse.New(testRegistry(), testRecords(), nil)
	err := m.Preset("title", "[")
	if err == nil {
		t.Fatal("expected preset error")
	}
	v := New(m, Options{Store: columnconfig.NewStore(), Warning: err.Error()})
	v.SetSize(100, 30)

	if !v.inputActive {
		t.Fatal("expected pattern input to be open")
	}
	if !strings.Contains(v.View(), "invalid pattern") {
		t.Fatalf("expected warning banner, got:\n%s", v.View())
	}
}

func TestExitEndsSession(t *testing.T) {
	v := newView(t, testRecords())
	v.Exit()
	if !v.Machine().Exited() {
		t.Fatal("expected machine to be exited")
	}
}
