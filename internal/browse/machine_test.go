package browse

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/dloss/adoview/internal/fields"
	"github.com/dloss/adoview/internal/filter"
	"github.com/dloss/adoview/internal/records"
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
		{"id": float64(5), "title": "prefix FIX handling", "status": "active", "createdBy": map[string]any{"displayName": "Jane Doe"}, "sourceBranch": "refs/heads/fix/prefix"},
	}
}

func ids(recs []records.Record) []float64 {
	out := make([]float64, len(recs))
	for i, r := range recs {
		out[i] = r["id"].(float64)
	}
	return out
}

func newMachine(t *testing.T) *Machine {
	t.Helper()
	m, warnings := New(testRegistry(), testRecords(), nil)
	require.Empty(t, warnings)
	return m
}

func TestNewStartsIdleWithDefaults(t *testing.T) {
	m := newMachine(t)
	require.Equal(t, Idle{}, m.State())
	require.Equal(t, []string{"id", "title", "createdBy", "status"}, fields.IDsOf(m.Fields()))
	require.Len(t, m.View(), 5)
	_, _, ok := m.Filter()
	require.False(t, ok)
}

func TestNewReportsUnknownFields(t *testing.T) {
	m, warnings := New(testRegistry(), testRecords(), []string{"title", "Custom.Team"})
	require.Len(t, warnings, 1)

	var unknown *fields.UnknownFieldWarning
	require.True(t, errors.As(warnings[0], &unknown))
	require.Equal(t, "Custom.Team", unknown.ID)
	require.Equal(t, "Custom.Team", m.Fields()[1].Label)
}

func TestFilterScenario(t *testing.T) {
	m := newMachine(t)

	require.NoError(t, m.Step(ChooseColumn{Choice: "title"}))
	require.Equal(t, FieldSelected{Field: testRegistry().Describe("title")}, m.State())
	require.Len(t, m.View(), 5, "no filter is active before a pattern is entered")

	require.NoError(t, m.Step(SubmitPattern{Expr: "fix"}))
	state, ok := m.State().(PatternEntered)
	require.True(t, ok)
	require.Equal(t, "title", state.Field.ID)
	require.Equal(t, "fix", state.Pattern.String())
	if diff := cmp.Diff([]float64{1, 3, 5}, ids(m.View())); diff != "" {
		t.Fatalf("filtered ids mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, m.Step(ShowAll{}))
	require.Equal(t, Idle{}, m.State())
	if diff := cmp.Diff([]float64{1, 2, 3, 4, 5}, ids(m.View())); diff != "" {
		t.Fatalf("show all ids mismatch (-want +got):\n%s", diff)
	}
}

func TestChoosingAnotherColumnDiscardsFilter(t *testing.T) {
	m := newMachine(t)
	require.NoError(t, m.Step(ChooseColumn{Choice: "2"}))
	require.NoError(t, m.Step(SubmitPattern{Expr: "fix"}))
	require.Len(t, m.View(), 3)

	require.NoError(t, m.Step(ChooseColumn{Choice: "Status"}))
	selected, ok := m.State().(FieldSelected)
	require.True(t, ok)
	require.Equal(t, "status", selected.Field.ID)
	require.Len(t, m.View(), 5)

	require.NoError(t, m.Step(SubmitPattern{Expr: "^active$"}))
	require.Equal(t, []float64{1, 3, 5}, ids(m.View()))

	// Filters never compose: the new filter starts from all records.
	require.NoError(t, m.Step(ChooseColumn{Choice: "author"}))
	require.NoError(t, m.Step(SubmitPattern{Expr: "jane"}))
	require.Equal(t, []float64{1, 5}, ids(m.View()))
}

func TestInvalidPatternStaysInFieldSelected(t *testing.T) {
	m := newMachine(t)
	require.NoError(t, m.Step(ChooseColumn{Choice: "title"}))

	err := m.Step(SubmitPattern{Expr: "fix("})
	var invalid *filter.InvalidPatternError
	require.True(t, errors.As(err, &invalid))
	_, ok := m.State().(FieldSelected)
	require.True(t, ok)
	require.Len(t, m.View(), 5)

	require.NoError(t, m.Step(SubmitPattern{Expr: "fix"}))
	require.Len(t, m.View(), 3)
}

func TestEmptyPatternCancels(t *testing.T) {
	m := newMachine(t)
	require.NoError(t, m.Step(ChooseColumn{Choice: "title"}))
	require.NoError(t, m.Step(SubmitPattern{Expr: "  "}))
	require.Equal(t, Idle{}, m.State())
}

func TestCancel(t *testing.T) {
	m := newMachine(t)
	require.NoError(t, m.Step(ChooseColumn{Choice: "title"}))
	require.NoError(t, m.Step(Cancel{}))
	require.Equal(t, Idle{}, m.State())

	require.NoError(t, m.Step(ChooseColumn{Choice: "title"}))
	require.NoError(t, m.Step(SubmitPattern{Expr: "fix"}))
	require.NoError(t, m.Step(Cancel{}))
	_, ok := m.State().(PatternEntered)
	require.True(t, ok, "cancel does not clear an entered filter")
}

func TestSubmitPatternWithoutFieldIsRejected(t *testing.T) {
	m := newMachine(t)
	err := m.Step(SubmitPattern{Expr: "fix"})

	var unexpected *UnexpectedEventError
	require.True(t, errors.As(err, &unexpected))
	require.Equal(t, Idle{}, m.State())
}

func TestUnknownColumnKeepsState(t *testing.T) {
	m := newMachine(t)
	require.NoError(t, m.Step(ChooseColumn{Choice: "title"}))
	require.NoError(t, m.Step(SubmitPattern{Expr: "fix"}))

	err := m.Step(ChooseColumn{Choice: "zzz"})
	var unknown *UnknownColumnError
	require.True(t, errors.As(err, &unknown))
	_, ok := m.State().(PatternEntered)
	require.True(t, ok)
	require.Len(t, m.View(), 3)
}

func TestExitFromEveryState(t *testing.T) {
	setups := map[string][]Event{
		"idle":            nil,
		"field selected":  {ChooseColumn{Choice: "title"}},
		"pattern entered": {ChooseColumn{Choice: "title"}, SubmitPattern{Expr: "fix"}},
	}
	for name, events := range setups {
		t.Run(name, func(t *testing.T) {
			m := newMachine(t)
			for _, ev := range events {
				require.NoError(t, m.Step(ev))
			}
			require.NoError(t, m.Step(Exit{}))
			require.True(t, m.Exited())
			require.ErrorIs(t, m.Step(ShowAll{}), ErrExited)
			require.ErrorIs(t, m.Step(Exit{}), ErrExited)
		})
	}
}

func TestSetFieldsKeepsFilter(t *testing.T) {
	m := newMachine(t)
	require.NoError(t, m.Step(ChooseColumn{Choice: "title"}))
	require.NoError(t, m.Step(SubmitPattern{Expr: "fix"}))

	require.NoError(t, m.Step(SetFields{IDs: []string{"id", "status"}}))
	require.Equal(t, []string{"id", "status"}, fields.IDsOf(m.Fields()))
	field, pattern, ok := m.Filter()
	require.True(t, ok)
	require.Equal(t, "title", field.ID)
	require.Equal(t, "fix", pattern.String())
	require.Len(t, m.View(), 3)

	require.Error(t, m.Step(SetFields{}))
	require.Len(t, m.Fields(), 2)

	var unknown *fields.UnknownFieldWarning
	require.True(t, errors.As(m.Step(SetFields{IDs: []string{"id", "nope"}}), &unknown))
	require.Len(t, m.Fields(), 2)
}

func TestPreset(t *testing.T) {
	m := newMachine(t)
	require.NoError(t, m.Preset("title", "FIX"))
	require.Equal(t, []float64{1, 3, 5}, ids(m.View()))

	// The filter field does not have to be displayed.
	m = newMachine(t)
	require.NoError(t, m.Preset("sourceBranch", "^fix/"))
	require.Equal(t, []float64{5}, ids(m.View()))

	m = newMachine(t)
	require.NoError(t, m.Preset("", "fix"))
	require.Equal(t, Idle{}, m.State())

	m = newMachine(t)
	require.Error(t, m.Preset("title", "["))
	_, ok := m.State().(FieldSelected)
	require.True(t, ok)
}

func TestRecordsNeverMutated(t *testing.T) {
	m := newMachine(t)
	require.NoError(t, m.Step(ChooseColumn{Choice: "title"}))
	require.NoError(t, m.Step(SubmitPattern{Expr: "dark"}))
	require.Len(t, m.View(), 1)
	require.Len(t, m.Records(), 5)
	require.Equal(t, []float64{1, 2, 3, 4, 5}, ids(m.Records()))
}
