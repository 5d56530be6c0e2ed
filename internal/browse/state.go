// Package browse holds the filter state of an interactive session: which
// fields are displayed, which single filter is active, and which records
// are currently visible. It has no terminal dependencies; the UI feeds it
// events and renders whatever View returns.
package browse

import (
	"fmt"

	"github.com/dloss/adoview/internal/fields"
	"github.com/dloss/adoview/internal/filter"
)

// State is one of Idle, FieldSelected, PatternEntered or Exited.
type State interface {
	isState()
	fmt.Stringer
}

// Idle shows every record with no filter.
type Idle struct{}

// FieldSelected waits for a pattern for Field. No filter is active.
type FieldSelected struct {
	Field fields.Descriptor
}

// PatternEntered shows only the records whose Field matches Pattern.
type PatternEntered struct {
	Field   fields.Descriptor
	Pattern *filter.Pattern
}

// Exited is terminal. Every further event is rejected.
type Exited struct{}

func (Idle) isState()           {}
func (FieldSelected) isState()  {}
func (PatternEntered) isState() {}
func (Exited) isState()         {}

func (Idle) String() string { return "idle" }

func (s FieldSelected) String() string {
	return fmt.Sprintf("field selected (%s)", s.Field.Label)
}

func (s PatternEntered) String() string {
	return fmt.Sprintf("filtered (%s ~ /%s/)", s.Field.Label, s.Pattern)
}

func (Exited) String() string { return "exited" }

// Event is one operator action.
type Event interface {
	isEvent()
}

// ChooseColumn selects the filter field by 1-based ordinal or by label.
type ChooseColumn struct {
	Choice string
}

// SubmitPattern supplies the pattern for the selected field. An empty
// expression cancels the selection.
type SubmitPattern struct {
	Expr string
}

// ShowAll clears the active filter.
type ShowAll struct{}

// Exit ends the session.
type Exit struct{}

// Cancel abandons a field selection without filtering.
type Cancel struct{}

// SetFields replaces the displayed fields.
type SetFields struct {
	IDs []string
}

func (ChooseColumn) isEvent()  {}
func (SubmitPattern) isEvent() {}
func (ShowAll) isEvent()       {}
func (Exit) isEvent()          {}
func (Cancel) isEvent()        {}
func (SetFields) isEvent()     {}
