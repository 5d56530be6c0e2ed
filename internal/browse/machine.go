package browse

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dloss/adoview/internal/fields"
	"github.com/dloss/adoview/internal/filter"
	"github.com/dloss/adoview/internal/records"
)

// ErrExited is returned for any event after Exit.
var ErrExited = errors.New("session has exited")

// UnexpectedEventError is returned for an event the current state does not
// accept. The state is left unchanged.
type UnexpectedEventError struct {
	State State
	Event Event
}

func (e *UnexpectedEventError) Error() string {
	return fmt.Sprintf("%T not accepted while %s", e.Event, e.State)
}

// Machine owns the browse state. Every filter is applied to the original
// record set, so filters never compose.
type Machine struct {
	registry *fields.Registry
	all      []records.Record
	fields   []fields.Descriptor
	state    State
	view     []records.Record
	logger   *slog.Logger
}

type Option func(*Machine)

// WithLogger sets the logger used for transitions. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// New starts in Idle with all records visible. Unknown field ids are
// displayed with fallback descriptors and returned as warnings.
func New(registry *fields.Registry, recs []records.Record, ids []string, opts ...Option) (*Machine, []error) {
	m := &Machine{
		registry: registry,
		all:      recs,
		state:    Idle{},
		view:     recs,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if len(ids) == 0 {
		ids = registry.Defaults()
	}
	var warnings []error
	m.fields, warnings = registry.Resolve(ids)
	for _, w := range warnings {
		m.logger.Warn("field not registered", "error", w)
	}
	return m, warnings
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// View returns the records visible in the current state.
func (m *Machine) View() []records.Record {
	return m.view
}

// Records returns the unfiltered record set.
func (m *Machine) Records() []records.Record {
	return m.all
}

// Fields returns the displayed field descriptors.
func (m *Machine) Fields() []fields.Descriptor {
	return append([]fields.Descriptor(nil), m.fields...)
}

// Registry returns the registry used to describe fields.
func (m *Machine) Registry() *fields.Registry {
	return m.registry
}

// Exited reports whether the session is over.
func (m *Machine) Exited() bool {
	_, ok := m.state.(Exited)
	return ok
}

// Filter returns the active field and pattern, or ok=false when no filter
// is active.
func (m *Machine) Filter() (field fields.Descriptor, pattern *filter.Pattern, ok bool) {
	if s, isFiltered := m.state.(PatternEntered); isFiltered {
		return s.Field, s.Pattern, true
	}
	return fields.Descriptor{}, nil, false
}

// Step applies one event. A rejected event leaves the state unchanged and
// returns an error suitable for showing to the operator.
func (m *Machine) Step(ev Event) error {
	if m.Exited() {
		return ErrExited
	}

	var err error
	switch ev := ev.(type) {
	case ChooseColumn:
		err = m.chooseColumn(ev)
	case SubmitPattern:
		err = m.submitPattern(ev)
	case ShowAll:
		m.transition(Idle{})
	case Exit:
		m.transition(Exited{})
	case Cancel:
		if _, ok := m.state.(FieldSelected); ok {
			m.transition(Idle{})
		}
	case SetFields:
		err = m.setFields(ev)
	default:
		err = &UnexpectedEventError{State: m.state, Event: ev}
	}
	if err != nil {
		m.logger.Debug("event rejected", "state", m.state.String(), "event", fmt.Sprintf("%T", ev), "error", err)
	}
	return err
}

// Preset applies a filter before the first render, as if the operator had
// chosen fieldID and typed expr. The field does not have to be displayed.
// An invalid pattern leaves the machine in FieldSelected.
func (m *Machine) Preset(fieldID, expr string) error {
	if fieldID == "" || expr == "" {
		return nil
	}
	field, err := ResolveColumn(m.fields, fieldID)
	if err != nil {
		field = m.registry.Describe(fieldID)
	}
	m.transition(FieldSelected{Field: field})
	return m.submitPattern(SubmitPattern{Expr: expr})
}

func (m *Machine) chooseColumn(ev ChooseColumn) error {
	field, err := ResolveColumn(m.fields, ev.Choice)
	if err != nil {
		return err
	}
	// Choosing a column from PatternEntered discards the active filter.
	m.transition(FieldSelected{Field: field})
	return nil
}

func (m *Machine) submitPattern(ev SubmitPattern) error {
	selected, ok := m.state.(FieldSelected)
	if !ok {
		return &UnexpectedEventError{State: m.state, Event: ev}
	}
	pattern, err := filter.Compile(ev.Expr)
	if err != nil {
		return err
	}
	if pattern == nil {
		m.transition(Idle{})
		return nil
	}
	m.transition(PatternEntered{Field: selected.Field, Pattern: pattern})
	return nil
}

func (m *Machine) setFields(ev SetFields) error {
	if len(ev.IDs) == 0 {
		return errors.New("at least one field must be displayed")
	}
	descs, warnings := m.registry.Resolve(ev.IDs)
	m.fields = descs
	for _, w := range warnings {
		m.logger.Warn("field not registered", "error", w)
	}
	return errors.Join(warnings...)
}

func (m *Machine) transition(next State) {
	m.logger.Debug("browse transition", "from", m.state.String(), "to", next.String())
	m.state = next
	switch s := next.(type) {
	case PatternEntered:
		m.view = filter.Apply(m.all, &s.Field, s.Pattern)
	case Exited:
		// keep the last view for whoever renders the final frame
	default:
		m.view = m.all
	}
}
