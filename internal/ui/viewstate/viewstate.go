package viewstate

import (
	bubbletea "github.com/charmbracelet/bubbletea"

	"github.com/dloss/adoview/internal/records"
)

type Action int

const (
	None Action = iota
	Push
	Pop
	Replace
)

type Update struct {
	Action Action
	Next   View
	Cmd    bubbletea.Cmd
}

type View interface {
	Init() bubbletea.Cmd
	Update(msg bubbletea.Msg) Update
	View() string
	Breadcrumb() string
	Footer() string
	SetSize(width, height int)
}

// SelectionProvider is implemented by views that have a selected record.
type SelectionProvider interface {
	SelectedRecord() (records.Record, bool)
}

// GlobalKeySuppresser is implemented by views that take text input and need
// keys like q and ? delivered to them.
type GlobalKeySuppresser interface {
	SuppressGlobalKeys() bool
}
