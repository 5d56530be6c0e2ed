package fields

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// DefaultWeight is the display weight given to fields without a descriptor.
const DefaultWeight = 0.1

// Kind selects how a raw value is normalized for display.
type Kind int

const (
	KindPlain Kind = iota
	KindPerson
	KindPath
	KindTags
	KindRef
	KindDate
)

var kindNames = map[Kind]string{
	KindPlain:  "plain",
	KindPerson: "person",
	KindPath:   "path",
	KindTags:   "tags",
	KindRef:    "ref",
	KindDate:   "date",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "plain"
}

// ParseKind maps a config string to a Kind. Unknown names are plain.
func ParseKind(name string) Kind {
	name = strings.ToLower(strings.TrimSpace(name))
	for kind, n := range kindNames {
		if n == name {
			return kind
		}
	}
	return KindPlain
}

// Wrap selects how cell text is broken across lines.
type Wrap int

const (
	WrapWords Wrap = iota
	WrapChunk      // fixed-width slices, for identifiers without spaces
)

// Descriptor describes how to label, size and normalize one field.
type Descriptor struct {
	ID        string
	Label     string
	Weight    float64 // share of the table width, (0,1]
	Color     string  // lipgloss color; empty for none
	Kind      Kind
	Delimiter string // path separator or tag separator, depending on Kind
	Path      string // optional JMESPath used when the ID is not a direct key
	Wrap      Wrap
}

// EffectiveWeight clamps the weight into (0,1].
func (d Descriptor) EffectiveWeight() float64 {
	switch {
	case d.Weight <= 0:
		return DefaultWeight
	case d.Weight > 1:
		return 1
	default:
		return d.Weight
	}
}

// UnknownFieldWarning reports a field id with no registry entry. It is not
// fatal: the field is shown with its id as label.
type UnknownFieldWarning struct {
	ID string
}

func (w *UnknownFieldWarning) Error() string {
	return fmt.Sprintf("unknown field %q, showing it with default settings", w.ID)
}

// Registry maps field ids to descriptors. Safe for concurrent reads.
type Registry struct {
	mu       sync.RWMutex
	name     string
	byID     map[string]Descriptor
	order    []string
	defaults []string
}

func NewRegistry(name string, defaults []string, descriptors ...Descriptor) *Registry {
	r := &Registry{name: name, byID: make(map[string]Descriptor, len(descriptors))}
	for _, d := range descriptors {
		r.Register(d)
	}
	r.defaults = append([]string(nil), defaults...)
	return r
}

// Name identifies the record kind this registry describes ("pull requests").
func (r *Registry) Name() string {
	return r.name
}

// Register adds or replaces a descriptor. An empty label becomes the id.
func (r *Registry) Register(d Descriptor) {
	d.ID = strings.TrimSpace(d.ID)
	if d.ID == "" {
		return
	}
	if strings.TrimSpace(d.Label) == "" {
		d.Label = d.ID
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[d.ID]; !exists {
		r.order = append(r.order, d.ID)
	}
	r.byID[d.ID] = d
}

// Lookup returns the descriptor for id and whether it was registered.
func (r *Registry) Lookup(id string) (Descriptor, bool) {
	r.mu.RLock()
	d, ok := r.byID[id]
	r.mu.RUnlock()
	return d, ok
}

// Describe never fails: unknown ids get the id as label, DefaultWeight and
// no color.
func (r *Registry) Describe(id string) Descriptor {
	if d, ok := r.Lookup(id); ok {
		return d
	}
	return Descriptor{ID: id, Label: id, Weight: DefaultWeight}
}

// Resolve describes ids in order. Unknown ids are described with fallbacks
// and reported as warnings.
func (r *Registry) Resolve(ids []string) ([]Descriptor, []error) {
	descriptors := make([]Descriptor, 0, len(ids))
	var warnings []error
	for _, id := range ids {
		if _, ok := r.Lookup(id); !ok {
			warnings = append(warnings, &UnknownFieldWarning{ID: id})
		}
		descriptors = append(descriptors, r.Describe(id))
	}
	return descriptors, warnings
}

// All returns the registered descriptors in registration order.
func (r *Registry) All() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Defaults returns the default display field ids.
func (r *Registry) Defaults() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.defaults...)
}

// SetDefaults replaces the default display field ids.
func (r *Registry) SetDefaults(ids []string) {
	if len(ids) == 0 {
		return
	}
	r.mu.Lock()
	r.defaults = append([]string(nil), ids...)
	r.mu.Unlock()
}

// IDs returns all registered ids sorted alphabetically.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	ids := append([]string(nil), r.order...)
	r.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

// ParseList splits a comma-separated field list, dropping blanks.
func ParseList(list string) []string {
	var ids []string
	for _, part := range strings.Split(list, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// IDsOf returns the ids of descriptors in order.
func IDsOf(descriptors []Descriptor) []string {
	ids := make([]string, len(descriptors))
	for i, d := range descriptors {
		ids[i] = d.ID
	}
	return ids
}
