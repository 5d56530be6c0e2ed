package records

import (
	"sync"

	"github.com/jmespath/go-jmespath"

	"github.com/dloss/adoview/internal/fields"
)

// Record is one fetched item: field id to raw JSON-decoded value. Records
// are never mutated after the source returns them.
type Record map[string]any

// LinkField holds the web URL synthesized by the sources.
const LinkField = "url"

var compiled sync.Map // path -> *jmespath.JMESPath

// Value returns the raw value for a descriptor: the direct key first, then
// the descriptor's JMESPath, if any.
func (r Record) Value(desc fields.Descriptor) any {
	if v, ok := r[desc.ID]; ok {
		return v
	}
	if desc.Path == "" {
		return nil
	}
	v, err := Search(desc.Path, r)
	if err != nil {
		return nil
	}
	return v
}

// String is the normalized display value for a descriptor.
func (r Record) String(desc fields.Descriptor) string {
	return Normalize(desc, r.Value(desc))
}

// Link returns the record's web URL, or "" if none.
func (r Record) Link() string {
	if s, ok := r[LinkField].(string); ok {
		return s
	}
	return ""
}

// Search evaluates a JMESPath expression against data. Records are
// converted to plain maps so the evaluator can walk them.
func Search(path string, data any) (any, error) {
	if rec, ok := data.(Record); ok {
		data = map[string]any(rec)
	}
	if cached, ok := compiled.Load(path); ok {
		return cached.(*jmespath.JMESPath).Search(data)
	}
	expr, err := jmespath.Compile(path)
	if err != nil {
		return nil, err
	}
	compiled.Store(path, expr)
	return expr.Search(data)
}
