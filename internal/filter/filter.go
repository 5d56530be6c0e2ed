// Package filter restricts a record set to the records whose normalized
// value for one field matches one pattern.
package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dloss/adoview/internal/fields"
	"github.com/dloss/adoview/internal/records"
)

// InvalidPatternError is returned by Compile for a malformed expression.
// It is meant to be shown to the operator, who then enters a new pattern.
type InvalidPatternError struct {
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

// Pattern is a compiled, case-insensitive match expression.
type Pattern struct {
	expr string
	re   *regexp.Regexp
}

// Compile parses expr as a case-insensitive regular expression. A plain
// word therefore matches as a substring. An empty expression means no
// filter and yields a nil Pattern.
func Compile(expr string) (*Pattern, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return nil, &InvalidPatternError{Pattern: expr, Err: err}
	}
	return &Pattern{expr: expr, re: re}, nil
}

// MustCompile is like Compile but panics on error. For tests and constants.
func MustCompile(expr string) *Pattern {
	p, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the expression as the operator typed it.
func (p *Pattern) String() string {
	if p == nil {
		return ""
	}
	return p.expr
}

// MatchString reports whether s matches. A nil pattern matches everything.
func (p *Pattern) MatchString(s string) bool {
	if p == nil {
		return true
	}
	return p.re.MatchString(s)
}

// Match reports whether the record's normalized value for field matches.
func (p *Pattern) Match(rec records.Record, field fields.Descriptor) bool {
	return p.MatchString(rec.String(field))
}

// Apply returns the records whose normalized value for field matches p, in
// their original order. The input is never modified. A nil or empty field,
// or a nil pattern, returns recs unchanged.
func Apply(recs []records.Record, field *fields.Descriptor, p *Pattern) []records.Record {
	if field == nil || field.ID == "" || p == nil {
		return recs
	}
	out := make([]records.Record, 0, len(recs))
	for _, rec := range recs {
		if p.Match(rec, *field) {
			out = append(out, rec)
		}
	}
	return out
}
