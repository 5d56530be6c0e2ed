package browse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/dloss/adoview/internal/fields"
)

// UnknownColumnError is returned when a column choice matches nothing.
type UnknownColumnError struct {
	Choice string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("no column matches %q", e.Choice)
}

// AmbiguousColumnError is returned when a prefix matches several columns.
type AmbiguousColumnError struct {
	Choice     string
	Candidates []string
}

func (e *AmbiguousColumnError) Error() string {
	return fmt.Sprintf("%q matches %s", e.Choice, strings.Join(e.Candidates, ", "))
}

// ResolveColumn picks one of descs for an operator choice. It tries, in
// order: a 1-based ordinal, an exact label or id, a unique label or id
// prefix, and finally the best fuzzy label match. Comparisons ignore case.
func ResolveColumn(descs []fields.Descriptor, choice string) (fields.Descriptor, error) {
	choice = strings.TrimSpace(choice)
	if choice == "" {
		return fields.Descriptor{}, &UnknownColumnError{Choice: choice}
	}

	if n, err := strconv.Atoi(choice); err == nil {
		if n < 1 || n > len(descs) {
			return fields.Descriptor{}, fmt.Errorf("column %d out of range 1-%d", n, len(descs))
		}
		return descs[n-1], nil
	}

	lower := strings.ToLower(choice)
	for _, d := range descs {
		if strings.ToLower(d.Label) == lower || strings.ToLower(d.ID) == lower {
			return d, nil
		}
	}

	var prefixed []fields.Descriptor
	for _, d := range descs {
		if strings.HasPrefix(strings.ToLower(d.Label), lower) || strings.HasPrefix(strings.ToLower(d.ID), lower) {
			prefixed = append(prefixed, d)
		}
	}
	switch len(prefixed) {
	case 1:
		return prefixed[0], nil
	case 0:
	default:
		labels := make([]string, len(prefixed))
		for i, d := range prefixed {
			labels[i] = d.Label
		}
		return fields.Descriptor{}, &AmbiguousColumnError{Choice: choice, Candidates: labels}
	}

	labels := make([]string, len(descs))
	for i, d := range descs {
		labels[i] = d.Label
	}
	if matches := fuzzy.Find(choice, labels); len(matches) > 0 {
		return descs[matches[0].Index], nil
	}
	return fields.Descriptor{}, &UnknownColumnError{Choice: choice}
}
