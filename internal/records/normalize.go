package records

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dloss/adoview/internal/fields"
)

// Placeholder is shown for absent or empty values.
const Placeholder = "-"

// Identity sub-properties tried in order for person fields.
var personKeys = []string{"displayName", "uniqueName", "mailAddress"}

const (
	defaultPathDelimiter = `\`
	defaultTagDelimiter  = ";"
	dateLayout           = "2006-01-02 15:04"
)

// Normalize converts a raw value into its display string. Person objects are
// resolved before any generic stringification.
func Normalize(desc fields.Descriptor, raw any) string {
	if raw == nil {
		return Placeholder
	}

	switch desc.Kind {
	case fields.KindPerson:
		if obj, ok := raw.(map[string]any); ok {
			return personName(obj)
		}
	case fields.KindPath:
		if s, ok := raw.(string); ok {
			return leaf(s, delimiterOr(desc.Delimiter, defaultPathDelimiter))
		}
	case fields.KindTags:
		if s, ok := raw.(string); ok {
			return joinTags(s, delimiterOr(desc.Delimiter, defaultTagDelimiter))
		}
	case fields.KindRef:
		if s, ok := raw.(string); ok {
			return nonEmpty(trimRef(s))
		}
	case fields.KindDate:
		if s, ok := raw.(string); ok {
			return formatDate(s)
		}
	}

	switch list := raw.(type) {
	case []any:
		parts := make([]string, 0, len(list))
		for _, elem := range list {
			if v := Normalize(desc, elem); v != Placeholder {
				parts = append(parts, v)
			}
		}
		return nonEmpty(strings.Join(parts, ", "))
	case []string:
		parts := make([]string, 0, len(list))
		for _, elem := range list {
			if v := strings.TrimSpace(elem); v != "" {
				parts = append(parts, v)
			}
		}
		return nonEmpty(strings.Join(parts, ", "))
	}

	return stringify(raw)
}

func personName(obj map[string]any) string {
	for _, key := range personKeys {
		if s, ok := obj[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return Placeholder
}

func leaf(path, delimiter string) string {
	segments := strings.Split(strings.TrimRight(path, delimiter), delimiter)
	return nonEmpty(strings.TrimSpace(segments[len(segments)-1]))
}

func joinTags(value, delimiter string) string {
	var tags []string
	for _, tag := range strings.Split(value, delimiter) {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return nonEmpty(strings.Join(tags, ", "))
}

func trimRef(ref string) string {
	ref = strings.TrimSpace(ref)
	for _, prefix := range []string{"refs/heads/", "refs/tags/"} {
		if strings.HasPrefix(ref, prefix) {
			return strings.TrimPrefix(ref, prefix)
		}
	}
	return ref
}

func formatDate(value string) string {
	value = strings.TrimSpace(value)
	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts.UTC().Format(dateLayout)
	}
	return nonEmpty(value)
}

func stringify(raw any) string {
	switch v := raw.(type) {
	case string:
		return nonEmpty(strings.TrimSpace(v))
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case int, int32, int64, uint, uint32, uint64:
		return fmt.Sprint(v)
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return nonEmpty(fmt.Sprint(raw))
	}
	return string(b)
}

func delimiterOr(delimiter, fallback string) string {
	if delimiter == "" {
		return fallback
	}
	return delimiter
}

func nonEmpty(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}
