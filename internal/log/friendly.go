package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
)

// NewFriendlyErrorHandler returns a handler that prints error records as
// "Error: <message>" with an optional suggestion line, for the console.
func NewFriendlyErrorHandler(w io.Writer) slog.Handler {
	return &friendlyHandler{w: w}
}

// ReportError prints err to w the way NewFriendlyErrorHandler does. A
// non-empty suggestion is shown on its own line.
func ReportError(w io.Writer, err error, suggestion string) {
	logger := slog.New(NewFriendlyErrorHandler(w))
	logger.Error("", "error", err, "suggestion", suggestion)
}

type friendlyHandler struct {
	w      io.Writer
	attrs  []slog.Attr
	groups []string
}

type attrEntry struct {
	key   string
	value string
}

func (h *friendlyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *friendlyHandler) Handle(_ context.Context, record slog.Record) error {
	summary := strings.TrimSpace(record.Message)
	entries := h.collectEntries(record)

	if summary == "" {
		for _, entry := range entries {
			if entry.key == "error" && entry.value != "" {
				summary = entry.value
				break
			}
		}
	}
	if summary == "" {
		summary = "an unknown error occurred"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Error: %s\n", summary)

	for _, entry := range entries {
		if entry.key == "suggestion" && entry.value != "" {
			fmt.Fprintf(&sb, "  suggestion: %s\n", entry.value)
		}
	}

	others := make([]attrEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.key == "suggestion" || entry.key == "error" || entry.value == "" {
			continue
		}
		others = append(others, entry)
	}
	sort.SliceStable(others, func(i, j int) bool {
		return others[i].key < others[j].key
	})
	for _, entry := range others {
		fmt.Fprintf(&sb, "  %s: %s\n", entry.key, strings.TrimSpace(entry.value))
	}

	_, err := io.WriteString(h.w, sb.String())
	return err
}

func (h *friendlyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

func (h *friendlyHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}

func (h *friendlyHandler) collectEntries(record slog.Record) []attrEntry {
	entries := make([]attrEntry, 0, len(h.attrs)+record.NumAttrs())
	add := func(attr slog.Attr) bool {
		entries = append(entries, attrEntry{key: h.fullKey(attr.Key), value: valueString(attr.Value.Resolve())})
		return true
	}
	for _, attr := range h.attrs {
		add(attr)
	}
	record.Attrs(add)
	return entries
}

func (h *friendlyHandler) fullKey(key string) string {
	if len(h.groups) == 0 {
		return key
	}
	return strings.Join(append(append([]string(nil), h.groups...), key), ".")
}

func valueString(val slog.Value) string {
	switch val.Kind() {
	case slog.KindGroup:
		parts := make([]string, 0, len(val.Group()))
		for _, attr := range val.Group() {
			parts = append(parts, attr.Key+"="+valueString(attr.Value.Resolve()))
		}
		return strings.Join(parts, ", ")
	case slog.KindAny:
		if err, ok := val.Any().(error); ok {
			return err.Error()
		}
		return fmt.Sprint(val.Any())
	default:
		return val.String()
	}
}
