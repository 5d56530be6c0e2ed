package style

import (
	"strings"

	"github.com/dloss/adoview/internal/fields"
)

type statusLevel int

const (
	statusNeutral statusLevel = iota
	statusHealthy
	statusWarning
	statusError
)

// statusFields are the field ids whose cells are colored by value.
var statusFields = map[string]bool{
	"status":       true,
	"mergeStatus":  true,
	"System.State": true,
}

func classifyStatus(status string) statusLevel {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "active", "new", "approved", "succeeded", "queued", "in progress", "committed":
		return statusHealthy
	case "completed", "closed", "done", "resolved", "removed", "notset", "-":
		return statusNeutral
	case "conflicts", "failure", "rejectedbypolicy", "blocked":
		return statusError
	case "abandoned", "waiting", "draft":
		return statusWarning
	default:
		return statusNeutral
	}
}

// Status renders a status value in its severity color. Padding is kept.
func Status(value string) string {
	switch classifyStatus(value) {
	case statusHealthy:
		return Healthy.Render(value)
	case statusWarning:
		return Warning.Render(value)
	case statusError:
		return Error.Render(value)
	default:
		return value
	}
}

// StatusCell colors padded table cells of status-like fields. Other fields
// pass through unchanged.
func StatusCell(desc fields.Descriptor, line string) string {
	if !statusFields[desc.ID] {
		return line
	}
	trimmed := strings.TrimRight(line, " ")
	if trimmed == "" {
		return line
	}
	return Status(trimmed) + line[len(trimmed):]
}
