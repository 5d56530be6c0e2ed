// Package source fetches records by shelling out to the Azure CLI, or from
// built-in demo fixtures.
package source

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/dloss/adoview/internal/records"
)

// Kind selects which records a query returns.
type Kind int

const (
	PullRequests Kind = iota
	WorkItems
)

func (k Kind) String() string {
	if k == WorkItems {
		return "work items"
	}
	return "pull requests"
}

// Query holds the parameters for one fetch. Zero values leave the CLI's
// own defaults in place.
type Query struct {
	Kind         Kind
	Organization string
	Project      string

	// Pull requests.
	Status     string
	Repository string
	Creator    string

	// Work items.
	Types      []string
	State      string
	AssignedTo string
	WIQL       string   // replaces the generated query when set
	Fields     []string // reference names to select, e.g. System.Title

	Top int
}

// Source produces the records for a query.
type Source interface {
	Fetch(ctx context.Context, q Query) ([]records.Record, error)
}

const azTool = "az"

// AzureCLI is a Source backed by `az` with the azure-devops extension.
type AzureCLI struct {
	Runner Runner
	Logger *slog.Logger
}

func NewAzureCLI(runner Runner, logger *slog.Logger) *AzureCLI {
	if logger == nil {
		logger = slog.Default()
	}
	return &AzureCLI{Runner: runner, Logger: logger}
}

// Defaults holds the organization and project configured with
// `az devops configure --defaults`.
type Defaults struct {
	Organization string
	Project      string
}

// Defaults reads the CLI's configured organization and project.
func (a *AzureCLI) Defaults(ctx context.Context) (Defaults, error) {
	args := []string{"devops", "configure", "--list"}
	out, err := a.run(ctx, args)
	if err != nil {
		return Defaults{}, err
	}
	return parseDefaults(string(out)), nil
}

func parseDefaults(out string) Defaults {
	var d Defaults
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "organization":
			d.Organization = strings.TrimSpace(value)
		case "project":
			d.Project = strings.TrimSpace(value)
		}
	}
	return d
}

// Fetch runs the query for q.Kind. The scope is used as given; an empty
// organization or project leaves the choice to az itself.
func (a *AzureCLI) Fetch(ctx context.Context, q Query) ([]records.Record, error) {
	switch q.Kind {
	case WorkItems:
		return a.WorkItems(ctx, q)
	default:
		return a.PullRequests(ctx, q)
	}
}

// PullRequests lists pull requests and flattens them with prProjection.
func (a *AzureCLI) PullRequests(ctx context.Context, q Query) ([]records.Record, error) {
	status := q.Status
	if status == "" {
		status = "active"
	}
	args := []string{"repos", "pr", "list", "--output", "json", "--status", status}
	if q.Repository != "" {
		args = append(args, "--repository", q.Repository)
	}
	if q.Creator != "" {
		args = append(args, "--creator", q.Creator)
	}
	if q.Top > 0 {
		args = append(args, "--top", strconv.Itoa(q.Top))
	}
	args = append(args, scopeArgs(q)...)

	raw, err := a.runJSON(ctx, args)
	if err != nil {
		return nil, err
	}
	recs := make([]records.Record, 0, len(raw))
	for _, pr := range raw {
		rec, err := projectPullRequest(pr, q.Organization)
		if err != nil {
			return nil, &UnavailableError{Tool: azTool, Args: args, Err: err}
		}
		recs = append(recs, rec)
	}
	a.Logger.Info("fetched pull requests", "count", len(recs))
	return recs, nil
}

// WorkItems runs a WIQL query and flattens each item's fields.
func (a *AzureCLI) WorkItems(ctx context.Context, q Query) ([]records.Record, error) {
	wiql := q.WIQL
	if wiql == "" {
		wiql = BuildWIQL(q)
	}
	args := []string{"boards", "query", "--wiql", wiql, "--output", "json"}
	args = append(args, scopeArgs(q)...)

	raw, err := a.runJSON(ctx, args)
	if err != nil {
		return nil, err
	}
	recs := make([]records.Record, 0, len(raw))
	for _, item := range raw {
		recs = append(recs, flattenWorkItem(item, q.Organization, q.Project))
	}
	if q.Top > 0 && len(recs) > q.Top {
		recs = recs[:q.Top]
	}
	a.Logger.Info("fetched work items", "count", len(recs))
	return recs, nil
}

func scopeArgs(q Query) []string {
	var args []string
	if q.Organization != "" {
		args = append(args, "--org", q.Organization)
	}
	if q.Project != "" {
		args = append(args, "--project", q.Project)
	}
	return args
}

func (a *AzureCLI) run(ctx context.Context, args []string) ([]byte, error) {
	a.Logger.Debug("running az", "args", args)
	result, err := a.Runner.Run(ctx, azTool, args...)
	if err != nil {
		unavailable := &UnavailableError{Tool: azTool, Args: args, Err: err}
		if result != nil {
			unavailable.Stderr = result.Stderr
		}
		return nil, unavailable
	}
	return result.Stdout, nil
}

func (a *AzureCLI) runJSON(ctx context.Context, args []string) ([]map[string]any, error) {
	out, err := a.run(ctx, args)
	if err != nil {
		return nil, err
	}
	var raw []map[string]any
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, &UnavailableError{Tool: azTool, Args: args, Err: fmt.Errorf("decoding output: %w", err)}
	}
	return raw, nil
}

// prProjection maps record field ids to JMESPath expressions over one
// element of `az repos pr list` output.
var prProjection = []struct {
	id   string
	path string
}{
	{"id", "pullRequestId"},
	{"title", "title"},
	{"createdBy", "createdBy"},
	{"repository", "repository.name"},
	{"project", "repository.project.name"},
	{"sourceBranch", "sourceRefName"},
	{"targetBranch", "targetRefName"},
	{"status", "status"},
	{"isDraft", "isDraft"},
	{"reviewers", "reviewers"},
	{"mergeStatus", "mergeStatus"},
	{"creationDate", "creationDate"},
	{"closedDate", "closedDate"},
	{"description", "description"},
	{"labels", "labels[].name"},
}

func projectPullRequest(pr map[string]any, organization string) (records.Record, error) {
	rec := make(records.Record, len(prProjection)+1)
	for _, p := range prProjection {
		v, err := records.Search(p.path, pr)
		if err != nil {
			return nil, fmt.Errorf("projecting %s: %w", p.id, err)
		}
		if v != nil {
			rec[p.id] = v
		}
	}
	project, _ := rec["project"].(string)
	repo, _ := rec["repository"].(string)
	if link := pullRequestURL(organization, project, repo, rec["id"]); link != "" {
		rec[records.LinkField] = link
	}
	return rec, nil
}

func flattenWorkItem(item map[string]any, organization, project string) records.Record {
	rec := records.Record{}
	if f, ok := item["fields"].(map[string]any); ok {
		for k, v := range f {
			rec[k] = v
		}
	}
	if id, ok := item["id"]; ok {
		rec["id"] = id
	} else if id, ok := rec["System.Id"]; ok {
		rec["id"] = id
	}
	if p, ok := rec["System.TeamProject"].(string); ok && p != "" {
		project = p
	}
	if link := workItemURL(organization, project, rec["id"]); link != "" {
		rec[records.LinkField] = link
	}
	return rec
}

func pullRequestURL(organization, project, repo string, id any) string {
	if organization == "" || project == "" || repo == "" || id == nil {
		return ""
	}
	return fmt.Sprintf("%s/%s/_git/%s/pullrequest/%s",
		strings.TrimRight(organization, "/"), url.PathEscape(project), url.PathEscape(repo), idString(id))
}

func workItemURL(organization, project string, id any) string {
	if organization == "" || project == "" || id == nil {
		return ""
	}
	return fmt.Sprintf("%s/%s/_workitems/edit/%s",
		strings.TrimRight(organization, "/"), url.PathEscape(project), idString(id))
}

func idString(id any) string {
	if f, ok := id.(float64); ok {
		return strconv.FormatInt(int64(f), 10)
	}
	return fmt.Sprint(id)
}

// defaultWorkItemFields are always selected so the default table and the
// link can be built.
var defaultWorkItemFields = []string{
	"System.Id",
	"System.WorkItemType",
	"System.Title",
	"System.State",
	"System.AssignedTo",
	"System.IterationPath",
	"System.TeamProject",
}

// BuildWIQL builds the work item query for q's filters.
func BuildWIQL(q Query) string {
	selected := append([]string(nil), defaultWorkItemFields...)
	seen := make(map[string]bool, len(selected))
	for _, f := range selected {
		seen[f] = true
	}
	for _, f := range q.Fields {
		// Only reference names are selectable; synthesized ids are not.
		if !strings.Contains(f, ".") || seen[f] {
			continue
		}
		seen[f] = true
		selected = append(selected, f)
	}
	cols := make([]string, len(selected))
	for i, f := range selected {
		cols[i] = "[" + f + "]"
	}

	conditions := []string{"[System.TeamProject] = @project"}
	if len(q.Types) > 0 {
		quoted := make([]string, len(q.Types))
		for i, t := range q.Types {
			quoted[i] = wiqlString(t)
		}
		conditions = append(conditions, "[System.WorkItemType] IN ("+strings.Join(quoted, ", ")+")")
	}
	if q.State != "" {
		conditions = append(conditions, "[System.State] = "+wiqlString(q.State))
	} else {
		conditions = append(conditions, "[System.State] NOT IN ('Closed', 'Done', 'Removed')")
	}
	switch q.AssignedTo {
	case "":
	case "@me", "me":
		conditions = append(conditions, "[System.AssignedTo] = @me")
	default:
		conditions = append(conditions, "[System.AssignedTo] = "+wiqlString(q.AssignedTo))
	}

	return fmt.Sprintf("SELECT %s FROM WorkItems WHERE %s ORDER BY [System.ChangedDate] DESC",
		strings.Join(cols, ", "), strings.Join(conditions, " AND "))
}

func wiqlString(s string) string {
	return "'" + strings.ReplaceAll(strings.TrimSpace(s), "'", "''") + "'"
}
