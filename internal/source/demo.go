package source

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	"github.com/dloss/adoview/internal/records"
)

const (
	demoOrganization = "https://dev.azure.com/contoso"
	demoProject      = "Storefront"
	demoPullRequests = 24
	demoWorkItems    = 36
)

// Demo is a Source of deterministic fixture records, for trying the UI
// without an Azure DevOps account.
type Demo struct{}

func (Demo) Fetch(_ context.Context, q Query) ([]records.Record, error) {
	var recs []records.Record
	switch q.Kind {
	case WorkItems:
		recs = demoWorkItemRecords(demoWorkItems)
	default:
		recs = demoPullRequestRecords(demoPullRequests)
	}
	if q.Top > 0 && len(recs) > q.Top {
		recs = recs[:q.Top]
	}
	return recs, nil
}

func (Demo) Defaults(context.Context) (Defaults, error) {
	return Defaults{Organization: demoOrganization, Project: demoProject}, nil
}

var (
	demoPeople = []map[string]any{
		{"displayName": "Jane Doe", "uniqueName": "jane.doe@contoso.com"},
		{"displayName": "Ravi Patel", "uniqueName": "ravi.patel@contoso.com"},
		{"displayName": "Mei Chen", "uniqueName": "mei.chen@contoso.com"},
		{"uniqueName": "build-bot@contoso.com"},
		{"displayName": "Tomás García", "uniqueName": "tomas.garcia@contoso.com"},
	}
	demoRepos  = []string{"storefront-web", "checkout-api", "catalog-service", "infra-pipelines"}
	demoTitles = []string{
		"Fix login redirect loop on expired sessions",
		"Add dark mode toggle to account settings",
		"Bump dependency versions for security advisories",
		"Refactor cart totals into pricing module",
		"HOTFIX: null reference in coupon validation",
		"Document release checklist",
		"Cache catalog lookups for category pages",
		"Remove deprecated v1 checkout endpoints",
		"fix flaky integration test for payments",
		"Add retry with backoff to inventory client",
		"Split pipeline into build and deploy stages",
		"Localize shipping estimate messages",
	}
	demoStatuses = []string{"active", "active", "active", "completed", "abandoned"}
	demoMerge    = []string{"succeeded", "succeeded", "conflicts", "queued", "notSet"}
	demoTypes    = []string{"User Story", "Bug", "Task", "Task", "Feature"}
	demoStates   = []string{"New", "Active", "Active", "Resolved", "Closed"}
	demoAreas    = []string{`Storefront\Web`, `Storefront\Checkout`, `Storefront\Platform\Pipelines`, `Storefront`}
	demoTags     = []string{"", "frontend", "frontend; accessibility", "payments;backend", "tech-debt ; backend ; q3"}
)

func demoRand(seed string) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(seed))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}

func demoPullRequestRecords(n int) []records.Record {
	rng := demoRand("pull requests")
	base := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	recs := make([]records.Record, 0, n)
	for i := 0; i < n; i++ {
		id := 4100 + i*3 + rng.Intn(3)
		repo := pick(rng, demoRepos)
		title := demoTitles[i%len(demoTitles)]
		reviewers := []any{pick(rng, demoPeople), pick(rng, demoPeople)}
		rec := records.Record{
			"id":           float64(id),
			"title":        title,
			"createdBy":    pick(rng, demoPeople),
			"repository":   repo,
			"project":      demoProject,
			"sourceBranch": "refs/heads/" + demoBranch(title, id),
			"targetBranch": "refs/heads/main",
			"status":       pick(rng, demoStatuses),
			"isDraft":      rng.Intn(5) == 0,
			"reviewers":    reviewers,
			"mergeStatus":  pick(rng, demoMerge),
			"creationDate": base.Add(time.Duration(i*7+rng.Intn(5)) * time.Hour).Format(time.RFC3339),
			"description":  "Demo pull request for " + strings.ToLower(title) + ".",
		}
		rec[records.LinkField] = pullRequestURL(demoOrganization, demoProject, repo, rec["id"])
		recs = append(recs, rec)
	}
	return recs
}

func demoWorkItemRecords(n int) []records.Record {
	rng := demoRand("work items")
	base := time.Date(2026, 8, 15, 8, 30, 0, 0, time.UTC)
	recs := make([]records.Record, 0, n)
	for i := 0; i < n; i++ {
		id := 9000 + i
		sprint := 40 + i%4
		rec := records.Record{
			"id":                                      float64(id),
			"System.Id":                               float64(id),
			"System.WorkItemType":                     pick(rng, demoTypes),
			"System.Title":                            demoTitles[(i*5)%len(demoTitles)],
			"System.State":                            pick(rng, demoStates),
			"System.AssignedTo":                       pick(rng, demoPeople),
			"System.CreatedBy":                        pick(rng, demoPeople),
			"System.AreaPath":                         pick(rng, demoAreas),
			"System.IterationPath":                    fmt.Sprintf(`%s\2026\Sprint %d`, demoProject, sprint),
			"System.TeamProject":                      demoProject,
			"Microsoft.VSTS.Common.Priority":          float64(1 + rng.Intn(4)),
			"Microsoft.VSTS.Scheduling.RemainingWork": float64(rng.Intn(16)),
			"System.CreatedDate":                      base.Add(time.Duration(i*11) * time.Hour).Format(time.RFC3339),
			"System.ChangedDate":                      base.Add(time.Duration(i*11+rng.Intn(48)) * time.Hour).Format(time.RFC3339),
		}
		if tags := pick(rng, demoTags); tags != "" {
			rec["System.Tags"] = tags
		}
		if i%6 != 0 {
			rec["System.Parent"] = float64(9000 + (i/6)*6)
		}
		rec[records.LinkField] = workItemURL(demoOrganization, demoProject, rec["id"])
		recs = append(recs, rec)
	}
	return recs
}

func demoBranch(title string, id int) string {
	words := strings.Fields(strings.ToLower(title))
	if len(words) > 3 {
		words = words[:3]
	}
	for i, w := range words {
		words[i] = strings.Trim(w, ":.,")
	}
	return fmt.Sprintf("feature/%d-%s", id, strings.Join(words, "-"))
}
