package fields

// Record kinds understood by the sources.
const (
	PullRequests = "pull requests"
	WorkItems    = "work items"
)

// PullRequestFields describes the flattened records produced for
// `az repos pr list`.
func PullRequestFields() *Registry {
	return NewRegistry(PullRequests,
		[]string{"id", "title", "createdBy", "repository", "sourceBranch", "status"},
		Descriptor{ID: "id", Label: "ID", Weight: 0.07, Color: "241"},
		Descriptor{ID: "title", Label: "Title", Weight: 0.4, Color: "15"},
		Descriptor{ID: "createdBy", Label: "Author", Weight: 0.16, Color: "110", Kind: KindPerson},
		Descriptor{ID: "repository", Label: "Repository", Weight: 0.14, Color: "180", Wrap: WrapChunk},
		Descriptor{ID: "project", Label: "Project", Weight: 0.12, Color: "180"},
		Descriptor{ID: "sourceBranch", Label: "Source", Weight: 0.16, Color: "108", Kind: KindRef, Wrap: WrapChunk},
		Descriptor{ID: "targetBranch", Label: "Target", Weight: 0.12, Color: "108", Kind: KindRef, Wrap: WrapChunk},
		Descriptor{ID: "status", Label: "Status", Weight: 0.09, Color: "214"},
		Descriptor{ID: "isDraft", Label: "Draft", Weight: 0.06, Color: "241"},
		Descriptor{ID: "reviewers", Label: "Reviewers", Weight: 0.2, Color: "110", Kind: KindPerson},
		Descriptor{ID: "mergeStatus", Label: "Merge", Weight: 0.1, Color: "214"},
		Descriptor{ID: "creationDate", Label: "Created", Weight: 0.12, Color: "241", Kind: KindDate},
		Descriptor{ID: "closedDate", Label: "Closed", Weight: 0.12, Color: "241", Kind: KindDate},
		Descriptor{ID: "labels", Label: "Labels", Weight: 0.14, Color: "139"},
		Descriptor{ID: "description", Label: "Description", Weight: 0.3},
		Descriptor{ID: "url", Label: "URL", Weight: 0.25, Color: "67", Wrap: WrapChunk},
	)
}

// WorkItemFields describes the flattened records produced for
// `az boards query`.
func WorkItemFields() *Registry {
	return NewRegistry(WorkItems,
		[]string{"id", "System.WorkItemType", "System.Title", "System.State", "System.AssignedTo", "System.IterationPath"},
		Descriptor{ID: "id", Label: "ID", Weight: 0.07, Color: "241"},
		Descriptor{ID: "System.WorkItemType", Label: "Type", Weight: 0.1, Color: "180"},
		Descriptor{ID: "System.Title", Label: "Title", Weight: 0.4, Color: "15"},
		Descriptor{ID: "System.State", Label: "State", Weight: 0.1, Color: "214"},
		Descriptor{ID: "System.AssignedTo", Label: "Assigned To", Weight: 0.16, Color: "110", Kind: KindPerson},
		Descriptor{ID: "System.CreatedBy", Label: "Created By", Weight: 0.16, Color: "110", Kind: KindPerson},
		Descriptor{ID: "System.AreaPath", Label: "Area", Weight: 0.12, Color: "108", Kind: KindPath, Delimiter: `\`},
		Descriptor{ID: "System.IterationPath", Label: "Iteration", Weight: 0.12, Color: "108", Kind: KindPath, Delimiter: `\`},
		Descriptor{ID: "System.Tags", Label: "Tags", Weight: 0.15, Color: "139", Kind: KindTags, Delimiter: ";"},
		Descriptor{ID: "Microsoft.VSTS.Common.Priority", Label: "Priority", Weight: 0.06, Color: "203"},
		Descriptor{ID: "Microsoft.VSTS.Scheduling.RemainingWork", Label: "Remaining", Weight: 0.07},
		Descriptor{ID: "System.CreatedDate", Label: "Created", Weight: 0.12, Color: "241", Kind: KindDate},
		Descriptor{ID: "System.ChangedDate", Label: "Changed", Weight: 0.12, Color: "241", Kind: KindDate},
		Descriptor{ID: "System.Parent", Label: "Parent", Weight: 0.07, Color: "241"},
		Descriptor{ID: "url", Label: "URL", Weight: 0.25, Color: "67", Wrap: WrapChunk},
	)
}
