package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dloss/adoview/internal/app"
	"github.com/dloss/adoview/internal/browse"
	"github.com/dloss/adoview/internal/columnconfig"
	"github.com/dloss/adoview/internal/config"
	"github.com/dloss/adoview/internal/fields"
	"github.com/dloss/adoview/internal/iostreams"
	"github.com/dloss/adoview/internal/log"
	"github.com/dloss/adoview/internal/source"
	"github.com/dloss/adoview/internal/table"
	"github.com/dloss/adoview/internal/ui/browseview"
	"github.com/dloss/adoview/internal/ui/detailview"
	"github.com/dloss/adoview/internal/ui/style"
)

type browseOptions struct {
	kind    source.Kind
	section string

	fields      string
	filterField string
	filter      string
	interactive bool
	width       int
	demo        bool
	top         int

	// pull requests
	status     string
	repository string
	creator    string

	// work items
	types      string
	state      string
	assignedTo string
	wiql       string
}

func newPullRequestOptions() *browseOptions {
	return &browseOptions{kind: source.PullRequests, section: config.PullRequestSection}
}

func newWorkItemOptions() *browseOptions {
	return &browseOptions{kind: source.WorkItems, section: config.WorkItemSection}
}

func (o *browseOptions) registry() *fields.Registry {
	if o.kind == source.WorkItems {
		return fields.WorkItemFields()
	}
	return fields.PullRequestFields()
}

func addBrowseFlags(cmd *cobra.Command, o *browseOptions) {
	f := cmd.Flags()
	f.StringVarP(&o.fields, FieldsFlagName, "f", "", "Comma-separated field ids to display, in order.")
	f.StringVar(&o.filterField, FilterFieldFlagName, "", "Field to filter on before the first render. Needs --filter.")
	f.StringVar(&o.filter, FilterFlagName, "", "Case-insensitive regular expression for --filter-field.")
	f.BoolVarP(&o.interactive, InteractiveFlagName, "i", true, "Browse interactively. Off when stdin or stdout is not a terminal.")
	f.IntVarP(&o.width, WidthFlagName, "w", 0, "Table width for non-interactive output. Defaults to the terminal width.")
	f.BoolVar(&o.demo, DemoFlagName, false, "Use built-in demo records instead of calling az.")
	f.IntVar(&o.top, TopFlagName, 0, "Fetch at most this many records.")

	switch o.kind {
	case source.WorkItems:
		f.StringVarP(&o.types, TypeFlagName, "t", "", "Comma-separated work item types, e.g. Bug,Task.")
		f.StringVar(&o.state, StateFlagName, "", "Work item state. Defaults to anything not closed.")
		f.StringVar(&o.assignedTo, AssignedToFlagName, "", "Assignee display name, or @me.")
		f.StringVar(&o.wiql, WIQLFlagName, "", "Run this WIQL query instead of the generated one.")
	default:
		f.StringVarP(&o.status, StatusFlagName, "s", "", "Pull request status: active, completed, abandoned or all.")
		f.StringVar(&o.repository, RepositoryFlagName, "", "Repository name.")
		f.StringVar(&o.creator, CreatorFlagName, "", "Creator display name or email.")
	}
}

func newPullRequestsCmd(g *globals) *cobra.Command {
	o := newPullRequestOptions()
	cmd := &cobra.Command{
		Use:     "prs",
		Aliases: []string{"pr", "pullrequests"},
		Short:   "Browse pull requests",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd, g, o)
		},
	}
	addBrowseFlags(cmd, o)
	return cmd
}

func newWorkItemsCmd(g *globals) *cobra.Command {
	o := newWorkItemOptions()
	cmd := &cobra.Command{
		Use:     "workitems",
		Aliases: []string{"wi", "tasks"},
		Short:   "Browse work items",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd, g, o)
		},
	}
	addBrowseFlags(cmd, o)
	return cmd
}

// bindSection lets the kind-specific flags override their config keys.
func (o *browseOptions) bindSection(cmd *cobra.Command, cfg *config.Config) error {
	bindings := map[string]string{o.section + ".fields": FieldsFlagName}
	switch o.kind {
	case source.WorkItems:
		bindings[config.WorkItemTypesKey] = TypeFlagName
	default:
		bindings[config.PRStatusKey] = StatusFlagName
	}
	for key, flag := range bindings {
		if err := cfg.BindFlag(key, cmd.Flag(flag)); err != nil {
			return &config.ConfigurationError{Err: err}
		}
	}
	return nil
}

func (o *browseOptions) validate() error {
	switch {
	case (o.filterField == "") != (o.filter == ""):
		return fmt.Errorf("--%s and --%s must be used together", FilterFieldFlagName, FilterFlagName)
	case o.width < 0:
		return fmt.Errorf("--%s must not be negative", WidthFlagName)
	case o.top < 0:
		return fmt.Errorf("--%s must not be negative", TopFlagName)
	}
	return nil
}

func (o *browseOptions) query(cfg *config.Config, reg *fields.Registry) source.Query {
	q := source.Query{
		Kind:         o.kind,
		Organization: cfg.GetString(config.OrganizationKey),
		Project:      cfg.GetString(config.ProjectKey),
		Top:          o.top,
	}
	switch o.kind {
	case source.WorkItems:
		q.Types = cfg.GetList(config.WorkItemTypesKey)
		q.State = o.state
		q.AssignedTo = o.assignedTo
		q.WIQL = o.wiql
		q.Fields = reg.Defaults()
	default:
		q.Status = cfg.GetString(config.PRStatusKey)
		q.Repository = o.repository
		q.Creator = o.creator
	}
	return q
}

type defaultsReader interface {
	Defaults(ctx context.Context) (source.Defaults, error)
}

// resolveScope fills a missing organization or project from the source's
// own defaults so the header can show them.
func resolveScope(ctx context.Context, src source.Source, q source.Query, logger *slog.Logger) source.Query {
	if q.Organization != "" && q.Project != "" {
		return q
	}
	reader, ok := src.(defaultsReader)
	if !ok {
		return q
	}
	d, err := reader.Defaults(ctx)
	if err != nil {
		logger.Debug("reading source defaults failed", "error", err)
		return q
	}
	if q.Organization == "" {
		q.Organization = d.Organization
	}
	if q.Project == "" {
		q.Project = d.Project
	}
	return q
}

func runBrowse(cmd *cobra.Command, g *globals, o *browseOptions) error {
	if err := o.validate(); err != nil {
		return &config.ConfigurationError{Err: err}
	}
	cfg, err := g.loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := o.bindSection(cmd, cfg); err != nil {
		return err
	}
	color := g.applyColor(cfg, os.Getenv)
	interactive := o.interactive && g.streams.IsTerminal()

	logger, closeLog, err := log.New(log.Options{
		Level:       cfg.GetString(config.LogLevelKey),
		File:        cfg.GetString(config.LogFileKey),
		Interactive: interactive,
		Stderr:      g.streams.ErrOut,
	})
	if err != nil {
		return &config.ConfigurationError{Err: err}
	}
	defer func() { _ = closeLog() }()

	reg := o.registry()
	if err := cfg.ApplyFields(reg, o.section); err != nil {
		return err
	}

	var src source.Source = source.Demo{}
	if !o.demo {
		src = g.newSource(logger)
	}

	ctx := cmd.Context()
	q := resolveScope(ctx, src, o.query(cfg, reg), logger)
	logger.Info("fetching records", "kind", q.Kind.String(), "organization", q.Organization, "project", q.Project)

	recs, err := src.Fetch(ctx, q)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		_, err := fmt.Fprintln(g.streams.Out, "No records found")
		return err
	}

	machine, warnings := browse.New(reg, recs, nil, browse.WithLogger(logger))
	if err := machine.Preset(o.filterField, o.filter); err != nil {
		logger.Warn("preset filter rejected", "error", err)
		warnings = append(warnings, err)
	}

	if !interactive {
		for _, w := range warnings {
			fmt.Fprintf(g.streams.ErrOut, "Warning: %s\n", w)
		}
		return renderTable(g.streams, machine, o.width, color)
	}
	return runInteractive(ctx, g.streams, machine, q, joinWarnings(warnings))
}

// joinWarnings folds warnings into the single banner line the table shows.
func joinWarnings(warnings []error) string {
	msgs := make([]string, len(warnings))
	for i, w := range warnings {
		msgs[i] = w.Error()
	}
	return strings.Join(msgs, "; ")
}

// renderTable prints the current view once, for pipes and scripts.
func renderTable(streams *iostreams.IOStreams, machine *browse.Machine, width int, color bool) error {
	if width == 0 {
		width, _ = streams.Size()
	}
	view := machine.View()
	if len(view) == 0 {
		field, pattern, _ := machine.Filter()
		_, err := fmt.Fprintf(streams.Out, "No records match %s ~ %s\n", field.Label, pattern)
		return err
	}

	descs := machine.Fields()
	var opts []table.Option
	if color {
		opts = append(opts, table.WithCellStyler(style.StatusCell))
	}
	out := table.Render(view, descs, table.Allocate(descs, width), opts...)
	_, err := fmt.Fprintln(streams.Out, out)
	return err
}

func runInteractive(ctx context.Context, streams *iostreams.IOStreams, machine *browse.Machine, q source.Query, warning string) error {
	root := browseview.New(machine, browseview.Options{
		Store:   columnconfig.Default(),
		Detail:  detailview.Options{Opener: source.NewBrowserOpener()},
		Warning: warning,
	})
	model := app.New(root, app.Options{Organization: q.Organization, Project: q.Project})
	program := bubbletea.NewProgram(model,
		bubbletea.WithAltScreen(),
		bubbletea.WithContext(ctx),
		bubbletea.WithInput(streams.In),
		bubbletea.WithOutput(streams.Out),
	)
	_, err := program.Run()
	return err
}
