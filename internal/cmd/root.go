// Package cmd is the adoview command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/dloss/adoview/internal/config"
	"github.com/dloss/adoview/internal/iostreams"
	"github.com/dloss/adoview/internal/log"
	"github.com/dloss/adoview/internal/source"
)

// BuildInfo is stamped into the binary at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

const rootLong = `adoview shows Azure DevOps pull requests and work items as a table
you can filter by one column and one pattern at a time.

Records are fetched with the az CLI and its azure-devops extension. The
organization and project default to the ones set with
"az devops configure --defaults".`

// globals holds the persistent flag values.
type globals struct {
	streams    *iostreams.IOStreams
	build      BuildInfo
	configPath string
	org        string
	project    string
	logLevel   string
	logFile    string
	noColor    bool
	// newSource lets tests replace the az-backed source.
	newSource func(logger *slog.Logger) source.Source
}

// NewRootCmd builds the command tree writing to streams.
func NewRootCmd(streams *iostreams.IOStreams, build BuildInfo) *cobra.Command {
	return newRootCmd(&globals{streams: streams, build: build, newSource: azureSource})
}

func newRootCmd(g *globals) *cobra.Command {
	streams := g.streams
	defaultConfig, err := config.DefaultPath()
	if err != nil {
		defaultConfig = ""
	}

	root := &cobra.Command{
		Use:           "adoview",
		Short:         "Browse and filter Azure DevOps pull requests and work items",
		Long:          rootLong,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetIn(streams.In)
	root.SetOut(streams.Out)
	root.SetErr(streams.ErrOut)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &config.ConfigurationError{Err: err}
	})
	// parses all flags not just the target command
	root.TraverseChildren = true

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, ConfigFlagName, defaultConfig, "Path to the configuration file to load.")
	pf.StringVar(&g.org, OrgFlagName, "", "Organization URL, e.g. https://dev.azure.com/contoso.")
	pf.StringVarP(&g.project, ProjectFlagName, "p", "", "Project name.")
	pf.StringVar(&g.logLevel, LogLevelFlagName, "", "Log level: trace, debug, info, warn or error.")
	pf.StringVar(&g.logFile, LogFileFlagName, "", "Write the log to this file.")
	pf.BoolVar(&g.noColor, NoColorFlagName, false, "Disable colors. NO_COLOR in the environment does the same.")

	prOpts := newPullRequestOptions()
	addBrowseFlags(root, prOpts)
	root.RunE = func(cmd *cobra.Command, args []string) error {
		return runBrowse(cmd, g, prOpts)
	}

	root.AddCommand(
		newPullRequestsCmd(g),
		newWorkItemsCmd(g),
		newFieldsCmd(g),
		newVersionCmd(g),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, streams *iostreams.IOStreams, build BuildInfo, args []string) int {
	root := NewRootCmd(streams, build)
	root.SetArgs(args)
	return exitCode(streams, root.ExecuteContext(ctx))
}

func exitCode(streams *iostreams.IOStreams, err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, context.Canceled) {
		return 1
	}
	suggestion := ""
	var unavailable *source.UnavailableError
	var configErr *config.ConfigurationError
	switch {
	case errors.As(err, &unavailable):
		suggestion = unavailable.Suggestion()
	case errors.As(err, &configErr):
		suggestion = "run adoview --help for usage"
	}
	log.ReportError(streams.ErrOut, err, suggestion)
	return 1
}

// loadConfig reads the config file and binds the persistent flags. A config
// file named on the command line must exist.
func (g *globals) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	explicit := cmd.Flags().Changed(ConfigFlagName)
	cfg, err := config.Load(g.configPath, explicit)
	if err != nil {
		return nil, err
	}
	bindings := map[string]string{
		config.OrganizationKey: OrgFlagName,
		config.ProjectKey:      ProjectFlagName,
		config.LogLevelKey:     LogLevelFlagName,
		config.LogFileKey:      LogFileFlagName,
	}
	for key, flag := range bindings {
		if err := cfg.BindFlag(key, cmd.Flag(flag)); err != nil {
			return nil, &config.ConfigurationError{Err: err}
		}
	}
	return cfg, nil
}

// applyColor switches lipgloss to plain ASCII when colors are off.
func (g *globals) applyColor(cfg *config.Config, getenv func(string) string) bool {
	color := cfg.GetBool(config.ColorKey) && !g.noColor && getenv("NO_COLOR") == ""
	if !color {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	return color
}

func azureSource(logger *slog.Logger) source.Source {
	return source.NewAzureCLI(source.NewRunner(), logger)
}

func newVersionCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the adoview version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := g.build.Version
			if v == "" {
				v = "dev"
			}
			_, err := fmt.Fprintf(g.streams.Out, "adoview %s", v)
			if err == nil && g.build.Commit != "" {
				_, err = fmt.Fprintf(g.streams.Out, " (%s, %s)", g.build.Commit, g.build.Date)
			}
			if err == nil {
				_, err = fmt.Fprintln(g.streams.Out)
			}
			return err
		},
	}
}
