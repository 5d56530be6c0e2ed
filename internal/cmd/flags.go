package cmd

// Flag names shared by the subcommands.
const (
	ConfigFlagName      = "config"
	OrgFlagName         = "org"
	ProjectFlagName     = "project"
	LogLevelFlagName    = "log-level"
	LogFileFlagName     = "log-file"
	NoColorFlagName     = "no-color"
	FieldsFlagName      = "fields"
	FilterFieldFlagName = "filter-field"
	FilterFlagName      = "filter"
	InteractiveFlagName = "interactive"
	WidthFlagName       = "width"
	DemoFlagName        = "demo"
	TopFlagName         = "top"
	StatusFlagName      = "status"
	RepositoryFlagName  = "repository"
	CreatorFlagName     = "creator"
	TypeFlagName        = "type"
	StateFlagName       = "state"
	AssignedToFlagName  = "assigned-to"
	WIQLFlagName        = "wiql"
)
