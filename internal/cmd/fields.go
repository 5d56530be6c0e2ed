package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dloss/adoview/internal/fields"
	"github.com/dloss/adoview/internal/records"
	"github.com/dloss/adoview/internal/table"
)

// fieldListing describes the columns of the fields command's own table.
var fieldListing = []fields.Descriptor{
	{ID: "id", Label: "ID", Weight: 0.35, Wrap: fields.WrapChunk},
	{ID: "label", Label: "Label", Weight: 0.2},
	{ID: "kind", Label: "Kind", Weight: 0.1},
	{ID: "weight", Label: "Weight", Weight: 0.1},
	{ID: "default", Label: "Shown", Weight: 0.1},
}

func newFieldsCmd(g *globals) *cobra.Command {
	var width int
	cmd := &cobra.Command{
		Use:       "fields [prs|workitems]",
		Short:     "List the known fields for pull requests or work items",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"prs", "pr", "workitems", "wi", "tasks"},
		RunE: func(cmd *cobra.Command, args []string) error {
			o := newPullRequestOptions()
			if len(args) == 1 && args[0] != "prs" && args[0] != "pr" {
				o = newWorkItemOptions()
			}
			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}
			g.applyColor(cfg, os.Getenv)

			reg := o.registry()
			if err := cfg.ApplyFields(reg, o.section); err != nil {
				return err
			}
			if width == 0 {
				width, _ = g.streams.Size()
			}
			_, err = fmt.Fprintln(g.streams.Out, table.Render(fieldRecords(reg), fieldListing, table.Allocate(fieldListing, width)))
			return err
		},
	}
	cmd.Flags().IntVarP(&width, WidthFlagName, "w", 0, "Table width. Defaults to the terminal width.")
	return cmd
}

func fieldRecords(reg *fields.Registry) []records.Record {
	shown := make(map[string]bool)
	for _, id := range reg.Defaults() {
		shown[id] = true
	}
	all := reg.All()
	out := make([]records.Record, 0, len(all))
	for _, d := range all {
		rec := records.Record{
			"id":     d.ID,
			"label":  d.Label,
			"kind":   d.Kind.String(),
			"weight": strconv.FormatFloat(d.EffectiveWeight(), 'f', 2, 64),
		}
		if shown[d.ID] {
			rec["default"] = "yes"
		}
		out = append(out, rec)
	}
	return out
}
