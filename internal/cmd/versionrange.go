package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/lyraproj/osgi-index/osgi"
)

// FlagFilterKey is the attribute used when rendering the range as a filter.
const FlagFilterKey = "filter-key"

func newRangeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "range <range> [versions...]",
		Short: "Parse a version range and test versions against it",
		Long: `Parse an OSGi version range such as "[1.0,2.0)" or a bare version, print its
canonical form, requirement filter and VERS URI, and report for each given
version whether the range includes it.`,
		Example: `osgi-index range "[1.0,2.0)" 1.0 1.5.0.beta 2.0`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runRange,
	}
	cmd.Flags().String(FlagFilterKey, "version", "attribute name used in the filter")
	return cmd
}

func runRange(cmd *cobra.Command, args []string) error {
	key, err := cmd.Flags().GetString(FlagFilterKey)
	if err != nil {
		return err
	}
	r, err := osgi.ParseVersionRange(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "range:    %s\n", r)
	fmt.Fprintf(out, "is range: %t\n", r.IsRange())
	fmt.Fprintf(out, "filter:   %s\n", r.Filter(key))
	if vers, err := r.Vers(); err == nil {
		fmt.Fprintf(out, "vers:     %s\n", vers)
	} else {
		fmt.Fprintf(out, "vers:     n/a (%v)\n", err)
	}

	if len(args) == 1 {
		return nil
	}
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"VERSION", "INCLUDED"})
	for _, arg := range args[1:] {
		v, err := osgi.ParseVersion(arg)
		if err != nil {
			return err
		}
		t.AppendRow(table.Row{v.String(), r.Includes(v)})
	}
	t.Render()
	return nil
}
