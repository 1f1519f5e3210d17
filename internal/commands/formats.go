package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/stmtnorm/internal/formats"
)

func newFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported statement layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FORMAT\tALIASES\tDESCRIPTION")
			for _, info := range formats.Versions() {
				name := info.Name()
				if info.Version == formats.DefaultVersion {
					name += "*"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", name, strings.Join(info.Aliases, ", "), info.Description)
			}
			return tw.Flush()
		},
	}
}
