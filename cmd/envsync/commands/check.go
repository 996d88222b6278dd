package commands

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [environments...]",
		Short: "Report which environments are out of date, without installing",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := c.app.Check(cmd.Context(), args)
			if err != nil {
				return err
			}

			for _, name := range slices.Sorted(maps.Keys(results)) {
				state := "up-to-date"
				if results[name] {
					state = "changed"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, state)
			}
			return nil
		},
	}
}
