package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/envsync/internal/app"
)

func (c *CLI) newSyncCmd() *cobra.Command {
	var opts app.SyncOptions

	cmd := &cobra.Command{
		Use:   "sync [environments...]",
		Short: "Create or update environments whose dependencies changed",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Sync(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Update, "update", "u", false,
		"Reinstall dependencies even when nothing changed")
	cmd.Flags().BoolVar(&opts.ForceReinstall, "force-reinstall", false,
		"Discard fingerprints and rebuild environments from scratch")

	return cmd
}
