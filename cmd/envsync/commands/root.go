// Package commands implements the CLI commands for envsync.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/envsync/internal/adapters/config"
	"go.trai.ch/envsync/internal/app"
)

// App is the application surface the CLI drives.
type App interface {
	Sync(ctx context.Context, names []string, opts app.SyncOptions) error
	Check(ctx context.Context, names []string) (map[string]bool, error)
}

// CLI represents the command line interface for envsync.
type CLI struct {
	app     App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "envsync",
		Short:         "Keep Python development environments in sync with their declarations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultFilename, "Path to configuration file")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newSyncCmd())
	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetConfigHook sets up a PersistentPreRun function that retrieves the config
// flag and calls the provided callback with the config path.
func (c *CLI) SetConfigHook(fn func(string)) {
	c.rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			return err
		}
		fn(configPath)
		return nil
	}
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOut sets the writer for command output. Used for testing.
func (c *CLI) SetOut(w io.Writer) {
	c.rootCmd.SetOut(w)
}
