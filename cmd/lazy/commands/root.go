// Package commands implements the CLI commands for the lazy component loader.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/lazy/internal/app"
	"go.trai.ch/lazy/internal/build"
	"go.trai.ch/lazy/internal/core/domain"
)

// CLI represents the command line interface for lazy.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	ConfigureOutput(jsonMode, verbose bool)
	Load(ctx context.Context, names []string, opts app.RunOptions) error
	Preload(ctx context.Context, names []string, opts app.RunOptions) error
	Watch(ctx context.Context, names []string, opts app.RunOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "lazy",
		Short:         "Load, cache and preload UI components from a manifest",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("manifest", "m", domain.DefaultManifestName, "Path to the component manifest or its directory")
	rootCmd.PersistentFlags().Bool("json", false, "Emit log records as JSON")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show debug output including retries and spans")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		jsonMode, _ := cmd.Flags().GetBool("json")
		verbose, _ := cmd.Flags().GetBool("verbose")
		c.app.ConfigureOutput(jsonMode, verbose)
	}

	rootCmd.AddCommand(c.newLoadCmd())
	rootCmd.AddCommand(c.newPreloadCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// runOptions reads the flags shared by the component commands.
func runOptions(cmd *cobra.Command) app.RunOptions {
	manifest, _ := cmd.Flags().GetString("manifest")
	withDeps, _ := cmd.Flags().GetBool("with-deps")
	return app.RunOptions{
		Manifest: manifest,
		WithDeps: withDeps,
	}
}
