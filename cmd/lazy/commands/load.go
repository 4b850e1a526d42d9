package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newLoadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load [components...]",
		Short: "Load components, retrying failed imports",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return nil
			}
			return c.app.Load(cmd.Context(), args, runOptions(cmd))
		},
	}
	cmd.Flags().BoolP("with-deps", "d", false, "Load declared dependencies first")
	return cmd
}

func (c *CLI) newPreloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preload [components...]",
		Short: "Preload components in the background and report their status",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return nil
			}
			return c.app.Preload(cmd.Context(), args, runOptions(cmd))
		},
	}
	cmd.Flags().BoolP("with-deps", "d", false, "Preload declared dependencies concurrently before each component")
	return cmd
}

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [components...]",
		Short: "Load components and reload them when their sources change",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return nil
			}
			return c.app.Watch(cmd.Context(), args, runOptions(cmd))
		},
	}
	cmd.Flags().BoolP("with-deps", "d", false, "Also watch declared dependencies")
	return cmd
}
