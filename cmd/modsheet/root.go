package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/small-frappuccino/modsheet/pkg/app"
	"github.com/small-frappuccino/modsheet/pkg/config"
	"github.com/small-frappuccino/modsheet/pkg/log"
)

// cli carries the configuration loaded by the root command.
type cli struct {
	cfg config.Config
	// logConsole receives console logs; nil means stdout/stderr.
	logConsole io.Writer
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "modsheet",
		Short: "Discord bot for the Stardew Valley mod sheet",
		Long: `modsheet serves slash commands that list, search and edit a spreadsheet
of Stardew Valley mods, and adds new rows from the NexusMods catalog.

Run without arguments to start the bot.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			c.cfg = cfg
			if cmd.Parent() != nil && cmd.Parent().Name() == "query" {
				c.logConsole = cmd.ErrOrStderr()
			}
			return app.SetupLogging(cfg, c.logConsole)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if log.GlobalLogger != nil {
				_ = log.GlobalLogger.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Serve(cmd.Context(), c.cfg)
		},
	}

	rootCmd.AddCommand(
		newServeCmd(c),
		newQueryCmd(c),
		newVersionCmd(),
	)
	return rootCmd
}

func newServeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bot until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Serve(cmd.Context(), c.cfg)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "modsheet %s\n", app.Version)
		},
	}
}
