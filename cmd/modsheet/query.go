package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/small-frappuccino/modsheet/pkg/app"
	"github.com/small-frappuccino/modsheet/pkg/modsheet"
)

// errFailedReply makes the process exit non-zero after an error reply was printed.
var errFailedReply = errors.New("command failed")

// newQueryCmd mirrors the chat commands on the command line, against the
// configured row store.
func newQueryCmd(c *cli) *cobra.Command {
	queryCmd := &cobra.Command{
		Use:   "query",
		Short: "Run a mod command and print the reply",
	}

	var page int
	withPage := func(cmd *cobra.Command) *cobra.Command {
		cmd.Flags().IntVar(&page, "page", 1, "page number")
		return cmd
	}

	run := func(fn func(svc *modsheet.Service, cmd *cobra.Command, args []string) (modsheet.Reply, error)) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			components := app.Build(cmd.Context(), c.cfg)
			defer func() { _ = components.Close() }()

			reply, err := fn(components.Service, cmd, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply.Content)
			if reply.Failed() {
				return errFailedReply
			}
			return nil
		}
	}

	queryCmd.AddCommand(
		&cobra.Command{
			Use:   "help",
			Short: "Show the chat help text",
			Args:  cobra.NoArgs,
			RunE: run(func(svc *modsheet.Service, cmd *cobra.Command, args []string) (modsheet.Reply, error) {
				return svc.Help(), nil
			}),
		},
		withPage(&cobra.Command{
			Use:   "listmods",
			Short: "List every mod",
			Args:  cobra.NoArgs,
			RunE: run(func(svc *modsheet.Service, cmd *cobra.Command, args []string) (modsheet.Reply, error) {
				return svc.ListMods(cmd.Context(), page), nil
			}),
		}),
		withPage(&cobra.Command{
			Use:   "mods [category]",
			Short: "List mods of a category, or count mods per category",
			Args:  cobra.MaximumNArgs(1),
			RunE: run(func(svc *modsheet.Service, cmd *cobra.Command, args []string) (modsheet.Reply, error) {
				return svc.ModsByCategory(cmd.Context(), strings.Join(args, ""), page), nil
			}),
		}),
		withPage(&cobra.Command{
			Use:   "mods_by_priority <priority>",
			Short: "List mods with a priority",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(svc *modsheet.Service, cmd *cobra.Command, args []string) (modsheet.Reply, error) {
				return svc.ModsByPriority(cmd.Context(), args[0], page), nil
			}),
		}),
		withPage(&cobra.Command{
			Use:   "mods_by_installed <installed>",
			Short: "List installed or missing mods",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(svc *modsheet.Service, cmd *cobra.Command, args []string) (modsheet.Reply, error) {
				return svc.ModsByInstalled(cmd.Context(), args[0], page), nil
			}),
		}),
		withPage(&cobra.Command{
			Use:   "mods_by_alternative <alternative>",
			Short: "List mods with or without an alternative",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(svc *modsheet.Service, cmd *cobra.Command, args []string) (modsheet.Reply, error) {
				return svc.ModsByAlternative(cmd.Context(), args[0], page), nil
			}),
		}),
		withPage(&cobra.Command{
			Use:   "search <text>",
			Short: "Search mods by name or description",
			Args:  cobra.MinimumNArgs(1),
			RunE: run(func(svc *modsheet.Service, cmd *cobra.Command, args []string) (modsheet.Reply, error) {
				return svc.Search(cmd.Context(), strings.Join(args, " "), page), nil
			}),
		}),
		newAddModCmd(run),
		&cobra.Command{
			Use:   "updatefield <row> <field> <value>",
			Short: "Overwrite one cell of a row",
			Args:  cobra.MinimumNArgs(3),
			RunE: run(func(svc *modsheet.Service, cmd *cobra.Command, args []string) (modsheet.Reply, error) {
				row, err := strconv.Atoi(args[0])
				if err != nil {
					return modsheet.Reply{}, fmt.Errorf("invalid row %q: %w", args[0], err)
				}
				return svc.UpdateField(cmd.Context(), row, args[1], strings.Join(args[2:], " ")), nil
			}),
		},
	)
	return queryCmd
}

type runFunc func(fn func(svc *modsheet.Service, cmd *cobra.Command, args []string) (modsheet.Reply, error)) func(*cobra.Command, []string) error

func newAddModCmd(run runFunc) *cobra.Command {
	var req modsheet.AddRequest
	cmd := &cobra.Command{
		Use:   "addmod <mod-id>",
		Short: "Add a mod from NexusMods",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(svc *modsheet.Service, cmd *cobra.Command, args []string) (modsheet.Reply, error) {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return modsheet.Reply{}, fmt.Errorf("invalid mod id %q: %w", args[0], err)
			}
			req.ID = id
			return svc.AddMod(cmd.Context(), req), nil
		}),
	}
	cmd.Flags().StringVar(&req.Priority, "priority", "", "priority (Alta, Media, Baja, Vetada, Evaluar)")
	cmd.Flags().StringVar(&req.Alternative, "alternative", "", "whether an alternative exists (Sí, No)")
	cmd.Flags().StringVar(&req.Installed, "installed", "", "whether the mod is installed (Sí, No)")
	return cmd
}
