package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tunebridge/tunebridge/internal/daemon"
)

func favoritesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage favorite folders on the active source",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add <folder>",
		Short: "Save a favorite folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			return app.settings.AddFavorite(daemon.SourceKey(app.settings.ActiveSource()), args[0])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: "List favorite folders",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			favs := app.settings.Favorites(daemon.SourceKey(app.settings.ActiveSource()))
			if len(favs) == 0 && !app.quiet {
				fmt.Fprintln(os.Stdout, "(no favorites)")
				return nil
			}
			for _, folder := range favs {
				fmt.Fprintln(os.Stdout, folder)
			}
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rm <folder>",
		Short: "Remove a favorite folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			return app.settings.RemoveFavorite(daemon.SourceKey(app.settings.ActiveSource()), args[0])
		},
	})
	return cmd
}
