package main

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/tunebridge/tunebridge/internal/browse"
	"github.com/tunebridge/tunebridge/internal/daemon"
	"github.com/tunebridge/tunebridge/internal/model"
	"github.com/tunebridge/tunebridge/internal/output"
)

func lsCommand() *cobra.Command {
	var sourceSpec string
	var details bool

	cmd := &cobra.Command{
		Use:   "ls [folder]",
		Short: "List a folder on the active source",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := withTimeout(context.Background(), app.timeout)
			defer cancel()

			selection := app.settings.ActiveSource()
			if sourceSpec != "" {
				parsed, err := parseSourceSpec(sourceSpec)
				if err != nil {
					return err
				}
				selection = parsed
			}
			src, err := app.sourceFor(selection)
			if err != nil {
				return err
			}

			folder := ""
			if len(args) == 1 {
				folder = args[0]
			} else if start, ok := app.settings.DefaultFolder(daemon.SourceKey(selection)); ok {
				folder = start
			}

			var spinner *pterm.SpinnerPrinter
			if !app.json && !app.quiet {
				spinner, _ = pterm.DefaultSpinner.Start("listing " + displayFolder(folder))
			}
			entries, err := browse.Collect(ctx, src, folder)
			if spinner != nil {
				_ = spinner.Stop()
			}
			if err != nil {
				return err
			}

			if details {
				for i, entry := range entries {
					if track, ok := entry.(model.TrackEntry); ok {
						entries[i] = src.TrackDetails(ctx, track)
					}
				}
			}

			return app.printer.Print(output.EntriesResult{
				Source:  daemon.SourceKey(selection),
				Folder:  folder,
				Entries: entries,
			})
		},
	}

	cmd.Flags().StringVar(&sourceSpec, "source", "", "override the active source (local | smb:<connection-id>)")
	cmd.Flags().BoolVar(&details, "details", false, "probe full metadata for each track")

	return cmd
}

func displayFolder(folder string) string {
	if folder == "" {
		return "root"
	}
	return folder
}
