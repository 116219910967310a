package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tunebridge/tunebridge/internal/browse"
	"github.com/tunebridge/tunebridge/internal/daemon"
	"github.com/tunebridge/tunebridge/internal/output"
)

func sourceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "source",
		Short: "Show or change the active data source",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			return app.printer.Print(output.SourceResult{Active: app.settings.ActiveSource()})
		},
	}
	cmd.AddCommand(sourceSetCommand())
	cmd.AddCommand(sourceDefaultFolderCommand())
	return cmd
}

func sourceSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <local|smb:connection-id>",
		Short: "Select the active data source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			selection, err := parseSourceSpec(args[0])
			if err != nil {
				return err
			}
			if selection.Kind == browse.SourceRemote {
				if _, ok := app.store.GetByID(selection.ConnectionID); !ok {
					return fmt.Errorf("no connection with id %q", selection.ConnectionID)
				}
			}
			if err := app.settings.SetActiveSource(selection); err != nil {
				return err
			}
			return app.printer.Print(output.SourceResult{Active: selection})
		},
	}
}

func sourceDefaultFolderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "default-folder <folder>",
		Short: "Set the start folder for the active source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			key := daemon.SourceKey(app.settings.ActiveSource())
			return app.settings.SetDefaultFolder(key, args[0])
		},
	}
}
