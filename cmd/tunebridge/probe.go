package main

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tunebridge/tunebridge/internal/browse"
	"github.com/tunebridge/tunebridge/internal/model"
	"github.com/tunebridge/tunebridge/internal/output"
)

func probeCommand() *cobra.Command {
	var connectionID string

	cmd := &cobra.Command{
		Use:   "probe <smb-path>",
		Short: "Probe metadata for one remote track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := withTimeout(context.Background(), app.timeout)
			defer cancel()

			id, err := app.remoteConnectionID(connectionID)
			if err != nil {
				return err
			}

			smbPath := args[0]
			name := path.Base(smbPath)
			placeholder := model.TrackEntry{
				Title: strings.TrimSuffix(name, path.Ext(name)),
				Path:  smbPath,
				URI:   smbPath,
			}
			track := app.probe.Enrich(ctx, id, placeholder)
			return app.printer.Print(output.TrackResult{Track: track})
		},
	}

	cmd.Flags().StringVar(&connectionID, "connection", "", "connection id (defaults to the active remote source)")

	return cmd
}

// remoteConnectionID resolves an explicit connection id, falling back
// to the active source when it is remote.
func (a *app) remoteConnectionID(explicit string) (string, error) {
	if explicit != "" {
		if _, ok := a.store.GetByID(explicit); !ok {
			return "", fmt.Errorf("no connection with id %q", explicit)
		}
		return explicit, nil
	}
	active := a.settings.ActiveSource()
	if active.Kind != browse.SourceRemote {
		return "", fmt.Errorf("active source is not remote; pass --connection")
	}
	return active.ConnectionID, nil
}
