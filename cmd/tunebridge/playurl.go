package main

import (
	"github.com/spf13/cobra"

	"github.com/tunebridge/tunebridge/internal/output"
)

func playURLCommand() *cobra.Command {
	var connectionID string

	cmd := &cobra.Command{
		Use:   "play-url <smb-path>",
		Short: "Print the loopback streaming URL for a remote track",
		Long: "Starts the streaming gateway if needed and prints the URL an\n" +
			"external player can read the remote file from.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)

			id, err := app.remoteConnectionID(connectionID)
			if err != nil {
				return err
			}
			url, err := app.gateway.StreamingURL(args[0], id)
			if err != nil {
				return err
			}
			return app.printer.Print(output.URLResult{URL: url})
		},
	}

	cmd.Flags().StringVar(&connectionID, "connection", "", "connection id (defaults to the active remote source)")

	return cmd
}
