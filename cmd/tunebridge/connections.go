package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tunebridge/tunebridge/internal/model"
	"github.com/tunebridge/tunebridge/internal/output"
)

func connectionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connections",
		Short: "Manage saved share connections",
	}
	cmd.AddCommand(connectionsAddCommand())
	cmd.AddCommand(connectionsLsCommand())
	cmd.AddCommand(connectionsRmCommand())
	return cmd
}

func connectionsAddCommand() *cobra.Command {
	var (
		nickname string
		host     string
		share    string
		user     string
		pass     string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save a new share connection",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			if host == "" || share == "" {
				return fmt.Errorf("--host and --share are required")
			}
			if nickname == "" {
				nickname = host
			}

			conn := model.NewConnection(nickname, host, share, user, pass)
			if err := app.store.Save(conn); err != nil {
				return err
			}
			if app.quiet {
				fmt.Println(conn.ID)
				return nil
			}
			return app.printer.Print(output.ConnectionsResult{Connections: []model.Connection{conn}})
		},
	}

	cmd.Flags().StringVar(&nickname, "nickname", "", "display name (defaults to host)")
	cmd.Flags().StringVar(&host, "host", "", "server hostname or address")
	cmd.Flags().StringVar(&share, "share", "", "share path, e.g. Music or Share/Audio")
	cmd.Flags().StringVar(&user, "user", "", "username (empty means anonymous)")
	cmd.Flags().StringVar(&pass, "pass", "", "password")

	return cmd
}

func connectionsLsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List saved connections",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			return app.printer.Print(output.ConnectionsResult{Connections: app.store.List()})
		},
	}
}

func connectionsRmCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <connection-id>",
		Short: "Delete a saved connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			if _, ok := app.store.GetByID(args[0]); !ok {
				return fmt.Errorf("no connection with id %q", args[0])
			}
			if err := app.store.Delete(args[0]); err != nil {
				return err
			}
			app.pool.Drop(args[0])
			return nil
		},
	}
}
