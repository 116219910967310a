package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/tunebridge/tunebridge/internal/browse"
	"github.com/tunebridge/tunebridge/internal/daemon"
	"github.com/tunebridge/tunebridge/internal/gateway"
	"github.com/tunebridge/tunebridge/internal/output"
	"github.com/tunebridge/tunebridge/internal/registry"
	"github.com/tunebridge/tunebridge/internal/smb"
)

type app struct {
	store    *registry.Store
	settings *daemon.SettingsStore
	pool     *smb.Pool
	gateway  *gateway.Gateway
	probe    *browse.Probe
	router   *browse.Router
	printer  output.Printer
	quiet    bool
	json     bool
	timeout  time.Duration
}

func main() {
	root := &cobra.Command{
		Use:           "tunebridge",
		Short:         "Browse and stream music from local folders and SMB shares",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var (
		configPath string
		timeout    time.Duration
		quiet      bool
		jsonOut    bool
	)

	defaultConfig, err := daemon.DefaultConfigPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	root.PersistentFlags().StringVar(&configPath, "config", defaultConfig, "config file path")
	root.PersistentFlags().DurationVarP(&timeout, "timeout", "t", 10*time.Second, "command timeout")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	root.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output json")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := daemon.LoadConfig(configPath)
		if err != nil {
			return err
		}
		dataDir, err := cfg.DataDir()
		if err != nil {
			return err
		}
		localRoot, err := cfg.LocalRoot()
		if err != nil {
			return err
		}

		logger := daemon.NewLogger(daemon.LogConfig{Level: "error", Output: "stderr"})

		store, err := registry.NewStore(filepath.Join(dataDir, "connections.json"), logger)
		if err != nil {
			return err
		}
		settings, err := daemon.NewSettingsStore(filepath.Join(dataDir, "settings.json"))
		if err != nil {
			return err
		}

		pool := smb.NewPool(logger)
		gw := gateway.New(logger, store, pool.Open, gateway.Config{Port: cfg.Server.GatewayPort})
		extractor := browse.NewHTTPExtractor(timeout, logger)
		probe := browse.NewProbe(gw, extractor, logger)
		local := browse.NewLocalSource(settings.LocalRoot(localRoot), logger)
		router := browse.NewRouter(settings, store, pool, local, probe, logger)

		var printer output.Printer
		if jsonOut {
			printer = output.JSONPrinter{}
		} else {
			printer = output.HumanPrinter{}
		}

		cmd.SetContext(context.WithValue(cmd.Context(), appKey{}, &app{
			store:    store,
			settings: settings,
			pool:     pool,
			gateway:  gw,
			probe:    probe,
			router:   router,
			printer:  printer,
			quiet:    quiet,
			json:     jsonOut,
			timeout:  timeout,
		}))
		return nil
	}

	root.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if app := fromContext(cmd); app != nil {
			app.pool.Close()
			_ = app.gateway.Close()
		}
	}

	root.AddCommand(lsCommand())
	root.AddCommand(connectionsCommand())
	root.AddCommand(probeCommand())
	root.AddCommand(playURLCommand())
	root.AddCommand(sourceCommand())
	root.AddCommand(favoritesCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type appKey struct{}

func fromContext(cmd *cobra.Command) *app {
	val := cmd.Context().Value(appKey{})
	if val == nil {
		return nil
	}
	return val.(*app)
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// parseSourceSpec turns "local" or "smb:<connection-id>" into a
// selection.
func parseSourceSpec(spec string) (browse.ActiveSource, error) {
	switch {
	case spec == string(browse.SourceLocal):
		return browse.ActiveSource{Kind: browse.SourceLocal}, nil
	case len(spec) > 4 && spec[:4] == string(browse.SourceRemote)+":":
		return browse.ActiveSource{Kind: browse.SourceRemote, ConnectionID: spec[4:]}, nil
	default:
		return browse.ActiveSource{}, fmt.Errorf("source must be %q or %q", "local", "smb:<connection-id>")
	}
}

// sourceFor resolves a selection to a browsable source.
func (a *app) sourceFor(selection browse.ActiveSource) (browse.Source, error) {
	if selection.Kind == browse.SourceRemote {
		return a.router.Remote(selection.ConnectionID)
	}
	return a.router.Local(), nil
}
