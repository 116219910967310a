package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/tunebridge/tunebridge/internal/daemon"
	"github.com/tunebridge/tunebridge/internal/gateway"
	"github.com/tunebridge/tunebridge/internal/registry"
	"github.com/tunebridge/tunebridge/internal/smb"
)

func main() {
	var (
		configPath  string
		logLevel    string
		logFormat   string
		logOutput   string
		gatewayPort int
		localRoot   string
		dryRun      bool
	)

	defaultConfig, err := daemon.DefaultConfigPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	flag.StringVar(&configPath, "config", defaultConfig, "config file path")
	flag.StringVar(&logLevel, "log-level", "", "log level override")
	flag.StringVar(&logFormat, "log-format", "", "log format override (text|json)")
	flag.StringVar(&logOutput, "log-output", "", "log output override (stdout|stderr)")
	flag.IntVar(&gatewayPort, "gateway-port", 0, "streaming gateway port override")
	flag.StringVar(&localRoot, "local-root", "", "local music root override")
	flag.BoolVar(&dryRun, "dry-run", false, "validate config and exit")
	flag.Parse()

	cfg, err := daemon.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	applyOverrides(&cfg, logLevel, logFormat, logOutput, gatewayPort, localRoot)

	if dryRun {
		return
	}

	logger := daemon.NewLogger(daemon.LogConfig{
		Level:  cfg.Server.LogLevel,
		Format: cfg.Server.LogFormat,
		Output: cfg.Server.LogOutput,
	})
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("tunebridged failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg daemon.Config, logger *zap.Logger) error {
	dataDir, err := cfg.DataDir()
	if err != nil {
		return err
	}
	root, err := cfg.LocalRoot()
	if err != nil {
		return err
	}

	store, err := registry.NewStore(filepath.Join(dataDir, "connections.json"), logger)
	if err != nil {
		return fmt.Errorf("connection registry: %w", err)
	}
	settings, err := daemon.NewSettingsStore(filepath.Join(dataDir, "settings.json"))
	if err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	pool := smb.NewPool(logger)
	defer pool.Close()

	gw := gateway.New(logger, store, pool.Open, gateway.Config{Port: cfg.Server.GatewayPort})
	defer func() { _ = gw.Close() }()

	// Start eagerly so streaming URLs resolve from the first request.
	// A failed bind is retried lazily by the next StreamingURL call.
	if err := gw.EnsureStarted(); err != nil {
		logger.Warn("streaming gateway did not start", zap.Error(err))
	} else {
		logger.Info("streaming gateway listening", zap.Int("port", gw.Port()))
	}

	logger.Info("tunebridged starting",
		zap.String("data_dir", dataDir),
		zap.String("local_root", settings.LocalRoot(root)),
		zap.String("active_source", daemon.SourceKey(settings.ActiveSource())),
		zap.Int("connections", len(store.List())),
	)

	supervisor := daemon.Supervisor{Logger: logger}
	modules := []daemon.ModuleRunner{
		{
			Name: "streaming_gateway",
			Run: func(ctx context.Context) error {
				<-ctx.Done()
				return gw.Close()
			},
		},
	}
	return supervisor.Run(ctx, modules)
}

func applyOverrides(cfg *daemon.Config, logLevel, logFormat, logOutput string, gatewayPort int, localRoot string) {
	if logLevel != "" {
		cfg.Server.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.Server.LogFormat = logFormat
	}
	if logOutput != "" {
		cfg.Server.LogOutput = logOutput
	}
	if gatewayPort != 0 {
		cfg.Server.GatewayPort = gatewayPort
	}
	if localRoot != "" {
		cfg.Local.Root = localRoot
	}
}
