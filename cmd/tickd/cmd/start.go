package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tickd-io/tickd/internal/adapter/inbound/api"
	"github.com/tickd-io/tickd/internal/adapter/outbound/errlog"
	"github.com/tickd-io/tickd/internal/adapter/outbound/memory"
	"github.com/tickd-io/tickd/internal/config"
	"github.com/tickd-io/tickd/internal/service"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the HTTP server",
	Long: `Start the tickd HTTP server.

The server keeps todo items in memory and appends request failures to the
configured error log file. By default the store is seeded with three
sample items; set seed: false in the config to start empty.

Examples:
  # Start with config file settings (or pure defaults)
  tickd start

  # Start with a specific config file
  tickd --config /path/to/tickd.yaml start

  # Start on a different port
  TICKD_SERVER_PORT=9090 tickd start`,
	RunE: runStart,
}

var noSeed bool

func init() {
	startCmd.Flags().BoolVar(&noSeed, "no-seed", false, "Start with an empty store instead of the sample items")
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if noSeed {
		cfg.Seed = false
	}

	// Signal context for graceful shutdown.
	// stop() restores default signal handling so a second Ctrl+C does a hard kill.
	ctx, stop := signal.NotifyContext(context.Background(), gracefulSignals()...)
	go func() {
		<-ctx.Done()
		stop()
	}()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	if configFile := config.ConfigFileUsed(); configFile != "" {
		logger.Info("loaded config", "file", configFile)
	}

	// Write PID file so "tickd stop" can find us.
	pidPath := pidFilePath()
	if err := writePIDFile(pidPath); err != nil {
		logger.Warn("failed to write PID file", "path", pidPath, "error", err)
	} else {
		defer os.Remove(pidPath)
	}

	if err := run(ctx, cfg, logger); err != nil {
		return err
	}

	logger.Info("tickd stopped")
	return nil
}

// run wires the store, error sink, service, and transport together and
// serves until the context is cancelled.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	startTime := time.Now().UTC()

	sink, err := errlog.NewFileSink(cfg.ErrorLog.Path, logger)
	if err != nil {
		return fmt.Errorf("failed to open error log: %w", err)
	}
	defer func() { _ = sink.Close() }()

	store := memory.NewTodoStore()
	todoService := service.NewTodoService(store, sink, logger)
	if cfg.Seed {
		if err := todoService.Seed(); err != nil {
			return fmt.Errorf("failed to seed store: %w", err)
		}
		logger.Info("store seeded", "items", store.Len())
	}

	handler := api.NewHandler(
		api.WithTodoService(todoService),
		api.WithLogger(logger),
		api.WithStartTime(startTime),
	)

	transport := api.NewTransport(handler,
		api.WithAddr(cfg.Server.Addr()),
		api.WithTransportLogger(logger),
		api.WithSink(sink),
		api.WithItemCount(store.Len),
	)

	logger.Info("tickd starting",
		"addr", cfg.Server.Addr(),
		"error_log", cfg.ErrorLog.Path,
		"seed", cfg.Seed,
	)

	return transport.Start(ctx)
}

// parseLogLevel converts a string log level to slog.Level.
// Returns slog.LevelInfo for unrecognized values.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// pidFilePath returns the standard location for the tickd PID file.
func pidFilePath() string {
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".tickd", "server.pid")
	}
	return filepath.Join(os.TempDir(), "tickd-server.pid")
}

// writePIDFile writes the current process PID to the given path, creating
// parent directories as needed.
func writePIDFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(fmt.Sprintf("%d\n", os.Getpid())), 0644)
}

// readPIDFile reads a PID from the given file path. Returns 0 if unreadable.
func readPIDFile(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0
	}
	return pid
}
