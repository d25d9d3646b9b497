// Package main is the entrypoint of the sentinela watchdog. The bare
// command runs exactly one cycle and exits; scheduling is cron's job.
// Subcommands inspect or clear the persisted state between runs.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/SistemasVox/clima-udi/internal/compose"
	"github.com/SistemasVox/clima-udi/internal/config"
	"github.com/SistemasVox/clima-udi/internal/db"
	"github.com/SistemasVox/clima-udi/internal/engine"
	"github.com/SistemasVox/clima-udi/internal/notify"
	"github.com/SistemasVox/clima-udi/internal/policy"
	"github.com/SistemasVox/clima-udi/internal/state"
	"github.com/SistemasVox/clima-udi/internal/types"
	"github.com/SistemasVox/clima-udi/internal/zones"
)

var rootCmd = &cobra.Command{
	Use:   "sentinela",
	Short: "Zone watchdog for the Uberlândia weather station",
	Long: `Sentinela watches the INMET readings store, classifies each variable
into named zones, and sends WhatsApp alerts on zone changes, critical
conditions, daily reports and significant drift. One invocation runs one
cycle against the persisted state and exits.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCycle,
}

func main() {
	build := config.NewBuildInfo()
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", build.Version, build.Commit, build.BuildTime)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCycle(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)
	clock := types.RealClock{}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := newPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("database pool init failed", "error", err.Error())
		return err
	}
	defer pool.Close()

	var archiver *state.Archiver
	if cfg.State.ArchiveDir != "" {
		if archiver, err = state.NewArchiver(cfg.State.ArchiveDir, cfg.State.ArchiveKeep, clock); err != nil {
			logger.Error("archiver init failed", "error", err.Error())
			return err
		}
	}

	eng := &engine.Engine{
		Station:  cfg.Station,
		Cycle:    cfg.Cycle,
		Readings: db.NewReadingRepository(pool),
		Store:    state.NewFileStore(cfg.State.File, clock, logger, archiver),
		Lock:     state.NewFileLock(cfg.Lock.File, cfg.Lock.MaxAge, clock),
		Catalog:  zones.NewCatalog(cfg.Thresholds),
		Policy:   policy.NewEngine(clock, cfg.Thresholds.Drift),
		Composer: compose.NewComposer(cfg.Thresholds),
		Notifier: notify.NewGateway(cfg.WhatsApp, logger),
		Clock:    clock,
		Log:      logger,
	}
	return eng.Run(ctx)
}

// newLogger builds the JSON logger on stderr, keeping stdout clean for the
// state subcommand.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// newPool builds the pgx pool with the configured bounds and verifies
// connectivity before the lock is taken.
func newPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	pc, err := pgxpool.ParseConfig(cfg.URL.Unmask())
	if err != nil {
		return nil, fmt.Errorf("parsing database url: %w", err)
	}
	pc.MaxConns = int32(cfg.MaxConns)
	pc.ConnConfig.ConnectTimeout = cfg.AcquireTimeout

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
