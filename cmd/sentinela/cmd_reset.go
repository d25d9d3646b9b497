package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/SistemasVox/clima-udi/internal/config"
	"github.com/SistemasVox/clima-udi/internal/state"
	"github.com/SistemasVox/clima-udi/internal/types"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace the state document with a fresh bootstrap",
	Long: `Replace the state document with a fresh bootstrap, as if no cycle had
ever completed. Zone baselines, critical debounce flags and the daily report
gate are all lost; the next cycle records zones silently and may resend
alerts for conditions that are still active. The previous document is kept
at the backup path.`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "confirm replacing the state document")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	if !resetYes {
		return errors.New("refusing to reset without --yes")
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	clock := types.RealClock{}
	quiet := slog.New(slog.NewJSONHandler(io.Discard, nil))

	var archiver *state.Archiver
	if cfg.State.ArchiveDir != "" {
		archiver, err = state.NewArchiver(cfg.State.ArchiveDir, cfg.State.ArchiveKeep, clock)
		if err != nil {
			return err
		}
	}
	store := state.NewFileStore(cfg.State.File, clock, quiet, archiver)

	_, statErr := os.Stat(store.Path())
	hadDocument := !errors.Is(statErr, fs.ErrNotExist)

	if err := store.Save(cmd.Context(), state.NewDocument(clock.Now())); err != nil {
		return err
	}

	if hadDocument {
		fmt.Printf("state reset, previous document kept at %s\n", store.BackupPath())
	} else {
		fmt.Printf("state reset, bootstrap written to %s\n", store.Path())
	}
	return nil
}
