package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/SistemasVox/clima-udi/internal/config"
	"github.com/SistemasVox/clima-udi/internal/state"
	"github.com/SistemasVox/clima-udi/internal/types"
	"github.com/SistemasVox/clima-udi/internal/zones"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print the persisted state document",
	Long:  `Print a human-readable summary of the state document left by the last successful cycle.`,
	RunE:  runState,
}

func init() {
	rootCmd.AddCommand(stateCmd)
}

func runState(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	quiet := slog.New(slog.NewJSONHandler(io.Discard, nil))
	store := state.NewFileStore(cfg.State.File, types.RealClock{}, quiet, nil)

	if _, err := os.Stat(store.Path()); errors.Is(err, fs.ErrNotExist) {
		fmt.Printf("No state document at %s (no completed cycle yet)\n", store.Path())
		return nil
	}

	doc, err := store.Load(cmd.Context())
	if err != nil {
		return err
	}
	printDocument(os.Stdout, cfg, doc)
	return nil
}

func printDocument(w io.Writer, cfg *config.Config, doc *state.Document) {
	fmt.Fprintf(w, "State document %s (schema %s)\n", cfg.State.File, doc.Version)
	if !doc.Timestamp.IsZero() {
		fmt.Fprintf(w, "Saved %s\n", doc.Timestamp.In(cfg.Station.Loc).Format(time.RFC3339))
	}

	fmt.Fprintln(w, "\nZones:")
	for _, id := range []zones.DomainID{
		zones.DomainTemperature,
		zones.DomainHumidity,
		zones.DomainWind,
		zones.DomainRain,
		zones.DomainRadiation,
		zones.DomainPressure,
	} {
		zs := doc.Zone(id)
		if zs == nil || zs.Zone == nil {
			fmt.Fprintf(w, "  %-12s -\n", id)
			continue
		}
		fmt.Fprintf(w, "  %-12s %-15s %8.1f", id, *zs.Zone, deref(zs.Value))
		if zs.LastChanged != nil {
			fmt.Fprintf(w, "  since %s", zs.LastChanged.In(cfg.Station.Loc).Format(time.RFC3339))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "\nCritical alerts:")
	anyCritical := false
	for _, kind := range zones.CriticalDispatchOrder {
		cs, ok := doc.Criticals[kind]
		if !ok || !cs.Active {
			continue
		}
		anyCritical = true
		fmt.Fprintf(w, "  %-20s active since %s\n",
			kind, cs.LastChanged.In(cfg.Station.Loc).Format(time.RFC3339))
	}
	if !anyCritical {
		fmt.Fprintln(w, "  none active")
	}

	fmt.Fprintln(w, "\nDaily reports:")
	fmt.Fprintf(w, "  %-10s %s\n", zones.ReportSunrise, dateOrDash(doc.Reports.LastSunrise))
	fmt.Fprintf(w, "  %-10s %s\n", zones.ReportSunset, dateOrDash(doc.Reports.LastSunset))

	ga := doc.GeneralAlert
	fmt.Fprintln(w, "\nGeneral alert snapshot:")
	if ga.LastSentAt == nil {
		fmt.Fprintln(w, "  never sent")
		return
	}
	fmt.Fprintf(w, "  %.1f°C  %.0f%%  %.1f hPa  at %s\n",
		deref(ga.LastTemperature), deref(ga.LastHumidity), deref(ga.LastPressure),
		ga.LastSentAt.In(cfg.Station.Loc).Format(time.RFC3339))
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func dateOrDash(d *state.Date) string {
	if d == nil {
		return "-"
	}
	return string(*d)
}
