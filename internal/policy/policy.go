// Package policy decides what a cycle is allowed to send: the general
// drift alert, the two daily reports, and the edge-triggered critical
// alerts. Every decision is a pure comparison between the fresh readings
// and the persisted state document; dispatching and state mutation stay
// with the engine.
package policy

import (
	"fmt"
	"math"

	"github.com/SistemasVox/clima-udi/internal/config"
	"github.com/SistemasVox/clima-udi/internal/state"
	"github.com/SistemasVox/clima-udi/internal/types"
	"github.com/SistemasVox/clima-udi/internal/zones"
)

// Result is the outcome of the general-alert evaluation. Reason is the
// human-readable cause rendered into the alert header, in Portuguese like
// the rest of the outbound text.
type Result struct {
	Send   bool
	Reason string
}

// Edge is the relation between a critical rule's current activity and its
// persisted flag.
type Edge int

const (
	// EdgeNone: no change, nothing to do.
	EdgeNone Edge = iota
	// EdgeActivated: inactive -> active, dispatch the alert.
	EdgeActivated
	// EdgeDeactivated: active -> inactive, record silently.
	EdgeDeactivated
)

// Engine evaluates dispatch decisions against one Thresholds table. The
// clock only feeds the periodic-refresh rule.
type Engine struct {
	clock types.Clock
	drift config.DriftLimits
}

func NewEngine(clock types.Clock, drift config.DriftLimits) *Engine {
	return &Engine{clock: clock, drift: drift}
}

// EvaluateDrift decides whether the general alert is due, comparing the
// current readings against the snapshot taken at the last successful
// dispatch.
//
// Decision logic (first satisfied wins):
//  1. No snapshot yet -> send (bootstrap).
//  2. Temperature moved at least the configured delta -> send.
//  3. Humidity moved at least the configured delta -> send.
//  4. Pressure moved at least the configured delta -> send.
//  5. Configured refresh interval elapsed since the last dispatch -> send.
func (e *Engine) EvaluateDrift(doc *state.Document, temp, humidity, pressure float64) Result {
	ga := doc.GeneralAlert

	if ga.LastTemperature == nil || ga.LastHumidity == nil || ga.LastPressure == nil {
		return Result{Send: true, Reason: "Primeira leitura"}
	}

	if math.Abs(temp-*ga.LastTemperature) >= e.drift.TempDelta {
		return Result{Send: true, Reason: fmt.Sprintf("Temp: %.1f→%.1f°C", *ga.LastTemperature, temp)}
	}
	if math.Abs(humidity-*ga.LastHumidity) >= e.drift.HumidityDelta {
		return Result{Send: true, Reason: fmt.Sprintf("Umid: %.0f→%.0f%%", *ga.LastHumidity, humidity)}
	}
	if math.Abs(pressure-*ga.LastPressure) >= e.drift.PressureDelta {
		return Result{Send: true, Reason: fmt.Sprintf("Pressão: %.1f→%.1f hPa", *ga.LastPressure, pressure)}
	}

	if ga.LastSentAt != nil {
		hours := e.clock.Now().Sub(*ga.LastSentAt).Hours()
		if hours >= float64(e.drift.RefreshHours) {
			return Result{Send: true, Reason: fmt.Sprintf("Atualização periódica (%dh)", int(hours))}
		}
	}

	return Result{}
}

// ShouldSendReport gates an already-detected day/night boundary on the
// persisted report date: at most one report of each kind per calendar
// date. A stored date that does not parse as today's never suppresses.
func (e *Engine) ShouldSendReport(doc *state.Document, kind zones.ReportKind, today state.Date) bool {
	last := doc.LastReport(kind)
	if last != nil && *last == today {
		return false
	}
	return true
}

// CriticalEdge compares the evaluated activity of kind against its
// persisted flag. Only EdgeActivated carries a message; EdgeDeactivated
// clears the flag without one.
func (e *Engine) CriticalEdge(doc *state.Document, kind zones.CriticalKind, activeNow bool) Edge {
	was := doc.CriticalActive(kind)
	switch {
	case activeNow && !was:
		return EdgeActivated
	case !activeNow && was:
		return EdgeDeactivated
	default:
		return EdgeNone
	}
}
