// Package engine runs one watchdog cycle end to end: load the freshest
// observations and the persisted state, evaluate zone transitions and
// critical rules, dispatch the resulting messages, and persist the updated
// state document. A cycle that fails in any phase leaves the previous
// document untouched on disk.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SistemasVox/clima-udi/internal/compose"
	"github.com/SistemasVox/clima-udi/internal/config"
	"github.com/SistemasVox/clima-udi/internal/policy"
	"github.com/SistemasVox/clima-udi/internal/state"
	"github.com/SistemasVox/clima-udi/internal/types"
	"github.com/SistemasVox/clima-udi/internal/zones"
)

// CycleState names one phase of the run. Phases only advance forward; a
// failure in any of them jumps straight to StateFailed.
type CycleState string

const (
	StateIdle        CycleState = "idle"
	StateLoading     CycleState = "loading"
	StateEvaluating  CycleState = "evaluating"
	StateDispatching CycleState = "dispatching"
	StatePersisting  CycleState = "persisting"
	StateDone        CycleState = "done"
	StateFailed      CycleState = "failed"
)

// ReadingSource is the slice of the observation repository the cycle reads.
type ReadingSource interface {
	Latest(ctx context.Context) (*types.Reading, error)
	Near(ctx context.Context, target time.Time) (*types.Reading, error)
	AccumulatedRain(ctx context.Context, since time.Time) (float64, error)
	DaySummary(ctx context.Context, day time.Time) (*types.AggregateSummary, error)
	NightSummary(ctx context.Context) (*types.AggregateSummary, error)
	PeakRadiationHour(ctx context.Context, day time.Time) (*int, error)
}

// StateStore persists the state document between cycles.
type StateStore interface {
	Load(ctx context.Context) (*state.Document, error)
	Save(ctx context.Context, doc *state.Document) error
}

// CycleLock serializes runs on the same host. Acquire fails when another
// run is still in flight.
type CycleLock interface {
	Acquire() error
	Release() error
}

// Notifier delivers one rendered message to every configured recipient.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Engine wires the collaborators of one watchdog cycle. All fields must be
// populated before Run is called.
type Engine struct {
	Station  config.StationConfig
	Cycle    config.CycleConfig
	Readings ReadingSource
	Store    StateStore
	Lock     CycleLock
	Catalog  *zones.Catalog
	Policy   *policy.Engine
	Composer *compose.Composer
	Notifier Notifier
	Clock    types.Clock
	Log      *slog.Logger
}

// Run executes one full cycle under the configured wall-clock budget. The
// returned error is nil when the cycle reached StateDone; dispatch failures
// of individual messages do not fail the cycle, they only withhold the
// state mutations tied to those messages.
func (e *Engine) Run(ctx context.Context) error {
	cycleID := uuid.NewString()
	ctx = types.WithCycleID(ctx, cycleID)
	log := e.Log.With("cycle_id", cycleID)
	ctx = types.WithLogger(ctx, log)

	if e.Cycle.Budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Cycle.Budget)
		defer cancel()
	}

	started := e.Clock.Now()
	st := StateIdle
	log.InfoContext(ctx, "cycle starting", "budget", e.Cycle.Budget.String())

	if err := e.Lock.Acquire(); err != nil {
		return e.fail(ctx, log, st, err)
	}
	defer func() {
		if err := e.Lock.Release(); err != nil {
			log.ErrorContext(ctx, "lock release failed", "error", err.Error())
		}
	}()

	st = e.advance(ctx, log, st, StateLoading)
	c, err := e.load(ctx, log)
	if err != nil {
		return e.fail(ctx, log, st, err)
	}

	st = e.advance(ctx, log, st, StateEvaluating)
	queue := e.evaluate(ctx, log, c)

	st = e.advance(ctx, log, st, StateDispatching)
	if err := e.dispatch(ctx, log, c, queue); err != nil {
		return e.fail(ctx, log, st, err)
	}

	st = e.advance(ctx, log, st, StatePersisting)
	if err := e.Store.Save(ctx, c.doc); err != nil {
		return e.fail(ctx, log, st, err)
	}

	e.advance(ctx, log, st, StateDone)
	log.InfoContext(ctx, "cycle complete",
		"elapsed", e.Clock.Now().Sub(started).String(),
		"dispatched", c.sent,
		"failed", c.failed)
	return nil
}

func (e *Engine) advance(ctx context.Context, log *slog.Logger, from, to CycleState) CycleState {
	log.InfoContext(ctx, "cycle state", "from", string(from), "to", string(to))
	return to
}

func (e *Engine) fail(ctx context.Context, log *slog.Logger, at CycleState, err error) error {
	e.advance(ctx, log, at, StateFailed)
	log.ErrorContext(ctx, "cycle failed",
		"state", string(at),
		"code", string(types.CodeOf(err)),
		"error", err.Error())
	return err
}

// cycleData carries everything one cycle accumulates: the observations,
// the mutable state document, and the dispatch counters.
type cycleData struct {
	doc     *state.Document
	reading types.Reading
	prior1h *types.Reading
	prior3h *types.Reading
	rain24h *float64
	now     time.Time // station-local wall time
	rc      zones.RenderContext
	sent    int
	failed  int
}

// load gathers the state document, the latest observation and the history
// around it. Missing history is survivable and leaves the corresponding
// field nil; a missing latest observation aborts the cycle.
func (e *Engine) load(ctx context.Context, log *slog.Logger) (*cycleData, error) {
	doc, err := e.Store.Load(ctx)
	if err != nil {
		return nil, err
	}

	latest, err := e.Readings.Latest(ctx)
	if err != nil {
		return nil, err
	}
	log.InfoContext(ctx, "latest observation loaded",
		"measured_at", latest.Timestamp.Format(time.RFC3339))

	c := &cycleData{doc: doc, reading: *latest}
	c.now = e.Clock.Now().In(e.Station.Loc)
	c.rc = zones.RenderContext{City: e.Station.City, Now: c.now}

	// History anchors on the observation's own timestamp, not the wall
	// clock, so collector lag cannot shrink the comparison interval.
	anchor := latest.Timestamp
	if c.prior1h, err = e.Readings.Near(ctx, anchor.Add(-1*time.Hour)); err != nil {
		log.WarnContext(ctx, "one hour history unavailable", "error", err.Error())
		c.prior1h = nil
	}
	if c.prior3h, err = e.Readings.Near(ctx, anchor.Add(-3*time.Hour)); err != nil {
		log.WarnContext(ctx, "three hour history unavailable", "error", err.Error())
		c.prior3h = nil
	}
	if sum, err := e.Readings.AccumulatedRain(ctx, anchor.Add(-24*time.Hour)); err != nil {
		log.WarnContext(ctx, "24h rain history unavailable", "error", err.Error())
	} else {
		c.rain24h = &sum
	}
	return c, nil
}

// dispatch sends the queued messages in order. A failed delivery is logged
// and skipped so one rejected message cannot block the rest; only an
// exhausted cycle budget aborts the loop.
func (e *Engine) dispatch(ctx context.Context, log *slog.Logger, c *cycleData, queue []outbound) error {
	if len(queue) == 0 {
		log.InfoContext(ctx, "nothing to dispatch")
		return nil
	}
	for _, m := range queue {
		if err := ctx.Err(); err != nil {
			return types.NewAppError(types.ErrCodeCycleBudget, "cycle budget exhausted during dispatch", err)
		}
		if err := e.Notifier.Send(ctx, m.text); err != nil {
			c.failed++
			log.ErrorContext(ctx, "dispatch failed",
				"message", m.label,
				"code", string(types.CodeOf(err)),
				"error", err.Error())
			continue
		}
		c.sent++
		log.InfoContext(ctx, "dispatched", "message", m.label)
		if m.onSuccess != nil {
			m.onSuccess()
		}
	}
	return nil
}
