package engine

import (
	"context"
	"log/slog"

	"github.com/SistemasVox/clima-udi/internal/compose"
	"github.com/SistemasVox/clima-udi/internal/policy"
	"github.com/SistemasVox/clima-udi/internal/state"
	"github.com/SistemasVox/clima-udi/internal/zones"
)

// outbound is one message queued for dispatch, together with the state
// mutation that may only happen after a successful delivery.
type outbound struct {
	label     string
	text      string
	onSuccess func()
}

// criticalHit pairs a triggered rule with the domain that renders it.
type criticalHit struct {
	dom *zones.Domain
	ev  zones.CriticalEvent
}

// domainInput bundles one domain with its observation field, the inputs of
// its critical rules, and an optional hook that enriches a transition
// event before rendering.
type domainInput struct {
	dom    *zones.Domain
	value  *float64
	crit   zones.CriticalInput
	enrich func(*zones.TransitionEvent)
}

func (e *Engine) domainInputs(c *cycleData) []domainInput {
	r := c.reading

	var prior1hTemp, prior1hPressure, prior3hPressure *float64
	if c.prior1h != nil {
		prior1hTemp = c.prior1h.Temperature
		prior1hPressure = c.prior1h.Pressure
	}
	if c.prior3h != nil {
		prior3hPressure = c.prior3h.Pressure
	}

	return []domainInput{
		{
			dom:   e.Catalog.Temperature,
			value: r.Temperature,
			crit:  zones.CriticalInput{PriorValue: prior1hTemp},
		},
		{dom: e.Catalog.Humidity, value: r.Humidity},
		{
			dom:    e.Catalog.Wind,
			value:  r.WindSpeed,
			crit:   zones.CriticalInput{Gust: r.WindGust},
			enrich: func(ev *zones.TransitionEvent) { ev.Gust = r.WindGust },
		},
		{
			dom:   e.Catalog.Rain,
			value: r.Rain,
			crit:  zones.CriticalInput{RainAccum24h: c.rain24h},
		},
		{dom: e.Catalog.Radiation, value: r.SolarRadiation},
		{
			dom:   e.Catalog.Pressure,
			value: r.Pressure,
			crit:  zones.CriticalInput{PriorValue: prior1hPressure},
			enrich: func(ev *zones.TransitionEvent) {
				if r.Pressure != nil && prior3hPressure != nil {
					d := *r.Pressure - *prior3hPressure
					ev.Delta3h = &d
				}
			},
		},
	}
}

// evaluate walks the domains in their fixed order, records zone movement
// on the document, resolves critical edges, and plans the daily report and
// the general alert. Zone and report state is recorded here regardless of
// how dispatch later goes; critical and general-alert state is bound to a
// successful delivery instead.
func (e *Engine) evaluate(ctx context.Context, log *slog.Logger, c *cycleData) []outbound {
	var queue []outbound

	active := make(map[zones.CriticalKind]bool)
	events := make(map[zones.CriticalKind]criticalHit)

	for _, in := range e.domainInputs(c) {
		if in.value == nil {
			log.WarnContext(ctx, "observation field missing, domain skipped",
				"domain", string(in.dom.ID))
			continue
		}
		v := *in.value

		stored := c.doc.Zone(in.dom.ID)
		if ev := in.dom.Detect(v, stored.Zone, stored.Value); ev != nil {
			c.doc.ApplyZone(in.dom.ID, ev.To, v, e.Clock.Now())
			if in.enrich != nil {
				in.enrich(ev)
			}
			if text := in.dom.RenderTransition(ev, c.rc); text != "" {
				log.InfoContext(ctx, "zone transition",
					"domain", string(in.dom.ID),
					"from", string(ev.From),
					"to", string(ev.To))
				queue = append(queue, outbound{label: "transition/" + string(in.dom.ID), text: text})
			} else {
				log.InfoContext(ctx, "zone recorded",
					"domain", string(in.dom.ID), "zone", string(ev.To))
			}
		}

		in.crit.Value = v
		for _, hit := range in.dom.EvaluateCritical(in.crit) {
			active[hit.Kind] = true
			if _, seen := events[hit.Kind]; !seen {
				events[hit.Kind] = criticalHit{dom: in.dom, ev: hit}
			}
		}
	}

	for _, kind := range zones.CriticalDispatchOrder {
		kind := kind // onSuccess must see this iteration's kind; loop vars are shared before go 1.22
		switch e.Policy.CriticalEdge(c.doc, kind, active[kind]) {
		case policy.EdgeActivated:
			hit, ok := events[kind]
			if !ok {
				continue
			}
			if kind == zones.CriticalExtremeUV {
				if hour, err := e.Readings.PeakRadiationHour(ctx, c.now); err != nil {
					log.WarnContext(ctx, "peak radiation hour unavailable", "error", err.Error())
				} else {
					hit.ev.UVPeakHour = hour
				}
			}
			log.InfoContext(ctx, "critical alert activated", "kind", string(kind))
			queue = append(queue, outbound{
				label: "critical/" + string(kind),
				text:  hit.dom.RenderCritical(hit.ev, c.rc),
				onSuccess: func() {
					c.doc.ApplyCritical(kind, true, e.Clock.Now())
				},
			})
		case policy.EdgeDeactivated:
			log.InfoContext(ctx, "critical alert cleared", "kind", string(kind))
			c.doc.ApplyCritical(kind, false, e.Clock.Now())
		}
	}

	if rep := e.planReport(ctx, log, c); rep != nil {
		queue = append(queue, *rep)
	}
	if ga := e.planGeneralAlert(ctx, log, c); ga != nil {
		queue = append(queue, *ga)
	}
	return queue
}

// planReport emits the daily report when this cycle's radiation crossed
// the day/night boundary and the report has not gone out today. The report
// date is recorded as soon as the message is composed, so a failed
// delivery does not retrigger the report next cycle.
func (e *Engine) planReport(ctx context.Context, log *slog.Logger, c *cycleData) *outbound {
	if c.reading.SolarRadiation == nil {
		return nil
	}
	var prior *float64
	if c.prior1h != nil {
		prior = c.prior1h.SolarRadiation
	}
	kind, ok := zones.DayNightTransition(prior, *c.reading.SolarRadiation)
	if !ok {
		return nil
	}
	today := state.DateOf(c.now)
	if !e.Policy.ShouldSendReport(c.doc, kind, today) {
		log.InfoContext(ctx, "daily report already sent",
			"report", string(kind), "date", string(today))
		return nil
	}

	var text string
	switch kind {
	case zones.ReportSunrise:
		sum, err := e.Readings.NightSummary(ctx)
		if err != nil {
			log.WarnContext(ctx, "night summary unavailable", "error", err.Error())
			return nil
		}
		if sum == nil {
			log.InfoContext(ctx, "no night rows, morning report skipped")
			return nil
		}
		text = e.Composer.MorningReport(*sum, c.reading, c.rc)
	case zones.ReportSunset:
		sum, err := e.Readings.DaySummary(ctx, c.now)
		if err != nil {
			log.WarnContext(ctx, "day summary unavailable", "error", err.Error())
			return nil
		}
		if sum == nil {
			log.InfoContext(ctx, "no daylight rows, evening report skipped")
			return nil
		}
		text = e.Composer.EveningReport(*sum, c.reading, c.rc)
	}

	c.doc.ApplyReport(kind, today)
	log.InfoContext(ctx, "daily report queued", "report", string(kind), "date", string(today))
	return &outbound{label: "report/" + string(kind), text: text}
}

// planGeneralAlert queues the composite status message when the current
// observation drifted far enough from the last alerted snapshot.
func (e *Engine) planGeneralAlert(ctx context.Context, log *slog.Logger, c *cycleData) *outbound {
	r := c.reading
	if r.Temperature == nil || r.Humidity == nil || r.Pressure == nil {
		log.WarnContext(ctx, "observation incomplete, drift check skipped")
		return nil
	}
	temp, humidity, pressure := *r.Temperature, *r.Humidity, *r.Pressure

	res := e.Policy.EvaluateDrift(c.doc, temp, humidity, pressure)
	if !res.Send {
		return nil
	}
	log.InfoContext(ctx, "general alert due", "reason", res.Reason)

	var v compose.Variation
	var deltaTemp, deltaPressure float64
	if c.prior3h != nil {
		deltaTemp = numDelta(r.Temperature, c.prior3h.Temperature)
		deltaPressure = numDelta(r.Pressure, c.prior3h.Pressure)
		v = compose.Variation{
			Temperature: deltaTemp,
			Humidity:    numDelta(r.Humidity, c.prior3h.Humidity),
			Pressure:    deltaPressure,
		}
	}
	insights := e.Composer.Insights(r, deltaTemp, deltaPressure)

	return &outbound{
		label: "general",
		text:  e.Composer.GeneralAlert(r, v, insights, c.rc),
		onSuccess: func() {
			c.doc.ApplyGeneralAlert(temp, humidity, pressure, e.Clock.Now())
		},
	}
}

// numDelta returns cur minus prior, or zero when either side is missing.
func numDelta(cur, prior *float64) float64 {
	if cur == nil || prior == nil {
		return 0
	}
	return *cur - *prior
}
