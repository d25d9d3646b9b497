package zones

import (
	"fmt"
	"strings"
)

// TransitionKind distinguishes a first-ever classification from a real
// zone change. First readings seed the state but never render a message.
type TransitionKind string

const (
	FirstReading TransitionKind = "primeira_leitura"
	ZoneChanged  TransitionKind = "mudanca_zona"
)

// TransitionEvent is the outcome of comparing a fresh value against the
// last persisted zone of its domain.
type TransitionEvent struct {
	Domain     DomainID
	Kind       TransitionKind
	From       Label // empty on first readings
	To         Label
	PriorValue float64 // zero on first readings
	Value      float64

	Gust    *float64 // wind: rendered when gusting above the sustained speed
	Delta3h *float64 // pressure: the optional 3 h variation line
}

// ZoneMeta is the static presentation of one zone.
type ZoneMeta struct {
	Emoji       string
	Description string
}

// Domain bundles everything one monitored variable needs: its scale, its
// message presentation, its critical rules. The six concrete domains are
// configured in NewCatalog; the pipeline code is shared here.
type Domain struct {
	ID    DomainID
	Scale Scale

	title     string
	valueWord string
	zoneWord  string
	format    func(float64) string
	meta      map[Label]ZoneMeta
	describe  func(zone Label, value float64) string
	tip       func(from, to Label) string
	extra     func(ev *TransitionEvent) string
	critical  func(in CriticalInput) []CriticalEvent
	render    func(ev CriticalEvent, rc RenderContext) string
}

// Classify returns the zone for v on this domain's scale.
func (d *Domain) Classify(v float64) Label {
	return d.Scale.Classify(v)
}

// Detect classifies value and compares it against the persisted zone.
// With no persisted zone it emits a FirstReading event; with an unchanged
// zone it emits nothing. The comparison is against the last persisted
// zone, so a multi-zone jump within one interval yields one event.
func (d *Domain) Detect(value float64, priorZone *Label, priorValue *float64) *TransitionEvent {
	current := d.Classify(value)

	if priorZone == nil {
		return &TransitionEvent{
			Domain: d.ID,
			Kind:   FirstReading,
			To:     current,
			Value:  value,
		}
	}
	if current == *priorZone {
		return nil
	}

	prior := 0.0
	if priorValue != nil {
		prior = *priorValue
	}
	return &TransitionEvent{
		Domain:     d.ID,
		Kind:       ZoneChanged,
		From:       *priorZone,
		To:         current,
		PriorValue: prior,
		Value:      value,
	}
}

// RenderTransition renders the zone-change message for ev. First readings
// and nil events render nothing.
func (d *Domain) RenderTransition(ev *TransitionEvent, rc RenderContext) string {
	if ev == nil || ev.Kind != ZoneChanged {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n\n", d.title, rc.Stamp())
	fmt.Fprintf(&b, "%s: %s\n", d.valueWord, d.format(ev.Value))
	fmt.Fprintf(&b, "%s: %s → %s %s\n\n", d.zoneWord, ev.From, ev.To, d.meta[ev.To].Emoji)
	fmt.Fprintf(&b, "Era: %s (%s)\n", d.format(ev.PriorValue), d.description(ev.From, ev.PriorValue))
	fmt.Fprintf(&b, "Agora: %s (%s)", d.format(ev.Value), d.description(ev.To, ev.Value))
	if d.extra != nil {
		b.WriteString(d.extra(ev))
	}
	if d.tip != nil {
		b.WriteString(d.tip(ev.From, ev.To))
	}
	return b.String()
}

// EvaluateCritical runs the domain's critical rules over in.
func (d *Domain) EvaluateCritical(in CriticalInput) []CriticalEvent {
	if d.critical == nil {
		return nil
	}
	return d.critical(in)
}

// RenderCritical renders the alert message for an event produced by this
// domain. Events of foreign kinds render nothing.
func (d *Domain) RenderCritical(ev CriticalEvent, rc RenderContext) string {
	if d.render == nil {
		return ""
	}
	return d.render(ev, rc)
}

func (d *Domain) description(zone Label, value float64) string {
	if d.describe != nil {
		return d.describe(zone, value)
	}
	return d.meta[zone].Description
}

func labelIn(l Label, candidates ...Label) bool {
	for _, c := range candidates {
		if l == c {
			return true
		}
	}
	return false
}
