// Package state persists the engine's memory between cycles: the last
// classified zone per domain, the critical alert debounce flags, the last
// delivered general-alert snapshot and the dates of the daily reports.
// Everything lives in one JSON document that is rewritten atomically at
// the end of each successful cycle, with the replaced copy kept as a
// backup and optionally compressed into a rotating archive.
package state

import (
	"time"

	"github.com/SistemasVox/clima-udi/internal/zones"
)

// SchemaVersion tags the document layout. A loaded document carrying any
// other version is discarded and replaced by a fresh bootstrap.
const SchemaVersion = "3.0"

const dateLayout = "2006-01-02"

// Date is a civil calendar date serialized as "2006-01-02". The daily
// reports are gated by date equality, not by elapsed hours.
type Date string

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date { return Date(t.Format(dateLayout)) }

// ZoneState remembers the last persisted classification for one domain.
// A nil Zone means the domain was never classified (bootstrap).
type ZoneState struct {
	Zone        *zones.Label `json:"zona"`
	Value       *float64     `json:"valor"`
	LastChanged *time.Time   `json:"ultima_mudanca"`
}

// CriticalState is the edge-trigger flag for one critical kind.
type CriticalState struct {
	Active      bool      `json:"ativo"`
	LastChanged time.Time `json:"ultima_mudanca"`
}

// GeneralAlertState holds the snapshot of the last general alert that was
// actually delivered. Drift is measured against these values, never
// against the previous observation, so oscillation around a threshold
// cannot re-trigger the alert.
type GeneralAlertState struct {
	LastTemperature *float64   `json:"ultima_temp"`
	LastHumidity    *float64   `json:"ultima_umid"`
	LastPressure    *float64   `json:"ultima_pressao"`
	LastSentAt      *time.Time `json:"ultimo_envio"`
}

// ReportState records the local dates the sunrise and sunset reports last
// went out.
type ReportState struct {
	LastSunrise *Date `json:"ultimo_bom_dia"`
	LastSunset  *Date `json:"ultimo_boa_noite"`
}

// Document is the aggregate persisted state, the single unit of
// durability. A failed cycle never writes one.
type Document struct {
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"versao"`

	Temperature ZoneState `json:"temperatura"`
	Humidity    ZoneState `json:"umidade"`
	Wind        ZoneState `json:"vento"`
	Rain        ZoneState `json:"chuva"`
	Radiation   ZoneState `json:"radiacao"`
	Pressure    ZoneState `json:"pressao"`

	GeneralAlert GeneralAlertState `json:"alerta_geral"`
	Reports      ReportState       `json:"relatorios"`

	Criticals map[zones.CriticalKind]CriticalState `json:"alertas_criticos"`
}

// NewDocument returns the bootstrap document for a first-ever run: no
// zones, no critical flags, no snapshots.
func NewDocument(now time.Time) *Document {
	return &Document{
		Timestamp: now,
		Version:   SchemaVersion,
		Criticals: make(map[zones.CriticalKind]CriticalState),
	}
}

// Zone returns the mutable slot for the given domain, or nil for an
// unknown domain.
func (d *Document) Zone(id zones.DomainID) *ZoneState {
	switch id {
	case zones.DomainTemperature:
		return &d.Temperature
	case zones.DomainHumidity:
		return &d.Humidity
	case zones.DomainWind:
		return &d.Wind
	case zones.DomainRain:
		return &d.Rain
	case zones.DomainRadiation:
		return &d.Radiation
	case zones.DomainPressure:
		return &d.Pressure
	}
	return nil
}

// ApplyZone records a fresh classification for the domain. The engine
// calls this only when the detector reported a first reading or a zone
// change, so the change timestamp is always refreshed.
func (d *Document) ApplyZone(id zones.DomainID, zone zones.Label, value float64, now time.Time) {
	s := d.Zone(id)
	if s == nil {
		return
	}
	s.Zone = &zone
	s.Value = &value
	s.LastChanged = &now
}

// CriticalActive reports the persisted flag for the kind. Kinds never
// seen before read as inactive.
func (d *Document) CriticalActive(kind zones.CriticalKind) bool {
	return d.Criticals[kind].Active
}

// ApplyCritical flips the persisted flag for the kind.
func (d *Document) ApplyCritical(kind zones.CriticalKind, active bool, now time.Time) {
	if d.Criticals == nil {
		d.Criticals = make(map[zones.CriticalKind]CriticalState)
	}
	d.Criticals[kind] = CriticalState{Active: active, LastChanged: now}
}

// ApplyGeneralAlert records the snapshot that was just delivered.
func (d *Document) ApplyGeneralAlert(temperature, humidity, pressure float64, now time.Time) {
	d.GeneralAlert = GeneralAlertState{
		LastTemperature: &temperature,
		LastHumidity:    &humidity,
		LastPressure:    &pressure,
		LastSentAt:      &now,
	}
}

// LastReport returns the date the given report last went out, if ever.
func (d *Document) LastReport(kind zones.ReportKind) *Date {
	switch kind {
	case zones.ReportSunrise:
		return d.Reports.LastSunrise
	case zones.ReportSunset:
		return d.Reports.LastSunset
	}
	return nil
}

// ApplyReport records that the given report went out on day.
func (d *Document) ApplyReport(kind zones.ReportKind, day Date) {
	switch kind {
	case zones.ReportSunrise:
		d.Reports.LastSunrise = &day
	case zones.ReportSunset:
		d.Reports.LastSunset = &day
	}
}
