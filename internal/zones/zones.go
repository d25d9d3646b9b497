// Package zones is the classification core: it turns the six monitored
// weather variables into named zones, detects zone transitions against
// the persisted state, evaluates the critical alert rules and renders the
// Portuguese WhatsApp messages for both.
//
// Each variable is described by one Domain value bundling its scale, its
// presentation strings and its critical rule set. The six domains are
// built from the configured thresholds by NewCatalog; nothing in this
// package holds mutable state.
package zones

import "time"

// Label names a classification zone, e.g. "FRIO" or "MUITO_ALTA". Labels
// appear verbatim in messages and in the persisted state document.
type Label string

// DomainID identifies one monitored variable. The values double as the
// persisted state keys.
type DomainID string

const (
	DomainTemperature DomainID = "temperatura"
	DomainHumidity    DomainID = "umidade"
	DomainWind        DomainID = "vento"
	DomainRain        DomainID = "chuva"
	DomainRadiation   DomainID = "radiacao"
	DomainPressure    DomainID = "pressao"
)

// CriticalKind names one acute-hazard condition. The values double as the
// persisted debounce keys.
type CriticalKind string

const (
	CriticalExtremeHeat     CriticalKind = "calor_extremo"
	CriticalExtremeCold     CriticalKind = "frio_extremo"
	CriticalAbruptChange    CriticalKind = "mudanca_brusca"
	CriticalDryAir          CriticalKind = "ar_muito_seco"
	CriticalStrongWind      CriticalKind = "vento_forte"
	CriticalHeavyRain       CriticalKind = "chuva_intensa"
	CriticalAccumulatedRain CriticalKind = "chuva_acumulada"
	CriticalExtremeUV       CriticalKind = "uv_extremo"
	CriticalPressureDrop    CriticalKind = "queda_brusca"
	CriticalLowPressure     CriticalKind = "pressao_muito_baixa"
)

// CriticalDispatchOrder is the fixed order critical alerts are debounced
// and dispatched within a cycle.
var CriticalDispatchOrder = []CriticalKind{
	CriticalExtremeHeat,
	CriticalExtremeCold,
	CriticalAbruptChange,
	CriticalDryAir,
	CriticalStrongWind,
	CriticalHeavyRain,
	CriticalAccumulatedRain,
	CriticalExtremeUV,
	CriticalPressureDrop,
	CriticalLowPressure,
}

// ReportKind names one of the two daily reports.
type ReportKind string

const (
	ReportSunrise ReportKind = "bom_dia"
	ReportSunset  ReportKind = "boa_noite"
)

// DayNightTransition detects the day/night boundary from the radiation
// sign: non-positive radiation is night, even when the sensor drifts
// negative. prior is the radiation of the reading about one hour earlier;
// with no prior reading there is no detectable boundary.
func DayNightTransition(prior *float64, current float64) (ReportKind, bool) {
	if prior == nil {
		return "", false
	}
	if *prior <= 0 && current > 0 {
		return ReportSunrise, true
	}
	if *prior > 0 && current <= 0 {
		return ReportSunset, true
	}
	return "", false
}

// TimestampLayout is the display layout of the timestamps inside
// messages.
const TimestampLayout = "02/01/2006 15:04"

// RenderContext carries the presentation inputs shared by every outbound
// message.
type RenderContext struct {
	City string
	Now  time.Time
}

// Stamp returns the "city • timestamp" line printed under each message
// title.
func (rc RenderContext) Stamp() string {
	return rc.City + " • " + rc.Now.Format(TimestampLayout)
}
