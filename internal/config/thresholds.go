package config

// Thresholds is the complete, immutable tuning table of the watchdog: the
// zone boundaries of the six variables, the acute-hazard limits, and the
// drift limits of the general alert. The zero value is unusable; start from
// DefaultThresholds and optionally overlay a station profile.
//
// All zone boundaries are half-open upper bounds: a value classifies into
// the first zone whose bound exceeds it, and the final zone is open-ended.
type Thresholds struct {
	Comfort   ComfortScale   `yaml:"comfort"`
	Humidity  HumidityScale  `yaml:"humidity"`
	Wind      WindScale      `yaml:"wind"`
	Rain      RainScale      `yaml:"rain"`
	Radiation RadiationScale `yaml:"radiation"`
	Pressure  PressureScale  `yaml:"pressure"`
	Critical  CriticalLimits `yaml:"critical"`
	Drift     DriftLimits    `yaml:"drift"`
}

// ComfortScale bounds the thermal comfort zones (°C): FRIO below Cold, then
// FRESCO, IDEAL, MORNO, QUENTE, MUITO_QUENTE, and EXTREMO at or above VeryHot.
type ComfortScale struct {
	Cold    float64 `yaml:"cold" validate:"gt=-50"`
	Cool    float64 `yaml:"cool" validate:"gtfield=Cold"`
	Ideal   float64 `yaml:"ideal" validate:"gtfield=Cool"`
	Warm    float64 `yaml:"warm" validate:"gtfield=Ideal"`
	Hot     float64 `yaml:"hot" validate:"gtfield=Warm"`
	VeryHot float64 `yaml:"very_hot" validate:"gtfield=Hot"`
}

// HumidityScale bounds the relative humidity zones (%): MUITO_SECA below
// VeryDry, then SECA, BOA, OTIMA, ALTA, and MUITO_ALTA at or above High.
type HumidityScale struct {
	VeryDry float64 `yaml:"very_dry" validate:"gt=0"`
	Dry     float64 `yaml:"dry" validate:"gtfield=VeryDry"`
	Good    float64 `yaml:"good" validate:"gtfield=Dry"`
	Great   float64 `yaml:"great" validate:"gtfield=Good"`
	High    float64 `yaml:"high" validate:"gtfield=Great"`
}

// WindScale bounds the Beaufort-derived wind zones (m/s): CALMO below Calm,
// up to VENTANIA at or above Gale.
type WindScale struct {
	Calm           float64 `yaml:"calm" validate:"gt=0"`
	Breeze         float64 `yaml:"breeze" validate:"gtfield=Calm"`
	LightBreeze    float64 `yaml:"light_breeze" validate:"gtfield=Breeze"`
	ModerateBreeze float64 `yaml:"moderate_breeze" validate:"gtfield=LightBreeze"`
	FreshBreeze    float64 `yaml:"fresh_breeze" validate:"gtfield=ModerateBreeze"`
	Moderate       float64 `yaml:"moderate" validate:"gtfield=FreshBreeze"`
	Gale           float64 `yaml:"gale" validate:"gtfield=Moderate"`
}

// RainScale bounds the rain-rate zones (mm/h). Exactly zero (or a negative
// gauge artifact) is SEM_CHUVA; MUITO_FORTE sits at or above Heavy.
type RainScale struct {
	Drizzle  float64 `yaml:"drizzle" validate:"gt=0"`
	Light    float64 `yaml:"light" validate:"gtfield=Drizzle"`
	Moderate float64 `yaml:"moderate" validate:"gtfield=Light"`
	Heavy    float64 `yaml:"heavy" validate:"gtfield=Moderate"`
}

// RadiationScale bounds the global solar radiation zones (kJ/m²). At or
// below zero is NOITE regardless of sensor noise; EXTREMA sits at or above
// VeryHigh. UVFactor converts radiation to the estimated UV index.
type RadiationScale struct {
	Twilight float64 `yaml:"twilight" validate:"gt=0"`
	Low      float64 `yaml:"low" validate:"gtfield=Twilight"`
	Moderate float64 `yaml:"moderate" validate:"gtfield=Low"`
	High     float64 `yaml:"high" validate:"gtfield=Moderate"`
	VeryHigh float64 `yaml:"very_high" validate:"gtfield=High"`

	UVFactor float64 `yaml:"uv_factor" validate:"gt=0"`
}

// PressureScale bounds the barometric pressure zones (hPa): MUITO_BAIXA
// below VeryLow up to MUITO_ALTA at or above High.
type PressureScale struct {
	VeryLow float64 `yaml:"very_low" validate:"gt=0"`
	Low     float64 `yaml:"low" validate:"gtfield=VeryLow"`
	Normal  float64 `yaml:"normal" validate:"gtfield=Low"`
	High    float64 `yaml:"high" validate:"gtfield=Normal"`
}

// CriticalLimits are the acute-hazard trigger points. Comparison directions
// are fixed in the rule set; only the numbers are tunable.
type CriticalLimits struct {
	HeatAbove        float64 `yaml:"heat_above" validate:"gt=0"`         // strict >
	ColdBelow        float64 `yaml:"cold_below" validate:"gt=-50"`       // strict <
	AbruptTempDelta  float64 `yaml:"abrupt_temp_delta" validate:"gt=0"`  // |Δ1h| >=
	DryAirBelow      float64 `yaml:"dry_air_below" validate:"gt=0"`      // strict <
	GustAbove        float64 `yaml:"gust_above" validate:"gt=0"`         // strict >
	RainRateAt       float64 `yaml:"rain_rate_at" validate:"gt=0"`       // >=
	RainAccumAbove   float64 `yaml:"rain_accum_above" validate:"gt=0"`   // strict >, 24h sum
	RadiationAt      float64 `yaml:"radiation_at" validate:"gt=0"`       // >=
	PressureDropAt   float64 `yaml:"pressure_drop_at" validate:"gt=0"`   // Δ1h <= -x
	PressureLowBelow float64 `yaml:"pressure_low_below" validate:"gt=0"` // strict <
}

// DriftLimits govern the general drift alert: minimum movement versus the
// last dispatched snapshot, and the periodic refresh interval.
type DriftLimits struct {
	TempDelta     float64 `yaml:"temp_delta" validate:"gt=0"`
	HumidityDelta float64 `yaml:"humidity_delta" validate:"gt=0"`
	PressureDelta float64 `yaml:"pressure_delta" validate:"gt=0"`
	RefreshHours  int     `yaml:"refresh_hours" validate:"min=1"`
}

// DefaultThresholds returns the Uberlândia production tuning. Stations with
// different climates overlay a profile file instead of editing code.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Comfort: ComfortScale{
			Cold:    19.0,
			Cool:    21.0,
			Ideal:   24.0,
			Warm:    27.0,
			Hot:     30.0,
			VeryHot: 33.0,
		},
		Humidity: HumidityScale{
			VeryDry: 30.0,
			Dry:     40.0,
			Good:    50.0,
			Great:   70.0,
			High:    85.0,
		},
		Wind: WindScale{
			Calm:           0.3,
			Breeze:         1.5,
			LightBreeze:    3.3,
			ModerateBreeze: 5.4,
			FreshBreeze:    7.9,
			Moderate:       10.7,
			Gale:           13.8,
		},
		Rain: RainScale{
			Drizzle:  2.5,
			Light:    10.0,
			Moderate: 30.0,
			Heavy:    50.0,
		},
		Radiation: RadiationScale{
			Twilight: 50.0,
			Low:      1000.0,
			Moderate: 2000.0,
			High:     2500.0,
			VeryHigh: 3000.0,
			UVFactor: 0.0035,
		},
		Pressure: PressureScale{
			VeryLow: 1005.0,
			Low:     1010.0,
			Normal:  1020.0,
			High:    1025.0,
		},
		Critical: CriticalLimits{
			HeatAbove:        33.0,
			ColdBelow:        18.0,
			AbruptTempDelta:  5.0,
			DryAirBelow:      20.0,
			GustAbove:        15.0,
			RainRateAt:       50.0,
			RainAccumAbove:   50.0,
			RadiationAt:      3000.0,
			PressureDropAt:   5.0,
			PressureLowBelow: 1005.0,
		},
		Drift: DriftLimits{
			TempDelta:     0.5,
			HumidityDelta: 5.0,
			PressureDelta: 2.0,
			RefreshHours:  6,
		},
	}
}
