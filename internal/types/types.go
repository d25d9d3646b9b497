// Package types holds the shared domain types of the Sentinela watchdog:
// station readings, aggregate summaries, the error model, and the small
// interfaces (clock, validation) every layer agrees on. It has no
// dependencies on other internal packages so anything may import it.
package types

import "time"

// Reading is one station observation row. Fields other than the timestamp
// are pointers because the station reports NULL whenever a sensor misses a
// cycle; a nil field means "not measured", never zero. Rain is the one
// exception: the repository coalesces a NULL gauge to zero because a dry
// tipping bucket simply reports nothing.
type Reading struct {
	Timestamp time.Time // measurement instant, station-local

	Temperature         *float64 // tem_ins, °C
	ApparentTemperature *float64 // tem_sen, °C ("sensação térmica")
	Humidity            *float64 // umd_ins, %
	Pressure            *float64 // pre_ins, hPa
	WindSpeed           *float64 // ven_vel, m/s
	WindGust            *float64 // ven_raj, m/s
	Rain                *float64 // chuva, mm in the measurement hour
	SolarRadiation      *float64 // rad_glo, kJ/m²
}

// AggregateSummary condenses a stretch of readings (one daylight period or
// one night) for the morning and evening reports. Aggregates are nil when
// every source row had the sensor missing; Start and End always bound the
// rows that produced the summary.
type AggregateSummary struct {
	Start time.Time
	End   time.Time

	TempMin      *float64
	TempMax      *float64
	HumidityMin  *float64 // daylight summaries
	HumidityAvg  *float64 // night summaries
	RadiationMax *float64 // daylight summaries
	GustMax      *float64
	RainTotal    float64 // mm, zero when no gauge tips
}

// Duration returns the span the summary covers.
func (s AggregateSummary) Duration() time.Duration {
	return s.End.Sub(s.Start)
}
