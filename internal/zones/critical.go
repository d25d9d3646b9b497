package zones

// CriticalInput carries the auxiliary data the critical rules need beyond
// the current value. Pointer fields are nil when the cycle could not
// obtain them; rules that depend on a missing auxiliary skip silently
// rather than fail.
type CriticalInput struct {
	Value        float64
	PriorValue   *float64 // same variable about one hour earlier
	Gust         *float64 // wind: current gust speed
	RainAccum24h *float64 // rain: accumulated total of the last 24 h
}

// CriticalEvent is one acute-hazard condition found in a cycle, carrying
// the numbers its alert message renders. Which pointer fields are set
// depends on the kind.
type CriticalEvent struct {
	Kind       CriticalKind
	Value      float64
	Prior      *float64 // abrupt change: temperature one hour earlier
	Delta      *float64 // abrupt change and pressure drop: the 1 h delta
	Sustained  *float64 // strong wind: sustained speed next to the gust
	Accum24h   *float64 // rain kinds: the 24 h accumulation
	UVPeakHour *int     // extreme UV: local hour of today's radiation peak, best effort
}
