package zones

// Band is one zone of a Scale: a value classifies into the first band
// whose Upper bound exceeds it.
type Band struct {
	Upper float64
	Label Label
}

// FloorRule short-circuits values at or below At into a dedicated zone
// before the bands are consulted. Rain uses it so that zero (or a
// negative gauge artifact) reads as no rain, radiation so that night
// readings below zero never surface as an error.
type FloorRule struct {
	At    float64
	Label Label
}

// Scale classifies a scalar into named zones through ascending half-open
// upper bounds. Classification is pure and total: every float lands in
// exactly one zone, with Final covering everything at or above the last
// band's bound.
type Scale struct {
	Floor *FloorRule
	Bands []Band
	Final Label
}

// Classify returns the zone for v.
func (s Scale) Classify(v float64) Label {
	if s.Floor != nil && v <= s.Floor.At {
		return s.Floor.Label
	}
	for _, b := range s.Bands {
		if v < b.Upper {
			return b.Label
		}
	}
	return s.Final
}

// EstimateUV approximates the UV index from global radiation using the
// configured conversion factor. Non-positive radiation is UV 0; the
// result is truncated, matching how the index is quoted in forecasts.
func EstimateUV(radiation, factor float64) int {
	if radiation <= 0 {
		return 0
	}
	return int(radiation * factor)
}
