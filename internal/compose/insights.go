package compose

import (
	"slices"

	"github.com/SistemasVox/clima-udi/internal/types"
)

// Insights derives the bullet list appended to the general alert from the
// current reading and the 3 h deltas. Rule order is fixed so repeated runs
// produce identical lists; the combined rules at the end de-duplicate
// against bullets already emitted.
func (c *Composer) Insights(r types.Reading, deltaTemp, deltaPressure float64) []string {
	var out []string

	temp := orZero(r.Temperature)
	humidity := orZero(r.Humidity)
	pressure := orZero(r.Pressure)
	radiation := orZero(r.SolarRadiation)

	// Temperature trend
	switch {
	case deltaTemp < -4.0:
		out = append(out, "Temperatura em queda acentuada", "Possível frente fria aproximando")
	case deltaTemp < -2.0:
		out = append(out, "Temperatura em queda")
	case deltaTemp > 5.0:
		out = append(out, "Temperatura subindo rapidamente")
		if temp > c.th.Comfort.Hot {
			out = append(out, "Atenção: calor intensificando")
		}
	case deltaTemp > 3.0:
		out = append(out, "Temperatura em elevação")
	}

	// Pressure trend
	switch {
	case deltaPressure < -3.0:
		out = append(out, "Pressão em queda acentuada", "Tempo pode instabilizar")
	case deltaPressure < -1.5:
		out = append(out, "Pressão caindo - tempo instável")
	case deltaPressure > 3.0:
		out = append(out, "Pressão subindo rapidamente", "Tempo estabilizando")
	case deltaPressure > 1.5:
		out = append(out, "Pressão em elevação")
	}

	// Humidity
	switch {
	case humidity < c.th.Humidity.VeryDry:
		out = append(out, "Ar muito seco - hidrate-se")
	case humidity > c.th.Humidity.High:
		out = append(out, "Ar saturado - chuva provável")
	}

	// UV
	switch {
	case radiation > c.th.Critical.RadiationAt:
		out = append(out, "Radiação solar intensa", "UV extremo - evite exposição")
	case radiation > c.th.Radiation.Moderate:
		out = append(out, "UV alto - use proteção")
	}

	// Thermal comfort
	switch {
	case temp < c.th.Critical.ColdBelow:
		out = append(out, "Temperatura baixa - agasalho necessário")
	case temp > 32.0:
		out = append(out, "Calor intenso - evite exposição solar")
	}

	// Heat with dry air
	if temp > c.th.Comfort.Hot && humidity < c.th.Humidity.Dry &&
		!slices.Contains(out, "Atenção: calor intensificando") {
		out = append(out, "Atenção: calor intensificando")
	}

	// Low pressure with saturated air
	if pressure < c.th.Pressure.Low && humidity > 80.0 &&
		!slices.Contains(out, "Ar saturado - chuva provável") {
		out = append(out, "Chuva pode ocorrer em breve")
	}

	return out
}
