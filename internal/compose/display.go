package compose

import (
	"fmt"

	"github.com/SistemasVox/clima-udi/internal/zones"
)

// Display scales for the composite messages. These are deliberately
// coarser than the zone scales in internal/zones: the general alert and
// the daily reports quote short human labels, not zone names, and their
// radiation ladder has no twilight tier (anything under the twilight
// bound reads as night).

func (c *Composer) comfortDescription(temp float64) string {
	co := c.th.Comfort
	switch {
	case temp < co.Cold:
		return "Frio (precisa agasalho)"
	case temp < co.Cool:
		return "Fresco (ótima troca de calor)"
	case temp < co.Ideal:
		return "Confortável (perfeito)"
	case temp < co.Warm:
		return "Morno (começando a esquentar)"
	case temp < co.Hot:
		return "Quente (desconfortável)"
	case temp < co.VeryHot:
		return "Muito quente (suor, fadiga)"
	default:
		return "Calor extremo (risco à saúde)"
	}
}

func (c *Composer) beaufortName(speed float64) string {
	w := c.th.Wind
	switch {
	case speed < w.Calm:
		return "Calmo"
	case speed < w.Breeze:
		return "Aragem"
	case speed < w.LightBreeze:
		return "Brisa Leve"
	case speed < w.ModerateBreeze:
		return "Brisa Moderada"
	case speed < w.FreshBreeze:
		return "Brisa Fresca"
	case speed < w.Moderate:
		return "Vento Moderado"
	case speed < w.Gale:
		return "Vento Forte"
	default:
		return "VENTANIA"
	}
}

func (c *Composer) rainBrief(rate float64) string {
	r := c.th.Rain
	switch {
	case rate <= 0:
		return "Sem chuva"
	case rate < r.Drizzle:
		return "Garoa"
	case rate < r.Light:
		return "Fraca"
	case rate < r.Moderate:
		return "Moderada"
	case rate < r.Heavy:
		return "Forte"
	default:
		return "Muito Forte"
	}
}

func (c *Composer) humidityBrief(humidity float64) string {
	switch {
	case humidity < c.th.Humidity.Dry:
		return "Ar seco"
	case humidity < c.th.Humidity.Great:
		return "Ótima"
	default:
		return "Alta"
	}
}

func (c *Composer) pressureBrief(pressure float64) string {
	if pressure < c.th.Pressure.Low {
		return "Em queda"
	}
	return "Estável"
}

// radiationBrief is the indented radiation description in the general
// alert. Zero or negative radiation reads as plain night.
func (c *Composer) radiationBrief(radiation float64) string {
	if radiation <= 0 {
		return "Noite"
	}
	uv := zones.EstimateUV(radiation, c.th.Radiation.UVFactor)
	switch zone := c.radDisplayZone(radiation); zone {
	case "BAIXA":
		return fmt.Sprintf("Baixa • UV %d", uv)
	case "MODERADA":
		return fmt.Sprintf("Moderada • UV %d (use proteção)", uv)
	case "ALTA":
		return fmt.Sprintf("Alta • UV %d (FPS 30+)", uv)
	case "MUITO ALTA":
		return fmt.Sprintf("Muito Alta • UV %d+ (FPS 50+)", uv)
	case "EXTREMA":
		return fmt.Sprintf("EXTREMA • UV %d+ (PERIGO)", uv)
	default:
		return radZoneTitle(zone)
	}
}

// radDisplayZone is the report ladder: no CREPUSCULO tier, and the
// "MUITO ALTA" label is spelled with a space.
func (c *Composer) radDisplayZone(radiation float64) string {
	r := c.th.Radiation
	switch {
	case radiation < r.Twilight:
		return "NOITE"
	case radiation < r.Low:
		return "BAIXA"
	case radiation < r.Moderate:
		return "MODERADA"
	case radiation < r.High:
		return "ALTA"
	case radiation < r.VeryHigh:
		return "MUITO ALTA"
	default:
		return "EXTREMA"
	}
}

func radZoneTitle(zone string) string {
	switch zone {
	case "NOITE":
		return "Noite"
	case "BAIXA":
		return "Baixa"
	case "MODERADA":
		return "Moderada"
	case "ALTA":
		return "Alta"
	case "MUITO ALTA":
		return "Muito Alta"
	case "EXTREMA":
		return "Extrema"
	}
	return zone
}
