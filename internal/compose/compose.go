// Package compose renders the composite outbound messages that are not
// tied to a single zone domain: the general drift alert with its 3 h
// variation block and insight bullets, and the morning/evening reports
// built from aggregate summaries. All output is Portuguese WhatsApp text;
// layout and wording follow the station's established message formats.
package compose

import (
	"fmt"
	"strings"
	"time"

	"github.com/SistemasVox/clima-udi/internal/config"
	"github.com/SistemasVox/clima-udi/internal/types"
	"github.com/SistemasVox/clima-udi/internal/zones"
)

// reportStampLayout is the long timestamp under the report headers.
const reportStampLayout = "02/01/2006 às 15:04"

const reportDivider = "━━━━━━━━━━━━━━━━━━━━━"

// Variation carries the 3 h deltas quoted in the general alert. A zero
// field omits its line (a missing history row reads as no variation); the
// whole block is omitted when every field is zero.
type Variation struct {
	Temperature float64
	Humidity    float64
	Pressure    float64
}

func (v Variation) empty() bool {
	return v.Temperature == 0 && v.Humidity == 0 && v.Pressure == 0
}

// Composer renders messages against one threshold table.
type Composer struct {
	th config.Thresholds
}

func NewComposer(th config.Thresholds) *Composer {
	return &Composer{th: th}
}

// GeneralAlert renders the composite status message: current conditions
// for all six variables, the optional variation block, then the insight
// bullets.
func (c *Composer) GeneralAlert(r types.Reading, v Variation, insights []string, rc zones.RenderContext) string {
	temp := orZero(r.Temperature)
	feels := orZero(r.ApparentTemperature)
	humidity := orZero(r.Humidity)
	wind := orZero(r.WindSpeed)
	rain := orZero(r.Rain)
	radiation := orZero(r.SolarRadiation)
	pressure := orZero(r.Pressure)

	var b strings.Builder
	fmt.Fprintf(&b, "🌡️ CLIMA %s\n🕒 %s\n\n", strings.ToUpper(rc.City), rc.Now.Format(zones.TimestampLayout))
	fmt.Fprintf(&b, "🌡️ Temp: %.1f°C (Sens: %.1f°C)\n   %s\n\n", temp, feels, c.comfortDescription(temp))
	fmt.Fprintf(&b, "💧 Umidade: %.0f%% (%s)\n\n", humidity, c.humidityBrief(humidity))
	fmt.Fprintf(&b, "💨 Vento: %.1f m/s (%s)\n\n", wind, c.beaufortName(wind))
	fmt.Fprintf(&b, "🌧️ Chuva: %.1f mm (%s)\n\n", rain, c.rainBrief(rain))
	fmt.Fprintf(&b, "☀️ Radiação: %.0f kJ/m²\n   %s\n\n", radiation, c.radiationBrief(radiation))
	fmt.Fprintf(&b, "📊 Pressão: %.1f hPa (%s)", pressure, c.pressureBrief(pressure))

	if !v.empty() {
		b.WriteString("\n\n📈 Variação 3h:")
		if v.Temperature != 0 {
			fmt.Fprintf(&b, "\n   Temp: %+.1f°C %s", v.Temperature, trendArrow(v.Temperature))
		}
		if v.Humidity != 0 {
			fmt.Fprintf(&b, "\n   Umidade: %+.0f%% %s", v.Humidity, trendArrow(v.Humidity))
		}
		if v.Pressure != 0 {
			fmt.Fprintf(&b, "\n   Pressão: %+.1f hPa %s", v.Pressure, trendArrow(v.Pressure))
		}
	}

	if len(insights) > 0 {
		b.WriteString("\n\n🧠 Insights:")
		for _, insight := range insights {
			b.WriteString("\n• " + insight)
		}
	}

	return b.String()
}

// MorningReport renders the sunrise report: the night in review plus the
// conditions the day starts with.
func (c *Composer) MorningReport(night types.AggregateSummary, r types.Reading, rc zones.RenderContext) string {
	temp := orZero(r.Temperature)
	humidity := orZero(r.Humidity)
	wind := orZero(r.WindSpeed)
	pressure := orZero(r.Pressure)
	radiation := orZero(r.SolarRadiation)

	humidityDesc := "Ótima"
	if humidity >= c.th.Humidity.Great {
		humidityDesc = "Alta"
	}

	radDesc := "Crepúsculo"
	if radiation >= c.th.Radiation.Twilight {
		radDesc = radZoneTitle(c.radDisplayZone(radiation))
	}

	hours, minutes := splitDuration(night.Duration())

	var b strings.Builder
	fmt.Fprintf(&b, "☀️ BOM DIA %s\n📅 %s\n\n", strings.ToUpper(rc.City), rc.Now.Format(reportStampLayout))
	b.WriteString(reportDivider + "\n🌙 RESUMO DA NOITE\n\n")
	fmt.Fprintf(&b, "Duração: %dh %dmin (%s-%s)\n",
		hours, minutes, night.Start.Format("15:04"), night.End.Format("15:04"))
	fmt.Fprintf(&b, "Temp mínima: %.1f°C\n", orZero(night.TempMin))
	fmt.Fprintf(&b, "Temp máxima: %.1f°C\n", orZero(night.TempMax))
	fmt.Fprintf(&b, "Umidade média: %.0f%%\n", orZero(night.HumidityAvg))
	fmt.Fprintf(&b, "Chuva acumulada: %.1f mm\n", night.RainTotal)
	fmt.Fprintf(&b, "Rajada máxima: %.1f m/s\n\n", orZero(night.GustMax))
	b.WriteString(reportDivider + "\n🌡️ CONDIÇÕES ATUAIS\n\n")
	fmt.Fprintf(&b, "Temperatura: %.1f°C (%s)\n", temp, c.comfortDescription(temp))
	fmt.Fprintf(&b, "Umidade: %.0f%% (%s)\n", humidity, humidityDesc)
	fmt.Fprintf(&b, "Vento: %.1f m/s (%s)\n", wind, c.beaufortName(wind))
	fmt.Fprintf(&b, "Pressão: %.1f hPa (Estável)\n", pressure)
	fmt.Fprintf(&b, "Radiação: %.0f kJ/m² (%s)\n\n", radiation, radDesc)
	b.WriteString(reportDivider + "\n💡 DICA DO DIA\n\n")
	b.WriteString("Manhã agradável para exercícios.\nUse protetor solar após 10h.\nHidrate-se bem durante o dia.\n\nTenha um ótimo dia! ✨")

	return b.String()
}

// EveningReport renders the sunset report: the daylight period in review
// plus the conditions the night starts with.
func (c *Composer) EveningReport(day types.AggregateSummary, r types.Reading, rc zones.RenderContext) string {
	temp := orZero(r.Temperature)
	humidity := orZero(r.Humidity)
	wind := orZero(r.WindSpeed)
	pressure := orZero(r.Pressure)

	humidityDesc := "Boa"
	if humidity >= c.th.Humidity.Great {
		humidityDesc = "Alta"
	}

	radMax := orZero(day.RadiationMax)
	radZone := c.radDisplayZone(radMax)
	uv := zones.EstimateUV(radMax, c.th.Radiation.UVFactor)
	radLine := fmt.Sprintf("Radiação máxima: %.0f kJ/m² (UV %d)", radMax, uv)
	if radZone == "MUITO ALTA" || radZone == "EXTREMA" {
		radLine = fmt.Sprintf("Radiação máxima: %.0f kJ/m²\n   Zona: %s (UV %d) ⚠️", radMax, radZone, uv)
	}

	hours, minutes := splitDuration(day.Duration())

	var b strings.Builder
	fmt.Fprintf(&b, "🌙 BOA NOITE %s\n📅 %s\n\n", strings.ToUpper(rc.City), rc.Now.Format(reportStampLayout))
	b.WriteString(reportDivider + "\n☀️ RESUMO DO DIA\n\n")
	fmt.Fprintf(&b, "Duração: %dh %dmin (%s-%s)\n",
		hours, minutes, day.Start.Format("15:04"), day.End.Format("15:04"))
	fmt.Fprintf(&b, "Temp máxima: %.1f°C\n", orZero(day.TempMax))
	fmt.Fprintf(&b, "Temp mínima: %.1f°C\n", orZero(day.TempMin))
	fmt.Fprintf(&b, "Umidade mínima: %.0f%%\n", orZero(day.HumidityMin))
	b.WriteString(radLine + "\n")
	fmt.Fprintf(&b, "Chuva acumulada: %.1f mm\n", day.RainTotal)
	fmt.Fprintf(&b, "Rajada máxima: %.1f m/s\n\n", orZero(day.GustMax))
	b.WriteString(reportDivider + "\n🌡️ CONDIÇÕES ATUAIS\n\n")
	fmt.Fprintf(&b, "Temperatura: %.1f°C (%s)\n", temp, c.comfortDescription(temp))
	fmt.Fprintf(&b, "Umidade: %.0f%% (%s)\n", humidity, humidityDesc)
	fmt.Fprintf(&b, "Vento: %.1f m/s (%s)\n", wind, c.beaufortName(wind))
	fmt.Fprintf(&b, "Pressão: %.1f hPa (Estável)\n", pressure)
	b.WriteString("Radiação: 0 kJ/m² (Noite)\n\n")
	b.WriteString(reportDivider + "\n💡 DICA DA NOITE\n\n")
	b.WriteString("Noite agradável e tranquila.\nAgasalho leve pode ser útil.\nBom momento para caminhada.\n\nTenha uma ótima noite! ✨")

	return b.String()
}

func orZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func trendArrow(delta float64) string {
	if delta > 0 {
		return "↑"
	}
	return "↓"
}

func splitDuration(d time.Duration) (hours, minutes int) {
	total := int(d.Minutes())
	return total / 60, total % 60
}
