package zones

import (
	"fmt"

	"github.com/SistemasVox/clima-udi/internal/config"
)

// Wind zones follow the Beaufort scale, in m/s.
func newWindDomain(th config.Thresholds) *Domain {
	scale := Scale{
		Bands: []Band{
			{Upper: th.Wind.Calm, Label: "CALMO"},
			{Upper: th.Wind.Breeze, Label: "ARAGEM"},
			{Upper: th.Wind.LightBreeze, Label: "BRISA_LEVE"},
			{Upper: th.Wind.ModerateBreeze, Label: "BRISA_MODERADA"},
			{Upper: th.Wind.FreshBreeze, Label: "BRISA_FRESCA"},
			{Upper: th.Wind.Moderate, Label: "MODERADO"},
			{Upper: th.Wind.Gale, Label: "FORTE"},
		},
		Final: "VENTANIA",
	}

	meta := map[Label]ZoneMeta{
		"CALMO":          {Emoji: "😴", Description: "Calmo"},
		"ARAGEM":         {Emoji: "🍃", Description: "Aragem (suave)"},
		"BRISA_LEVE":     {Emoji: "🌿", Description: "Brisa Leve"},
		"BRISA_MODERADA": {Emoji: "💨", Description: "Brisa Moderada"},
		"BRISA_FRESCA":   {Emoji: "🌬️", Description: "Brisa Fresca"},
		"MODERADO":       {Emoji: "💨💨", Description: "Vento Moderado"},
		"FORTE":          {Emoji: "🌪️", Description: "Vento Forte"},
		"VENTANIA":       {Emoji: "🌀", Description: "Ventania"},
	}

	limits := th.Critical

	return &Domain{
		ID:        DomainWind,
		Scale:     scale,
		title:     "💨 MUDANÇA DE VENTO",
		valueWord: "Vento",
		zoneWord:  "Zona",
		format:    func(v float64) string { return fmt.Sprintf("%.1f m/s", v) },
		meta:      meta,
		tip:       windTip,
		extra: func(ev *TransitionEvent) string {
			if ev.Gust == nil || *ev.Gust <= ev.Value {
				return ""
			}
			return fmt.Sprintf("\nRajadas: %.1f m/s (%.0f km/h)", *ev.Gust, *ev.Gust*3.6)
		},
		critical: func(in CriticalInput) []CriticalEvent {
			if in.Gust != nil && *in.Gust > limits.GustAbove {
				sustained := in.Value
				return []CriticalEvent{{
					Kind:      CriticalStrongWind,
					Value:     *in.Gust,
					Sustained: &sustained,
				}}
			}
			return nil
		},
		render: func(ev CriticalEvent, rc RenderContext) string {
			if ev.Kind != CriticalStrongWind || ev.Sustained == nil {
				return ""
			}
			sustained := *ev.Sustained
			return fmt.Sprintf(`🌀🌀 ALERTA VENTO 🌀🌀
%s

💨 Rajadas: %.1f m/s (%.0f km/h)
   %s ⚠️

💨 Sustentado: %.1f m/s (%.0f km/h)
   Beaufort: %s

🚨 RISCO DE DANOS

⚠️ Queda de árvores/galhos
⚠️ Objetos soltos voando
⚠️ Estruturas precárias

❌ Evite áreas abertas
❌ Não fique sob árvores
❌ Cuidado com placas/toldos

✅ Recolha objetos do quintal
✅ Feche portas e janelas

Duração prevista: 2-3h`,
				rc.Stamp(),
				ev.Value, ev.Value*3.6, scale.Classify(ev.Value),
				sustained, sustained*3.6, scale.Classify(sustained))
		},
	}
}

func windTip(from, to Label) string {
	switch {
	case to == "VENTANIA":
		return "\n\n💡 Vento muito forte! ⚠️\nGalhos podem quebrar\nEvite áreas abertas\nRecolha objetos soltos"
	case to == "FORTE":
		return "\n\n💡 Vento perigoso\n⚠️ Galhos podem quebrar\nEvite áreas abertas\nRecolha objetos do quintal"
	case to == "MODERADO":
		return "\n\n💡 Vento intensificando\nÁrvores pequenas balançam\nCuidado com objetos soltos"
	case to == "BRISA_FRESCA":
		return "\n\n💡 Vento aumentando\nGalhos balançando\nObjetos leves podem voar"
	case labelIn(to, "BRISA_LEVE", "BRISA_MODERADA"):
		return "\n\n💡 Vento aumentando\nSensação térmica mais fresca\nVentilação natural boa"
	case labelIn(to, "CALMO", "ARAGEM"):
		if labelIn(from, "FORTE", "VENTANIA", "MODERADO") {
			return "\n\n💡 Vento diminuindo\nCondições normalizando"
		}
		return "\n\n💡 Vento calmo\nCondições tranquilas"
	}
	return ""
}
