package zones

import (
	"fmt"

	"github.com/SistemasVox/clima-udi/internal/config"
)

// Radiation descriptions carry the UV index estimated from the value on
// each line, so the meta table holds emojis only and describe does the rest.
func newRadiationDomain(th config.Thresholds) *Domain {
	scale := Scale{
		Floor: &FloorRule{At: 0, Label: "NOITE"},
		Bands: []Band{
			{Upper: th.Radiation.Twilight, Label: "CREPUSCULO"},
			{Upper: th.Radiation.Low, Label: "BAIXA"},
			{Upper: th.Radiation.Moderate, Label: "MODERADA"},
			{Upper: th.Radiation.High, Label: "ALTA"},
			{Upper: th.Radiation.VeryHigh, Label: "MUITO_ALTA"},
		},
		Final: "EXTREMA",
	}

	meta := map[Label]ZoneMeta{
		"NOITE":      {Emoji: "🌙"},
		"CREPUSCULO": {Emoji: "🌅"},
		"BAIXA":      {Emoji: "☁️"},
		"MODERADA":   {Emoji: "🌤️"},
		"ALTA":       {Emoji: "☀️"},
		"MUITO_ALTA": {Emoji: "🔆"},
		"EXTREMA":    {Emoji: "☢️"},
	}

	limits := th.Critical
	uvFactor := th.Radiation.UVFactor

	return &Domain{
		ID:        DomainRadiation,
		Scale:     scale,
		title:     "☀️ MUDANÇA DE RADIAÇÃO",
		valueWord: "Radiação",
		zoneWord:  "Zona",
		format:    func(v float64) string { return fmt.Sprintf("%.0f kJ/m²", v) },
		meta:      meta,
		describe: func(zone Label, value float64) string {
			switch zone {
			case "NOITE":
				return "Noite"
			case "CREPUSCULO":
				return "Crepúsculo"
			case "EXTREMA":
				return fmt.Sprintf("Extrema (UV %d+)", EstimateUV(value, uvFactor))
			case "BAIXA":
				return fmt.Sprintf("Baixa (UV %d)", EstimateUV(value, uvFactor))
			case "MODERADA":
				return fmt.Sprintf("Moderada (UV %d)", EstimateUV(value, uvFactor))
			case "ALTA":
				return fmt.Sprintf("Alta (UV %d)", EstimateUV(value, uvFactor))
			case "MUITO_ALTA":
				return fmt.Sprintf("Muito Alta (UV %d)", EstimateUV(value, uvFactor))
			}
			return string(zone)
		},
		tip: radiationTip,
		critical: func(in CriticalInput) []CriticalEvent {
			if in.Value >= limits.RadiationAt {
				return []CriticalEvent{{Kind: CriticalExtremeUV, Value: in.Value}}
			}
			return nil
		},
		render: func(ev CriticalEvent, rc RenderContext) string {
			if ev.Kind != CriticalExtremeUV {
				return ""
			}
			peak := "Pico UV: 12h-14h (PERIGO MÁXIMO)"
			if ev.UVPeakHour != nil {
				peak = fmt.Sprintf("Pico UV: %dh-%dh (PERIGO MÁXIMO)", *ev.UVPeakHour, *ev.UVPeakHour+2)
			}
			return fmt.Sprintf(`☀️☀️ ALERTA UV ☀️☀️
%s

☀️ Radiação: %.0f kJ/m²
   EXTREMA ☢️ (UV %d+)

🚨 RISCO SEVERO À PELE

⚠️ Queimaduras em minutos
⚠️ Dano celular acelerado
⚠️ Risco de câncer de pele

❌ Evite exposição 10h-16h
❌ Não fique ao sol sem proteção

✅ FPS 50+ obrigatório
✅ Reaplique a cada 2h
✅ Use chapéu e óculos
✅ Procure sombra

%s`, rc.Stamp(), ev.Value, EstimateUV(ev.Value, uvFactor), peak)
		},
	}
}

func radiationTip(from, to Label) string {
	switch {
	case to == "EXTREMA":
		return "\n\n💡 UV EXTREMO - PERIGO!\n❌ NÃO fique ao sol agora\nQueimaduras em minutos\nBusque sombra imediatamente"
	case to == "MUITO_ALTA":
		return "\n\n💡 UV em nível perigoso\nFPS 50+ obrigatório\nEvite sol 11h-15h\nReaplique protetor a cada 2h"
	case to == "ALTA":
		return "\n\n💡 UV aumentando\nUse FPS 30+ agora\nEvite exposição prolongada"
	case to == "MODERADA":
		return "\n\n💡 UV moderado\nProteção recomendada\nFPS 30+ em exposição prolongada"
	case to == "BAIXA":
		if labelIn(from, "ALTA", "MUITO_ALTA", "EXTREMA") {
			return "\n\n💡 UV diminuindo\nRadiação mais segura\nMelhor hora para atividades"
		}
		return "\n\n💡 UV baixo\nRadiação segura\nProteção básica suficiente"
	case to == "CREPUSCULO":
		if from == "BAIXA" {
			return "\n\n💡 Sol se pondo\nRadiação segura agora\nBoa hora para atividades externas"
		}
		return "\n\n💡 Amanhecendo\nRadiação ainda baixa"
	case to == "NOITE":
		return "\n\n💡 Anoiteceu\nSem radiação solar"
	}
	return ""
}
