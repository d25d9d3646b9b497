package zones

import (
	"fmt"

	"github.com/SistemasVox/clima-udi/internal/config"
)

func newHumidityDomain(th config.Thresholds) *Domain {
	scale := Scale{
		Bands: []Band{
			{Upper: th.Humidity.VeryDry, Label: "MUITO_SECA"},
			{Upper: th.Humidity.Dry, Label: "SECA"},
			{Upper: th.Humidity.Good, Label: "BOA"},
			{Upper: th.Humidity.Great, Label: "OTIMA"},
			{Upper: th.Humidity.High, Label: "ALTA"},
		},
		Final: "MUITO_ALTA",
	}

	meta := map[Label]ZoneMeta{
		"MUITO_SECA": {Emoji: "🏜️", Description: "Ar muito seco (crítico)"},
		"SECA":       {Emoji: "⚠️", Description: "Ar seco"},
		"BOA":        {Emoji: "👍", Description: "Boa"},
		"OTIMA":      {Emoji: "✅", Description: "Ótima (confortável)"},
		"ALTA":       {Emoji: "💧", Description: "Alta (elevada)"},
		"MUITO_ALTA": {Emoji: "💦💦", Description: "Muito alta (saturação)"},
	}

	limits := th.Critical

	return &Domain{
		ID:        DomainHumidity,
		Scale:     scale,
		title:     "💧 MUDANÇA DE UMIDADE",
		valueWord: "Umidade",
		zoneWord:  "Zona",
		format:    func(v float64) string { return fmt.Sprintf("%.0f%%", v) },
		meta:      meta,
		tip:       humidityTip,
		critical: func(in CriticalInput) []CriticalEvent {
			if in.Value < limits.DryAirBelow {
				return []CriticalEvent{{Kind: CriticalDryAir, Value: in.Value}}
			}
			return nil
		},
		render: func(ev CriticalEvent, rc RenderContext) string {
			if ev.Kind != CriticalDryAir {
				return ""
			}
			return fmt.Sprintf(`🏜️🏜️ ALERTA AR SECO 🏜️🏜️
%s

💧 Umidade: %.0f%%
   AR MUITO SECO ⚠️

🚨 NÍVEL CRÍTICO

⚠️ Risco respiratório elevado
⚠️ Ressecamento de mucosas
⚠️ Possível sangramento nasal

✅ Aumente ingestão de água
✅ Use umidificador
✅ Hidratante nasal
✅ Evite exercícios intensos

Umidade crítica abaixo de %.0f%%`, rc.Stamp(), ev.Value, limits.DryAirBelow)
		},
	}
}

func humidityTip(from, to Label) string {
	switch {
	case to == "MUITO_SECA":
		return "\n\n💡 Ar muito seco - alerta\nAumente ingestão de água\nUmidificador recomendado\nAtenção: vias respiratórias"
	case to == "SECA":
		return "\n\n💡 Ar ficando seco\nHidrate-se mais\nHidratante na pele recomendado"
	case to == "MUITO_ALTA":
		return "\n\n💡 Ar saturado\nSensação de abafamento\nChuva muito provável"
	case to == "ALTA":
		return "\n\n💡 Umidade aumentando\nAr mais pesado\nPossível chuva se aproximando"
	case labelIn(to, "BOA", "OTIMA"):
		switch {
		case labelIn(from, "MUITO_SECA", "SECA"):
			return "\n\n💡 Umidade melhorando\nConforto respiratório ideal"
		case labelIn(from, "ALTA", "MUITO_ALTA"):
			return "\n\n💡 Umidade normalizando\nAr mais leve e confortável"
		default:
			return "\n\n💡 Umidade ideal\nConforto respiratório"
		}
	}
	return ""
}
