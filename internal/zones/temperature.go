package zones

import (
	"fmt"
	"math"

	"github.com/SistemasVox/clima-udi/internal/config"
)

func newTemperatureDomain(th config.Thresholds) *Domain {
	scale := Scale{
		Bands: []Band{
			{Upper: th.Comfort.Cold, Label: "FRIO"},
			{Upper: th.Comfort.Cool, Label: "FRESCO"},
			{Upper: th.Comfort.Ideal, Label: "IDEAL"},
			{Upper: th.Comfort.Warm, Label: "MORNO"},
			{Upper: th.Comfort.Hot, Label: "QUENTE"},
			{Upper: th.Comfort.VeryHot, Label: "MUITO_QUENTE"},
		},
		Final: "EXTREMO",
	}

	meta := map[Label]ZoneMeta{
		"FRIO":         {Emoji: "🥶", Description: "Frio (precisa agasalho)"},
		"FRESCO":       {Emoji: "🌡️", Description: "Fresco (ótima troca de calor)"},
		"IDEAL":        {Emoji: "✅", Description: "Confortável (perfeito)"},
		"MORNO":        {Emoji: "🌤️", Description: "Morno (começando esquentar)"},
		"QUENTE":       {Emoji: "🔥", Description: "Quente (desconfortável)"},
		"MUITO_QUENTE": {Emoji: "🥵", Description: "Muito quente (suor, fadiga)"},
		"EXTREMO":      {Emoji: "🔴", Description: "Calor extremo (risco à saúde)"},
	}

	limits := th.Critical

	return &Domain{
		ID:        DomainTemperature,
		Scale:     scale,
		title:     "🌡️ MUDANÇA DE CONFORTO",
		valueWord: "Temperatura",
		zoneWord:  "Conforto",
		format:    func(v float64) string { return fmt.Sprintf("%.1f°C", v) },
		meta:      meta,
		tip:       temperatureTip,
		critical: func(in CriticalInput) []CriticalEvent {
			var evs []CriticalEvent
			if in.Value > limits.HeatAbove {
				evs = append(evs, CriticalEvent{Kind: CriticalExtremeHeat, Value: in.Value})
			}
			if in.Value < limits.ColdBelow {
				evs = append(evs, CriticalEvent{Kind: CriticalExtremeCold, Value: in.Value})
			}
			if in.PriorValue != nil {
				delta := in.Value - *in.PriorValue
				if math.Abs(delta) >= limits.AbruptTempDelta {
					evs = append(evs, CriticalEvent{
						Kind:  CriticalAbruptChange,
						Value: in.Value,
						Prior: in.PriorValue,
						Delta: &delta,
					})
				}
			}
			return evs
		},
		render: func(ev CriticalEvent, rc RenderContext) string {
			return renderTemperatureCritical(ev, rc, limits)
		},
	}
}

func temperatureTip(from, to Label) string {
	switch {
	case labelIn(to, "MUITO_QUENTE", "EXTREMO"):
		return "\n\n💡 Calor aumentando\nUse roupas leves e hidrate-se\nEvite atividades intensas"
	case to == "FRIO":
		return "\n\n💡 Temperatura caindo\nAgasalho pesado recomendado\nAtenção com crianças e idosos"
	case labelIn(to, "FRESCO", "IDEAL"):
		if labelIn(from, "QUENTE", "MUITO_QUENTE", "EXTREMO") {
			return "\n\n💡 Temperatura aliviando\nAmbiente mais confortável\nBom momento para atividades"
		}
		return "\n\n💡 Temperatura agradável\nConforto térmico ideal"
	case to == "QUENTE":
		return "\n\n💡 Ambiente esquentando\nVentilação recomendada\nHidrate-se regularmente"
	case to == "MORNO":
		return "\n\n💡 Temperatura subindo\nAmbiente começando a aquecer"
	}
	return ""
}

func renderTemperatureCritical(ev CriticalEvent, rc RenderContext, limits config.CriticalLimits) string {
	switch ev.Kind {
	case CriticalExtremeHeat:
		return fmt.Sprintf(`🔥🔥 ALERTA CALOR 🔥🔥
%s

🌡️ %.1f°C
   MUITO QUENTE 🥵

🚨 RISCO À SAÚDE

❌ Evite sol 10h-16h
❌ Atividades físicas intensas

✅ Hidrate-se a cada 15min
✅ Use FPS 50+
✅ Procure sombra/ar condicionado

⚠️ Sinais de alerta:
Tontura, náusea, confusão → SAMU 192`, rc.Stamp(), ev.Value)

	case CriticalExtremeCold:
		return fmt.Sprintf(`❄️❄️ ALERTA FRIO ❄️❄️
%s

🌡️ %.1f°C
   FRIO 🥶

🚨 TEMPERATURA BAIXA

⚠️ Risco de hipotermia

✅ Agasalhos pesados obrigatórios
✅ Proteja crianças e idosos
✅ Recolha animais de estimação
✅ Atenção com aquecedores

Temperatura crítica abaixo de %.0f°C`, rc.Stamp(), ev.Value, limits.ColdBelow)

	case CriticalAbruptChange:
		if ev.Prior == nil || ev.Delta == nil {
			return ""
		}
		emoji, arrow, headline, trend := "🔥🔥", "↑↑", "SUBIDA BRUSCA", "subindo"
		if *ev.Delta < 0 {
			emoji, arrow, headline, trend = "❄️❄️", "↓↓", "QUEDA BRUSCA", "caindo"
		}
		return fmt.Sprintf(`%s ALERTA MUDANÇA %s
%s

🌡️ Temp: %.1f°C (era %.1f°C)
   Variação: %+.1f°C em 1h %s

🚨 %s DE TEMPERATURA

⚠️ Mudança atmosférica brusca
⚠️ Tempo instável

✅ Tenha agasalho à mão
✅ Acompanhe previsão
✅ Temperatura pode continuar %s`,
			emoji, emoji, rc.Stamp(), ev.Value, *ev.Prior, *ev.Delta, arrow, headline, trend)
	}
	return ""
}
