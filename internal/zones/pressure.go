package zones

import (
	"fmt"

	"github.com/SistemasVox/clima-udi/internal/config"
)

func newPressureDomain(th config.Thresholds) *Domain {
	scale := Scale{
		Bands: []Band{
			{Upper: th.Pressure.VeryLow, Label: "MUITO_BAIXA"},
			{Upper: th.Pressure.Low, Label: "BAIXA"},
			{Upper: th.Pressure.Normal, Label: "NORMAL"},
			{Upper: th.Pressure.High, Label: "ALTA"},
		},
		Final: "MUITO_ALTA",
	}

	meta := map[Label]ZoneMeta{
		"MUITO_BAIXA": {Emoji: "📉📉", Description: "Muito Baixa (tempestade)"},
		"BAIXA":       {Emoji: "📉", Description: "Baixa (instável)"},
		"NORMAL":      {Emoji: "➡️", Description: "Normal (estável)"},
		"ALTA":        {Emoji: "📈", Description: "Alta (estável)"},
		"MUITO_ALTA":  {Emoji: "📈📈", Description: "Muito Alta (anticiclone)"},
	}

	limits := th.Critical

	return &Domain{
		ID:        DomainPressure,
		Scale:     scale,
		title:     "📊 MUDANÇA DE PRESSÃO",
		valueWord: "Pressão",
		zoneWord:  "Zona",
		format:    func(v float64) string { return fmt.Sprintf("%.1f hPa", v) },
		meta:      meta,
		tip:       pressureTip,
		extra: func(ev *TransitionEvent) string {
			if ev.Delta3h == nil {
				return ""
			}
			sign := ""
			if *ev.Delta3h > 0 {
				sign = "+"
			}
			return fmt.Sprintf("\n\nVariação 3h: %s%.1f hPa", sign, *ev.Delta3h)
		},
		critical: func(in CriticalInput) []CriticalEvent {
			if in.PriorValue != nil {
				delta := in.Value - *in.PriorValue
				if delta <= -limits.PressureDropAt {
					return []CriticalEvent{{
						Kind:  CriticalPressureDrop,
						Value: in.Value,
						Prior: in.PriorValue,
						Delta: &delta,
					}}
				}
			}
			if in.Value < limits.PressureLowBelow {
				return []CriticalEvent{{Kind: CriticalLowPressure, Value: in.Value}}
			}
			return nil
		},
		render: renderPressureCritical,
	}
}

func pressureTip(from, to Label) string {
	switch to {
	case "MUITO_BAIXA":
		return "\n\n💡 Pressão em colapso\n🚨 Tempestade se aproximando\nCondições se agravando\nFique atento aos alertas"
	case "BAIXA":
		if labelIn(from, "NORMAL", "ALTA", "MUITO_ALTA") {
			return "\n\n💡 Pressão caindo\nTempo pode instabilizar\nPossível chuva se aproximando"
		}
		return "\n\n💡 Pressão baixa\nTempo instável\nChuva provável"
	case "ALTA":
		if labelIn(from, "BAIXA", "MUITO_BAIXA") {
			return "\n\n💡 Pressão subindo\nTempo estabilizando\nPossível frente fria passou\nCéu deve limpar"
		}
		return "\n\n💡 Pressão alta\nTempo estável\nBoas condições"
	case "MUITO_ALTA":
		return "\n\n💡 Pressão muito alta\nTempo firme e estável\nCéu limpo esperado\nPossível friagem à noite"
	case "NORMAL":
		switch {
		case labelIn(from, "BAIXA", "MUITO_BAIXA"):
			return "\n\n💡 Pressão normalizando\nTempo melhorando"
		case labelIn(from, "ALTA", "MUITO_ALTA"):
			return "\n\n💡 Pressão caindo\nCondições podem mudar"
		default:
			return "\n\n💡 Pressão estável\nCondições normais"
		}
	}
	return ""
}

func renderPressureCritical(ev CriticalEvent, rc RenderContext) string {
	switch ev.Kind {
	case CriticalPressureDrop:
		if ev.Delta == nil {
			return ""
		}
		return fmt.Sprintf(`📉📉 ALERTA PRESSÃO 📉📉
%s

📊 Pressão: %.1f hPa
   QUEDA BRUSCA ⚠️

Variação: %.1f hPa/1h ↓↓

🚨 COLAPSO ATMOSFÉRICO

⚠️ Tempestade se formando
⚠️ Condições se agravando
⚠️ Possível chuva intensa

✅ Fique em local seguro
✅ Acompanhe alertas
✅ Prepare-se para chuva

Emergência: 193 / 199`, rc.Stamp(), ev.Value, *ev.Delta)

	case CriticalLowPressure:
		return fmt.Sprintf(`📉📉 ALERTA PRESSÃO 📉📉
%s

📊 Pressão: %.1f hPa
   MUITO BAIXA ⚠️

🚨 CONDIÇÕES ADVERSAS

⚠️ Tempestade ativa ou iminente
⚠️ Tempo muito instável
⚠️ Risco de chuva forte

✅ Evite deslocamentos
✅ Mantenha-se informado
✅ Prepare abrigo seguro

Emergência: 193 / 199`, rc.Stamp(), ev.Value)
	}
	return ""
}
