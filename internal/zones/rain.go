package zones

import (
	"fmt"

	"github.com/SistemasVox/clima-udi/internal/config"
)

func newRainDomain(th config.Thresholds) *Domain {
	scale := Scale{
		Floor: &FloorRule{At: 0, Label: "SEM_CHUVA"},
		Bands: []Band{
			{Upper: th.Rain.Drizzle, Label: "GAROA"},
			{Upper: th.Rain.Light, Label: "FRACA"},
			{Upper: th.Rain.Moderate, Label: "MODERADA"},
			{Upper: th.Rain.Heavy, Label: "FORTE"},
		},
		Final: "MUITO_FORTE",
	}

	meta := map[Label]ZoneMeta{
		"SEM_CHUVA":   {Emoji: "☀️", Description: "Sem chuva"},
		"GAROA":       {Emoji: "🌦️", Description: "Garoa (leve)"},
		"FRACA":       {Emoji: "🌧️", Description: "Fraca"},
		"MODERADA":    {Emoji: "🌧️🌧️", Description: "Moderada"},
		"FORTE":       {Emoji: "⛈️", Description: "Forte (torrencial)"},
		"MUITO_FORTE": {Emoji: "🌊", Description: "Muito Forte (dilúvio)"},
	}

	limits := th.Critical

	return &Domain{
		ID:        DomainRain,
		Scale:     scale,
		title:     "🌧️ MUDANÇA DE CHUVA",
		valueWord: "Chuva",
		zoneWord:  "Zona",
		format:    func(v float64) string { return fmt.Sprintf("%.1f mm/h", v) },
		meta:      meta,
		tip:       rainTip,
		critical: func(in CriticalInput) []CriticalEvent {
			if in.Value >= limits.RainRateAt {
				return []CriticalEvent{{
					Kind:     CriticalHeavyRain,
					Value:    in.Value,
					Accum24h: in.RainAccum24h,
				}}
			}
			if in.RainAccum24h != nil && *in.RainAccum24h > limits.RainAccumAbove {
				return []CriticalEvent{{
					Kind:     CriticalAccumulatedRain,
					Value:    in.Value,
					Accum24h: in.RainAccum24h,
				}}
			}
			return nil
		},
		render: func(ev CriticalEvent, rc RenderContext) string {
			return renderRainCritical(ev, rc, limits)
		},
	}
}

func rainTip(from, to Label) string {
	switch {
	case to == "MUITO_FORTE":
		return "\n\n💡 CHUVA TORRENCIAL!\n🚨 Alagamentos rápidos\nNÃO saia de casa\nEmergência: 193/199"
	case to == "FORTE":
		return "\n\n💡 Chuva forte!\n⚠️ Risco de alagamentos\nNÃO atravesse água acumulada\nEvite deslocamentos"
	case to == "MODERADA":
		return "\n\n💡 Chuva aumentando\nPoças se formando\nEvite áreas baixas\nAtenção ao dirigir"
	case to == "FRACA":
		return "\n\n💡 Chuva intensificando\nVisibilidade reduzindo\nDirija com cuidado"
	case to == "GAROA":
		if from == "SEM_CHUVA" {
			return "\n\n💡 Começou a chover\nChuva fraca/garoa\nGuarda-chuva recomendado"
		}
		return "\n\n💡 Chuva diminuindo\nApenas garoa agora"
	case to == "SEM_CHUVA":
		if labelIn(from, "FORTE", "MUITO_FORTE", "MODERADA") {
			return "\n\n💡 Chuva parou\nCuidado com poças e alagamentos\nEstradas podem estar escorregadias"
		}
		return "\n\n💡 Chuva cessou\nCondições normalizando"
	}
	return ""
}

func renderRainCritical(ev CriticalEvent, rc RenderContext, limits config.CriticalLimits) string {
	var accum float64
	if ev.Accum24h != nil {
		accum = *ev.Accum24h
	}

	switch ev.Kind {
	case CriticalHeavyRain:
		warn := ""
		if accum > limits.RainAccumAbove {
			warn = "⚠️"
		}
		return fmt.Sprintf(`🌧️🌧️ ALERTA CHUVA 🌧️🌧️
%s

🌧️ Intensidade: %.1f mm/h
   MUITO FORTE 🌊

📊 Acumulado:
   1h: %.1f mm
   24h: %.1f mm %s

🚨 RISCO DE ENCHENTE

⚠️ Alagamentos de vias
⚠️ Transbordamento de córregos
⚠️ Deslizamentos (áreas risco)

❌ NÃO atravesse alagamentos
❌ NÃO dirija em vias alagadas
❌ Evite áreas baixas

✅ Procure local elevado
✅ Mantenha-se informado

Emergência: 193 / 199`, rc.Stamp(), ev.Value, ev.Value, accum, warn)

	case CriticalAccumulatedRain:
		return fmt.Sprintf(`🌧️🌧️ ALERTA CHUVA 🌧️🌧️
%s

📊 Acumulado 24h: %.1f mm ⚠️
   ACIMA DO LIMITE (%.1f mm)

🌧️ Intensidade atual: %.1f mm/h

🚨 RISCO DE ALAGAMENTO

⚠️ Solo saturado
⚠️ Risco de enchentes
⚠️ Córregos podem transbordar

❌ Evite áreas de risco
❌ NÃO atravesse água acumulada
❌ Não dirija em vias alagadas

✅ Fique em local seguro
✅ Monitore boletins

Emergência: 193 / 199`, rc.Stamp(), accum, limits.RainAccumAbove, ev.Value)
	}
	return ""
}
