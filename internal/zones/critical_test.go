package zones

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemperatureCriticals(t *testing.T) {
	c := testCatalog(t)

	t.Run("extreme heat above limit", func(t *testing.T) {
		evs := c.Temperature.EvaluateCritical(CriticalInput{Value: 34.2})
		require.Len(t, evs, 1)
		assert.Equal(t, CriticalExtremeHeat, evs[0].Kind)
	})

	t.Run("at limit is not critical", func(t *testing.T) {
		evs := c.Temperature.EvaluateCritical(CriticalInput{Value: 33.0})
		assert.Empty(t, evs)
	})

	t.Run("extreme cold below limit", func(t *testing.T) {
		evs := c.Temperature.EvaluateCritical(CriticalInput{Value: 15.0})
		require.Len(t, evs, 1)
		assert.Equal(t, CriticalExtremeCold, evs[0].Kind)
	})

	t.Run("abrupt drop", func(t *testing.T) {
		evs := c.Temperature.EvaluateCritical(CriticalInput{Value: 22.5, PriorValue: ptr(28.0)})
		require.Len(t, evs, 1)
		assert.Equal(t, CriticalAbruptChange, evs[0].Kind)
		assert.InDelta(t, -5.5, *evs[0].Delta, 1e-9)
	})

	t.Run("abrupt change needs a prior reading", func(t *testing.T) {
		evs := c.Temperature.EvaluateCritical(CriticalInput{Value: 22.5})
		assert.Empty(t, evs)
	})

	t.Run("cold and abrupt drop together", func(t *testing.T) {
		evs := c.Temperature.EvaluateCritical(CriticalInput{Value: 16.0, PriorValue: ptr(23.0)})
		require.Len(t, evs, 2)
		assert.Equal(t, CriticalExtremeCold, evs[0].Kind)
		assert.Equal(t, CriticalAbruptChange, evs[1].Kind)
	})
}

func TestHumidityCritical(t *testing.T) {
	c := testCatalog(t)

	evs := c.Humidity.EvaluateCritical(CriticalInput{Value: 18.0})
	require.Len(t, evs, 1)
	assert.Equal(t, CriticalDryAir, evs[0].Kind)

	assert.Empty(t, c.Humidity.EvaluateCritical(CriticalInput{Value: 20.0}))
}

func TestWindCritical(t *testing.T) {
	c := testCatalog(t)

	t.Run("gust above limit", func(t *testing.T) {
		evs := c.Wind.EvaluateCritical(CriticalInput{Value: 9.8, Gust: ptr(16.5)})
		require.Len(t, evs, 1)
		assert.Equal(t, CriticalStrongWind, evs[0].Kind)
		assert.Equal(t, 16.5, evs[0].Value)
		require.NotNil(t, evs[0].Sustained)
		assert.Equal(t, 9.8, *evs[0].Sustained)
	})

	t.Run("sustained alone never triggers", func(t *testing.T) {
		assert.Empty(t, c.Wind.EvaluateCritical(CriticalInput{Value: 16.5}))
	})

	t.Run("gust at limit is not critical", func(t *testing.T) {
		assert.Empty(t, c.Wind.EvaluateCritical(CriticalInput{Value: 9.8, Gust: ptr(15.0)}))
	})
}

func TestRainCriticalPrecedence(t *testing.T) {
	c := testCatalog(t)

	t.Run("heavy rate wins over accumulation", func(t *testing.T) {
		evs := c.Rain.EvaluateCritical(CriticalInput{Value: 55.0, RainAccum24h: ptr(62.0)})
		require.Len(t, evs, 1)
		assert.Equal(t, CriticalHeavyRain, evs[0].Kind)
	})

	t.Run("accumulation alone", func(t *testing.T) {
		evs := c.Rain.EvaluateCritical(CriticalInput{Value: 10.0, RainAccum24h: ptr(62.0)})
		require.Len(t, evs, 1)
		assert.Equal(t, CriticalAccumulatedRain, evs[0].Kind)
	})

	t.Run("rate at limit triggers", func(t *testing.T) {
		evs := c.Rain.EvaluateCritical(CriticalInput{Value: 50.0, RainAccum24h: ptr(0.0)})
		require.Len(t, evs, 1)
		assert.Equal(t, CriticalHeavyRain, evs[0].Kind)
	})

	t.Run("accumulation at limit does not trigger", func(t *testing.T) {
		assert.Empty(t, c.Rain.EvaluateCritical(CriticalInput{Value: 10.0, RainAccum24h: ptr(50.0)}))
	})

	t.Run("missing accumulation skips the rule", func(t *testing.T) {
		assert.Empty(t, c.Rain.EvaluateCritical(CriticalInput{Value: 10.0}))
	})
}

func TestRadiationCritical(t *testing.T) {
	c := testCatalog(t)

	evs := c.Radiation.EvaluateCritical(CriticalInput{Value: 3100.0})
	require.Len(t, evs, 1)
	assert.Equal(t, CriticalExtremeUV, evs[0].Kind)

	assert.Empty(t, c.Radiation.EvaluateCritical(CriticalInput{Value: 2999.9}))
}

func TestPressureCriticalPrecedence(t *testing.T) {
	c := testCatalog(t)

	t.Run("sharp drop suppresses very low", func(t *testing.T) {
		evs := c.Pressure.EvaluateCritical(CriticalInput{Value: 1004.0, PriorValue: ptr(1015.0)})
		require.Len(t, evs, 1)
		assert.Equal(t, CriticalPressureDrop, evs[0].Kind)
		assert.InDelta(t, -11.0, *evs[0].Delta, 1e-9)
	})

	t.Run("drop at exactly the limit triggers", func(t *testing.T) {
		evs := c.Pressure.EvaluateCritical(CriticalInput{Value: 1010.0, PriorValue: ptr(1015.0)})
		require.Len(t, evs, 1)
		assert.Equal(t, CriticalPressureDrop, evs[0].Kind)
	})

	t.Run("very low without a prior reading", func(t *testing.T) {
		evs := c.Pressure.EvaluateCritical(CriticalInput{Value: 1003.0})
		require.Len(t, evs, 1)
		assert.Equal(t, CriticalLowPressure, evs[0].Kind)
	})

	t.Run("gentle drop into very low zone", func(t *testing.T) {
		evs := c.Pressure.EvaluateCritical(CriticalInput{Value: 1004.5, PriorValue: ptr(1006.0)})
		require.Len(t, evs, 1)
		assert.Equal(t, CriticalLowPressure, evs[0].Kind)
	})

	t.Run("stable normal pressure", func(t *testing.T) {
		assert.Empty(t, c.Pressure.EvaluateCritical(CriticalInput{Value: 1015.0, PriorValue: ptr(1015.4)}))
	})
}

func TestRenderColdAlertUsesConfiguredLimit(t *testing.T) {
	c := testCatalog(t)

	msg := c.Temperature.RenderCritical(CriticalEvent{Kind: CriticalExtremeCold, Value: 15.0}, testRenderContext())
	assert.Contains(t, msg, "❄️❄️ ALERTA FRIO ❄️❄️")
	assert.Contains(t, msg, "🌡️ 15.0°C")
	assert.Contains(t, msg, "Temperatura crítica abaixo de 18°C")
}

func TestRenderAbruptChangeDirections(t *testing.T) {
	c := testCatalog(t)
	rc := testRenderContext()

	drop := c.Temperature.RenderCritical(CriticalEvent{
		Kind:  CriticalAbruptChange,
		Value: 22.5,
		Prior: ptr(28.0),
		Delta: ptr(-5.5),
	}, rc)
	assert.Contains(t, drop, "❄️❄️ ALERTA MUDANÇA ❄️❄️")
	assert.Contains(t, drop, "🌡️ Temp: 22.5°C (era 28.0°C)")
	assert.Contains(t, drop, "Variação: -5.5°C em 1h ↓↓")
	assert.Contains(t, drop, "QUEDA BRUSCA DE TEMPERATURA")
	assert.Contains(t, drop, "Temperatura pode continuar caindo")

	rise := c.Temperature.RenderCritical(CriticalEvent{
		Kind:  CriticalAbruptChange,
		Value: 25.0,
		Prior: ptr(20.0),
		Delta: ptr(5.0),
	}, rc)
	assert.Contains(t, rise, "🔥🔥 ALERTA MUDANÇA 🔥🔥")
	assert.Contains(t, rise, "Variação: +5.0°C em 1h ↑↑")
	assert.Contains(t, rise, "SUBIDA BRUSCA DE TEMPERATURA")
	assert.Contains(t, rise, "Temperatura pode continuar subindo")
}

func TestRenderDryAirAlert(t *testing.T) {
	c := testCatalog(t)

	msg := c.Humidity.RenderCritical(CriticalEvent{Kind: CriticalDryAir, Value: 18.0}, testRenderContext())
	assert.Contains(t, msg, "💧 Umidade: 18%")
	assert.Contains(t, msg, "Umidade crítica abaixo de 20%")
}

func TestRenderStrongWindAlert(t *testing.T) {
	c := testCatalog(t)

	want := `🌀🌀 ALERTA VENTO 🌀🌀
Uberlândia • 25/08/2026 14:30

💨 Rajadas: 16.5 m/s (59 km/h)
   VENTANIA ⚠️

💨 Sustentado: 9.8 m/s (35 km/h)
   Beaufort: MODERADO

🚨 RISCO DE DANOS

⚠️ Queda de árvores/galhos
⚠️ Objetos soltos voando
⚠️ Estruturas precárias

❌ Evite áreas abertas
❌ Não fique sob árvores
❌ Cuidado com placas/toldos

✅ Recolha objetos do quintal
✅ Feche portas e janelas

Duração prevista: 2-3h`
	got := c.Wind.RenderCritical(CriticalEvent{
		Kind:      CriticalStrongWind,
		Value:     16.5,
		Sustained: ptr(9.8),
	}, testRenderContext())
	assert.Equal(t, want, got)
}

func TestRenderHeavyRainAccumWarnFlag(t *testing.T) {
	c := testCatalog(t)
	rc := testRenderContext()

	over := c.Rain.RenderCritical(CriticalEvent{Kind: CriticalHeavyRain, Value: 55.0, Accum24h: ptr(61.2)}, rc)
	assert.Contains(t, over, "🌧️ Intensidade: 55.0 mm/h")
	assert.Contains(t, over, "   1h: 55.0 mm\n")
	assert.Contains(t, over, "   24h: 61.2 mm ⚠️")

	under := c.Rain.RenderCritical(CriticalEvent{Kind: CriticalHeavyRain, Value: 55.0, Accum24h: ptr(30.0)}, rc)
	assert.Contains(t, under, "   24h: 30.0 mm \n")
}

func TestRenderAccumulatedRainAlert(t *testing.T) {
	c := testCatalog(t)

	msg := c.Rain.RenderCritical(CriticalEvent{Kind: CriticalAccumulatedRain, Value: 8.0, Accum24h: ptr(62.0)}, testRenderContext())
	assert.Contains(t, msg, "📊 Acumulado 24h: 62.0 mm ⚠️")
	assert.Contains(t, msg, "   ACIMA DO LIMITE (50.0 mm)")
	assert.Contains(t, msg, "🌧️ Intensidade atual: 8.0 mm/h")
	assert.Contains(t, msg, "Emergência: 193 / 199")
}

func TestRenderUVAlertPeakHour(t *testing.T) {
	c := testCatalog(t)
	rc := testRenderContext()

	fallback := c.Radiation.RenderCritical(CriticalEvent{Kind: CriticalExtremeUV, Value: 3100.0}, rc)
	assert.Contains(t, fallback, "EXTREMA ☢️ (UV 10+)")
	assert.Contains(t, fallback, "Pico UV: 12h-14h (PERIGO MÁXIMO)")

	withPeak := c.Radiation.RenderCritical(CriticalEvent{Kind: CriticalExtremeUV, Value: 3100.0, UVPeakHour: ptr(9)}, rc)
	assert.Contains(t, withPeak, "Pico UV: 9h-11h (PERIGO MÁXIMO)")
}

func TestRenderPressureDropAlert(t *testing.T) {
	c := testCatalog(t)

	msg := c.Pressure.RenderCritical(CriticalEvent{
		Kind:  CriticalPressureDrop,
		Value: 1004.0,
		Delta: ptr(-11.0),
	}, testRenderContext())
	assert.Contains(t, msg, "📊 Pressão: 1004.0 hPa")
	assert.Contains(t, msg, "   QUEDA BRUSCA ⚠️")
	assert.Contains(t, msg, "Variação: -11.0 hPa/1h ↓↓")
	assert.Contains(t, msg, "🚨 COLAPSO ATMOSFÉRICO")
}

func TestRenderLowPressureAlert(t *testing.T) {
	c := testCatalog(t)

	msg := c.Pressure.RenderCritical(CriticalEvent{Kind: CriticalLowPressure, Value: 1003.2}, testRenderContext())
	assert.Contains(t, msg, "   MUITO BAIXA ⚠️")
	assert.Contains(t, msg, "🚨 CONDIÇÕES ADVERSAS")
}

func TestCriticalDispatchOrderCoversAllKinds(t *testing.T) {
	seen := make(map[CriticalKind]bool, len(CriticalDispatchOrder))
	for _, k := range CriticalDispatchOrder {
		assert.False(t, seen[k], "%s listed twice", k)
		seen[k] = true
	}
	assert.Len(t, seen, 10)
}
