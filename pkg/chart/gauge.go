package chart

import (
	"math"

	g "maragu.dev/gomponents"
	"go.uber.org/zap"
)

// Gauge draws a half-circle dial for a single KPI value within [lo, hi].
// A missing or non-finite value renders nothing.
func (r *Renderer) Gauge(value any, lo, hi float64, spec Spec) g.Node {
	v, ok := Number(value)
	if !ok || hi <= lo {
		r.log.Debug("gauge skipped: no value", zap.String("title", spec.Title), zap.Any("value", value))
		return nil
	}
	frac := math.Max(0, math.Min(1, (v-lo)/(hi-lo)))

	sz := spec.size()
	cx, cy := sz.Width/2, sz.Height-40
	radius := math.Min(sz.Width/2, sz.Height-60) - 10

	arc := func(to float64, class, stroke string) g.Node {
		end := math.Pi + to*math.Pi
		x0, y0 := cx-radius, cy
		x1, y1 := cx+radius*math.Cos(end), cy+radius*math.Sin(end)
		d := "M " + px(x0) + " " + px(y0) +
			" A " + px(radius) + " " + px(radius) + " 0 0 1 " + px(x1) + " " + px(y1)
		return g.El("path", g.Attr("d", d), g.Attr("class", class),
			g.Attr("fill", "none"), g.Attr("stroke", stroke), g.Attr("stroke-width", "18"))
	}

	return svg(spec,
		arc(1, "gauge-track", "#e0e0e0"),
		g.If(frac > 0, arc(frac, "gauge-value", color(0))),
		text(cx, cy-10, "middle", "gauge-label", formatNumber(v)),
		text(cx-radius, cy+20, "middle", "tick", formatNumber(lo)),
		text(cx+radius, cy+20, "middle", "tick", formatNumber(hi)),
	)
}
