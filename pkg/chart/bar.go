package chart

import (
	"math"

	g "maragu.dev/gomponents"
	"go.uber.org/zap"
)

type bar struct {
	label string
	value float64
}

// Bar draws one bar per row: XField is the category, YField the value.
// Rows whose value is not a finite number are dropped.
func (r *Renderer) Bar(rows []map[string]any, spec Spec) g.Node {
	var bars []bar
	for _, row := range rows {
		v, ok := Number(row[spec.YField])
		if !ok {
			continue
		}
		bars = append(bars, bar{label: Label(row[spec.XField]), value: v})
	}
	if len(bars) == 0 {
		r.log.Debug("bar chart skipped: no data", zap.String("title", spec.Title), zap.Int("rows", len(rows)))
		return nil
	}

	values := make([]float64, len(bars))
	for i, b := range bars {
		values[i] = b.value
	}
	lo, hi := BarDomain(values)

	sz, m := spec.size(), defaultMargin
	plotW := sz.Width - m.left - m.right
	y := newLinear(lo, hi, sz.Height-m.bottom, m.top)
	baseline := y.At(math.Max(lo, 0))

	band := plotW / float64(len(bars))
	pad := band * 0.15

	marks := g.Group{g.Attr("class", "bars")}
	for i, b := range bars {
		x := m.left + float64(i)*band + pad
		top := y.At(b.value)
		marks = append(marks,
			g.El("rect",
				g.Attr("x", px(x)),
				g.Attr("y", px(math.Min(top, baseline))),
				g.Attr("width", px(band-2*pad)),
				g.Attr("height", px(math.Abs(baseline-top))),
				g.Attr("fill", color(0)),
				g.El("title", g.Text(b.label+": "+formatNumber(b.value))),
			),
			text(x+(band-2*pad)/2, sz.Height-m.bottom+16, "middle", "tick", b.label),
		)
	}

	return svg(spec,
		yAxis(y, m.left, plotW),
		line(m.left, baseline, m.left+plotW, baseline, "baseline"),
		g.El("g", marks...),
	)
}
