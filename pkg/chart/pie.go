package chart

import (
	"math"

	g "maragu.dev/gomponents"
	"go.uber.org/zap"
)

// Pie draws one slice per row with a positive finite YField value.
func (r *Renderer) Pie(rows []map[string]any, spec Spec) g.Node {
	var slices []bar
	var total float64
	for _, row := range rows {
		v, ok := Number(row[spec.YField])
		if !ok || v <= 0 {
			continue
		}
		slices = append(slices, bar{label: Label(row[spec.XField]), value: v})
		total += v
	}
	if len(slices) == 0 {
		r.log.Debug("pie chart skipped: no data", zap.String("title", spec.Title), zap.Int("rows", len(rows)))
		return nil
	}

	sz := spec.size()
	cx, cy := sz.Width/3, sz.Height/2+10
	radius := math.Min(sz.Width/3, sz.Height/2) - 30

	marks := g.Group{g.Attr("class", "slices")}
	legend := g.Group{g.Attr("class", "legend")}
	angle := -math.Pi / 2
	for i, s := range slices {
		sweep := s.value / total * 2 * math.Pi
		marks = append(marks, slice(cx, cy, radius, angle, sweep, color(i), s))
		angle += sweep

		ly := 48 + float64(i)*18
		legend = append(legend,
			g.El("rect", g.Attr("x", px(sz.Width*2/3)), g.Attr("y", px(ly-10)),
				g.Attr("width", "10"), g.Attr("height", "10"), g.Attr("fill", color(i))),
			text(sz.Width*2/3+16, ly, "start", "legend-label",
				s.label+" ("+formatNumber(s.value/total*100)+"%)"),
		)
	}
	return svg(spec, g.El("g", marks...), g.El("g", legend...))
}

func slice(cx, cy, radius, start, sweep float64, fill string, s bar) g.Node {
	title := g.El("title", g.Text(s.label+": "+formatNumber(s.value)))
	if sweep >= 2*math.Pi-1e-9 {
		return g.El("circle", g.Attr("cx", px(cx)), g.Attr("cy", px(cy)),
			g.Attr("r", px(radius)), g.Attr("fill", fill), title)
	}
	x0, y0 := cx+radius*math.Cos(start), cy+radius*math.Sin(start)
	x1, y1 := cx+radius*math.Cos(start+sweep), cy+radius*math.Sin(start+sweep)
	large := "0"
	if sweep > math.Pi {
		large = "1"
	}
	d := "M " + px(cx) + " " + px(cy) +
		" L " + px(x0) + " " + px(y0) +
		" A " + px(radius) + " " + px(radius) + " 0 " + large + " 1 " + px(x1) + " " + px(y1) + " Z"
	return g.El("path", g.Attr("d", d), g.Attr("fill", fill), title)
}
