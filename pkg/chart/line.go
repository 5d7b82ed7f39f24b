package chart

import (
	"sort"
	"strings"
	"time"

	"github.com/sangkips/insights/pkg/normalize"
	g "maragu.dev/gomponents"
	"go.uber.org/zap"
)

// Point is one resolved sample of a time series.
type Point struct {
	At    time.Time
	Value float64
}

// TimePoints resolves XField as a date in any accepted shape and YField as a
// finite number. Rows failing either are dropped. The result is sorted by time.
func TimePoints(rows []map[string]any, xField, yField string) []Point {
	var points []Point
	for _, row := range rows {
		at, err := normalize.ToTime(row[xField])
		if err != nil {
			continue
		}
		v, ok := Number(row[yField])
		if !ok {
			continue
		}
		points = append(points, Point{At: at, Value: v})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].At.Before(points[j].At) })
	return points
}

// Line draws a temporal line chart. If no row has a parseable date the chart
// is skipped and the condition logged.
func (r *Renderer) Line(rows []map[string]any, spec Spec) g.Node {
	if len(rows) == 0 {
		r.log.Debug("line chart skipped: no data", zap.String("title", spec.Title))
		return nil
	}
	points := TimePoints(rows, spec.XField, spec.YField)
	if len(points) == 0 {
		r.log.Warn("line chart skipped: no parseable dates",
			zap.String("title", spec.Title),
			zap.String("field", spec.XField),
			zap.Int("rows", len(rows)),
		)
		return nil
	}

	lo, hi := points[0].Value, points[0].Value
	for _, p := range points[1:] {
		lo = min(lo, p.Value)
		hi = max(hi, p.Value)
	}
	lo = min(lo, 0)

	sz, m := spec.size(), defaultMargin
	plotW := sz.Width - m.left - m.right
	x := newLinear(float64(points[0].At.Unix()), float64(points[len(points)-1].At.Unix()), m.left, m.left+plotW)
	y := newLinear(lo, hi, sz.Height-m.bottom, m.top)

	coords := make([]string, len(points))
	dots := g.Group{g.Attr("class", "points")}
	for i, p := range points {
		cx, cy := x.At(float64(p.At.Unix())), y.At(p.Value)
		coords[i] = px(cx) + "," + px(cy)
		dots = append(dots, g.El("circle",
			g.Attr("cx", px(cx)), g.Attr("cy", px(cy)), g.Attr("r", "3"),
			g.Attr("fill", color(0)),
			g.El("title", g.Text(p.At.Format("2006-01-02")+": "+formatNumber(p.Value))),
		))
	}

	first, last := points[0].At, points[len(points)-1].At
	return svg(spec,
		yAxis(y, m.left, plotW),
		g.El("polyline",
			g.Attr("points", strings.Join(coords, " ")),
			g.Attr("fill", "none"),
			g.Attr("stroke", color(0)),
			g.Attr("stroke-width", "2"),
		),
		g.El("g", dots...),
		text(m.left, sz.Height-m.bottom+16, "start", "tick", first.Format("2006-01")),
		text(m.left+plotW, sz.Height-m.bottom+16, "end", "tick", last.Format("2006-01")),
	)
}
