// Package chart draws dashboard charts as inline SVG.
//
// Every render recomputes scales and marks from the rows it is given. Charts
// fail soft: empty or unusable input renders nothing and is logged.
package chart

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	g "maragu.dev/gomponents"
	"go.uber.org/zap"
)

// Size is the outer SVG size in pixels.
type Size struct {
	Width  float64
	Height float64
}

// DefaultSize is used when a Spec carries a zero Size.
var DefaultSize = Size{Width: 640, Height: 320}

// Spec names the fields a chart reads from each row.
type Spec struct {
	Title  string
	XField string
	YField string
	Size   Size
}

func (s Spec) size() Size {
	if s.Size.Width <= 0 || s.Size.Height <= 0 {
		return DefaultSize
	}
	return s.Size
}

type margin struct{ top, right, bottom, left float64 }

var defaultMargin = margin{top: 32, right: 16, bottom: 48, left: 56}

// Renderer builds chart nodes. The zero value is not usable; call New.
type Renderer struct {
	log *zap.Logger
}

// New returns a Renderer that reports skipped input to log.
func New(log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{log: log}
}

// Number extracts a finite float from a normalized row value. Numeric
// strings are accepted since unsafe integers arrive stringified.
func Number(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Label renders a row value as axis text.
func Label(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return formatNumber(x)
	}
	return fmt.Sprint(v)
}

func formatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func svg(spec Spec, children ...g.Node) g.Node {
	sz := spec.size()
	nodes := []g.Node{
		g.Attr("xmlns", "http://www.w3.org/2000/svg"),
		g.Attr("width", px(sz.Width)),
		g.Attr("height", px(sz.Height)),
		g.Attr("viewBox", "0 0 "+px(sz.Width)+" "+px(sz.Height)),
		g.Attr("role", "img"),
		g.Attr("class", "chart"),
	}
	if spec.Title != "" {
		nodes = append(nodes,
			g.El("title", g.Text(spec.Title)),
			text(sz.Width/2, 20, "middle", "chart-title", spec.Title),
		)
	}
	nodes = append(nodes, children...)
	return g.El("svg", nodes...)
}

func text(x, y float64, anchor, class, s string) g.Node {
	return g.El("text",
		g.Attr("x", px(x)),
		g.Attr("y", px(y)),
		g.Attr("text-anchor", anchor),
		g.Attr("class", class),
		g.Text(s),
	)
}

func line(x1, y1, x2, y2 float64, class string) g.Node {
	return g.El("line",
		g.Attr("x1", px(x1)), g.Attr("y1", px(y1)),
		g.Attr("x2", px(x2)), g.Attr("y2", px(y2)),
		g.Attr("class", class),
	)
}

// yAxis draws ticks and labels for s along the left margin.
func yAxis(s linear, x float64, width float64) g.Node {
	var nodes g.Group
	for _, t := range s.Ticks(5) {
		y := s.At(t)
		nodes = append(nodes,
			line(x, y, x+width, y, "grid"),
			text(x-6, y+4, "end", "tick", formatNumber(t)),
		)
	}
	return g.El("g", append([]g.Node{g.Attr("class", "y-axis")}, nodes...)...)
}

var palette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
	"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac",
}

func color(i int) string {
	return palette[i%len(palette)]
}
