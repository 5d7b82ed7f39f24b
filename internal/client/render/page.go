package render

import (
	"io"
	"strings"
	"time"

	"github.com/sangkips/insights/internal/client/view"
	"github.com/sangkips/insights/internal/domain/entity"
	"github.com/sangkips/insights/internal/domain/enum"
	"github.com/sangkips/insights/pkg/chart"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// PageOptions carries the page chrome.
type PageOptions struct {
	Email       string
	GeneratedAt time.Time
}

const stylesheet = `
body { font-family: system-ui, sans-serif; margin: 0; background: #f6f7f9; color: #1f2933; }
header { background: #1f2933; color: #fff; padding: 16px 32px; }
main { padding: 24px 32px; }
nav a { margin-right: 16px; color: #52606d; text-decoration: none; }
nav a.active { color: #1f2933; font-weight: 600; border-bottom: 2px solid #4e79a7; }
.panel { background: #fff; border-radius: 8px; padding: 16px; margin-bottom: 24px; box-shadow: 0 1px 3px rgba(0,0,0,.1); }
.cards { display: flex; flex-wrap: wrap; gap: 16px; }
.card { min-width: 160px; padding: 12px; border: 1px solid #e4e7eb; border-radius: 6px; }
.card .value { font-size: 24px; font-weight: 600; }
.banner { background: #fff4e5; border: 1px solid #f0b429; padding: 12px; white-space: pre-line; margin-bottom: 24px; }
.error { background: #fde8e8; border: 1px solid #e12d39; padding: 24px; white-space: pre-line; }
.muted { color: #7b8794; }
table { border-collapse: collapse; margin-top: 12px; font-size: 13px; }
th, td { border-bottom: 1px solid #e4e7eb; padding: 4px 10px; text-align: left; }
.chart .grid { stroke: #e4e7eb; }
.chart .axis { stroke: #9aa5b1; }
.chart .tick { font-size: 11px; fill: #52606d; }
.chart .chart-title { font-size: 14px; font-weight: 600; }
`

// Page renders the whole document for snap.
func Page(snap view.Snapshot, charts *chart.Renderer, opts PageOptions) g.Node {
	title := dashboardTitle(snap.Kind)
	return h.Doctype(
		h.HTML(h.Lang("en"),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.TitleEl(g.Text(title)),
				h.StyleEl(g.Raw(stylesheet)),
			),
			h.Body(
				h.Header(
					h.H1(g.Text(title)),
					g.If(opts.Email != "", h.P(g.Text("Signed in as "+opts.Email))),
				),
				h.Main(content(snap, charts)...),
				h.Footer(h.Class("muted"), h.P(g.Text("Generated "+opts.GeneratedAt.UTC().Format(time.RFC1123)))),
			),
		),
	)
}

// WritePage renders Page to w.
func WritePage(w io.Writer, snap view.Snapshot, charts *chart.Renderer, opts PageOptions) error {
	return Page(snap, charts, opts).Render(w)
}

func dashboardTitle(kind enum.ViewKind) string {
	switch kind {
	case enum.ViewInvestor:
		return "Investor Dashboard"
	case enum.ViewManager:
		return "Business Performance Dashboard"
	case enum.ViewMarketing:
		return "Marketing Dashboard"
	case enum.ViewDefault:
		return "Dashboard"
	}
	return "Dashboard"
}

func content(snap view.Snapshot, charts *chart.Renderer) []g.Node {
	if snap.Failed {
		return []g.Node{h.Div(h.Class("error"),
			h.H2(g.Text("Unable to load dashboard")),
			h.P(g.Text(snap.Banner)),
		)}
	}

	var nodes []g.Node
	if snap.Banner != "" {
		nodes = append(nodes, h.Div(h.Class("banner"), g.Text(snap.Banner)))
	}

	switch snap.Kind {
	case enum.ViewDefault:
		nodes = append(nodes, h.Div(h.Class("panel"),
			h.P(g.Text("No dashboard is configured for your account. Contact an administrator for access.")),
		))
		return nodes
	case enum.ViewManager:
		nodes = append(nodes, tabs(snap.Tab))
	case enum.ViewInvestor, enum.ViewMarketing:
	}

	for _, d := range snap.Datasets {
		nodes = append(nodes, panel(d, charts))
	}
	return nodes
}

func tabs(active view.Tab) g.Node {
	var links []g.Node
	for _, t := range view.Tabs() {
		links = append(links, h.A(
			h.Href("#"+PanelFor(t.Metric().Dataset()).Key.String()),
			g.If(t == active, h.Class("active")),
			g.Text(t.String()),
		))
	}
	return h.Nav(links...)
}

func panel(d view.Dataset, charts *chart.Renderer) g.Node {
	p := PanelFor(d.Key)
	body := []g.Node{h.ID(p.Key.String()), h.Class("panel"), h.H2(g.Text(p.Title))}

	switch d.Status {
	case view.StatusIdle:
		body = append(body, h.P(h.Class("muted"), g.Text("Not loaded yet.")))
	case view.StatusLoading:
		body = append(body, h.P(h.Class("muted"), g.Text("Loading…")))
	case view.StatusFailed:
		body = append(body, h.P(h.Class("muted"), g.Text("Unavailable.")))
	case view.StatusReady:
		if len(d.Rows) == 0 {
			body = append(body, h.P(h.Class("muted"), g.Text("No data.")))
			break
		}
		body = append(body, visual(p, d.Rows, charts), table(d.Rows, p.X, p.Y))
	}
	return h.Section(body...)
}

func visual(p Panel, rows []entity.Row, charts *chart.Renderer) g.Node {
	spec := chart.Spec{Title: p.Title, XField: p.X, YField: p.Y}
	switch p.Kind {
	case ChartCards:
		return cards(rows[0], charts)
	case ChartLine:
		return charts.Line(rows, spec)
	case ChartBar:
		return charts.Bar(rows, spec)
	case ChartPie:
		return charts.Pie(rows, spec)
	}
	return nil
}

func cards(kpis entity.Row, charts *chart.Renderer) g.Node {
	var items []g.Node
	for _, col := range Columns([]entity.Row{kpis}) {
		items = append(items, h.Div(h.Class("card"),
			h.Div(h.Class("muted"), g.Text(humanize(col))),
			h.Div(h.Class("value"), g.Text(chart.Label(kpis[col]))),
		))
	}

	nodes := g.Group{h.Div(append([]g.Node{h.Class("cards")}, items...)...)}
	for _, f := range ratingFields {
		v, ok := kpis[f]
		if !ok {
			continue
		}
		if gauge := charts.Gauge(v, 0, 5, chart.Spec{Title: "Average Rating", Size: chart.Size{Width: 320, Height: 200}}); gauge != nil {
			nodes = append(nodes, gauge)
		}
		break
	}
	return nodes
}

func table(rows []entity.Row, leading ...string) g.Node {
	cols := Columns(rows, leading...)
	return h.Table(
		h.THead(h.Tr(g.Map(cols, func(c string) g.Node { return h.Th(g.Text(humanize(c))) })...)),
		h.TBody(g.Map(rows, func(r entity.Row) g.Node {
			return h.Tr(g.Map(cols, func(c string) g.Node { return h.Td(g.Text(chart.Label(r[c]))) })...)
		})...),
	)
}

// humanize turns a column name like avg_rating into "Avg Rating".
func humanize(col string) string {
	words := strings.Fields(strings.ReplaceAll(col, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
