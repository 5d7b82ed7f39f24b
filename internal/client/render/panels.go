// Package render turns dashboard snapshots into an HTML page with inline SVG
// charts, or into a workbook with native charts.
package render

import (
	"fmt"
	"sort"

	"github.com/sangkips/insights/internal/domain/entity"
	"github.com/sangkips/insights/internal/domain/enum"
)

// ChartKind is how a dataset is drawn.
type ChartKind int

const (
	ChartCards ChartKind = iota
	ChartLine
	ChartBar
	ChartPie
)

// Panel describes how one dataset is presented.
type Panel struct {
	Key   enum.DatasetKey
	Title string
	Kind  ChartKind
	X     string
	Y     string
}

// PanelFor returns the presentation of key.
func PanelFor(key enum.DatasetKey) Panel {
	switch key {
	case enum.DatasetKPIs:
		return Panel{Key: key, Title: "Key Metrics", Kind: ChartCards}
	case enum.DatasetTimeSeries:
		return Panel{Key: key, Title: "Reviews per Month", Kind: ChartLine, X: "month_id", Y: "total_reviews"}
	case enum.DatasetSentimentBreakdown:
		return Panel{Key: key, Title: "Review Sentiment", Kind: ChartPie, X: "sentiment_label", Y: "review_count"}
	case enum.DatasetPerformanceByDay:
		return Panel{Key: key, Title: "Reviews by Day of Week", Kind: ChartBar, X: "day_of_week", Y: "review_count"}
	case enum.DatasetTrends:
		return Panel{Key: key, Title: "Review Trends", Kind: ChartLine, X: "period", Y: "total_reviews"}
	case enum.DatasetByCategory:
		return Panel{Key: key, Title: "Businesses by Category", Kind: ChartBar, X: "category_name", Y: "business_count"}
	case enum.DatasetEngagementTrends:
		return Panel{Key: key, Title: "Customer Engagement", Kind: ChartLine, X: "period", Y: "review_count"}
	case enum.DatasetTopCategories:
		return Panel{Key: key, Title: "Top Categories", Kind: ChartBar, X: "category", Y: "review_count"}
	case enum.DatasetRatingDistribution:
		return Panel{Key: key, Title: "Rating Distribution", Kind: ChartBar, X: "stars", Y: "review_count"}
	case enum.DatasetUserSegments:
		return Panel{Key: key, Title: "User Segments", Kind: ChartPie, X: "segment", Y: "user_count"}
	case enum.DatasetTopCities:
		return Panel{Key: key, Title: "Top Cities", Kind: ChartBar, X: "city", Y: "review_count"}
	}
	panic(fmt.Sprintf("render: no panel for dataset %q", key))
}

// ratingFields are KPI columns drawn as a 0-5 gauge.
var ratingFields = []string{"avg_rating", "avg_stars"}

// Columns returns the union of keys across rows. The leading fields come
// first when present; the rest are sorted.
func Columns(rows []entity.Row, leading ...string) []string {
	seen := map[string]bool{}
	var cols []string
	for _, f := range leading {
		if f == "" || seen[f] {
			continue
		}
		for _, r := range rows {
			if _, ok := r[f]; ok {
				cols = append(cols, f)
				seen[f] = true
				break
			}
		}
	}

	var rest []string
	for _, r := range rows {
		for k := range r {
			if !seen[k] {
				seen[k] = true
				rest = append(rest, k)
			}
		}
	}
	sort.Strings(rest)
	return append(cols, rest...)
}
