package entity

// Row is one flat query result record. After normalization every value is a
// string, a JSON number, a bool or nil.
type Row = map[string]any

// InvestorMetrics is the payload of the legacy investor endpoint.
type InvestorMetrics struct {
	KPIs       Row   `json:"kpis"`
	Trends     []Row `json:"trends"`
	ByCategory []Row `json:"byCategory"`
}

// MarketingMetrics is the payload of the marketing function.
type MarketingMetrics struct {
	EngagementTrends   []Row `json:"engagementTrends"`
	TopCategories      []Row `json:"topCategories"`
	RatingDistribution []Row `json:"ratingDistribution"`
	UserSegments       []Row `json:"userSegments"`
	TopCities          []Row `json:"topCities"`
}
