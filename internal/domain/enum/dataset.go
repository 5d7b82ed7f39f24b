package enum

// DatasetKey names one dataset a dashboard view holds
type DatasetKey string

// Operational (owner/manager) datasets
const (
	DatasetKPIs               DatasetKey = "kpis"
	DatasetTimeSeries         DatasetKey = "timeSeries"
	DatasetSentimentBreakdown DatasetKey = "sentimentBreakdown"
	DatasetPerformanceByDay   DatasetKey = "performanceByDay"
)

// Investor datasets (kpis is shared with the operational set)
const (
	DatasetTrends     DatasetKey = "trends"
	DatasetByCategory DatasetKey = "byCategory"
)

// Marketing datasets
const (
	DatasetEngagementTrends   DatasetKey = "engagementTrends"
	DatasetTopCategories      DatasetKey = "topCategories"
	DatasetRatingDistribution DatasetKey = "ratingDistribution"
	DatasetUserSegments       DatasetKey = "userSegments"
	DatasetTopCities          DatasetKey = "topCities"
)

// MarketingDatasets lists the five datasets returned by the marketing function.
func MarketingDatasets() []DatasetKey {
	return []DatasetKey{
		DatasetEngagementTrends,
		DatasetTopCategories,
		DatasetRatingDistribution,
		DatasetUserSegments,
		DatasetTopCities,
	}
}

func (k DatasetKey) String() string {
	return string(k)
}
