package enum

import (
	"encoding/json"
	"fmt"
)

// MetricType selects one of the fixed operational-metrics query templates
type MetricType int

const (
	MetricTypeKPIs MetricType = iota
	MetricTypeTimeSeries
	MetricTypeSentimentBreakdown
	MetricTypePerformanceByDay
)

var metricTypeNames = [...]string{"kpis", "timeSeries", "sentimentBreakdown", "performanceByDay"}

// MetricTypes lists every discriminator in declaration order.
func MetricTypes() []MetricType {
	return []MetricType{
		MetricTypeKPIs,
		MetricTypeTimeSeries,
		MetricTypeSentimentBreakdown,
		MetricTypePerformanceByDay,
	}
}

func (t MetricType) String() string {
	if t < 0 || int(t) >= len(metricTypeNames) {
		return fmt.Sprintf("MetricType(%d)", int(t))
	}
	return metricTypeNames[t]
}

// ParseMetricType maps the wire discriminator onto a MetricType.
func ParseMetricType(s string) (MetricType, error) {
	for i, name := range metricTypeNames {
		if name == s {
			return MetricType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown metric type %q", s)
}

// Dataset returns the client dataset fed by this metric type.
func (t MetricType) Dataset() DatasetKey {
	switch t {
	case MetricTypeKPIs:
		return DatasetKPIs
	case MetricTypeTimeSeries:
		return DatasetTimeSeries
	case MetricTypeSentimentBreakdown:
		return DatasetSentimentBreakdown
	case MetricTypePerformanceByDay:
		return DatasetPerformanceByDay
	}
	panic(fmt.Sprintf("enum: unhandled metric type %d", int(t)))
}

func (t MetricType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *MetricType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseMetricType(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
