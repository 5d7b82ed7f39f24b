package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMetricType(t *testing.T) {
	for _, mt := range MetricTypes() {
		parsed, err := ParseMetricType(mt.String())
		require.NoError(t, err)
		assert.Equal(t, mt, parsed)
	}

	_, err := ParseMetricType("bogus")
	assert.Error(t, err)

	_, err = ParseMetricType("KPIS")
	assert.Error(t, err, "discriminators are case-sensitive")
}

func TestMetricType_JSON(t *testing.T) {
	var body struct {
		Type MetricType `json:"type"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"type":"sentimentBreakdown"}`), &body))
	assert.Equal(t, MetricTypeSentimentBreakdown, body.Type)

	assert.Error(t, json.Unmarshal([]byte(`{"type":"bogus"}`), &body))
}

func TestMetricType_Dataset(t *testing.T) {
	assert.Equal(t, DatasetKPIs, MetricTypeKPIs.Dataset())
	assert.Equal(t, DatasetTimeSeries, MetricTypeTimeSeries.Dataset())
	assert.Equal(t, DatasetSentimentBreakdown, MetricTypeSentimentBreakdown.Dataset())
	assert.Equal(t, DatasetPerformanceByDay, MetricTypePerformanceByDay.Dataset())
}

func TestViewForEmail(t *testing.T) {
	tests := []struct {
		email string
		want  ViewKind
	}{
		{"investor@demo.com", ViewInvestor},
		{"analyst@demo.com", ViewInvestor},
		{"manager@demo.com", ViewManager},
		{" Owner@Demo.com ", ViewManager},
		{"marketing@demo.com", ViewMarketing},
		{"customerexperience@demo.com", ViewMarketing},
		{"someone@example.com", ViewDefault},
		{"", ViewDefault},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, ViewForEmail(tt.email))
		})
	}
}

func TestAllowListsAreDisjoint(t *testing.T) {
	seen := map[string]string{}
	for name, list := range map[string][]string{
		"investor":  InvestorEmails,
		"manager":   ManagerEmails,
		"marketing": MarketingEmails,
	} {
		for _, email := range list {
			prev, dup := seen[email]
			assert.False(t, dup, "%s appears in both %s and %s", email, prev, name)
			seen[email] = name
		}
	}
}

func TestCanReadMarketingData(t *testing.T) {
	assert.True(t, CanReadMarketingData("marketing@demo.com"))
	assert.True(t, CanReadMarketingData("customerexperience@demo.com"))
	assert.False(t, CanReadMarketingData("Marketing@demo.com"))
	assert.False(t, CanReadMarketingData("manager@demo.com"))
	assert.False(t, CanReadMarketingData(""))
}
