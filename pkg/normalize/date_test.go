package normalize

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToTime_ShapesAgree(t *testing.T) {
	want := time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)

	shapes := []any{
		"2023-11-14T22:13:20Z",
		map[string]any{"value": "2023-11-14T22:13:20Z"},
		map[string]any{"_seconds": float64(1700000000), "_nanoseconds": float64(0)},
		map[string]any{"_seconds": json.Number("1700000000")},
	}
	for _, s := range shapes {
		got, err := ToTime(s)
		require.NoError(t, err, "%v", s)
		assert.True(t, want.Equal(got), "%v resolved to %v", s, got)
	}
}

func TestToTime_PlainLayouts(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"202401", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"20240115", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"2024-01", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"2024-01-15 09:30:00", time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)},
		{"2024-01-15T09:30:00.5+02:00", time.Date(2024, 1, 15, 7, 30, 0, 500000000, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ToTime(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}

func TestParseDateValue_Kinds(t *testing.T) {
	plain, err := ParseDateValue("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, DatePlain, plain.Kind)

	wrapped, err := ParseDateValue(map[string]any{"value": "2024-01-15"})
	require.NoError(t, err)
	assert.Equal(t, DateWrapped, wrapped.Kind)

	epoch, err := ParseDateValue(map[string]any{"_seconds": 1705276800, "_nanoseconds": 0})
	require.NoError(t, err)
	assert.Equal(t, DateEpoch, epoch.Kind)
	assert.Equal(t, int64(1705276800), epoch.Seconds)
}

func TestToTime_RejectsUnknownShapes(t *testing.T) {
	bad := []any{
		20240115,
		nil,
		map[string]any{"date": "2024-01-15"},
		map[string]any{"value": 12},
		map[string]any{"_seconds": 1.5},
		"not a date",
		"15/01/2024",
	}
	for _, b := range bad {
		_, err := ToTime(b)
		assert.ErrorIs(t, err, ErrUnrecognizedDate, "%v", b)
	}
}
