package store

import (
	"testing"

	"mgnrega/server/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestNearestDistrict(t *testing.T) {
	chennai := models.DistrictRecord{DistrictCode: "IN-TN-CN", DistrictName: "Chennai", Latitude: 13.0827, Longitude: 80.2707}
	mumbai := models.DistrictRecord{DistrictCode: "IN-MH-MU", DistrictName: "Mumbai", Latitude: 19.0760, Longitude: 72.8777}
	delhi := models.DistrictRecord{DistrictCode: "IN-DL-ND", DistrictName: "New Delhi", Latitude: 28.6139, Longitude: 77.2090}
	unknown := models.DistrictRecord{DistrictCode: "IN-XX-XX", DistrictName: "Nowhere", Latitude: 0, Longitude: 0}

	tests := []struct {
		name       string
		candidates []models.DistrictRecord
		lat, lon   float64
		expected   string
	}{
		{
			name:       "Query near Chennai",
			candidates: []models.DistrictRecord{delhi, mumbai, chennai},
			lat:        13.08,
			lon:        80.27,
			expected:   "Chennai",
		},
		{
			name:       "Query near Mumbai",
			candidates: []models.DistrictRecord{delhi, mumbai, chennai},
			lat:        18.5,
			lon:        73.8,
			expected:   "Mumbai",
		},
		{
			name:       "Zero-coordinate records are never selected",
			candidates: []models.DistrictRecord{unknown, delhi},
			lat:        0.01,
			lon:        0.01,
			expected:   "New Delhi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nearestDistrict(tt.candidates, tt.lat, tt.lon)
			if assert.NotNil(t, got) {
				assert.Equal(t, tt.expected, got.DistrictName)
			}
		})
	}
}

func TestNearestDistrictNoCandidates(t *testing.T) {
	assert.Nil(t, nearestDistrict(nil, 13.08, 80.27))

	onlyUnknown := []models.DistrictRecord{
		{DistrictCode: "IN-XX-XX", Latitude: 0, Longitude: 0},
	}
	assert.Nil(t, nearestDistrict(onlyUnknown, 13.08, 80.27))
}

func TestMergeDataPoints(t *testing.T) {
	existing := []models.MonthlyDataPoint{
		{Month: "2025-01", Year: 2025, PersonsDemanded: 100},
		{Month: "2025-02", Year: 2025, PersonsDemanded: 200},
	}
	incoming := []models.MonthlyDataPoint{
		{Month: "2024-12", Year: 2024, PersonsDemanded: 50},
		{Month: "2025-02", Year: 2025, PersonsDemanded: 999}, // duplicate month
		{Month: "2025-03", Year: 2025, PersonsDemanded: 300},
	}

	merged, added := mergeDataPoints(existing, incoming)

	assert.Equal(t, 2, added)
	assert.Len(t, merged, 4)

	// Sorted ascending by month key.
	months := make([]string, len(merged))
	for i, dp := range merged {
		months[i] = dp.Month
	}
	assert.Equal(t, []string{"2024-12", "2025-01", "2025-02", "2025-03"}, months)

	// Existing months are never overwritten.
	assert.Equal(t, int64(200), merged[2].PersonsDemanded)
}

func TestMergeDataPointsIdempotent(t *testing.T) {
	incoming := []models.MonthlyDataPoint{
		{Month: "2025-01", Year: 2025},
		{Month: "2025-02", Year: 2025},
	}

	once, added := mergeDataPoints(nil, incoming)
	assert.Equal(t, 2, added)

	twice, added := mergeDataPoints(once, incoming)
	assert.Equal(t, 0, added)
	assert.Equal(t, once, twice)
}
