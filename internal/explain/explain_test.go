package explain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExplainEmploymentTiers(t *testing.T) {
	tests := []struct {
		name     string
		rate     float64
		contains string
	}{
		{
			name:     "High rate is positive",
			rate:     85,
			contains: "Great news!",
		},
		{
			name:     "Lower tier bound is inclusive at 80",
			rate:     80,
			contains: "Great news!",
		},
		{
			name:     "Middle tier",
			rate:     70,
			contains: "room for improvement",
		},
		{
			name:     "Middle tier bound is inclusive at 60",
			rate:     60,
			contains: "room for improvement",
		},
		{
			name:     "Low tier",
			rate:     59.9,
			contains: "More work opportunities are needed",
		},
		{
			name:     "Zero rate",
			rate:     0,
			contains: "More work opportunities are needed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Explain(KindEmployment, Metrics{
				PersonsDemanded: 1000,
				PersonsEmployed: 800,
				EmploymentRate:  tt.rate,
			})
			assert.Contains(t, got, tt.contains)
		})
	}
}

func TestExplainEmploymentFormatsCounts(t *testing.T) {
	got := Explain(KindEmployment, Metrics{
		PersonsDemanded: 12345,
		PersonsEmployed: 10000,
		EmploymentRate:  81,
	})
	assert.Contains(t, got, "12,345 people who asked for work")
	assert.Contains(t, got, "10,000 people got jobs")
	assert.Contains(t, got, "81%")
}

func TestExplainExpenditure(t *testing.T) {
	got := Explain(KindExpenditure, Metrics{
		TotalExpenditure:    50000000, // 5.00 crores
		WagesPaid:           30000000, // 3.00 crores, 60.0%
		MaterialExpenditure: 10000000,
	})
	assert.Contains(t, got, "₹5.00 Crores")
	assert.Contains(t, got, "₹3.00 Crores")
	assert.Contains(t, got, "(60.0%)")
}

func TestExplainExpenditureZeroTotal(t *testing.T) {
	got := Explain(KindExpenditure, Metrics{})
	assert.Contains(t, got, "₹0.00 Crores")
	assert.Contains(t, got, "(0%)")
}

func TestExplainWorks(t *testing.T) {
	got := Explain(KindWorks, Metrics{
		TotalWorks:      120,
		CompletedWorks:  70,
		InProgressWorks: 50,
	})
	assert.Contains(t, got, "120 projects happening")
	assert.Contains(t, got, "70 projects are finished")
	assert.Contains(t, got, "50 projects are still being built")
}

func TestExplainUnknownKind(t *testing.T) {
	got := Explain(Kind("population"), Metrics{})
	assert.Equal(t, "This chart shows important information about MGNREGA programs in your district.", got)
}

func TestGroupDigits(t *testing.T) {
	tests := []struct {
		in       int64
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4500, "-4,500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, groupDigits(tt.in))
	}
}
