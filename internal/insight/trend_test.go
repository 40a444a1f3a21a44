package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"alcyxob/coach-api/internal/domain"
)

func TestClassifyTrend(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	tests := []struct {
		name   string
		series []float64
		want   domain.Trend
	}{
		{"empty", nil, domain.TrendStable},
		{"too short", []float64{4, 5, 9}, domain.TrendStable},
		{"strictly increasing", []float64{5, 6, 7, 8}, domain.TrendImproving},
		{"strictly decreasing", []float64{8, 7, 6, 5}, domain.TrendDeclining},
		{"constant", []float64{7, 7, 7, 7, 7, 7}, domain.TrendStable},
		{"within threshold", []float64{7.0, 7.1, 7.2, 7.3}, domain.TrendStable},
		{"just over threshold", []float64{7.0, 7.0, 7.6, 7.6}, domain.TrendImproving},
		{"odd length splits at floor midpoint", []float64{5, 5, 8, 8, 8}, domain.TrendImproving},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.ClassifyTrend(tt.series))
		})
	}
}

func TestClassifyTrendCustomThreshold(t *testing.T) {
	engine := NewEngine(Config{CaloriesPerMinute: 6.0, TrendThreshold: 2.0})

	// A +1h/night jump is improving under the default threshold but within
	// the widened one.
	series := []float64{6, 6, 7, 7}
	assert.Equal(t, domain.TrendStable, engine.ClassifyTrend(series))
}
