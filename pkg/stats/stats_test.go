package stats_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesfeat/pkg/stats"
)

func TestDescriptive_SkipNaN(t *testing.T) {
	x := []float64{4, math.NaN(), 1, 3, 2}

	assert.Equal(t, 4.0, stats.Count(x))
	assert.Equal(t, 10.0, stats.Sum(x))
	assert.Equal(t, 2.5, stats.Mean(x))
	assert.Equal(t, 1.0, stats.Min(x))
	assert.Equal(t, 4.0, stats.Max(x))
	assert.Equal(t, 2.5, stats.Median(x))
	assert.InDelta(t, math.Sqrt(5.0/3.0), stats.Std(x), 1e-12)
}

func TestDescriptive_Empty(t *testing.T) {
	empty := []float64{math.NaN()}

	assert.Zero(t, stats.Count(empty))
	assert.Zero(t, stats.Sum(empty))
	for name, fn := range map[string]func([]float64) float64{
		"mean":   stats.Mean,
		"min":    stats.Min,
		"max":    stats.Max,
		"median": stats.Median,
		"std":    stats.Std,
	} {
		assert.True(t, math.IsNaN(fn(empty)), name)
	}
}

func TestPercentile(t *testing.T) {
	x := []float64{10, 20, 30, 40, 50}
	assert.Equal(t, 10.0, stats.Percentile(x, 0))
	assert.Equal(t, 50.0, stats.Percentile(x, 100))
	assert.Equal(t, 20.0, stats.Percentile(x, 25))
	assert.Equal(t, 35.0, stats.Percentile(x, 62.5))
}

func TestClip(t *testing.T) {
	got := stats.Clip([]float64{-3, 5, 25, math.NaN()}, 0, 20)
	assert.Equal(t, []float64{0, 5, 20}, got[:3])
	assert.True(t, math.IsNaN(got[3]))

	got = stats.ClipPercentile([]float64{1, 2, 3, 4, 100}, 0, 75)
	assert.Equal(t, []float64{1, 2, 3, 4, 4}, got)
}

func TestAggregation(t *testing.T) {
	fn, err := stats.Aggregation("max")
	require.NoError(t, err)
	assert.Equal(t, 3.0, fn([]float64{1, 3, 2}))

	_, err = stats.Aggregation("p99")
	assert.ErrorIs(t, err, stats.ErrUnknownAggregation)

	assert.Equal(t, []string{"count", "max", "mean", "median", "min", "std", "sum"}, stats.AggregationNames())
}
