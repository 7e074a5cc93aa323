package dataprep

import (
	"fmt"
	"math"

	"salesfeat/pkg/frame"
	"salesfeat/pkg/stats"
)

// FillNaN replaces missing values of col with value.
func FillNaN(df *frame.Frame, col string, value float64) (*frame.Frame, error) {
	return df.Map(col, func(v float64) float64 {
		if math.IsNaN(v) {
			return value
		}
		return v
	})
}

// FillNaNWithMean replaces missing values of col with the mean of its
// non-missing values. A column with no values at all is returned unchanged.
func FillNaNWithMean(df *frame.Frame, col string) (*frame.Frame, error) {
	v, err := df.Col(col)
	if err != nil {
		return nil, fmt.Errorf("fill mean: %w", err)
	}
	return FillNaN(df, col, stats.Mean(v))
}

// FillNaNWithMedian replaces missing values of col with its median.
func FillNaNWithMedian(df *frame.Frame, col string) (*frame.Frame, error) {
	v, err := df.Col(col)
	if err != nil {
		return nil, fmt.Errorf("fill median: %w", err)
	}
	return FillNaN(df, col, stats.Median(v))
}

// FillNaNWithGroupMean replaces missing values of col with the mean of col
// over the row's group. Groups with no value at all fall back to the mean of
// the whole column.
func FillNaNWithGroupMean(df *frame.Frame, col string, groupBy ...string) (*frame.Frame, error) {
	v, err := df.Col(col)
	if err != nil {
		return nil, fmt.Errorf("fill group mean: %w", err)
	}
	g, err := df.GroupBy(groupBy...)
	if err != nil {
		return nil, fmt.Errorf("fill group mean: %w", err)
	}
	global := stats.Mean(v)
	means := make([]float64, g.NGroups())
	buf := make([]float64, 0)
	for id := range means {
		buf = buf[:0]
		for _, r := range g.Members(id) {
			buf = append(buf, v[r])
		}
		means[id] = stats.Mean(buf)
		if math.IsNaN(means[id]) {
			means[id] = global
		}
	}
	out := make([]float64, len(v))
	for i, id := range g.GroupOf() {
		out[i] = v[i]
		if math.IsNaN(out[i]) {
			out[i] = means[id]
		}
	}
	return df.With(col, out)
}
