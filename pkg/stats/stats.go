// Package stats holds descriptive statistics over float slices. Every
// function skips NaN values, so a column with missing entries aggregates the
// same way a dataframe group-by would.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// dropNaN returns x without NaN values. x is returned as is when it has none.
func dropNaN(x []float64) []float64 {
	if !floats.HasNaN(x) {
		return x
	}
	out := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Count returns the number of non-missing values.
func Count(x []float64) float64 {
	return float64(len(dropNaN(x)))
}

// Sum returns the sum of all non-missing values, 0 for none.
func Sum(x []float64) float64 {
	return floats.Sum(dropNaN(x))
}

// Mean computes the average of a slice. NaN when there is nothing to average.
func Mean(x []float64) float64 {
	x = dropNaN(x)
	if len(x) == 0 {
		return math.NaN()
	}
	return stat.Mean(x, nil)
}

// Variance is the unbiased sample variance. NaN for fewer than two values.
func Variance(x []float64) float64 {
	x = dropNaN(x)
	if len(x) < 2 {
		return math.NaN()
	}
	return stat.Variance(x, nil)
}

// Std computes the sample standard deviation of a slice.
func Std(x []float64) float64 {
	return math.Sqrt(Variance(x))
}

// Min returns the smallest value, NaN for an empty slice.
func Min(x []float64) float64 {
	x = dropNaN(x)
	if len(x) == 0 {
		return math.NaN()
	}
	return floats.Min(x)
}

// Max returns the largest value, NaN for an empty slice.
func Max(x []float64) float64 {
	x = dropNaN(x)
	if len(x) == 0 {
		return math.NaN()
	}
	return floats.Max(x)
}

// MinMax returns the minimum and maximum values in the slice.
func MinMax(x []float64) (float64, float64) {
	return Min(x), Max(x)
}

// Median returns the median value of the slice (allocates a copy).
func Median(x []float64) float64 {
	return Percentile(x, 50)
}

// Percentile returns the p-th percentile value of the slice (0 <= p <= 100),
// interpolating linearly between closest ranks.
func Percentile(x []float64, p float64) float64 {
	x = dropNaN(x)
	n := len(x)
	if n == 0 {
		return math.NaN()
	}
	cp := make([]float64, n)
	copy(cp, x)
	sort.Float64s(cp)
	if p <= 0 {
		return cp[0]
	}
	if p >= 100 {
		return cp[n-1]
	}
	rank := p / 100 * float64(n-1)
	lower := int(rank)
	upper := lower + 1
	weight := rank - float64(lower)
	if upper >= n {
		return cp[lower]
	}
	return cp[lower]*(1-weight) + cp[upper]*weight
}
