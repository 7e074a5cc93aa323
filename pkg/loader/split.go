// Package loader splits feature frames along the month axis. Sales data is a
// time series, so rows are never shuffled across the split.
package loader

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"salesfeat/pkg/frame"
)

// ErrNoFolds indicates there are too few distinct months for the requested folds.
var ErrNoFolds = errors.New("loader: not enough months for the requested folds")

// Fold is one train/validation pair of an expanding-window split.
type Fold struct {
	ValidationMonth float64
	Train           *frame.Frame
	Validation      *frame.Frame
}

// SplitByMonth puts rows with month < firstHoldout in train and the rest in
// holdout. Row order is kept on both sides.
func SplitByMonth(df *frame.Frame, monthCol string, firstHoldout float64) (train, holdout *frame.Frame, err error) {
	months, err := df.Col(monthCol)
	if err != nil {
		return nil, nil, fmt.Errorf("split: %w", err)
	}
	train = df.Filter(func(i int) bool { return months[i] < firstHoldout })
	holdout = df.Filter(func(i int) bool { return months[i] >= firstHoldout })
	return train, holdout, nil
}

// ExpandingWindowFolds builds nFolds folds over the last nFolds months. Fold
// i validates on one month and trains on every month before it.
func ExpandingWindowFolds(df *frame.Frame, monthCol string, nFolds int) ([]Fold, error) {
	months, err := df.Col(monthCol)
	if err != nil {
		return nil, fmt.Errorf("folds: %w", err)
	}
	distinct := distinctSorted(months)
	// the first month always stays in training
	if nFolds <= 0 || nFolds >= len(distinct) {
		return nil, fmt.Errorf("%w: %d folds over %d months", ErrNoFolds, nFolds, len(distinct))
	}
	folds := make([]Fold, 0, nFolds)
	for _, m := range distinct[len(distinct)-nFolds:] {
		folds = append(folds, Fold{
			ValidationMonth: m,
			Train:           df.Filter(func(i int) bool { return months[i] < m }),
			Validation:      df.Filter(func(i int) bool { return months[i] == m }),
		})
	}
	return folds, nil
}

func distinctSorted(x []float64) []float64 {
	seen := make(map[float64]struct{}, len(x))
	out := make([]float64, 0)
	for _, v := range x {
		if _, ok := seen[v]; ok || math.IsNaN(v) {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Float64s(out)
	return out
}
