package frame

import (
	"fmt"
	"math"
	"sort"
)

// SortBy returns the rows ordered ascending by the given columns, compared
// left to right. The sort is stable and NaN orders after every number.
func (f *Frame) SortBy(names ...string) (*Frame, error) {
	keys, err := f.Cols(names...)
	if err != nil {
		return nil, fmt.Errorf("sort: %w", err)
	}
	idx := make([]int, f.nrow)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ra, rb := idx[a], idx[b]
		for _, k := range keys {
			if c := compare(k[ra], k[rb]); c != 0 {
				return c < 0
			}
		}
		return false
	})
	return f.Take(idx), nil
}

func compare(a, b float64) int {
	an, bn := math.IsNaN(a), math.IsNaN(b)
	switch {
	case an && bn:
		return 0
	case an:
		return 1
	case bn:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
