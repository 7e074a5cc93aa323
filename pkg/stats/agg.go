package stats

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownAggregation indicates an aggregation name with no registered function.
var ErrUnknownAggregation = errors.New("stats: unknown aggregation")

// AggFunc reduces a group of values to one number.
type AggFunc func([]float64) float64

var aggregations = map[string]AggFunc{
	"count":  Count,
	"max":    Max,
	"mean":   Mean,
	"median": Median,
	"min":    Min,
	"std":    Std,
	"sum":    Sum,
}

// Aggregation looks up an aggregation by name.
func Aggregation(name string) (AggFunc, error) {
	fn, ok := aggregations[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAggregation, name)
	}
	return fn, nil
}

// AggregationNames lists the registered aggregations in sorted order.
func AggregationNames() []string {
	out := make([]string, 0, len(aggregations))
	for n := range aggregations {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
