package dataprep

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"salesfeat/pkg/frame"
	"salesfeat/pkg/stats"
)

// AggColumnName names an aggregate column, e.g. "target_mean-by-shop_id-1"
// for the mean target per shop and month, shifted one month forward. The
// month column is left out of the group list.
func AggColumnName(target, agg string, groupBy []string, monthCol string, k int) string {
	keys := make([]string, 0, len(groupBy))
	for _, g := range groupBy {
		if g != monthCol {
			keys = append(keys, g)
		}
	}
	return target + "_" + agg + "-by-" + strings.Join(keys, "-") + "-" + strconv.Itoa(k)
}

type aggTable struct {
	table   *frame.Frame
	columns []string
}

// GroupAggregator computes aggregates of a target per group and month and
// attaches the aggregate of month m to month m+k, so it can predict month m+k
// without looking at it.
type GroupAggregator struct {
	groupBy []string
	target  string
	opts    options
	state   fitState[aggTable]
}

// NewGroupAggregator returns an unfit aggregator. groupBy must include the
// month column. Aggregations default to DefaultAggregations and the shift to 1.
func NewGroupAggregator(groupBy []string, target string, opts ...Option) *GroupAggregator {
	return &GroupAggregator{
		groupBy: append([]string(nil), groupBy...),
		target:  target,
		opts:    applyOptions(opts),
		state:   unfit[aggTable]{},
	}
}

// Columns lists the names of the columns Transform returns.
func (a *GroupAggregator) Columns() []string {
	out := make([]string, len(a.opts.aggregations))
	for i, agg := range a.opts.aggregations {
		out[i] = AggColumnName(a.target, agg, a.groupBy, a.opts.monthCol, a.opts.shift)
	}
	return out
}

// Fit aggregates raw by the group columns and shifts the month forward.
func (a *GroupAggregator) Fit(raw *frame.Frame) error {
	if !a.groupsByMonth() {
		return fmt.Errorf("%w: %q not in %v", ErrMonthNotGrouped, a.opts.monthCol, a.groupBy)
	}
	names := a.Columns()
	specs := make([]frame.AggSpec, len(names))
	for i, agg := range a.opts.aggregations {
		fn, err := stats.Aggregation(agg)
		if err != nil {
			return fmt.Errorf("group aggregator fit: %w", err)
		}
		specs[i] = frame.AggSpec{Name: names[i], Fn: fn}
	}

	g, err := raw.GroupBy(a.groupBy...)
	if err != nil {
		return fmt.Errorf("group aggregator fit: %w", err)
	}
	table, err := g.Aggregate(a.target, specs...)
	if err != nil {
		return fmt.Errorf("group aggregator fit: %w", err)
	}
	k := float64(a.opts.shift)
	table, err = table.Map(a.opts.monthCol, func(m float64) float64 { return m + k })
	if err != nil {
		return fmt.Errorf("group aggregator fit: %w", err)
	}

	a.opts.logger.Debug("group aggregates fitted",
		zap.Strings("group_by", a.groupBy),
		zap.Int("groups", table.Len()),
		zap.Strings("columns", names),
	)
	a.state = fitted[aggTable]{aggTable{table: table, columns: names}}
	return nil
}

// Transform returns only the aggregate columns, one row per row of df.
// Rows whose group and month were not seen by Fit get NaN.
func (a *GroupAggregator) Transform(df *frame.Frame) (*frame.Frame, error) {
	t, err := lookup(a.state)
	if err != nil {
		return nil, err
	}
	keys, err := df.Select(a.groupBy...)
	if err != nil {
		return nil, fmt.Errorf("group aggregator transform: %w", err)
	}
	joined, err := keys.LeftJoin(t.table, a.groupBy...)
	if err != nil {
		return nil, fmt.Errorf("group aggregator transform: %w", err)
	}
	return joined.Select(t.columns...)
}

func (a *GroupAggregator) groupsByMonth() bool {
	for _, g := range a.groupBy {
		if g == a.opts.monthCol {
			return true
		}
	}
	return false
}
