package dataprep

import "go.uber.org/zap"

// Column names of the sales schema.
const (
	ShopCol   = "shop_id"
	ItemCol   = "item_id"
	MonthCol  = "date_block_num"
	CountCol  = "item_cnt_day"
	TargetCol = "target"
)

var defaultAggregations = [...]string{"min", "max", "mean"}

// DefaultAggregations returns the aggregations used when none are given:
// min, max and mean. Each call returns a fresh slice.
func DefaultAggregations() []string {
	a := defaultAggregations
	return a[:]
}

type options struct {
	logger       *zap.Logger
	monthCol     string
	aggregations []string
	shift        int
}

func defaultOptions() options {
	return options{
		logger:       zap.NewNop(),
		monthCol:     MonthCol,
		aggregations: DefaultAggregations(),
		shift:        1,
	}
}

// Option configures a feature builder.
type Option func(*options)

// WithLogger sets the logger used for diagnostics. Nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMonthColumn overrides the time index column, date_block_num by default.
func WithMonthColumn(name string) Option {
	return func(o *options) { o.monthCol = name }
}

// WithAggregations sets the aggregations computed by a GroupAggregator.
// The slice is copied.
func WithAggregations(aggs ...string) Option {
	return func(o *options) {
		o.aggregations = append([]string(nil), aggs...)
	}
}

// WithShift sets the number of months a GroupAggregator moves its table forward.
func WithShift(k int) Option {
	return func(o *options) { o.shift = k }
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
