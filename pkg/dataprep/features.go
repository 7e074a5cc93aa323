package dataprep

import (
	"fmt"

	"go.uber.org/zap"

	"salesfeat/pkg/frame"
)

// LagColumnName names the column holding feature shifted by k months.
// A lag (k > 0) reads "feature_-k"; a lead (k < 0) reads "feature_+|k|".
func LagColumnName(feature string, k int) string {
	return fmt.Sprintf("%s_%+d", feature, -k)
}

// LagReport records how much of a lag column could not be matched.
type LagReport struct {
	Column          string
	Shift           int
	MissingFraction float64
}

// AddLagFeatures appends one column per k in ks holding feature as it was k
// months earlier for the same identifiers. Rows with no record k months back
// get NaN. The missing fraction of every new column is logged and returned.
func AddLagFeatures(df *frame.Frame, ks []int, feature string, ids []string, monthCol string, logger *zap.Logger) (*frame.Frame, []LagReport, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	reports := make([]LagReport, 0, len(ks))
	for _, k := range ks {
		table, err := shiftedTable(df, k, feature, ids, monthCol)
		if err != nil {
			return nil, nil, err
		}
		var rep LagReport
		df, rep, err = joinLag(df, table, k, feature, ids, monthCol, logger)
		if err != nil {
			return nil, nil, err
		}
		reports = append(reports, rep)
	}
	return df, reports, nil
}

// shiftedTable copies (ids, month, feature) of src, moves the month forward
// by k and renames feature to its lag column name.
func shiftedTable(src *frame.Frame, k int, feature string, ids []string, monthCol string) (*frame.Frame, error) {
	if k == 0 {
		return nil, ErrZeroShift
	}
	cols := append(append([]string(nil), ids...), monthCol, feature)
	t, err := src.Select(cols...)
	if err != nil {
		return nil, fmt.Errorf("lag %d: %w", k, err)
	}
	if t, err = t.Map(monthCol, func(m float64) float64 { return m + float64(k) }); err != nil {
		return nil, fmt.Errorf("lag %d: %w", k, err)
	}
	if t, err = t.Rename(feature, LagColumnName(feature, k)); err != nil {
		return nil, fmt.Errorf("lag %d: %w", k, err)
	}
	return t, nil
}

func joinLag(df, table *frame.Frame, k int, feature string, ids []string, monthCol string, logger *zap.Logger) (*frame.Frame, LagReport, error) {
	name := LagColumnName(feature, k)
	on := append(append([]string(nil), ids...), monthCol)
	out, err := df.LeftJoin(table, on...)
	if err != nil {
		return nil, LagReport{}, fmt.Errorf("lag %d: %w", k, err)
	}
	missing, err := out.NullFraction(name)
	if err != nil {
		return nil, LagReport{}, fmt.Errorf("lag %d: %w", k, err)
	}
	logger.Info("lag feature added",
		zap.String("column", name),
		zap.Int("shift", k),
		zap.Float64("missing_fraction", missing),
	)
	return out, LagReport{Column: name, Shift: k, MissingFraction: missing}, nil
}

type lagTable struct {
	shift int
	table *frame.Frame
}

// LagFeatureBuilder is the fit/transform form of AddLagFeatures. Fit takes
// the shifted copies from a source frame; Transform joins them onto any frame
// carrying the identifier and month columns.
type LagFeatureBuilder struct {
	feature string
	ids     []string
	shifts  []int
	opts    options
	state   fitState[[]lagTable]
}

// NewLagFeatureBuilder returns an unfit builder for feature lagged by each
// of shifts, keyed by ids and the month column.
func NewLagFeatureBuilder(feature string, ids []string, shifts []int, opts ...Option) (*LagFeatureBuilder, error) {
	for _, k := range shifts {
		if k == 0 {
			return nil, ErrZeroShift
		}
	}
	return &LagFeatureBuilder{
		feature: feature,
		ids:     append([]string(nil), ids...),
		shifts:  append([]int(nil), shifts...),
		opts:    applyOptions(opts),
		state:   unfit[[]lagTable]{},
	}, nil
}

// Columns lists the names of the columns Transform adds.
func (b *LagFeatureBuilder) Columns() []string {
	out := make([]string, len(b.shifts))
	for i, k := range b.shifts {
		out[i] = LagColumnName(b.feature, k)
	}
	return out
}

// Fit builds one shifted table per shift from src.
func (b *LagFeatureBuilder) Fit(src *frame.Frame) error {
	tables := make([]lagTable, 0, len(b.shifts))
	for _, k := range b.shifts {
		t, err := shiftedTable(src, k, b.feature, b.ids, b.opts.monthCol)
		if err != nil {
			return err
		}
		tables = append(tables, lagTable{shift: k, table: t})
	}
	b.state = fitted[[]lagTable]{tables}
	return nil
}

// Transform appends the fitted lag columns to df.
func (b *LagFeatureBuilder) Transform(df *frame.Frame) (*frame.Frame, error) {
	out, _, err := b.TransformReport(df)
	return out, err
}

// TransformReport is Transform that also returns the missing fraction of
// every added column.
func (b *LagFeatureBuilder) TransformReport(df *frame.Frame) (*frame.Frame, []LagReport, error) {
	tables, err := lookup(b.state)
	if err != nil {
		return nil, nil, err
	}
	reports := make([]LagReport, 0, len(tables))
	for _, t := range tables {
		var rep LagReport
		df, rep, err = joinLag(df, t.table, t.shift, b.feature, b.ids, b.opts.monthCol, b.opts.logger)
		if err != nil {
			return nil, nil, err
		}
		reports = append(reports, rep)
	}
	return df, reports, nil
}
