package dataprep

import (
	"fmt"
	"math"
	"strings"

	"salesfeat/pkg/frame"
	"salesfeat/pkg/stats"
)

// Mode selects how MeanEncoder.Transform encodes rows.
type Mode string

const (
	// ModeTrain encodes each row with the running mean of the earlier rows
	// of its group, never its own target.
	ModeTrain Mode = "train"
	// ModeTest encodes each row with the group mean learned by Fit.
	ModeTest Mode = "test"
)

// MeanEncoder replaces a categorical group by the mean of the target over
// that group.
type MeanEncoder struct {
	categorical []string
	target      string
	state       fitState[*frame.Frame]
}

// NewMeanEncoder returns an unfit encoder grouping by categorical and
// averaging target.
func NewMeanEncoder(categorical []string, target string) *MeanEncoder {
	return &MeanEncoder{
		categorical: append([]string(nil), categorical...),
		target:      target,
		state:       unfit[*frame.Frame]{},
	}
}

// Name is the column name used for the encoding, e.g. target_mean-by-item_id.
func (e *MeanEncoder) Name() string {
	return e.target + "_mean-by-" + strings.Join(e.categorical, "-")
}

// Fit learns the target mean of every categorical group in train.
func (e *MeanEncoder) Fit(train *frame.Frame) error {
	g, err := train.GroupBy(e.categorical...)
	if err != nil {
		return fmt.Errorf("mean encoder fit: %w", err)
	}
	table, err := g.Aggregate(e.target, frame.AggSpec{Name: e.Name(), Fn: stats.Mean})
	if err != nil {
		return fmt.Errorf("mean encoder fit: %w", err)
	}
	e.state = fitted[*frame.Frame]{table}
	return nil
}

// Transform returns one encoded value per row of df.
//
// In ModeTrain row i gets (sum of target over earlier rows of its group) /
// (number of earlier rows), so the first row of each group is NaN. Row order
// of df defines "earlier". In ModeTest rows get the fitted group mean, NaN for
// groups not seen by Fit.
func (e *MeanEncoder) Transform(df *frame.Frame, mode Mode) ([]float64, error) {
	if mode != ModeTrain && mode != ModeTest {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	table, err := lookup(e.state)
	if err != nil {
		return nil, err
	}
	switch mode {
	case ModeTrain:
		return LeaveOneOutMean(df, e.categorical, e.target)
	default:
		keys, err := df.Select(e.categorical...)
		if err != nil {
			return nil, fmt.Errorf("mean encoder transform: %w", err)
		}
		joined, err := keys.LeftJoin(table, e.categorical...)
		if err != nil {
			return nil, fmt.Errorf("mean encoder transform: %w", err)
		}
		return joined.Col(e.Name())
	}
}

// TransformInto returns df with the encoding appended as column Name().
func (e *MeanEncoder) TransformInto(df *frame.Frame, mode Mode) (*frame.Frame, error) {
	enc, err := e.Transform(df, mode)
	if err != nil {
		return nil, err
	}
	return df.With(e.Name(), enc)
}

// LeaveOneOutMean computes the running group mean of target excluding the
// current row, in row order. It is the train-mode encoding of MeanEncoder and
// needs no fitted state. Missing targets add nothing to the running sum but
// still count as earlier rows; a row with a missing target encodes to NaN.
func LeaveOneOutMean(df *frame.Frame, categorical []string, target string) ([]float64, error) {
	y, err := df.Col(target)
	if err != nil {
		return nil, fmt.Errorf("leave-one-out mean: %w", err)
	}
	g, err := df.GroupBy(categorical...)
	if err != nil {
		return nil, fmt.Errorf("leave-one-out mean: %w", err)
	}
	sums := make([]float64, g.NGroups())
	counts := make([]int, g.NGroups())
	out := make([]float64, df.Len())
	for i, id := range g.GroupOf() {
		if counts[id] == 0 || math.IsNaN(y[i]) {
			out[i] = math.NaN()
		} else {
			out[i] = sums[id] / float64(counts[id])
		}
		if !math.IsNaN(y[i]) {
			sums[id] += y[i]
		}
		counts[id]++
	}
	return out, nil
}
