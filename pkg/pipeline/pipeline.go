// Package pipeline assembles the sales features: grid, target clipping,
// month holdout, mean encodings, lags and shifted group aggregates.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"salesfeat/pkg/dataprep"
	"salesfeat/pkg/frame"
	"salesfeat/pkg/loader"
	"salesfeat/pkg/stats"
)

// Transformer interface for fit/transform pattern.
type Transformer interface {
	Fit(df *frame.Frame) error
	Transform(df *frame.Frame) (*frame.Frame, error)
}

// Chain runs transformers one after another.
type Chain struct {
	steps []Transformer
}

func NewChain(steps ...Transformer) *Chain {
	return &Chain{steps: steps}
}

// Fit fits every step on the output of the steps before it.
func (c *Chain) Fit(df *frame.Frame) error {
	for i, step := range c.steps {
		if err := step.Fit(df); err != nil {
			return fmt.Errorf("step %d fit: %w", i, err)
		}
		out, err := step.Transform(df)
		if err != nil {
			return fmt.Errorf("step %d transform: %w", i, err)
		}
		df = out
	}
	return nil
}

func (c *Chain) Transform(df *frame.Frame) (*frame.Frame, error) {
	for i, step := range c.steps {
		out, err := step.Transform(df)
		if err != nil {
			return nil, fmt.Errorf("step %d transform: %w", i, err)
		}
		df = out
	}
	return df, nil
}

// appendColumns turns a transformer that returns only new columns into one
// that returns its input with those columns added.
type appendColumns struct {
	Transformer
}

// AppendColumns wraps t so Transform keeps the input columns.
func AppendColumns(t Transformer) Transformer {
	return appendColumns{t}
}

func (a appendColumns) Transform(df *frame.Frame) (*frame.Frame, error) {
	cols, err := a.Transformer.Transform(df)
	if err != nil {
		return nil, err
	}
	for _, n := range cols.Names() {
		v, _ := cols.Col(n)
		if df, err = df.With(n, v); err != nil {
			return nil, err
		}
	}
	return df, nil
}

// Result holds the feature frames of both sides of the holdout split.
type Result struct {
	Train   *frame.Frame
	Holdout *frame.Frame
}

// Pipeline builds feature frames from transactions according to a Config.
type Pipeline struct {
	cfg    Config
	logger *zap.Logger
}

// New returns a pipeline. A nil logger disables logging.
func New(cfg Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{cfg: cfg, logger: logger}
}

// BuildFrame runs Build on a frame in TransactionSchema layout.
func (p *Pipeline) BuildFrame(ctx context.Context, raw *frame.Frame) (*Result, error) {
	if err := TransactionSchema.Validate(raw); err != nil {
		return nil, err
	}
	records, err := dataprep.TransactionsFromFrame(raw)
	if err != nil {
		return nil, err
	}
	return p.Build(ctx, records)
}

// Build turns transactions into train and holdout feature frames. Every
// learned statistic comes from months before Config.HoldoutMonth.
func (p *Pipeline) Build(ctx context.Context, records []dataprep.Transaction) (*Result, error) {
	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	grid, err := dataprep.BuildGrid(records)
	if err != nil {
		return nil, fmt.Errorf("grid: %w", err)
	}
	target, err := grid.Col(dataprep.TargetCol)
	if err != nil {
		return nil, fmt.Errorf("clip target: %w", err)
	}
	if grid, err = grid.With(dataprep.TargetCol, stats.Clip(target, p.cfg.ClipMin, p.cfg.ClipMax)); err != nil {
		return nil, fmt.Errorf("clip target: %w", err)
	}
	p.logger.Info("grid built", zap.Int("transactions", len(records)), zap.Int("rows", grid.Len()))

	train, holdout, err := loader.SplitByMonth(grid, dataprep.MonthCol, float64(p.cfg.HoldoutMonth))
	if err != nil {
		return nil, err
	}
	p.logger.Debug("holdout split",
		zap.Int("holdout_month", p.cfg.HoldoutMonth),
		zap.Int("train_rows", train.Len()),
		zap.Int("holdout_rows", holdout.Len()),
	)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if train, holdout, err = p.meanEncode(train, holdout); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	chain, err := p.featureChain()
	if err != nil {
		return nil, err
	}
	if err := chain.Fit(train); err != nil {
		return nil, fmt.Errorf("fit features: %w", err)
	}
	if train, err = chain.Transform(train); err != nil {
		return nil, fmt.Errorf("train features: %w", err)
	}
	if holdout, err = chain.Transform(holdout); err != nil {
		return nil, fmt.Errorf("holdout features: %w", err)
	}

	p.logger.Info("features built",
		zap.Int("columns", len(train.Names())),
		zap.Int("train_rows", train.Len()),
		zap.Int("holdout_rows", holdout.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return &Result{Train: train, Holdout: holdout}, nil
}

// meanEncode fits each encoder on train, encodes train in train mode and the
// holdout in test mode, and fills the gaps with the train target mean.
func (p *Pipeline) meanEncode(train, holdout *frame.Frame) (*frame.Frame, *frame.Frame, error) {
	y, err := train.Col(dataprep.TargetCol)
	if err != nil {
		return nil, nil, err
	}
	prior := stats.Mean(y)
	for _, cats := range p.cfg.MeanEncodings {
		enc := dataprep.NewMeanEncoder(cats, dataprep.TargetCol)
		if err := enc.Fit(train); err != nil {
			return nil, nil, err
		}
		if train, err = enc.TransformInto(train, dataprep.ModeTrain); err != nil {
			return nil, nil, err
		}
		if holdout, err = enc.TransformInto(holdout, dataprep.ModeTest); err != nil {
			return nil, nil, err
		}
		if train, err = dataprep.FillNaN(train, enc.Name(), prior); err != nil {
			return nil, nil, err
		}
		if holdout, err = dataprep.FillNaN(holdout, enc.Name(), prior); err != nil {
			return nil, nil, err
		}
		p.logger.Debug("mean encoding added", zap.String("column", enc.Name()), zap.Float64("prior", prior))
	}
	return train, holdout, nil
}

func (p *Pipeline) featureChain() (*Chain, error) {
	var steps []Transformer
	ids := []string{dataprep.ShopCol, dataprep.ItemCol}
	for _, feat := range p.cfg.LagFeatures {
		b, err := dataprep.NewLagFeatureBuilder(feat, ids, p.cfg.LagMonths, dataprep.WithLogger(p.logger))
		if err != nil {
			return nil, fmt.Errorf("lag %s: %w", feat, err)
		}
		steps = append(steps, b)
	}
	for _, a := range p.cfg.Aggregations {
		agg := dataprep.NewGroupAggregator(a.GroupBy, dataprep.TargetCol,
			dataprep.WithAggregations(a.Aggregations...),
			dataprep.WithShift(a.Shift),
			dataprep.WithLogger(p.logger),
		)
		steps = append(steps, AppendColumns(agg))
	}
	return NewChain(steps...), nil
}
