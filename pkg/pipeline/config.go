package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"salesfeat/pkg/dataprep"
)

// ErrInvalidConfig indicates a configuration that cannot build features.
var ErrInvalidConfig = errors.New("pipeline: invalid config")

// AggregationConfig describes one GroupAggregator.
type AggregationConfig struct {
	GroupBy      []string `mapstructure:"group_by"`
	Aggregations []string `mapstructure:"aggregations"`
	Shift        int      `mapstructure:"shift"`
}

// Config drives Pipeline.Build.
type Config struct {
	// HoldoutMonth is the first month kept out of training.
	HoldoutMonth int `mapstructure:"holdout_month"`
	// ClipMin and ClipMax bound the monthly target.
	ClipMin float64 `mapstructure:"clip_min"`
	ClipMax float64 `mapstructure:"clip_max"`
	// MeanEncodings lists the categorical groups to mean-encode.
	MeanEncodings [][]string `mapstructure:"mean_encodings"`
	// LagFeatures are lagged by every month in LagMonths.
	LagFeatures  []string            `mapstructure:"lag_features"`
	LagMonths    []int               `mapstructure:"lag_months"`
	Aggregations []AggregationConfig `mapstructure:"aggregations"`
}

// DefaultConfig returns the settings used for the monthly sales grid.
func DefaultConfig() Config {
	return Config{
		HoldoutMonth: 33,
		ClipMin:      0,
		ClipMax:      20,
		MeanEncodings: [][]string{
			{dataprep.ItemCol},
			{dataprep.ShopCol},
		},
		LagFeatures: []string{dataprep.TargetCol},
		LagMonths:   []int{1, 2, 3, 6, 12},
		Aggregations: []AggregationConfig{
			{GroupBy: []string{dataprep.ShopCol, dataprep.MonthCol}, Aggregations: dataprep.DefaultAggregations(), Shift: 1},
			{GroupBy: []string{dataprep.ItemCol, dataprep.MonthCol}, Aggregations: dataprep.DefaultAggregations(), Shift: 1},
		},
	}
}

// LoadConfig reads a config file (any format viper understands) on top of
// DefaultConfig. Scalar settings can be overridden from the environment with
// the SALESFEAT_ prefix, e.g. SALESFEAT_HOLDOUT_MONTH=32. An empty path reads
// defaults and environment only.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	def := DefaultConfig()
	v.SetDefault("holdout_month", def.HoldoutMonth)
	v.SetDefault("clip_min", def.ClipMin)
	v.SetDefault("clip_max", def.ClipMax)
	v.SetDefault("mean_encodings", def.MeanEncodings)
	v.SetDefault("lag_features", def.LagFeatures)
	v.SetDefault("lag_months", def.LagMonths)
	v.SetDefault("aggregations", def.Aggregations)

	v.SetEnvPrefix("SALESFEAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise fail deep inside Build.
func (c Config) Validate() error {
	if c.ClipMin > c.ClipMax {
		return fmt.Errorf("%w: clip_min %v > clip_max %v", ErrInvalidConfig, c.ClipMin, c.ClipMax)
	}
	for _, k := range c.LagMonths {
		if k == 0 {
			return fmt.Errorf("%w: lag_months: %w", ErrInvalidConfig, dataprep.ErrZeroShift)
		}
	}
	for i, enc := range c.MeanEncodings {
		if len(enc) == 0 {
			return fmt.Errorf("%w: mean_encodings[%d] is empty", ErrInvalidConfig, i)
		}
	}
	for i, a := range c.Aggregations {
		if len(a.Aggregations) == 0 {
			return fmt.Errorf("%w: aggregations[%d] has no aggregations", ErrInvalidConfig, i)
		}
	}
	return nil
}
