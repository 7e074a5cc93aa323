package frame

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ToDataFrame converts the frame into a gota DataFrame of float series.
func (f *Frame) ToDataFrame() dataframe.DataFrame {
	ss := make([]series.Series, 0, len(f.names))
	for _, n := range f.names {
		ss = append(ss, series.New(f.cols[n], series.Float, n))
	}
	return dataframe.New(ss...)
}

// FromDataFrame converts a gota DataFrame into a frame. Every column is read
// as float; non-numeric values become NaN.
func FromDataFrame(df dataframe.DataFrame) (*Frame, error) {
	if df.Err != nil {
		return nil, fmt.Errorf("from dataframe: %w", df.Err)
	}
	names := df.Names()
	cols := make([]Column, 0, len(names))
	for _, n := range names {
		cols = append(cols, Column{Name: n, Values: df.Col(n).Float()})
	}
	return New(cols...)
}
