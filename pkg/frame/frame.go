// Package frame provides a small columnar table of float64 columns used by
// the feature builders. NaN marks a missing value.
//
// Frames are treated as immutable: every method returns a new Frame and never
// writes into an existing column slice. Slices returned by Col are shared with
// the frame and must not be modified.
package frame

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrColumnNotFound indicates a named column is absent from the frame.
	ErrColumnNotFound = errors.New("frame: column not found")
	// ErrLengthMismatch indicates a column length differs from the frame's row count.
	ErrLengthMismatch = errors.New("frame: column length mismatch")
	// ErrDuplicateColumn indicates a column name is used twice.
	ErrDuplicateColumn = errors.New("frame: duplicate column")
)

// Column is a named slice of values used to build a Frame.
type Column struct {
	Name   string
	Values []float64
}

// Frame is an ordered set of equally long float64 columns.
type Frame struct {
	names []string
	cols  map[string][]float64
	nrow  int
}

// New builds a frame from columns. All columns must have the same length and
// distinct names.
func New(columns ...Column) (*Frame, error) {
	f := &Frame{cols: make(map[string][]float64, len(columns))}
	for i, c := range columns {
		if _, ok := f.cols[c.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Name)
		}
		if i == 0 {
			f.nrow = len(c.Values)
		} else if len(c.Values) != f.nrow {
			return nil, fmt.Errorf("%w: %q has %d rows, want %d", ErrLengthMismatch, c.Name, len(c.Values), f.nrow)
		}
		f.names = append(f.names, c.Name)
		f.cols[c.Name] = c.Values
	}
	return f, nil
}

// Empty returns a frame with the given column names and no rows.
func Empty(names ...string) *Frame {
	f := &Frame{cols: make(map[string][]float64, len(names))}
	for _, n := range names {
		if _, ok := f.cols[n]; ok {
			continue
		}
		f.names = append(f.names, n)
		f.cols[n] = []float64{}
	}
	return f
}

// Len returns the number of rows.
func (f *Frame) Len() int { return f.nrow }

// Names returns the column names in order.
func (f *Frame) Names() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// Has reports whether the frame has a column called name.
func (f *Frame) Has(name string) bool {
	_, ok := f.cols[name]
	return ok
}

// Col returns the values of a column. The slice is shared with the frame.
func (f *Frame) Col(name string) ([]float64, error) {
	v, ok := f.cols[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return v, nil
}

// Cols returns several columns at once, in the order requested.
func (f *Frame) Cols(names ...string) ([][]float64, error) {
	out := make([][]float64, len(names))
	for i, n := range names {
		v, err := f.Col(n)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Require returns ErrColumnNotFound for the first missing name.
func (f *Frame) Require(names ...string) error {
	for _, n := range names {
		if !f.Has(n) {
			return fmt.Errorf("%w: %q", ErrColumnNotFound, n)
		}
	}
	return nil
}

// Copy returns a deep copy of the frame.
func (f *Frame) Copy() *Frame {
	out := &Frame{
		names: make([]string, len(f.names)),
		cols:  make(map[string][]float64, len(f.cols)),
		nrow:  f.nrow,
	}
	copy(out.names, f.names)
	for n, v := range f.cols {
		cp := make([]float64, len(v))
		copy(cp, v)
		out.cols[n] = cp
	}
	return out
}

// shallow copies the column index but shares the column slices.
func (f *Frame) shallow() *Frame {
	out := &Frame{
		names: make([]string, len(f.names)),
		cols:  make(map[string][]float64, len(f.cols)),
		nrow:  f.nrow,
	}
	copy(out.names, f.names)
	for n, v := range f.cols {
		out.cols[n] = v
	}
	return out
}

// Select returns a frame holding only the named columns, in that order.
func (f *Frame) Select(names ...string) (*Frame, error) {
	out := &Frame{cols: make(map[string][]float64, len(names)), nrow: f.nrow}
	for _, n := range names {
		v, err := f.Col(n)
		if err != nil {
			return nil, err
		}
		if _, ok := out.cols[n]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, n)
		}
		out.names = append(out.names, n)
		out.cols[n] = v
	}
	return out, nil
}

// With returns a frame with the column set to values. An existing column of
// the same name is replaced in place in the column order.
func (f *Frame) With(name string, values []float64) (*Frame, error) {
	if len(f.names) > 0 && len(values) != f.nrow {
		return nil, fmt.Errorf("%w: %q has %d rows, want %d", ErrLengthMismatch, name, len(values), f.nrow)
	}
	out := f.shallow()
	if len(f.names) == 0 {
		out.nrow = len(values)
	}
	if _, ok := out.cols[name]; !ok {
		out.names = append(out.names, name)
	}
	out.cols[name] = values
	return out, nil
}

// Rename returns a frame with column from renamed to to.
func (f *Frame) Rename(from, to string) (*Frame, error) {
	if !f.Has(from) {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, from)
	}
	if from == to {
		return f.shallow(), nil
	}
	if f.Has(to) {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, to)
	}
	out := f.shallow()
	for i, n := range out.names {
		if n == from {
			out.names[i] = to
		}
	}
	out.cols[to] = out.cols[from]
	delete(out.cols, from)
	return out, nil
}

// Drop returns a frame without the named columns. Unknown names are ignored.
func (f *Frame) Drop(names ...string) *Frame {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}
	out := &Frame{cols: make(map[string][]float64, len(f.cols)), nrow: f.nrow}
	for _, n := range f.names {
		if _, ok := drop[n]; ok {
			continue
		}
		out.names = append(out.names, n)
		out.cols[n] = f.cols[n]
	}
	return out
}

// Map returns a frame where column name is replaced by fn applied to each value.
func (f *Frame) Map(name string, fn func(float64) float64) (*Frame, error) {
	v, err := f.Col(name)
	if err != nil {
		return nil, err
	}
	mapped := make([]float64, len(v))
	for i, x := range v {
		mapped[i] = fn(x)
	}
	return f.With(name, mapped)
}

// Take returns the rows at the given indices, in that order. An index of -1
// yields a row of NaN.
func (f *Frame) Take(idx []int) *Frame {
	out := &Frame{
		names: make([]string, len(f.names)),
		cols:  make(map[string][]float64, len(f.cols)),
		nrow:  len(idx),
	}
	copy(out.names, f.names)
	for n, v := range f.cols {
		out.cols[n] = gather(v, idx)
	}
	return out
}

// Filter returns the rows for which keep returns true.
func (f *Frame) Filter(keep func(row int) bool) *Frame {
	var idx []int
	for i := 0; i < f.nrow; i++ {
		if keep(i) {
			idx = append(idx, i)
		}
	}
	return f.Take(idx)
}

// NullFraction returns the share of NaN values in a column. An empty column
// has a null fraction of 0.
func (f *Frame) NullFraction(name string) (float64, error) {
	v, err := f.Col(name)
	if err != nil {
		return 0, err
	}
	if len(v) == 0 {
		return 0, nil
	}
	nulls := 0
	for _, x := range v {
		if math.IsNaN(x) {
			nulls++
		}
	}
	return float64(nulls) / float64(len(v)), nil
}

// Concat stacks frames vertically. All frames must have the same column set;
// the column order of the first frame is kept.
func Concat(frames ...*Frame) (*Frame, error) {
	if len(frames) == 0 {
		return Empty(), nil
	}
	first := frames[0]
	out := &Frame{cols: make(map[string][]float64, len(first.names))}
	out.names = first.Names()
	for _, f := range frames {
		if len(f.names) != len(first.names) {
			return nil, fmt.Errorf("%w: got %d columns, want %d", ErrLengthMismatch, len(f.names), len(first.names))
		}
		for _, n := range first.names {
			v, err := f.Col(n)
			if err != nil {
				return nil, err
			}
			out.cols[n] = append(out.cols[n], v...)
		}
		out.nrow += f.nrow
	}
	for _, n := range out.names {
		if out.cols[n] == nil {
			out.cols[n] = []float64{}
		}
	}
	return out, nil
}

func gather(v []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, j := range idx {
		if j < 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = v[j]
	}
	return out
}
