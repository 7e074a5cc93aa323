package frame_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesfeat/pkg/frame"
)

func mustFrame(t *testing.T, cols ...frame.Column) *frame.Frame {
	t.Helper()
	f, err := frame.New(cols...)
	require.NoError(t, err)
	return f
}

func col(t *testing.T, f *frame.Frame, name string) []float64 {
	t.Helper()
	v, err := f.Col(name)
	require.NoError(t, err)
	return v
}

func TestNew_Errors(t *testing.T) {
	cases := []struct {
		name string
		cols []frame.Column
		err  error
	}{
		{"Duplicate", []frame.Column{{"a", []float64{1}}, {"a", []float64{2}}}, frame.ErrDuplicateColumn},
		{"Ragged", []frame.Column{{"a", []float64{1, 2}}, {"b", []float64{2}}}, frame.ErrLengthMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := frame.New(tc.cols...)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestWithRenameDrop(t *testing.T) {
	f := mustFrame(t, frame.Column{"a", []float64{1, 2}}, frame.Column{"b", []float64{3, 4}})

	g, err := f.With("c", []float64{5, 6})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, g.Names())
	assert.False(t, f.Has("c"), "With must not modify the receiver")

	_, err = f.With("c", []float64{1})
	assert.ErrorIs(t, err, frame.ErrLengthMismatch)

	r, err := g.Rename("b", "bb")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "bb", "c"}, r.Names())
	assert.Equal(t, []float64{3, 4}, col(t, r, "bb"))

	_, err = g.Rename("a", "c")
	assert.ErrorIs(t, err, frame.ErrDuplicateColumn)
	_, err = g.Rename("zzz", "y")
	assert.ErrorIs(t, err, frame.ErrColumnNotFound)

	assert.Equal(t, []string{"a"}, g.Drop("b", "c", "missing").Names())
}

func TestLeftJoin(t *testing.T) {
	left := mustFrame(t,
		frame.Column{"k", []float64{1, 2, 3}},
		frame.Column{"x", []float64{10, 20, 30}},
	)
	right := mustFrame(t,
		frame.Column{"k", []float64{3, 1, 1}},
		frame.Column{"y", []float64{300, 100, 101}},
	)

	out, err := left.LeftJoin(right, "k")
	require.NoError(t, err)
	assert.Equal(t, []string{"k", "x", "y"}, out.Names())
	assert.Equal(t, []float64{1, 1, 2, 3}, col(t, out, "k"))
	assert.Equal(t, []float64{10, 10, 20, 30}, col(t, out, "x"))

	y := col(t, out, "y")
	assert.Equal(t, 100.0, y[0])
	assert.Equal(t, 101.0, y[1])
	assert.True(t, math.IsNaN(y[2]))
	assert.Equal(t, 300.0, y[3])
}

func TestLeftJoin_Errors(t *testing.T) {
	left := mustFrame(t, frame.Column{"k", []float64{1}}, frame.Column{"x", []float64{1}})
	clash := mustFrame(t, frame.Column{"k", []float64{1}}, frame.Column{"x", []float64{2}})

	_, err := left.LeftJoin(clash, "k")
	assert.ErrorIs(t, err, frame.ErrDuplicateColumn)

	_, err = left.LeftJoin(clash, "nope")
	assert.ErrorIs(t, err, frame.ErrColumnNotFound)
}

func TestLeftJoin_NegativeZeroMatches(t *testing.T) {
	left := mustFrame(t, frame.Column{"k", []float64{math.Copysign(0, -1)}})
	right := mustFrame(t, frame.Column{"k", []float64{0}}, frame.Column{"v", []float64{7}})

	out, err := left.LeftJoin(right, "k")
	require.NoError(t, err)
	assert.Equal(t, []float64{7}, col(t, out, "v"))
}

func TestGroupByAggregate(t *testing.T) {
	f := mustFrame(t,
		frame.Column{"g", []float64{2, 1, 2, 1, 3}},
		frame.Column{"v", []float64{1, 2, 3, 4, 5}},
	)
	g, err := f.GroupBy("g")
	require.NoError(t, err)
	assert.Equal(t, 3, g.NGroups())
	assert.Equal(t, []int{0, 1, 0, 1, 2}, g.GroupOf())
	assert.Equal(t, []int{1, 3}, g.Members(1))

	sum := func(v []float64) float64 {
		s := 0.0
		for _, x := range v {
			s += x
		}
		return s
	}
	out, err := g.Aggregate("v", frame.AggSpec{Name: "sum", Fn: sum})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, col(t, out, "g"))
	assert.Equal(t, []float64{6, 4, 5}, col(t, out, "sum"))
}

func TestSortBy(t *testing.T) {
	f := mustFrame(t,
		frame.Column{"a", []float64{2, 1, 2, math.NaN(), 1}},
		frame.Column{"b", []float64{1, 9, 0, 5, 3}},
	)
	out, err := f.SortBy("a", "b")
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 9, 0, 1, 5}, col(t, out, "b"))
}

func TestNullFraction(t *testing.T) {
	f := mustFrame(t, frame.Column{"a", []float64{1, math.NaN(), math.NaN(), 4}})
	frac, err := f.NullFraction("a")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, frac, 1e-12)

	frac, err = frame.Empty("a").NullFraction("a")
	require.NoError(t, err)
	assert.Zero(t, frac)
}

func TestConcat(t *testing.T) {
	a := mustFrame(t, frame.Column{"x", []float64{1}}, frame.Column{"y", []float64{2}})
	b := mustFrame(t, frame.Column{"y", []float64{4}}, frame.Column{"x", []float64{3}})
	out, err := frame.Concat(a, b)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Len())
	assert.Equal(t, []float64{1, 3}, col(t, out, "x"))
	assert.Equal(t, []float64{2, 4}, col(t, out, "y"))
}

func TestDataFrameInterop(t *testing.T) {
	f := mustFrame(t,
		frame.Column{"shop_id", []float64{1, 2}},
		frame.Column{"target", []float64{0.5, 3}},
	)
	df := f.ToDataFrame()
	assert.Equal(t, 2, df.Nrow())
	assert.Equal(t, []string{"shop_id", "target"}, df.Names())

	back, err := frame.FromDataFrame(df)
	require.NoError(t, err)
	assert.Equal(t, col(t, f, "target"), col(t, back, "target"))
}
