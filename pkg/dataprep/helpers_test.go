package dataprep_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"salesfeat/pkg/frame"
)

func newFrame(t *testing.T, cols ...frame.Column) *frame.Frame {
	t.Helper()
	f, err := frame.New(cols...)
	require.NoError(t, err)
	return f
}

func column(t *testing.T, f *frame.Frame, name string) []float64 {
	t.Helper()
	v, err := f.Col(name)
	require.NoError(t, err)
	return v
}

// equalNaN compares float slices treating NaN as equal to NaN.
func equalNaN(t *testing.T, want, got []float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		if math.IsNaN(want[i]) {
			require.Truef(t, math.IsNaN(got[i]), "index %d: got %v, want NaN", i, got[i])
			continue
		}
		require.InDeltaf(t, want[i], got[i], 1e-9, "index %d", i)
	}
}

var nan = math.NaN()
