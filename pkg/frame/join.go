package frame

import (
	"encoding/binary"
	"fmt"
	"math"
)

// rowKey encodes the values of cols at row i into a comparable map key.
// Negative zero is folded into zero so that -0 and 0 join.
func rowKey(cols [][]float64, i int, buf []byte) string {
	buf = buf[:0]
	for _, c := range cols {
		v := c[i]
		if v == 0 {
			v = 0
		}
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}
	return string(buf)
}

// LeftJoin joins right onto f by the key columns in on. Every row of f is
// kept in order; a row with several matches in right is repeated once per
// match, in right's order, and a row with no match gets NaN in right's
// columns. Non-key columns of right must not clash with columns of f.
func (f *Frame) LeftJoin(right *Frame, on ...string) (*Frame, error) {
	leftKeys, err := f.Cols(on...)
	if err != nil {
		return nil, fmt.Errorf("left join: %w", err)
	}
	rightKeys, err := right.Cols(on...)
	if err != nil {
		return nil, fmt.Errorf("left join: %w", err)
	}

	isKey := make(map[string]struct{}, len(on))
	for _, k := range on {
		isKey[k] = struct{}{}
	}
	var extra []string
	for _, n := range right.names {
		if _, ok := isKey[n]; ok {
			continue
		}
		if f.Has(n) {
			return nil, fmt.Errorf("left join: %w: %q", ErrDuplicateColumn, n)
		}
		extra = append(extra, n)
	}

	buf := make([]byte, 0, 8*len(on))
	index := make(map[string][]int, right.nrow)
	for i := 0; i < right.nrow; i++ {
		k := rowKey(rightKeys, i, buf)
		index[k] = append(index[k], i)
	}

	leftIdx := make([]int, 0, f.nrow)
	rightIdx := make([]int, 0, f.nrow)
	for i := 0; i < f.nrow; i++ {
		matches := index[rowKey(leftKeys, i, buf)]
		if len(matches) == 0 {
			leftIdx = append(leftIdx, i)
			rightIdx = append(rightIdx, -1)
			continue
		}
		for _, j := range matches {
			leftIdx = append(leftIdx, i)
			rightIdx = append(rightIdx, j)
		}
	}

	out := f.Take(leftIdx)
	for _, n := range extra {
		out.names = append(out.names, n)
		out.cols[n] = gather(right.cols[n], rightIdx)
	}
	return out, nil
}
