package dataprep

import (
	"math"

	"salesfeat/pkg/frame"
)

// ClipTransactions returns a copy of records with Count limited to [lo, hi].
func ClipTransactions(records []Transaction, lo, hi float64) []Transaction {
	out := make([]Transaction, len(records))
	for i, r := range records {
		r.Count = math.Max(lo, math.Min(hi, r.Count))
		out[i] = r
	}
	return out
}

// DropDuplicateRows removes rows equal to an earlier row in every column,
// keeping the first occurrence.
func DropDuplicateRows(df *frame.Frame) *frame.Frame {
	g, err := df.GroupBy(df.Names()...)
	if err != nil {
		// every name comes from df itself
		return df
	}
	return g.Keys()
}

// DropDuplicateTransactions removes transactions identical to an earlier one.
func DropDuplicateTransactions(records []Transaction) []Transaction {
	seen := make(map[Transaction]struct{}, len(records))
	out := make([]Transaction, 0, len(records))
	for _, r := range records {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
