package dataprep_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesfeat/pkg/dataprep"
	"salesfeat/pkg/frame"
)

func TestBuildGrid_Example(t *testing.T) {
	records := []dataprep.Transaction{
		{ShopID: 1, ItemID: 1, Month: 0, Count: 5},
		{ShopID: 1, ItemID: 2, Month: 0, Count: 3},
		{ShopID: 1, ItemID: 1, Month: 1, Count: 2},
	}
	grid, err := dataprep.BuildGrid(records)
	require.NoError(t, err)

	assert.Equal(t, []string{"shop_id", "item_id", "date_block_num", "target"}, grid.Names())
	assert.Equal(t, []float64{1, 1, 1}, column(t, grid, dataprep.ShopCol))
	assert.Equal(t, []float64{1, 2, 1}, column(t, grid, dataprep.ItemCol))
	assert.Equal(t, []float64{0, 0, 1}, column(t, grid, dataprep.MonthCol))
	assert.Equal(t, []float64{5, 3, 2}, column(t, grid, dataprep.TargetCol))
}

func TestBuildGrid_ZeroFillAndSum(t *testing.T) {
	records := []dataprep.Transaction{
		{ShopID: 2, ItemID: 7, Month: 3, Count: 1},
		{ShopID: 1, ItemID: 9, Month: 3, Count: 4},
		{ShopID: 2, ItemID: 7, Month: 3, Count: 2},
		{ShopID: 2, ItemID: 7, Month: 3, Count: -1},
	}
	grid, err := dataprep.BuildGrid(records)
	require.NoError(t, err)

	// shops {1,2} x items {7,9} in month 3
	assert.Equal(t, []float64{1, 1, 2, 2}, column(t, grid, dataprep.ShopCol))
	assert.Equal(t, []float64{7, 9, 7, 9}, column(t, grid, dataprep.ItemCol))
	assert.Equal(t, []float64{0, 4, 2, 0}, column(t, grid, dataprep.TargetCol))
}

func TestBuildGrid_RowCountAndUniqueness(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var records []dataprep.Transaction
	for i := 0; i < 500; i++ {
		records = append(records, dataprep.Transaction{
			ShopID: rng.Intn(6),
			ItemID: rng.Intn(40),
			Month:  rng.Intn(5),
			Count:  float64(rng.Intn(4)),
		})
	}

	shops := map[int]map[int]bool{}
	items := map[int]map[int]bool{}
	observed := map[[3]int]bool{}
	for _, r := range records {
		if shops[r.Month] == nil {
			shops[r.Month], items[r.Month] = map[int]bool{}, map[int]bool{}
		}
		shops[r.Month][r.ShopID] = true
		items[r.Month][r.ItemID] = true
		observed[[3]int{r.ShopID, r.ItemID, r.Month}] = true
	}
	want := 0
	for m := range shops {
		want += len(shops[m]) * len(items[m])
	}

	grid, err := dataprep.BuildGrid(records)
	require.NoError(t, err)
	require.Equal(t, want, grid.Len())

	s := column(t, grid, dataprep.ShopCol)
	it := column(t, grid, dataprep.ItemCol)
	m := column(t, grid, dataprep.MonthCol)
	y := column(t, grid, dataprep.TargetCol)
	seen := map[[3]int]bool{}
	for i := 0; i < grid.Len(); i++ {
		key := [3]int{int(s[i]), int(it[i]), int(m[i])}
		require.False(t, seen[key], "duplicate grid key %v", key)
		seen[key] = true
		if !observed[key] {
			require.Zero(t, y[i], "unobserved key %v must be zero", key)
		}
		if i > 0 {
			prev := [3]float64{m[i-1], s[i-1], it[i-1]}
			cur := [3]float64{m[i], s[i], it[i]}
			require.True(t, lessEq(prev, cur), "rows %d,%d out of order", i-1, i)
		}
	}
	for key := range observed {
		require.True(t, seen[key], "observed key %v missing", key)
	}
}

func lessEq(a, b [3]float64) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return true
}

func TestBuildGrid_Empty(t *testing.T) {
	grid, err := dataprep.BuildGrid(nil)
	require.NoError(t, err)
	assert.Zero(t, grid.Len())
	assert.Len(t, grid.Names(), 4)
}

func TestBuildGridFrame(t *testing.T) {
	raw := dataprep.TransactionsToFrame([]dataprep.Transaction{
		{ShopID: 3, ItemID: 1, Month: 0, Count: 2},
		{ShopID: 3, ItemID: 1, Month: 0, Count: 1},
	})
	grid, err := dataprep.BuildGridFrame(raw)
	require.NoError(t, err)
	assert.Equal(t, []float64{3}, column(t, grid, dataprep.TargetCol))

	_, err = dataprep.BuildGridFrame(raw.Drop(dataprep.CountCol))
	assert.ErrorIs(t, err, dataprep.ErrMissingColumn)
	assert.ErrorIs(t, err, frame.ErrColumnNotFound)
}

func TestTransactionsFromFrame_NonFiniteKeys(t *testing.T) {
	for _, bad := range []float64{nan, math.Inf(1), math.Inf(-1)} {
		raw := newFrame(t,
			frame.Column{Name: "shop_id", Values: []float64{1, 1}},
			frame.Column{Name: "item_id", Values: []float64{2, bad}},
			frame.Column{Name: "date_block_num", Values: []float64{0, 0}},
			frame.Column{Name: "item_cnt_day", Values: []float64{1, 1}},
		)
		_, err := dataprep.TransactionsFromFrame(raw)
		assert.ErrorIs(t, err, dataprep.ErrNonFiniteKey, "item_id=%v", bad)
		assert.Contains(t, err.Error(), "row 1")
	}

	// a missing count is not a key and passes through
	raw := newFrame(t,
		frame.Column{Name: "shop_id", Values: []float64{1}},
		frame.Column{Name: "item_id", Values: []float64{2}},
		frame.Column{Name: "date_block_num", Values: []float64{0}},
		frame.Column{Name: "item_cnt_day", Values: []float64{nan}},
	)
	records, err := dataprep.TransactionsFromFrame(raw)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].ItemID)
}
