package dataprep

import (
	"fmt"
	"math"
	"sort"

	"salesfeat/pkg/frame"
)

// Transaction is one sale event.
type Transaction struct {
	ShopID int
	ItemID int
	Month  int
	Count  float64
}

type gridKey struct {
	shop, item, month int
}

// BuildGrid builds the training grid from transactions. For every month it
// takes the shops and items seen in that month and emits their full cross
// product, so a pair is only present in months where both its shop and its
// item sold something. The target column is the summed Count of the
// (shop, item, month), 0 when the pair did not sell. Rows are ordered by
// month, shop, item.
func BuildGrid(records []Transaction) (*frame.Frame, error) {
	shopsByMonth := make(map[int]map[int]struct{})
	itemsByMonth := make(map[int]map[int]struct{})
	sums := make(map[gridKey]float64, len(records))
	for _, r := range records {
		if shopsByMonth[r.Month] == nil {
			shopsByMonth[r.Month] = make(map[int]struct{})
			itemsByMonth[r.Month] = make(map[int]struct{})
		}
		shopsByMonth[r.Month][r.ShopID] = struct{}{}
		itemsByMonth[r.Month][r.ItemID] = struct{}{}
		sums[gridKey{r.ShopID, r.ItemID, r.Month}] += r.Count
	}

	months := sortedKeys(shopsByMonth)
	size := 0
	for _, m := range months {
		size += len(shopsByMonth[m]) * len(itemsByMonth[m])
	}

	shopCol := make([]float64, 0, size)
	itemCol := make([]float64, 0, size)
	monthCol := make([]float64, 0, size)
	target := make([]float64, 0, size)
	for _, m := range months {
		items := sortedKeys(itemsByMonth[m])
		for _, s := range sortedKeys(shopsByMonth[m]) {
			for _, it := range items {
				shopCol = append(shopCol, float64(s))
				itemCol = append(itemCol, float64(it))
				monthCol = append(monthCol, float64(m))
				target = append(target, sums[gridKey{s, it, m}])
			}
		}
	}

	return frame.New(
		frame.Column{Name: ShopCol, Values: shopCol},
		frame.Column{Name: ItemCol, Values: itemCol},
		frame.Column{Name: MonthCol, Values: monthCol},
		frame.Column{Name: TargetCol, Values: target},
	)
}

// BuildGridFrame runs BuildGrid on a frame holding the shop_id, item_id,
// date_block_num and item_cnt_day columns.
func BuildGridFrame(df *frame.Frame) (*frame.Frame, error) {
	records, err := TransactionsFromFrame(df)
	if err != nil {
		return nil, err
	}
	return BuildGrid(records)
}

// TransactionsFromFrame reads transactions out of a frame. Identifier and
// month values are truncated to integers; NaN or infinite ones are an error.
func TransactionsFromFrame(df *frame.Frame) ([]Transaction, error) {
	names := []string{ShopCol, ItemCol, MonthCol, CountCol}
	cols, err := df.Cols(names...)
	if err != nil {
		return nil, fmt.Errorf("transactions: %w", err)
	}
	out := make([]Transaction, df.Len())
	for i := range out {
		for c := 0; c < 3; c++ {
			if v := cols[c][i]; math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("transactions: row %d: %w: %s=%v", i, ErrNonFiniteKey, names[c], v)
			}
		}
		out[i] = Transaction{
			ShopID: int(cols[0][i]),
			ItemID: int(cols[1][i]),
			Month:  int(cols[2][i]),
			Count:  cols[3][i],
		}
	}
	return out, nil
}

// TransactionsToFrame is the inverse of TransactionsFromFrame.
func TransactionsToFrame(records []Transaction) *frame.Frame {
	shops := make([]float64, len(records))
	items := make([]float64, len(records))
	months := make([]float64, len(records))
	counts := make([]float64, len(records))
	for i, r := range records {
		shops[i] = float64(r.ShopID)
		items[i] = float64(r.ItemID)
		months[i] = float64(r.Month)
		counts[i] = r.Count
	}
	f, _ := frame.New(
		frame.Column{Name: ShopCol, Values: shops},
		frame.Column{Name: ItemCol, Values: items},
		frame.Column{Name: MonthCol, Values: months},
		frame.Column{Name: CountCol, Values: counts},
	)
	return f
}

func sortedKeys[V any](m map[int]V) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
