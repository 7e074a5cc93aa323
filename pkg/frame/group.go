package frame

import "fmt"

// Grouping partitions the rows of a frame by the values of key columns.
type Grouping struct {
	frame   *Frame
	keys    []string
	rowOf   []int   // group id of each row
	members [][]int // row indices of each group, in row order
	first   []int   // first row of each group
}

// AggSpec names an aggregation and the function computing it.
type AggSpec struct {
	Name string
	Fn   func([]float64) float64
}

// GroupBy groups rows by the given key columns. Groups are numbered in order
// of first appearance.
func (f *Frame) GroupBy(keys ...string) (*Grouping, error) {
	keyCols, err := f.Cols(keys...)
	if err != nil {
		return nil, fmt.Errorf("group by: %w", err)
	}
	g := &Grouping{frame: f, keys: keys, rowOf: make([]int, f.nrow)}
	ids := make(map[string]int)
	buf := make([]byte, 0, 8*len(keys))
	for i := 0; i < f.nrow; i++ {
		k := rowKey(keyCols, i, buf)
		id, ok := ids[k]
		if !ok {
			id = len(g.members)
			ids[k] = id
			g.members = append(g.members, nil)
			g.first = append(g.first, i)
		}
		g.rowOf[i] = id
		g.members[id] = append(g.members[id], i)
	}
	return g, nil
}

// NGroups returns the number of distinct keys.
func (g *Grouping) NGroups() int { return len(g.members) }

// GroupOf returns the group id of each row of the grouped frame.
func (g *Grouping) GroupOf() []int { return g.rowOf }

// Members returns the row indices belonging to group id.
func (g *Grouping) Members(id int) []int { return g.members[id] }

// Keys returns one row per group holding the key values, in group id order.
func (g *Grouping) Keys() *Frame {
	keys, _ := g.frame.Select(g.keys...)
	return keys.Take(g.first)
}

// Aggregate computes each spec over col within every group. The result holds
// the key columns followed by one column per spec, one row per group, sorted
// ascending by the keys.
func (g *Grouping) Aggregate(col string, specs ...AggSpec) (*Frame, error) {
	values, err := g.frame.Col(col)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}
	out := g.Keys()
	buf := make([]float64, 0)
	for _, s := range specs {
		res := make([]float64, len(g.members))
		for id, rows := range g.members {
			buf = buf[:0]
			for _, r := range rows {
				buf = append(buf, values[r])
			}
			res[id] = s.Fn(buf)
		}
		if out, err = out.With(s.Name, res); err != nil {
			return nil, fmt.Errorf("aggregate: %w", err)
		}
	}
	return out.SortBy(g.keys...)
}
