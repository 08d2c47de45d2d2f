package shared

import (
	"fmt"

	"github.com/localgroup-vla/qaplotter/qa/data_types"
	"github.com/tidwall/btree"
)

// SortBy returns a copy of the table with rows ordered by the given columns.
// Rows with equal keys keep their original order.
func (t *RawTable) SortBy(names ...string) (*RawTable, error) {
	keys := make([]data_types.IColumn, len(names))
	for i, name := range names {
		col, ok := t.Column(name)
		if !ok {
			return nil, fmt.Errorf("column %q not found", name)
		}
		keys[i] = col
	}
	index := btree.NewBTreeG(func(a, b int32) bool {
		for _, col := range keys {
			if c := col.Compare(a, b); c != 0 {
				return c < 0
			}
		}
		return a < b
	})
	for i := int32(0); i < int32(t.NumRows()); i++ {
		index.Set(i)
	}
	order := make([]int32, 0, index.Len())
	index.Scan(func(i int32) bool {
		order = append(order, i)
		return true
	})
	cols := make([]data_types.IColumn, len(t.columns))
	for i, col := range t.columns {
		var err error
		cols[i], err = col.Take(order)
		if err != nil {
			return nil, err
		}
	}
	return NewRawTable(cols...)
}
