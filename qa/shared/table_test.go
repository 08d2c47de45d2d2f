package shared

import (
	"testing"

	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/localgroup-vla/qaplotter/qa/data_types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustColumn(t *testing.T, name string, data any) data_types.IColumn {
	t.Helper()
	col, err := data_types.WrapToColumn(name, data)
	require.NoError(t, err)
	return col
}

func sampleTable(t *testing.T, scans []int64, corrs []string) *RawTable {
	t.Helper()
	y := make([]float64, len(scans))
	for i := range y {
		y[i] = float64(i) + 0.5
	}
	table, err := NewRawTable(
		mustColumn(t, "scan", scans),
		mustColumn(t, "y", y),
		mustColumn(t, "corr", corrs),
	)
	require.NoError(t, err)
	return table
}

func TestNewRawTable(t *testing.T) {
	_, err := NewRawTable(
		mustColumn(t, "x", []float64{1, 2}),
		mustColumn(t, "y", []float64{1}),
	)
	assert.EqualError(t, err, `column "y" has 1 rows, expected 2`)

	_, err = NewRawTable(
		mustColumn(t, "x", []float64{1}),
		mustColumn(t, "x", []float64{1}),
	)
	assert.EqualError(t, err, `duplicate column "x"`)

	table := sampleTable(t, []int64{1, 2}, []string{"RR", "LL"})
	assert.EqualValues(t, 2, table.NumRows())
	assert.Equal(t, []string{"scan", "y", "corr"}, table.ColumnNames())
	assert.True(t, EmptyTable().Empty())
}

func TestRenameAndDropColumn(t *testing.T) {
	table := sampleTable(t, []int64{1}, []string{"RR"})
	require.NoError(t, table.RenameColumn("corr", "poln"))
	assert.True(t, table.HasColumn("poln"))
	assert.False(t, table.HasColumn("corr"))
	assert.Error(t, table.RenameColumn("poln", "scan"))
	assert.Error(t, table.RenameColumn("nope", "x"))

	require.NoError(t, table.DropColumn("scan"))
	assert.Equal(t, []string{"y", "poln"}, table.ColumnNames())
	col, ok := table.Column("poln")
	require.True(t, ok)
	assert.Equal(t, "poln", col.GetName())
}

func TestConcat(t *testing.T) {
	a := sampleTable(t, []int64{1, 1}, []string{"RR", "LL"})
	b := sampleTable(t, []int64{2, 2, 2}, []string{"RR", "LL", "RR"})

	res, err := Concat(a, EmptyTable(), b)
	require.NoError(t, err)
	assert.EqualValues(t, 5, res.NumRows())
	scans, _ := res.Column("scan")
	assert.Equal(t, []int64{1, 1, 2, 2, 2}, scans.GetData())
	// inputs are left untouched
	assert.EqualValues(t, 2, a.NumRows())

	other, err := NewRawTable(mustColumn(t, "scan", []float64{1}))
	require.NoError(t, err)
	_, err = Concat(a, other)
	assert.Error(t, err)

	res, err = Concat()
	require.NoError(t, err)
	assert.True(t, res.Empty())
}

func TestSchemaID(t *testing.T) {
	a := sampleTable(t, []int64{1}, []string{"RR"})
	b := sampleTable(t, []int64{5, 6}, []string{"LL", "RR"})
	assert.Equal(t, a.SchemaID(), b.SchemaID())
	require.NoError(t, b.RenameColumn("corr", "poln"))
	assert.NotEqual(t, a.SchemaID(), b.SchemaID())
}

func TestWhere(t *testing.T) {
	table := sampleTable(t, []int64{1, 2, 2, 3}, []string{"RR", "LL", "RR", "RR"})

	res, err := table.Where(`scan == 2 && corr == "RR"`)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.NumRows())
	assert.Equal(t, map[string]any{"scan": int64(2), "y": 2.5, "corr": "RR"}, res.Row(0))

	res, err = table.Where(`corr in ["RR", "LR"] and y > 1`)
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.NumRows())

	_, err = table.Where(`missing > 1`)
	assert.Error(t, err)
	_, err = table.Where(`scan + 1`)
	assert.Error(t, err)
}

func TestUniqueAndScanIndex(t *testing.T) {
	table := sampleTable(t, []int64{70, 50, 60, 50}, []string{"RR", "LL", "RR", "LL"})
	corrs, err := UniqueString(table, "corr")
	require.NoError(t, err)
	assert.Equal(t, []string{"LL", "RR"}, corrs)

	idx, err := ScanIndex(table)
	require.NoError(t, err)
	assert.Equal(t, map[int64]int{50: 0, 60: 1, 70: 2}, idx)

	_, err = UniqueInt64(table, "spw")
	assert.Error(t, err)
}

func TestToArrow(t *testing.T) {
	table := sampleTable(t, []int64{1, 2}, []string{"RR", "LL"})
	rec, err := table.ToArrow(memory.DefaultAllocator)
	require.NoError(t, err)
	defer rec.Release()
	assert.EqualValues(t, 2, rec.NumRows())
	assert.EqualValues(t, 3, rec.NumCols())
	assert.Equal(t, "corr", rec.ColumnName(2))
}

func TestSortBy(t *testing.T) {
	table := sampleTable(t, []int64{2, 1, 2, 1}, []string{"RR", "LL", "LL", "RR"})
	sorted, err := table.SortBy("scan", "corr")
	require.NoError(t, err)
	scans, _ := sorted.Column("scan")
	corrs, _ := sorted.Column("corr")
	ys, _ := sorted.Column("y")
	assert.Equal(t, []int64{1, 1, 2, 2}, scans.GetData())
	assert.Equal(t, []string{"LL", "RR", "LL", "RR"}, corrs.GetData())
	assert.Equal(t, []float64{1.5, 3.5, 2.5, 0.5}, ys.GetData())

	stable, err := table.SortBy("scan")
	require.NoError(t, err)
	ys, _ = stable.Column("y")
	assert.Equal(t, []float64{1.5, 3.5, 0.5, 2.5}, ys.GetData())

	_, err = table.SortBy("time")
	assert.Error(t, err)
}

func TestFilterIn(t *testing.T) {
	table := sampleTable(t, []int64{1, 2, 3}, []string{"RR", "RL", "LL"})
	res, err := table.FilterIn("corr", "RR", "LL")
	require.NoError(t, err)
	scans, _ := res.Column("scan")
	assert.Equal(t, []int64{1, 3}, scans.GetData())

	_, err = table.FilterIn("scan", "1")
	assert.Error(t, err)
	_, err = table.FilterIn("poln", "RR")
	assert.Error(t, err)
}
