package shared

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/expr-lang/expr"
	"github.com/go-faster/city"
	"github.com/localgroup-vla/qaplotter/qa/data_types"
)

// RawTable is an ordered set of named, typed columns sharing one row count.
type RawTable struct {
	columns []data_types.IColumn
	index   map[string]int
}

func NewRawTable(columns ...data_types.IColumn) (*RawTable, error) {
	t := &RawTable{index: make(map[string]int, len(columns))}
	for i, col := range columns {
		if _, ok := t.index[col.GetName()]; ok {
			return nil, fmt.Errorf("duplicate column %q", col.GetName())
		}
		if i > 0 && col.GetLength() != columns[0].GetLength() {
			return nil, fmt.Errorf("column %q has %d rows, expected %d",
				col.GetName(), col.GetLength(), columns[0].GetLength())
		}
		t.index[col.GetName()] = i
		t.columns = append(t.columns, col)
	}
	return t, nil
}

// EmptyTable returns a table without columns or rows.
func EmptyTable() *RawTable {
	return &RawTable{index: map[string]int{}}
}

func (t *RawTable) NumRows() int64 {
	if len(t.columns) == 0 {
		return 0
	}
	return t.columns[0].GetLength()
}

func (t *RawTable) NumColumns() int {
	return len(t.columns)
}

func (t *RawTable) Empty() bool {
	return t.NumRows() == 0
}

func (t *RawTable) Columns() []data_types.IColumn {
	return slices.Clone(t.columns)
}

func (t *RawTable) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.GetName()
	}
	return names
}

func (t *RawTable) Column(name string) (data_types.IColumn, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

func (t *RawTable) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

func (t *RawTable) RenameColumn(from, to string) error {
	i, ok := t.index[from]
	if !ok {
		return fmt.Errorf("column %q not found", from)
	}
	if _, ok := t.index[to]; ok {
		return fmt.Errorf("column %q already exists", to)
	}
	t.columns[i].SetName(to)
	delete(t.index, from)
	t.index[to] = i
	return nil
}

func (t *RawTable) DropColumn(name string) error {
	i, ok := t.index[name]
	if !ok {
		return fmt.Errorf("column %q not found", name)
	}
	t.columns = slices.Delete(t.columns, i, i+1)
	t.reindex()
	return nil
}

func (t *RawTable) reindex() {
	t.index = make(map[string]int, len(t.columns))
	for i, col := range t.columns {
		t.index[col.GetName()] = i
	}
}

// SchemaID fingerprints the ordered column names and types.
func (t *RawTable) SchemaID() uint64 {
	var buf bytes.Buffer
	for _, col := range t.columns {
		buf.WriteString(col.GetName())
		buf.WriteByte(0)
		buf.WriteString(col.GetTypeName())
		buf.WriteByte(1)
	}
	return city.CH64(buf.Bytes())
}

// Concat stacks tables vertically in the given order. Tables without columns
// are skipped; all others must share the schema of the first one.
func Concat(tables ...*RawTable) (*RawTable, error) {
	var res *RawTable
	var schemaID uint64
	for i, t := range tables {
		if t == nil || t.NumColumns() == 0 {
			continue
		}
		if res == nil {
			cols := make([]data_types.IColumn, len(t.columns))
			for j, col := range t.columns {
				cols[j] = col.Clone()
			}
			res = &RawTable{columns: cols}
			res.reindex()
			schemaID = t.SchemaID()
			continue
		}
		if t.SchemaID() != schemaID {
			return nil, fmt.Errorf("table %d schema %v does not match %v",
				i, t.describe(), res.describe())
		}
		for j, col := range t.columns {
			if err := res.columns[j].AppendColumn(col); err != nil {
				return nil, err
			}
		}
	}
	if res == nil {
		return EmptyTable(), nil
	}
	return res, nil
}

func (t *RawTable) describe() []string {
	res := make([]string, len(t.columns))
	for i, col := range t.columns {
		res[i] = col.GetName() + " " + col.GetTypeName()
	}
	return res
}

func (t *RawTable) Filter(mask []bool) (*RawTable, error) {
	cols := make([]data_types.IColumn, len(t.columns))
	for i, col := range t.columns {
		var err error
		cols[i], err = col.Filter(mask)
		if err != nil {
			return nil, err
		}
	}
	return NewRawTable(cols...)
}

// FilterIn keeps the rows whose string column name holds one of values,
// e.g. FilterIn("corr", "RR", "LL").
func (t *RawTable) FilterIn(name string, values ...string) (*RawTable, error) {
	col, ok := t.Column(name)
	if !ok {
		return nil, fmt.Errorf("column %q not found", name)
	}
	data, ok := col.GetData().([]string)
	if !ok {
		return nil, fmt.Errorf("column %q is %s", name, col.GetTypeName())
	}
	mask := make([]bool, len(data))
	for i, v := range data {
		mask[i] = slices.Contains(values, v)
	}
	return t.Filter(mask)
}

// Row returns the values of row i keyed by column name.
func (t *RawTable) Row(i int64) map[string]any {
	row := make(map[string]any, len(t.columns))
	for _, col := range t.columns {
		row[col.GetName()] = col.GetVal(i)
	}
	return row
}

// Where keeps the rows for which the boolean expression holds, e.g.
// `spw == 2 && corr in ["RR", "LL"]`. Column names are the variables.
func (t *RawTable) Where(expression string) (*RawTable, error) {
	env := make(map[string]any, len(t.columns))
	for _, col := range t.columns {
		switch col.GetTypeName() {
		case data_types.DATA_TYPE_NAME_INT64:
			env[col.GetName()] = int64(0)
		case data_types.DATA_TYPE_NAME_FLOAT64:
			env[col.GetName()] = float64(0)
		default:
			env[col.GetName()] = ""
		}
	}
	program, err := expr.Compile(expression, expr.Env(env), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", expression, err)
	}
	mask := make([]bool, t.NumRows())
	for i := range mask {
		for _, col := range t.columns {
			env[col.GetName()] = col.GetVal(int64(i))
		}
		out, err := expr.Run(program, env)
		if err != nil {
			return nil, fmt.Errorf("filter %q row %d: %w", expression, i, err)
		}
		mask[i] = out.(bool)
	}
	return t.Filter(mask)
}

func UniqueInt64(t *RawTable, name string) ([]int64, error) {
	col, ok := t.Column(name)
	if !ok {
		return nil, fmt.Errorf("column %q not found", name)
	}
	return data_types.Unique[int64](col)
}

func UniqueString(t *RawTable, name string) ([]string, error) {
	col, ok := t.Column(name)
	if !ok {
		return nil, fmt.Errorf("column %q not found", name)
	}
	return data_types.Unique[string](col)
}

// ScanIndex maps each distinct scan number to its rank (50, 60, 70 -> 0, 1, 2),
// used to pick categorical colours.
func ScanIndex(t *RawTable) (map[int64]int, error) {
	scans, err := UniqueInt64(t, "scan")
	if err != nil {
		return nil, err
	}
	res := make(map[int64]int, len(scans))
	for i, scan := range scans {
		res[scan] = i
	}
	return res, nil
}

// ToArrow converts the table into an arrow record. The caller releases it.
func (t *RawTable) ToArrow(mem memory.Allocator) (arrow.Record, error) {
	fields := make([]arrow.Field, len(t.columns))
	for i, col := range t.columns {
		fields[i] = arrow.Field{Name: col.GetName(), Type: col.ArrowDataType()}
	}
	builder := array.NewRecordBuilder(mem, arrow.NewSchema(fields, nil))
	defer builder.Release()
	for i, col := range t.columns {
		if err := col.WriteToBatch(builder.Field(i)); err != nil {
			return nil, err
		}
	}
	return builder.NewRecord(), nil
}
