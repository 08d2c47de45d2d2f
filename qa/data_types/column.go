package data_types

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/go-faster/jx"
	"golang.org/x/exp/constraints"
)

type IArrowAppender[T constraints.Ordered] interface {
	AppendValues(values []T, valid []bool)
}

var _ IColumn = &Column[int64]{}

type Column[T constraints.Ordered] struct {
	data       []T
	name       string
	typeName   string
	arrowType  arrow.DataType
	getBuilder func(builder array.Builder) (IArrowAppender[T], bool)
	parseStr   func(s string) (T, error)
	parseJson  func(d *jx.Decoder) (T, error)
	writeJson  func(e *jx.Encoder, v T)
	formatStr  func(v T) string
	create     func() *Column[T]
}

func colBuilder[T constraints.Ordered](createColumn func() *Column[T], name string, data any,
	sizeAndCap ...int64) (IColumn, error) {
	col := createColumn()
	col.name = name
	col.create = createColumn
	if data == nil {
		col.InitializeData(sizeAndCap...)
		return col, nil
	}
	err := col.ValidateData(data)
	if err != nil {
		return nil, err
	}
	col.data = data.([]T)
	return col, nil
}

func (c *Column[T]) InitializeData(sizeAndCap ...int64) {
	var capacity int64 = 64
	if len(sizeAndCap) > 0 {
		capacity = sizeAndCap[0]
	}
	if len(sizeAndCap) > 1 && sizeAndCap[1] > capacity {
		capacity = sizeAndCap[1]
	}
	c.data = make([]T, 0, capacity)
}

func (c *Column[T]) GetData() any {
	return c.data
}

func (c *Column[T]) GetMinMax() (any, any) {
	if c.GetLength() == 0 {
		return nil, nil
	}
	return slices.Min(c.data), slices.Max(c.data)
}

func (c *Column[T]) GetLength() int64 {
	return int64(len(c.data))
}

func (c *Column[T]) ValidateData(data any) error {
	if _, ok := data.([]T); !ok {
		return fmt.Errorf("invalid data type for column %s: expected %s, got %T", c.name, c.typeName, data)
	}
	return nil
}

func (c *Column[T]) ArrowDataType() arrow.DataType {
	return c.arrowType
}

func (c *Column[T]) Append(data any) error {
	err := c.ValidateData(data)
	if err != nil {
		return err
	}
	c.data = append(c.data, data.([]T)...)
	return nil
}

func (c *Column[T]) AppendOne(val any) error {
	if v, ok := val.(T); ok {
		c.data = append(c.data, v)
		return nil
	}
	return fmt.Errorf("invalid data type for column %s: expected %s, got %T", c.name, c.typeName, val)
}

func (c *Column[T]) AppendColumn(other IColumn) error {
	if other.GetTypeName() != c.typeName {
		return fmt.Errorf("column `%s` type mismatch: expected %s, got %s",
			c.name, c.typeName, other.GetTypeName())
	}
	return c.Append(other.GetData())
}

func (c *Column[T]) AppendFromJson(dec *jx.Decoder) error {
	val, err := c.parseJson(dec)
	if err != nil {
		return fmt.Errorf("column %s: %w", c.name, err)
	}
	c.data = append(c.data, val)
	return nil
}

func (c *Column[T]) WriteJson(enc *jx.Encoder, i int64) {
	c.writeJson(enc, c.data[i])
}

func (c *Column[T]) FormatVal(i int64) string {
	return c.formatStr(c.data[i])
}

func (c *Column[T]) WriteToBatch(batch array.Builder) error {
	appender, ok := c.getBuilder(batch)
	if !ok {
		return fmt.Errorf("column %s: unexpected arrow builder %T", c.name, batch)
	}
	appender.AppendValues(c.data, nil)
	return nil
}

func (c *Column[T]) GetName() string {
	return c.name
}

func (c *Column[T]) SetName(name string) {
	c.name = name
}

func (c *Column[T]) GetTypeName() string {
	return c.typeName
}

func (c *Column[T]) GetVal(i int64) any {
	return c.data[i]
}

func (c *Column[T]) ParseFromStr(s string) error {
	val, err := c.parseStr(s)
	if err != nil {
		return err
	}
	c.data = append(c.data, val)
	return nil
}

func (c *Column[T]) Filter(mask []bool) (IColumn, error) {
	if len(mask) != len(c.data) {
		return nil, fmt.Errorf("invalid mask length for column %s: %d != %d", c.name, len(mask), len(c.data))
	}
	res := c.empty()
	for i, keep := range mask {
		if keep {
			res.data = append(res.data, c.data[i])
		}
	}
	return res, nil
}

// Take builds a column from the rows at idx, in idx order.
func (c *Column[T]) Take(idx []int32) (IColumn, error) {
	res := c.empty()
	for _, i := range idx {
		if int(i) >= len(c.data) || i < 0 {
			return nil, fmt.Errorf("row %d out of range for column %s", i, c.name)
		}
		res.data = append(res.data, c.data[i])
	}
	return res, nil
}

// Compare orders rows i and j of the column.
func (c *Column[T]) Compare(i, j int32) int {
	return cmp.Compare(c.data[i], c.data[j])
}

func (c *Column[T]) Clone() IColumn {
	res := c.empty()
	res.data = append(res.data, c.data...)
	return res
}

func (c *Column[T]) empty() *Column[T] {
	res := c.create()
	res.name = c.name
	res.create = c.create
	res.data = make([]T, 0, len(c.data))
	return res
}

// Unique returns the sorted distinct values of a column.
func Unique[T constraints.Ordered](col IColumn) ([]T, error) {
	data, ok := col.GetData().([]T)
	if !ok {
		return nil, fmt.Errorf("column %s is %s", col.GetName(), col.GetTypeName())
	}
	res := slices.Clone(data)
	slices.Sort(res)
	return slices.Compact(res), nil
}
