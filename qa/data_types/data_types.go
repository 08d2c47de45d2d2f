package data_types

import (
	"fmt"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/go-faster/jx"
)

const DATA_TYPE_NAME_INT64 = "BIGINT"
const DATA_TYPE_NAME_FLOAT64 = "DOUBLE"
const DATA_TYPE_NAME_STRING = "VARCHAR"

// DataTypes maps type names (ours and the usual SQL spellings) to column builders.
var DataTypes = map[string]ColumnBuilder{
	"Int64":  int64Builder,
	"BIGINT": int64Builder,
	"INT8":   int64Builder,
	"LONG":   int64Builder,
	"int":    int64Builder,

	"Float64": float64Builder,
	"DOUBLE":  float64Builder,
	"FLOAT8":  float64Builder,
	"float":   float64Builder,

	"String":  strBuilder,
	"STRING":  strBuilder,
	"VARCHAR": strBuilder,
	"TEXT":    strBuilder,
	"str":     strBuilder,
}

type IColumn interface {
	GetName() string
	SetName(name string)
	GetTypeName() string
	GetLength() int64
	GetVal(i int64) any
	GetData() any
	GetMinMax() (any, any)
	ValidateData(data any) error
	Append(data any) error
	AppendOne(val any) error
	AppendColumn(other IColumn) error
	ParseFromStr(s string) error
	AppendFromJson(dec *jx.Decoder) error
	WriteJson(enc *jx.Encoder, i int64)
	FormatVal(i int64) string
	ArrowDataType() arrow.DataType
	WriteToBatch(batch array.Builder) error
	Filter(mask []bool) (IColumn, error)
	Take(idx []int32) (IColumn, error)
	Compare(i, j int32) int
	Clone() IColumn
}

type ColumnBuilder func(name string, data any, sizeAndCap ...int64) (IColumn, error)

// NewColumn creates an empty column of the named type.
func NewColumn(typeName string, name string) (IColumn, error) {
	builder, ok := DataTypes[typeName]
	if !ok {
		return nil, fmt.Errorf("unsupported data type: %s", typeName)
	}
	return builder(name, nil)
}

func WrapToColumn(name string, data any) (IColumn, error) {
	switch data.(type) {
	case []int64:
		return int64Builder(name, data)
	case []float64:
		return float64Builder(name, data)
	case []string:
		return strBuilder(name, data)
	}
	return nil, fmt.Errorf("unsupported data type: %T", data)
}
