package data_types

import (
	"strconv"
	"strings"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/go-faster/jx"
)

func newFloat64Column() *Column[float64] {
	return &Column[float64]{
		typeName:  DATA_TYPE_NAME_FLOAT64,
		arrowType: arrow.PrimitiveTypes.Float64,
		getBuilder: func(builder array.Builder) (IArrowAppender[float64], bool) {
			b, ok := builder.(*array.Float64Builder)
			return b, ok
		},
		parseStr: func(s string) (float64, error) {
			return strconv.ParseFloat(s, 64)
		},
		parseJson: func(d *jx.Decoder) (float64, error) {
			return d.Float64()
		},
		writeJson: func(e *jx.Encoder, v float64) {
			e.Float64(v)
		},
		formatStr: formatFloat,
	}
}

// formatFloat writes the shortest representation that parses back to v.
// Integral values keep a trailing ".0" so the column is re-inferred as float.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

func float64Builder(name string, data any, sizeAndCap ...int64) (IColumn, error) {
	return colBuilder(newFloat64Column, name, data, sizeAndCap...)
}
