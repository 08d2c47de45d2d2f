package data_types

import (
	"fmt"
	"strconv"
)

// ParseColumn builds a column of the named type from raw tokens.
func ParseColumn(typeName string, name string, tokens []string) (IColumn, error) {
	builder, ok := DataTypes[typeName]
	if !ok {
		return nil, fmt.Errorf("unsupported data type: %s", typeName)
	}
	col, err := builder(name, nil, int64(len(tokens)))
	if err != nil {
		return nil, err
	}
	for i, tok := range tokens {
		if err := col.ParseFromStr(tok); err != nil {
			return nil, fmt.Errorf("column %s row %d: invalid %s value %q", name, i, col.GetTypeName(), tok)
		}
	}
	return col, nil
}

// InferColumn picks the narrowest type every token parses as:
// BIGINT, then DOUBLE, falling back to VARCHAR.
func InferColumn(name string, tokens []string) (IColumn, error) {
	return ParseColumn(InferType(tokens), name, tokens)
}

func InferType(tokens []string) string {
	isInt, isFloat := len(tokens) > 0, len(tokens) > 0
	for _, tok := range tokens {
		if isInt {
			if _, err := strconv.ParseInt(tok, 10, 64); err != nil {
				isInt = false
			}
		}
		if !isInt {
			if _, err := strconv.ParseFloat(tok, 64); err != nil {
				isFloat = false
				break
			}
		}
	}
	switch {
	case isInt:
		return DATA_TYPE_NAME_INT64
	case isFloat:
		return DATA_TYPE_NAME_FLOAT64
	}
	return DATA_TYPE_NAME_STRING
}
