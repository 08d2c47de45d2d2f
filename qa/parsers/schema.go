package parsers

import "github.com/localgroup-vla/qaplotter/qa/data_types"

// KnownColumns are the plotms export columns with a fixed type. Columns not
// listed here get their type inferred from the data.
var KnownColumns = map[string]string{
	"x":    data_types.DATA_TYPE_NAME_FLOAT64,
	"y":    data_types.DATA_TYPE_NAME_FLOAT64,
	"time": data_types.DATA_TYPE_NAME_FLOAT64,
	"freq": data_types.DATA_TYPE_NAME_FLOAT64,

	"chan":   data_types.DATA_TYPE_NAME_INT64,
	"scan":   data_types.DATA_TYPE_NAME_INT64,
	"field":  data_types.DATA_TYPE_NAME_INT64,
	"spw":    data_types.DATA_TYPE_NAME_INT64,
	"ant1":   data_types.DATA_TYPE_NAME_INT64,
	"ant2":   data_types.DATA_TYPE_NAME_INT64,
	"obs":    data_types.DATA_TYPE_NAME_INT64,
	"intent": data_types.DATA_TYPE_NAME_INT64,

	"corr":     data_types.DATA_TYPE_NAME_STRING,
	"poln":     data_types.DATA_TYPE_NAME_STRING,
	"ant1name": data_types.DATA_TYPE_NAME_STRING,
	"ant2name": data_types.DATA_TYPE_NAME_STRING,
}
