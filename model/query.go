package model

// ResultColumn names one column of a SQL result over the QA tables.
type ResultColumn struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type QueryStatistics struct {
	Elapsed  float64 `json:"elapsed"`
	RowsRead int     `json:"rows_read"`
}

// QueryResult is the JSON rendering of a query, ClickHouse JSONCompact style.
type QueryResult struct {
	Meta       []ResultColumn  `json:"meta"`
	Data       [][]any         `json:"data"`
	Rows       int             `json:"rows"`
	Statistics QueryStatistics `json:"statistics"`
}
