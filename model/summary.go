package model

type ColumnSummary struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type TableSummary struct {
	Type    string          `json:"type"`
	ID      *int            `json:"id,omitempty"`
	Rows    int64           `json:"rows"`
	Vis     string          `json:"vis"`
	Columns []ColumnSummary `json:"columns"`
	Spws    []int64         `json:"spws,omitempty"`
	Corrs   []string        `json:"corrs,omitempty"`
}

type FieldSummary struct {
	Field  string         `json:"field"`
	Kind   string         `json:"kind"`
	Vis    string         `json:"vis"`
	Tables []TableSummary `json:"tables"`
}

type CalSummary struct {
	Kind     string             `json:"kind"`
	Grouping string             `json:"grouping"`
	Vis      string             `json:"vis"`
	Pages    map[string][][]int `json:"pages"`
	Tables   []TableSummary     `json:"tables"`
}

// Manifest is written by the batch modes: every collection that was read.
type Manifest struct {
	Run       string         `json:"run"`
	Vis       string         `json:"vis"`
	ObsLog    string         `json:"obslog,omitempty"`
	Fields    []FieldSummary `json:"fields,omitempty"`
	CalTables []CalSummary   `json:"caltables,omitempty"`
}
