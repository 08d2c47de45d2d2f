package handlers

import (
	"github.com/localgroup-vla/qaplotter/model"
	"github.com/localgroup-vla/qaplotter/qa/shared"
)

// Figures group this many antennas or spectral windows.
const (
	AntennasPerPage = 8
	SpwsPerPage     = 4
)

func SummarizeTable(tt shared.TableType, t *shared.RawTable, md shared.Metadata) model.TableSummary {
	res := model.TableSummary{
		Type: tt.String(),
		Rows: t.NumRows(),
		Vis:  md.Vis(),
	}
	for _, col := range t.Columns() {
		res.Columns = append(res.Columns, model.ColumnSummary{Name: col.GetName(), Type: col.GetTypeName()})
	}
	if spws, err := shared.UniqueInt64(t, "spw"); err == nil {
		res.Spws = spws
	}
	if corrs, err := shared.UniqueString(t, "corr"); err == nil {
		res.Corrs = corrs
	}
	return res
}

func SummarizeField(c *shared.FieldCollection) model.FieldSummary {
	vis, _ := c.Vis()
	res := model.FieldSummary{
		Field:  c.Field,
		Kind:   c.Kind().String(),
		Vis:    vis,
		Tables: []model.TableSummary{},
	}
	for _, tt := range c.Types() {
		res.Tables = append(res.Tables, SummarizeTable(tt, c.Tables[tt], c.Meta[tt]))
	}
	return res
}

func SummarizeCal(c *shared.CalCollection) model.CalSummary {
	vis, _ := c.Vis()
	res := model.CalSummary{
		Kind:   c.Kind.String(),
		Vis:    vis,
		Pages:  map[string][][]int{},
		Tables: []model.TableSummary{},
	}
	types := c.Kind.TableTypes()
	res.Grouping = types[0].Grouping().String()
	for _, tt := range c.Types() {
		perPage := AntennasPerPage
		if tt.Grouping() == shared.BySPW {
			perPage = SpwsPerPage
		}
		res.Pages[tt.String()] = c.Pages(tt, perPage)
		for _, id := range c.IDs(tt) {
			s := SummarizeTable(tt, c.Tables[tt][id], c.Meta[tt][id])
			s.ID = &id
			res.Tables = append(res.Tables, s)
		}
	}
	return res
}
