package shared

import (
	"fmt"
	"maps"
	"slices"
)

type FieldKind int

const (
	Partial FieldKind = iota
	Target
	Calibrator
)

func (k FieldKind) String() string {
	switch k {
	case Target:
		return "target"
	case Calibrator:
		return "calibrator"
	}
	return "partial"
}

// FieldCollection holds the per-field tables of one field, keyed by table type.
// Table types without data are absent.
type FieldCollection struct {
	Field  string
	Tables map[TableType]*RawTable
	Meta   map[TableType]Metadata
}

func NewFieldCollection(field string) *FieldCollection {
	return &FieldCollection{
		Field:  field,
		Tables: make(map[TableType]*RawTable),
		Meta:   make(map[TableType]Metadata),
	}
}

func (c *FieldCollection) Get(tt TableType) (*RawTable, bool) {
	t, ok := c.Tables[tt]
	return t, ok
}

func (c *FieldCollection) Types() []TableType {
	return slices.Sorted(maps.Keys(c.Tables))
}

// Kind tells targets (amplitude tables only) from calibrators (all tables).
func (c *FieldCollection) Kind() FieldKind {
	for _, tt := range []TableType{AmpChan, AmpTime, AmpUVDist} {
		if _, ok := c.Tables[tt]; !ok {
			return Partial
		}
	}
	switch len(c.Tables) {
	case len(FieldTableTypes):
		return Calibrator
	case 3:
		return Target
	}
	return Partial
}

func (c *FieldCollection) Vis() (string, error) {
	return commonVis(slices.Collect(maps.Values(c.Meta)))
}

// CalCollection holds calibration tables keyed by table type, then by antenna
// or SPW id.
type CalCollection struct {
	Kind   CalKind
	Tables map[TableType]map[int]*RawTable
	Meta   map[TableType]map[int]Metadata
}

func NewCalCollection(kind CalKind) *CalCollection {
	return &CalCollection{
		Kind:   kind,
		Tables: make(map[TableType]map[int]*RawTable),
		Meta:   make(map[TableType]map[int]Metadata),
	}
}

func (c *CalCollection) Add(tt TableType, id int, t *RawTable, md Metadata) {
	if c.Tables[tt] == nil {
		c.Tables[tt] = make(map[int]*RawTable)
		c.Meta[tt] = make(map[int]Metadata)
	}
	c.Tables[tt][id] = t
	c.Meta[tt][id] = md
}

// IDs returns the sorted antenna or SPW ids present for tt.
func (c *CalCollection) IDs(tt TableType) []int {
	return slices.Sorted(maps.Keys(c.Tables[tt]))
}

// Pages splits the ids of tt into groups of at most n, one group per figure.
func (c *CalCollection) Pages(tt TableType, n int) [][]int {
	if n <= 0 {
		n = 1
	}
	return slices.Collect(slices.Chunk(c.IDs(tt), n))
}

func (c *CalCollection) Types() []TableType {
	return slices.Sorted(maps.Keys(c.Tables))
}

func (c *CalCollection) Vis() (string, error) {
	var all []Metadata
	for _, byID := range c.Meta {
		for _, md := range byID {
			all = append(all, md)
		}
	}
	return commonVis(all)
}

func commonVis(mds []Metadata) (string, error) {
	var seen []string
	for _, md := range mds {
		if vis := md.Vis(); vis != "" && !slices.Contains(seen, vis) {
			seen = append(seen, vis)
		}
	}
	slices.Sort(seen)
	switch len(seen) {
	case 0:
		return "", nil
	case 1:
		return seen[0], nil
	}
	return seen[0], fmt.Errorf("%w: %v", ErrVisMismatch, seen)
}
