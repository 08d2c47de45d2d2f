package shared

import (
	"maps"
	"slices"
)

const (
	MetaKeyVis  = "vis"
	MetaKeyFile = "file"
)

// Metadata holds the `key: value` pairs of an export's comment header.
type Metadata map[string]string

// Get returns the value of key, or "" when absent.
func (m Metadata) Get(key string) string {
	return m[key]
}

// Vis names the observation (measurement set) the table was exported from.
func (m Metadata) Vis() string {
	return m.Get(MetaKeyVis)
}

func (m Metadata) Clone() Metadata {
	if m == nil {
		return Metadata{}
	}
	return maps.Clone(m)
}

func (m Metadata) Keys() []string {
	return slices.Sorted(maps.Keys(m))
}
