// Package spwmap loads the pipeline's spectral window labels.
package spwmap

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Map labels spectral windows by id, e.g. 2 -> "EVLA_X#A0C0#2".
type Map map[int]string

func Load(path string) (Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read decodes a JSON object keyed by SPW id.
func Read(r io.Reader) (Map, error) {
	res := Map{}
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, fmt.Errorf("invalid spw map: %w", err)
	}
	return res, nil
}

// Label falls back to "spw <id>" for unknown windows.
func (m Map) Label(id int) string {
	if l, ok := m[id]; ok {
		return l
	}
	return fmt.Sprintf("spw %d", id)
}

func (m Map) IDs() []int {
	return slices.Sorted(maps.Keys(m))
}
