package config

import (
	"fmt"
	"os"

	"github.com/localgroup-vla/qaplotter/model"
	"gopkg.in/yaml.v3"
)

// LoadAliases reads the column and metadata alias file. Every alias must
// name a canonical key.
func LoadAliases(filename string) (*model.AliasConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var aliases model.AliasConfig
	if err := yaml.Unmarshal(data, &aliases); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	for section, m := range map[string]map[string]string{"columns": aliases.Columns, "metadata": aliases.Metadata} {
		for alias, canonical := range m {
			if alias == "" || canonical == "" {
				return nil, fmt.Errorf("%s: %s alias %q -> %q: empty name", filename, section, alias, canonical)
			}
		}
	}
	return &aliases, nil
}
