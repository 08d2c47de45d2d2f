package shared

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/localgroup-vla/qaplotter/model"
)

// AliasTable maps names used by other exporter versions to canonical ones.
type AliasTable struct {
	Columns  map[string]string
	Metadata map[string]string
}

func DefaultAliases() *AliasTable {
	return &AliasTable{
		Columns:  map[string]string{"poln": "corr"},
		Metadata: map[string]string{MetaKeyFile: MetaKeyVis},
	}
}

// NewAliasTable extends the default aliases with configured ones.
func NewAliasTable(cfg *model.AliasConfig) *AliasTable {
	res := DefaultAliases()
	if cfg == nil {
		return res
	}
	maps.Copy(res.Columns, cfg.Columns)
	maps.Copy(res.Metadata, cfg.Metadata)
	return res
}

// NormalizeMetadata returns a copy of md with every alias key renamed to its
// canonical key. When both are present the canonical value is kept. Applied
// aliases are logged to logger, slog.Default() when nil.
func (a *AliasTable) NormalizeMetadata(md Metadata, logger *slog.Logger) Metadata {
	if logger == nil {
		logger = slog.Default()
	}
	res := md.Clone()
	for _, alias := range slices.Sorted(maps.Keys(a.Metadata)) {
		canonical := a.Metadata[alias]
		val, ok := res[alias]
		if !ok || alias == canonical {
			continue
		}
		delete(res, alias)
		if _, exists := res[canonical]; exists {
			logger.Warn("dropping metadata alias, canonical key present",
				"alias", alias, "canonical", canonical, "value", val)
			continue
		}
		res[canonical] = val
		logger.Info("applied metadata alias", "from", alias, "to", canonical)
	}
	return res
}

// NormalizeColumns renames alias columns of t in place.
func (a *AliasTable) NormalizeColumns(t *RawTable, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	for _, alias := range slices.Sorted(maps.Keys(a.Columns)) {
		canonical := a.Columns[alias]
		if !t.HasColumn(alias) || alias == canonical {
			continue
		}
		if t.HasColumn(canonical) {
			logger.Warn("dropping alias column, canonical column present",
				"alias", alias, "canonical", canonical)
			if err := t.DropColumn(alias); err != nil {
				return err
			}
			continue
		}
		if err := t.RenameColumn(alias, canonical); err != nil {
			return err
		}
		logger.Info("applied column alias", "from", alias, "to", canonical)
	}
	return nil
}
