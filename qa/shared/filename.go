package shared

import (
	"fmt"
	"path"
	"strconv"
	"strings"
)

// FieldFileName is a parsed `field_<name>_<tag>[.scan_<n>].txt`.
type FieldFileName struct {
	Field string
	Type  TableType
	// Scan is the partition number, -1 when the table is not split by scan.
	Scan int
}

func ParseFieldFileName(name string) (FieldFileName, error) {
	res := FieldFileName{Scan: -1}
	base := path.Base(name)
	rest, ok := strings.CutPrefix(base, "field_")
	if !ok {
		return res, fmt.Errorf("%s: missing field_ prefix", base)
	}
	rest, ok = strings.CutSuffix(rest, ".txt")
	if !ok {
		return res, fmt.Errorf("%s: not a .txt export", base)
	}
	if i := strings.LastIndex(rest, ".scan_"); i >= 0 {
		scan, err := strconv.Atoi(rest[i+len(".scan_"):])
		if err != nil || scan < 0 {
			return res, fmt.Errorf("%s: invalid scan partition %q", base, rest[i+len(".scan_"):])
		}
		res.Scan = scan
		rest = rest[:i]
	}
	for _, tt := range FieldTableTypes {
		field, ok := strings.CutSuffix(rest, "_"+tt.String())
		if ok && field != "" {
			res.Field = field
			res.Type = tt
			return res, nil
		}
	}
	return res, fmt.Errorf("%s: unknown field table type", base)
}

// CalFileName is a parsed `<prefix>_<calprefix>_<axis>_<quantity>_<selector><id>.txt`.
type CalFileName struct {
	Prefix    string
	CalPrefix string
	Axis      string
	Quantity  string
	Grouping  Grouping
	ID        int
}

func ParseCalFileName(name string) (CalFileName, error) {
	var res CalFileName
	base := path.Base(name)
	stem, ok := strings.CutSuffix(base, ".txt")
	if !ok {
		return res, fmt.Errorf("%s: not a .txt export", base)
	}
	parts := strings.Split(stem, "_")
	n := len(parts)
	if n < 5 {
		return res, fmt.Errorf("%s: expected <prefix>_<cal>_<axis>_<quantity>_<ant|spw><id>", base)
	}
	last := parts[n-1]
	switch {
	case strings.HasPrefix(last, "ant"):
		res.Grouping = ByAntenna
	case strings.HasPrefix(last, "spw"):
		res.Grouping = BySPW
	default:
		return res, fmt.Errorf("%s: selector %q is neither ant nor spw", base, last)
	}
	id, err := strconv.Atoi(last[3:])
	if err != nil || id < 0 {
		return res, fmt.Errorf("%s: invalid %s id %q", base, res.Grouping, last[3:])
	}
	res.ID = id
	res.Quantity = parts[n-2]
	res.Axis = parts[n-3]
	res.CalPrefix = parts[n-4]
	res.Prefix = strings.Join(parts[:n-4], "_")
	return res, nil
}

// TableType resolves the calibration table type the file belongs to.
func (c CalFileName) TableType() (TableType, error) {
	for tt := BandpassAmp; tt.valid(); tt++ {
		if tt.matchesCal(c) {
			return tt, nil
		}
	}
	return 0, fmt.Errorf("no calibration table type for %s_%s_%s", c.CalPrefix, c.Axis, c.Quantity)
}
