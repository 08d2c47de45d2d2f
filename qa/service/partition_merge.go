package service

import (
	"context"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/localgroup-vla/qaplotter/qa/parsers"
	"github.com/localgroup-vla/qaplotter/qa/shared"
)

// DefaultMinPartitionBytes is the size below which a scan partition is
// taken to be an export of zero rows.
const DefaultMinPartitionBytes = 1000

type PartitionMerger struct {
	src      Source
	reader   *parsers.TableReader
	minBytes int64
	logger   *slog.Logger
}

func NewPartitionMerger(src Source, reader *parsers.TableReader, minBytes int64, logger *slog.Logger) *PartitionMerger {
	if minBytes <= 0 {
		minBytes = DefaultMinPartitionBytes
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PartitionMerger{src: src, reader: reader, minBytes: minBytes, logger: logger}
}

// PlanMerge drops the degenerate partitions, keeping glob order.
func (m *PartitionMerger) PlanMerge(descs []FileDesc) []FileDesc {
	res := make([]FileDesc, 0, len(descs))
	for _, d := range descs {
		if d.Size < m.minBytes {
			m.logger.Debug("skipping degenerate partition",
				"path", d.Name, "size", humanize.Bytes(uint64(d.Size)),
				"min", humanize.Bytes(uint64(m.minBytes)))
			continue
		}
		res = append(res, d)
	}
	return res
}

// Merge reads the partitions that survive PlanMerge and stacks them in order.
// Unreadable partitions, empty ones and ones whose columns differ from the
// first partition are logged and left out. The metadata of the first
// partition that was read is returned.
func (m *PartitionMerger) Merge(ctx context.Context, descs []FileDesc) (*shared.RawTable, shared.Metadata, error) {
	var (
		parts []*shared.RawTable
		md    shared.Metadata
	)
	for _, d := range m.PlanMerge(descs) {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		table, tableMd, err := m.reader.ReadTable(ctx, m.src, d.Name)
		if err != nil {
			m.logger.Warn("skipping unreadable partition", "path", d.Name, "error", err)
			continue
		}
		if table.Empty() {
			continue
		}
		if len(parts) == 0 {
			parts, md = append(parts, table), tableMd
			continue
		}
		if table.SchemaID() != parts[0].SchemaID() {
			m.logger.Warn("skipping partition with different columns",
				"path", d.Name, "columns", table.ColumnNames(), "expected", parts[0].ColumnNames())
			continue
		}
		if vis := tableMd.Vis(); vis != md.Vis() {
			m.logger.Warn("partition belongs to a different observation",
				"path", d.Name, "vis", vis, "expected", md.Vis())
		}
		parts = append(parts, table)
	}
	if len(parts) == 1 {
		return parts[0], md, nil
	}
	res, err := shared.Concat(parts...)
	if err != nil {
		return nil, nil, err
	}
	return res, md, nil
}
