package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/localgroup-vla/qaplotter/qa/service"
	"github.com/localgroup-vla/qaplotter/qa/shared"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

var errNoFieldsSource = errors.New("no fields directory configured")

// ReadFieldDataTables collects every per-field table type of field. Table
// types without a readable, non-empty export are left out of the result.
func (r *Reader) ReadFieldDataTables(ctx context.Context, field string) (*shared.FieldCollection, error) {
	if r.fields == nil {
		return nil, errNoFieldsSource
	}
	logger := r.logger.With("field", field)
	res := shared.NewFieldCollection(field)
	merger := service.NewPartitionMerger(r.fields, r.tables, r.minBytes, logger)
	for _, tt := range shared.FieldTableTypes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		table, md, ok := r.readFieldTable(ctx, merger, field, tt)
		if !ok {
			logger.Debug("table type not available", "table", tt)
			continue
		}
		res.Tables[tt] = table
		res.Meta[tt] = md
	}
	if _, err := res.Vis(); err != nil {
		logger.Warn("field tables disagree on the observation", "error", err)
	}
	return res, nil
}

func (r *Reader) readFieldTable(ctx context.Context, merger *service.PartitionMerger,
	field string, tt shared.TableType) (*shared.RawTable, shared.Metadata, bool) {
	name := tt.FileName(field)
	_, err := r.fields.Stat(ctx, name)
	switch {
	case err == nil:
		return r.readOne(ctx, r.fields, name)
	case !isNotExist(err):
		r.logger.Warn("cannot stat export", "path", name, "error", err)
		return nil, nil, false
	}

	parts, err := r.fields.Glob(ctx, tt.ScanPattern(field))
	if err != nil {
		r.logger.Warn("cannot list scan partitions", "pattern", tt.ScanPattern(field), "error", err)
		return nil, nil, false
	}
	if len(parts) == 0 {
		return nil, nil, false
	}
	table, md, err := merger.Merge(ctx, parts)
	if err != nil {
		r.logger.Warn("cannot merge scan partitions", "table", tt, "error", err)
		return nil, nil, false
	}
	if table.Empty() {
		return nil, nil, false
	}
	return table, md, true
}

// ListFields returns the sorted names of the fields that have at least one
// export in the fields directory.
func (r *Reader) ListFields(ctx context.Context) ([]string, error) {
	if r.fields == nil {
		return nil, errNoFieldsSource
	}
	files, err := r.fields.Glob(ctx, "field_*.txt")
	if err != nil {
		return nil, err
	}
	var res []string
	for _, f := range files {
		parsed, err := shared.ParseFieldFileName(f.Name)
		if err != nil {
			r.logger.Debug("ignoring file", "path", f.Name, "error", err)
			continue
		}
		res = append(res, parsed.Field)
	}
	slices.Sort(res)
	return slices.Compact(res), nil
}

// ReadAllFields reads fields concurrently, at most r.workers at a time.
func (r *Reader) ReadAllFields(ctx context.Context, fields []string) (map[string]*shared.FieldCollection, error) {
	res := make(map[string]*shared.FieldCollection, len(fields))
	var mtx sync.Mutex
	sem := semaphore.NewWeighted(int64(r.workers))
	g, gctx := errgroup.WithContext(ctx)
	for _, field := range fields {
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			c, err := r.ReadFieldDataTables(gctx, field)
			if err != nil {
				return fmt.Errorf("field %s: %w", field, err)
			}
			mtx.Lock()
			res[field] = c
			mtx.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
