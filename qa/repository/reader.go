package repository

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/google/uuid"
	"github.com/localgroup-vla/qaplotter/qa/parsers"
	"github.com/localgroup-vla/qaplotter/qa/service"
	"github.com/localgroup-vla/qaplotter/qa/shared"
)

const DefaultWorkers = 4

// Reader assembles exports from a fields directory and a calibration tables
// directory into collections.
type Reader struct {
	fields    service.Source
	caltables service.Source

	aliases        *shared.AliasTable
	minBytes       int64
	maxHeaderLines int
	workers        int
	logger         *slog.Logger

	tables *parsers.TableReader
}

type Option func(r *Reader)

func WithAliases(a *shared.AliasTable) Option {
	return func(r *Reader) { r.aliases = a }
}

func WithMinPartitionBytes(n int64) Option {
	return func(r *Reader) { r.minBytes = n }
}

func WithMaxHeaderLines(n int) Option {
	return func(r *Reader) { r.maxHeaderLines = n }
}

func WithWorkers(n int) Option {
	return func(r *Reader) { r.workers = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Reader) { r.logger = l }
}

// NewReader creates a reader. Either source may be nil when only the other
// kind of table is read.
func NewReader(fields, caltables service.Source, opts ...Option) *Reader {
	r := &Reader{
		fields:    fields,
		caltables: caltables,
		minBytes:  service.DefaultMinPartitionBytes,
		workers:   DefaultWorkers,
		logger:    slog.Default(),
	}
	for _, o := range opts {
		o(r)
	}
	if r.workers <= 0 {
		r.workers = DefaultWorkers
	}
	r.logger = r.logger.With("run", uuid.New().String())
	r.tables = parsers.NewTableReader(r.aliases, parsers.Options{
		MaxHeaderLines: r.maxHeaderLines,
		Logger:         r.logger,
	})
	return r
}

func (r *Reader) Logger() *slog.Logger {
	return r.logger
}

// readOne reads a single export, logging and dropping files that cannot be
// read or hold no rows.
func (r *Reader) readOne(ctx context.Context, src service.Source, name string) (*shared.RawTable, shared.Metadata, bool) {
	table, md, err := r.tables.ReadTable(ctx, src, name)
	if err != nil {
		r.logger.Warn("skipping unreadable export", "source", src.String(), "path", name, "error", err)
		return nil, nil, false
	}
	if table.Empty() {
		r.logger.Debug("export has no rows", "source", src.String(), "path", name)
		return nil, nil, false
	}
	return table, md, true
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
