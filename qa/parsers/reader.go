package parsers

import (
	"context"
	"errors"
	"io"

	"github.com/localgroup-vla/qaplotter/qa/shared"
)

// Opener is the part of a file source the reader needs.
type Opener interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// TableReader reads single exports and applies the alias table to them.
type TableReader struct {
	opts    Options
	aliases *shared.AliasTable
}

func NewTableReader(aliases *shared.AliasTable, opts Options) *TableReader {
	if aliases == nil {
		aliases = shared.DefaultAliases()
	}
	return &TableReader{opts: opts.withDefaults(), aliases: aliases}
}

// ReadTable reads one export from src. A file that cannot be opened or has
// no header fails with *shared.ParseError. A file whose rows are malformed
// is logged and read as an empty table with the metadata found so far.
func (r *TableReader) ReadTable(ctx context.Context, src Opener, name string) (*shared.RawTable, shared.Metadata, error) {
	table, md, err := r.readTable(ctx, src, name)
	switch {
	case err != nil:
		tablesRead.WithLabelValues("error").Inc()
	case !table.Empty():
		tablesRead.WithLabelValues("ok").Inc()
		rowsRead.Add(float64(table.NumRows()))
	}
	return table, md, err
}

func (r *TableReader) readTable(ctx context.Context, src Opener, name string) (*shared.RawTable, shared.Metadata, error) {
	parser, err := GetParser(name, r.opts)
	if err != nil {
		return nil, nil, &shared.ParseError{Path: name, Err: err}
	}
	f, err := src.Open(ctx, name)
	if err != nil {
		return nil, nil, &shared.ParseError{Path: name, Err: err}
	}
	defer f.Close()

	table, md, err := parser.ParseReader(f)
	var bodyErr *shared.BodyError
	switch {
	case errors.As(err, &bodyErr):
		bodyErr.Path = name
		r.opts.Logger.Warn("could not read table body, using an empty table",
			"path", name, "line", bodyErr.Line, "error", bodyErr.Err)
		tablesRead.WithLabelValues("soft_fail").Inc()
		table = shared.EmptyTable()
	case err != nil:
		return nil, nil, &shared.ParseError{Path: name, Err: err}
	}

	logger := r.opts.Logger.With("path", name)
	md = r.aliases.NormalizeMetadata(md, logger)
	if err := r.aliases.NormalizeColumns(table, logger); err != nil {
		return nil, nil, &shared.ParseError{Path: name, Err: err}
	}
	return table, md, nil
}
