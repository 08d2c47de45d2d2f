package repository

import (
	"context"
	"sync"

	"github.com/localgroup-vla/qaplotter/qa/shared"
)

// Registry caches the collections read by a Reader. Collections are shared
// between callers and must not be modified.
type Registry struct {
	reader *Reader

	mtx    sync.Mutex
	fields map[string]*shared.FieldCollection
	cals   map[shared.CalKind]*shared.CalCollection
	names  []string
}

func NewRegistry(reader *Reader) *Registry {
	return &Registry{
		reader: reader,
		fields: make(map[string]*shared.FieldCollection),
		cals:   make(map[shared.CalKind]*shared.CalCollection),
	}
}

func (r *Registry) Reader() *Reader {
	return r.reader
}

func (r *Registry) Fields(ctx context.Context) ([]string, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if r.names != nil {
		return r.names, nil
	}
	names, err := r.reader.ListFields(ctx)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	r.names = names
	return names, nil
}

func (r *Registry) Field(ctx context.Context, field string) (*shared.FieldCollection, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if c, ok := r.fields[field]; ok {
		return c, nil
	}
	c, err := r.reader.ReadFieldDataTables(ctx, field)
	if err != nil {
		return nil, err
	}
	r.fields[field] = c
	return c, nil
}

func (r *Registry) CalTables(ctx context.Context, kind shared.CalKind) (*shared.CalCollection, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if c, ok := r.cals[kind]; ok {
		return c, nil
	}
	c, err := r.reader.ReadCalTables(ctx, kind)
	if err != nil {
		return nil, err
	}
	r.cals[kind] = c
	return c, nil
}

// Reset drops every cached collection so the next request rereads the exports.
func (r *Registry) Reset() {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.fields = make(map[string]*shared.FieldCollection)
	r.cals = make(map[shared.CalKind]*shared.CalCollection)
	r.names = nil
}
