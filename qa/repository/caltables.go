package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/localgroup-vla/qaplotter/qa/shared"
	"golang.org/x/sync/errgroup"
)

var errNoCalSource = errors.New("no calibration tables directory configured")

type calFile struct {
	name string
	id   int
}

// ReadCalTables reads every antenna or SPW export of a calibration table.
// For kinds exported as an amplitude and a phase table the number of files of
// both must match, otherwise a *shared.SchemaMismatchError is returned.
func (r *Reader) ReadCalTables(ctx context.Context, kind shared.CalKind) (*shared.CalCollection, error) {
	if r.caltables == nil {
		return nil, errNoCalSource
	}
	logger := r.logger.With("caltable", kind)
	found := make(map[shared.TableType][]calFile)
	for _, tt := range kind.TableTypes() {
		files, err := r.listCalFiles(ctx, tt)
		if err != nil {
			return nil, err
		}
		found[tt] = files
	}
	if amp, phase, ok := kind.Paired(); ok && len(found[amp]) != len(found[phase]) {
		return nil, &shared.SchemaMismatchError{
			Kind: kind, Amp: amp, Phase: phase,
			AmpCount: len(found[amp]), PhaseCount: len(found[phase]),
		}
	}

	res := shared.NewCalCollection(kind)
	for _, tt := range kind.TableTypes() {
		for _, f := range found[tt] {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			table, md, ok := r.readOne(ctx, r.caltables, f.name)
			if !ok {
				continue
			}
			res.Add(tt, f.id, table, md)
		}
	}
	if _, err := res.Vis(); err != nil {
		logger.Warn("calibration tables disagree on the observation", "error", err)
	}
	return res, nil
}

func (r *Reader) listCalFiles(ctx context.Context, tt shared.TableType) ([]calFile, error) {
	descs, err := r.caltables.Glob(ctx, tt.CalPattern())
	if err != nil {
		return nil, err
	}
	var res []calFile
	for _, d := range descs {
		parsed, err := shared.ParseCalFileName(d.Name)
		if err != nil {
			r.logger.Warn("skipping calibration export", "path", d.Name, "error", err)
			continue
		}
		if got, err := parsed.TableType(); err != nil || got != tt {
			r.logger.Warn("skipping calibration export", "path", d.Name, "expected", tt)
			continue
		}
		res = append(res, calFile{name: d.Name, id: parsed.ID})
	}
	return res, nil
}

func (r *Reader) ReadBandpassTables(ctx context.Context) (*shared.CalCollection, error) {
	return r.ReadCalTables(ctx, shared.Bandpass)
}

func (r *Reader) ReadDelayTables(ctx context.Context) (*shared.CalCollection, error) {
	return r.ReadCalTables(ctx, shared.DelayCal)
}

func (r *Reader) ReadBPInitialGainTables(ctx context.Context) (*shared.CalCollection, error) {
	return r.ReadCalTables(ctx, shared.BPInitialGain)
}

func (r *Reader) ReadPhaseShortGainTables(ctx context.Context) (*shared.CalCollection, error) {
	return r.ReadCalTables(ctx, shared.PhaseShortGainCal)
}

func (r *Reader) ReadAmpGainTimeTables(ctx context.Context) (*shared.CalCollection, error) {
	return r.ReadCalTables(ctx, shared.AmpGainCalTime)
}

func (r *Reader) ReadAmpGainFreqTables(ctx context.Context) (*shared.CalCollection, error) {
	return r.ReadCalTables(ctx, shared.AmpGainCalFreq)
}

func (r *Reader) ReadPhaseGainTables(ctx context.Context) (*shared.CalCollection, error) {
	return r.ReadCalTables(ctx, shared.PhaseGainCal)
}

// ReadAllCalTables reads every calibration table kind. A pairing mismatch in
// any of them fails the whole read.
func (r *Reader) ReadAllCalTables(ctx context.Context) (map[shared.CalKind]*shared.CalCollection, error) {
	res := make(map[shared.CalKind]*shared.CalCollection, len(shared.CalKinds))
	var mtx sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for _, kind := range shared.CalKinds {
		g.Go(func() error {
			c, err := r.ReadCalTables(gctx, kind)
			if err != nil {
				return err
			}
			mtx.Lock()
			res[kind] = c
			mtx.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
