package parsers

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/go-faster/jx"
	"github.com/localgroup-vla/qaplotter/qa/data_types"
	"github.com/localgroup-vla/qaplotter/qa/shared"
)

// NDJSONParser reads the typed re-export written by NDJSONWriter. The first
// line is `{"meta":{...},"columns":[{"name":..,"type":..},...]}`, every
// following line is one row as a JSON array.
type NDJSONParser struct {
	opts Options
}

func (N *NDJSONParser) Parse(data []byte) (*shared.RawTable, shared.Metadata, error) {
	return N.ParseReader(bytes.NewReader(data))
}

func (N *NDJSONParser) ParseReader(r io.Reader) (*shared.RawTable, shared.Metadata, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, nil, err
		}
		return nil, nil, shared.ErrHeaderNotFound
	}
	md, cols, err := N.parseHeader(scanner.Bytes())
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", shared.ErrHeaderNotFound, err)
	}

	lineNo := 1
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if err := N.parseRow(line, cols); err != nil {
			return nil, md, &shared.BodyError{Line: lineNo, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, md, &shared.BodyError{Line: lineNo, Err: err}
	}
	table, err := shared.NewRawTable(cols...)
	if err != nil {
		return nil, md, &shared.BodyError{Line: lineNo, Err: err}
	}
	return table, md, nil
}

func (N *NDJSONParser) parseHeader(line []byte) (shared.Metadata, []data_types.IColumn, error) {
	md := shared.Metadata{}
	var cols []data_types.IColumn
	d := jx.DecodeBytes(line)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "meta":
			return d.Obj(func(d *jx.Decoder, key string) error {
				val, err := d.Str()
				if err != nil {
					return err
				}
				md[key] = val
				return nil
			})
		case "columns":
			return d.Arr(func(d *jx.Decoder) error {
				var name, typeName string
				err := d.Obj(func(d *jx.Decoder, key string) error {
					var err error
					switch key {
					case "name":
						name, err = d.Str()
					case "type":
						typeName, err = d.Str()
					default:
						err = d.Skip()
					}
					return err
				})
				if err != nil {
					return err
				}
				col, err := data_types.NewColumn(typeName, name)
				if err != nil {
					return err
				}
				cols = append(cols, col)
				return nil
			})
		}
		return d.Skip()
	})
	if err != nil {
		return nil, nil, err
	}
	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("no columns declared")
	}
	return md, cols, nil
}

func (N *NDJSONParser) parseRow(line []byte, cols []data_types.IColumn) error {
	i := 0
	err := jx.DecodeBytes(line).Arr(func(d *jx.Decoder) error {
		if i >= len(cols) {
			return fmt.Errorf("expected %d values", len(cols))
		}
		if err := cols[i].AppendFromJson(d); err != nil {
			return err
		}
		i++
		return nil
	})
	if err != nil {
		return err
	}
	if i != len(cols) {
		return fmt.Errorf("expected %d values, got %d", len(cols), i)
	}
	return nil
}

// NDJSONWriter writes a lossless, typed export of a table.
type NDJSONWriter struct{}

func (NDJSONWriter) Write(w io.Writer, t *shared.RawTable, md shared.Metadata) error {
	bw := bufio.NewWriter(w)
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("meta")
	e.ObjStart()
	for _, k := range md.Keys() {
		e.FieldStart(k)
		e.Str(md[k])
	}
	e.ObjEnd()
	e.FieldStart("columns")
	e.ArrStart()
	cols := t.Columns()
	for _, col := range cols {
		e.ObjStart()
		e.FieldStart("name")
		e.Str(col.GetName())
		e.FieldStart("type")
		e.Str(col.GetTypeName())
		e.ObjEnd()
	}
	e.ArrEnd()
	e.ObjEnd()
	if err := writeLine(bw, e.Bytes()); err != nil {
		return err
	}

	for row := int64(0); row < t.NumRows(); row++ {
		e.Reset()
		e.ArrStart()
		for _, col := range cols {
			col.WriteJson(&e, row)
		}
		e.ArrEnd()
		if err := writeLine(bw, e.Bytes()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeLine(w *bufio.Writer, line []byte) error {
	if _, err := w.Write(line); err != nil {
		return err
	}
	return w.WriteByte('\n')
}

var _ = func() int {
	RegisterParser(".ndjson", func(opts Options) IParser {
		return &NDJSONParser{opts: opts}
	})
	RegisterWriter(".ndjson", func() IWriter {
		return NDJSONWriter{}
	})
	return 0
}()
