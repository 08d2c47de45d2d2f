package parsers

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/localgroup-vla/qaplotter/qa/data_types"
	"github.com/localgroup-vla/qaplotter/qa/shared"
)

const (
	HeaderSentinel = "From plot 0"
	metaDelimiter  = ": "
	maxLineSize    = 4 * 1024 * 1024
)

// CasaTxtParser reads plotms text exports: `# key: value` metadata lines up
// to the sentinel, a column-name line, a units line, then whitespace
// separated rows.
type CasaTxtParser struct {
	opts  Options
	units []string
}

func (p *CasaTxtParser) Parse(data []byte) (*shared.RawTable, shared.Metadata, error) {
	return p.ParseReader(bytes.NewReader(data))
}

func (p *CasaTxtParser) ParseReader(r io.Reader) (*shared.RawTable, shared.Metadata, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	md, lineNo, err := p.readHeader(scanner)
	if err != nil {
		return nil, nil, err
	}
	names, lineNo, err := p.nextHeaderLine(scanner, lineNo)
	if err != nil {
		return nil, md, &shared.BodyError{Line: lineNo, Err: fmt.Errorf("column names: %w", err)}
	}
	p.units, lineNo, err = p.nextHeaderLine(scanner, lineNo)
	if err != nil {
		return nil, md, &shared.BodyError{Line: lineNo, Err: fmt.Errorf("column units: %w", err)}
	}
	table, err := p.readBody(scanner, names, lineNo)
	if err != nil {
		return nil, md, err
	}
	return table, md, nil
}

// Units returns the units line of the last parsed export.
func (p *CasaTxtParser) Units() []string {
	return p.units
}

func (p *CasaTxtParser) readHeader(scanner *bufio.Scanner) (shared.Metadata, int, error) {
	md := shared.Metadata{}
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.Contains(line, HeaderSentinel) {
			return md, lineNo, nil
		}
		if lineNo > p.opts.MaxHeaderLines {
			return nil, lineNo, fmt.Errorf("%w within %d lines", shared.ErrHeaderNotFound, p.opts.MaxHeaderLines)
		}
		p.parseMetaLine(md, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, lineNo, err
	}
	return nil, lineNo, shared.ErrHeaderNotFound
}

// parseMetaLine splits `# k1: v1: k2: v2` into pairs. A trailing unpaired
// field belongs to the last value.
func (p *CasaTxtParser) parseMetaLine(md shared.Metadata, line string) {
	line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "#"))
	if line == "" {
		return
	}
	fields := strings.Split(line, metaDelimiter)
	if len(fields) < 2 {
		p.opts.Logger.Debug("ignoring metadata line without delimiter", "line", line)
		return
	}
	var key string
	for i := 0; i+1 < len(fields); i += 2 {
		key = strings.TrimSpace(fields[i])
		md[key] = strings.TrimSpace(fields[i+1])
	}
	if len(fields)%2 == 1 {
		md[key] += metaDelimiter + strings.TrimSpace(fields[len(fields)-1])
	}
}

func (p *CasaTxtParser) nextHeaderLine(scanner *bufio.Scanner, lineNo int) ([]string, int, error) {
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(strings.TrimPrefix(strings.TrimSpace(scanner.Text()), "#"))
		if len(fields) > 0 {
			return fields, lineNo, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, lineNo, err
	}
	return nil, lineNo, io.ErrUnexpectedEOF
}

func (p *CasaTxtParser) readBody(scanner *bufio.Scanner, names []string, lineNo int) (*shared.RawTable, error) {
	tokens := make([][]string, len(names))
	var lines []int
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != len(names) {
			return nil, &shared.BodyError{Line: lineNo,
				Err: fmt.Errorf("expected %d columns, got %d", len(names), len(fields))}
		}
		for i, f := range fields {
			tokens[i] = append(tokens[i], f)
		}
		lines = append(lines, lineNo)
	}
	if err := scanner.Err(); err != nil {
		return nil, &shared.BodyError{Line: lineNo, Err: err}
	}

	cols := make([]data_types.IColumn, len(names))
	for i, name := range names {
		typeName, ok := KnownColumns[name]
		if !ok {
			typeName = data_types.InferType(tokens[i])
		}
		col, err := data_types.NewColumn(typeName, name)
		if err != nil {
			return nil, &shared.BodyError{Line: lineNo, Err: err}
		}
		for row, tok := range tokens[i] {
			if err := col.ParseFromStr(tok); err != nil {
				return nil, &shared.BodyError{Line: lines[row],
					Err: fmt.Errorf("column %s: invalid %s value %q", name, typeName, tok)}
			}
		}
		cols[i] = col
	}
	table, err := shared.NewRawTable(cols...)
	if err != nil {
		return nil, &shared.BodyError{Line: lineNo, Err: err}
	}
	return table, nil
}

var _ = func() int {
	RegisterParser(".txt", func(opts Options) IParser {
		return &CasaTxtParser{opts: opts}
	})
	return 0
}()
