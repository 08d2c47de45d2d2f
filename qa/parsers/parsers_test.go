package parsers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/localgroup-vla/qaplotter/qa/data_types"
	"github.com/localgroup-vla/qaplotter/qa/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dirOpener string

func (d dirOpener) Open(_ context.Context, name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(string(d), name))
}

const sample = `# vis: test.ms
# scan: 1,2: field: 3C286
# Observation: VLA: EVLA
# no delimiter here
# From plot 0, iteration 0: export
# x y chan scan spw corr ant1name extra flag
# MHz Jy None None None None None None None
1000.5 0.25 0 1 2 RR ea01 7 a
1001.5 0.5 1 1 2 LL ea02 8 b

# a comment inside the body
1002.5 1 2 2 3 RR ea03 9 1.5
`

func parseString(t *testing.T, data string) (*shared.RawTable, shared.Metadata, error) {
	t.Helper()
	p, err := GetParser("x.txt", Options{})
	require.NoError(t, err)
	return p.Parse([]byte(data))
}

func TestCasaTxtParser(t *testing.T) {
	table, md, err := parseString(t, sample)
	require.NoError(t, err)

	assert.Equal(t, shared.Metadata{
		"vis":         "test.ms",
		"scan":        "1,2",
		"field":       "3C286",
		"Observation": "VLA: EVLA",
	}, md)

	assert.EqualValues(t, 3, table.NumRows())
	for _, col := range table.Columns() {
		assert.EqualValues(t, 3, col.GetLength(), col.GetName())
	}

	types := map[string]string{}
	for _, col := range table.Columns() {
		types[col.GetName()] = col.GetTypeName()
	}
	assert.Equal(t, map[string]string{
		"x":        data_types.DATA_TYPE_NAME_FLOAT64,
		"y":        data_types.DATA_TYPE_NAME_FLOAT64,
		"chan":     data_types.DATA_TYPE_NAME_INT64,
		"scan":     data_types.DATA_TYPE_NAME_INT64,
		"spw":      data_types.DATA_TYPE_NAME_INT64,
		"corr":     data_types.DATA_TYPE_NAME_STRING,
		"ant1name": data_types.DATA_TYPE_NAME_STRING,
		"extra":    data_types.DATA_TYPE_NAME_INT64,
		"flag":     data_types.DATA_TYPE_NAME_STRING,
	}, types)

	y, _ := table.Column("y")
	assert.Equal(t, []float64{0.25, 0.5, 1}, y.GetData())
}

func TestHeaderNotFound(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 60; i++ {
		fmt.Fprintf(&b, "# key%d: value\n", i)
	}
	b.WriteString("# From plot 0\n# x\n# -\n1.0\n")
	_, _, err := parseString(t, b.String())
	assert.ErrorIs(t, err, shared.ErrHeaderNotFound)

	_, _, err = parseString(t, "# vis: a.ms\n1 2 3\n")
	assert.ErrorIs(t, err, shared.ErrHeaderNotFound)

	p, err := GetParser("x.txt", Options{MaxHeaderLines: 100})
	require.NoError(t, err)
	_, _, err = p.Parse([]byte(b.String()))
	assert.NoError(t, err)
}

func TestHeaderLineLimit(t *testing.T) {
	export := func(n int) string {
		var b strings.Builder
		for i := 0; i < n; i++ {
			fmt.Fprintf(&b, "# key%d: value\n", i)
		}
		b.WriteString("# From plot 0\n# x\n# -\n1.0\n")
		return b.String()
	}

	table, md, err := parseString(t, export(DefaultMaxHeaderLines))
	require.NoError(t, err)
	assert.Len(t, md, DefaultMaxHeaderLines)
	assert.EqualValues(t, 1, table.NumRows())

	_, _, err = parseString(t, export(DefaultMaxHeaderLines+1))
	assert.ErrorIs(t, err, shared.ErrHeaderNotFound)
}

func TestAliasLogCarriesPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "legacy.txt"),
		[]byte("# file: legacy.ms\n# From plot 0\n# x poln\n# - -\n1.5 RR\n"), 0o644))

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	reader := NewTableReader(nil, Options{Logger: logger.With("run", "r1")})
	_, md, err := reader.ReadTable(context.Background(), dirOpener(dir), "legacy.txt")
	require.NoError(t, err)
	assert.Equal(t, "legacy.ms", md.Vis())

	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	var applied []string
	for _, line := range lines {
		if strings.Contains(line, "alias") {
			applied = append(applied, line)
		}
	}
	require.Len(t, applied, 2)
	for _, line := range applied {
		assert.Contains(t, line, "run=r1")
		assert.Contains(t, line, "path=legacy.txt")
	}
}

func TestReadTable(t *testing.T) {
	dir := t.TempDir()
	write := func(name, data string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644))
	}
	write("good.txt", "# file: legacy.ms\n# From plot 0\n# x y poln\n# - - -\n1.5 2.5 RR\n")
	write("badtoken.txt", "# vis: test.ms\n# From plot 0\n# x scan\n# - -\n1.0 1\n2.0 two\n")
	write("badcount.txt", "# vis: test.ms\n# From plot 0\n# x scan\n# - -\n1.0 1 3\n")
	write("noheader.txt", "1 2 3\n")
	write("table.csv", "x,y\n")

	reader := NewTableReader(nil, Options{})
	src := dirOpener(dir)
	ctx := context.Background()

	table, md, err := reader.ReadTable(ctx, src, "good.txt")
	require.NoError(t, err)
	assert.Equal(t, shared.Metadata{"vis": "legacy.ms"}, md)
	assert.Equal(t, []string{"x", "y", "corr"}, table.ColumnNames())

	for _, name := range []string{"badtoken.txt", "badcount.txt"} {
		table, md, err = reader.ReadTable(ctx, src, name)
		require.NoError(t, err, name)
		assert.True(t, table.Empty(), name)
		assert.Equal(t, "test.ms", md.Vis(), name)
	}

	for _, name := range []string{"noheader.txt", "missing.txt", "table.csv"} {
		_, _, err = reader.ReadTable(ctx, src, name)
		var parseErr *shared.ParseError
		require.True(t, errors.As(err, &parseErr), name)
		assert.Equal(t, name, parseErr.Path)
	}
	_, _, err = reader.ReadTable(ctx, src, "noheader.txt")
	assert.ErrorIs(t, err, shared.ErrHeaderNotFound)
}

func TestBodyErrorLine(t *testing.T) {
	_, md, err := parseString(t, "# vis: a.ms\n# From plot 0\n# x scan\n# - -\n1.0 1\n2.0 x\n")
	var bodyErr *shared.BodyError
	require.True(t, errors.As(err, &bodyErr))
	assert.Equal(t, 6, bodyErr.Line)
	assert.Equal(t, "a.ms", md.Vis())
}

func TestTxtRoundTrip(t *testing.T) {
	table, md, err := parseString(t, sample)
	require.NoError(t, err)

	w, err := GetWriter("out.txt")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, w.Write(&buf, table, md))

	again, md2, err := parseString(t, buf.String())
	require.NoError(t, err)
	assert.Equal(t, md, md2)
	assert.Equal(t, table.ColumnNames(), again.ColumnNames())
	for _, col := range table.Columns() {
		col2, ok := again.Column(col.GetName())
		require.True(t, ok)
		assert.Equal(t, col.GetTypeName(), col2.GetTypeName(), col.GetName())
		assert.Equal(t, col.GetData(), col2.GetData(), col.GetName())
	}
}

func TestTxtWriterRejectsSpaces(t *testing.T) {
	col, err := data_types.WrapToColumn("ant1name", []string{"ea 01"})
	require.NoError(t, err)
	table, err := shared.NewRawTable(col)
	require.NoError(t, err)
	assert.Error(t, (&CasaTxtWriter{}).Write(io.Discard, table, nil))
	assert.Error(t, (&CasaTxtWriter{}).Write(io.Discard, shared.EmptyTable(), nil))
}

func TestNDJSONRoundTrip(t *testing.T) {
	table, md, err := parseString(t, sample)
	require.NoError(t, err)

	w, err := GetWriter("out.ndjson")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, w.Write(&buf, table, md))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, `[1000.5,0.25,0,1,2,"RR","ea01",7,"a"]`, lines[1])

	p, err := GetParser("out.ndjson", Options{})
	require.NoError(t, err)
	again, md2, err := p.Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, md, md2)
	assert.Equal(t, table.SchemaID(), again.SchemaID())
	for _, col := range table.Columns() {
		col2, _ := again.Column(col.GetName())
		assert.Equal(t, col.GetData(), col2.GetData(), col.GetName())
	}

	_, _, err = p.Parse([]byte(lines[0] + "\n[1]\n"))
	var bodyErr *shared.BodyError
	assert.True(t, errors.As(err, &bodyErr))
}

func TestGetParser(t *testing.T) {
	_, err := GetParser("a.csv", Options{})
	assert.Error(t, err)
	_, err = GetWriter("a.csv")
	assert.Error(t, err)
	w, err := GetWriter("a.parquet")
	require.NoError(t, err)
	assert.IsType(t, ParquetWriter{}, w)
	p, err := GetParser("FIELD.TXT", Options{})
	require.NoError(t, err)
	assert.IsType(t, &CasaTxtParser{}, p)
}
