package parsers

import (
	"bytes"
	"context"
	"testing"

	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/apache/arrow/go/v18/parquet/file"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParquetWriter(t *testing.T) {
	table, md, err := parseString(t, sample)
	require.NoError(t, err)

	w, err := GetWriter("out.parquet")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, w.Write(&buf, table, md))

	res, err := pqarrow.ReadTable(context.Background(), bytes.NewReader(buf.Bytes()), nil,
		pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	require.NoError(t, err)
	defer res.Release()
	assert.EqualValues(t, 3, res.NumRows())
	assert.EqualValues(t, 9, res.NumCols())

	stored, err := ReadParquetMetadata(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, md, stored)

	rdr, err := file.NewParquetReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	fr, err := pqarrow.NewFileReader(rdr, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	require.NoError(t, err)
	schema, err := fr.Schema()
	require.NoError(t, err)
	vis, ok := schema.Metadata().GetValue("vis")
	assert.True(t, ok)
	assert.Equal(t, "test.ms", vis)
}
