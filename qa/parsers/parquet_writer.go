package parsers

import (
	"io"
	"strings"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/apache/arrow/go/v18/parquet"
	"github.com/apache/arrow/go/v18/parquet/file"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
	"github.com/localgroup-vla/qaplotter/qa/shared"
)

// ParquetWriter exports a table for columnar consumers. The header metadata
// is stored as key-value metadata of the parquet file, read back with
// ReadParquetMetadata. It is also part of the stored arrow schema, so
// pqarrow.FileReader.Schema sees it; pqarrow.ReadTable drops it.
type ParquetWriter struct{}

func (ParquetWriter) Write(w io.Writer, t *shared.RawTable, md shared.Metadata) error {
	record, err := t.ToArrow(memory.NewGoAllocator())
	if err != nil {
		return err
	}
	defer record.Release()

	writerProps := parquet.NewWriterProperties(
		parquet.WithMaxRowGroupLength(8124),
	)
	arrprops := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())
	writer, err := pqarrow.NewFileWriter(withMetadata(record.Schema(), md), w, writerProps, arrprops)
	if err != nil {
		return err
	}
	if err := writer.Write(record); err != nil {
		writer.Close()
		return err
	}
	return writer.Close()
}

func withMetadata(schema *arrow.Schema, md shared.Metadata) *arrow.Schema {
	keys := md.Keys()
	vals := make([]string, len(keys))
	for i, k := range keys {
		vals[i] = md[k]
	}
	meta := arrow.NewMetadata(keys, vals)
	return arrow.NewSchema(schema.Fields(), &meta)
}

// ReadParquetMetadata returns the header metadata of a file written by
// ParquetWriter.
func ReadParquetMetadata(r parquet.ReaderAtSeeker) (shared.Metadata, error) {
	rdr, err := file.NewParquetReader(r)
	if err != nil {
		return nil, err
	}
	kv := rdr.MetaData().KeyValueMetadata()
	md := make(shared.Metadata, kv.Len())
	keys, vals := kv.Keys(), kv.Values()
	for i, k := range keys {
		if strings.HasPrefix(k, "ARROW:") {
			continue
		}
		md[k] = vals[i]
	}
	return md, nil
}

var _ = func() int {
	RegisterWriter(".parquet", func() IWriter {
		return ParquetWriter{}
	})
	return 0
}()
