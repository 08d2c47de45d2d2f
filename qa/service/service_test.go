package service

import (
	"context"
	"io"
	"io/fs"
	"testing"

	"github.com/localgroup-vla/qaplotter/qa/parsers"
	"github.com/localgroup-vla/qaplotter/qa/qatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFsSource(t *testing.T) {
	dir := t.TempDir()
	qatest.WriteFile(t, dir, "field_A_amp_time.scan_2.txt", "22")
	qatest.WriteFile(t, dir, "field_A_amp_time.scan_10.txt", "1010")
	qatest.WriteFile(t, dir, "field_A_amp_time.scan_1.txt", "1")
	qatest.WriteFile(t, dir, "other.txt", "x")

	src, err := NewSource(dir, S3Config{})
	require.NoError(t, err)
	ctx := context.Background()

	files, err := src.Glob(ctx, "field_A_amp_time.scan_*.txt")
	require.NoError(t, err)
	assert.Equal(t, []FileDesc{
		{Name: "field_A_amp_time.scan_1.txt", Size: 1},
		{Name: "field_A_amp_time.scan_10.txt", Size: 4},
		{Name: "field_A_amp_time.scan_2.txt", Size: 2},
	}, files)

	desc, err := src.Stat(ctx, "other.txt")
	require.NoError(t, err)
	assert.EqualValues(t, 1, desc.Size)
	_, err = src.Stat(ctx, "missing.txt")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	f, err := src.Open(ctx, "other.txt")
	require.NoError(t, err)
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, "x", string(data))

	_, err = NewSource(qatest.WriteFile(t, dir, "plain", ""), S3Config{})
	assert.Error(t, err)
}

func TestNewS3Source(t *testing.T) {
	src, err := NewSource("s3://exports/track1/fields/", S3Config{URL: "localhost:9000"})
	require.NoError(t, err)
	assert.Equal(t, "s3://exports/track1/fields/", src.String())

	_, err = NewSource("s3:///fields", S3Config{URL: "localhost:9000"})
	assert.Error(t, err)
}

func TestLiteralPrefix(t *testing.T) {
	assert.Equal(t, "field_3C286_amp_time.scan_", literalPrefix("field_3C286_amp_time.scan_*.txt"))
	assert.Equal(t, "", literalPrefix("*_BPcal_freq_amp_spw*.txt"))
	assert.Equal(t, "field_a", literalPrefix(`field_a\*b`))
	assert.Equal(t, "plain.txt", literalPrefix("plain.txt"))
}

func TestPartitionMerge(t *testing.T) {
	dir := t.TempDir()
	qatest.WriteExport(t, dir, "field_A_phase_time.scan_1.txt", "test.ms", 1, 40)
	qatest.WriteFile(t, dir, "field_A_phase_time.scan_2.txt", "# vis")
	qatest.WriteExport(t, dir, "field_A_phase_time.scan_3.txt", "test.ms", 3, 25)
	// well above the threshold but with no header
	qatest.WriteFile(t, dir, "field_A_phase_time.scan_4.txt", string(make([]byte, 2000)))

	src, err := NewFsSource(dir)
	require.NoError(t, err)
	ctx := context.Background()
	files, err := src.Glob(ctx, "field_A_phase_time.scan_*.txt")
	require.NoError(t, err)
	require.Len(t, files, 4)

	m := NewPartitionMerger(src, parsers.NewTableReader(nil, parsers.Options{}), 0, nil)
	assert.Len(t, m.PlanMerge(files), 3)

	table, md, err := m.Merge(ctx, files)
	require.NoError(t, err)
	assert.EqualValues(t, 65, table.NumRows())
	assert.Equal(t, "test.ms", md.Vis())

	scans, _ := table.Column("scan")
	data := scans.GetData().([]int64)
	assert.EqualValues(t, 1, data[0])
	assert.EqualValues(t, 1, data[39])
	assert.EqualValues(t, 3, data[40])

	table, _, err = m.Merge(ctx, files[1:2])
	require.NoError(t, err)
	assert.True(t, table.Empty())
}
