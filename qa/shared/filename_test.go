package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldFileName(t *testing.T) {
	res, err := ParseFieldFileName("/data/field_3C286_amp_time.txt")
	require.NoError(t, err)
	assert.Equal(t, FieldFileName{Field: "3C286", Type: AmpTime, Scan: -1}, res)

	res, err = ParseFieldFileName("field_NGC_6822_phase_time.scan_12.txt")
	require.NoError(t, err)
	assert.Equal(t, FieldFileName{Field: "NGC_6822", Type: PhaseTime, Scan: 12}, res)

	res, err = ParseFieldFileName("field_J1331+3030_ampresid_uvwave.txt")
	require.NoError(t, err)
	assert.Equal(t, "J1331+3030", res.Field)
	assert.Equal(t, AmpResidUVWave, res.Type)

	for _, bad := range []string{
		"3C286_amp_time.txt",
		"field_3C286_amp_time.csv",
		"field_3C286_amp_freq.txt",
		"field__amp_time.txt",
		"field_3C286_amp_time.scan_x.txt",
	} {
		_, err := ParseFieldFileName(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseCalFileName(t *testing.T) {
	res, err := ParseCalFileName("final_caltable_BPcal_freq_amp_spw12.txt")
	require.NoError(t, err)
	assert.Equal(t, CalFileName{
		Prefix: "final_caltable", CalPrefix: "BPcal", Axis: "freq", Quantity: "amp",
		Grouping: BySPW, ID: 12,
	}, res)
	tt, err := res.TableType()
	require.NoError(t, err)
	assert.Equal(t, BandpassAmp, tt)

	res, err = ParseCalFileName("track_delaycal_freq_delay_ant3.txt")
	require.NoError(t, err)
	assert.Equal(t, ByAntenna, res.Grouping)
	assert.Equal(t, 3, res.ID)
	tt, err = res.TableType()
	require.NoError(t, err)
	assert.Equal(t, Delay, tt)

	for _, bad := range []string{
		"track_delaycal_freq_delay_ant.txt",
		"track_delaycal_freq_delay_antX.txt",
		"track_delaycal_freq_delay_field3.txt",
		"delaycal_freq_ant3.txt",
		"track_delaycal_freq_delay_ant3.csv",
	} {
		_, err := ParseCalFileName(bad)
		assert.Error(t, err, bad)
	}

	res, err = ParseCalFileName("track_unknowncal_freq_amp_ant1.txt")
	require.NoError(t, err)
	_, err = res.TableType()
	assert.Error(t, err)
}

func TestTableTypeNames(t *testing.T) {
	assert.Equal(t, "field_3C286_amp_time.txt", AmpTime.FileName("3C286"))
	assert.Equal(t, "field_3C286_phase_time.scan_*.txt", PhaseTime.ScanPattern("3C286"))
	assert.Equal(t, `field_a\*b_amp_chan.scan_*.txt`, AmpChan.ScanPattern("a*b"))
	assert.Equal(t, "*_BPcal_freq_phase_spw*.txt", BandpassPhase.CalPattern())
	assert.Equal(t, "*_ampgaincal_time_amp_ant*.txt", AmpGainTime.CalPattern())

	for _, tt := range append(FieldTableTypes, BandpassAmp, Delay, PhaseGainTime) {
		parsed, err := ParseTableType(tt.String())
		require.NoError(t, err)
		assert.Equal(t, tt, parsed)
	}
	_, err := ParseTableType("uvdist")
	assert.Error(t, err)

	amp, phase, ok := Bandpass.Paired()
	assert.True(t, ok)
	assert.Equal(t, BandpassAmp, amp)
	assert.Equal(t, BandpassPhase, phase)
	_, _, ok = DelayCal.Paired()
	assert.False(t, ok)

	kind, err := ParseCalKind("ampgaincal_freq")
	require.NoError(t, err)
	assert.Equal(t, AmpGainCalFreq, kind)
}
