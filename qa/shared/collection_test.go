package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldCollectionKind(t *testing.T) {
	c := NewFieldCollection("3C286")
	table := sampleTable(t, []int64{1}, []string{"RR"})
	for _, tt := range []TableType{AmpChan, AmpTime} {
		c.Tables[tt] = table
	}
	assert.Equal(t, Partial, c.Kind())

	c.Tables[AmpUVDist] = table
	assert.Equal(t, Target, c.Kind())

	for _, tt := range FieldTableTypes {
		c.Tables[tt] = table
	}
	assert.Equal(t, Calibrator, c.Kind())
	assert.Equal(t, FieldTableTypes, c.Types())
}

func TestCollectionVis(t *testing.T) {
	c := NewFieldCollection("3C286")
	c.Meta[AmpTime] = Metadata{"vis": "a.ms"}
	c.Meta[AmpChan] = Metadata{}
	vis, err := c.Vis()
	require.NoError(t, err)
	assert.Equal(t, "a.ms", vis)

	c.Meta[PhaseTime] = Metadata{"vis": "b.ms"}
	_, err = c.Vis()
	assert.ErrorIs(t, err, ErrVisMismatch)

	cal := NewCalCollection(Bandpass)
	table := sampleTable(t, []int64{1}, []string{"RR"})
	cal.Add(BandpassAmp, 2, table, Metadata{"vis": "a.ms"})
	cal.Add(BandpassAmp, 0, table, Metadata{"vis": "a.ms"})
	assert.Equal(t, []int{0, 2}, cal.IDs(BandpassAmp))
	assert.Empty(t, cal.IDs(BandpassPhase))
	vis, err = cal.Vis()
	require.NoError(t, err)
	assert.Equal(t, "a.ms", vis)
}

func TestSchemaMismatchError(t *testing.T) {
	err := &SchemaMismatchError{Kind: Bandpass, Amp: BandpassAmp, Phase: BandpassPhase, AmpCount: 3, PhaseCount: 2}
	assert.Equal(t, "bandpass: found 3 bp_amp files but 2 bp_phase files", err.Error())
}

func TestCalCollectionPages(t *testing.T) {
	cal := NewCalCollection(DelayCal)
	table := sampleTable(t, []int64{1}, []string{"RR"})
	for _, id := range []int{4, 0, 9, 2, 7} {
		cal.Add(Delay, id, table, nil)
	}
	assert.Equal(t, [][]int{{0, 2}, {4, 7}, {9}}, cal.Pages(Delay, 2))
	assert.Equal(t, [][]int{{0, 2, 4, 7, 9}}, cal.Pages(Delay, 8))
	assert.Empty(t, cal.Pages(BandpassAmp, 4))
}
