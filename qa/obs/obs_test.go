package obs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMJDSeconds(t *testing.T) {
	assert.Equal(t, time.Date(1858, 11, 17, 0, 0, 0, 0, time.UTC), FromMJDSeconds(0))
	// MJD 51544.5 is 2000-01-01T12:00:00
	assert.Equal(t, time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), FromMJDSeconds(51544.5*86400))
	got := FromMJDSeconds(51544*86400 + 3661.25)
	assert.Equal(t, time.Date(2000, 1, 1, 1, 1, 1, 250000000, time.UTC), got)
}

func TestCasaTimeString(t *testing.T) {
	ts := time.Date(2020, 9, 1, 2, 57, 46, 980000000, time.UTC)
	assert.Equal(t, "2020/09/01/02:57:46.9", CasaTimeString(ts))
	assert.Equal(t, []string{"2000/01/01/00:00:10.0"}, CasaTimeStrings([]float64{51544*86400 + 10}))
}

func TestParseSDMName(t *testing.T) {
	sdm, err := ParseSDMName("20A-346.sb38096442.eb38209668.51544.5.ms")
	require.NoError(t, err)
	assert.Equal(t, "20A-346", sdm.Project)
	assert.Equal(t, time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), sdm.Start)

	sdm, err = ParseSDMName("14B-088.sb1.eb2.51544.25.continuum")
	require.NoError(t, err)
	assert.Equal(t, 6, sdm.Start.Hour())

	for _, bad := range []string{"test.ms", "sb1.eb2", "14B-088.sb1.eb2.x.y"} {
		_, err := ParseSDMName(bad)
		assert.Error(t, err, bad)
	}
}

func TestObsLogURL(t *testing.T) {
	url, err := ObsLogURL("14B-088.sb29973489.eb29996180.51544.5")
	require.NoError(t, err)
	assert.Equal(t, "http://www.vla.nrao.edu/operators/logs/2000/1/2000-01-01_1200_14B-088.pdf", url)

	_, err = ObsLogURL("test.ms")
	assert.Error(t, err)
}
