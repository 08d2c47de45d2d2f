// Package obs converts CASA time stamps and VLA SDM names.
package obs

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// mjdUnixOffset is the unix time of MJD 0 (1858-11-17T00:00:00Z).
const mjdUnixOffset = -3506716800

const CasaTimeLayout = "2006/01/02/15:04:05.0"

// FromMJDSeconds converts the MJD seconds of the CASA `time` column to UTC.
func FromMJDSeconds(s float64) time.Time {
	sec := math.Floor(s)
	nsec := math.Round((s - sec) * 1e9)
	return time.Unix(int64(sec)+mjdUnixOffset, int64(nsec)).UTC()
}

// CasaTimeString formats t the way CASA expects time selections,
// e.g. 2020/09/01/02:57:46.0.
func CasaTimeString(t time.Time) string {
	return t.UTC().Format(CasaTimeLayout)
}

func CasaTimeStrings(mjdSeconds []float64) []string {
	res := make([]string, len(mjdSeconds))
	for i, s := range mjdSeconds {
		res[i] = CasaTimeString(FromMJDSeconds(s))
	}
	return res
}

// SDMName is a parsed VLA SDM or MS name such as
// 20A-346.sb38096442.eb38209668.59100.12345.ms
type SDMName struct {
	Project string
	Start   time.Time
}

func ParseSDMName(name string) (SDMName, error) {
	var res SDMName
	if !strings.Contains(name, "eb") || !strings.Contains(name, "sb") {
		return res, fmt.Errorf("%q does not look like an SDM name", name)
	}
	for _, ext := range []string{".ms", ".continuum", ".speclines"} {
		name = strings.TrimSuffix(name, ext)
	}
	parts := strings.Split(name, ".")
	if len(parts) < 3 {
		return res, fmt.Errorf("%q has no MJD suffix", name)
	}
	mjd, err := strconv.ParseFloat(strings.Join(parts[len(parts)-2:], "."), 64)
	if err != nil {
		return res, fmt.Errorf("%q: invalid MJD: %w", name, err)
	}
	res.Project = parts[0]
	res.Start = FromMJDSeconds(mjd * 86400)
	return res, nil
}

// ObsLogURL links the operator observing log of an SDM, e.g.
// http://www.vla.nrao.edu/operators/logs/2014/12/2014-12-11_2203_14B-088.pdf
// The month has no leading zero.
func ObsLogURL(sdmName string) (string, error) {
	sdm, err := ParseSDMName(sdmName)
	if err != nil {
		return "", err
	}
	t := sdm.Start
	return fmt.Sprintf("http://www.vla.nrao.edu/operators/logs/%d/%d/%s_%s.pdf",
		t.Year(), int(t.Month()), t.Format("2006-01-02_1504"), sdm.Project), nil
}
