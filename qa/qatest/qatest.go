// Package qatest writes plotms-style exports for tests.
package qatest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Export renders a plotms text export with rows data rows. Row i has scan
// scan, spw i%4 and alternates RR/LL correlations.
func Export(vis string, scan int, rows int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# vis: %s\n", vis)
	b.WriteString("# Observation: EVLA\n")
	b.WriteString("# From plot 0, iteration 0\n")
	b.WriteString("# x y chan scan spw ant1 ant2 corr ant1name ant2name\n")
	b.WriteString("# s Jy None None None None None None None None\n")
	for i := 0; i < rows; i++ {
		corr := "RR"
		if i%2 == 1 {
			corr = "LL"
		}
		fmt.Fprintf(&b, "%.3f %.6f %d %d %d %d %d %s ea%02d ea%02d\n",
			4.9e9+float64(i)*1.25, 0.5+float64(i)/1000, i%64, scan, i%4, i%27, (i+1)%27, corr, i%27+1, (i+1)%27+1)
	}
	return b.String()
}

func WriteFile(t testing.TB, dir, name, data string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

// WriteExport writes Export(vis, scan, rows) to dir/name.
func WriteExport(t testing.TB, dir, name, vis string, scan, rows int) string {
	t.Helper()
	return WriteFile(t, dir, name, Export(vis, scan, rows))
}
