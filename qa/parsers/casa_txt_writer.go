package parsers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/localgroup-vla/qaplotter/qa/shared"
)

// CasaTxtWriter re-serializes a table in the layout CasaTxtParser reads.
type CasaTxtWriter struct {
	// Units is written as the units line; "-" is used when unset.
	Units []string
}

func (w *CasaTxtWriter) Write(out io.Writer, t *shared.RawTable, md shared.Metadata) error {
	if t.NumColumns() == 0 {
		return errors.New("cannot export a table without columns")
	}
	bw := bufio.NewWriter(out)
	for _, k := range md.Keys() {
		fmt.Fprintf(bw, "# %s%s%s\n", k, metaDelimiter, md[k])
	}
	fmt.Fprintf(bw, "# %s, iteration 0\n", HeaderSentinel)
	fmt.Fprintf(bw, "# %s\n", strings.Join(t.ColumnNames(), " "))

	units := make([]string, t.NumColumns())
	for i := range units {
		units[i] = "-"
		if i < len(w.Units) && w.Units[i] != "" {
			units[i] = w.Units[i]
		}
	}
	fmt.Fprintf(bw, "# %s\n", strings.Join(units, " "))

	cols := t.Columns()
	for row := int64(0); row < t.NumRows(); row++ {
		for i, col := range cols {
			val := col.FormatVal(row)
			if val == "" || strings.ContainsAny(val, " \t\r\n") {
				return fmt.Errorf("column %s row %d: value %q cannot be written as a token",
					col.GetName(), row, val)
			}
			if i > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(val)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

var _ = func() int {
	RegisterWriter(".txt", func() IWriter {
		return &CasaTxtWriter{}
	})
	return 0
}()
