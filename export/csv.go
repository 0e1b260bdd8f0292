package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/everydev1618/quizgen/table"
)

// WriteCSV writes t with one record per row and an empty line after every
// group. Rows keep their own field count.
func WriteCSV(w io.Writer, t table.Table) error {
	cw := csv.NewWriter(w)
	for i, g := range t {
		for _, row := range g {
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write question %d: %w", i+1, err)
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return fmt.Errorf("write question %d: %w", i+1, err)
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
