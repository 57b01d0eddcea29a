package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ExportCSV writes the processed table (header plus every record) to w.
func (res *Result) ExportCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range res.Records {
		if err := writer.Write(r.Row()); err != nil {
			return fmt.Errorf("writing record %s: %w", r.Operation, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
