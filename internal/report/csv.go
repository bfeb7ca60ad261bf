package report

import (
	"encoding/csv"
	"io"
)

func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(r.Records()); err != nil {
		return err
	}
	return cw.Error()
}
