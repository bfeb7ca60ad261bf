package report

import (
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Bookings"

// WriteXLSX lays the report out as a spreadsheet: title in A1, generation
// time in A2, header on row 4 and data from row 5.
func (r *Report) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(r.Columns))
	if err != nil {
		return err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16, Color: "1E293B", Family: "Arial"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	noteStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Italic: true, Size: 10, Color: "64748B", Family: "Arial"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4F46E5"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	if err := f.SetCellValue(sheetName, "A1", r.Title); err != nil {
		return err
	}
	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle); err != nil {
		return err
	}

	if err := f.SetCellValue(sheetName, "A2", r.GeneratedLine()); err != nil {
		return err
	}
	if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A2", lastCol+"2", noteStyle); err != nil {
		return err
	}

	header := make([]interface{}, len(r.Columns))
	for i, c := range r.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A4", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A4", lastCol+"4", headerStyle); err != nil {
		return err
	}

	for i, row := range r.Rows {
		values := make([]interface{}, len(row.Cells))
		for j, cell := range row.Cells {
			values[j] = cell
		}
		values[priceColumn] = row.Price

		cell, err := excelize.CoordinatesToCellName(1, 5+i)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheetName, "A", lastCol, 16); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "F", "F", 32); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}
