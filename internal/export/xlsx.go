// Package export writes seat tables to spreadsheet files.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Calboot/RandomSeatGenerator/internal/seating"
)

const dateLayout = "2006-01-02"

// SheetName is the name of the single sheet of an export made on date.
func SheetName(date time.Time) string {
	return "SeatTable-" + date.Format(dateLayout)
}

// FileName is the file SaveXLSX writes for date.
func FileName(date time.Time) string {
	return date.Format(dateLayout) + ".xlsx"
}

// build lays out the workbook: a "Column N" header, one spreadsheet row per
// table row, then the seed and lucky person rows.
func build(t *seating.SeatTable, date time.Time) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := SheetName(date)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		_ = f.Close()
		return nil, err
	}

	header := make([]any, t.ColumnCount())
	for i := range header {
		header[i] = fmt.Sprintf("Column %d", i+1)
	}
	rows := [][]any{header}
	for _, r := range t.Rows() {
		row := make([]any, len(r))
		for i, c := range r {
			row[i] = c
		}
		rows = append(rows, row)
	}
	lucky := t.LuckyPerson()
	if lucky == "" {
		lucky = seating.EmptySeat
	}
	rows = append(rows, []any{"Seed", t.SeedLabel()}, []any{"Lucky person", lucky})

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	if t.ColumnCount() > 0 {
		last, err := excelize.ColumnNumberToName(t.ColumnCount())
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := f.SetColWidth(sheet, "A", last, 14); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return f, nil
}

// WriteXLSX streams the workbook for t to w.
func WriteXLSX(w io.Writer, t *seating.SeatTable, date time.Time) error {
	f, err := build(t, date)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteTo(w)
	return err
}

// SaveXLSX writes <dir>/<date>.xlsx, replacing any export from the same day,
// and returns the path.
func SaveXLSX(dir string, t *seating.SeatTable, date time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	f, err := build(t, date)
	if err != nil {
		return "", err
	}
	defer f.Close()
	path := filepath.Join(dir, FileName(date))
	if err := f.SaveAs(path); err != nil {
		return "", err
	}
	return path, nil
}
