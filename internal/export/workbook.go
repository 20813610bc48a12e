// Package export reads and writes the xlsx workbooks used for reports, imports and backups.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
	defaultSheet   = "Sheet1"
)

// table is one sheet: a bold header row followed by data rows.
type table struct {
	sheet   string
	headers []string
	rows    [][]any
	widths  []float64 // Optional, per column
}

// newWorkbook builds a workbook with one sheet per table, in order.
// The caller must Close the returned file.
func newWorkbook(tables ...table) (*excelize.File, error) {
	f := excelize.NewFile()
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E7E6E6"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for i, t := range tables {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, t.sheet); err != nil {
				f.Close()
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(t.sheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("create sheet %s: %w", t.sheet, err)
		}
		if err := writeTable(f, t, headerStyle); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func writeTable(f *excelize.File, t table, headerStyle int) error {
	header := make([]any, len(t.headers))
	for i, h := range t.headers {
		header[i] = h
	}
	if err := f.SetSheetRow(t.sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", t.sheet, err)
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(t.headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(t.sheet, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("style %s header: %w", t.sheet, err)
	}

	for i, row := range t.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(t.sheet, cell, &r); err != nil {
			return fmt.Errorf("write %s row %d: %w", t.sheet, i+2, err)
		}
	}

	for i, w := range t.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(t.sheet, col, col, w); err != nil {
			return fmt.Errorf("set %s column width: %w", t.sheet, err)
		}
	}
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}

func formatOptionalString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
