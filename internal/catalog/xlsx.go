package catalog

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// LoadXLSX reads a catalog table from an Excel workbook. The first row of the sheet is
// the header. An empty sheet name selects the first sheet.
func LoadXLSX(r io.Reader, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open Excel: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("get rows for sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty catalog: sheet %q has no header", sheet)
	}
	cols, err := resolveColumns(rows[0])
	if err != nil {
		return nil, err
	}
	out := make([]Row, 0, len(rows)-1)
	for i, record := range rows[1:] {
		if isBlankRecord(record) {
			continue
		}
		row, err := cols.parseRecord(record, i+2)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return NewTable(out), nil
}

// WriteXLSX writes t to a new workbook with the canonical header on the default sheet.
func WriteXLSX(w io.Writer, t *Table) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	if err := writeSheetRow(f, sheet, 1, canonicalHeader()); err != nil {
		return err
	}
	for i, row := range t.Rows() {
		if err := writeSheetRow(f, sheet, i+2, rowRecord(&row)); err != nil {
			return err
		}
	}
	_, err := f.WriteTo(w)
	return err
}

func writeSheetRow(f *excelize.File, sheet string, n int, record []string) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(record))
	for i, v := range record {
		values[i] = v
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func isBlankRecord(record []string) bool {
	for _, v := range record {
		if v != "" {
			return false
		}
	}
	return true
}
