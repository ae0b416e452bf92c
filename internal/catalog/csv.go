package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// LoadCSV reads a catalog table from CSV. The first record is the header.
func LoadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty catalog: no header")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}
	var rows []Row
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		row, err := cols.parseRecord(record, line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return NewTable(rows), nil
}

// LoadCSVFile opens path and reads it with LoadCSV.
func LoadCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return LoadCSV(f)
}

// WriteCSV writes t with the canonical header. Category flags are written as True/False.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(canonicalHeader()); err != nil {
		return err
	}
	for _, row := range t.Rows() {
		if err := cw.Write(rowRecord(&row)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func rowRecord(row *Row) []string {
	rec := []string{
		row.Name,
		strconv.Itoa(row.Minutes),
		strconv.Itoa(row.NumIngredients),
		row.Ingredients,
		row.Steps,
	}
	for _, v := range row.Nutrition {
		rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
	}
	for _, c := range Categories() {
		if row.Has(c) {
			rec = append(rec, "True")
		} else {
			rec = append(rec, "False")
		}
	}
	return rec
}
