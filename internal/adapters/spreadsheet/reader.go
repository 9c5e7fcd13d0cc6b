// Package spreadsheet renders uploaded personnel files (.xlsx, .xls, .csv)
// into a single CSV text table for the validation pass.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Reader reads spreadsheet files from disk.
type Reader struct{}

// NewReader creates a new spreadsheet reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadTable reads the file and returns its contents as CSV text. Excel
// workbooks are read from their first sheet; ragged rows are padded to the
// header width.
func (r *Reader) ReadTable(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return r.readExcel(path)
	case ".csv":
		return r.readCSV(path)
	default:
		return "", fmt.Errorf("unsupported format: %s", filepath.Ext(path))
	}
}

func (r *Reader) readExcel(path string) (string, error) {
	workbook, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("open workbook: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook %s has no sheets", filepath.Base(path))
	}

	cells, err := workbook.GetRows(sheets[0])
	if err != nil {
		return "", fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}

	width := 0
	for _, row := range cells {
		if len(row) > width {
			width = len(row)
		}
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	for _, row := range cells {
		record := make([]string, width)
		copy(record, row)
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("render sheet row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *Reader) readCSV(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	// Re-encode so malformed quoting is normalized before the table is
	// embedded in a prompt.
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.WriteAll(records); err != nil {
		return "", err
	}
	return buf.String(), nil
}
