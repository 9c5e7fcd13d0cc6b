// Package rowfile persists generated row sets as delimited import files.
package rowfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/domain/entities"
)

// CSVSink writes row sets to CSV files. The header of each file is the
// column order of its first row; later rows render missing columns as empty
// cells.
type CSVSink struct{}

// NewCSVSink creates a new CSV sink.
func NewCSVSink() *CSVSink {
	return &CSVSink{}
}

// Write persists the rows under dir/filename and returns the full path.
func (s *CSVSink) Write(dir, filename string, rows []*entities.Row) (string, error) {
	if len(rows) == 0 {
		return "", fmt.Errorf("no rows to write for %s", filename)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(dir, filename)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", filename, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	header := rows[0].Columns()
	if err := writer.Write(header); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row.Record(header)); err != nil {
			return "", fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("flush %s: %w", filename, err)
	}
	return path, nil
}
