package spreadsheet_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/adapters/spreadsheet"
)

func TestReader_ReadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.csv")
	require.NoError(t, os.WriteFile(path, []byte("First Name,Email\nJane Doe,jane@example.com\n"), 0o644))

	table, err := spreadsheet.NewReader().ReadTable(path)
	require.NoError(t, err)
	assert.Equal(t, "First Name,Email\nJane Doe,jane@example.com\n", table)
}

func TestReader_ReadExcelPadsRaggedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.xlsx")

	workbook := excelize.NewFile()
	sheet := workbook.GetSheetName(0)
	require.NoError(t, workbook.SetSheetRow(sheet, "A1", &[]interface{}{"First Name", "Email", "Role"}))
	require.NoError(t, workbook.SetSheetRow(sheet, "A2", &[]interface{}{"Jane Doe", "jane@example.com"}))
	require.NoError(t, workbook.SaveAs(path))
	require.NoError(t, workbook.Close())

	table, err := spreadsheet.NewReader().ReadTable(path)
	require.NoError(t, err)
	assert.Equal(t, "First Name,Email,Role\nJane Doe,jane@example.com,\n", table)
}

func TestReader_RejectsUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a table"), 0o644))

	_, err := spreadsheet.NewReader().ReadTable(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}
