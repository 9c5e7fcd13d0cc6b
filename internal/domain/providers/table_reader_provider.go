package providers

// TableReader loads an uploaded spreadsheet or CSV file and renders it as
// normalized CSV text.
type TableReader interface {
	ReadTable(path string) (string, error)
}
