package entities

// Row is an ordered set of columns destined for a delimited import file.
// Column order is preserved from insertion so that each output file's header
// can be derived from its first row.
type Row struct {
	columns []string
	values  map[string]string
}

// NewRow creates an empty row.
func NewRow() *Row {
	return &Row{values: map[string]string{}}
}

// Set assigns a value to a column, appending the column on first use.
func (r *Row) Set(column, value string) *Row {
	if _, ok := r.values[column]; !ok {
		r.columns = append(r.columns, column)
	}
	r.values[column] = value
	return r
}

// Get returns the value for a column, or "" when the column is absent.
func (r *Row) Get(column string) string {
	return r.values[column]
}

// Columns returns the column names in insertion order.
func (r *Row) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Record renders the row's values in the order given by header. Columns the
// row does not carry render as empty cells.
func (r *Row) Record(header []string) []string {
	record := make([]string, len(header))
	for i, column := range header {
		record[i] = r.values[column]
	}
	return record
}

// Blanked returns a new row with the same columns and every value empty.
// Continuation rows in the spreadsheet convention inherit their parent
// visually, so all base columns are blank.
func (r *Row) Blanked() *Row {
	blank := NewRow()
	for _, column := range r.columns {
		blank.Set(column, "")
	}
	return blank
}
