package providers

import (
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/domain/entities"
)

// RowSink persists a row set as a delimited file. The header is derived from
// the first row's column order. Returns the full path of the written file.
type RowSink interface {
	Write(dir, filename string, rows []*entities.Row) (string, error)
}
