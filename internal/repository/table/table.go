// Package table reads delimited and spreadsheet sources into header-keyed rows.
package table

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/kailas-cloud/wellfinder/internal/domain/source"
)

// Reader loads every data row of a tabular file, keyed by header name.
type Reader interface {
	Read(ctx context.Context, path string) ([]source.Row, error)
}

// ForPath picks a reader by file extension: .xlsx goes to the spreadsheet
// reader (sheet may be empty for the first sheet), everything else is CSV.
func ForPath(path, sheet string) Reader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return NewXLSX(sheet)
	default:
		return NewCSV()
	}
}

// toRows zips a header with each record. Cells past the header are dropped
// and columns missing from a short record are left out of its row.
func toRows(header []string, records [][]string) []source.Row {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	rows := make([]source.Row, 0, len(records))
	for _, rec := range records {
		row := make(source.Row, len(header))
		for i, name := range header {
			if i >= len(rec) {
				break
			}
			row[name] = rec[i]
		}
		rows = append(rows, row)
	}
	return rows
}
