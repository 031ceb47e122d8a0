package table

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/kailas-cloud/wellfinder/internal/domain"
	"github.com/kailas-cloud/wellfinder/internal/domain/source"
)

// XLSX reads one worksheet of an Excel workbook; row 1 is the header. Cells
// are read as stored, ignoring number formats.
type XLSX struct {
	sheet string
}

// NewXLSX creates a workbook reader. An empty sheet selects the first sheet.
func NewXLSX(sheet string) *XLSX {
	return &XLSX{sheet: sheet}
}

// Read implements Reader.
func (x *XLSX) Read(ctx context.Context, path string) ([]source.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(filepath.Clean(path))
	if err != nil {
		return nil, domain.NewSourceError(path, err)
	}
	defer f.Close()

	sheet := x.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, domain.NewSourceError(path, fmt.Errorf("workbook has no sheets"))
	}

	records, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, domain.NewSourceError(path, fmt.Errorf("read sheet %q: %w", sheet, err))
	}
	if len(records) == 0 {
		return []source.Row{}, nil
	}
	return toRows(records[0], records[1:]), nil
}
