package table

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kailas-cloud/wellfinder/internal/domain"
	"github.com/kailas-cloud/wellfinder/internal/domain/source"
)

// CSV reads comma-separated files whose first record is the header.
type CSV struct {
	comma rune
}

// NewCSV creates a comma-separated reader.
func NewCSV() *CSV {
	return &CSV{comma: ','}
}

// WithComma sets a different field delimiter.
func (c *CSV) WithComma(r rune) *CSV {
	c.comma = r
	return c
}

// Read implements Reader.
func (c *CSV) Read(ctx context.Context, path string) ([]source.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, domain.NewSourceError(path, err)
	}
	defer f.Close()

	rows, err := c.decode(f)
	if err != nil {
		return nil, domain.NewSourceError(path, err)
	}
	return rows, nil
}

func (c *CSV) decode(r io.Reader) ([]source.Row, error) {
	cr := csv.NewReader(r)
	cr.Comma = c.comma
	cr.FieldsPerRecord = -1 // ragged rows are tolerated
	cr.LazyQuotes = true    // inch marks like 12" appear in free-text cells

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []source.Row{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	return toRows(header, records), nil
}
