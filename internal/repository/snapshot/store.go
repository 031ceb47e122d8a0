// Package snapshot persists merged well collections and query results as
// indented JSON files.
package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/kailas-cloud/wellfinder/internal/domain"
	"github.com/kailas-cloud/wellfinder/internal/domain/well"
)

const indent = "  "

// Store writes and reads snapshot files.
type Store struct {
	perm os.FileMode
}

// New creates a snapshot store writing files with mode 0644.
func New() *Store {
	return &Store{perm: 0o644}
}

// SaveWells writes the merged collection as a JSON array. A nil or empty
// collection is written as [].
func (s *Store) SaveWells(ctx context.Context, path string, wells []well.Record) error {
	if wells == nil {
		wells = []well.Record{}
	}
	return s.save(ctx, path, wells)
}

// SaveQueryResult writes one query envelope.
func (s *Store) SaveQueryResult(ctx context.Context, path string, res well.QueryResult) error {
	if res.NearestWells == nil {
		res.NearestWells = []well.Distanced{}
	}
	return s.save(ctx, path, res)
}

// LoadWells reads a collection previously written by SaveWells.
func (s *Store) LoadWells(ctx context.Context, path string) ([]well.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrSnapshotRead, path, err)
	}
	var wells []well.Record
	if err := json.Unmarshal(data, &wells); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", domain.ErrSnapshotRead, path, err)
	}
	if wells == nil {
		wells = []well.Record{}
	}
	return wells, nil
}

// save encodes v and replaces path atomically via a temp file in the same directory.
func (s *Store) save(ctx context.Context, path string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("%w: encode %s: %w", domain.ErrSnapshotWrite, path, err)
	}

	if err := writeAtomic(path, buf.Bytes(), s.perm); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrSnapshotWrite, path, err)
	}
	return nil
}

func writeAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
