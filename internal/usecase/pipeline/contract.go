package pipeline

import (
	"context"

	"github.com/kailas-cloud/wellfinder/internal/domain/query"
	"github.com/kailas-cloud/wellfinder/internal/domain/source"
	"github.com/kailas-cloud/wellfinder/internal/domain/well"
	"github.com/kailas-cloud/wellfinder/internal/usecase/merge"
)

// TableReader loads the rows of one source table.
type TableReader interface {
	Read(ctx context.Context, path string) ([]source.Row, error)
}

// SnapshotWriter persists the merged collection and query results.
type SnapshotWriter interface {
	SaveWells(ctx context.Context, path string, wells []well.Record) error
	SaveQueryResult(ctx context.Context, path string, res well.QueryResult) error
}

// Merger joins the two source tables into well records.
type Merger interface {
	Merge(coords, details []source.Row, targetCounty string) ([]well.Record, merge.Stats)
}

// Selector answers nearest-neighbor queries.
type Selector interface {
	Query(q query.Nearest, wells []well.Record) well.QueryResult
}
