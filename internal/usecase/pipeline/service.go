package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/wellfinder/internal/domain/query"
	"github.com/kailas-cloud/wellfinder/internal/domain/well"
	logpkg "github.com/kailas-cloud/wellfinder/internal/logger"
	"github.com/kailas-cloud/wellfinder/internal/metrics"
	"github.com/kailas-cloud/wellfinder/internal/usecase/merge"
)

// Job is one query to answer after the merge, and where to write its result.
type Job struct {
	Query  query.Nearest
	Output string
}

// Options describe a single pipeline run.
type Options struct {
	CoordinatesPath string
	DetailsPath     string
	TargetCounty    string
	MergedPath      string
	Jobs            []Job
}

// Summary reports what a run produced.
type Summary struct {
	RunID        string
	Coordinates  int
	Details      int
	Stats        merge.Stats
	MergedPath   string
	QueryOutputs []string
	Wells        []well.Record
}

// Service runs load -> merge -> persist -> query -> persist.
type Service struct {
	coords    TableReader
	details   TableReader
	merger    Merger
	selector  Selector
	snapshots SnapshotWriter
}

// New creates a pipeline service.
func New(
	coords, details TableReader,
	merger Merger, selector Selector, snapshots SnapshotWriter,
) *Service {
	return &Service{
		coords:    coords,
		details:   details,
		merger:    merger,
		selector:  selector,
		snapshots: snapshots,
	}
}

// Run executes the pipeline once. Unreadable sources and failed snapshot
// writes abort the run; bad rows and empty county matches do not.
func (s *Service) Run(ctx context.Context, opts Options) (Summary, error) {
	sum := Summary{RunID: uuid.NewString(), MergedPath: opts.MergedPath}
	ctx, log := logpkg.With(ctx, zap.String("run_id", sum.RunID))

	wells, err := s.load(ctx, opts, &sum)
	if err != nil {
		return sum, err
	}
	sum.Wells = wells

	log.Info("Saving merged wells", zap.String("path", opts.MergedPath))
	if err := s.snapshots.SaveWells(ctx, opts.MergedPath, wells); err != nil {
		return sum, fmt.Errorf("save merged wells: %w", err)
	}
	log.Info("Saved merged wells",
		zap.Int("wells", len(wells)),
		zap.String("county", opts.TargetCounty),
	)

	for _, job := range opts.Jobs {
		res := s.answer(ctx, job.Query, wells)
		if err := s.snapshots.SaveQueryResult(ctx, job.Output, res); err != nil {
			return sum, fmt.Errorf("save query %q: %w", job.Query.Name(), err)
		}
		log.Info("Saved query result", zap.String("path", job.Output))
		sum.QueryOutputs = append(sum.QueryOutputs, job.Output)
	}

	return sum, nil
}

// Merge only loads and merges, without writing anything.
func (s *Service) Merge(ctx context.Context, opts Options) ([]well.Record, error) {
	var sum Summary
	return s.load(ctx, opts, &sum)
}

func (s *Service) load(ctx context.Context, opts Options, sum *Summary) ([]well.Record, error) {
	log := logpkg.FromContext(ctx)

	log.Info("Loading coordinates", zap.String("path", opts.CoordinatesPath))
	coords, err := s.coords.Read(ctx, opts.CoordinatesPath)
	if err != nil {
		return nil, fmt.Errorf("load coordinates: %w", err)
	}
	log.Info("Loaded coordinate records", zap.Int("rows", len(coords)))

	log.Info("Loading details", zap.String("path", opts.DetailsPath))
	details, err := s.details.Read(ctx, opts.DetailsPath)
	if err != nil {
		return nil, fmt.Errorf("load details: %w", err)
	}
	log.Info("Loaded detail records", zap.Int("rows", len(details)))

	wells, stats := s.merger.Merge(coords, details, opts.TargetCounty)
	sum.Coordinates, sum.Details, sum.Stats = len(coords), len(details), stats
	metrics.ObserveMerge(len(coords), len(details), stats)

	if len(coords) != len(details) {
		log.Warn("Source tables differ in length, excess rows ignored",
			zap.Int("coordinates", len(coords)),
			zap.Int("details", len(details)),
		)
	}
	log.Info("Merged wells",
		zap.String("county", opts.TargetCounty),
		zap.Int("kept", stats.Kept),
		zap.Int("dropped_parse", stats.DroppedParse),
		zap.Int("dropped_county", stats.DroppedCounty),
	)
	return wells, nil
}

func (s *Service) answer(ctx context.Context, q query.Nearest, wells []well.Record) well.QueryResult {
	log := logpkg.FromContext(ctx)
	log.Info("Finding nearest wells",
		zap.String("target", q.Name()),
		zap.Float64("lat", q.Lat()),
		zap.Float64("lon", q.Lon()),
		zap.Int("count", q.Count()),
	)

	start := time.Now()
	res := s.selector.Query(q, wells)
	metrics.QueryDuration.WithLabelValues("pipeline").Observe(time.Since(start).Seconds())
	metrics.QueriesTotal.WithLabelValues("pipeline").Inc()

	for i, w := range res.NearestWells {
		log.Info("Nearest well",
			zap.Int("rank", i+1),
			zap.String("name", w.Name),
			zap.Float64("distance_miles", w.DistanceMiles),
			zap.String("depth", w.Depth),
			zap.String("aquifer", w.Aquifer),
			zap.Float64("lat", w.Lat),
			zap.Float64("lon", w.Lon),
		)
	}
	return res
}
