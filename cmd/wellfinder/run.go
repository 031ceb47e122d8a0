package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/wellfinder/internal/config"
	"github.com/kailas-cloud/wellfinder/internal/domain/query"
	logpkg "github.com/kailas-cloud/wellfinder/internal/logger"
	"github.com/kailas-cloud/wellfinder/internal/repository/snapshot"
	"github.com/kailas-cloud/wellfinder/internal/repository/table"
	"github.com/kailas-cloud/wellfinder/internal/usecase/merge"
	"github.com/kailas-cloud/wellfinder/internal/usecase/nearest"
	"github.com/kailas-cloud/wellfinder/internal/usecase/pipeline"
	"github.com/kailas-cloud/wellfinder/internal/version"
)

func runCMD(a *app) *cobra.Command {
	var county string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Merge the source tables and answer the configured queries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd.Context(), county)
		},
	}
	cmd.Flags().StringVar(&county, "county", "", "target county (overrides merge.target_county; output.merged is kept when set)")
	return cmd
}

func (a *app) run(ctx context.Context, county string) error {
	if county != "" {
		a.cfg.SetTargetCounty(county)
	}

	a.logger.Info("Starting wellfinder pipeline",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", a.env),
		zap.String("county", a.cfg.Merge.TargetCounty),
	)

	opts, err := pipelineOptions(a.cfg)
	if err != nil {
		return err
	}

	svc := newPipeline(a.cfg, a.logger)
	sum, err := svc.Run(logpkg.ContextWithLogger(ctx, a.logger), opts)
	if err != nil {
		a.logger.Error("Pipeline failed", zap.String("run_id", sum.RunID), zap.Error(err))
		return err
	}

	a.logger.Info("Pipeline finished",
		zap.String("run_id", sum.RunID),
		zap.Int("wells", len(sum.Wells)),
		zap.Int("dropped", sum.Stats.Dropped()),
		zap.String("merged", sum.MergedPath),
		zap.Strings("queries", sum.QueryOutputs),
	)
	return nil
}

func newPipeline(cfg config.Config, logger *zap.Logger) *pipeline.Service {
	return pipeline.New(
		table.ForPath(cfg.Sources.Coordinates, ""),
		table.ForPath(cfg.Sources.Details, cfg.Sources.DetailsSheet),
		merge.New(logger),
		nearest.New(),
		snapshot.New(),
	)
}

func pipelineOptions(cfg config.Config) (pipeline.Options, error) {
	opts := pipeline.Options{
		CoordinatesPath: cfg.Sources.Coordinates,
		DetailsPath:     cfg.Sources.Details,
		TargetCounty:    cfg.Merge.TargetCounty,
		MergedPath:      cfg.Output.Merged,
	}
	for i, qc := range cfg.Queries {
		q, err := query.New(qc.Lat, qc.Lon, qc.Name, *qc.Count)
		if err != nil {
			return pipeline.Options{}, fmt.Errorf("queries[%d]: %w", i, err)
		}
		opts.Jobs = append(opts.Jobs, pipeline.Job{Query: q, Output: cfg.QueryOutputPath(i)})
	}
	return opts, nil
}
