package core

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/huangsam/onboard/core/algo"
	"github.com/huangsam/onboard/internal/artifact"
	"github.com/huangsam/onboard/internal/contract"
	"github.com/huangsam/onboard/schema"
	"golang.org/x/sync/errgroup"
)

// ExecuteCalibrate fits a calibration from a labeled training set and writes the
// resulting artifact. Examples are scored concurrently, bounded by cfg.Workers.
func ExecuteCalibrate(ctx context.Context, cfg *contract.Config, ow contract.OutputWriter, now contract.Clock) error {
	start := now()

	loaded, err := loadManifest(cfg)
	if err != nil {
		return err
	}
	// Fits map raw scores, so the engine runs without a calibration
	engine, err := NewEngine(loaded, schema.IdentityCalibration)
	if err != nil {
		return err
	}

	examples, err := artifact.LoadTrainingSet(cfg.TrainingSetPath)
	if err != nil {
		return err
	}

	samples, err := scoreExamples(ctx, engine, examples, cfg.Workers)
	if err != nil {
		return err
	}

	params, err := algo.FitCalibration(samples, cfg.CalibrationVersion, now())
	if err != nil {
		return err
	}
	result := schema.CalibrationResult{
		Params:  params,
		Quality: algo.EvaluateFit(params, samples),
		Samples: samples,
	}

	if cfg.CalibrationOut != "" {
		if err := artifact.SaveCalibration(cfg.CalibrationOut, params); err != nil {
			return err
		}
		slog.Info("wrote calibration", "path", cfg.CalibrationOut, "version", params.Version)
	}

	return ow.WriteCalibration(result, cfg, now().Sub(start))
}

// scoreExamples computes the raw score of every training example. The output keeps
// the input order.
func scoreExamples(ctx context.Context, engine *Engine, examples []schema.TrainingExample, workers int) ([]schema.CalibrationSample, error) {
	samples := make([]schema.CalibrationSample, len(examples))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, ex := range examples {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("score example %s: %w", ex.Name, err)
			}
			samples[i] = schema.CalibrationSample{
				Name:   ex.Name,
				Raw:    engine.Score(ex.Measurements).Raw,
				Target: ex.Target(),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return samples, nil
}
