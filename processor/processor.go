// Package processor runs the linearization pipeline over batches of
// WKB-encoded features: decode, linearize at a tolerance, report. Features
// that cannot be decoded or converted are skipped with a warning; exceeding
// the recursion depth limit aborts the run.
package processor

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Mzandre2/TrueCruve-Toolbox/curvewkb"
	"github.com/Mzandre2/TrueCruve-Toolbox/health"
	"github.com/Mzandre2/TrueCruve-Toolbox/linearizer"
	"github.com/ONSdigital/go-ns/log"
	"github.com/twpayne/go-geom"
	"golang.org/x/sync/errgroup"
)

// A Feature pairs an identifier with raw WKB bytes.
type Feature struct {
	ID  int64
	WKB []byte
}

// A Result holds the linearized geometry of one feature.
type Result struct {
	ID       int64
	Geometry geom.T
}

// Options control a processing run.
type Options struct {
	// Tolerance is the maximum chord deviation for arc approximation.
	Tolerance float64
	// Workers is the number of features converted concurrently. Values below
	// 2 process sequentially.
	Workers int
	// OnProgress, when set, receives the percentage of features completed.
	// It may be called from multiple goroutines when Workers > 1.
	OnProgress func(percent int)
}

// A Report summarises a processing run. Results holds the converted features
// in input order; skipped features are described in Warnings.
type Report struct {
	Total     int
	Converted int
	Skipped   int
	Results   []*Result
	Warnings  []string
}

// Process converts every feature within the tolerance, collecting results and
// warnings. The context is checked between features; cancellation returns the
// partial report along with the context error.
func Process(ctx context.Context, features []Feature, options Options) (*Report, error) {

	if options.Workers > 1 {
		return processConcurrently(ctx, features, options)
	}

	report := &Report{Total: len(features)}
	step := progressStep(len(features))

	for i, feature := range features {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}

		result, warning, err := convertFeature(feature, options.Tolerance)
		if err != nil {
			return report, err
		}
		if result != nil {
			report.Results = append(report.Results, result)
			report.Converted++
		} else {
			report.Warnings = append(report.Warnings, warning)
			report.Skipped++
		}
		if options.OnProgress != nil {
			options.OnProgress(int(float64(i+1) * step))
		}
	}
	return report, nil
}

// processConcurrently runs the same conversion with a bounded worker pool.
// Results are written to per-feature slots, so input order is preserved.
func processConcurrently(ctx context.Context, features []Feature, options Options) (*Report, error) {
	report := &Report{Total: len(features)}
	step := progressStep(len(features))

	results := make([]*Result, len(features))
	warnings := make([]string, len(features))
	var done int64

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(options.Workers)
	for i := range features {
		i := i
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			result, warning, err := convertFeature(features[i], options.Tolerance)
			if err != nil {
				return err
			}
			if result != nil {
				results[i] = result
			} else {
				warnings[i] = warning
			}
			if options.OnProgress != nil {
				options.OnProgress(int(float64(atomic.AddInt64(&done, 1)) * step))
			}
			return nil
		})
	}
	err := eg.Wait()

	for i := range features {
		if results[i] != nil {
			report.Results = append(report.Results, results[i])
			report.Converted++
		} else if warnings[i] != "" {
			report.Warnings = append(report.Warnings, warnings[i])
			report.Skipped++
		}
	}
	return report, err
}

// convertFeature decodes and linearizes a single feature. A feature that
// cannot be processed returns a nil result and a warning describing the skip;
// only a depth limit failure is returned as an error.
func convertFeature(feature Feature, tolerance float64) (*Result, string, error) {
	defer health.RecordTime(time.Now(), "processor.convertFeature")

	g, err := curvewkb.Unmarshal(feature.WKB)
	if err != nil {
		log.Error(err, log.Data{"feature_id": feature.ID})
		return nil, fmt.Sprintf("skipping feature %d - could not decode WKB", feature.ID), nil
	}

	converted, err := linearizer.Linearize(g, tolerance)
	if err != nil {
		if errors.Is(err, linearizer.ErrMaxDepthExceeded) {
			return nil, "", err
		}
		log.Error(err, log.Data{"feature_id": feature.ID})
		return nil, fmt.Sprintf("skipping feature %d - could not linearize geometry", feature.ID), nil
	}
	return &Result{ID: feature.ID, Geometry: converted}, "", nil
}

func progressStep(total int) float64 {
	if total == 0 {
		return 0
	}
	return 100.0 / float64(total)
}
