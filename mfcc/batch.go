package mfcc

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/RyanBlaney/sonido-mfcc/logging"
)

// BatchOptions controls ExtractBatch
type BatchOptions struct {
	// Workers bounds concurrent extractions; <= 0 uses GOMAXPROCS
	Workers int
}

// ExtractBatch extracts every signal concurrently. Results keep input
// order. Extractors are shared per sample rate. The first error cancels
// the remaining work.
func ExtractBatch(ctx context.Context, signals []AudioSignal, cfg ExtractionConfig, opts BatchOptions) ([]*Result, error) {
	if err := cfg.Validate(0); err != nil {
		return nil, err
	}

	extractors := make(map[int]*Extractor)
	for i, signal := range signals {
		if _, ok := extractors[signal.SampleRate()]; ok {
			continue
		}
		extractor, err := NewExtractor(cfg, signal.SampleRate())
		if err != nil {
			return nil, fmt.Errorf("signal %d: %w", i, err)
		}
		extractors[signal.SampleRate()] = extractor
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	logger := logging.WithContext(ctx).WithFields(logging.Fields{
		"component": "mfcc_batch",
		"signals":   len(signals),
		"workers":   workers,
	})
	logger.Debug("Starting batch extraction")

	results := make([]*Result, len(signals))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, signal := range signals {
		if gctx.Err() != nil {
			break
		}

		extractor := extractors[signal.SampleRate()]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			result, err := extractor.Extract(signal)
			if err != nil {
				return fmt.Errorf("signal %d: %w", i, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error(err, "Batch extraction failed")
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Debug("Batch extraction complete")
	return results, nil
}
