// Package engine runs a partitioned scan: it plans byte ranges, scans them
// concurrently and merges the partial aggregates.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/exp/mmap"
	"golang.org/x/sync/errgroup"

	"pkg.jsn.cam/geotally/pkg/aggregate"
	"pkg.jsn.cam/geotally/pkg/partition"
	"pkg.jsn.cam/geotally/pkg/resolver"
	"pkg.jsn.cam/geotally/pkg/scan"
)

// Config holds run configuration
type Config struct {
	InputPath string
	// Workers is the number of partitions scanned in parallel. Defaults to
	// runtime.NumCPU().
	Workers int
	Catalog resolver.Catalog
	// Progress receives byte deltas from every worker concurrently, so it
	// must be safe for concurrent use.
	Progress func(delta int64)
	// Quiet disables per-worker log lines.
	Quiet bool
}

// WorkerReport summarizes one worker's scan.
type WorkerReport struct {
	Range     partition.Range `json:"range"`
	Records   int64           `json:"records"`
	BytesRead int64           `json:"bytes_read"`
	Stitched  bool            `json:"stitched"`
	Dropped   int64           `json:"dropped"`
	Elapsed   time.Duration   `json:"elapsed"`
}

// Result is the outcome of a complete run.
type Result struct {
	Aggregate    *aggregate.Aggregate
	Workers      []WorkerReport
	FileSize     int64
	ScanElapsed  time.Duration
	MergeElapsed time.Duration
}

// Run scans cfg.InputPath with cfg.Workers workers. Each worker opens its
// own read-only mapping of the file and owns its partial aggregate; the
// partials are merged only after every worker has finished. If any worker
// fails the run fails and no result is returned.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Catalog == nil {
		return nil, ErrNoCatalog
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	size, err := inputSize(cfg.InputPath)
	if err != nil {
		return nil, err
	}

	ranges, err := partition.Plan(size, workers)
	if err != nil {
		return nil, fmt.Errorf("plan partitions: %w", err)
	}

	if !cfg.Quiet {
		log.Printf("[ENGINE] Scanning %s (%s) with %d workers",
			cfg.InputPath, humanize.Bytes(uint64(size)), workers)
	}

	res := resolver.New(cfg.Catalog)
	reports := make([]WorkerReport, len(ranges))
	partials := make([]*aggregate.Aggregate, len(ranges))

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for i, rng := range ranges {
		g.Go(func() error {
			began := time.Now()
			out, err := scanRange(gctx, cfg.InputPath, rng, res, scan.Options{Progress: cfg.Progress})
			if err != nil {
				return fmt.Errorf("worker %d: %w", i, err)
			}

			partials[i] = out.Aggregate
			reports[i] = WorkerReport{
				Range:     rng,
				Records:   out.Records(),
				BytesRead: out.BytesRead,
				Stitched:  out.Stitched,
				Dropped:   out.Dropped,
				Elapsed:   time.Since(began),
			}

			if !cfg.Quiet {
				log.Printf("[SCAN:%d] Processed %d records from %s in %v",
					i, out.Records(), humanize.Bytes(uint64(rng.Len())), reports[i].Elapsed)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	scanElapsed := time.Since(start)

	start = time.Now()
	merged := aggregate.Merge(partials...)
	mergeElapsed := time.Since(start)

	if !cfg.Quiet {
		log.Printf("[ENGINE] Merged %d partials: %d authors, %d records (scan %v, merge %v)",
			len(partials), merged.Len(), merged.Records, scanElapsed, mergeElapsed)
	}

	return &Result{
		Aggregate:    merged,
		Workers:      reports,
		FileSize:     size,
		ScanElapsed:  scanElapsed,
		MergeElapsed: mergeElapsed,
	}, nil
}

// inputSize checks that path can be opened and returns its size.
func inputSize(path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return 0, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat input: %w", err)
	}
	if info.Size() == 0 {
		return 0, fmt.Errorf("%w: %s", ErrEmptyInput, path)
	}

	return info.Size(), nil
}

func scanRange(ctx context.Context, path string, rng partition.Range, res scan.Resolver, opts scan.Options) (*scan.Result, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("map input: %w", err)
	}
	defer r.Close()

	return scan.Scan(ctx, r, int64(r.Len()), rng, res, opts)
}
