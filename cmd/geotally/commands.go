package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"pkg.jsn.cam/geotally/internal/report"
	"pkg.jsn.cam/geotally/internal/runstore"
	"pkg.jsn.cam/geotally/pkg/catalog"
	"pkg.jsn.cam/geotally/pkg/engine"
	"pkg.jsn.cam/geotally/pkg/stats"
)

const defaultStorePath = "var/geotally.db"

func runCmd(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	input := fs.String("input", "", "Path to the tweet stream file")
	catalogPath := fs.String("catalog", "", "Path to the sal.json reference table")
	workers := fs.Int("workers", runtime.NumCPU(), "Number of partitions scanned in parallel")
	top := fs.Int("top", 10, "Number of authors in the ranked tables")
	storePath := fs.String("store", defaultStorePath, "Run store database")
	noStore := fs.Bool("no-store", false, "Do not persist the run")
	showProgress := fs.Bool("progress", true, "Show a progress bar")
	showWorkers := fs.Bool("show-workers", false, "Print the per-worker summary")
	fs.Parse(args)

	if *input == "" || *catalogPath == "" {
		log.Fatal("-input and -catalog are required")
	}

	absInput, err := filepath.Abs(*input)
	if err != nil {
		log.Fatalf("Failed to resolve input path: %v", err)
	}

	cat, err := catalog.Load(*catalogPath)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	log.Printf("[CATALOG] Loaded %d places from %s", cat.Len(), *catalogPath)

	cfg := engine.Config{
		InputPath: absInput,
		Workers:   *workers,
		Catalog:   cat,
	}

	if *showProgress {
		if info, err := os.Stat(absInput); err == nil {
			bar := progressbar.DefaultBytes(info.Size(), "scanning")
			defer bar.Finish()
			cfg.Progress = func(d int64) { bar.Add64(d) }
			cfg.Quiet = true
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	started := time.Now()
	res, err := engine.Run(ctx, cfg)
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}

	rep := stats.Extract(res.Aggregate)

	if *showWorkers {
		fmt.Println()
		report.Workers(os.Stdout, res.Workers)
	}
	report.All(os.Stdout, rep, *top)

	fmt.Printf("\nScanned %s in %v (merge %v), %d records from %d authors\n",
		humanize.Bytes(uint64(res.FileSize)), res.ScanElapsed, res.MergeElapsed,
		res.Aggregate.Records, res.Aggregate.Len())

	if *noStore {
		return
	}

	store, err := runstore.Open(*storePath)
	if err != nil {
		log.Fatalf("Failed to open run store: %v", err)
	}
	defer store.Close()

	run := runstore.NewRun(res, absInput, *catalogPath, started)
	if err := store.Save(run, res.Aggregate); err != nil {
		log.Fatalf("Failed to save run: %v", err)
	}

	fmt.Printf("\nRun saved: %s\n", run.ID)
	fmt.Printf("Show it again with: geotally show --run-id %s\n", run.ID)
}

func listRunsCmd(args []string) {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	storePath := fs.String("store", defaultStorePath, "Run store database")
	fs.Parse(args)

	store, err := runstore.Open(*storePath)
	if err != nil {
		log.Fatalf("Failed to open run store: %v", err)
	}
	defer store.Close()

	runs, err := store.List()
	if err != nil {
		log.Fatalf("Failed to list runs: %v", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		return
	}

	fmt.Printf("%-36s %-8s %-10s %-10s %-8s %s\n", "RUN ID", "WORKERS", "SIZE", "RECORDS", "AUTHORS", "STARTED")
	fmt.Println("─────────────────────────────────────────────────────────────────────────────────────────")
	for _, run := range runs {
		fmt.Printf("%-36s %-8d %-10s %-10d %-8d %s\n",
			run.ID,
			len(run.Workers),
			humanize.Bytes(uint64(run.FileSize)),
			run.Records,
			run.Authors,
			run.StartedAt.Format("2006-01-02 15:04:05"))
	}
}

func showRunCmd(args []string) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	runID := fs.String("run-id", "", "Run to show")
	storePath := fs.String("store", defaultStorePath, "Run store database")
	top := fs.Int("top", 10, "Number of authors in the ranked tables")
	showWorkers := fs.Bool("workers", false, "Print the per-worker summary")
	fs.Parse(args)

	if *runID == "" {
		log.Fatal("-run-id is required")
	}

	store, err := runstore.Open(*storePath)
	if err != nil {
		log.Fatalf("Failed to open run store: %v", err)
	}
	defer store.Close()

	run, err := store.Get(*runID)
	if err != nil {
		log.Fatalf("Failed to get run: %v", err)
	}

	agg, err := store.Aggregate(*runID)
	if err != nil {
		log.Fatalf("Failed to get aggregate: %v", err)
	}

	fmt.Printf("Run Details:\n")
	fmt.Printf("  ID:        %s\n", run.ID)
	fmt.Printf("  Input:     %s (%s)\n", run.InputPath, humanize.Bytes(uint64(run.FileSize)))
	fmt.Printf("  Catalog:   %s\n", run.CatalogPath)
	fmt.Printf("  Workers:   %d\n", len(run.Workers))
	fmt.Printf("  Started:   %s (%s)\n", run.StartedAt.Format("2006-01-02 15:04:05"), humanize.Time(run.StartedAt))
	fmt.Printf("  Duration:  %v (scan %v, merge %v)\n",
		run.CompletedAt.Sub(run.StartedAt), run.ScanElapsed, run.MergeElapsed)

	if *showWorkers {
		fmt.Println()
		report.Workers(os.Stdout, run.Workers)
	}

	report.All(os.Stdout, stats.Extract(agg), *top)
}
