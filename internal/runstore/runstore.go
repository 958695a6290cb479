// Package runstore persists finished runs so their reports can be shown
// again without rescanning the input.
package runstore

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/mod/semver"

	"pkg.jsn.cam/geotally/pkg/aggregate"
	"pkg.jsn.cam/geotally/pkg/engine"
	"pkg.jsn.cam/geotally/pkg/storage"
)

// FormatVersion is written into every stored run. Runs with a different
// major version cannot be read.
const FormatVersion = "v1.1.0"

var (
	ErrRunNotFound        = errors.New("run not found")
	ErrIncompatibleFormat = errors.New("incompatible run format")
)

var (
	runsBucket       = []byte("runs")
	aggregatesBucket = []byte("aggregates")
)

// Run is the stored description of one completed scan.
type Run struct {
	ID            string                `json:"id"`
	FormatVersion string                `json:"format_version"`
	InputPath     string                `json:"input_path"`
	CatalogPath   string                `json:"catalog_path"`
	FileSize      int64                 `json:"file_size"`
	Workers       []engine.WorkerReport `json:"workers"`
	Authors       int                   `json:"authors"`
	Records       int64                 `json:"records"`
	StartedAt     time.Time             `json:"started_at"`
	CompletedAt   time.Time             `json:"completed_at"`
	ScanElapsed   time.Duration         `json:"scan_elapsed"`
	MergeElapsed  time.Duration         `json:"merge_elapsed"`
}

// NewRun describes res under a fresh id.
func NewRun(res *engine.Result, inputPath, catalogPath string, startedAt time.Time) *Run {
	return &Run{
		ID:            uuid.New().String(),
		FormatVersion: FormatVersion,
		InputPath:     inputPath,
		CatalogPath:   catalogPath,
		FileSize:      res.FileSize,
		Workers:       res.Workers,
		Authors:       res.Aggregate.Len(),
		Records:       res.Aggregate.Records,
		StartedAt:     startedAt,
		CompletedAt:   time.Now(),
		ScanElapsed:   res.ScanElapsed,
		MergeElapsed:  res.MergeElapsed,
	}
}

// Store keeps runs and their global aggregates in a storage.Backend.
type Store struct {
	backend storage.Backend
}

// New wraps backend, creating the buckets it needs.
func New(backend storage.Backend) (*Store, error) {
	for _, bucket := range [][]byte{runsBucket, aggregatesBucket} {
		if err := backend.CreateBucket(bucket); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return &Store{backend: backend}, nil
}

// Open opens a bbolt-backed store at dbPath.
func Open(dbPath string) (*Store, error) {
	backend, err := storage.NewBboltBackend(dbPath)
	if err != nil {
		return nil, err
	}

	s, err := New(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	log.Printf("[STORAGE] Run store opened at %s", dbPath)
	return s, nil
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Save stores run together with its merged aggregate.
func (s *Store) Save(run *Run, agg *aggregate.Aggregate) error {
	if run.FormatVersion == "" {
		run.FormatVersion = FormatVersion
	}

	// The aggregate goes first so a visible run always has one.
	if err := storage.PutJSON(s.backend, aggregatesBucket, run.ID, agg); err != nil {
		return fmt.Errorf("save aggregate: %w", err)
	}
	if err := storage.PutJSON(s.backend, runsBucket, run.ID, run); err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}

// Get loads the run with id.
func (s *Store) Get(id string) (*Run, error) {
	var run Run
	found, err := storage.GetJSON(s.backend, runsBucket, id, &run)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err := checkFormat(&run); err != nil {
		return nil, err
	}
	return &run, nil
}

// Aggregate loads the global aggregate stored for run id.
func (s *Store) Aggregate(id string) (*aggregate.Aggregate, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}

	agg := aggregate.New()
	found, err := storage.GetJSON(s.backend, aggregatesBucket, id, agg)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: aggregate for %s", ErrRunNotFound, id)
	}
	return agg, nil
}

// List returns every readable run, most recent first. Runs written in an
// incompatible format are skipped.
func (s *Store) List() ([]*Run, error) {
	var runs []*Run
	err := s.backend.ForEach(runsBucket, func(_, v []byte) error {
		var run Run
		if err := storage.DecodeJSON(v, &run); err != nil {
			return err
		}
		if err := checkFormat(&run); err != nil {
			log.Printf("[STORAGE] Skipping run %s: %v", run.ID, err)
			return nil
		}
		runs = append(runs, &run)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(runs, func(a, b *Run) int {
		return b.StartedAt.Compare(a.StartedAt)
	})
	return runs, nil
}

// Delete removes a run and its aggregate.
func (s *Store) Delete(id string) error {
	if err := s.backend.Delete(runsBucket, []byte(id)); err != nil {
		return err
	}
	return s.backend.Delete(aggregatesBucket, []byte(id))
}

func checkFormat(run *Run) error {
	if !semver.IsValid(run.FormatVersion) {
		return fmt.Errorf("%w: invalid version %q", ErrIncompatibleFormat, run.FormatVersion)
	}
	if semver.Major(run.FormatVersion) != semver.Major(FormatVersion) {
		return fmt.Errorf("%w: run %s has %s, want %s.x.x",
			ErrIncompatibleFormat, run.ID, run.FormatVersion, semver.Major(FormatVersion))
	}
	return nil
}
