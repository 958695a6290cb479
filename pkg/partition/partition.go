// Package partition splits a file into contiguous byte ranges, one per
// worker.
package partition

import (
	"fmt"
	"math/bits"
)

// Range is the half-open byte interval [Start, End) assigned to one worker.
// Ranges are byte based and routinely end in the middle of a line.
type Range struct {
	Index int   `json:"index"`
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// Len returns End - Start.
func (r Range) Len() int64 {
	return r.End - r.Start
}

// Empty reports whether the range holds no bytes.
func (r Range) Empty() bool {
	return r.End <= r.Start
}

func (r Range) String() string {
	return fmt.Sprintf("#%d[%d,%d)", r.Index, r.Start, r.End)
}

// Plan returns workers ranges tiling [0, size). Range i starts at
// floor(size*i/workers), so sizes differ by at most one byte and a worker
// may get an empty range when workers > size.
func Plan(size int64, workers int) ([]Range, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFileSize, size)
	}
	if workers <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkerCount, workers)
	}

	ranges := make([]Range, workers)
	for i := range ranges {
		ranges[i] = Range{
			Index: i,
			Start: offset(size, i, workers),
			End:   offset(size, i+1, workers),
		}
	}

	return ranges, nil
}

// offset computes floor(size*i/n) without overflowing int64.
func offset(size int64, i, n int) int64 {
	hi, lo := bits.Mul64(uint64(size), uint64(i))
	q, _ := bits.Div64(hi, lo, uint64(n))
	return int64(q)
}
