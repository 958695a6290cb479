// Package scan reads one byte range of the input stream and tallies the
// records whose author line starts inside that range.
package scan

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"pkg.jsn.cam/geotally/pkg/aggregate"
	"pkg.jsn.cam/geotally/pkg/partition"
	"pkg.jsn.cam/geotally/pkg/region"
)

const (
	readBufferSize = 256 << 10
	// ctxCheckLines is how many lines are read between cancellation checks.
	ctxCheckLines = 4096
	// progressBytes is the granularity of Options.Progress callbacks.
	progressBytes = 1 << 20
)

// Resolver maps a place name to a region.
type Resolver interface {
	Resolve(location string) (region.Code, bool)
}

// Options tunes a scan.
type Options struct {
	// Progress, when set, receives how many more bytes of the range have
	// been consumed since the previous call. Across a successful scan the
	// deltas sum to the range length. It is called from the scanning
	// goroutine.
	Progress func(delta int64)
}

// Result is one worker's output.
type Result struct {
	Range     partition.Range
	Aggregate *aggregate.Aggregate
	// BytesRead counts every byte consumed including the stitched tail
	// read past Range.End.
	BytesRead int64
	// Stitched is set when a record straddling Range.End was completed by
	// reading into the next range.
	Stitched bool
	// Dropped counts author lines that never got a place line.
	Dropped int64
}

// Records is the number of records attributed to this range.
func (r *Result) Records() int64 {
	return r.Aggregate.Records
}

// Scan tallies rng of src, which is size bytes long.
//
// A range owns every line that starts inside it. When rng.Start falls in
// the middle of a line, that line belongs to the previous range and is
// skipped. A place line is only counted when an author line owned by this
// range is pending, so the previous range's straddling record is never
// counted twice. If an author is still pending once the range is
// exhausted, reading continues past rng.End until the record's place line
// is found. An author line found there first belongs to the next range and
// ends the scan.
func Scan(ctx context.Context, src io.ReaderAt, size int64, rng partition.Range, res Resolver, opts Options) (*Result, error) {
	out := &Result{Range: rng, Aggregate: aggregate.New()}
	if rng.Empty() || rng.Start >= size {
		return out, nil
	}

	from := rng.Start
	if from > 0 {
		from--
	}

	lr := newLineReader(io.NewSectionReader(src, from, size-from))
	p := progress{fn: opts.Progress}
	defer p.flush()
	owned := func(pos int64) int64 {
		return max(min(pos, rng.End)-rng.Start, 0)
	}

	pos := from
	if rng.Start > 0 {
		// Skip through the newline ending the line that holds byte
		// Start-1. If that byte is itself a newline only it is skipped.
		_, n, err := lr.next()
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("scan %v: %w", rng, err)
		}
		pos += int64(n)
		out.BytesRead += int64(n)
		p.to(owned(pos))
	}

	var m Machine
	lines := 0
	for pos < rng.End {
		line, n, err := lr.next()
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("scan %v: %w", rng, err)
		}
		if n == 0 {
			break
		}
		pos += int64(n)
		out.BytesRead += int64(n)
		p.to(owned(pos))

		kind, value := Classify(line)
		if kind == KindAuthor {
			if _, pending := m.Pending(); pending {
				out.Dropped++
			}
		}
		if author, ok := m.Step(kind, value); ok {
			code, found := res.Resolve(string(value))
			out.Aggregate.Add(author, code, found)
		}

		lines++
		if lines%ctxCheckLines == 0 {
			if cerr := ctx.Err(); cerr != nil {
				return nil, cerr
			}
		}

		if err != nil {
			break // EOF
		}
	}

	p.to(rng.Len())

	if _, pending := m.Pending(); !pending {
		return out, nil
	}

	// Stitch the record straddling rng.End.
	for {
		line, n, err := lr.next()
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("stitch %v: %w", rng, err)
		}
		if n == 0 {
			out.Dropped++
			return out, nil
		}
		out.BytesRead += int64(n)

		kind, value := Classify(line)
		switch kind {
		case KindAuthor:
			out.Dropped++
			return out, nil
		case KindPlace:
			author, _ := m.Step(kind, value)
			code, found := res.Resolve(string(value))
			out.Aggregate.Add(author, code, found)
			out.Stitched = true
			return out, nil
		}

		if err != nil {
			out.Dropped++ // EOF
			return out, nil
		}
	}
}

// lineReader yields newline terminated lines of any length.
type lineReader struct {
	r   *bufio.Reader
	buf []byte
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReaderSize(r, readBufferSize)}
}

// next returns the next line including its newline and the number of bytes
// consumed. The line is only valid until the following call. At the end of
// input a final unterminated line is returned together with io.EOF.
func (l *lineReader) next() ([]byte, int, error) {
	line, err := l.r.ReadSlice('\n')
	if !errors.Is(err, bufio.ErrBufferFull) {
		return line, len(line), err
	}

	l.buf = append(l.buf[:0], line...)
	for errors.Is(err, bufio.ErrBufferFull) {
		line, err = l.r.ReadSlice('\n')
		l.buf = append(l.buf, line...)
	}
	return l.buf, len(l.buf), err
}

// progress batches byte counts before handing them to the callback.
type progress struct {
	fn       func(int64)
	reported int64
	pending  int64
}

// to records that done bytes of the range have been consumed.
func (p *progress) to(done int64) {
	if p.fn == nil || done <= p.reported {
		return
	}
	p.pending += done - p.reported
	p.reported = done
	if p.pending >= progressBytes {
		p.flush()
	}
}

func (p *progress) flush() {
	if p.fn != nil && p.pending > 0 {
		p.fn(p.pending)
		p.pending = 0
	}
}
