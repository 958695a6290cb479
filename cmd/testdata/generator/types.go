package generator

import (
	"io"
	"math/rand/v2"
)

// Generator produces synthetic records for the input stream
type Generator interface {
	// Init gives the generator its own random source
	Init(r *rand.Rand)

	// WriteRecord writes one multi-line record. seq is its position in
	// the stream, starting at zero.
	WriteRecord(w io.Writer, seq int64) error

	// Description returns a human-readable description of the data
	Description() string

	// DefaultCount returns the suggested default number of records
	DefaultCount() int64
}
