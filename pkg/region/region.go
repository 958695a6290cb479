// Package region defines the closed set of greater capital city region
// codes and a fixed-size counter indexed by them.
package region

import "strings"

// Code identifies one of the nine regions.
type Code uint8

// The nine region codes, in reporting order.
const (
	Sydney Code = iota
	Melbourne
	Brisbane
	Adelaide
	Perth
	Hobart
	Darwin
	Canberra
	OtherTerritories

	// NumCodes is the number of region codes. It never changes.
	NumCodes = 9
)

var symbols = [NumCodes]string{
	"1gsyd", "2gmel", "3gbri", "4gade", "5gper", "6ghob", "7gdar", "8acte", "9oter",
}

var names = [NumCodes]string{
	"Greater Sydney",
	"Greater Melbourne",
	"Greater Brisbane",
	"Greater Adelaide",
	"Greater Perth",
	"Greater Hobart",
	"Greater Darwin",
	"Greater Canberra",
	"Great Other Territories",
}

// All returns every code in reporting order.
func All() [NumCodes]Code {
	var all [NumCodes]Code
	for i := range all {
		all[i] = Code(i)
	}
	return all
}

// String returns the symbolic code, e.g. "1gsyd".
func (c Code) String() string {
	if !c.Valid() {
		return "invalid"
	}
	return symbols[c]
}

// Short returns the symbol without its leading digit, e.g. "gsyd".
func (c Code) Short() string {
	if !c.Valid() {
		return "invalid"
	}
	return symbols[c][1:]
}

// Name returns the human readable region name.
func (c Code) Name() string {
	if !c.Valid() {
		return "invalid"
	}
	return names[c]
}

// Valid reports whether c is one of the nine codes.
func (c Code) Valid() bool {
	return c < NumCodes
}

// Parse maps a symbolic code such as "2gmel" to its Code. Matching is
// case-insensitive. Codes outside the closed set (for example the rural
// "1rnsw") report false.
func Parse(s string) (Code, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, sym := range symbols {
		if sym == s {
			return Code(i), true
		}
	}
	return 0, false
}

// Counts holds one non-negative counter per region. Being an array it
// always carries all nine codes and copies by value.
type Counts [NumCodes]int64

// Add increments the counter for c by n.
func (c *Counts) Add(code Code, n int64) {
	c[code] += n
}

// Merge adds every counter of other into c.
func (c *Counts) Merge(other Counts) {
	for i := range c {
		c[i] += other[i]
	}
}

// Total is the sum of all counters.
func (c Counts) Total() int64 {
	var total int64
	for _, n := range c {
		total += n
	}
	return total
}

// NonZero is the number of regions with a positive counter.
func (c Counts) NonZero() int {
	n := 0
	for _, v := range c {
		if v != 0 {
			n++
		}
	}
	return n
}
