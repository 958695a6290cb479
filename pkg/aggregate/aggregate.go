// Package aggregate accumulates per-author region counts and merges the
// partial results produced by scanning workers.
package aggregate

import "pkg.jsn.cam/geotally/pkg/region"

// Author is the tally for one author id. Regions always holds all nine
// codes; Unresolved counts records whose location matched no region.
type Author struct {
	Regions    region.Counts `json:"regions"`
	Unresolved int64         `json:"unresolved"`
}

// Total is the number of records attributed to the author, resolved or not.
func (a Author) Total() int64 {
	return a.Regions.Total() + a.Unresolved
}

// Located is the number of records that resolved to a region.
func (a Author) Located() int64 {
	return a.Regions.Total()
}

// UniqueRegions is the number of regions with at least one record.
func (a Author) UniqueRegions() int {
	return a.Regions.NonZero()
}

func (a *Author) merge(other Author) {
	a.Regions.Merge(other.Regions)
	a.Unresolved += other.Unresolved
}

// Aggregate maps author ids to tallies. A worker fills one for its own
// byte range (the partial aggregate) and the coordinator merges those into
// the global aggregate. Values are stored by value, so no two aggregates
// ever share state.
type Aggregate struct {
	Authors map[string]Author `json:"authors"`
	Records int64             `json:"records"`
}

// New returns an empty aggregate.
func New() *Aggregate {
	return &Aggregate{Authors: make(map[string]Author)}
}

// Add attributes one record to author. When ok is false the record is
// counted as processed but no region is incremented.
func (a *Aggregate) Add(author string, code region.Code, ok bool) {
	t := a.Authors[author]
	if ok {
		t.Regions.Add(code, 1)
	} else {
		t.Unresolved++
	}
	a.Authors[author] = t
	a.Records++
}

// Len returns the number of distinct authors.
func (a *Aggregate) Len() int {
	return len(a.Authors)
}

// Merge folds other into a. other is left untouched.
func (a *Aggregate) Merge(other *Aggregate) {
	if other == nil {
		return
	}

	if a.Authors == nil {
		a.Authors = make(map[string]Author, len(other.Authors))
	}

	for id, t := range other.Authors {
		cur := a.Authors[id]
		cur.merge(t)
		a.Authors[id] = cur
	}
	a.Records += other.Records
}

// Merge combines partials into a new aggregate. Addition of counters is
// commutative and associative, so the result does not depend on the order
// or grouping of parts. Nil parts merge as no-ops.
func Merge(parts ...*Aggregate) *Aggregate {
	size := 0
	for _, p := range parts {
		if p != nil && len(p.Authors) > size {
			size = len(p.Authors)
		}
	}

	out := &Aggregate{Authors: make(map[string]Author, size)}
	for _, p := range parts {
		out.Merge(p)
	}

	return out
}

// RegionTotals sums every author's region counts.
func (a *Aggregate) RegionTotals() region.Counts {
	var totals region.Counts
	for _, t := range a.Authors {
		totals.Merge(t.Regions)
	}
	return totals
}
