// Package stats derives per-author and per-region figures from a merged
// aggregate and ranks authors for reporting.
package stats

import (
	"cmp"
	"slices"

	"pkg.jsn.cam/geotally/pkg/aggregate"
	"pkg.jsn.cam/geotally/pkg/region"
)

// AuthorStats are the derived figures for one author.
type AuthorStats struct {
	ID            string        `json:"id"`
	Regions       region.Counts `json:"regions"`
	Total         int64         `json:"total"`
	Located       int64         `json:"located"`
	Unresolved    int64         `json:"unresolved"`
	UniqueRegions int           `json:"unique_regions"`
}

// Report holds everything the presentation layer needs.
type Report struct {
	// Authors is ordered by author id.
	Authors      []AuthorStats `json:"authors"`
	RegionTotals region.Counts `json:"region_totals"`
	Records      int64         `json:"records"`
}

// Extract computes statistics for every author in g.
func Extract(g *aggregate.Aggregate) *Report {
	r := &Report{Authors: make([]AuthorStats, 0, g.Len()), Records: g.Records}

	for id, a := range g.Authors {
		r.Authors = append(r.Authors, AuthorStats{
			ID:            id,
			Regions:       a.Regions,
			Total:         a.Total(),
			Located:       a.Located(),
			Unresolved:    a.Unresolved,
			UniqueRegions: a.UniqueRegions(),
		})
		r.RegionTotals.Merge(a.Regions)
	}

	slices.SortFunc(r.Authors, func(a, b AuthorStats) int {
		return compareIDs(a.ID, b.ID)
	})

	return r
}

// Author returns the figures for id.
func (r *Report) Author(id string) (AuthorStats, bool) {
	i, ok := slices.BinarySearchFunc(r.Authors, id, func(a AuthorStats, id string) int {
		return compareIDs(a.ID, id)
	})
	if !ok {
		return AuthorStats{}, false
	}
	return r.Authors[i], true
}

// TopByPosts returns up to n authors with the most records, ties broken by
// ascending author id. n <= 0 returns every author.
func (r *Report) TopByPosts(n int) []AuthorStats {
	return r.top(n, func(a, b AuthorStats) int {
		return cmp.Compare(b.Total, a.Total)
	})
}

// TopByReach returns up to n authors ordered by number of distinct regions
// and then by total records, both descending, ties broken by ascending
// author id.
func (r *Report) TopByReach(n int) []AuthorStats {
	return r.top(n, func(a, b AuthorStats) int {
		if c := cmp.Compare(b.UniqueRegions, a.UniqueRegions); c != 0 {
			return c
		}
		return cmp.Compare(b.Total, a.Total)
	})
}

func (r *Report) top(n int, less func(a, b AuthorStats) int) []AuthorStats {
	ranked := slices.Clone(r.Authors)
	// Authors is already in id order, so a stable sort keeps ties by id.
	slices.SortStableFunc(ranked, less)

	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// compareIDs orders numeric ids by value: shorter ids first, then
// lexicographically.
func compareIDs(a, b string) int {
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	return cmp.Compare(a, b)
}
