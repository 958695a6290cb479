// Package report renders run statistics as plain-text tables.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"pkg.jsn.cam/geotally/pkg/engine"
	"pkg.jsn.cam/geotally/pkg/region"
	"pkg.jsn.cam/geotally/pkg/stats"
)

const rule = "─────────────────────────────────────────────────────────────────────────────"

// TopPosters writes the authors with the most records.
func TopPosters(w io.Writer, r *stats.Report, n int) {
	fmt.Fprintf(w, "%-6s %-22s %s\n", "RANK", "AUTHOR ID", "NUMBER OF TWEETS MADE")
	fmt.Fprintln(w, rule)
	for i, a := range r.TopByPosts(n) {
		fmt.Fprintf(w, "%-6s %-22s %d\n", rank(i), a.ID, a.Total)
	}
}

// RegionTotals writes the number of records per region.
func RegionTotals(w io.Writer, r *stats.Report) {
	fmt.Fprintf(w, "%-34s %s\n", "GREATER CAPITAL CITY", "NUMBER OF TWEETS MADE")
	fmt.Fprintln(w, rule)
	for _, code := range region.All() {
		fmt.Fprintf(w, "%-34s %d\n", fmt.Sprintf("%s (%s)", code, code.Name()), r.RegionTotals[code])
	}
}

// TopReach writes the authors who posted from the most regions, with a
// per-region breakdown.
func TopReach(w io.Writer, r *stats.Report, n int) {
	fmt.Fprintf(w, "%-6s %-22s %s\n", "RANK", "AUTHOR ID", "NUMBER OF UNIQUE CITY LOCATIONS AND #TWEETS")
	fmt.Fprintln(w, rule)
	for i, a := range r.TopByReach(n) {
		fmt.Fprintf(w, "%-6s %-22s %s\n", rank(i), a.ID, Breakdown(a))
	}
}

// Breakdown formats an author's regions as
// "2(#5 tweets - 3gsyd, 2gmel, 0gbri, ...)".
func Breakdown(a stats.AuthorStats) string {
	parts := make([]string, 0, region.NumCodes)
	for _, code := range region.All() {
		parts = append(parts, fmt.Sprintf("%d%s", a.Regions[code], code.Short()))
	}
	return fmt.Sprintf("%d(#%d tweets - %s)", a.UniqueRegions, a.Total, strings.Join(parts, ", "))
}

// Workers writes the per-worker scan summary.
func Workers(w io.Writer, workers []engine.WorkerReport) {
	fmt.Fprintf(w, "%-7s %-26s %-10s %-10s %-9s %s\n", "WORKER", "RANGE", "SIZE", "RECORDS", "STITCHED", "ELAPSED")
	fmt.Fprintln(w, rule)
	for _, wr := range workers {
		fmt.Fprintf(w, "%-7d %-26s %-10s %-10d %-9t %v\n",
			wr.Range.Index,
			fmt.Sprintf("[%d, %d)", wr.Range.Start, wr.Range.End),
			humanize.Bytes(uint64(wr.Range.Len())),
			wr.Records,
			wr.Stitched,
			wr.Elapsed)
	}
}

// All writes the three task tables the way a run prints them.
func All(w io.Writer, r *stats.Report, n int) {
	fmt.Fprint(w, "\nTask 1:\n\n")
	TopPosters(w, r, n)
	fmt.Fprint(w, "\nTask 2:\n\n")
	RegionTotals(w, r)
	fmt.Fprint(w, "\nTask 3:\n\n")
	TopReach(w, r, n)
}

func rank(i int) string {
	return fmt.Sprintf("#%d", i+1)
}
