package report

import (
	"strings"
	"testing"

	"pkg.jsn.cam/geotally/pkg/aggregate"
	"pkg.jsn.cam/geotally/pkg/engine"
	"pkg.jsn.cam/geotally/pkg/partition"
	"pkg.jsn.cam/geotally/pkg/region"
	"pkg.jsn.cam/geotally/pkg/stats"
)

func sampleReport() *stats.Report {
	g := aggregate.New()
	g.Add("42", region.Sydney, true)
	g.Add("42", region.Melbourne, true)
	g.Add("42", 0, false)
	g.Add("7", region.Melbourne, true)
	return stats.Extract(g)
}

func TestBreakdown(t *testing.T) {
	t.Parallel()

	a, _ := sampleReport().Author("42")
	want := "2(#3 tweets - 1gsyd, 1gmel, 0gbri, 0gade, 0gper, 0ghob, 0gdar, 0acte, 0oter)"
	if got := Breakdown(a); got != want {
		t.Errorf("Breakdown() = %q, want %q", got, want)
	}
}

func TestAll(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	All(&b, sampleReport(), 10)
	out := b.String()

	for _, want := range []string{
		"Task 1:", "Task 2:", "Task 3:",
		"#1     42",
		"#2     7",
		"1gsyd (Greater Sydney)",
		"2gmel (Greater Melbourne)          2",
		"9oter (Great Other Territories)    0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWorkers(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	Workers(&b, []engine.WorkerReport{
		{Range: partition.Range{Index: 0, Start: 0, End: 2048}, Records: 12, Stitched: true},
	})

	out := b.String()
	for _, want := range []string{"[0, 2048)", "2.0 kB", "12", "true"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
