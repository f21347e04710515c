// internal/distintegration/integration_test.go
package distintegration

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"polycore/internal/distapp"
)

func write(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func distCell(t *testing.T, path, a, b string) string {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	rows, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	if err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
	col := -1
	for j, name := range rows[0] {
		if name == b {
			col = j
		}
	}
	if col < 0 {
		t.Fatalf("sample %s not in header %v", b, rows[0])
	}
	for _, row := range rows[1:] {
		if row[0] == a {
			return row[col]
		}
	}
	t.Fatalf("sample %s not in matrix", a)
	return ""
}

func TestDistOnlyRun(t *testing.T) {
	dir := t.TempDir()
	aln := write(t, dir, "core.aln", ">ref\nAAAA\n>s1\nAAAT\n>s2\nAATT\n")
	out := filepath.Join(dir, "out")

	var stdout, stderr bytes.Buffer
	code := distapp.Run([]string{"--out-dir", out, "--quiet", aln}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "3 genomes, 4 sites") {
		t.Errorf("stdout = %q", stdout.String())
	}

	wide := filepath.Join(out, "dist_wide.csv")
	if got := distCell(t, wide, "s1", "s2"); got != "0.250000" {
		t.Errorf("D(s1,s2) = %s, want 0.250000", got)
	}
	if got := distCell(t, wide, "s2", "s1"); got != "0.250000" {
		t.Errorf("matrix not symmetric: D(s2,s1) = %s", got)
	}
	if got := distCell(t, wide, "s1", "s1"); got != "0.000000" {
		t.Errorf("diagonal = %s, want 0.000000", got)
	}
	if _, err := os.Stat(filepath.Join(out, "dist_long.csv")); err != nil {
		t.Errorf("dist_long.csv missing: %v", err)
	}
}

// Aggregation policies diverge on heterozygous sites: a diploid A/T against
// a haploid A is a perfect best-match but half a mean mismatch.
func TestAggregationPolicies(t *testing.T) {
	dir := t.TempDir()
	aln := write(t, dir, "het.aln", ">ref\nAA\n>s1\nAW\n")

	run := func(agg, sub string) string {
		out := filepath.Join(dir, sub)
		var stdout, stderr bytes.Buffer
		code := distapp.Run([]string{"--no-ref", "--dist-agg", agg, "--out-dir", out, "--quiet", aln}, &stdout, &stderr)
		if code != 0 {
			t.Fatalf("run(%s) exit %d, err=%s", agg, code, stderr.String())
		}
		return distCell(t, filepath.Join(out, "dist_wide.csv"), "ref", "s1")
	}

	if got := run("best", "best"); got != "0.000000" {
		t.Errorf("best-match D = %s, want 0.000000", got)
	}
	if got := run("mean", "mean"); got != "0.250000" {
		t.Errorf("mean D = %s, want 0.250000", got)
	}
}

func TestLongOnlySelection(t *testing.T) {
	dir := t.TempDir()
	aln := write(t, dir, "core.aln", ">ref\nAAAA\n>s1\nAAAT\n")
	out := filepath.Join(dir, "out")

	var stdout, stderr bytes.Buffer
	code := distapp.Run([]string{"--long", "--out-dir", out, "--quiet", aln}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, stderr.String())
	}
	if _, err := os.Stat(filepath.Join(out, "dist_long.csv")); err != nil {
		t.Fatalf("dist_long.csv missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "dist_wide.csv")); !os.IsNotExist(err) {
		t.Fatalf("dist_wide.csv should not be written with --long")
	}
}
