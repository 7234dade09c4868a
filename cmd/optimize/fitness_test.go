package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSummarizeSkipsFailedSeeds(t *testing.T) {
	ev, err := summarize([]SeedResult{
		{Seed: 1, PreyTicks: 400, PredTicks: 200, Quality: 0.5, Fitness: -220},
		{Seed: 2, Error: "creating output manager: boom"},
		{Seed: 3, PreyTicks: 600, PredTicks: 400, Quality: 0.0, Fitness: -400},
	})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if ev.Failed != 1 {
		t.Errorf("Failed = %d, want 1", ev.Failed)
	}
	if ev.Fitness != -310 {
		t.Errorf("Fitness = %v, want -310 (failed seed excluded)", ev.Fitness)
	}
	if ev.Quality != 0.25 {
		t.Errorf("Quality = %v, want 0.25", ev.Quality)
	}
	if ev.PreyTicks != 500 || ev.PredTicks != 300 {
		t.Errorf("ticks = %v/%v, want 500/300", ev.PreyTicks, ev.PredTicks)
	}
	if len(ev.Seeds) != 3 {
		t.Errorf("Seeds = %d, want all 3 kept for the report", len(ev.Seeds))
	}
}

func TestSummarizeAllFailed(t *testing.T) {
	_, err := summarize([]SeedResult{{Seed: 1, Error: "x"}, {Seed: 2, Error: "y"}})
	if !errors.Is(err, ErrNoRuns) {
		t.Errorf("err = %v, want ErrNoRuns", err)
	}
}

func TestExtinctionClock(t *testing.T) {
	var c extinctionClock
	c.observe(10, 100)
	for i := 0; i < extinctionGraceTicks-1; i++ {
		c.observe(minViablePop-1, int32(101+i))
	}
	if c.ended != 0 {
		t.Fatalf("ended at %d before the grace period ran out", c.ended)
	}
	c.observe(minViablePop-1, 500)
	if c.ended != 500 {
		t.Errorf("ended = %d, want 500", c.ended)
	}
	c.observe(50, 600)
	if got := c.result(900); got != 500 {
		t.Errorf("result = %d, want 500 (extinction is final)", got)
	}

	var hard extinctionClock
	hard.observe(0, 70)
	if got := hard.result(900); got != 70 {
		t.Errorf("hard extinction result = %d, want 70", got)
	}

	var alive extinctionClock
	alive.observe(20, 70)
	if got := alive.result(900); got != 900 {
		t.Errorf("survivor result = %d, want last tick 900", got)
	}
}

func TestCoexisted(t *testing.T) {
	if got := (SeedResult{PreyTicks: 300, PredTicks: 120}).Coexisted(); got != 120 {
		t.Errorf("Coexisted = %d, want 120", got)
	}
}

func TestRunLogWritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	l, err := newRunLog(dir)
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector()
	for n := 1; n <= 2; n++ {
		if err := l.record(n, pv, pv.DefaultVector(), Evaluation{Fitness: -100}, 0); err != nil {
			t.Fatalf("record %d: %v", n, err)
		}
	}
	l.Close()

	evals := readLines(t, filepath.Join(dir, "evals.csv"))
	if len(evals) != 3 || !strings.HasPrefix(evals[0], "eval,fitness") {
		t.Errorf("evals.csv = %q, want header plus 2 rows", evals)
	}
	params := readLines(t, filepath.Join(dir, "params.csv"))
	if want := 1 + 2*pv.Dim(); len(params) != want {
		t.Errorf("params.csv has %d lines, want %d", len(params), want)
	}
	if params[0] != "eval,param,value" {
		t.Errorf("params header = %q", params[0])
	}
}

func TestWriteSeeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "best_seeds.csv")
	err := writeSeeds(path, []SeedResult{
		{Seed: 42, PreyTicks: 900, PredTicks: 700},
		{Seed: 1042, Error: "failed"},
	})
	if err != nil {
		t.Fatal(err)
	}
	lines := readLines(t, path)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if !strings.HasPrefix(lines[1], "42,900,700,") {
		t.Errorf("first seed row = %q", lines[1])
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}
