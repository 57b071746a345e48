package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/spinlab/internal/lattice"
	"github.com/san-kum/spinlab/internal/metropolis"
	"github.com/san-kum/spinlab/internal/sim"
)

func runSmallSimulation(t *testing.T) (lattice.Params, sim.Config, *sim.Result) {
	t.Helper()

	p := lattice.DefaultParams(4, 2.0)
	rng := rand.New(rand.NewSource(8))
	l, err := lattice.New(p, rng)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}

	cfg := sim.Config{Steps: 30, ReportEvery: 10, Seed: 8}
	result, err := sim.New(l, metropolis.NewUpdater(rng)).Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return p, cfg, result
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	p, cfg, result := runSmallSimulation(t)

	runID, err := st.Save(p, cfg, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Size != 4 || meta.Temperature != 2.0 || meta.Seed != 8 {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if meta.Steps != 30 {
		t.Errorf("steps = %d, want 30", meta.Steps)
	}

	samples, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}
	if len(samples) != len(result.Samples) {
		t.Fatalf("series length %d, want %d", len(samples), len(result.Samples))
	}
	for i, s := range samples {
		if s.Step != result.Samples[i].Step || s.Magnetization != result.Samples[i].Magnetization {
			t.Errorf("sample %d mismatch: %+v vs %+v", i, s, result.Samples[i])
		}
	}

	grid, err := st.LoadGrid(runID)
	if err != nil {
		t.Fatalf("load grid failed: %v", err)
	}
	if len(grid) != 4 {
		t.Fatalf("grid has %d rows, want 4", len(grid))
	}
	for r := range grid {
		for c := range grid[r] {
			if grid[r][c] != result.FinalGrid[r][c] {
				t.Errorf("grid mismatch at (%d,%d)", r, c)
			}
		}
	}
}

func TestLoadSeriesRejectsCorruptRow(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runDir := filepath.Join(dir, "ising_L4_1")
	if err := os.MkdirAll(runDir, 0755); err != nil {
		t.Fatal(err)
	}
	series := "step,magnetization,energy,acceptance\n0,16,-32,0\n10,oops,-30.5,0.25\n"
	if err := os.WriteFile(filepath.Join(runDir, "series.csv"), []byte(series), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := st.LoadSeries("ising_L4_1")
	if err == nil {
		t.Fatal("corrupt series row must not load silently")
	}
	if !strings.Contains(err.Error(), "row 2") {
		t.Errorf("error should name the bad row, got: %v", err)
	}
}

func TestListRuns(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	p, cfg, result := runSmallSimulation(t)
	if _, err := st.Save(p, cfg, result); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestListMissingBaseDir(t *testing.T) {
	st := New("/nonexistent/spinlab-test")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list should tolerate missing dir: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestExportJSON(t *testing.T) {
	meta := &RunMetadata{
		ID: "ising_L2_1", Size: 2, Temperature: 1.5, Coupling: 1, Steps: 10,
		Metrics: map[string]float64{"acceptance": 0.3},
	}
	samples := []sim.Sample{{Step: 0, Magnetization: 4, Energy: -8}}
	grid := [][]int8{{1, 1}, {1, 1}}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, samples, grid); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var out ExportData
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out.ID != "ising_L2_1" || out.Size != 2 || len(out.Samples) != 1 {
		t.Errorf("export mismatch: %+v", out)
	}
}
