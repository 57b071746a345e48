package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/spinlab/internal/lattice"
	"github.com/san-kum/spinlab/internal/sim"
)

func TestRenderGrid(t *testing.T) {
	grid := [][]lattice.Spin{
		{1, -1},
		{-1, 1},
	}

	out := RenderGrid(grid)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "██░░" {
		t.Errorf("row 0 = %q", lines[0])
	}
	if lines[1] != "░░██" {
		t.Errorf("row 1 = %q", lines[1])
	}
}

func TestPlotSeries(t *testing.T) {
	samples := []sim.Sample{
		{Step: 0, Magnetization: 16},
		{Step: 100, Magnetization: 8},
		{Step: 200, Magnetization: -4},
	}

	out := PlotSeries(samples, func(s sim.Sample) float64 { return float64(s.Magnetization) }, "magnetization")
	if !strings.Contains(out, "magnetization") {
		t.Error("caption missing from plot")
	}
	if len(out) == 0 {
		t.Error("empty plot")
	}
}

func TestNewModelInvalidParams(t *testing.T) {
	if _, err := NewModel(lattice.Params{L: 0, T: 1}, 1, 30); err == nil {
		t.Error("expected error for invalid lattice params")
	}
}
