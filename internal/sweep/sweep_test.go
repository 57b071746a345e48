package sweep

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/spinlab/internal/sim"
)

func TestTemperatures(t *testing.T) {
	temps := Temperatures(1.0, 3.0, 5)
	want := []float64{1.0, 1.5, 2.0, 2.5, 3.0}

	if len(temps) != len(want) {
		t.Fatalf("got %d temperatures, want %d", len(temps), len(want))
	}
	for i := range want {
		if math.Abs(temps[i]-want[i]) > 1e-12 {
			t.Errorf("temps[%d] = %f, want %f", i, temps[i], want[i])
		}
	}

	if got := Temperatures(2.0, 5.0, 1); len(got) != 1 || got[0] != 2.0 {
		t.Errorf("single point sweep = %v, want [2]", got)
	}
	if Temperatures(1, 2, 0) != nil {
		t.Error("expected nil for zero points")
	}
}

func TestRunValidation(t *testing.T) {
	s := New(4, 1.0, 0.0, nil, 2, 1)
	if _, err := s.Run(context.Background(), sim.Config{Steps: 1}); err == nil {
		t.Error("expected error for empty temperature list")
	}

	s = New(4, 1.0, 0.0, []float64{2.0}, 0, 1)
	if _, err := s.Run(context.Background(), sim.Config{Steps: 1}); err == nil {
		t.Error("expected error for zero replicas")
	}
}

func TestRunOrderDisorderTrend(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping equilibration in short mode")
	}

	s := New(8, 1.0, 0.0, []float64{1.0, 5.0}, 3, 42)
	result, err := s.Run(context.Background(), sim.Config{Steps: 400, ReportEvery: 0})
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	if len(result.Points) != 2 {
		t.Fatalf("got %d points, want 2", len(result.Points))
	}

	cold, hot := result.Points[0], result.Points[1]
	if cold.AbsMagnetization <= hot.AbsMagnetization {
		t.Errorf("cold |m| (%f) should exceed hot |m| (%f)", cold.AbsMagnetization, hot.AbsMagnetization)
	}
	if cold.EnergyPerSpin >= hot.EnergyPerSpin {
		t.Errorf("cold energy (%f) should lie below hot energy (%f)", cold.EnergyPerSpin, hot.EnergyPerSpin)
	}
	if cold.Acceptance >= hot.Acceptance {
		t.Errorf("cold acceptance (%f) should lie below hot acceptance (%f)", cold.Acceptance, hot.Acceptance)
	}
}

func TestRunCriticalEstimateWithinRange(t *testing.T) {
	s := New(4, 1.0, 0.0, []float64{1.5, 2.3, 4.0}, 2, 7)
	result, err := s.Run(context.Background(), sim.Config{Steps: 100, ReportEvery: 0})
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	found := false
	for _, temp := range []float64{1.5, 2.3, 4.0} {
		if result.CriticalEstimate == temp {
			found = true
		}
	}
	if !found {
		t.Errorf("critical estimate %f is not one of the scanned temperatures", result.CriticalEstimate)
	}
}

func TestRunCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(4, 1.0, 0.0, []float64{1.0, 2.0}, 2, 1)
	if _, err := s.Run(ctx, sim.Config{Steps: 10}); err == nil {
		t.Error("expected context error")
	}
}
