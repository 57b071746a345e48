package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/spinlab/internal/lattice"
	"github.com/san-kum/spinlab/internal/metropolis"
)

func uniformLattice(t *testing.T, l int, temp float64) *lattice.Lattice {
	t.Helper()
	lat, err := lattice.NewUniform(lattice.DefaultParams(l, temp), 1)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	return lat
}

func TestAbsMagnetization(t *testing.T) {
	lat := uniformLattice(t, 4, 1.0)
	m := NewAbsMagnetization()

	m.Observe(lat, metropolis.SweepStats{}, 0)
	if got := m.Value(); got != 1.0 {
		t.Errorf("all-up |m| = %f, want 1", got)
	}

	// Flip two spins: |m| = 12/16.
	lat.Flip(0, 0)
	lat.Flip(1, 1)
	m.Observe(lat, metropolis.SweepStats{}, 1)
	want := (1.0 + 12.0/16.0) / 2
	if got := m.Value(); math.Abs(got-want) > 1e-12 {
		t.Errorf("mean |m| = %f, want %f", got, want)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestEnergyPerSpin(t *testing.T) {
	lat := uniformLattice(t, 2, 1.0)
	e := NewEnergyPerSpin()

	e.Observe(lat, metropolis.SweepStats{}, 0)
	// 2x2 all-up: E = -8 over 4 sites.
	if got := e.Value(); got != -2.0 {
		t.Errorf("energy per spin = %f, want -2", got)
	}
}

func TestAcceptance(t *testing.T) {
	lat := uniformLattice(t, 4, 1.0)
	a := NewAcceptance()

	if a.Value() != 0 {
		t.Error("expected zero before observations")
	}

	a.Observe(lat, metropolis.SweepStats{Attempts: 16, Accepted: 4}, 0)
	a.Observe(lat, metropolis.SweepStats{Attempts: 16, Accepted: 8}, 1)
	if got := a.Value(); math.Abs(got-12.0/32.0) > 1e-12 {
		t.Errorf("acceptance = %f, want 0.375", got)
	}

	a.Reset()
	if a.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestSusceptibilityFrozenState(t *testing.T) {
	// A state that never fluctuates has zero susceptibility.
	lat := uniformLattice(t, 4, 2.0)
	s := NewSusceptibility()

	for i := 0; i < 10; i++ {
		s.Observe(lat, metropolis.SweepStats{}, i)
	}
	if got := s.Value(); math.Abs(got) > 1e-12 {
		t.Errorf("frozen susceptibility = %f, want 0", got)
	}
}

func TestSusceptibilityFluctuations(t *testing.T) {
	lat := uniformLattice(t, 2, 2.0)
	s := NewSusceptibility()

	// Alternate between m=1 and m=0.5 (one spin down on 2x2).
	s.Observe(lat, metropolis.SweepStats{}, 0)
	lat.Flip(0, 0)
	s.Observe(lat, metropolis.SweepStats{}, 1)

	// <|m|> = 0.75, <m^2> = 0.625, chi = 4*(0.625-0.5625)/2 = 0.125
	if got := s.Value(); math.Abs(got-0.125) > 1e-12 {
		t.Errorf("susceptibility = %f, want 0.125", got)
	}
}

func TestSpecificHeatFrozenState(t *testing.T) {
	lat := uniformLattice(t, 4, 2.0)
	c := NewSpecificHeat()

	for i := 0; i < 10; i++ {
		c.Observe(lat, metropolis.SweepStats{}, i)
	}
	if got := c.Value(); math.Abs(got) > 1e-9 {
		t.Errorf("frozen specific heat = %f, want 0", got)
	}
}
