package metrics

import (
	"github.com/san-kum/spinlab/internal/lattice"
	"github.com/san-kum/spinlab/internal/metropolis"
	"github.com/san-kum/spinlab/internal/observable"
)

// EnergyPerSpin tracks the mean energy per spin, <E>/N.
type EnergyPerSpin struct {
	samples int
	total   float64
}

func NewEnergyPerSpin() *EnergyPerSpin { return &EnergyPerSpin{} }

func (e *EnergyPerSpin) Name() string { return "energy_per_spin" }

func (e *EnergyPerSpin) Observe(l *lattice.Lattice, stats metropolis.SweepStats, step int) {
	e.total += observable.EnergyPerSpin(l)
	e.samples++
}

func (e *EnergyPerSpin) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *EnergyPerSpin) Reset() {
	e.samples = 0
	e.total = 0
}
