// Package metropolis implements single-spin-flip Metropolis dynamics.
//
// One sweep proposes L^2 flips at uniformly random sites. Each proposal is
// resolved and applied immediately, so later attempts within a sweep see
// earlier flips. This strict sequencing is a correctness requirement: a
// parallel flip loop would let neighboring updates race on shared bonds.
// (A checkerboard sublattice decomposition could lift that restriction;
// this package deliberately does not.)
package metropolis

import (
	"math"
	"math/rand"

	"github.com/san-kum/spinlab/internal/lattice"
)

// DeltaE returns the energy change of flipping the spin at (row, col):
//
//	dE = 2*J*s*(up + down + left + right) + 2*H*s
//
// Only the four bonds touching the target spin change, so the delta is
// O(1) in lattice size. Indices wrap modulo L. Pure; the lattice is not
// mutated.
func DeltaE(l *lattice.Lattice, row, col int) float64 {
	p := l.Params()
	s := float64(l.Spin(row, col))
	neighbors := float64(l.Spin(row-1, col) + l.Spin(row+1, col) + l.Spin(row, col-1) + l.Spin(row, col+1))
	return 2*p.J*s*neighbors + 2*p.H*s
}

// SweepStats reports what happened during one sweep.
type SweepStats struct {
	Attempts int
	Accepted int
}

// AcceptanceRate returns accepted/attempts, or 0 for an empty sweep.
func (s SweepStats) AcceptanceRate() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Accepted) / float64(s.Attempts)
}

// Updater applies Metropolis sweeps to a lattice using an explicit
// random source. It is the only code path that mutates a lattice during
// simulation.
type Updater struct {
	rng *rand.Rand
}

func NewUpdater(rng *rand.Rand) *Updater {
	return &Updater{rng: rng}
}

// Sweep performs L^2 flip attempts. Each attempt draws a site uniformly,
// computes the local delta, and accepts the flip when dE < 0 or when a
// fresh uniform draw in [0,1) falls below exp(-dE/T). T > 0 is guaranteed
// by lattice construction.
func (u *Updater) Sweep(l *lattice.Lattice) SweepStats {
	n := l.Size()
	t := l.Params().T

	stats := SweepStats{Attempts: l.Sites()}
	for a := 0; a < stats.Attempts; a++ {
		row := u.rng.Intn(n)
		col := u.rng.Intn(n)

		dE := DeltaE(l, row, col)
		if dE < 0 || u.rng.Float64() < math.Exp(-dE/t) {
			l.Flip(row, col)
			stats.Accepted++
		}
	}
	return stats
}
