package metrics

import (
	"github.com/san-kum/spinlab/internal/lattice"
	"github.com/san-kum/spinlab/internal/metropolis"
)

// Acceptance tracks the fraction of accepted flip attempts. Rejections
// are a normal outcome of Metropolis dynamics, not errors; the rate is
// a useful thermometer (it collapses toward zero as T does).
type Acceptance struct {
	attempted int
	accepted  int
}

func NewAcceptance() *Acceptance { return &Acceptance{} }

func (a *Acceptance) Name() string { return "acceptance" }

func (a *Acceptance) Observe(l *lattice.Lattice, stats metropolis.SweepStats, step int) {
	a.attempted += stats.Attempts
	a.accepted += stats.Accepted
}

func (a *Acceptance) Value() float64 {
	if a.attempted == 0 {
		return 0
	}
	return float64(a.accepted) / float64(a.attempted)
}

func (a *Acceptance) Reset() {
	a.attempted = 0
	a.accepted = 0
}
