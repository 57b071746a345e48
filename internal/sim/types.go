package sim

import (
	"github.com/san-kum/spinlab/internal/lattice"
	"github.com/san-kum/spinlab/internal/metropolis"
)

// Config controls a simulation run. Steps is the number of Metropolis
// sweeps; ReportEvery is the sampling cadence in sweeps (0 disables
// intermediate samples, the initial and final states are always sampled).
type Config struct {
	Steps       int
	ReportEvery int
	Seed        int64
}

func DefaultConfig() Config {
	return Config{
		Steps:       1000,
		ReportEvery: 100,
	}
}

// Sample is one observation of the running simulation.
type Sample struct {
	Step          int
	Magnetization int
	Energy        float64
	Acceptance    float64
}

// Result is the outcome of a run: the recorded samples, the terminal
// grid configuration, and final metric values.
type Result struct {
	Samples    []Sample
	FinalGrid  [][]lattice.Spin
	Metrics    map[string]float64
	StepsTaken int
	Attempted  int
	Accepted   int
}

// AcceptanceRate returns the overall fraction of accepted flip attempts.
func (r *Result) AcceptanceRate() float64 {
	if r.Attempted == 0 {
		return 0
	}
	return float64(r.Accepted) / float64(r.Attempted)
}

// Metric accumulates a running observable over the course of a run.
type Metric interface {
	Name() string
	Observe(l *lattice.Lattice, stats metropolis.SweepStats, step int)
	Value() float64
	Reset()
}

// Observer is notified after every sweep. Observers only read the
// lattice; mutation stays exclusive to the updater.
type Observer interface {
	OnStep(l *lattice.Lattice, step int)
}
