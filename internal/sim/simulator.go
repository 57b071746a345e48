package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/spinlab/internal/lattice"
	"github.com/san-kum/spinlab/internal/metropolis"
	"github.com/san-kum/spinlab/internal/observable"
)

// Simulator drives a lattice through a fixed number of Metropolis
// sweeps. It is the single writer of its lattice; metrics and observers
// only read. Not safe for concurrent use — run replicas via Ensemble.
type Simulator struct {
	lat       *lattice.Lattice
	updater   *metropolis.Updater
	metrics   []Metric
	observers []Observer
}

func New(l *lattice.Lattice, u *metropolis.Updater) *Simulator {
	return &Simulator{
		lat:       l,
		updater:   u,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Lattice exposes the driven lattice for read-only consumers.
func (s *Simulator) Lattice() *lattice.Lattice { return s.lat }

// Run executes exactly cfg.Steps sweeps. There is no convergence check
// or early exit beyond context cancellation; Steps=0 is valid and leaves
// the grid at its initial configuration.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	samples := 2
	if cfg.ReportEvery > 0 {
		samples = cfg.Steps/cfg.ReportEvery + 2
	}
	result := &Result{
		Samples: make([]Sample, 0, samples),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result.Samples = append(result.Samples, s.sample(0, metropolis.SweepStats{}))

	for step := 0; step < cfg.Steps; step++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		stats := s.updater.Sweep(s.lat)
		result.Attempted += stats.Attempts
		result.Accepted += stats.Accepted
		result.StepsTaken++

		for _, m := range s.metrics {
			m.Observe(s.lat, stats, step)
		}
		for _, obs := range s.observers {
			obs.OnStep(s.lat, step)
		}

		done := step + 1
		if done == cfg.Steps || (cfg.ReportEvery > 0 && done%cfg.ReportEvery == 0) {
			result.Samples = append(result.Samples, s.sample(done, stats))
		}
	}

	result.FinalGrid = s.lat.Grid()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback executes sweeps, handing the lattice and the latest
// stats to the callback after each one. Returning false stops the run.
// Nothing is sampled and metrics are left untouched; the run command
// uses this for its warm-up phase, where equilibration sweeps are
// discarded before measurement begins.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(l *lattice.Lattice, step int, stats metropolis.SweepStats) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	for step := 0; step < cfg.Steps; step++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		stats := s.updater.Sweep(s.lat)
		if !callback(s.lat, step+1, stats) {
			return nil
		}
	}

	return nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Steps < 0 {
		return fmt.Errorf("steps must be non-negative, got %d", cfg.Steps)
	}
	if cfg.ReportEvery < 0 {
		return fmt.Errorf("report cadence must be non-negative, got %d", cfg.ReportEvery)
	}
	return nil
}

func (s *Simulator) sample(step int, stats metropolis.SweepStats) Sample {
	return Sample{
		Step:          step,
		Magnetization: observable.Magnetization(s.lat),
		Energy:        observable.Energy(s.lat),
		Acceptance:    stats.AcceptanceRate(),
	}
}
