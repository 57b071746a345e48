package metrics

import (
	"math"

	"github.com/san-kum/spinlab/internal/lattice"
	"github.com/san-kum/spinlab/internal/metropolis"
	"github.com/san-kum/spinlab/internal/observable"
)

// Susceptibility estimates the magnetic susceptibility from magnetization
// fluctuations:
//
//	chi = N * (<m^2> - <|m|>^2) / T
//
// It peaks sharply near the critical temperature, which is what the
// temperature sweep uses to locate Tc.
type Susceptibility struct {
	samples  int
	sumAbs   float64
	sumSq    float64
	sites    float64
	temp     float64
	observed bool
}

func NewSusceptibility() *Susceptibility { return &Susceptibility{} }

func (s *Susceptibility) Name() string { return "susceptibility" }

func (s *Susceptibility) Observe(l *lattice.Lattice, stats metropolis.SweepStats, step int) {
	m := observable.MagnetizationPerSpin(l)
	s.sumAbs += math.Abs(m)
	s.sumSq += m * m
	s.samples++
	if !s.observed {
		s.sites = float64(l.Sites())
		s.temp = l.Params().T
		s.observed = true
	}
}

func (s *Susceptibility) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	n := float64(s.samples)
	meanAbs := s.sumAbs / n
	meanSq := s.sumSq / n
	return s.sites * (meanSq - meanAbs*meanAbs) / s.temp
}

func (s *Susceptibility) Reset() {
	s.samples = 0
	s.sumAbs = 0
	s.sumSq = 0
	s.observed = false
}

// SpecificHeat estimates the specific heat per spin from energy
// fluctuations:
//
//	c = (<E^2> - <E>^2) / (N * T^2)
type SpecificHeat struct {
	samples  int
	sum      float64
	sumSq    float64
	sites    float64
	temp     float64
	observed bool
}

func NewSpecificHeat() *SpecificHeat { return &SpecificHeat{} }

func (c *SpecificHeat) Name() string { return "specific_heat" }

func (c *SpecificHeat) Observe(l *lattice.Lattice, stats metropolis.SweepStats, step int) {
	e := observable.Energy(l)
	c.sum += e
	c.sumSq += e * e
	c.samples++
	if !c.observed {
		c.sites = float64(l.Sites())
		c.temp = l.Params().T
		c.observed = true
	}
}

func (c *SpecificHeat) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	n := float64(c.samples)
	mean := c.sum / n
	meanSq := c.sumSq / n
	return (meanSq - mean*mean) / (c.sites * c.temp * c.temp)
}

func (c *SpecificHeat) Reset() {
	c.samples = 0
	c.sum = 0
	c.sumSq = 0
	c.observed = false
}
