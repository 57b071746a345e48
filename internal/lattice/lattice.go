package lattice

import (
	"fmt"
	"math/rand"
)

// Spin is a single lattice site value, always +1 or -1.
type Spin = int8

// Params holds the physical parameters of a lattice.
type Params struct {
	L int     // side length
	T float64 // temperature, must be > 0
	J float64 // coupling constant
	H float64 // external field
}

// DefaultParams returns the conventional zero-field ferromagnet setup.
func DefaultParams(l int, t float64) Params {
	return Params{L: l, T: t, J: 1.0, H: 0.0}
}

// Lattice is an L x L grid of spins with periodic boundaries.
// All neighbor lookups wrap modulo L (toroidal topology). The grid is
// mutated one cell at a time through Flip; there is no other mutation path.
type Lattice struct {
	params Params
	spins  []Spin
}

// New builds a lattice with every spin independently set to +1 or -1
// with equal probability, drawn from rng.
func New(p Params, rng *rand.Rand) (*Lattice, error) {
	if p.L < 1 {
		return nil, fmt.Errorf("%w: side length %d", ErrInvalidSize, p.L)
	}
	if p.T <= 0 {
		return nil, fmt.Errorf("%w: temperature %g", ErrInvalidTemperature, p.T)
	}

	l := &Lattice{
		params: p,
		spins:  make([]Spin, p.L*p.L),
	}
	for i := range l.spins {
		if rng.Intn(2) == 0 {
			l.spins[i] = 1
		} else {
			l.spins[i] = -1
		}
	}
	return l, nil
}

// NewUniform builds a lattice with every spin set to the same value.
func NewUniform(p Params, s Spin) (*Lattice, error) {
	if p.L < 1 {
		return nil, fmt.Errorf("%w: side length %d", ErrInvalidSize, p.L)
	}
	if p.T <= 0 {
		return nil, fmt.Errorf("%w: temperature %g", ErrInvalidTemperature, p.T)
	}
	if s != 1 && s != -1 {
		return nil, fmt.Errorf("%w: spin %d", ErrInvalidSpin, s)
	}

	l := &Lattice{
		params: p,
		spins:  make([]Spin, p.L*p.L),
	}
	for i := range l.spins {
		l.spins[i] = s
	}
	return l, nil
}

func (l *Lattice) Params() Params { return l.params }
func (l *Lattice) Size() int      { return l.params.L }

// SetTemperature adjusts T without touching the grid. Used by the live
// view's interactive tuning; the same positivity rule as construction
// applies.
func (l *Lattice) SetTemperature(t float64) error {
	if t <= 0 {
		return fmt.Errorf("%w: temperature %g", ErrInvalidTemperature, t)
	}
	l.params.T = t
	return nil
}

// Sites returns the total number of cells, L*L.
func (l *Lattice) Sites() int { return len(l.spins) }

func (l *Lattice) wrap(i int) int {
	n := l.params.L
	return ((i % n) + n) % n
}

// Spin returns the value at (row, col). Out-of-range indices wrap
// modulo L, so callers get periodic-boundary semantics for free.
func (l *Lattice) Spin(row, col int) Spin {
	return l.spins[l.wrap(row)*l.params.L+l.wrap(col)]
}

// Flip negates the spin at (row, col). Indices wrap modulo L.
func (l *Lattice) Flip(row, col int) {
	l.spins[l.wrap(row)*l.params.L+l.wrap(col)] *= -1
}

// Grid returns a copy of the full grid as rows of spins.
// Mutating the returned slices does not affect the lattice.
func (l *Lattice) Grid() [][]Spin {
	n := l.params.L
	grid := make([][]Spin, n)
	for r := 0; r < n; r++ {
		grid[r] = make([]Spin, n)
		copy(grid[r], l.spins[r*n:(r+1)*n])
	}
	return grid
}
