// Package lattice provides the spin-grid state for Ising model simulation.
//
// A [Lattice] is an L x L grid of spins, each +1 or -1, with periodic
// boundary conditions: indices wrap modulo L in both directions, so the
// grid has toroidal topology and every site has exactly four neighbors.
//
// The lattice owns its physical parameters (coupling J, field H,
// temperature T) and exposes a single mutation primitive, [Lattice.Flip].
// Observables are computed from snapshots by the observable package.
//
// # Thread Safety
//
// Lattice values are NOT thread-safe. The simulation driver is the single
// writer; concurrent replicas each own a private lattice (see sim.Ensemble).
package lattice
