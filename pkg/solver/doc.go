// Package solver propagates open-quantum-system dynamics with the
// hierarchical equations of motion (HEOM).
//
// A Solver is constructed once from a system Hamiltonian, a set of baths
// from package bath and a hierarchy truncation depth; the hierarchy
// structure is built at construction and cached, so a Solver can be invoked
// repeatedly for different initial states and time grids. Run integrates
// the full set of auxiliary density operators with an adaptive
// Dormand-Prince scheme and returns the reduced system state at each
// requested time.
package solver
