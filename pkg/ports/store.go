package ports

import (
	"context"
	"errors"
	"time"
)

// ErrSimulationNotFound is returned when a simulation ID cannot be found in
// the store.
var ErrSimulationNotFound = errors.New("simulation not found")

// Simulation status values.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// SimulationRecord is the persisted outcome of a submitted simulation.
// Expectation values are stored as real trajectories: observables exposed
// over the service surface are Hermitian.
type SimulationRecord struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Submitted time.Time `json:"submitted"`

	// NumADOs is the hierarchy size of the constructed solver.
	NumADOs int `json:"num_ados,omitempty"`

	Times  []float64            `json:"times,omitempty"`
	Expect map[string][]float64 `json:"expect,omitempty"`

	// Error carries the failure message when Status is "failed".
	Error string `json:"error,omitempty"`
}

// ResultStore persists simulation records keyed by ID.
type ResultStore interface {
	// Save persists the record for a given simulation ID.
	Save(ctx context.Context, id string, rec *SimulationRecord) error

	// Load retrieves the record for a given simulation ID.
	// Returns ErrSimulationNotFound if the simulation does not exist.
	Load(ctx context.Context, id string) (*SimulationRecord, error)

	// Delete removes the record for a given simulation ID.
	Delete(ctx context.Context, id string) error

	// List returns the stored simulation IDs.
	List(ctx context.Context) ([]string, error)
}
