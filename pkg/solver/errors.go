package solver

import "errors"

// ErrConfig is returned when a solver is constructed from an inconsistent
// configuration: no baths, mismatched operator dimensions, mixed bath
// statistics or a non-positive truncation depth.
var ErrConfig = errors.New("invalid solver configuration")

// ErrNotConverged is returned when the adaptive integration cannot reach
// the requested tolerance within the configured step budget.
var ErrNotConverged = errors.New("integration did not converge")
