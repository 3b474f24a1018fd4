// Package ports defines the driven-side interfaces of the simulation
// service surface: persistence of submitted simulation runs. Adapters live
// under internal/adapters.
package ports
