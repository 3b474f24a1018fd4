// Package observability provides the Prometheus-backed metrics sink for
// solver runs. It implements the solver.Metrics interface and registers
// its collectors on a caller-supplied registry, so embedders keep control
// of the metrics endpoint.
package observability
