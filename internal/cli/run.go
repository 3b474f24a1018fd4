// Package cli implements the logic behind the heom command-line surface:
// loading simulation documents, running them and rendering trajectories.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openqs/heom/internal/config"
	"github.com/openqs/heom/internal/logging"
	"github.com/openqs/heom/pkg/solver"
)

// RunOptions configures the 'run' command.
type RunOptions struct {
	Path    string
	CSVPath string
	Debug   bool
	Quiet   bool
}

// createLogger configures the application logger. In debug mode it writes
// to Stderr to keep Stdout free for trajectory output.
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// Run executes the simulation document at opts.Path.
func Run(opts RunOptions) error {
	logger := createLogger(opts.Debug)

	doc, err := config.Load(opts.Path)
	if err != nil {
		return err
	}

	sv, times, err := doc.Build(solver.WithLogger(logger))
	if err != nil {
		return err
	}

	rho0, err := doc.InitialState(sv.Dim())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	res, err := sv.Run(ctx, rho0, times)
	if err != nil {
		return fmt.Errorf("running simulation: %w", err)
	}

	if !opts.Quiet {
		fmt.Fprintf(os.Stderr, "ran %d hierarchy levels over %d points in %v (%d steps, %d rejected)\n",
			sv.NumADOs(), len(times), time.Since(start).Round(time.Millisecond),
			res.Stats.Steps, res.Stats.Rejections)
	}

	if opts.CSVPath != "" {
		f, err := os.Create(opts.CSVPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		if err := WriteCSV(f, res); err != nil {
			return fmt.Errorf("writing trajectory: %w", err)
		}
		return nil
	}

	PrintTrajectory(res)
	return nil
}

// Validate builds the solver described by the document without running it
// and reports its shape.
func Validate(path string) error {
	doc, err := config.Load(path)
	if err != nil {
		return err
	}

	sv, times, err := doc.Build()
	if err != nil {
		return err
	}
	if _, err := doc.InitialState(sv.Dim()); err != nil {
		return err
	}

	fmt.Printf("system dimension:  %d\n", sv.Dim())
	fmt.Printf("hierarchy depth:   %d\n", sv.MaxDepth())
	fmt.Printf("hierarchy levels:  %d\n", sv.NumADOs())
	fmt.Printf("output points:     %d\n", len(times))
	return nil
}
