package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/openqs/heom/pkg/solver"
)

// observableNames returns the observable names in stable order.
func observableNames(res *solver.Result) []string {
	names := make([]string, 0, len(res.Expect))
	for name := range res.Expect {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteCSV writes the expectation-value trajectories as CSV. Observables
// exposed here are Hermitian, so only the real parts are emitted.
func WriteCSV(w io.Writer, res *solver.Result) error {
	names := observableNames(res)

	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"t"}, names...)); err != nil {
		return err
	}
	row := make([]string, len(names)+1)
	for i, t := range res.Times {
		row[0] = strconv.FormatFloat(t, 'g', -1, 64)
		for j, name := range names {
			row[j+1] = strconv.FormatFloat(real(res.Expect[name][i]), 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// PrintTrajectory renders the trajectory as an aligned table on stdout,
// with a colored header when attached to a terminal.
func PrintTrajectory(res *solver.Result) {
	names := observableNames(res)

	header := fmt.Sprintf("%12s", "t")
	for _, name := range names {
		header += fmt.Sprintf("  %14s", name)
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		p := termenv.ColorProfile()
		fmt.Println(termenv.String(header).Foreground(p.Color("#818cf8")).Bold())
	} else {
		fmt.Println(header)
	}
	fmt.Println(rule(len(header)))

	for i, t := range res.Times {
		line := fmt.Sprintf("%12.6f", t)
		for _, name := range names {
			line += fmt.Sprintf("  %14.8f", real(res.Expect[name][i]))
		}
		fmt.Println(line)
	}
}

// rule builds a separator no wider than the terminal.
func rule(n int) string {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && w < n {
		n = w
	}
	return strings.Repeat("-", n)
}
