package flow

import (
	"fmt"
	"io"
	"time"
)

// Metrics accumulates the counters §6 mandates and writes them in the
// stable "key: value" per-line format used for diff-based testing. Field
// names are unexported; WriteTo and the read-only accessor methods below
// read them out (the format, not the struct layout, is the contract).
type Metrics struct {
	numProcesses int
	dispatches   int
	outputsSent  int

	routingErrors  int
	inputOverflows int

	started time.Time
	elapsed time.Duration
}

func newMetrics(numProcesses int) *Metrics {
	return &Metrics{numProcesses: numProcesses, started: time.Now()}
}

func (m *Metrics) stop() { m.elapsed = time.Since(m.started) }

// WriteTo writes the four mandated lines, in order, each "key: value\n".
// elapsed_seconds is fixed-point to 9 fractional digits.
func (m *Metrics) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w,
		"num_processes: %d\ndispatches: %d\noutputs_sent: %d\nelapsed_seconds: %.9f\n",
		m.numProcesses, m.dispatches, m.outputsSent, m.elapsed.Seconds(),
	)
	return int64(n), err
}

// NumProcesses, Dispatches, OutputsSent, Elapsed, RoutingErrors, and
// InputOverflows expose the counters for programmatic use (the CLI's
// --pretty report, tests) beyond the stable text format.
func (m *Metrics) NumProcesses() int      { return m.numProcesses }
func (m *Metrics) Dispatches() int        { return m.dispatches }
func (m *Metrics) OutputsSent() int       { return m.outputsSent }
func (m *Metrics) Elapsed() time.Duration { return m.elapsed }
func (m *Metrics) RoutingErrors() int     { return m.routingErrors }
func (m *Metrics) InputOverflows() int    { return m.inputOverflows }
