package flow

import (
	"bytes"
	"strings"
	"testing"
)

// TestMetricsWriteToStableFormat verifies the exact four-line, stable
// "key: value" text format, including elapsed_seconds fixed to 9
// fractional digits, so the output is suitable for diff-based comparison.
func TestMetricsWriteToStableFormat(t *testing.T) {
	m := newMetrics(3)
	m.dispatches = 4
	m.outputsSent = 4
	m.stop()

	var buf bytes.Buffer
	n, err := m.WriteTo(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != int64(buf.Len()) {
		t.Fatalf("reported byte count %d does not match actual %d", n, buf.Len())
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), buf.String())
	}
	if lines[0] != "num_processes: 3" {
		t.Fatalf("unexpected line 0: %q", lines[0])
	}
	if lines[1] != "dispatches: 4" {
		t.Fatalf("unexpected line 1: %q", lines[1])
	}
	if lines[2] != "outputs_sent: 4" {
		t.Fatalf("unexpected line 2: %q", lines[2])
	}
	if !strings.HasPrefix(lines[3], "elapsed_seconds: ") {
		t.Fatalf("unexpected line 3 prefix: %q", lines[3])
	}
	frac := lines[3][strings.Index(lines[3], ".")+1:]
	if len(frac) != 9 {
		t.Fatalf("expected 9 fractional digits in elapsed_seconds, got %d in %q", len(frac), lines[3])
	}
}

func TestMetricsAccessors(t *testing.T) {
	m := newMetrics(5)
	m.dispatches = 2
	m.outputsSent = 2
	m.routingErrors = 1
	m.inputOverflows = 1

	if m.NumProcesses() != 5 || m.Dispatches() != 2 || m.OutputsSent() != 2 {
		t.Fatalf("unexpected accessor values: %+v", m)
	}
	if m.RoutingErrors() != 1 || m.InputOverflows() != 1 {
		t.Fatalf("unexpected error-counter accessor values: %+v", m)
	}
}
