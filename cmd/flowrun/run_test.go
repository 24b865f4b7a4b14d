package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunRunMissingArgumentErrors(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(&buf)
	if err := app.Run([]string{"flowrun", "run"}); err == nil {
		t.Fatal("expected an error for a missing file argument")
	}
}

func TestRunRunMissingFileErrors(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(&buf)
	err := app.Run([]string{"flowrun", "run", filepath.Join(t.TempDir(), "missing.yaml")})
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestRunRunSuccessWritesStableMetricsFormat(t *testing.T) {
	path := writeFixture(t, addFlowYAML)
	var buf bytes.Buffer
	app := newTestApp(&buf)
	if err := app.Run([]string{"flowrun", "run", path}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "num_processes: 3\n") {
		t.Fatalf("expected the stable metrics report to start with num_processes: 3, got %q", out)
	}
	if !strings.Contains(out, "dispatches: ") || !strings.Contains(out, "outputs_sent: ") || !strings.Contains(out, "elapsed_seconds: ") {
		t.Fatalf("expected all stable metrics fields, got %q", out)
	}
}

func TestRunRunPrettyFlagPrintsStyledReportInstead(t *testing.T) {
	path := writeFixture(t, addFlowYAML)
	var buf bytes.Buffer
	app := newTestApp(&buf)

	out := captureStdout(t, func() {
		if err := app.Run([]string{"flowrun", "run", "--pretty", path}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
	if buf.Len() != 0 {
		t.Fatalf("expected nothing written to the CLI writer in --pretty mode, got %q", buf.String())
	}
	if !strings.Contains(out, "flowrun") {
		t.Fatalf("expected the styled report on stdout, got %q", out)
	}
}
