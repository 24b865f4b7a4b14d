package flowstd

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/flowforge/flowrun/flow"
)

// Args reads the FLOW_ARGS environment variable convention (spec.md §6),
// splits it on spaces, and outputs the resulting string array. It clears
// FLOW_ARGS after reading so a later invocation in the same process can't
// pick up a stale value, and never runs again — grounded in
// original_source/flowstdlib/src/env/args.rs.
type Args struct{}

func (Args) Run(id flow.ProcessID, _ [][]json.RawMessage, sender flow.ResultSender) {
	raw, ok := os.LookupEnv("FLOW_ARGS")
	if !ok {
		silent(sender, id, false)
		return
	}
	os.Unsetenv("FLOW_ARGS")

	fields := strings.Fields(raw)
	out, _ := json.Marshal(fields)
	done(sender, id, out, false)
}
