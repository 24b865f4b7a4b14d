package flowstd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/flowforge/flowrun/flow"
)

// Stdout prints its single string input, grounded in
// original_source/flowstdlib/src/stdio/stdout.rs. Writer defaults to
// os.Stdout but can be overridden for tests.
type Stdout struct {
	Writer io.Writer
}

// NewStdout constructs a Stdout implementation writing to os.Stdout.
func NewStdout() *Stdout { return &Stdout{Writer: os.Stdout} }

func (s *Stdout) Run(id flow.ProcessID, inputs [][]json.RawMessage, sender flow.ResultSender) {
	value, ok := firstValue(inputs[0])
	if !ok {
		silent(sender, id, true)
		return
	}

	var text string
	if err := json.Unmarshal(value, &text); err != nil {
		silent(sender, id, true)
		return
	}

	w := s.Writer
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintln(w, text)

	silent(sender, id, true)
}
