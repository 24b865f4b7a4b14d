package pluginhost

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dop251/goja"

	"github.com/flowforge/flowrun/flow"
	"github.com/flowforge/flowrun/provider"
)

// Script resolves a library-qualified name to a ".js" source fetched
// through a provider.Provider and wraps it as a flow.Implementation backed
// by an embedded ECMAScript engine (goja). This is the Go-idiomatic
// stand-in for "a path to a WASM module": the core only ever sees the
// resolved flow.Implementation, never the script or the engine.
//
// The script must assign a function to the global "run": it is called with
// one argument, an array of arrays (one per input, each the values taken
// off that input this dispatch), and must return
// {output, done, run_again}.
type Script struct {
	provider provider.Provider
	sources  map[string]string // qualifiedName -> resolved URL
}

// NewScript constructs a Script locator that fetches source files through p.
// Register each qualified name's source URL with Register before Resolve is
// called for it.
func NewScript(p provider.Provider) *Script {
	return &Script{provider: p, sources: make(map[string]string)}
}

// Register associates qualifiedName with the URL of its script source.
func (s *Script) Register(qualifiedName, url string) {
	s.sources[qualifiedName] = url
}

// Resolve implements flow.Locator.
func (s *Script) Resolve(qualifiedName string) (flow.Implementation, error) {
	url, ok := s.sources[qualifiedName]
	if !ok {
		return nil, fmt.Errorf("pluginhost: no script registered for %q", qualifiedName)
	}

	_, _, content, err := s.provider.Resolve(context.Background(), url)
	if err != nil {
		return nil, fmt.Errorf("pluginhost: fetch script %q: %w", url, err)
	}

	program, err := goja.Compile(qualifiedName, string(content), true)
	if err != nil {
		return nil, fmt.Errorf("pluginhost: compile script %q: %w", qualifiedName, err)
	}

	return &scriptImplementation{name: qualifiedName, program: program}, nil
}

type scriptResult struct {
	Output   json.RawMessage `json:"output"`
	Done     bool            `json:"done"`
	RunAgain bool            `json:"run_again"`
}

// scriptImplementation adapts a compiled goja program to flow.Implementation.
// Each Run gets a fresh *goja.Runtime since a Runtime is not safe for
// concurrent use and the executor pool may call Run for different processes
// from different goroutines simultaneously.
type scriptImplementation struct {
	name    string
	program *goja.Program
}

func (s *scriptImplementation) Run(id flow.ProcessID, inputs [][]json.RawMessage, sender flow.ResultSender) {
	vm := goja.New()
	if _, err := vm.RunProgram(s.program); err != nil {
		sender.Send(flow.OutputSet{From: id, Output: json.RawMessage("null"), Done: true, RunAgain: false})
		return
	}

	runFn, ok := goja.AssertFunction(vm.Get("run"))
	if !ok {
		sender.Send(flow.OutputSet{From: id, Output: json.RawMessage("null"), Done: true, RunAgain: false})
		return
	}

	jsInputs := make([][]any, len(inputs))
	for i, values := range inputs {
		row := make([]any, len(values))
		for j, v := range values {
			var decoded any
			if err := json.Unmarshal(v, &decoded); err == nil {
				row[j] = decoded
			}
		}
		jsInputs[i] = row
	}

	result, err := runFn(goja.Undefined(), vm.ToValue(jsInputs))
	if err != nil {
		sender.Send(flow.OutputSet{From: id, Output: json.RawMessage("null"), Done: true, RunAgain: false})
		return
	}

	var decoded scriptResult
	raw, err := json.Marshal(result.Export())
	if err != nil {
		sender.Send(flow.OutputSet{From: id, Output: json.RawMessage("null"), Done: true, RunAgain: false})
		return
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		sender.Send(flow.OutputSet{From: id, Output: json.RawMessage("null"), Done: true, RunAgain: false})
		return
	}

	output := decoded.Output
	if output == nil {
		output = json.RawMessage("null")
	}
	sender.Send(flow.OutputSet{From: id, Output: output, Done: decoded.Done, RunAgain: decoded.RunAgain})
}
