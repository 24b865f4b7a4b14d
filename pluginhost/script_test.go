package pluginhost

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/flowforge/flowrun/flow"
)

type fakeProvider struct {
	sources map[string]string
}

func (f *fakeProvider) Resolve(_ context.Context, url string) (string, string, []byte, error) {
	return url, "application/javascript", []byte(f.sources[url]), nil
}

func TestScriptRunRoundTrip(t *testing.T) {
	p := &fakeProvider{sources: map[string]string{
		"mem://add.js": `
function run(inputs) {
  return {output: inputs[0][0] + inputs[1][0], done: true, run_again: true};
}
`,
	}}
	s := NewScript(p)
	s.Register("scripts/add", "mem://add.js")

	impl, err := s.Resolve("scripts/add")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got flow.OutputSet
	sender := resultSenderFunc(func(o flow.OutputSet) { got = o })
	impl.Run(0, [][]json.RawMessage{{json.RawMessage("2")}, {json.RawMessage("3")}}, sender)

	if !got.Done || !got.RunAgain {
		t.Fatalf("unexpected OutputSet flags: %+v", got)
	}
	if string(got.Output) != "5" {
		t.Fatalf("expected output 5, got %s", got.Output)
	}
}

type resultSenderFunc func(flow.OutputSet)

func (f resultSenderFunc) Send(o flow.OutputSet) { f(o) }

func TestScriptResolveUnregisteredNameErrors(t *testing.T) {
	s := NewScript(&fakeProvider{sources: map[string]string{}})
	if _, err := s.Resolve("scripts/missing"); err == nil {
		t.Fatal("expected an error for an unregistered script name")
	}
}

func TestScriptRunCompileErrorYieldsTerminalOutputSet(t *testing.T) {
	p := &fakeProvider{sources: map[string]string{"mem://bad.js": "this is not { valid javascript"}}
	s := NewScript(p)
	s.Register("scripts/bad", "mem://bad.js")

	if _, err := s.Resolve("scripts/bad"); err == nil {
		t.Fatal("expected a compile error for invalid script source")
	}
}

func TestScriptRunMissingRunFunctionYieldsTerminalOutputSet(t *testing.T) {
	p := &fakeProvider{sources: map[string]string{"mem://norun.js": "var x = 1;"}}
	s := NewScript(p)
	s.Register("scripts/norun", "mem://norun.js")

	impl, err := s.Resolve("scripts/norun")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got flow.OutputSet
	sender := resultSenderFunc(func(o flow.OutputSet) { got = o })
	impl.Run(0, nil, sender)

	if !got.Done || got.RunAgain {
		t.Fatalf("expected a terminal, non-repeating OutputSet when run is missing, got %+v", got)
	}
}
