package flowdef

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// rawProcessDef mirrors the on-disk shape of a process entry. Value and Flow
// are pointers so their mere presence (vs. the zero value) tells
// rawProcessDef.toProcessDef which Kind the entry is — a process description
// never declares more than one of source/value/flow.
type rawProcessDef struct {
	Name     string      `yaml:"name"`
	Source   string      `yaml:"source"`
	Input    []InputDef  `yaml:"input"`
	Value    *any        `yaml:"value"`
	IsStatic bool        `yaml:"static"`
	Flow     *rawFlowDef `yaml:"flow"`
}

type rawFlowDef struct {
	Name       string          `yaml:"name"`
	Input      []InputDef      `yaml:"input"`
	Process    []rawProcessDef `yaml:"process"`
	Connection []ConnectionDef `yaml:"connection"`
	Lib        []string        `yaml:"lib"`
}

func (r rawProcessDef) toProcessDef(path string) (ProcessDef, error) {
	switch {
	case r.Flow != nil:
		sub, err := r.Flow.toFlowDef(path)
		if err != nil {
			return ProcessDef{}, err
		}
		return ProcessDef{Name: r.Name, Kind: KindFlow, Subflow: sub}, nil
	case r.Value != nil:
		return ProcessDef{Name: r.Name, Kind: KindValue, InitialValue: *r.Value, IsStatic: r.IsStatic}, nil
	case r.Source != "":
		return ProcessDef{Name: r.Name, Kind: KindFunction, Source: LibraryRef{Path: r.Source}, Inputs: r.Input}, nil
	default:
		return ProcessDef{}, &SchemaError{Path: path, Message: fmt.Sprintf("process %q has none of source/value/flow", r.Name)}
	}
}

func (r rawFlowDef) toFlowDef(path string) (*FlowDef, error) {
	if r.Name == "" {
		return nil, &SchemaError{Path: path, Message: "flow missing name"}
	}
	fd := &FlowDef{
		Name:        r.Name,
		Inputs:      r.Input,
		Connections: r.Connection,
	}
	for _, l := range r.Lib {
		fd.Libraries = append(fd.Libraries, LibraryRef{Path: l})
	}
	seen := make(map[string]bool, len(r.Process))
	for _, rp := range r.Process {
		if rp.Name == "" {
			return nil, &SchemaError{Path: path, Message: "process with empty name"}
		}
		if seen[rp.Name] {
			return nil, &SchemaError{Path: path, Message: fmt.Sprintf("duplicate process name %q", rp.Name)}
		}
		seen[rp.Name] = true
		pd, err := rp.toProcessDef(path)
		if err != nil {
			return nil, err
		}
		fd.Processes = append(fd.Processes, pd)
	}
	return fd, nil
}

// LoadYAML reads a flow definition tree from a single YAML document at path.
// Subflows are expected inline (a process entry's "flow" key holding a
// nested tree), matching the shape the gatherer consumes directly.
func LoadYAML(path string) (*FlowDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SchemaError{Path: path, Message: err.Error()}
	}
	var raw rawFlowDef
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &SchemaError{Path: path, Message: err.Error()}
	}
	return raw.toFlowDef(path)
}
