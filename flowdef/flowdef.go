// Package flowdef holds the syntax-neutral flow definition tree: the shape a
// loader produces and the gatherer consumes. It carries no runtime behavior
// of its own — see package flow for the scheduler that compiles and executes
// these trees.
package flowdef

// Kind tags which variant a ProcessDef holds. The gatherer dispatches on
// Kind rather than doing a type assertion against every sub-struct, mirroring
// the tagged-variant approach spec'd for Flow/Function/Value polymorphism.
type Kind int

const (
	// KindFunction is a leaf process backed by a library implementation.
	KindFunction Kind = iota
	// KindValue is a degenerate process holding a single constant or seed.
	KindValue
	// KindFlow is a subflow: a nested tree expanded in place by the gatherer.
	KindFlow
)

func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindValue:
		return "value"
	case KindFlow:
		return "flow"
	default:
		return "unknown"
	}
}

// InputDef declares one named input slot on a process and its queue depth.
type InputDef struct {
	Name  string `yaml:"name" json:"name"`
	Depth int    `yaml:"depth" json:"depth"`
}

// LibraryRef names an implementation by its library-qualified path, e.g.
// "libs/control/tap". Loading is the Locator collaborator's job; flowdef
// only records the reference so the gatherer can dedup it.
type LibraryRef struct {
	Path string `yaml:"source" json:"source"`
}

// FirstSegment returns the leading path component used to dedup library
// *loads* (several functions from the same library need it loaded once).
func (r LibraryRef) FirstSegment() string {
	for i, c := range r.Path {
		if c == '/' {
			return r.Path[:i]
		}
	}
	return r.Path
}

// ProcessDef is one node of the flow tree: a function, a value, or a nested
// subflow, depending on Kind. Fields not relevant to the active Kind are
// left zero; the gatherer only reads the ones that apply.
type ProcessDef struct {
	Name string `yaml:"name" json:"name"`
	Kind Kind   `yaml:"-" json:"-"`

	// Function fields.
	Source LibraryRef `yaml:"source" json:"source"`
	Inputs []InputDef `yaml:"input" json:"input"`

	// Value fields.
	InitialValue any  `yaml:"value" json:"value"`
	IsStatic     bool `yaml:"static" json:"static"`

	// Flow fields: a nested definition, expanded recursively by the gatherer.
	Subflow *FlowDef `yaml:"flow" json:"flow"`
}

// ConnectionDef is a compile-time-only edge: "from" names a process and an
// optional JSON-pointer sub-route into its output; "to" names a destination
// process and one of its declared input slots by name.
//
// FromProcess/ToProcess may be the sentinel names "$in"/"$out" when the
// connection is relative to the flow boundary of a subflow — see the
// gatherer's boundary-collapsing pass.
type ConnectionDef struct {
	FromProcess string `yaml:"from" json:"from"`
	FromRoute   string `yaml:"from_route" json:"from_route"`
	ToProcess   string `yaml:"to" json:"to"`
	ToInput     string `yaml:"to_input" json:"to_input"`
}

// boundary sentinels used inside a subflow's own Connections list to refer
// to that flow's external input/output ports when it is referenced as a
// subflow from a parent. Not process names; never survive gathering.
const (
	BoundaryIn  = "$in"
	BoundaryOut = "$out"
)

// FlowDef is the root (or a nested) flow: a name, its own boundary inputs
// (relevant only when referenced as a subflow), its child processes, its
// internal connections, and any library references it introduces directly.
type FlowDef struct {
	Name        string          `yaml:"name" json:"name"`
	Inputs      []InputDef      `yaml:"input" json:"input"`
	Processes   []ProcessDef    `yaml:"process" json:"process"`
	Connections []ConnectionDef `yaml:"connection" json:"connection"`
	Libraries   []LibraryRef    `yaml:"lib" json:"lib"`
}
