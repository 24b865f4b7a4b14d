package flow

import (
	"encoding/json"
	"fmt"

	"github.com/flowforge/flowrun/flowdef"
)

// Locator resolves a library-qualified name (e.g. "libs/control/tap") to a
// callable Implementation. It is the core's only dependency on the
// implementation-locator-table collaborator (§6); pluginhost.Native and
// pluginhost.Script both satisfy this interface structurally.
type Locator interface {
	Resolve(qualifiedName string) (Implementation, error)
}

// ResolvedConnection is one process-to-process edge surviving the gather
// pass, after subflow boundaries have been collapsed away.
type ResolvedConnection struct {
	SourceID         ProcessID
	SourceSubPointer string
	DestID           ProcessID
	DestInputIdx     int
}

// CodeGenTables is the gatherer's output: the flat process array, the
// flattened connection set (also baked directly into each Process's
// OutputRoutes, kept here too for dumping/inspection), and the two
// library-dedup lists (§4.1).
type CodeGenTables struct {
	Processes     []*Process
	Connections   []ResolvedConnection
	Libs          []string // deduped by first path segment, for loading
	LibReferences []string // deduped by full path, for binding
}

// boundaryTarget is a resolved (process, input index) pair inside some flow,
// reachable by forwarding through that flow's "$in" boundary port.
type boundaryTarget struct {
	processID ProcessID
	inputIdx  int
}

// boundarySource is a resolved (process, sub-pointer) pair inside some flow,
// exposed as that flow's "$out" boundary port.
type boundarySource struct {
	processID  ProcessID
	subPointer string
}

// boundary collects the named boundary ports a FlowDef exposes when
// instantiated as a subflow of another flow. Built bottom-up: a subflow is
// fully gathered (and its own nested subflows resolved) before its parent
// tries to resolve connections that reference it by name.
type boundary struct {
	in  map[string][]boundaryTarget
	out map[string]boundarySource
}

type gatherer struct {
	locator     Locator
	processes   []*Process
	connections []ResolvedConnection

	libs        []string
	libsSeen    map[string]bool
	libRefs     []string
	libRefsSeen map[string]bool

	inputNames map[ProcessID]map[string]int
}

// Gather walks root depth-first, flattening every value/function process
// (including those nested in subflows) into a dense, process-to-process
// CodeGenTables. See §4.1.
func Gather(root *flowdef.FlowDef, locator Locator) (*CodeGenTables, error) {
	g := &gatherer{
		locator:     locator,
		libsSeen:    make(map[string]bool),
		libRefsSeen: make(map[string]bool),
		inputNames:  make(map[ProcessID]map[string]int),
	}
	if _, err := g.gatherFlow(root); err != nil {
		return nil, err
	}
	if err := g.checkCycles(); err != nil {
		return nil, err
	}
	return &CodeGenTables{
		Processes:     g.processes,
		Connections:   g.connections,
		Libs:          g.libs,
		LibReferences: g.libRefs,
	}, nil
}

func (g *gatherer) addLib(ref flowdef.LibraryRef) {
	if seg := ref.FirstSegment(); !g.libsSeen[seg] {
		g.libsSeen[seg] = true
		g.libs = append(g.libs, seg)
	}
	if !g.libRefsSeen[ref.Path] {
		g.libRefsSeen[ref.Path] = true
		g.libRefs = append(g.libRefs, ref.Path)
	}
}

// gatherFlow appends fd's own function/value processes to the flat table
// in declaration order (recursing into a nested subflow at the point it is
// declared), resolves fd's own
// connections, and returns the boundary ports fd exposes to whoever
// instantiates it as a subflow.
func (g *gatherer) gatherFlow(fd *flowdef.FlowDef) (*boundary, error) {
	localNames := make(map[string]ProcessID)
	localSubs := make(map[string]*boundary)

	for _, lib := range fd.Libraries {
		g.addLib(lib)
	}

	for i := range fd.Processes {
		pd := &fd.Processes[i]
		switch pd.Kind {
		case flowdef.KindValue:
			raw, err := json.Marshal(pd.InitialValue)
			if err != nil {
				return nil, &SchemaError{Message: fmt.Sprintf("value %q: %v", pd.Name, err)}
			}
			p := &Process{
				ID:             ProcessID(len(g.processes)),
				Name:           pd.Name,
				IsStatic:       pd.IsStatic,
				InitialValue:   raw,
				Inputs:         []*Input{NewInput(1, pd.IsStatic)},
				Implementation: identityImplementation{},
				State:          StateInit,
			}
			g.processes = append(g.processes, p)
			localNames[pd.Name] = p.ID

		case flowdef.KindFunction:
			impl, err := g.locator.Resolve(pd.Source.Path)
			if err != nil {
				return nil, &ResolutionError{From: pd.Name, To: pd.Source.Path}
			}
			g.addLib(pd.Source)

			p := &Process{ID: ProcessID(len(g.processes)), Name: pd.Name, Implementation: impl, State: StateInit}
			names := make(map[string]int, len(pd.Inputs))
			for idx, in := range pd.Inputs {
				if in.Depth < 0 {
					return nil, &SchemaError{Message: fmt.Sprintf("process %q input %q has negative depth %d", pd.Name, in.Name, in.Depth)}
				}
				p.Inputs = append(p.Inputs, NewInput(in.Depth, false))
				names[in.Name] = idx
			}
			g.inputNames[p.ID] = names
			g.processes = append(g.processes, p)
			localNames[pd.Name] = p.ID

		case flowdef.KindFlow:
			b, err := g.gatherFlow(pd.Subflow)
			if err != nil {
				return nil, err
			}
			localSubs[pd.Name] = b
		}
	}

	result := &boundary{in: make(map[string][]boundaryTarget), out: make(map[string]boundarySource)}

	for _, c := range fd.Connections {
		switch {
		case c.FromProcess == flowdef.BoundaryIn:
			targets, err := g.resolveDestinations(fd, c.ToProcess, c.ToInput, localNames, localSubs)
			if err != nil {
				return nil, err
			}
			result.in[c.FromRoute] = append(result.in[c.FromRoute], targets...)

		case c.ToProcess == flowdef.BoundaryOut:
			srcID, subPtr, err := g.resolveSource(fd, c.FromProcess, c.FromRoute, localNames, localSubs)
			if err != nil {
				return nil, err
			}
			result.out[c.ToInput] = boundarySource{processID: srcID, subPointer: subPtr}

		default:
			srcID, subPtr, err := g.resolveSource(fd, c.FromProcess, c.FromRoute, localNames, localSubs)
			if err != nil {
				return nil, err
			}
			targets, err := g.resolveDestinations(fd, c.ToProcess, c.ToInput, localNames, localSubs)
			if err != nil {
				return nil, err
			}
			for _, t := range targets {
				g.bind(srcID, subPtr, t.processID, t.inputIdx)
			}
		}
	}

	return result, nil
}

func (g *gatherer) bind(srcID ProcessID, subPointer string, destID ProcessID, destInputIdx int) {
	g.processes[srcID].OutputRoutes = append(g.processes[srcID].OutputRoutes, OutputRoute{
		SubPointer: subPointer, DestID: destID, DestInputIdx: destInputIdx,
	})
	g.connections = append(g.connections, ResolvedConnection{
		SourceID: srcID, SourceSubPointer: subPointer, DestID: destID, DestInputIdx: destInputIdx,
	})
}

func (g *gatherer) resolveSource(fd *flowdef.FlowDef, name, route string, localNames map[string]ProcessID, localSubs map[string]*boundary) (ProcessID, string, error) {
	if id, ok := localNames[name]; ok {
		return id, route, nil
	}
	if b, ok := localSubs[name]; ok {
		out, ok := b.out[route]
		if !ok {
			return 0, "", &ResolutionError{From: fd.Name, To: name + "." + route}
		}
		return out.processID, out.subPointer, nil
	}
	return 0, "", &ResolutionError{From: fd.Name, To: name}
}

func (g *gatherer) resolveDestinations(fd *flowdef.FlowDef, name, inputName string, localNames map[string]ProcessID, localSubs map[string]*boundary) ([]boundaryTarget, error) {
	if id, ok := localNames[name]; ok {
		idx, ok := g.inputIndex(id, inputName)
		if !ok {
			return nil, &ResolutionError{From: fd.Name, To: name + "." + inputName}
		}
		return []boundaryTarget{{processID: id, inputIdx: idx}}, nil
	}
	if b, ok := localSubs[name]; ok {
		targets, ok := b.in[inputName]
		if !ok {
			return nil, &ResolutionError{From: fd.Name, To: name + "." + inputName}
		}
		return targets, nil
	}
	return nil, &ResolutionError{From: fd.Name, To: name}
}

// inputIndex resolves a named input to its slot index. Value processes have
// exactly one, unnamed, input slot at index 0.
func (g *gatherer) inputIndex(id ProcessID, name string) (int, bool) {
	names, ok := g.inputNames[id]
	if !ok {
		if int(id) < len(g.processes) && len(g.processes[id].Inputs) == 1 {
			return 0, true
		}
		return 0, false
	}
	idx, ok := names[name]
	return idx, ok
}

// checkCycles verifies every strongly-connected component that forms a
// cycle (more than one process, or a single process connected to itself)
// contains at least one connection whose destination input has depth ≥ 1
// (a cycle where every input is depth 0 can never make progress).
func (g *gatherer) checkCycles() error {
	adj := make(map[ProcessID][]ResolvedConnection, len(g.processes))
	for _, c := range g.connections {
		adj[c.SourceID] = append(adj[c.SourceID], c)
	}

	for _, scc := range tarjanSCCs(len(g.processes), adj) {
		if len(scc) < 2 {
			selfLoop := false
			for _, c := range adj[scc[0]] {
				if c.DestID == scc[0] {
					selfLoop = true
				}
			}
			if !selfLoop {
				continue // a singleton SCC without a self-connection isn't a cycle
			}
		}
		inSCC := make(map[ProcessID]bool, len(scc))
		for _, id := range scc {
			inSCC[id] = true
		}
		hasBuffer := false
		for _, id := range scc {
			for _, c := range adj[id] {
				if inSCC[c.DestID] && g.processes[c.DestID].Inputs[c.DestInputIdx].Depth >= 1 {
					hasBuffer = true
				}
			}
		}
		if !hasBuffer {
			return &SchemaError{Message: "cycle with no buffering: every input in the cycle has depth 0"}
		}
	}
	return nil
}

// tarjanSCCs computes strongly connected components over the process graph.
func tarjanSCCs(n int, adj map[ProcessID][]ResolvedConnection) [][]ProcessID {
	index := make([]int, n)
	lowlink := make([]int, n)
	onStack := make([]bool, n)
	for i := range index {
		index[i] = -1
	}
	var stack []ProcessID
	var sccs [][]ProcessID
	counter := 0

	var strongconnect func(v ProcessID)
	strongconnect = func(v ProcessID) {
		index[v] = counter
		lowlink[v] = counter
		counter++
		stack = append(stack, v)
		onStack[v] = true

		for _, c := range adj[v] {
			w := c.DestID
			if index[w] == -1 {
				strongconnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] {
				if index[w] < lowlink[v] {
					lowlink[v] = index[w]
				}
			}
		}

		if lowlink[v] == index[v] {
			var scc []ProcessID
			for {
				n := len(stack) - 1
				w := stack[n]
				stack = stack[:n]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for v := 0; v < n; v++ {
		if index[v] == -1 {
			strongconnect(ProcessID(v))
		}
	}
	return sccs
}
