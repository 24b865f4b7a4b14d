// Package pluginhost implements the implementation-locator-table
// collaborator (spec §6, SPEC_FULL.md §4.9): it resolves a library-qualified
// process name to a callable flow.Implementation. Native is the statically
// linked case; Script is the Go-idiomatic stand-in for loading a path to a
// sandboxed module, here a JavaScript source fetched through a
// provider.Provider and executed with an embedded ECMAScript engine.
package pluginhost

import (
	"fmt"

	"github.com/flowforge/flowrun/flow"
)

// Native is a map-backed Locator over statically linked implementations,
// keyed by their fully qualified name (e.g. "flowstd/math/add").
type Native struct {
	impls map[string]flow.Implementation
}

// NewNative constructs an empty Native locator.
func NewNative() *Native {
	return &Native{impls: make(map[string]flow.Implementation)}
}

// Register adds impl under qualifiedName, overwriting any prior entry.
func (n *Native) Register(qualifiedName string, impl flow.Implementation) {
	n.impls[qualifiedName] = impl
}

// Resolve implements flow.Locator.
func (n *Native) Resolve(qualifiedName string) (flow.Implementation, error) {
	impl, ok := n.impls[qualifiedName]
	if !ok {
		return nil, fmt.Errorf("pluginhost: no native implementation registered for %q", qualifiedName)
	}
	return impl, nil
}
