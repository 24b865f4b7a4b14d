package flowdef

import "fmt"

// SchemaError is the loader's sole error kind: the input parsed as the
// target format but did not describe a well-formed flow (missing name,
// duplicate input name, unresolvable process-reference tag, ...).
type SchemaError struct {
	Path    string
	Message string
}

func (e *SchemaError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("schema error: %s", e.Message)
	}
	return fmt.Sprintf("schema error: %s: %s", e.Path, e.Message)
}
