package main

import (
	"os"

	"github.com/flowforge/flowrun/flowstd"
	"github.com/flowforge/flowrun/pluginhost"
)

// defaultLocator wires every flowstd leaf implementation into a Native
// locator under its library path, so a flow definition can reference
// e.g. "flowstd/add" as a Function process's source without any external
// plugin configuration.
func defaultLocator() *pluginhost.Native {
	n := pluginhost.NewNative()
	n.Register("flowstd/add", flowstd.Add{})
	n.Register("flowstd/compare", flowstd.Compare{})
	n.Register("flowstd/stdout", flowstd.NewStdout())
	n.Register("flowstd/args", flowstd.Args{})
	n.Register("flowstd/tap", flowstd.Tap{})
	n.Register("flowstd/fifo", flowstd.Fifo{})
	n.Register("flowstd/to_string", flowstd.ToString{})
	n.Register("flowstd/to_number", flowstd.ToNumber{})
	n.Register("flowstd/complete", flowstd.NewComplete(os.Getenv("ANTHROPIC_API_KEY"), ""))
	return n
}
