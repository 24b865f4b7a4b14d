package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/flowforge/flowrun/flow"
	"github.com/flowforge/flowrun/flowdef"
)

func compileCommand() *cli.Command {
	return &cli.Command{
		Name:      "compile",
		Usage:     "load and gather a flow definition, printing its flat table",
		ArgsUsage: "<file.yaml>",
		Action:    runCompile,
	}
}

func runCompile(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return cli.Exit("compile: missing <file.yaml> argument", 1)
	}

	root, err := flowdef.LoadYAML(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("compile: load %q: %v", path, err), 1)
	}

	tables, err := flow.Compile(root, defaultLocator())
	if err != nil {
		return cli.Exit(fmt.Sprintf("compile: gather %q: %v", path, err), 1)
	}

	fmt.Printf("processes: %d\n", len(tables.Processes))
	fmt.Printf("connections: %d\n", len(tables.Connections))
	fmt.Printf("libs: %d\n", len(tables.Libs))
	for _, lib := range tables.Libs {
		fmt.Printf("  %s\n", lib)
	}
	return nil
}
