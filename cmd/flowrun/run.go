package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/flowforge/flowrun/flow"
	"github.com/flowforge/flowrun/flow/emit"
	"github.com/flowforge/flowrun/flowdef"
)

func runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "load, gather, and execute a flow definition",
		ArgsUsage: "<file.yaml>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "executors", Value: 1, Usage: "number of executor pool workers"},
			&cli.BoolFlag{Name: "pretty", Usage: "print a styled report instead of the stable key: value format"},
		},
		Action: runRun,
	}
}

func runRun(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return cli.Exit("run: missing <file.yaml> argument", 1)
	}

	root, err := flowdef.LoadYAML(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("run: load %q: %v", path, err), 1)
	}

	tables, err := flow.Compile(root, defaultLocator())
	if err != nil {
		return cli.Exit(fmt.Sprintf("run: gather %q: %v", path, err), 1)
	}

	logger := newLogger()
	defer logger.Sync() //nolint:errcheck

	metrics, err := flow.Execute(tables, c.Int("executors"), flow.WithEmitter(emit.NewLogEmitter(logger)))
	if err != nil {
		return cli.Exit(fmt.Sprintf("run: execute %q: %v", path, err), 1)
	}

	if c.Bool("pretty") {
		printReport(metrics)
		return nil
	}
	_, err = metrics.WriteTo(c.App.Writer)
	return err
}
