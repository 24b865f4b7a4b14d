// Package main is the flowrun CLI entrypoint: "flowrun compile <file>" and
// "flowrun run <file>". Argument parsing and presentation are outside the
// core's scope (spec.md §1 Non-goals); both subcommands call straight
// through to flowdef.LoadYAML, flow.Gather, and flow.Execute.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	app := &cli.App{
		Name:  "flowrun",
		Usage: "dataflow execution engine",
		Commands: []*cli.Command{
			compileCommand(),
			runCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "flowrun: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}
	return logger
}
