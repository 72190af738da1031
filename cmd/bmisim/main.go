// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"

	"github.com/ccbuild/bmisim/internal/orchestrator"
)

func main() {
	os.Exit(run())
}

func run() int {
	app := &cli.App{
		Name:  "bmisim",
		Usage: "estimate build time under a hypothetical modular (BMI-based) build from a trace of a normal build",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "cdb-path",
				Usage:    "path to compile_commands.json",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "output-path",
				Usage:    "working root for the measuring/fake build trees and metadata",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "measuring-compiler-path",
				Usage:    "directory containing a time-tracing C/C++ compiler front-end",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "erase a non-empty output directory",
			},
			&cli.IntFlag{
				Name:  "jobs",
				Usage: "maximum build parallelism (0 = number of CPUs)",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log every build edge, not just failures",
			},
		},
		Action: action,
	}

	if err := app.Run(os.Args); err != nil {
		var precondition *orchestrator.PreconditionError
		if errors.As(err, &precondition) {
			fatalf("%s", precondition.Error())
			return 1
		}
		fatalf("%s", err.Error())
		return 2
	}
	return 0
}

func action(c *cli.Context) error {
	logger := log.Default()
	if c.Bool("verbose") {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}

	result, err := orchestrator.Run(c.Context, orchestrator.Config{
		CDBPath:               c.String("cdb-path"),
		OutputPath:            c.String("output-path"),
		MeasuringCompilerPath: c.String("measuring-compiler-path"),
		Force:                 c.Bool("force"),
		Parallelism:           c.Int("jobs"),
		Logger:                logger,
	})
	if err != nil {
		return err
	}

	fmt.Printf("normal:  %.3fs\n", result.NormalTime.Seconds())
	fmt.Printf("modular: %.3fs\n", result.ModularTime.Seconds())
	return nil
}

// Print a fatal-prefixed message to stderr, mirroring cmd/nin/main.go's
// fatalf; the caller is responsible for returning the process's exit code.
func fatalf(msg string, s ...interface{}) {
	fmt.Fprintf(os.Stderr, "bmisim: fatal: ")
	fmt.Fprintf(os.Stderr, msg, s...)
	fmt.Fprintf(os.Stderr, "\n")
}
