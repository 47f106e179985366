// Copyright (C) 2017 Google Inc.
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

// Package app provides the process bootstrap shared by the command line tools.
package app

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/gpucmd/core/log"
)

// Task is the signature of an application main function.
type Task func(ctx context.Context) error

// ExitCode can be panicked to exit the process with the given status.
type ExitCode int

var (
	// Name is the full name of the application
	Name = filepath.Base(os.Args[0])
	// ExitFuncForTesting can be set to change the behaviour when there is a command line parsing failure.
	// It defaults to os.Exit
	ExitFuncForTesting = os.Exit
	// ShortHelp should be set to add a help message to the usage text.
	ShortHelp = ""
	// ShortUsage is usage text for the additional non-flag arguments.
	ShortUsage = ""
)

var (
	logLevel = flag.String("log-level", "Info", "the minimum severity of logged messages")
	logStyle = flag.String("log-style", log.Normal.Name, "the logging style: raw, brief, normal or detailed")
)

// Usage prints the usage text, followed by msg if it is not empty.
func Usage(msg string) {
	out := flag.CommandLine.Output()
	if ShortHelp != "" {
		fmt.Fprintln(out, ShortHelp)
	}
	fmt.Fprintf(out, "Usage: %s [flags] %s\n", Name, ShortUsage)
	flag.PrintDefaults()
	if msg != "" {
		fmt.Fprintln(out, msg)
	}
}

// Run parses the command line, prepares a logging context and runs main.
// The context passed to main is cancelled on SIGINT or SIGTERM.
func Run(main Task) {
	defer func() {
		if code, ok := recover().(ExitCode); ok {
			ExitFuncForTesting(int(code))
		}
	}()

	flag.CommandLine.Usage = func() { Usage("") }
	flag.Parse()

	style, ok := log.StyleByName(*logStyle)
	if !ok {
		Usage(fmt.Sprintf("Unknown log style %q", *logStyle))
		panic(ExitCode(2))
	}
	severity, ok := parseSeverity(*logLevel)
	if !ok {
		Usage(fmt.Sprintf("Unknown log level %q", *logLevel))
		panic(ExitCode(2))
	}

	handler := log.Std(style)
	defer handler.Close()

	ctx := context.Background()
	ctx = log.PutHandler(ctx, handler)
	ctx = log.PutFilter(ctx, log.SeverityFilter(severity))
	ctx = log.PutTag(ctx, Name)

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := main(ctx); err != nil {
		log.E(ctx, "Main failed\nError: %v", err)
		panic(ExitCode(1))
	}
}

func parseSeverity(s string) (log.Severity, bool) {
	for sev := log.Verbose; sev <= log.Fatal; sev++ {
		if sev.String() == s || sev.Short() == s {
			return sev, true
		}
	}
	return 0, false
}
