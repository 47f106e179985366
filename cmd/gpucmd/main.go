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

// The gpucmd command replays capture files through GLES command buffer
// decoders running on the recording driver, and reports how each stream
// decoded.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/gpucmd/capture"
	"github.com/google/gpucmd/config"
	"github.com/google/gpucmd/core/app"
	"github.com/google/gpucmd/core/log"
	"github.com/google/gpucmd/mailbox"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

var (
	configPath = flag.String("config", "", "TOML file with the context and decoder configuration")
	budget     = flag.Int("budget", 0, "commands per decoding slice, 0 uses the configured value")
	parallel   = flag.Int("parallel", 4, "maximum number of captures replayed at once")
)

func main() {
	app.ShortHelp = "gpucmd replays GLES command buffer captures"
	app.Name = "gpucmd"
	app.ShortUsage = "<captures>"
	app.Run(run)
}

func run(ctx context.Context) error {
	paths := flag.Args()
	if len(paths) == 0 {
		app.Usage("At least one capture is required")
		panic(app.ExitCode(2))
	}
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}

	mailboxes := mailbox.NewRegistry()
	results := make([]Stats, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if *parallel > 0 {
		g.SetLimit(*parallel)
	}
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			ctx := log.Enter(ctx, path)
			c, err := load(path)
			if err != nil {
				return err
			}
			if c.Name == "" {
				c.Name = path
			}
			results[i], err = Replay(ctx, c, Options{Config: cfg, Mailboxes: mailboxes, Budget: *budget})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, s := range results {
		fmt.Println(s)
	}
	return nil
}

func load(path string) (*capture.Capture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Opening %v", path)
	}
	defer f.Close()
	c, err := capture.Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "Loading %v", path)
	}
	return c, nil
}
