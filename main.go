/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/taxigrid/core/config"
	"github.com/google/taxigrid/core/server"
	"github.com/google/taxigrid/datasources"
	"github.com/google/taxigrid/demo"
	"github.com/lmittmann/tint"
	"github.com/urfave/cli/v2"
)

var globalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "grid definition file; the demo grids are served when empty",
		EnvVars: []string{"TAXIGRID_CONFIG"},
	},
	&cli.StringFlag{
		Name:    "addr",
		Value:   "127.0.0.1:8097",
		Usage:   "listen address",
		EnvVars: []string{"TAXIGRID_ADDR"},
	},
	&cli.StringFlag{
		Name:    "log-level",
		Value:   "info",
		Usage:   "debug, info, warn or error",
		EnvVars: []string{"TAXIGRID_LOG_LEVEL"},
	},
	&cli.BoolFlag{
		Name:  "no-color",
		Usage: "disable colored log output",
	},
}

func main() {
	app := &cli.App{
		Name:  "taxigrid",
		Usage: "Serve paginated data grids with page summaries",
		Flags: globalFlags,
		Before: func(c *cli.Context) error {
			return setupLogging(c.String("log-level"), c.Bool("no-color"))
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP server",
				Action: serve,
			},
			{
				Name:      "render",
				Usage:     "Print a page of a grid as a text table",
				ArgsUsage: "GRID",
				Action:    render,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "page", Value: 1, Usage: "1-based page number"},
					&cli.IntFlag{Name: "per-page", Value: 20, Usage: "rows per page, 0 for all"},
					&cli.StringSliceFlag{Name: "filter", Usage: "attribute=value, repeatable"},
				},
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := app.RunContext(ctx, os.Args); err != nil {
		slog.Error("taxigrid failed", "err", err)
		os.Exit(1)
	}
}

func setupLogging(level string, noColor bool) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q", level)
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      lvl,
		NoColor:    noColor,
		TimeFormat: time.Kitchen,
	})))
	return nil
}

// newServer serves the definition file named by --config, or the demo.
func newServer(c *cli.Context) (*server.Server, error) {
	path := c.String("config")
	if path == "" {
		slog.Info("serving demo grids")
		return demo.SetupDemoServer()
	}
	defs, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	sources := datasources.NewManager()
	sources.SetBaseDir(filepath.Dir(path))
	sources.RegisterLoader(demo.NewTransactionsLoader())
	slog.Info("loaded grid definitions", "file", path, "grids", len(defs.Grids), "sources", len(defs.Sources))
	return server.New(filepath.Base(path), defs, sources)
}

func serve(c *cli.Context) error {
	s, err := newServer(c)
	if err != nil {
		return err
	}
	addr := c.String("addr")
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("server starting", "url", "http://"+addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-c.Context.Done():
		slog.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

func render(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("render takes exactly one grid name", 2)
	}
	s, err := newServer(c)
	if err != nil {
		return err
	}

	v := url.Values{}
	v.Set("grid", c.Args().First())
	v.Set("page", strconv.Itoa(c.Int("page")))
	v.Set("per-page", strconv.Itoa(c.Int("per-page")))
	for _, f := range c.StringSlice("filter") {
		attr, value, ok := strings.Cut(f, "=")
		if !ok || attr == "" {
			return cli.Exit(fmt.Sprintf("invalid filter %q, want attribute=value", f), 2)
		}
		v.Add("filter:"+attr, value)
	}

	res := s.HandleTextRequest(os.Stdout, &url.URL{Path: "/grid.txt", RawQuery: v.Encode()}, func(string, string) {})
	if res == nil {
		return nil
	}
	if res.Error != nil {
		return res.Error
	}
	return cli.Exit(res.Message, 1)
}
