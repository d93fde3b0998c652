// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/walteh/sweeptext/cmd/sweeptext/opts"
	"github.com/walteh/sweeptext/pkg/log"
)

var (
	// Flags
	folder       string
	dryRun       bool
	debugLogging bool
	verbose      bool
)

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	fl := cmd.PersistentFlags()
	fl.StringVarP(&folder, "folder", "f", "", "folder holding the text files (default: current directory, or the rules file's folder)")
	fl.BoolVarP(&dryRun, "dry-run", "n", false, "compute and report changes without touching any file")
	fl.BoolVar(&dryRun, "test", false, "same as --dry-run")
	fl.BoolVarP(&debugLogging, "debug", "d", false, "enable debug logging")
	fl.BoolVarP(&verbose, "verbose", "v", false, "also print lines that did not match")
}

// resolveRootOpts copies the parsed flags into root, installs the context
// logger and builds the console
func resolveRootOpts(cmd *cobra.Command, root *opts.RootOpts) {
	root.Folder = folder
	root.DryRun = dryRun
	root.Debug = debugLogging
	root.Verbose = verbose

	ctx := setupLogging(cmd.Context(), debugLogging)
	cmd.SetContext(ctx)

	root.UserLogger = opts.NewUserLogger(ctx)
	root.Console = log.New(os.Stdout, zerolog.GlobalLevel()).WithZerolog(*zerolog.Ctx(ctx))
	root.Console.SetVerbose(verbose)
}

// setupLogging configures zerolog based on flags
func setupLogging(ctx context.Context, enabled bool) context.Context {
	level := zerolog.WarnLevel
	if enabled {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	return logger.WithContext(ctx)
}
