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

package opts

import (
	"github.com/walteh/sweeptext/pkg/log"
)

// RootOpts holds the resolved persistent flags and shared loggers. It is
// filled before any subcommand runs.
type RootOpts struct {
	// Folder overrides the working folder; empty means "." or the rules file's folder
	Folder string
	// DryRun computes and reports without touching the folder
	DryRun bool
	// Verbose prints unmatched lines too
	Verbose bool
	// Debug enables debug logging
	Debug bool

	Console    *log.Logger
	UserLogger *UserLogger
}
