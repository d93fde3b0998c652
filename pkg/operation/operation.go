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

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/sweeptext/pkg/rule"
	"github.com/walteh/sweeptext/pkg/status"
	"github.com/walteh/sweeptext/pkg/sweep"
)

// 🎯 Operation is one unit of work in a batch
type Operation interface {
	// Name identifies the operation in logs and errors
	Name() string
	// Execute runs the operation. The report may be nil when nothing ran.
	Execute(ctx context.Context) (*status.Report, error)
}

// 🔧 Options contains the settings shared by every operation of a batch
type Options struct {
	// Sweep overrides the filesystem seams of each run
	Sweep sweep.Options
}

// 🧹 NewSweepOperation creates an operation that compiles spec and sweeps its
// folder once
func NewSweepOperation(spec rule.Spec, opts Options) Operation {
	return &sweepOperation{spec: spec, opts: opts}
}

// FromSpecs wraps every spec, keeping their order
func FromSpecs(specs []rule.Spec, opts Options) []Operation {
	ops := make([]Operation, 0, len(specs))
	for _, spec := range specs {
		ops = append(ops, NewSweepOperation(spec, opts))
	}
	return ops
}

type sweepOperation struct {
	spec rule.Spec
	opts Options
}

func (op *sweepOperation) Name() string {
	if op.spec.Name != "" {
		return op.spec.Name
	}
	return string(op.spec.Action) + " " + op.spec.Pattern
}

// 🏃 Execute compiles the rule and runs it
func (op *sweepOperation) Execute(ctx context.Context) (*status.Report, error) {
	logger := zerolog.Ctx(ctx)

	r, err := rule.Compile(op.spec)
	if err != nil {
		return nil, errors.Errorf("compiling rule: %w", err)
	}
	logger.Debug().Str("rule", r.String()).Bool("dry_run", r.DryRun).Msg("running rule")

	return sweep.Run(ctx, r, op.opts.Sweep)
}
