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

	"github.com/walteh/sweeptext/pkg/status"
)

// ReportFunc receives the report of every operation that produced one,
// including failed ones
type ReportFunc func(ctx context.Context, r *status.Report)

// 🏃 Runner executes operations sequentially
type Runner struct {
	onReport ReportFunc
}

// 🏗️ NewRunner creates a new runner. onReport may be nil.
func NewRunner(onReport ReportFunc) *Runner {
	return &Runner{onReport: onReport}
}

// 🏃 Run executes a single operation
func (r *Runner) Run(ctx context.Context, op Operation) (*status.Report, error) {
	report, err := op.Execute(ctx)
	if report != nil && r.onReport != nil {
		r.onReport(ctx, report)
	}
	if err != nil {
		return report, errors.Errorf("running %s: %w", op.Name(), err)
	}
	return report, nil
}

// 🔄 RunAll executes ops in order and stops at the first failure. Later
// operations see the folder as earlier ones left it.
func (r *Runner) RunAll(ctx context.Context, ops []Operation) ([]*status.Report, error) {
	logger := zerolog.Ctx(ctx)
	reports := make([]*status.Report, 0, len(ops))

	for i, op := range ops {
		if err := ctx.Err(); err != nil {
			return reports, errors.Errorf("batch cancelled before %s: %w", op.Name(), err)
		}

		report, err := r.Run(ctx, op)
		if report != nil {
			reports = append(reports, report)
		}
		if err != nil {
			logger.Debug().Int("remaining", len(ops)-i-1).Msg("batch stopped")
			return reports, err
		}
	}
	return reports, nil
}
