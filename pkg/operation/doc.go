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

/*
Package operation runs batches of rules.

🎯 Purpose:
  - Wrap one rule.Spec as an Operation that compiles and sweeps its folder
  - Run operations one after another, handing each report to a callback
  - Stop the batch at the first failing operation

🔄 Flow:
 1. The CLI or a rules file produces rule.Spec values
 2. NewSweepOperation wraps each one
 3. Runner.RunAll executes them in order; every run sees the folder as the
    previous run left it

🔍 Example:

	ops := operation.FromSpecs(rf.Specs(folder, dryRun), operation.Options{})
	runner := operation.NewRunner(func(ctx context.Context, r *status.Report) {
		logger.RenderReport(ctx, r)
	})
	reports, err := runner.RunAll(ctx, ops)
*/
package operation
