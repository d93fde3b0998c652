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

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/sweeptext/cmd/sweeptext/opts"
	"github.com/walteh/sweeptext/pkg/config"
)

// NewRunCmd creates the run command
func NewRunCmd(root *opts.RootOpts) *cobra.Command {
	var rulesFile string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every rule of a rules file",
		Long: `Run loads a rules file (YAML, HCL or JSON) and runs its rules one after
another. Without --rules it looks for .sweeptext.{yaml,yml,hcl,json} in the
folder, then for sweeptext/rules.* in the user config directory.

The first failing rule stops the batch.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			path := rulesFile
			if path == "" {
				folder := root.Folder
				if folder == "" {
					folder = "."
				}
				found, err := config.FindDefault(folder)
				if err != nil {
					return err
				}
				path = found
			}

			rf, err := config.Load(ctx, path)
			if err != nil {
				return errors.Errorf("loading rules: %w", err)
			}
			root.UserLogger.LogBatch(fmt.Sprintf("%s from %s", rf, path))

			return runSpecs(ctx, root, rf.Specs(root.Folder, root.DryRun))
		},
	}

	cmd.Flags().StringVarP(&rulesFile, "rules", "r", "", "rules file path")
	return cmd
}
