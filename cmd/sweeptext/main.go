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

	"github.com/spf13/cobra"

	"github.com/walteh/sweeptext/cmd/sweeptext/commands"
	"github.com/walteh/sweeptext/cmd/sweeptext/opts"
)

func main() {
	root := &opts.RootOpts{}
	rootCmd := newRootCmd(root)

	ctx := context.Background()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if root.UserLogger == nil {
			root.UserLogger = opts.NewUserLogger(ctx)
		}
		root.UserLogger.LogValidation(false, "Command failed", err)
		os.Exit(1)
	}
}

func newRootCmd(root *opts.RootOpts) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sweeptext",
		Short: "Refile lines between plain-text files",
		Long: `sweeptext moves or copies lines matching a pattern from a folder of text
files into target files chosen per line. Every file swap is atomic and keeps
three generations of backups.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			resolveRootOpts(cmd, root)
			return nil
		},
	}

	addRootFlags(rootCmd)

	rootCmd.AddCommand(
		commands.NewMoveCmd(root),
		commands.NewCopyCmd(root),
		commands.NewRunCmd(root),
		newVersionCmd(),
	)
	return rootCmd
}
