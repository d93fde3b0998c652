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
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/sweeptext/cmd/sweeptext/opts"
	"github.com/walteh/sweeptext/pkg/operation"
	"github.com/walteh/sweeptext/pkg/rule"
	"github.com/walteh/sweeptext/pkg/status"
)

// ruleFlags are the per-rule flags shared by move and copy
type ruleFlags struct {
	include      string
	exclude      string
	insert       string
	addLinks     bool
	cleanMatch   bool
	addHeaders   bool
	linkFormat   string
	headerFormat string
}

func (f *ruleFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.include, "include", "i", rule.DefaultInclude, "source files to scan: a glob, or /regex/")
	fl.StringVarP(&f.exclude, "exclude", "x", "", "source files to skip: a glob, or /regex/")
	fl.StringVar(&f.insert, "insert", "", "where lines go in the target: top, append, overwrite or afterblank")
	fl.BoolVar(&f.addLinks, "add-links", false, "append a marker naming the source file to each line")
	fl.BoolVar(&f.cleanMatch, "clean-match", false, "remove the matched text from each line")
	fl.BoolVar(&f.addHeaders, "add-headers", false, "insert a header line when the source file changes")
	fl.StringVar(&f.linkFormat, "link-format", rule.DefaultMarkerFormat, "link marker, {source} is the source file name without extension")
	fl.StringVar(&f.headerFormat, "header-format", rule.DefaultMarkerFormat, "header line, {source} is the source file name without extension")
}

// spec builds a rule.Spec. Boolean options only override the action's
// defaults when given on the command line.
func (f *ruleFlags) spec(cmd *cobra.Command, action rule.Action, args []string, root *opts.RootOpts) rule.Spec {
	spec := rule.Spec{
		Name:         fmt.Sprintf("%s %s", action, args[0]),
		Action:       action,
		Pattern:      args[0],
		Target:       args[1],
		Include:      f.include,
		Exclude:      f.exclude,
		Insert:       rule.InsertMode(f.insert),
		LinkFormat:   f.linkFormat,
		HeaderFormat: f.headerFormat,
		DryRun:       root.DryRun,
		Folder:       root.Folder,
	}

	fl := cmd.Flags()
	if fl.Changed("add-links") {
		spec.AddLinks = &f.addLinks
	}
	if fl.Changed("clean-match") {
		spec.CleanMatch = &f.cleanMatch
	}
	if fl.Changed("add-headers") {
		spec.AddHeaders = &f.addHeaders
	}
	return spec
}

// newRuleCmd builds the move and copy commands, which differ only in action
func newRuleCmd(root *opts.RootOpts, action rule.Action, use, short, long string, aliases ...string) *cobra.Command {
	flags := &ruleFlags{}

	cmd := &cobra.Command{
		Use:     use + " <pattern> <target>",
		Aliases: aliases,
		Short:   short,
		Long:    long,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := flags.spec(cmd, action, args, root)
			return runSpecs(cmd.Context(), root, []rule.Spec{spec})
		},
	}
	flags.register(cmd)
	return cmd
}

// NewMoveCmd creates the move command
func NewMoveCmd(root *opts.RootOpts) *cobra.Command {
	return newRuleCmd(root, rule.ActionMove, "move",
		"Move matching lines into their target files",
		`Move finds lines matching <pattern> in the source files and moves each one
into the file named by <target>. Placeholders like {tag} in the pattern capture
text that can be reused in the target, e.g.

  sweeptext move '^\[{tag}\] ' '{tag}.txt' --include _inbox.txt

Lines whose target file does not exist stay where they are. Every changed file
keeps up to three backups (F.swtxt~1..3).`,
		"refile")
}

// NewCopyCmd creates the copy command
func NewCopyCmd(root *opts.RootOpts) *cobra.Command {
	return newRuleCmd(root, rule.ActionCopy, "copy",
		"Collect matching lines into their target files",
		`Copy finds lines matching <pattern> in the source files and rebuilds each
target file from them, leaving the sources untouched. By default each target is
overwritten and every group of lines starts with a header naming its source.`,
		"collect")
}

// runSpecs runs specs in order, rendering each report to the console
func runSpecs(ctx context.Context, root *opts.RootOpts, specs []rule.Spec) error {
	runner := operation.NewRunner(func(ctx context.Context, r *status.Report) {
		root.Console.RenderReport(ctx, r)
	})

	if _, err := runner.RunAll(ctx, operation.FromSpecs(specs, operation.Options{})); err != nil {
		return errors.Errorf("sweeping: %w", err)
	}

	if root.DryRun {
		root.UserLogger.LogDryRun()
	}
	return nil
}
