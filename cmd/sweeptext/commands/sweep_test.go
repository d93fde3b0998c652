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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/sweeptext/cmd/sweeptext/opts"
	"github.com/walteh/sweeptext/pkg/log"
	"github.com/walteh/sweeptext/pkg/rule"
)

func testRoot(t *testing.T, folder string, dryRun bool) (*opts.RootOpts, *bytes.Buffer, context.Context) {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())

	buf := &bytes.Buffer{}
	return &opts.RootOpts{
		Folder:     folder,
		DryRun:     dryRun,
		Console:    log.New(buf, zerolog.InfoLevel).WithZerolog(zerolog.Nop()),
		UserLogger: opts.NewUserLogger(ctx),
	}, buf, ctx
}

func TestRuleFlagsSpec(t *testing.T) {
	tests := []struct {
		name   string
		action rule.Action
		args   []string
		check  func(t *testing.T, spec rule.Spec)
	}{
		{
			name:   "defaults_leave_options_unset",
			action: rule.ActionMove,
			check: func(t *testing.T, spec rule.Spec) {
				assert.Equal(t, rule.DefaultInclude, spec.Include)
				assert.Nil(t, spec.AddLinks)
				assert.Nil(t, spec.CleanMatch)
				assert.Nil(t, spec.AddHeaders)
				assert.Equal(t, rule.InsertMode(""), spec.Insert)
			},
		},
		{
			name:   "explicit_false_overrides_default",
			action: rule.ActionMove,
			args:   []string{"--clean-match=false", "--add-links"},
			check: func(t *testing.T, spec rule.Spec) {
				require.NotNil(t, spec.CleanMatch)
				assert.False(t, *spec.CleanMatch)
				require.NotNil(t, spec.AddLinks)
				assert.True(t, *spec.AddLinks)
				assert.Nil(t, spec.AddHeaders)
			},
		},
		{
			name:   "selection_and_insert",
			action: rule.ActionCopy,
			args:   []string{"-i", "/[0-9].*/", "-x", "*.bak", "--insert", "top", "--header-format", "== {source} =="},
			check: func(t *testing.T, spec rule.Spec) {
				assert.Equal(t, "/[0-9].*/", spec.Include)
				assert.Equal(t, "*.bak", spec.Exclude)
				assert.Equal(t, rule.InsertTop, spec.Insert)
				assert.Equal(t, "== {source} ==", spec.HeaderFormat)
				assert.Equal(t, rule.ActionCopy, spec.Action)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &ruleFlags{}
			cmd := &cobra.Command{Use: "test"}
			f.register(cmd)
			require.NoError(t, cmd.ParseFlags(tt.args))

			root := &opts.RootOpts{Folder: "/notes", DryRun: true}
			spec := f.spec(cmd, tt.action, []string{`^\[{tag}\] `, "{tag}.txt"}, root)

			assert.Equal(t, `^\[{tag}\] `, spec.Pattern)
			assert.Equal(t, "{tag}.txt", spec.Target)
			assert.Equal(t, "/notes", spec.Folder)
			assert.True(t, spec.DryRun)
			tt.check(t, spec)

			_, err := rule.Compile(spec)
			require.NoError(t, err, "spec should compile")
		})
	}
}

func TestMoveCommand(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "_inbox.txt"), []byte("[work] finish report\nnote\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "work.txt"), nil, 0o644))

	root, buf, ctx := testRoot(t, dir, false)
	cmd := NewMoveCmd(root)
	cmd.SetArgs([]string{`^\[{tag}\] `, "{tag}.txt", "--include", "_inbox.txt"})
	require.NoError(t, cmd.ExecuteContext(ctx))

	data, err := os.ReadFile(filepath.Join(dir, "work.txt"))
	require.NoError(t, err)
	assert.Equal(t, "finish report\n", string(data))
	assert.Contains(t, buf.String(), "📝 Updated target work.txt (+1 line, afterblank)")
	assert.Contains(t, cmd.Aliases, "refile")
}

func TestCopyCommandDryRun(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("buy milk [home]\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "home.txt"), []byte("old\n"), 0o644))

	root, buf, ctx := testRoot(t, dir, true)
	cmd := NewCopyCmd(root)
	cmd.SetArgs([]string{`\[{tag}\]`, "{tag}.txt", "-i", "notes.txt"})
	require.NoError(t, cmd.ExecuteContext(ctx))

	data, err := os.ReadFile(filepath.Join(dir, "home.txt"))
	require.NoError(t, err)
	assert.Equal(t, "old\n", string(data), "dry run leaves targets alone")
	assert.Contains(t, buf.String(), "👀 Would update target home.txt (+2 lines, overwrite)")
	assert.Contains(t, cmd.Aliases, "collect")
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "_inbox.txt"), []byte("[work] a\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "work.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".sweeptext.yaml"), []byte(`
rules:
  - name: inbox
    action: move
    pattern: '^\[{tag}\] '
    target: '{tag}.txt'
    include: _inbox.txt
`), 0o644))

	root, _, ctx := testRoot(t, "", false)
	cmd := NewRunCmd(root)
	cmd.SetArgs([]string{"--rules", filepath.Join(dir, ".sweeptext.yaml")})
	require.NoError(t, cmd.ExecuteContext(ctx))

	data, err := os.ReadFile(filepath.Join(dir, "work.txt"))
	require.NoError(t, err)
	assert.Equal(t, "a\n", string(data), "rules run against the rules file's folder")
}

func TestRuleCmdArgs(t *testing.T) {
	root, _, ctx := testRoot(t, t.TempDir(), false)
	cmd := NewMoveCmd(root)
	cmd.SetArgs([]string{"only-one"})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	assert.Error(t, cmd.ExecuteContext(ctx))
}
