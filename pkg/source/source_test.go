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

package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestParseSpec(t *testing.T) {
	tests := []struct {
		name      string
		spec      string
		wantErr   bool
		wantRegex bool
		matches   []string
		rejects   []string
	}{
		{
			name:    "glob",
			spec:    "*.txt",
			matches: []string{"a.txt", "_inbox.txt", "#todos (collected).txt"},
			rejects: []string{"a.md", "a.txt.bak"},
		},
		{
			name:    "glob_with_alternatives",
			spec:    "{inbox,today}.txt",
			matches: []string{"inbox.txt", "today.txt"},
			rejects: []string{"later.txt"},
		},
		{
			name:    "exact_name",
			spec:    "_inbox.txt",
			matches: []string{"_inbox.txt"},
			rejects: []string{"inbox.txt"},
		},
		{
			name:      "regex",
			spec:      `/[0-9].*\.txt/`,
			wantRegex: true,
			matches:   []string{"2024-01-01.txt", "1.txt"},
			rejects:   []string{"notes 2024.txt", "a.txt"},
		},
		{
			name:      "regex_is_anchored_at_start_only",
			spec:      `/a/`,
			wantRegex: true,
			matches:   []string{"a.txt", "abc"},
			rejects:   []string{"ba.txt"},
		},
		{
			name:    "bad_regex",
			spec:    `/[/`,
			wantErr: true,
		},
		{
			name:    "bad_glob",
			spec:    "[abc",
			wantErr: true,
		},
		{
			name:    "empty",
			spec:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := ParseSpec(tt.spec)
			if tt.wantErr {
				require.Error(t, err, "ParseSpec should fail")
				assert.True(t, errors.Is(err, ErrInvalidSpec), "error should be ErrInvalidSpec")
				return
			}
			require.NoError(t, err, "ParseSpec should succeed")
			assert.Equal(t, tt.wantRegex, spec.IsRegex())
			assert.Equal(t, tt.spec, spec.String())
			for _, name := range tt.matches {
				assert.True(t, spec.Match(name), "%q should match %q", tt.spec, name)
			}
			for _, name := range tt.rejects {
				assert.False(t, spec.Match(name), "%q should not match %q", tt.spec, name)
			}
		})
	}
}

func mustSpec(t *testing.T, raw string) *Spec {
	t.Helper()
	spec, err := ParseSpec(raw)
	require.NoError(t, err)
	return spec
}

func TestSelect(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"b.txt", "A.txt", "_inbox.txt", "c.md", "work.txt", "work.txt.swtxttmp",
		"work.txt.swtxt~1", "work.txt.swtxt~3", "#todos (collected).txt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.txt"), 0o755))

	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())

	tests := []struct {
		name     string
		selector Selector
		want     []string
	}{
		{
			name:     "include_all_txt",
			selector: Selector{Include: mustSpec(t, "*.txt")},
			want:     []string{"#todos (collected).txt", "_inbox.txt", "A.txt", "b.txt", "work.txt"},
		},
		{
			name: "exclude_glob",
			selector: Selector{
				Include: mustSpec(t, "*"),
				Exclude: mustSpec(t, "* (collected).txt"),
			},
			want: []string{"_inbox.txt", "A.txt", "b.txt", "c.md", "work.txt"},
		},
		{
			name: "exclude_regex",
			selector: Selector{
				Include: mustSpec(t, "*.txt"),
				Exclude: mustSpec(t, `/[a-z]/`),
			},
			want: []string{"#todos (collected).txt", "_inbox.txt", "A.txt"},
		},
		{
			name:     "single_file",
			selector: Selector{Include: mustSpec(t, "_inbox.txt")},
			want:     []string{"_inbox.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.selector.Select(ctx, dir)
			require.NoError(t, err, "Select should succeed")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectCaseTies(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.txt", "a.txt", "B.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	got, err := Selector{Include: mustSpec(t, "*.txt")}.Select(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "B.txt", "b.txt"}, got, "ties on lowercase name should fall back to exact name")
}

func TestSelectMissingFolder(t *testing.T) {
	_, err := Selector{Include: mustSpec(t, "*")}.Select(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing folder")
}
