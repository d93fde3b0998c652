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

package sweep

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestResolver(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "work.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "work.txt.swtxt~1"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.txt"), 0o755))

	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "existing_file", id: "work.txt"},
		{name: "absent_file", id: "ghost.txt", wantErr: true},
		{name: "directory", id: "folder.txt", wantErr: true},
		{name: "reserved_name", id: "work.txt.swtxt~1", wantErr: true},
		{name: "escapes_folder", id: "../work.txt", wantErr: true},
		{name: "absolute", id: filepath.Join(dir, "work.txt"), wantErr: true},
		{name: "empty", id: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewResolver(dir, nil).Resolve(tt.id)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrTargetMissing), "error should be ErrTargetMissing")
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestResolverCachesOnlyNegatives(t *testing.T) {
	dir := t.TempDir()
	calls := map[string]int{}
	stat := func(path string) (fs.FileInfo, error) {
		calls[filepath.Base(path)]++
		return os.Stat(path)
	}
	r := NewResolver(dir, stat)

	require.Error(t, r.Resolve("later.txt"))

	// creating the file mid-run does not revive a cached identity
	require.NoError(t, os.WriteFile(filepath.Join(dir, "later.txt"), nil, 0o644))
	require.Error(t, r.Resolve("later.txt"))
	assert.Equal(t, 1, calls["later.txt"], "negative answer should be cached")
	assert.Equal(t, []string{"later.txt"}, r.Missing())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "work.txt"), nil, 0o644))
	require.NoError(t, r.Resolve("work.txt"))
	require.NoError(t, r.Resolve("work.txt"))
	assert.Equal(t, 2, calls["work.txt"], "positive answer should be re-checked")
}
