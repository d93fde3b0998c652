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

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/sweeptext/pkg/commit"
)

// StatFunc stats a path, following symlinks
type StatFunc func(path string) (fs.FileInfo, error)

// 🔍 Resolver answers whether a target identity names an existing file.
// Negative answers are remembered for the rest of the run; positive answers
// are re-checked every time.
type Resolver struct {
	dir     string
	stat    StatFunc
	missing map[string]struct{}
}

// NewResolver creates a resolver for dir. A nil stat uses os.Stat.
func NewResolver(dir string, stat StatFunc) *Resolver {
	if stat == nil {
		stat = os.Stat
	}
	return &Resolver{
		dir:     dir,
		stat:    stat,
		missing: make(map[string]struct{}),
	}
}

// Resolve returns nil when identity names an existing regular file in the
// folder, and an error wrapping ErrTargetMissing otherwise
func (r *Resolver) Resolve(identity string) error {
	if _, ok := r.missing[identity]; ok {
		return errors.Errorf("%s (cached): %w", identity, ErrTargetMissing)
	}

	if reason := r.check(identity); reason != "" {
		r.missing[identity] = struct{}{}
		return errors.Errorf("%s (%s): %w", identity, reason, ErrTargetMissing)
	}
	return nil
}

func (r *Resolver) check(identity string) string {
	if !filepath.IsLocal(identity) {
		return "outside folder"
	}
	if commit.IsReserved(identity) {
		return "reserved name"
	}
	info, err := r.stat(filepath.Join(r.dir, identity))
	if err != nil {
		return "not found"
	}
	if !info.Mode().IsRegular() {
		return "not a regular file"
	}
	return ""
}

// Missing lists the identities cached as nonexistent
func (r *Resolver) Missing() []string {
	out := make([]string, 0, len(r.missing))
	for id := range r.missing {
		out = append(out, id)
	}
	return out
}
