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

// Package source picks the files a rule scans: the non-recursive listing of
// one folder, filtered by include/exclude specs and ordered by
// case-insensitive name.
package source

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/sweeptext/pkg/commit"
	"gitlab.com/tozd/go/errors"
)

// ErrInvalidSpec is returned for include/exclude specs that cannot be used
var ErrInvalidSpec = errors.Base("invalid file spec")

// 🔍 Spec matches file names, either with a glob or, when wrapped in slashes
// ("/[0-9].*\.txt/"), with a regular expression anchored at the start of the name
type Spec struct {
	raw  string
	glob string
	re   *regexp.Regexp
}

// ParseSpec parses a glob or /regex/ file spec
func ParseSpec(raw string) (*Spec, error) {
	if raw == "" {
		return nil, errors.Errorf("%w: empty spec", ErrInvalidSpec)
	}

	if len(raw) >= 2 && strings.HasPrefix(raw, "/") && strings.HasSuffix(raw, "/") {
		re, err := regexp.Compile(`^(?:` + raw[1:len(raw)-1] + `)`)
		if err != nil {
			return nil, errors.Errorf("%w: %q: %s", ErrInvalidSpec, raw, err.Error())
		}
		return &Spec{raw: raw, re: re}, nil
	}

	if !doublestar.ValidatePattern(raw) {
		return nil, errors.Errorf("%w: %q: malformed glob", ErrInvalidSpec, raw)
	}
	return &Spec{raw: raw, glob: raw}, nil
}

// Match reports whether name satisfies the spec
func (s *Spec) Match(name string) bool {
	if s.re != nil {
		return s.re.MatchString(name)
	}
	// pattern validity was checked when parsing
	matched, _ := doublestar.Match(s.glob, name)
	return matched
}

// IsRegex reports whether the spec was given as /regex/
func (s *Spec) IsRegex() bool {
	return s.re != nil
}

func (s *Spec) String() string {
	return s.raw
}

// 📂 Selector enumerates candidate source files in a folder
type Selector struct {
	Include *Spec
	Exclude *Spec // optional
}

// Select lists folder without recursion and returns the names of the files to
// scan, sorted by case-insensitive name. Staging and backup files are never
// returned.
func (s Selector) Select(ctx context.Context, folder string) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, errors.Errorf("listing folder %s: %w", folder, err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := strings.ToLower(entries[i].Name()), strings.ToLower(entries[j].Name())
		if a != b {
			return a < b
		}
		return entries[i].Name() < entries[j].Name()
	})

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if commit.IsReserved(name) {
			continue
		}
		if s.Include != nil && !s.Include.Match(name) {
			continue
		}
		if s.Exclude != nil && s.Exclude.Match(name) {
			logger.Debug().Str("source", name).Str("exclude", s.Exclude.String()).Msg("excluded by pattern")
			continue
		}

		regular, err := isRegular(folder, entry)
		if err != nil {
			return nil, err
		}
		if !regular {
			logger.Debug().Str("source", name).Msg("not a regular file, skipping")
			continue
		}

		names = append(names, name)
	}

	return names, nil
}

func isRegular(folder string, entry os.DirEntry) (bool, error) {
	if entry.Type().IsRegular() {
		return true, nil
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false, nil
	}

	info, err := os.Stat(filepath.Join(folder, entry.Name()))
	if os.IsNotExist(err) {
		// dangling link
		return false, nil
	}
	if err != nil {
		return false, errors.Errorf("inspecting %s: %w", entry.Name(), err)
	}
	return info.Mode().IsRegular(), nil
}
